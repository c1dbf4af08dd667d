package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nfrund/unisocial/internal/config"
	"github.com/nfrund/unisocial/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web interface",
	Long: `Serve the htmx web interface. Each browser keeps its own session in a
cookie unless --session-mode shared is given, in which case every visitor
shares the CLI's session file.

Examples:
  unisocial serve --addr :8080
  unisocial serve --session-mode shared`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&overrides.ServerAddr, "addr", "", "listen address (default :8080)")
	serveCmd.Flags().StringVar(&overrides.SessionMode, "session-mode", "", "cookie or shared")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, config.New().Apply(overrides))
}
