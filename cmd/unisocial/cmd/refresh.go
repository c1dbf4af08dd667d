package cmd

import (
	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Reload the dashboard and show it",
	RunE:  runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	c, err := openClient(cmd, true)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := requireSession(c); err != nil {
		return err
	}
	c.Refresh(cmd.Context())
	c.println(c.styles.Dashboard(c.Dashboard()))
	return nil
}
