package cmd

import (
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the API is reachable",
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	c, err := openClient(cmd, false)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.CheckAPI(cmd.Context()); err != nil {
		return err
	}
	c.println("✓ API disponible en " + c.Deps().Config.GetAPIBaseURL())
	return nil
}
