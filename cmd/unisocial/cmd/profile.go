package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nfrund/unisocial/internal/view"
)

var profileCmd = &cobra.Command{
	Use:   "profile [user-id]",
	Short: "Show your profile or another user's",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProfile,
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Show online users and feed statistics",
	RunE:  runUsers,
}

var navCmd = &cobra.Command{
	Use:   "nav <fragment>",
	Short: "Open a section by its fragment",
	Long: `Open a section the way the web interface follows a link fragment.

Fragments:
  home      the dashboard with the personalized feed
  profile   your profile
  friends   not available yet`,
	Args: cobra.ExactArgs(1),
	RunE: runNav,
}

func init() {
	rootCmd.AddCommand(profileCmd, usersCmd, navCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	c, err := openClient(cmd, true)
	if err != nil {
		return err
	}
	defer c.Close()

	pm := c.Deps().Profile
	if len(args) == 1 {
		_, err = pm.LoadUserProfile(cmd.Context(), args[0])
	} else {
		err = pm.Show(cmd.Context())
	}
	if err != nil {
		return reported(err)
	}
	c.println(c.styles.Profile(pm.View()))
	return nil
}

func runUsers(cmd *cobra.Command, args []string) error {
	c, err := openClient(cmd, true)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := requireSession(c); err != nil {
		return err
	}
	d := c.Dashboard()
	c.println(c.styles.Users(d.Users, d.Feed))
	return nil
}

func runNav(cmd *cobra.Command, args []string) error {
	c, err := openClient(cmd, true)
	if err != nil {
		return err
	}
	defer c.Close()

	switch c.Navigate(cmd.Context(), args[0]) {
	case view.SectionProfile:
		c.println(c.styles.Profile(c.Deps().Profile.View()))
	case view.SectionAuth:
		c.println(c.styles.Session(c.Deps().Auth.View()))
	default:
		if !c.Deps().Auth.IsAuthenticated() {
			c.println(c.styles.Session(c.Deps().Auth.View()))
			return nil
		}
		c.println(c.styles.Dashboard(c.Dashboard()))
	}
	return nil
}
