package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nfrund/unisocial/internal/domain"
)

var (
	loginEmail    string
	loginPassword string

	registerName      string
	registerEmail     string
	registerPassword  string
	registerCareer    string
	registerInterests []string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with an institutional email",
	Long: `Sign in and store the user in the session file, so later commands
and a server started with SESSION_MODE=shared see the same session.

Examples:
  unisocial login --email ana@ucc.edu.co --password secreto`,
	RunE: runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Long: `Create an account at the configured university. Registering does not
sign you in; run "unisocial login" afterwards.

Examples:
  unisocial register --name Ana --email ana@ucc.edu.co --password secreto \
    --career Sistemas --interest tecnologia --interest deportes`,
	RunE: runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the session file",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "institutional email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password")

	registerCmd.Flags().StringVar(&registerName, "name", "", "full name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "institutional email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "password, at least 6 characters")
	registerCmd.Flags().StringVar(&registerCareer, "career", "", "career or program")
	registerCmd.Flags().StringSliceVar(&registerInterests, "interest", nil, "interest tag, repeatable")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	c, err := openClient(cmd, true)
	if err != nil {
		return err
	}
	defer c.Close()

	auth := c.Deps().Auth
	if err := auth.Login(cmd.Context(), domain.LoginForm{Email: loginEmail, Password: loginPassword}); err != nil {
		return reported(err)
	}
	c.println(c.styles.Session(auth.View()))
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	c, err := openClient(cmd, true)
	if err != nil {
		return err
	}
	defer c.Close()

	return reported(c.Deps().Auth.Register(cmd.Context(), domain.RegisterForm{
		Name:      registerName,
		Email:     registerEmail,
		Password:  registerPassword,
		Career:    registerCareer,
		Interests: registerInterests,
	}))
}

func runLogout(cmd *cobra.Command, args []string) error {
	c, err := openClient(cmd, true)
	if err != nil {
		return err
	}
	defer c.Close()

	return c.Deps().Auth.Logout(cmd.Context())
}

func runWhoami(cmd *cobra.Command, args []string) error {
	c, err := openClient(cmd, true)
	if err != nil {
		return err
	}
	defer c.Close()

	c.println(c.styles.Session(c.Deps().Auth.View()))
	return nil
}
