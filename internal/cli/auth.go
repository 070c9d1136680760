package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskManager/internal/session"
)

var (
	authName     string
	authEmail    string
	authPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return app.session.Register(cmd.Context(), authName, authEmail, authPassword)
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with an existing account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return app.session.Login(cmd.Context(), authEmail, authPassword)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and remove the stored credential",
	Run: func(_ *cobra.Command, _ []string) {
		app.session.Logout()
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE: func(cmd *cobra.Command, _ []string) error {
		state := app.session.Restore(cmd.Context())
		if state != session.StateAuthenticated {
			return fmt.Errorf("not logged in")
		}
		_, user := app.session.Current()
		fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", user.Name, user.Email)
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVar(&authName, "name", "", "display name")
	registerCmd.Flags().StringVar(&authEmail, "email", "", "email address")
	registerCmd.Flags().StringVar(&authPassword, "password", "", "password")
	registerCmd.MarkFlagRequired("name")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("password")

	loginCmd.Flags().StringVar(&authEmail, "email", "", "email address")
	loginCmd.Flags().StringVar(&authPassword, "password", "", "password")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")
}
