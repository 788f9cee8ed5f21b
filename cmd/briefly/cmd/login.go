package cmd

import (
	"github.com/spf13/cobra"
)

var loginUsername string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session",
	Long: `Log in to the summarizer service.

On success the session token is stored under your profile directory and
reused by later commands until you log out. Logging in while already
logged in replaces the stored session.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "account username (prompted if omitted)")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.close(cmd.Context())

	username := loginUsername
	if username == "" {
		if username, err = promptLine("Username"); err != nil {
			return err
		}
	}
	password, err := promptPassword("Password")
	if err != nil {
		return err
	}

	if !app.sessions.Login(cmd.Context(), username, password) {
		return errReported
	}
	return nil
}
