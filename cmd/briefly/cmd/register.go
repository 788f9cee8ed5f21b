package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brieflyhq/briefly/internal/domain/session"
)

var (
	registerUsername string
	registerRole     string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Long: `Create an account on the summarizer service.

Registration does not log you in: run 'briefly login' afterwards with the
new credentials.`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

func init() {
	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "account username (prompted if omitted)")
	registerCmd.Flags().StringVar(&registerRole, "role", "user", "account role: user or admin")
	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	role := session.Role(strings.ToUpper(registerRole))
	if !role.IsValid() {
		return fmt.Errorf("invalid role %q (must be user or admin)", registerRole)
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.close(cmd.Context())

	username := registerUsername
	if username == "" {
		if username, err = promptLine("Username"); err != nil {
			return err
		}
	}
	password, err := promptPassword("Password")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm password")
	if err != nil {
		return err
	}
	if password != confirm {
		app.notifier.Error("Passwords do not match")
		return errReported
	}

	if !app.sessions.Register(cmd.Context(), username, password, role) {
		return errReported
	}
	return nil
}
