package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brieflyhq/briefly/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session and configuration",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.close(cmd.Context())

	cur := app.sessions.Current()
	if cur.IsAuthenticated() {
		fmt.Printf("Logged in as %s (%s)\n", cur.Username, cur.Role)
	} else {
		fmt.Println("Not logged in")
	}

	fmt.Printf("Server:      %s%s\n", app.cfg.Server.Addr, app.cfg.Server.BasePath)
	if file := config.ConfigFileUsed(); file != "" {
		fmt.Printf("Config:      %s\n", file)
	} else {
		fmt.Println("Config:      (defaults and environment)")
	}
	fmt.Printf("Credentials: %s\n", app.store.Path())
	fmt.Printf("History:     %s\n", app.cfg.Storage.HistoryFile)
	return nil
}
