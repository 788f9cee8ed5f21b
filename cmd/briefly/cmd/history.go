package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show locally recorded summaries",
	Long: `Show summaries recorded on this machine, newest first.

This is the local log only; it works offline and is independent of the
server-side usage history available to admins.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum entries to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.close(cmd.Context())

	hist := app.openHistory()
	if hist == nil {
		return fmt.Errorf("local history unavailable")
	}
	defer hist.Close()

	entries, err := hist.List(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No summaries recorded yet")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  %-12s %s/%s\n", e.CreatedAt.Local().Format("2006-01-02 15:04"),
			e.Source, e.Mode, e.Length)
		fmt.Printf("    %s\n", truncate(e.Summary, 120))
	}
	return nil
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
