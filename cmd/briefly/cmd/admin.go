package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/brieflyhq/briefly/internal/domain/routing"
	"github.com/brieflyhq/briefly/internal/domain/summary"
	"github.com/brieflyhq/briefly/internal/service"
)

var adminFilter string

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Admin dashboard and user management",
	Long: `Inspect service-wide usage and manage registered users.

All admin commands require a logged-in ADMIN session; the server enforces
the role on every call.`,
}

var adminDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show usage history and registered users",
	Args:  cobra.NoArgs,
	RunE:  runAdminDashboard,
}

var adminHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show service-wide summary history",
	Args:  cobra.NoArgs,
	RunE:  runAdminHistory,
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List registered users",
	Args:  cobra.NoArgs,
	RunE:  runAdminUsers,
}

var adminDeleteUserCmd = &cobra.Command{
	Use:   "delete-user <id>",
	Short: "Delete a registered user",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminDeleteUser,
}

func init() {
	adminCmd.PersistentFlags().StringVar(&adminFilter, "filter", "all", "history time filter: day, week, month, or all")
	adminCmd.AddCommand(adminDashboardCmd)
	adminCmd.AddCommand(adminHistoryCmd)
	adminCmd.AddCommand(adminUsersCmd)
	adminCmd.AddCommand(adminDeleteUserCmd)
	rootCmd.AddCommand(adminCmd)
}

// adminApp wires an app and checks the admin guard.
func adminApp() (*app, summary.TimeFilter, error) {
	filter, err := summary.ParseTimeFilter(adminFilter)
	if err != nil {
		return nil, filter, err
	}
	app, err := newApp()
	if err != nil {
		return nil, filter, err
	}
	if !app.requireDestination(routing.DestAdmin) {
		return nil, filter, errReported
	}
	return app, filter, nil
}

func runAdminDashboard(cmd *cobra.Command, args []string) error {
	app, filter, err := adminApp()
	if err != nil {
		return err
	}
	defer app.close(cmd.Context())

	svc := service.NewAdminService(app.client, app.logger)
	overview, err := svc.Overview(cmd.Context(), filter)
	if err != nil {
		app.reportRequestError(err)
		return errReported
	}

	fmt.Printf("Usage history (%s):\n", filter)
	printHistory(overview.History)
	fmt.Println()
	fmt.Println("Registered users:")
	printUsers(overview.Users)
	return nil
}

func runAdminHistory(cmd *cobra.Command, args []string) error {
	app, filter, err := adminApp()
	if err != nil {
		return err
	}
	defer app.close(cmd.Context())

	items, err := app.client.AdminHistory(cmd.Context(), filter)
	if err != nil {
		app.reportRequestError(err)
		return errReported
	}
	printHistory(items)
	return nil
}

func runAdminUsers(cmd *cobra.Command, args []string) error {
	app, _, err := adminApp()
	if err != nil {
		return err
	}
	defer app.close(cmd.Context())

	users, err := app.client.AdminUsers(cmd.Context())
	if err != nil {
		app.reportRequestError(err)
		return errReported
	}
	printUsers(users)
	return nil
}

func runAdminDeleteUser(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid user id %q", args[0])
	}

	app, _, err := adminApp()
	if err != nil {
		return err
	}
	defer app.close(cmd.Context())

	svc := service.NewAdminService(app.client, app.logger)
	if err := svc.DeleteUser(cmd.Context(), id); err != nil {
		app.reportRequestError(err)
		return errReported
	}
	app.notifier.Success(fmt.Sprintf("User %d deleted", id))
	return nil
}

func printHistory(items []summary.HistoryItem) {
	if len(items) == 0 {
		fmt.Println("  (none)")
		return
	}
	for _, item := range items {
		fmt.Printf("  %-20s %-12s %s\n", item.Timestamp, item.Username,
			truncate(item.SummaryText, 100))
	}
}

func printUsers(users []summary.User) {
	if len(users) == 0 {
		fmt.Println("  (none)")
		return
	}
	for _, u := range users {
		fmt.Printf("  %6d  %-12s %s\n", u.ID, u.Username, u.Role)
	}
}
