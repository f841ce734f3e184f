package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"choreboard/internal/display"
	"choreboard/internal/domain"
)

var (
	userApartment string
	userPassword  string
	userManager   bool
	userActing    string
	inboxReadAll  bool
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage residents and managers",
}

var userAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create an account",
	Long: `Create a resident account, or a manager account with --manager.
The password is read from stdin when --password is not given.

Examples:
  choreboard user add "Anna Nowak" --apartment 12
  choreboard user add "Building Manager" --apartment M1 --manager --password s3cret!`,
	Args: cobra.ExactArgs(1),
	RunE: runUserAdd,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts with their completion counts (managers only)",
	RunE:  runUserList,
}

var userStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a user's completion statistics",
	Long: `Show how many chores a user has done and their latest completions.

Examples:
  choreboard user stats --user 12`,
	RunE: runUserStats,
}

var inboxCmd = &cobra.Command{
	Use:   "inbox",
	Short: "Show a user's notifications",
	Long: `Show the latest notifications for a user, system notifications included.

Examples:
  choreboard inbox --user 12
  choreboard inbox --user 12 --read-all`,
	RunE: runInbox,
}

func init() {
	rootCmd.AddCommand(userCmd, inboxCmd)
	userCmd.AddCommand(userAddCmd, userListCmd, userStatsCmd)

	userAddCmd.Flags().StringVarP(&userApartment, "apartment", "a", "", "Apartment number, used to log in")
	userAddCmd.Flags().StringVarP(&userPassword, "password", "p", "", "Password (read from stdin when empty)")
	userAddCmd.Flags().BoolVar(&userManager, "manager", false, "Create a manager account")
	userAddCmd.MarkFlagRequired("apartment")

	for _, c := range []*cobra.Command{userListCmd, userStatsCmd, inboxCmd} {
		c.Flags().StringVarP(&userActing, "user", "u", "", "Apartment number of the acting user (default: the administrator)")
	}
	inboxCmd.Flags().BoolVar(&inboxReadAll, "read-all", false, "Mark every notification as read")
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	password := userPassword
	if password == "" {
		fmt.Print("Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	user, err := a.users.CreateUser(ctx, args[0], userApartment, password, userManager)
	if err != nil {
		fmt.Println(a.styles.Error.Render(fmt.Sprintf("✗ Failed to create user: %v", err)))
		return nil
	}

	role := "resident"
	if user.IsManager {
		role = "manager"
	}
	fmt.Println(a.styles.Success.Render(fmt.Sprintf("✓ Created %s %s (apartment %s)", role, user.Name, user.ApartmentNumber)))
	return nil
}

func runUserList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	actor, err := a.actor(ctx, userActing)
	if err != nil {
		return err
	}

	users, err := a.users.ListUsers(ctx, actor)
	if err != nil {
		fmt.Println(a.styles.Error.Render(fmt.Sprintf("✗ Failed to list users: %v", err)))
		return nil
	}

	fmt.Println()
	headers := []string{
		a.styles.Header.Render(fmt.Sprintf("%-10s", "Apartment")),
		a.styles.Header.Render(fmt.Sprintf("%-30s", "Name")),
		a.styles.Header.Render(fmt.Sprintf("%-9s", "Role")),
		a.styles.Header.Render("Chores done"),
	}
	fmt.Println(strings.Join(headers, " "))
	fmt.Println(a.styles.Separator.Render(strings.Repeat("─", 70)))

	for _, u := range users {
		role := "resident"
		if u.IsManager {
			role = "manager"
		}
		cells := []string{
			a.styles.Cell.Render(fmt.Sprintf("%-10s", u.ApartmentNumber)),
			a.styles.Cell.Render(padRight(display.Truncate(u.Name, 30), 30)),
			a.styles.Cell.Render(fmt.Sprintf("%-9s", role)),
			a.styles.Cell.Render(fmt.Sprintf("%d", u.CompletionCount)),
		}
		fmt.Println(strings.Join(cells, " "))
	}

	fmt.Println()
	fmt.Printf("Total: %d user(s)\n", len(users))
	fmt.Println()
	return nil
}

func runUserStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	actor, err := a.actor(ctx, userActing)
	if err != nil {
		return err
	}

	stats, err := a.users.Stats(ctx, actor)
	if err != nil {
		fmt.Println(a.styles.Error.Render(fmt.Sprintf("✗ Failed to load statistics: %v", err)))
		return nil
	}

	now := a.clock.Now()
	fmt.Println()
	fmt.Println(a.styles.Title.Render(fmt.Sprintf("%s (apartment %s)", actor.Name, actor.ApartmentNumber)))
	fmt.Printf("Chores done: %s\n", a.styles.Success.Render(fmt.Sprintf("%d", stats.TotalCompletions)))
	fmt.Println()

	if len(stats.RecentCompletions) == 0 {
		fmt.Println(a.styles.Info.Render("No chores done yet."))
		fmt.Println()
		return nil
	}

	fmt.Println(a.styles.Subtitle.Render("Recent"))
	for _, c := range stats.RecentCompletions {
		ago := display.FormatLastCompletion(&domain.Completion{CompletedAt: c.CompletedAt}, now)
		fmt.Printf("  %-32s %-13s %s\n", display.Truncate(c.TaskName, 32), c.TaskLocation, ago)
	}
	fmt.Println()

	return nil
}

func runInbox(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	actor, err := a.actor(ctx, userActing)
	if err != nil {
		return err
	}

	if inboxReadAll {
		n, err := a.notifications.MarkAllRead(ctx, actor)
		if err != nil {
			fmt.Println(a.styles.Error.Render(fmt.Sprintf("✗ Failed to mark notifications as read: %v", err)))
			return nil
		}
		fmt.Println(a.styles.Success.Render(fmt.Sprintf("✓ %d notification(s) marked as read", n)))
		return nil
	}

	notifications, err := a.notifications.List(ctx, actor)
	if err != nil {
		fmt.Println(a.styles.Error.Render(fmt.Sprintf("✗ Failed to load notifications: %v", err)))
		return nil
	}

	if len(notifications) == 0 {
		fmt.Println(a.styles.Info.Render("No notifications."))
		return nil
	}

	fmt.Println()
	for _, n := range notifications {
		marker := "•"
		style := a.styles.DetailValue
		if n.IsRead {
			marker = " "
			style = a.styles.Subtitle
		}
		fmt.Printf("%s %s  %s\n", marker, n.CreatedAt.Local().Format("2006-01-02 15:04"), style.Render(n.Message))
	}
	fmt.Println()

	return nil
}
