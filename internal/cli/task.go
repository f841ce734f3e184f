package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"choreboard/internal/display"
	"choreboard/internal/domain"
	"choreboard/internal/fuzzy"
	"choreboard/internal/service"
)

var (
	// task flags
	taskUser        string
	taskDescription string
	taskLocation    string
	taskFrequency   string
	taskImportant   bool
	taskImage       string
	taskNotes       string
	taskForce       bool

	// list filters
	listLocation  string
	listFrequency string
	listSearch    string
	listHideDone  bool
	listOnlyDone  bool
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage chores on the board",
	Long: `Manage the recurring chores on the board.

Chores can be referred to by ID or by (part of) their name.

Examples:
  choreboard task list
  choreboard task show bins
  choreboard task done 3 --user 12 --notes "bins were full"
  choreboard task add "Water the plants" --description "All of them" --location hall --frequency every_2_days`,
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List chores with their due status",
	Long: `List active chores, important ones first, with their current status.

Examples:
  choreboard task list
  choreboard task list --location hall
  choreboard task list --frequency weekly --hide-done
  choreboard task list --search mop`,
	RunE: runTaskList,
}

var taskShowCmd = &cobra.Command{
	Use:   "show [id|name]",
	Short: "Show a chore with its completion history",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskShow,
}

var taskAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a chore (managers only)",
	Long: `Add a recurring chore to the board.

Frequencies: daily, every_2_days, weekly, biweekly, monthly
Locations:   bar, back_room, office, production, hall, bathroom, dish_station, other

Examples:
  choreboard task add "Wipe the bar" --description "Counter and taps" --location bar --frequency daily
  choreboard task add "Descale the dishwasher" -d "Use the tablets" -l dish_station -f monthly --important`,
	Args: cobra.ExactArgs(1),
	RunE: runTaskAdd,
}

var taskEditCmd = &cobra.Command{
	Use:   "edit [id|name]",
	Short: "Change a chore's definition (managers only)",
	Long: `Change a chore's definition. Only the given flags are changed;
completion history is kept.

Examples:
  choreboard task edit 3 --frequency weekly
  choreboard task edit bins --name "Take out all the bins"`,
	Args: cobra.ExactArgs(1),
	RunE: runTaskEdit,
}

var taskDoneCmd = &cobra.Command{
	Use:   "done [id|name]",
	Short: "Mark a chore as done",
	Long: `Record that a chore was done just now by the given user.

Examples:
  choreboard task done 3 --user 12
  choreboard task done bins --user 12 --notes "bins were full"`,
	Args: cobra.ExactArgs(1),
	RunE: runTaskDone,
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete [id|name]",
	Short: "Remove a chore from the board (managers only)",
	Long: `Remove a chore from the board. Its completion history is kept.

Examples:
  choreboard task delete 3
  choreboard task delete bins --force`,
	Args: cobra.ExactArgs(1),
	RunE: runTaskDelete,
}

var taskImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Add chores from a YAML file (managers only)",
	Long: `Add every chore listed in a YAML file, in the same format as the
built-in defaults:

  tasks:
    - name: Wipe the bar
      description: Counter and taps
      location: bar
      frequency: daily
      important: true

Examples:
  choreboard task import chores.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runTaskImport,
}

var taskImportantCmd = &cobra.Command{
	Use:   "important [id|name]",
	Short: "Toggle a chore's important flag (managers only)",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskImportant,
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskListCmd, taskShowCmd, taskAddCmd, taskEditCmd, taskDoneCmd, taskDeleteCmd, taskImportantCmd, taskImportCmd)

	taskCmd.PersistentFlags().StringVarP(&taskUser, "user", "u", "", "Apartment number of the acting user (default: the administrator)")

	taskListCmd.Flags().StringVarP(&listLocation, "location", "l", "", "Filter by location")
	taskListCmd.Flags().StringVarP(&listFrequency, "frequency", "f", "", "Filter by frequency")
	taskListCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Search names and descriptions")
	taskListCmd.Flags().BoolVar(&listHideDone, "hide-done", false, "Hide chores done in the last 24 hours")
	taskListCmd.Flags().BoolVar(&listOnlyDone, "done", false, "Only show chores done in the last 24 hours")

	for _, c := range []*cobra.Command{taskAddCmd, taskEditCmd} {
		c.Flags().StringVarP(&taskDescription, "description", "d", "", "What needs doing")
		c.Flags().StringVarP(&taskLocation, "location", "l", "", "Where the chore is done")
		c.Flags().StringVarP(&taskFrequency, "frequency", "f", "", "How often the chore recurs")
		c.Flags().BoolVar(&taskImportant, "important", false, "Show the chore at the top of the board")
		c.Flags().StringVar(&taskImage, "image", "", "Reference image URL")
	}
	taskEditCmd.Flags().String("name", "", "New name")

	taskDoneCmd.Flags().StringVarP(&taskNotes, "notes", "n", "", "Notes about the completion")
	taskDoneCmd.Flags().StringVar(&taskImage, "image", "", "Photo URL of the finished work")

	taskDeleteCmd.Flags().BoolVar(&taskForce, "force", false, "Skip confirmation prompt")
}

func runTaskList(cmd *cobra.Command, args []string) error {
	q, err := listQuery()
	if err != nil {
		return err
	}

	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	views, err := a.tasks.ListTasks(ctx, q)
	if err != nil {
		fmt.Println(a.styles.Error.Render(fmt.Sprintf("✗ Failed to list chores: %v", err)))
		return nil
	}

	if len(views) == 0 {
		fmt.Println()
		fmt.Println(a.styles.Info.Render("No chores found."))
		fmt.Println()
		return nil
	}

	displayTaskTable(a, views)
	return nil
}

func listQuery() (service.TaskQuery, error) {
	var q service.TaskQuery

	if listLocation != "" {
		location, err := domain.ParseLocation(listLocation)
		if err != nil {
			return q, err
		}
		q.Location = location
	}
	if listFrequency != "" {
		frequency, err := domain.ParseFrequency(listFrequency)
		if err != nil {
			return q, err
		}
		q.Frequency = frequency
	}
	if listHideDone && listOnlyDone {
		return q, fmt.Errorf("--hide-done and --done cannot be combined")
	}
	if listHideDone || listOnlyDone {
		done := listOnlyDone
		q.Completed = &done
	}
	q.Search = listSearch

	return q, nil
}

func displayTaskTable(a *app, views []*service.TaskView) {
	now := a.clock.Now()
	fmt.Println()

	headers := []string{
		a.styles.Header.Render(fmt.Sprintf("%-4s", "ID")),
		a.styles.Header.Render(fmt.Sprintf("%-14s", "Status")),
		a.styles.Header.Render(fmt.Sprintf("%-34s", "Chore")),
		a.styles.Header.Render(fmt.Sprintf("%-13s", "Location")),
		a.styles.Header.Render(fmt.Sprintf("%-13s", "Frequency")),
		a.styles.Header.Render(fmt.Sprintf("%-11s", "Next due")),
		a.styles.Header.Render("Last done"),
	}
	fmt.Println(strings.Join(headers, " "))

	separator := strings.Repeat("─", 120)
	fmt.Println(a.styles.Separator.Render(separator))

	for _, view := range views {
		rowStyle := a.styles.GetRowStyle(view.Status)

		name := view.Name
		if view.IsImportant {
			name = "★ " + name
		}

		cells := []string{
			a.styles.Cell.Render(fmt.Sprintf("%-4d", view.ID)),
			rowStyle.Render(a.styles.Cell.Render(padRight(display.StatusBadge(view.Status), 14))),
			rowStyle.Render(a.styles.Cell.Render(padRight(display.Truncate(name, 34), 34))),
			a.styles.Cell.Render(fmt.Sprintf("%-13s", view.Location)),
			a.styles.Cell.Render(fmt.Sprintf("%-13s", view.Frequency.Label())),
			rowStyle.Render(a.styles.Cell.Render(fmt.Sprintf("%-11s", display.FormatNextDue(view.Status.NextDue, now)))),
			a.styles.Cell.Render(display.FormatLastCompletion(view.LastCompletion, now)),
		}
		fmt.Println(strings.Join(cells, " "))
	}

	fmt.Println()
	fmt.Printf("Total: %d chore(s)\n", len(views))
	fmt.Println()
}

// pads by display width, icons and accented names included
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func runTaskShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := resolveTaskID(ctx, a, args[0])
	if err != nil {
		fmt.Println(a.styles.Error.Render(fmt.Sprintf("✗ %v", err)))
		return nil
	}

	detail, err := a.tasks.GetTask(ctx, id)
	if err != nil {
		fmt.Println(a.styles.Error.Render(fmt.Sprintf("✗ Failed to load chore: %v", err)))
		return nil
	}

	now := a.clock.Now()
	row := func(label, value string) {
		fmt.Println(a.styles.DetailLabel.Render(fmt.Sprintf("%-13s", label)) + " " + a.styles.DetailValue.Render(value))
	}

	fmt.Println()
	fmt.Println(a.styles.Title.Render(fmt.Sprintf("#%d %s", detail.ID, detail.Name)))
	row("Description:", detail.Description)
	row("Location:", string(detail.Location))
	row("Frequency:", detail.Frequency.Label())
	if detail.IsImportant {
		row("Important:", a.styles.ImportantText.Render("★ yes"))
	}
	row("Status:", a.styles.GetRowStyle(detail.Status).Render(display.StatusBadge(detail.Status)))
	row("Next due:", fmt.Sprintf("%s (%s)", detail.Status.NextDue.Local().Format("2006-01-02 15:04"), display.FormatNextDue(detail.Status.NextDue, now)))
	row("Last done:", display.FormatLastCompletion(detail.LastCompletion, now))
	if detail.ImageURL != "" {
		row("Image:", detail.ImageURL)
	}

	fmt.Println()
	fmt.Println(a.styles.Subtitle.Render(fmt.Sprintf("History (%d)", len(detail.History))))
	for _, c := range detail.History {
		line := fmt.Sprintf("  %s  %s", c.CompletedAt.Local().Format("2006-01-02 15:04"), c.UserName)
		if c.UserApartment != "" {
			line += fmt.Sprintf(" (apt. %s)", c.UserApartment)
		}
		if c.Notes != "" {
			line += " - " + c.Notes
		}
		fmt.Println(line)
	}
	fmt.Println()

	return nil
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	actor, err := a.actor(ctx, taskUser)
	if err != nil {
		return err
	}

	if taskLocation == "" {
		taskLocation = string(domain.LocationOther)
	}
	location, err := domain.ParseLocation(taskLocation)
	if err != nil {
		return err
	}
	frequency, err := domain.ParseFrequency(taskFrequency)
	if err != nil {
		return err
	}

	view, err := a.tasks.CreateTask(ctx, actor, service.TaskInput{
		Name:        args[0],
		Description: taskDescription,
		Location:    location,
		Frequency:   frequency,
		IsImportant: taskImportant,
		ImageURL:    taskImage,
	})
	if err != nil {
		fmt.Println(a.styles.Error.Render(fmt.Sprintf("✗ Failed to add chore: %v", err)))
		return nil
	}

	fmt.Println(a.styles.Success.Render(fmt.Sprintf("✓ Chore added: #%d %s", view.ID, view.Name)))
	fmt.Println(a.styles.Info.Render(fmt.Sprintf("  %s, first due %s", view.Frequency.Label(), view.Status.NextDue.Local().Format("2006-01-02 15:04"))))
	return nil
}

func runTaskEdit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	actor, err := a.actor(ctx, taskUser)
	if err != nil {
		return err
	}

	id, err := resolveTaskID(ctx, a, args[0])
	if err != nil {
		fmt.Println(a.styles.Error.Render(fmt.Sprintf("✗ %v", err)))
		return nil
	}

	current, err := a.tasks.GetTask(ctx, id)
	if err != nil {
		fmt.Println(a.styles.Error.Render(fmt.Sprintf("✗ Failed to load chore: %v", err)))
		return nil
	}

	in := service.TaskInput{
		Name:        current.Name,
		Description: current.Description,
		Location:    current.Location,
		Frequency:   current.Frequency,
		IsImportant: current.IsImportant,
		ImageURL:    current.ImageURL,
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		in.Name, _ = flags.GetString("name")
	}
	if flags.Changed("description") {
		in.Description = taskDescription
	}
	if flags.Changed("location") {
		if in.Location, err = domain.ParseLocation(taskLocation); err != nil {
			return err
		}
	}
	if flags.Changed("frequency") {
		if in.Frequency, err = domain.ParseFrequency(taskFrequency); err != nil {
			return err
		}
	}
	if flags.Changed("important") {
		in.IsImportant = taskImportant
	}
	if flags.Changed("image") {
		in.ImageURL = taskImage
	}

	view, err := a.tasks.UpdateTask(ctx, actor, id, in)
	if err != nil {
		fmt.Println(a.styles.Error.Render(fmt.Sprintf("✗ Failed to update chore: %v", err)))
		return nil
	}

	fmt.Println(a.styles.Success.Render(fmt.Sprintf("✓ Chore updated: #%d %s", view.ID, view.Name)))
	return nil
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	actor, err := a.actor(ctx, taskUser)
	if err != nil {
		return err
	}

	id, err := resolveTaskID(ctx, a, args[0])
	if err != nil {
		fmt.Println(a.styles.Error.Render(fmt.Sprintf("✗ %v", err)))
		return nil
	}

	completion, err := a.tasks.CompleteTask(ctx, actor, id, service.CompletionInput{
		Image: taskImage,
		Notes: taskNotes,
	})
	if err != nil {
		fmt.Println(a.styles.Error.Render(fmt.Sprintf("✗ Failed to mark chore as done: %v", err)))
		return nil
	}

	fmt.Println(a.styles.Success.Render(fmt.Sprintf("✓ %s marked as done by %s", completion.TaskName, actor.Name)))
	return nil
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	actor, err := a.actor(ctx, taskUser)
	if err != nil {
		return err
	}

	id, err := resolveTaskID(ctx, a, args[0])
	if err != nil {
		fmt.Println(a.styles.Error.Render(fmt.Sprintf("✗ %v", err)))
		return nil
	}

	if !taskForce {
		fmt.Printf("Remove chore #%d from the board? (y/N): ", id)
		reader := bufio.NewReader(os.Stdin)
		response, _ := reader.ReadString('\n')
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := a.tasks.DeleteTask(ctx, actor, id); err != nil {
		fmt.Println(a.styles.Error.Render(fmt.Sprintf("✗ Failed to remove chore: %v", err)))
		return nil
	}

	fmt.Println(a.styles.Success.Render(fmt.Sprintf("✓ Chore #%d removed", id)))
	return nil
}

func runTaskImportant(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	actor, err := a.actor(ctx, taskUser)
	if err != nil {
		return err
	}

	id, err := resolveTaskID(ctx, a, args[0])
	if err != nil {
		fmt.Println(a.styles.Error.Render(fmt.Sprintf("✗ %v", err)))
		return nil
	}

	important, err := a.tasks.ToggleImportant(ctx, actor, id)
	if err != nil {
		fmt.Println(a.styles.Error.Render(fmt.Sprintf("✗ Failed to toggle important: %v", err)))
		return nil
	}

	if important {
		fmt.Println(a.styles.Success.Render(fmt.Sprintf("★ Chore #%d marked as important", id)))
	} else {
		fmt.Println(a.styles.Success.Render(fmt.Sprintf("✓ Chore #%d is no longer important", id)))
	}
	return nil
}

func runTaskImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	inputs, err := service.ParseSeedTasks(data)
	if err != nil {
		return err
	}

	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	actor, err := a.actor(ctx, taskUser)
	if err != nil {
		return err
	}

	var added int
	for _, in := range inputs {
		if _, err := a.tasks.CreateTask(ctx, actor, in); err != nil {
			fmt.Println(a.styles.Error.Render(fmt.Sprintf("✗ Failed to add %q: %v", in.Name, err)))
			continue
		}
		added++
	}

	fmt.Println(a.styles.Success.Render(fmt.Sprintf("✓ Imported %d of %d chore(s)", added, len(inputs))))
	return nil
}

// accepts a numeric ID or a name that fuzzily matches exactly one chore
func resolveTaskID(ctx context.Context, a *app, arg string) (int64, error) {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return id, nil
	}

	views, err := a.tasks.ListTasks(ctx, service.TaskQuery{})
	if err != nil {
		return 0, err
	}

	names := make([]string, len(views))
	for i, view := range views {
		names[i] = view.Name
	}

	best, ok := fuzzy.Best(arg, names, fuzzy.DefaultThreshold)
	if !ok {
		return 0, fmt.Errorf("no single chore matches %q", arg)
	}
	return views[best.Index].ID, nil
}
