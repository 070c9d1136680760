package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"taskManager/internal/filter"
	"taskManager/internal/models/task"
)

var (
	flagStatus      string
	flagPriority    string
	flagSearch      string
	flagTitle       string
	flagDescription string
	flagDue         string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, optionally filtered",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := taskStore(cmd.Context())
		if err != nil {
			return err
		}

		var patch filter.Patch
		if cmd.Flags().Changed("status") {
			st := task.Status(flagStatus)
			patch.Status = &st
		}
		if cmd.Flags().Changed("priority") {
			pr := task.Priority(flagPriority)
			patch.Priority = &pr
		}
		if cmd.Flags().Changed("search") {
			patch.Search = &flagSearch
		}
		s.SetFilter(patch)

		tasks := s.Filtered()
		if len(tasks) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
			return nil
		}
		renderTasks(cmd, tasks)
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.TrimSpace(args[0])
		if title == "" {
			return fmt.Errorf("title must not be empty")
		}

		s, err := taskStore(cmd.Context())
		if err != nil {
			return err
		}

		draft := task.NewDraft(title)
		draft.Description = flagDescription
		if cmd.Flags().Changed("priority") {
			draft.Priority = task.Priority(flagPriority)
		}
		if cmd.Flags().Changed("status") {
			draft.Status = task.Status(flagStatus)
		}
		if cmd.Flags().Changed("due") {
			due, err := parseDue(flagDue)
			if err != nil {
				return err
			}
			draft.DueDate = &due
		}

		created, err := s.Create(cmd.Context(), draft)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), created.ID)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update fields of a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := taskStore(cmd.Context())
		if err != nil {
			return err
		}

		var options []task.PatchOption
		if cmd.Flags().Changed("title") {
			options = append(options, task.WithTitle(flagTitle))
		}
		if cmd.Flags().Changed("description") {
			options = append(options, task.WithDescription(flagDescription))
		}
		if cmd.Flags().Changed("priority") {
			options = append(options, task.WithPriority(task.Priority(flagPriority)))
		}
		if cmd.Flags().Changed("status") {
			options = append(options, task.WithStatus(task.Status(flagStatus)))
		}
		if cmd.Flags().Changed("due") {
			due, err := parseDue(flagDue)
			if err != nil {
				return err
			}
			options = append(options, task.WithDueDate(due))
		}

		patch := task.NewPatch(options...)
		if patch.IsEmpty() {
			return fmt.Errorf("nothing to update; pass at least one field flag")
		}

		_, err = s.Update(cmd.Context(), args[0], patch)
		return err
	},
}

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := taskStore(cmd.Context())
		if err != nil {
			return err
		}
		_, err = s.Update(cmd.Context(), args[0], task.NewPatch(task.WithStatus(task.StatusCompleted)))
		return err
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := taskStore(cmd.Context())
		if err != nil {
			return err
		}
		return s.Delete(cmd.Context(), args[0])
	},
}

func init() {
	listCmd.Flags().StringVar(&flagStatus, "status", "", "filter by status (pending|in-progress|completed|all)")
	listCmd.Flags().StringVar(&flagPriority, "priority", "", "filter by priority (low|medium|high|all)")
	listCmd.Flags().StringVar(&flagSearch, "search", "", "search in title and description")

	addCmd.Flags().StringVar(&flagDescription, "description", "", "task description")
	addCmd.Flags().StringVar(&flagPriority, "priority", string(task.PriorityMedium), "priority (low|medium|high)")
	addCmd.Flags().StringVar(&flagStatus, "status", string(task.StatusPending), "status (pending|in-progress|completed)")
	addCmd.Flags().StringVar(&flagDue, "due", "", "due date (YYYY-MM-DD)")

	editCmd.Flags().StringVar(&flagTitle, "title", "", "new title")
	editCmd.Flags().StringVar(&flagDescription, "description", "", "new description")
	editCmd.Flags().StringVar(&flagPriority, "priority", "", "new priority")
	editCmd.Flags().StringVar(&flagStatus, "status", "", "new status")
	editCmd.Flags().StringVar(&flagDue, "due", "", "new due date (YYYY-MM-DD)")
}

func parseDue(value string) (time.Time, error) {
	due, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date %q, expected YYYY-MM-DD", value)
	}
	return due, nil
}

func renderTasks(cmd *cobra.Command, tasks []task.Task) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPRIORITY\tDUE")
	now := time.Now()
	for i := range tasks {
		t := &tasks[i]
		due := "-"
		if t.DueDate != nil {
			due = t.DueDate.Format("2006-01-02")
			if t.IsOverdue(now) {
				due += " (overdue)"
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Status, t.Priority, due)
	}
	w.Flush()
}
