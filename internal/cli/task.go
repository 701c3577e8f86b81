package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tasktrack/tasktrack/internal/tasks"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Scriptable task operations",
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks in store order",
	RunE:  runTaskList,
}

var taskAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a task",
	RunE:  runTaskAdd,
}

var taskCompleteCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark a task complete by ID (see: task list --ids)",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskComplete,
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <title>",
	Short: "Delete tasks matching a title",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDelete,
}

var taskExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all tasks as YAML",
	RunE:  runTaskExport,
}

func init() {
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskCompleteCmd)
	taskCmd.AddCommand(taskDeleteCmd)
	taskCmd.AddCommand(taskExportCmd)

	taskListCmd.Flags().String("user", "", "Only tasks assigned to this user")
	taskListCmd.Flags().Bool("completed", false, "Only completed tasks")
	taskListCmd.Flags().Bool("ids", false, "Show task IDs")

	taskAddCmd.Flags().String("user", "", "Assigned user (required)")
	taskAddCmd.Flags().String("title", "", "Task title (required)")
	taskAddCmd.Flags().String("description", "", "Task description (required)")
	taskAddCmd.Flags().String("due", "", "Due date, e.g. \"12 May 2025\" (required)")
}

func runTaskList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	user, _ := cmd.Flags().GetString("user")
	completedOnly, _ := cmd.Flags().GetBool("completed")
	showIDs, _ := cmd.Flags().GetBool("ids")

	seq, err := a.tasks.All(cmd.Context())
	if errors.Is(err, tasks.ErrNotFound) {
		fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
		return nil
	}
	if err != nil {
		return err
	}

	today := a.tasks.Today()
	out := cmd.OutOrStdout()
	for t := range seq {
		if user != "" && t.AssignedUser != user {
			continue
		}
		if completedOnly && !t.Completed {
			continue
		}

		status := "pending"
		switch {
		case t.Completed:
			status = "done"
		case t.Overdue(today):
			status = "overdue"
		}

		if showIDs {
			fmt.Fprintf(out, "%s  ", t.ID)
		}
		fmt.Fprintf(out, "%3d. [%-7s] %-12s %s (due %s)\n",
			t.Index(), status, t.AssignedUser, t.Title, tasks.FormatDate(t.DueDate))
	}
	return nil
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	var d tasks.Draft
	d.AssignedUser, _ = cmd.Flags().GetString("user")
	d.Title, _ = cmd.Flags().GetString("title")
	d.Description, _ = cmd.Flags().GetString("description")
	d.DueDate, _ = cmd.Flags().GetString("due")

	t, err := a.tasks.Add(cmd.Context(), d)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added task %d: %s (%s)\n", t.Index(), t.Title, t.ID)
	return nil
}

func runTaskComplete(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	t, err := a.tasks.MarkComplete(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Completed task %d: %s\n", t.Index(), t.Title)
	return nil
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	removed, err := a.tasks.Delete(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d task(s).\n", removed)
	return nil
}

func runTaskExport(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	seq, err := a.tasks.All(cmd.Context())
	if err != nil && !errors.Is(err, tasks.ErrNotFound) {
		return err
	}

	var all []tasks.Task
	if seq != nil {
		for t := range seq {
			all = append(all, t)
		}
	}
	return tasks.WriteYAML(cmd.OutOrStdout(), all, time.Now())
}
