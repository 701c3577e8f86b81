package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/tasktrack/tasktrack/internal/credentials"
	"github.com/tasktrack/tasktrack/internal/report"
	"github.com/tasktrack/tasktrack/internal/tasks"
)

func (c *Controller) register(ctx context.Context, s *Session) error {
	username, err := c.prompt("Enter new username: ")
	if err != nil {
		return err
	}
	if username == "" {
		return c.fail(credentials.ErrEmptyUsername)
	}
	if c.deps.Credentials.Exists(username) {
		return c.fail(credentials.ErrUserExists)
	}

	password, err := c.prompt("Enter new password: ")
	if err != nil {
		return err
	}
	confirm, err := c.prompt("Confirm password: ")
	if err != nil {
		return err
	}

	if err := c.deps.Credentials.Register(username, password, confirm); err != nil {
		return c.fail(err)
	}
	c.invalidateReports()
	fmt.Fprintln(c.out, "User registered successfully.")
	return nil
}

func (c *Controller) addTask(ctx context.Context, s *Session) error {
	var d tasks.Draft
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Enter username to assign task: ", &d.AssignedUser},
		{"Enter task title: ", &d.Title},
		{"Enter task description: ", &d.Description},
		{"Enter due date (e.g. 12 May 2025): ", &d.DueDate},
	}
	for _, f := range fields {
		v, err := c.prompt(f.prompt)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	if _, err := c.deps.Tasks.Add(ctx, d); err != nil {
		return c.fail(err)
	}
	fmt.Fprintln(c.out, "Task added successfully.")
	return nil
}

func (c *Controller) viewAll(ctx context.Context, s *Session) error {
	all, err := c.deps.Tasks.All(ctx)
	if err != nil {
		return c.fail(err)
	}
	for t := range all {
		c.printTask(t, true)
	}
	return nil
}

func (c *Controller) viewCompleted(ctx context.Context, s *Session) error {
	completed, err := c.deps.Tasks.Completed(ctx)
	if err != nil {
		return c.fail(err)
	}
	for _, t := range completed {
		c.printTask(t, false)
	}
	return nil
}

func (c *Controller) viewMine(ctx context.Context, s *Session) error {
	mine, err := c.deps.Tasks.Mine(ctx, s.User)
	if err != nil {
		return c.fail(err)
	}
	if len(mine) == 0 {
		fmt.Fprintln(c.out, "No personal tasks found.")
		return nil
	}

	for _, t := range mine {
		fmt.Fprintf(c.out, "%d. Title: %s\n   Description: %s\n   Due: %s\n   Created: %s\n   Completed: %s\n\n",
			t.Index(), t.Title, t.Description,
			tasks.FormatDate(t.DueDate), tasks.FormatDate(t.CreatedDate), t.CompletedFlag())
	}

	input, err := c.prompt("Enter task number to edit/mark complete or -1 to return: ")
	if err != nil {
		return err
	}
	if input == "-1" {
		return nil
	}

	selected, ok := selectTask(mine, input)
	if !ok {
		fmt.Fprintln(c.out, "Invalid task number.")
		return nil
	}
	if selected.Completed {
		return c.fail(tasks.ErrAlreadyCompleted)
	}

	action, err := c.prompt("Mark as (c)omplete or (e)dit? ")
	if err != nil {
		return err
	}
	switch action {
	case "c", "C":
		if _, err := c.deps.Tasks.MarkComplete(ctx, selected.ID); err != nil {
			return c.fail(err)
		}
		fmt.Fprintln(c.out, "Task marked complete.")
	case "e", "E":
		return c.editTask(ctx, selected)
	default:
		fmt.Fprintln(c.out, "Invalid action.")
	}
	return nil
}

func (c *Controller) editTask(ctx context.Context, t tasks.Task) error {
	user, err := c.prompt("New username (leave blank to keep current): ")
	if err != nil {
		return err
	}
	due, err := c.prompt("New due date (leave blank to keep current): ")
	if err != nil {
		return err
	}

	if _, err := c.deps.Tasks.Edit(ctx, t.ID, tasks.Change{AssignedUser: user, DueDate: due}); err != nil {
		return c.fail(err)
	}
	fmt.Fprintln(c.out, "Task updated.")
	return nil
}

func (c *Controller) deleteTask(ctx context.Context, s *Session) error {
	title, err := c.prompt("Enter title of task to delete: ")
	if err != nil {
		return err
	}
	if title == "" {
		fmt.Fprintln(c.out, "Title cannot be empty.")
		return nil
	}

	removed, err := c.deps.Tasks.Delete(ctx, title)
	if err != nil {
		return c.fail(err)
	}
	if removed == 0 {
		fmt.Fprintln(c.out, "Task not found.")
		return nil
	}
	fmt.Fprintln(c.out, "Task deleted.")
	return nil
}

func (c *Controller) generateReports(ctx context.Context, s *Session) error {
	if _, err := c.deps.Reports.Generate(ctx); err != nil {
		return c.fail(err)
	}
	fmt.Fprintln(c.out, "Reports generated.")
	return nil
}

func (c *Controller) displayStats(ctx context.Context, s *Session) error {
	if err := c.deps.Reports.Display(ctx, c.out); err != nil {
		return c.fail(err)
	}
	return nil
}

func (c *Controller) printTask(t tasks.Task, withFlag bool) {
	fmt.Fprintf(c.out, "Assigned to: %s\nTitle: %s\nDescription: %s\nDue: %s\nCreated: %s\n",
		t.AssignedUser, t.Title, t.Description,
		tasks.FormatDate(t.DueDate), tasks.FormatDate(t.CreatedDate))
	if withFlag {
		fmt.Fprintf(c.out, "Completed: %s\n", t.CompletedFlag())
	}
	fmt.Fprintln(c.out)
}

func (c *Controller) invalidateReports() {
	if c.deps.Reports == nil {
		return
	}
	if err := c.deps.Reports.Invalidate(); err != nil {
		fmt.Fprintf(c.out, "warning: %v\n", err)
	}
}

// selectTask resolves a 1-based store index among the user's own tasks
func selectTask(mine []tasks.Task, input string) (tasks.Task, bool) {
	n, err := strconv.Atoi(input)
	if err != nil {
		return tasks.Task{}, false
	}
	for _, t := range mine {
		if t.Index() == n {
			return t, true
		}
	}
	return tasks.Task{}, false
}

// fail reports an operation error to the user. The session continues, so
// it always returns nil.
func (c *Controller) fail(err error) error {
	var malformed *tasks.MalformedError
	switch {
	case errors.Is(err, tasks.ErrNotFound):
		fmt.Fprintln(c.out, "No tasks found.")
	case errors.Is(err, tasks.ErrMissingField):
		fmt.Fprintln(c.out, "All fields are required.")
	case errors.Is(err, tasks.ErrInvalidDate):
		fmt.Fprintln(c.out, "Invalid date format. Use 'dd Mon YYYY'.")
	case errors.Is(err, tasks.ErrDelimiterInField):
		fmt.Fprintln(c.out, "Fields must not contain \", \" or line breaks.")
	case errors.Is(err, tasks.ErrAlreadyCompleted):
		fmt.Fprintln(c.out, "Task already completed.")
	case errors.Is(err, tasks.ErrTaskNotFound):
		fmt.Fprintln(c.out, "Task changed since it was listed. Please try again.")
	case errors.As(err, &malformed):
		fmt.Fprintf(c.out, "Cannot change tasks: %v\n", malformed)
	case errors.Is(err, report.ErrTasksNotFound):
		fmt.Fprintln(c.out, "task.txt not found.")
	case errors.Is(err, credentials.ErrEmptyUsername):
		fmt.Fprintln(c.out, "Username cannot be empty.")
	case errors.Is(err, credentials.ErrUserExists):
		fmt.Fprintln(c.out, "Username already exists.")
	case errors.Is(err, credentials.ErrPasswordMismatch):
		fmt.Fprintln(c.out, "Passwords do not match.")
	case errors.Is(err, credentials.ErrInvalidField):
		fmt.Fprintln(c.out, "Username and password must not contain \", \" or line breaks.")
	default:
		fmt.Fprintf(c.out, "Error: %v\n", err)
	}
	return nil
}
