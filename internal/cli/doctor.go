package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tasktrack/tasktrack/internal/config"
	"github.com/tasktrack/tasktrack/internal/tasks"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check tasktrack configuration and data file health",
	Long:  `Runs diagnostic checks on the configuration and the user and task stores and reports pass/fail for each.`,
	RunE:  runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	passed := 0
	failed := 0

	check := func(name string, ok bool, detail string) {
		if ok {
			fmt.Fprintf(out, "  ✓ %s\n", name)
			passed++
		} else {
			fmt.Fprintf(out, "  ✗ %s: %s\n", name, detail)
			failed++
		}
	}

	// Configuration
	fmt.Fprintln(out, "Configuration:")
	check("~/.tasktrack/config.yaml", exists(config.GlobalConfigPath()), "optional, run: tasktrack init --global")
	check(".tasktrack/config.yaml", exists(config.ProjectConfigPath()), "optional, run: tasktrack init")

	a, err := openApp()
	if err != nil {
		check("config readable", false, err.Error())
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Results: %d passed, %d failed\n", passed, failed)
		return nil
	}
	defer a.Close()
	check("config readable", true, "")

	// Users
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Users:")
	check(a.cfg.UsersPath(), a.creds.Found(), "not found, run: tasktrack user add "+a.cfg.Auth.AdminUser)
	check(fmt.Sprintf("admin user %q registered", a.cfg.Auth.AdminUser), a.creds.Exists(a.cfg.Auth.AdminUser),
		"run: tasktrack user add "+a.cfg.Auth.AdminUser)
	fmt.Fprintf(out, "  → %d user(s)\n", a.creds.Len())

	// Tasks
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Tasks (%s backend):\n", a.cfg.Storage.Backend)
	all, err := a.store.LoadAll(cmd.Context())
	var malformed *tasks.MalformedError
	switch {
	case err == nil:
		check("task store readable", true, "")
		check("no malformed records", true, "")
	case errors.Is(err, tasks.ErrNotFound):
		check("task store exists", false, "will be created when the first task is added")
	case errors.As(err, &malformed):
		check("task store readable", true, "")
		check("no malformed records", false, malformed.Error())
	default:
		check("task store readable", false, err.Error())
	}
	fmt.Fprintf(out, "  → %d task(s)\n", len(all))

	// Reports
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Reports:")
	taskOverview, userOverview := a.reports.Paths()
	check(taskOverview, exists(taskOverview), "not generated, run: tasktrack report generate")
	check(userOverview, exists(userOverview), "not generated, run: tasktrack report generate")

	// Summary
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Results: %d passed, %d failed\n", passed, failed)

	return nil
}
