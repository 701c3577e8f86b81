package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tasktrack/tasktrack/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize tasktrack in current directory or globally",
	Long: `Initialize tasktrack configuration.

Without flags: Creates .tasktrack/config.yaml in the current directory for project overrides.
With --global: Creates ~/.tasktrack/config.yaml with the full default configuration.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().Bool("global", false, "Initialize global configuration at ~/.tasktrack/")
	initCmd.Flags().Bool("force", false, "Overwrite existing files")
	initCmd.Flags().String("backend", config.BackendText, "Task store backend: 'text' (task.txt) or 'sqlite'")
}

func runInit(cmd *cobra.Command, args []string) error {
	global, _ := cmd.Flags().GetBool("global")
	force, _ := cmd.Flags().GetBool("force")
	backend, _ := cmd.Flags().GetString("backend")

	// Validate backend option
	if backend != config.BackendText && backend != config.BackendSQLite {
		return fmt.Errorf("invalid backend '%s': must be '%s' or '%s'", backend, config.BackendText, config.BackendSQLite)
	}

	if global {
		return initGlobal(cmd.OutOrStdout(), force, backend)
	}
	return initProject(cmd.OutOrStdout(), force)
}

func initGlobal(out io.Writer, force bool, backend string) error {
	dir := config.GlobalDir()
	configPath := filepath.Join(dir, "config.yaml")

	if exists(configPath) && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	if err := config.WriteDefaultWithBackend(configPath, backend); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(out, "Initialized global tasktrack configuration at %s\n", configPath)
	if backend == config.BackendSQLite {
		fmt.Fprintln(out, "Tasks will be stored in tasks.db instead of task.txt.")
	}
	return nil
}

func initProject(out io.Writer, force bool) error {
	dir := config.ProjectDir()
	configPath := filepath.Join(dir, "config.yaml")

	if exists(configPath) && !force {
		return fmt.Errorf(".tasktrack/config.yaml already exists (use --force to overwrite)")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	if err := config.WriteProjectDefault(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintln(out, "Initialized tasktrack in current directory")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Created:")
	fmt.Fprintln(out, "  .tasktrack/config.yaml  - Project configuration")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Add the admin user: tasktrack user add admin")
	fmt.Fprintln(out, "  2. Run: tasktrack")
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
