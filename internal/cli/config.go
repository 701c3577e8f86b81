package cli

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"github.com/tasktrack/tasktrack/internal/config"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tasktrack configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show merged configuration",
	RunE:  runConfigShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in editor",
	RunE:  runConfigEdit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration and data file paths",
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configPathCmd)

	configEditCmd.Flags().Bool("global", false, "Edit global config")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "# Merged configuration (global + project)")
	fmt.Fprintln(out, string(data))
	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	global, _ := cmd.Flags().GetBool("global")

	var path string
	if global {
		path = config.GlobalConfigPath()
	} else {
		path = config.ProjectConfigPath()
	}
	if !exists(path) {
		return fmt.Errorf("%s does not exist (run: tasktrack init)", path)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	c := exec.Command(editor, path)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	return c.Run()
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Global:  %s\n", config.GlobalConfigPath())
	fmt.Fprintf(out, "Project: %s\n", config.ProjectConfigPath())

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Users:   %s\n", cfg.UsersPath())
	if cfg.Storage.Backend == config.BackendSQLite {
		fmt.Fprintf(out, "Tasks:   %s (sqlite)\n", cfg.SQLitePath())
	} else {
		fmt.Fprintf(out, "Tasks:   %s\n", cfg.TasksPath())
	}
	fmt.Fprintf(out, "Reports: %s, %s\n", cfg.TaskOverviewPath(), cfg.UserOverviewPath())
	return nil
}
