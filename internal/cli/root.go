package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	dataDir string
	cfgFile string
	rootCmd *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "tasktrack",
		Short: "tasktrack - flat-file task tracker",
		Long: `tasktrack keeps users in user.txt and tasks in task.txt.

Without a subcommand it starts an interactive session: log in, then add, view,
complete, edit and delete tasks from a menu. The admin user can also register
users and generate the task and user overview reports.`,
		RunE:          runSession, // Default action is the interactive session
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
			log.SetOutput(os.Stderr)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding user.txt and task.txt (overrides data.dir)")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Explicit config file applied after global and project config")
}

// Execute runs the root command
func Execute(version string) error {
	// Add subcommands here to ensure proper initialization order
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(serveCmd)

	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tasktrack %s\n", rootCmd.Version)
	},
}

// debugf logs operational detail when --verbose is set
func debugf(format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}
