package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate and show the task and user overview reports",
}

var reportGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write task_overview.txt and user_overview.txt",
	RunE:  runReportGenerate,
}

var reportShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print both reports, generating them if needed",
	RunE:  runReportShow,
}

func init() {
	reportCmd.AddCommand(reportGenerateCmd)
	reportCmd.AddCommand(reportShowCmd)
}

func runReportGenerate(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	stats, err := a.reports.Generate(cmd.Context())
	if err != nil {
		return err
	}

	taskOverview, userOverview := a.reports.Paths()
	fmt.Fprintf(cmd.OutOrStdout(), "Reports generated: %d task(s), %d user(s)\n", stats.Total, stats.Registered)
	debugf("wrote %s and %s", taskOverview, userOverview)
	return nil
}

func runReportShow(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	return a.reports.Display(cmd.Context(), cmd.OutOrStdout())
}
