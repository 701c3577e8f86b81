package cli

import (
	"github.com/spf13/cobra"
	"github.com/tasktrack/tasktrack/internal/session"
)

func runSession(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	c := session.NewController(cmd.InOrStdin(), cmd.OutOrStdout(), session.Deps{
		Credentials: a.creds,
		Tasks:       a.tasks,
		Reports:     a.reports,
		AdminUser:   a.cfg.Auth.AdminUser,
		Verbose:     verbose,
	})
	return c.Run(cmd.Context())
}
