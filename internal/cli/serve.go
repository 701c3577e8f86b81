package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tasktrack/tasktrack/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a read-only JSON API over the task and user stores",
	Long: `Starts an HTTP server with the following endpoints:

  GET /api/tasks        all tasks (?user=NAME, ?completed=true)
  GET /api/tasks/:id    one task by ID
  GET /api/users        registered usernames
  GET /api/stats        report statistics computed on demand

The API never exposes passwords and never changes the stores.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides web.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = a.cfg.Web.Addr
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Serving tasktrack API on %s\n", addr)
	return web.NewServer(a.tasks, a.creds, a.reports, a.cfg.Auth.AdminUser).Run(addr)
}
