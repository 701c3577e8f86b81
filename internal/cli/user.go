package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage registered users",
}

var userAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Register a user",
	Long: `Register a user in the credential store.

Without --password the password and its confirmation are read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runUserAdd,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered usernames",
	RunE:  runUserList,
}

func init() {
	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userListCmd)

	userAddCmd.Flags().String("password", "", "Password for the new user")
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	password, _ := cmd.Flags().GetString("password")
	confirm := password
	if password == "" {
		password, confirm, err = readPassword(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
	}

	if err := a.creds.Register(args[0], password, confirm); err != nil {
		return err
	}
	if err := a.reports.Invalidate(); err != nil {
		debugf("warning: %v", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "User %s registered.\n", args[0])
	return nil
}

func readPassword(in io.Reader, out io.Writer) (string, string, error) {
	r := bufio.NewReader(in)
	var values [2]string
	for i, prompt := range []string{"Password: ", "Confirm password: "} {
		fmt.Fprint(out, prompt)
		line, err := r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", "", fmt.Errorf("failed to read password: %w", err)
		}
		values[i] = strings.TrimSpace(line)
	}
	return values[0], values[1], nil
}

func runUserList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	if !a.creds.Found() {
		fmt.Fprintln(out, "No user.txt file found.")
		return nil
	}
	for _, name := range a.creds.Usernames() {
		role := ""
		if name == a.cfg.Auth.AdminUser {
			role = " (admin)"
		}
		fmt.Fprintf(out, "%s%s\n", name, role)
	}
	return nil
}
