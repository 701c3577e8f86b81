package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/tasktrack/tasktrack/internal/credentials"
	"github.com/tasktrack/tasktrack/internal/report"
	"github.com/tasktrack/tasktrack/internal/tasks"
)

// Deps holds the stores and services a controller dispatches to
type Deps struct {
	Credentials *credentials.Store
	Tasks       *tasks.Service
	Reports     *report.Generator
	AdminUser   string
	// Verbose enables per-command log lines
	Verbose bool
}

// Controller runs the interactive login and menu loop
type Controller struct {
	in       *bufio.Reader
	out      io.Writer
	deps     Deps
	commands []command
}

type command struct {
	code      string
	label     string
	adminOnly bool
	run       func(ctx context.Context, s *Session) error
}

// NewController creates a controller reading from in and writing to out
func NewController(in io.Reader, out io.Writer, deps Deps) *Controller {
	if deps.AdminUser == "" {
		deps.AdminUser = "admin"
	}
	c := &Controller{
		in:   bufio.NewReader(in),
		out:  out,
		deps: deps,
	}
	c.commands = []command{
		{code: "r", label: "register user", adminOnly: true, run: c.register},
		{code: "a", label: "add task", run: c.addTask},
		{code: "va", label: "view all", run: c.viewAll},
		{code: "vm", label: "view mine", run: c.viewMine},
		{code: "vc", label: "view completed", adminOnly: true, run: c.viewCompleted},
		{code: "del", label: "delete task", adminOnly: true, run: c.deleteTask},
		{code: "ds", label: "display stats", adminOnly: true, run: c.displayStats},
		{code: "gr", label: "generate reports", adminOnly: true, run: c.generateReports},
	}
	return c
}

// Run logs a user in and serves the menu until exit or end of input
func (c *Controller) Run(ctx context.Context) error {
	s, err := c.Login(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	if c.deps.Verbose {
		log.Printf("session %s started for %s (%s)", s.ShortID(), s.User, s.Role)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		choice, err := c.prompt(c.menu(s))
		if err != nil {
			if errors.Is(err, io.EOF) {
				c.end(s)
				return nil
			}
			return err
		}
		choice = strings.ToLower(choice)

		if choice == "e" {
			fmt.Fprintln(c.out, "Goodbye!")
			c.end(s)
			return nil
		}

		cmd, ok := c.lookup(choice, s)
		if !ok {
			fmt.Fprintln(c.out, "Invalid option.")
			continue
		}

		if c.deps.Verbose {
			log.Printf("session %s: %s", s.ShortID(), cmd.label)
		}
		if err := cmd.run(ctx, s); err != nil {
			if errors.Is(err, io.EOF) {
				c.end(s)
				return nil
			}
			return err
		}
	}
}

func (c *Controller) end(s *Session) {
	if c.deps.Verbose {
		log.Printf("session %s ended for %s after %s", s.ShortID(), s.User, time.Since(s.StartedAt).Round(time.Second))
	}
}

// Login prompts until a username and password match the credential store.
// It returns io.EOF when input ends first.
func (c *Controller) Login(ctx context.Context) (*Session, error) {
	if !c.deps.Credentials.Found() {
		fmt.Fprintln(c.out, "No user.txt file found.")
	}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		username, err := c.prompt("Username: ")
		if err != nil {
			return nil, err
		}
		password, err := c.prompt("Password: ")
		if err != nil {
			return nil, err
		}

		if c.deps.Credentials.Authenticate(username, password) {
			fmt.Fprintf(c.out, "Welcome, %s!\n", username)
			return New(username, c.deps.AdminUser), nil
		}
		fmt.Fprintln(c.out, "Invalid credentials.")
	}
}

func (c *Controller) lookup(code string, s *Session) (command, bool) {
	for _, cmd := range c.commands {
		if cmd.code != code {
			continue
		}
		if cmd.adminOnly && !s.IsAdmin() {
			return command{}, false
		}
		return cmd, true
	}
	return command{}, false
}

func (c *Controller) menu(s *Session) string {
	var sb strings.Builder
	sb.WriteString("\nChoose:\n")
	for _, cmd := range c.commands {
		if cmd.adminOnly && !s.IsAdmin() {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s - %s\n", cmd.code, cmd.label))
	}
	sb.WriteString("e - exit\n: ")
	return sb.String()
}

// prompt writes text and reads one trimmed line. A final line without a
// newline is still returned; io.EOF is reported only when nothing was read.
func (c *Controller) prompt(text string) (string, error) {
	fmt.Fprint(c.out, text)
	line, err := c.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
