package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tasktrack/tasktrack/internal/tasks"
)

// ErrTasksNotFound is returned when the task store does not exist yet
var ErrTasksNotFound = errors.New("task.txt not found")

// TaskSource provides the tasks to aggregate
type TaskSource interface {
	LoadAll(ctx context.Context) ([]tasks.Task, error)
}

// UserSource provides the registered usernames in display order
type UserSource interface {
	Usernames() []string
}

// Generator computes statistics and persists the two summary documents
type Generator struct {
	mu           sync.Mutex
	tasks        TaskSource
	users        UserSource
	taskOverview string
	userOverview string
	now          func() time.Time
}

// NewGenerator creates a report generator writing to the given paths
func NewGenerator(taskSrc TaskSource, users UserSource, taskOverviewPath, userOverviewPath string) *Generator {
	return &Generator{
		tasks:        taskSrc,
		users:        users,
		taskOverview: taskOverviewPath,
		userOverview: userOverviewPath,
		now:          time.Now,
	}
}

// SetClock overrides the time source used to decide what is overdue
func (g *Generator) SetClock(now func() time.Time) {
	g.now = now
}

// Paths returns the task and user overview paths
func (g *Generator) Paths() (string, string) {
	return g.taskOverview, g.userOverview
}

// Stats computes the current statistics without writing anything
func (g *Generator) Stats(ctx context.Context) (*Stats, error) {
	all, err := g.tasks.LoadAll(ctx)
	if err != nil {
		var malformed *tasks.MalformedError
		switch {
		case errors.Is(err, tasks.ErrNotFound):
			return nil, ErrTasksNotFound
		case errors.As(err, &malformed):
			log.Printf("warning: skipping %v", malformed)
		default:
			return nil, fmt.Errorf("failed to load tasks: %w", err)
		}
	}
	return Compute(all, g.users.Usernames(), tasks.Day(g.now())), nil
}

// Generate computes the statistics and writes both summary documents
func (g *Generator) Generate(ctx context.Context) (*Stats, error) {
	s, err := g.Stats(ctx)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := writeAtomic(g.taskOverview, s.RenderTaskOverview()); err != nil {
		return nil, err
	}
	if err := writeAtomic(g.userOverview, s.RenderUserOverview()); err != nil {
		return nil, err
	}
	return s, nil
}

// Display prints both summary documents, generating them first when either
// is missing
func (g *Generator) Display(ctx context.Context, w io.Writer) error {
	if !g.exists() {
		fmt.Fprintln(w, "Generating reports first...")
		if _, err := g.Generate(ctx); err != nil {
			return err
		}
	}

	taskDoc, err := os.ReadFile(g.taskOverview)
	if err != nil {
		return fmt.Errorf("failed to read task overview: %w", err)
	}
	userDoc, err := os.ReadFile(g.userOverview)
	if err != nil {
		return fmt.Errorf("failed to read user overview: %w", err)
	}

	fmt.Fprintln(w, "--- Task Overview ---")
	fmt.Fprint(w, string(taskDoc))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "--- User Overview ---")
	fmt.Fprint(w, string(userDoc))
	return nil
}

// Invalidate removes both summary documents so the next display regenerates
// them from the current stores
func (g *Generator) Invalidate() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	var errs []error
	for _, path := range []string{g.taskOverview, g.userOverview} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", filepath.Base(path), err))
		}
	}
	return errors.Join(errs...)
}

func (g *Generator) exists() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, path := range []string{g.taskOverview, g.userOverview} {
		if _, err := os.Stat(path); err != nil {
			return false
		}
	}
	return true
}

func writeAtomic(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename %s: %w", filepath.Base(path), err)
	}
	return nil
}
