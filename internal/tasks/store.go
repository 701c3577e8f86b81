package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Store persists tasks as an ordered sequence
type Store interface {
	// LoadAll returns every task in store order. A missing store yields ErrNotFound.
	// Unparseable records are reported as *MalformedError next to the valid tasks.
	LoadAll(ctx context.Context) ([]Task, error)
	// AppendOne adds a task at the end and returns it with ID and Position set
	AppendOne(ctx context.Context, t Task) (Task, error)
	// RewriteAll replaces the store content with tasks in the given order and
	// updates their ID and Position to match what was stored
	RewriteAll(ctx context.Context, tasks []Task) error
	Close() error
}

// taskNamespace seeds the name-based IDs of text store records
var taskNamespace = uuid.MustParse("6f1c2a9e-3b7d-4d0e-9a55-2c8e41f07b13")

// TextStore keeps tasks in the ", "-delimited task file
type TextStore struct {
	mu   sync.Mutex
	path string
}

// NewTextStore returns a store backed by the file at path
func NewTextStore(path string) *TextStore {
	return &TextStore{path: path}
}

// LoadAll reads the task file. Blank lines are skipped.
func (s *TextStore) LoadAll(ctx context.Context) ([]Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}

	var (
		tasks     []Task
		malformed []int
	)
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		t, err := ParseRecord(line)
		if err != nil {
			malformed = append(malformed, i+1)
			continue
		}
		t.Position = len(tasks)
		tasks = append(tasks, t)
	}
	assignIDs(tasks)

	if len(malformed) > 0 {
		return tasks, &MalformedError{Path: s.path, Lines: malformed}
	}
	return tasks, nil
}

// assignIDs derives each ID from the record text, its occurrence among
// identical records and their count. A unique record keeps its ID across
// rewrites. Changing a group of identical records renames every member.
func assignIDs(tasks []Task) {
	count := make(map[string]int, len(tasks))
	for i := range tasks {
		count[tasks[i].Line()]++
	}
	seen := make(map[string]int, len(count))
	for i := range tasks {
		line := tasks[i].Line()
		n := seen[line]
		seen[line] = n + 1
		tasks[i].ID = lineID(line, n, count[line])
	}
}

func lineID(line string, occurrence, count int) string {
	name := fmt.Sprintf("%d/%d:%s", occurrence, count, line)
	return uuid.NewSHA1(taskNamespace, []byte(name)).String()
}

// AppendOne writes one newline-terminated record
func (s *TextStore) AppendOne(ctx context.Context, t Task) (Task, error) {
	if err := checkFields(t); err != nil {
		return Task{}, err
	}

	existing, err := s.LoadAll(ctx)
	var malformed *MalformedError
	if err != nil && !errors.Is(err, ErrNotFound) && !errors.As(err, &malformed) {
		return Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return Task{}, fmt.Errorf("failed to create task directory: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return Task{}, fmt.Errorf("failed to open tasks: %w", err)
	}
	defer f.Close()

	// Legacy files end without a newline
	prefix := ""
	if info, err := f.Stat(); err == nil && info.Size() > 0 {
		last := make([]byte, 1)
		if _, err := f.ReadAt(last, info.Size()-1); err != nil && err != io.EOF {
			return Task{}, fmt.Errorf("failed to read tasks: %w", err)
		}
		if last[0] != '\n' {
			prefix = "\n"
		}
	}

	line := FormatRecord(t)
	if _, err := f.WriteString(prefix + line + "\n"); err != nil {
		return Task{}, fmt.Errorf("failed to write task: %w", err)
	}

	t.raw = line
	t.Position = len(existing)
	all := append(existing, t)
	assignIDs(all)
	return all[len(all)-1], nil
}

// RewriteAll writes all records to a temp file and renames it over the store
func (s *TextStore) RewriteAll(ctx context.Context, tasks []Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, t := range tasks {
		if err := checkFields(t); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var sb strings.Builder
	for i := range tasks {
		sb.WriteString(tasks[i].Line())
		sb.WriteString("\n")
		tasks[i].Position = i
	}
	assignIDs(tasks)

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create task directory: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write tasks: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename tasks: %w", err)
	}

	return nil
}

// Close is a no-op for the text store
func (s *TextStore) Close() error {
	return nil
}
