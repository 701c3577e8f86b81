package tasks

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log"
	"strings"
	"time"
)

// Draft holds the user input for a new task
type Draft struct {
	AssignedUser string
	Title        string
	Description  string
	DueDate      string
}

// Change holds an edit; blank fields keep the current value
type Change struct {
	AssignedUser string
	DueDate      string
}

// MutationHook runs after every successful change to the store
type MutationHook func() error

// Service implements the task operations on top of a Store
type Service struct {
	store      Store
	now        func() time.Time
	exactMatch bool
	hooks      []MutationHook
}

// Option configures a Service
type Option func(*Service)

// WithClock overrides the time source used for created dates
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithExactMatchDelete makes Delete match whole titles instead of substrings
func WithExactMatchDelete(exact bool) Option {
	return func(s *Service) { s.exactMatch = exact }
}

// WithMutationHook registers a hook run after each successful mutation
func WithMutationHook(h MutationHook) Option {
	return func(s *Service) { s.hooks = append(s.hooks, h) }
}

// NewService creates a task service
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the service's current date
func (s *Service) Today() time.Time {
	return Day(s.now())
}

// load reads the store. Reads tolerate malformed records with a warning;
// writes refuse them because a rewrite would drop those lines.
func (s *Service) load(ctx context.Context, forWrite bool) ([]Task, error) {
	tasks, err := s.store.LoadAll(ctx)
	if err == nil {
		return tasks, nil
	}

	var malformed *MalformedError
	if errors.As(err, &malformed) && !forWrite {
		log.Printf("warning: skipping %v", malformed)
		return tasks, nil
	}
	return nil, err
}

func (s *Service) mutated() {
	for _, h := range s.hooks {
		if err := h(); err != nil {
			log.Printf("warning: mutation hook failed: %v", err)
		}
	}
}

// Add validates a draft and appends it as a pending task created today
func (s *Service) Add(ctx context.Context, d Draft) (Task, error) {
	d.AssignedUser = strings.TrimSpace(d.AssignedUser)
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.DueDate = strings.TrimSpace(d.DueDate)

	if d.AssignedUser == "" || d.Title == "" || d.Description == "" || d.DueDate == "" {
		return Task{}, ErrMissingField
	}

	due, err := ParseDate(d.DueDate)
	if err != nil {
		return Task{}, err
	}

	t, err := s.store.AppendOne(ctx, Task{
		AssignedUser: d.AssignedUser,
		Title:        d.Title,
		Description:  d.Description,
		DueDate:      due,
		CreatedDate:  s.Today(),
	})
	if err != nil {
		return Task{}, fmt.Errorf("failed to add task: %w", err)
	}

	s.mutated()
	return t, nil
}

// All returns every task in store order
func (s *Service) All(ctx context.Context) (iter.Seq[Task], error) {
	tasks, err := s.load(ctx, false)
	if err != nil {
		return nil, err
	}
	return func(yield func(Task) bool) {
		for _, t := range tasks {
			if !yield(t) {
				return
			}
		}
	}, nil
}

// Mine returns the tasks assigned to user, keeping their store positions
func (s *Service) Mine(ctx context.Context, user string) ([]Task, error) {
	return s.filter(ctx, func(t Task) bool { return t.AssignedUser == user })
}

// Completed returns all completed tasks
func (s *Service) Completed(ctx context.Context) ([]Task, error) {
	return s.filter(ctx, func(t Task) bool { return t.Completed })
}

func (s *Service) filter(ctx context.Context, keep func(Task) bool) ([]Task, error) {
	tasks, err := s.load(ctx, false)
	if err != nil {
		return nil, err
	}
	var result []Task
	for _, t := range tasks {
		if keep(t) {
			result = append(result, t)
		}
	}
	return result, nil
}

// Get returns the task with the given ID
func (s *Service) Get(ctx context.Context, id string) (Task, error) {
	tasks, err := s.load(ctx, false)
	if err != nil {
		return Task{}, err
	}
	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return Task{}, ErrTaskNotFound
}

// MarkComplete sets a pending task to completed. Completion is one-way.
func (s *Service) MarkComplete(ctx context.Context, id string) (Task, error) {
	return s.update(ctx, id, func(t *Task) (bool, error) {
		if t.Completed {
			return false, ErrAlreadyCompleted
		}
		t.Completed = true
		return true, nil
	})
}

// Edit reassigns a pending task and/or moves its due date. The change is
// validated in full before anything is written.
func (s *Service) Edit(ctx context.Context, id string, c Change) (Task, error) {
	user := strings.TrimSpace(c.AssignedUser)
	dueInput := strings.TrimSpace(c.DueDate)

	var due time.Time
	if dueInput != "" {
		d, err := ParseDate(dueInput)
		if err != nil {
			return Task{}, err
		}
		due = d
	}

	return s.update(ctx, id, func(t *Task) (bool, error) {
		if t.Completed {
			return false, ErrAlreadyCompleted
		}
		changed := false
		if user != "" && user != t.AssignedUser {
			t.AssignedUser = user
			changed = true
		}
		if !due.IsZero() && !due.Equal(t.DueDate) {
			t.DueDate = due
			changed = true
		}
		return changed, nil
	})
}

// update applies fn to the task with the given ID and rewrites the store
// when fn reports a change
func (s *Service) update(ctx context.Context, id string, fn func(*Task) (bool, error)) (Task, error) {
	tasks, err := s.load(ctx, true)
	if err != nil {
		return Task{}, err
	}

	idx := -1
	for i := range tasks {
		if tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Task{}, ErrTaskNotFound
	}

	updated := tasks[idx]
	changed, err := fn(&updated)
	if err != nil {
		return Task{}, err
	}
	if !changed {
		return tasks[idx], nil
	}

	updated.raw = ""
	tasks[idx] = updated
	if err := s.store.RewriteAll(ctx, tasks); err != nil {
		return Task{}, fmt.Errorf("failed to save tasks: %w", err)
	}

	s.mutated()
	return tasks[idx], nil
}

// Delete removes every task whose record contains title, or whose title equals
// it when exact matching is enabled. It returns the number of removed tasks.
func (s *Service) Delete(ctx context.Context, title string) (int, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, ErrMissingField
	}

	tasks, err := s.load(ctx, true)
	if err != nil {
		return 0, err
	}

	kept := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if s.matches(t, title) {
			continue
		}
		kept = append(kept, t)
	}

	removed := len(tasks) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	if err := s.store.RewriteAll(ctx, kept); err != nil {
		return 0, fmt.Errorf("failed to save tasks: %w", err)
	}

	s.mutated()
	return removed, nil
}

func (s *Service) matches(t Task, title string) bool {
	if s.exactMatch {
		return t.Title == title
	}
	return strings.Contains(t.Line(), title)
}
