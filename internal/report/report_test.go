package report

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tasktrack/tasktrack/internal/tasks"
)

var today = time.Date(2025, time.May, 20, 0, 0, 0, 0, time.UTC)

type staticUsers []string

func (u staticUsers) Usernames() []string { return u }

func task(user string, due time.Time, completed bool) tasks.Task {
	return tasks.Task{
		AssignedUser: user,
		Title:        "T",
		Description:  "D",
		DueDate:      due,
		CreatedDate:  time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
		Completed:    completed,
	}
}

func scenarioTasks() []tasks.Task {
	past := time.Date(2025, time.May, 12, 0, 0, 0, 0, time.UTC)
	return []tasks.Task{
		task("admin", past, true),
		task("bob", past, true),
		task("bob", past, false),
	}
}

func newTestGenerator(t *testing.T, content string, users ...string) (*Generator, string) {
	t.Helper()
	dir := t.TempDir()
	taskPath := filepath.Join(dir, "task.txt")
	if content != "" {
		if err := os.WriteFile(taskPath, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	g := NewGenerator(tasks.NewTextStore(taskPath), staticUsers(users),
		filepath.Join(dir, "task_overview.txt"), filepath.Join(dir, "user_overview.txt"))
	g.SetClock(func() time.Time { return today })
	return g, dir
}

func TestComputeScenario(t *testing.T) {
	t.Parallel()

	s := Compute(scenarioTasks(), []string{"admin", "bob"}, today)

	if s.Total != 3 || s.Completed != 2 || s.Uncompleted != 1 || s.Overdue != 1 {
		t.Errorf("Unexpected counts: %+v", s)
	}

	want := "Total tasks: 3\nCompleted: 2\nUncompleted: 1\nOverdue: 1\nIncomplete %: 33.33%\nOverdue %: 33.33%\n"
	if got := s.RenderTaskOverview(); got != want {
		t.Errorf("Expected task overview:\n%s\ngot:\n%s", want, got)
	}

	user := s.RenderUserOverview()
	for _, line := range []string{
		"Total users: 2",
		"User: admin\nTasks: 1\nCompleted: 100.00%\nOverdue: 0.00%",
		"User: bob\nTasks: 2\nCompleted: 50.00%\nOverdue: 50.00%",
	} {
		if !strings.Contains(user, line) {
			t.Errorf("Expected user overview to contain %q, got:\n%s", line, user)
		}
	}
}

func TestComputeInvariants(t *testing.T) {
	t.Parallel()

	cases := [][]tasks.Task{
		nil,
		scenarioTasks(),
		{task("a", today.AddDate(0, 0, 1), false), task("a", today, false)},
		{task("a", today.AddDate(0, 0, -3), false), task("b", today.AddDate(0, 0, -1), true)},
	}
	for i, all := range cases {
		s := Compute(all, []string{"a"}, today)
		if s.Completed+s.Uncompleted != s.Total {
			t.Errorf("case %d: completed + uncompleted != total: %+v", i, s)
		}
		if s.Overdue > s.Uncompleted {
			t.Errorf("case %d: overdue > uncompleted: %+v", i, s)
		}
	}
}

func TestComputeZeroTotal(t *testing.T) {
	t.Parallel()

	s := Compute(nil, []string{"admin"}, today)
	if !strings.Contains(s.RenderTaskOverview(), "Incomplete %: 0.00%") {
		t.Errorf("Expected 0.00%% for an empty store, got:\n%s", s.RenderTaskOverview())
	}
	if !strings.Contains(s.RenderUserOverview(), "User: admin\nTasks: 0\nCompleted: 0.00%") {
		t.Errorf("Expected 0.00%% for a user without tasks, got:\n%s", s.RenderUserOverview())
	}
}

func TestComputeUnknownAssignee(t *testing.T) {
	t.Parallel()

	s := Compute([]tasks.Task{task("ghost", today, false)}, []string{"admin"}, today)
	if s.Registered != 1 {
		t.Errorf("Expected 1 registered user, got %d", s.Registered)
	}
	if len(s.Users) != 2 || s.Users[1].Username != "ghost" || s.Users[1].Total != 1 {
		t.Errorf("Expected unknown assignee appended to breakdown, got %+v", s.Users)
	}
}

func TestGenerateWritesFiles(t *testing.T) {
	t.Parallel()

	content := "admin, A, D, 12 May 2025, 01 May 2025, Yes\n" +
		"bob, B, D, 12 May 2025, 01 May 2025, yes\n" +
		"bob, C, D, 12 May 2025, 01 May 2025, No\n"
	g, dir := newTestGenerator(t, content, "admin", "bob")

	if _, err := g.Generate(context.Background()); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	overview, err := os.ReadFile(filepath.Join(dir, "task_overview.txt"))
	if err != nil {
		t.Fatalf("Expected task overview to be written: %v", err)
	}
	if !strings.Contains(string(overview), "Overdue %: 33.33%") {
		t.Errorf("Unexpected task overview:\n%s", overview)
	}
	if _, err := os.Stat(filepath.Join(dir, "user_overview.txt")); err != nil {
		t.Errorf("Expected user overview to be written: %v", err)
	}
}

func TestGenerateMissingTasks(t *testing.T) {
	t.Parallel()

	g, dir := newTestGenerator(t, "", "admin")
	if _, err := g.Generate(context.Background()); !errors.Is(err, ErrTasksNotFound) {
		t.Fatalf("Expected ErrTasksNotFound, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "task_overview.txt")); !os.IsNotExist(err) {
		t.Error("Expected no report to be written")
	}
}

func TestGenerateSkipsMalformedLines(t *testing.T) {
	t.Parallel()

	g, _ := newTestGenerator(t, "bob, A, D, 12 May 2025, 01 May 2025, No\nbroken line\n", "bob")
	s, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if s.Total != 1 {
		t.Errorf("Expected 1 task, got %d", s.Total)
	}
}

func TestDisplayGeneratesWhenMissing(t *testing.T) {
	t.Parallel()

	g, _ := newTestGenerator(t, "bob, A, D, 12 Jun 2025, 01 May 2025, No\n", "bob")

	var out bytes.Buffer
	if err := g.Display(context.Background(), &out); err != nil {
		t.Fatalf("Display failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Generating reports first...", "--- Task Overview ---", "Total tasks: 1", "--- User Overview ---", "User: bob"} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, got)
		}
	}

	out.Reset()
	if err := g.Display(context.Background(), &out); err != nil {
		t.Fatalf("Display failed: %v", err)
	}
	if strings.Contains(out.String(), "Generating reports first...") {
		t.Error("Expected existing reports to be displayed without regenerating")
	}
}

func TestInvalidateRemovesReports(t *testing.T) {
	t.Parallel()

	g, dir := newTestGenerator(t, "bob, A, D, 12 Jun 2025, 01 May 2025, No\n", "bob")
	if _, err := g.Generate(context.Background()); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if err := g.Invalidate(); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	for _, name := range []string{"task_overview.txt", "user_overview.txt"} {
		if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
			t.Errorf("Expected %s to be removed", name)
		}
	}

	// Invalidating twice is fine
	if err := g.Invalidate(); err != nil {
		t.Errorf("Expected second Invalidate to succeed, got %v", err)
	}
}
