package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func sampleTask(user, title string) Task {
	return Task{
		AssignedUser: user,
		Title:        title,
		Description:  "Description of " + title,
		DueDate:      time.Date(2025, time.May, 12, 0, 0, 0, 0, time.UTC),
		CreatedDate:  time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC),
	}
}

func writeTaskFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "task.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write task file: %v", err)
	}
	return path
}

func TestTextStoreMissingFile(t *testing.T) {
	t.Parallel()

	s := NewTextStore(filepath.Join(t.TempDir(), "task.txt"))
	tasks, err := s.LoadAll(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("Expected no tasks, got %d", len(tasks))
	}
}

func TestTextStoreAppendRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "task.txt")
	s := NewTextStore(path)

	want := sampleTask("bob", "Write report")
	added, err := s.AppendOne(ctx, want)
	if err != nil {
		t.Fatalf("AppendOne failed: %v", err)
	}
	if added.Position != 0 || added.ID == "" {
		t.Errorf("Expected position 0 and an ID, got %d %q", added.Position, added.ID)
	}

	tasks, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("Expected 1 task, got %d", len(tasks))
	}
	got := tasks[0]
	if got.AssignedUser != want.AssignedUser || got.Title != want.Title || got.Description != want.Description {
		t.Errorf("Text fields differ after round trip: %+v", got)
	}
	if !got.DueDate.Equal(want.DueDate) || !got.CreatedDate.Equal(want.CreatedDate) || got.Completed {
		t.Errorf("Dates or flag differ after round trip: %+v", got)
	}
	if got.ID != added.ID {
		t.Errorf("Expected ID %s after reload, got %s", added.ID, got.ID)
	}

	content, _ := os.ReadFile(path)
	if !strings.HasSuffix(string(content), ", No\n") {
		t.Errorf("Expected newline-terminated record ending ', No', got %q", content)
	}
}

func TestTextStoreLegacyFormat(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Leading blank line and no trailing newline, as older files were written
	path := writeTaskFile(t, "\nadmin, Old task, Legacy, 01 Jan 2024, 01 Dec 2023, yes")
	s := NewTextStore(path)

	tasks, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(tasks) != 1 || !tasks[0].Completed {
		t.Fatalf("Expected 1 completed legacy task, got %+v", tasks)
	}

	if _, err := s.AppendOne(ctx, sampleTask("bob", "New task")); err != nil {
		t.Fatalf("AppendOne failed: %v", err)
	}

	tasks, err = s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll after append failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("Expected 2 tasks, got %d", len(tasks))
	}
	if tasks[1].Title != "New task" || tasks[1].Position != 1 {
		t.Errorf("Expected appended task at position 1, got %+v", tasks[1])
	}
}

func TestTextStoreMalformedLines(t *testing.T) {
	t.Parallel()

	path := writeTaskFile(t, strings.Join([]string{
		"bob, A, Desc, 12 May 2025, 01 May 2025, No",
		"this line is broken",
		"bob, B, Desc, 12 May 2025, 01 May 2025, No",
	}, "\n"))

	tasks, err := NewTextStore(path).LoadAll(context.Background())
	var malformed *MalformedError
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected MalformedError, got %v", err)
	}
	if len(malformed.Lines) != 1 || malformed.Lines[0] != 2 {
		t.Errorf("Expected malformed line 2, got %v", malformed.Lines)
	}
	if len(tasks) != 2 {
		t.Errorf("Expected the 2 valid tasks alongside the error, got %d", len(tasks))
	}
}

func TestTextStoreRewriteKeepsIDsOfUntouchedRecords(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := NewTextStore(filepath.Join(t.TempDir(), "task.txt"))
	for _, title := range []string{"A", "B", "C"} {
		if _, err := s.AppendOne(ctx, sampleTask("bob", title)); err != nil {
			t.Fatalf("AppendOne failed: %v", err)
		}
	}

	before, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	// Drop the first record
	remaining := append([]Task(nil), before[1:]...)
	if err := s.RewriteAll(ctx, remaining); err != nil {
		t.Fatalf("RewriteAll failed: %v", err)
	}

	after, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(after) != 2 {
		t.Fatalf("Expected 2 tasks, got %d", len(after))
	}
	for i, want := range before[1:] {
		if after[i].ID != want.ID {
			t.Errorf("Expected ID of %s to survive rewrite", want.Title)
		}
		if after[i].Position != i {
			t.Errorf("Expected position %d, got %d", i, after[i].Position)
		}
		if remaining[i].Position != i {
			t.Errorf("Expected RewriteAll to update position of %s", want.Title)
		}
	}
}

func TestTextStoreDuplicateRecordsGetDistinctIDs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := NewTextStore(filepath.Join(t.TempDir(), "task.txt"))
	first, err := s.AppendOne(ctx, sampleTask("bob", "Same"))
	if err != nil {
		t.Fatalf("AppendOne failed: %v", err)
	}
	second, err := s.AppendOne(ctx, sampleTask("bob", "Same"))
	if err != nil {
		t.Fatalf("AppendOne failed: %v", err)
	}
	if first.ID == second.ID {
		t.Error("Expected identical records to get distinct IDs")
	}

	tasks, _ := s.LoadAll(ctx)
	if tasks[1].ID != second.ID {
		t.Error("Expected ID returned by AppendOne to match reloaded ID")
	}
	if tasks[0].ID == first.ID {
		t.Error("Expected a new duplicate to rename the existing identical record")
	}
}

func TestTextStoreRewriteRenamesChangedDuplicates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	line := "bob, T, D, 12 May 2025, 01 May 2025, No\n"
	s := NewTextStore(writeTaskFile(t, line+line+"bob, U, D, 12 May 2025, 01 May 2025, No\n"))

	before, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	changed := append([]Task(nil), before...)
	changed[0].Completed = true
	changed[0].raw = ""
	if err := s.RewriteAll(ctx, changed); err != nil {
		t.Fatalf("RewriteAll failed: %v", err)
	}

	after, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	for i, task := range after {
		if i < 2 && (task.ID == before[0].ID || task.ID == before[1].ID) {
			t.Errorf("Expected task %d to get a new ID, got stale %s", i+1, task.ID)
		}
	}
	if after[2].ID != before[2].ID {
		t.Error("Expected the unique record to keep its ID")
	}
}

func TestTextStoreRejectsDelimiterInField(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "task.txt")
	s := NewTextStore(path)

	bad := sampleTask("bob", "Title, with comma")
	if _, err := s.AppendOne(context.Background(), bad); !errors.Is(err, ErrDelimiterInField) {
		t.Errorf("Expected ErrDelimiterInField, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Expected no file to be written")
	}
}
