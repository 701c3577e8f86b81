package tasks

import (
	"bytes"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestWriteYAML(t *testing.T) {
	t.Parallel()

	pending := sampleTask("bob", "Write report")
	pending.ID = "id-1"
	done := sampleTask("admin", "Plan")
	done.ID = "id-2"
	done.Position = 1
	done.Completed = true

	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	if err := WriteYAML(&buf, []Task{pending, done}, now); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	var doc Export
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("Failed to parse export: %v\n%s", err, buf.String())
	}
	if doc.Version != 1 || len(doc.Tasks) != 2 {
		t.Fatalf("Unexpected export: %+v", doc)
	}

	first := doc.Tasks[0]
	if first.ID != "id-1" || first.Index != 1 || first.DueDate != "12 May 2025" {
		t.Errorf("Unexpected first record: %+v", first)
	}
	if !first.Overdue {
		t.Error("Expected pending task past its due date to be overdue")
	}
	if second := doc.Tasks[1]; !second.Completed || second.Overdue || second.Index != 2 {
		t.Errorf("Unexpected second record: %+v", second)
	}
}
