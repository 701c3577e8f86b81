package tasks

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Record is the external representation of a task used by the YAML export
// and the HTTP API
type Record struct {
	ID           string `yaml:"id" json:"id"`
	Index        int    `yaml:"index" json:"index"`
	AssignedUser string `yaml:"assigned_user" json:"assignedUser"`
	Title        string `yaml:"title" json:"title"`
	Description  string `yaml:"description" json:"description"`
	DueDate      string `yaml:"due_date" json:"dueDate"`
	CreatedDate  string `yaml:"created_date" json:"createdDate"`
	Completed    bool   `yaml:"completed" json:"completed"`
	Overdue      bool   `yaml:"overdue" json:"overdue"`
}

// ToRecord converts a task; today decides the overdue flag
func (t Task) ToRecord(today time.Time) Record {
	return Record{
		ID:           t.ID,
		Index:        t.Index(),
		AssignedUser: t.AssignedUser,
		Title:        t.Title,
		Description:  t.Description,
		DueDate:      FormatDate(t.DueDate),
		CreatedDate:  FormatDate(t.CreatedDate),
		Completed:    t.Completed,
		Overdue:      t.Overdue(today),
	}
}

// Export is the document written by WriteYAML
type Export struct {
	Version    int       `yaml:"version"`
	ExportedAt time.Time `yaml:"exported_at"`
	Tasks      []Record  `yaml:"tasks"`
}

// WriteYAML writes tasks as a YAML document
func WriteYAML(w io.Writer, tasks []Task, now time.Time) error {
	doc := Export{
		Version:    1,
		ExportedAt: now.UTC().Truncate(time.Second),
		Tasks:      make([]Record, 0, len(tasks)),
	}
	for _, t := range tasks {
		doc.Tasks = append(doc.Tasks, t.ToRecord(now))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to marshal tasks: %w", err)
	}
	return enc.Close()
}
