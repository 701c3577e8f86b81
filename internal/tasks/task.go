package tasks

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// Delimiter separates the fields of a task record
	Delimiter = ", "

	// DateLayout is the canonical "DD Mon YYYY" form written to the store
	DateLayout = "02 Jan 2006"

	// parseLayout also accepts a single digit day
	parseLayout = "2 Jan 2006"

	flagYes = "Yes"
	flagNo  = "No"

	recordFields = 6
)

var (
	ErrNotFound         = errors.New("task store not found")
	ErrTaskNotFound     = errors.New("task not found")
	ErrMissingField     = errors.New("all fields are required")
	ErrInvalidDate      = errors.New("invalid date format, use 'dd Mon YYYY'")
	ErrAlreadyCompleted = errors.New("task already completed")
	ErrDelimiterInField = errors.New("fields must not contain \", \" or line breaks")
)

// Task is one record of the task store
type Task struct {
	// ID identifies the task across rewrites of other records
	ID string
	// Position is the 0-based position in the store
	Position int

	AssignedUser string
	Title        string
	Description  string
	DueDate      time.Time
	CreatedDate  time.Time
	Completed    bool

	// raw is the line the task was read from, if any
	raw string
}

// Index returns the 1-based number shown to users
func (t Task) Index() int {
	return t.Position + 1
}

// Line returns the record as stored
func (t Task) Line() string {
	if t.raw != "" {
		return t.raw
	}
	return FormatRecord(t)
}

// Overdue reports whether an uncompleted task is past its due date
func (t Task) Overdue(today time.Time) bool {
	return !t.Completed && t.DueDate.Before(Day(today))
}

// CompletedFlag returns the canonical Yes/No flag
func (t Task) CompletedFlag() string {
	if t.Completed {
		return flagYes
	}
	return flagNo
}

// ParseDate parses a "DD Mon YYYY" date; the month name is case-insensitive
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(parseLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// FormatDate formats a date in the canonical store form
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// Day truncates t to its calendar date
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatRecord renders a task as a store line without the trailing newline
func FormatRecord(t Task) string {
	return strings.Join([]string{
		t.AssignedUser,
		t.Title,
		t.Description,
		FormatDate(t.DueDate),
		FormatDate(t.CreatedDate),
		t.CompletedFlag(),
	}, Delimiter)
}

// ParseRecord parses one store line
func ParseRecord(line string) (Task, error) {
	line = strings.TrimSpace(line)
	parts := strings.Split(line, Delimiter)
	if len(parts) != recordFields {
		return Task{}, fmt.Errorf("expected %d fields, got %d", recordFields, len(parts))
	}

	due, err := ParseDate(parts[3])
	if err != nil {
		return Task{}, fmt.Errorf("due date: %w", err)
	}
	created, err := ParseDate(parts[4])
	if err != nil {
		return Task{}, fmt.Errorf("created date: %w", err)
	}

	return Task{
		AssignedUser: parts[0],
		Title:        parts[1],
		Description:  parts[2],
		DueDate:      due,
		CreatedDate:  created,
		Completed:    strings.EqualFold(parts[5], flagYes),
		raw:          line,
	}, nil
}

// checkFields rejects values that would corrupt a delimited record
func checkFields(t Task) error {
	for _, v := range []string{t.AssignedUser, t.Title, t.Description} {
		if strings.Contains(v, Delimiter) || strings.ContainsAny(v, "\r\n") {
			return ErrDelimiterInField
		}
	}
	return nil
}

// MalformedError reports store lines that could not be parsed.
// It is returned alongside the records that did parse.
type MalformedError struct {
	Path  string
	Lines []int
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s: %d malformed record(s) on line(s) %s",
		e.Path, len(e.Lines), joinInts(e.Lines))
}

func joinInts(v []int) string {
	s := make([]string, len(v))
	for i, n := range v {
		s[i] = fmt.Sprint(n)
	}
	return strings.Join(s, ",")
}
