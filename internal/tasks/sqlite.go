package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS tasks (
	seq           INTEGER PRIMARY KEY AUTOINCREMENT,
	id            TEXT NOT NULL UNIQUE,
	assigned_user TEXT NOT NULL,
	title         TEXT NOT NULL,
	description   TEXT NOT NULL,
	due_date      TEXT NOT NULL,
	created_date  TEXT NOT NULL,
	completed     INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_tasks_assigned_user ON tasks(assigned_user);
`

// sqlDateLayout keeps dates sortable inside the database
const sqlDateLayout = "2006-01-02"

// SQLiteStore keeps tasks in a SQLite database. Fields need no escaping and
// task IDs are random UUIDs stored with the row.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed creates) the database at dbPath
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// LoadAll returns all rows in insertion order
func (s *SQLiteStore) LoadAll(ctx context.Context) ([]Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, assigned_user, title, description, due_date, created_date, completed
		FROM tasks
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		var due, created string
		if err := rows.Scan(&t.ID, &t.AssignedUser, &t.Title, &t.Description, &due, &created, &t.Completed); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		if t.DueDate, err = time.Parse(sqlDateLayout, due); err != nil {
			return nil, fmt.Errorf("task %s: bad due date %q: %w", t.ID, due, err)
		}
		if t.CreatedDate, err = time.Parse(sqlDateLayout, created); err != nil {
			return nil, fmt.Errorf("task %s: bad created date %q: %w", t.ID, created, err)
		}
		t.Position = len(tasks)
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

// AppendOne inserts a task with a new ID
func (s *SQLiteStore) AppendOne(ctx context.Context, t Task) (Task, error) {
	t.ID = uuid.New().String()
	if err := s.insert(ctx, s.db, t); err != nil {
		return Task{}, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&count); err != nil {
		return Task{}, fmt.Errorf("count tasks: %w", err)
	}
	t.Position = count - 1
	return t, nil
}

// RewriteAll replaces all rows in one transaction, keeping the given IDs
func (s *SQLiteStore) RewriteAll(ctx context.Context, tasks []Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}

	for i := range tasks {
		if tasks[i].ID == "" {
			tasks[i].ID = uuid.New().String()
		}
		if err := s.insert(ctx, tx, tasks[i]); err != nil {
			return err
		}
		tasks[i].Position = i
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tasks: %w", err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *SQLiteStore) insert(ctx context.Context, db execer, t Task) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO tasks (id, assigned_user, title, description, due_date, created_date, completed)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		t.ID, t.AssignedUser, t.Title, t.Description,
		t.DueDate.Format(sqlDateLayout),
		t.CreatedDate.Format(sqlDateLayout),
		t.Completed,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}
