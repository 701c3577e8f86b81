package config

import (
	"os"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Data: DataConfig{
			UsersFile: "user.txt",
			TasksFile: "task.txt",
		},
		Storage: StorageConfig{
			Backend:    BackendText,
			SQLitePath: "tasks.db",
		},
		Auth: AuthConfig{
			AdminUser: "admin",
		},
		Reports: ReportsConfig{
			TaskOverview: "task_overview.txt",
			UserOverview: "user_overview.txt",
		},
		Web: WebConfig{
			Addr: ":8080",
		},
	}
}

// WriteDefault writes the default global configuration to a file
func WriteDefault(path string) error {
	return WriteDefaultWithBackend(path, BackendText)
}

// WriteDefaultWithBackend writes the default global configuration with a specific backend
func WriteDefaultWithBackend(path string, backend string) error {
	sqliteSection := `  # sqlite_path: tasks.db  # used when backend = "sqlite"`
	if backend == BackendSQLite {
		sqliteSection = `  sqlite_path: tasks.db`
	}

	content := `# tasktrack Global Configuration
version: "1"

# Record files (relative paths resolve against data.dir, default: working directory)
data:
  dir: ""
  users_file: user.txt
  tasks_file: task.txt

# Task store
storage:
  backend: ` + backend + `  # "text" (user.txt/task.txt format) or "sqlite"
` + sqliteSection + `

# Login and registration
auth:
  admin_user: admin
  # Store bcrypt hashes for newly registered users
  hash_passwords: false

# Task operations
tasks:
  # Delete only tasks whose title matches exactly (default: substring of the record)
  exact_match_delete: false

# Summary reports
reports:
  task_overview: task_overview.txt
  user_overview: user_overview.txt

# Read-only HTTP API (tasktrack serve)
web:
  addr: ":8080"
`
	return os.WriteFile(path, []byte(content), 0644)
}

// WriteProjectDefault writes the default project configuration to a file
func WriteProjectDefault(path string) error {
	content := `# tasktrack Project Configuration
version: "1"

# Override global settings as needed
# data:
#   dir: ""
# storage:
#   backend: text
# tasks:
#   exact_match_delete: false
`
	return os.WriteFile(path, []byte(content), 0644)
}
