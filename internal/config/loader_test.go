package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Version != "1" {
		t.Errorf("Expected version '1', got '%s'", cfg.Version)
	}

	if cfg.Storage.Backend != BackendText {
		t.Errorf("Expected backend '%s', got '%s'", BackendText, cfg.Storage.Backend)
	}

	if cfg.Auth.AdminUser != "admin" {
		t.Errorf("Expected admin user 'admin', got '%s'", cfg.Auth.AdminUser)
	}

	if cfg.Tasks.ExactMatchDelete {
		t.Error("Expected substring delete by default")
	}

	if cfg.UsersPath() != "user.txt" || cfg.TasksPath() != "task.txt" {
		t.Errorf("Unexpected default paths: %s, %s", cfg.UsersPath(), cfg.TasksPath())
	}
}

func TestResolveAgainstDataDir(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Data.Dir = "/srv/tasks"

	if got := cfg.TasksPath(); got != filepath.Join("/srv/tasks", "task.txt") {
		t.Errorf("Expected task path under data dir, got %s", got)
	}

	cfg.Reports.TaskOverview = "/tmp/overview.txt"
	if got := cfg.TaskOverviewPath(); got != "/tmp/overview.txt" {
		t.Errorf("Expected absolute path to be kept, got %s", got)
	}
}

func TestWriteDefault(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}

	if !strings.Contains(string(content), "backend: text") {
		t.Error("Expected 'backend: text' in config")
	}
	if !strings.Contains(string(content), "# sqlite_path:") {
		t.Error("Expected sqlite_path to be commented out for text backend")
	}
}

func TestWriteDefaultWithBackend_SQLite(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "config.yaml")
	if err := WriteDefaultWithBackend(path, BackendSQLite); err != nil {
		t.Fatalf("WriteDefaultWithBackend failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}

	if !strings.Contains(string(content), "  sqlite_path: tasks.db\n") {
		t.Error("Expected sqlite_path to be set for sqlite backend")
	}
}

func TestLoadMergesGlobalAndProject(t *testing.T) {
	// Cannot use t.Parallel() - modifies HOME and working directory
	home := t.TempDir()
	project := t.TempDir()
	t.Setenv("HOME", home)

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	defer os.Chdir(originalWd)
	if err := os.Chdir(project); err != nil {
		t.Fatalf("Failed to change to project directory: %v", err)
	}

	writeFile(t, filepath.Join(home, DirName, "config.yaml"), `
auth:
  admin_user: root
tasks:
  exact_match_delete: true
`)
	writeFile(t, filepath.Join(project, DirName, "config.yaml"), `
tasks:
  exact_match_delete: false
data:
  tasks_file: todo.txt
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Auth.AdminUser != "root" {
		t.Errorf("Expected admin user from global config, got '%s'", cfg.Auth.AdminUser)
	}
	if cfg.Tasks.ExactMatchDelete {
		t.Error("Expected project config to override exact_match_delete")
	}
	if cfg.Data.TasksFile != "todo.txt" {
		t.Errorf("Expected tasks file 'todo.txt', got '%s'", cfg.Data.TasksFile)
	}
	if cfg.Data.UsersFile != "user.txt" {
		t.Errorf("Expected default users file to survive merge, got '%s'", cfg.Data.UsersFile)
	}
}

func TestLoadWithOptions(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	explicit := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, explicit, `
storage:
  backend: sqlite
`)

	cfg, err := LoadWithOptions(Options{ConfigFile: explicit, DataDir: "/data"})
	if err != nil {
		t.Fatalf("LoadWithOptions failed: %v", err)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("Expected sqlite backend, got '%s'", cfg.Storage.Backend)
	}
	if cfg.Data.Dir != "/data" {
		t.Errorf("Expected data dir override, got '%s'", cfg.Data.Dir)
	}

	if _, err := LoadWithOptions(Options{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Error("Expected error for missing explicit config file")
	}
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Storage.Backend = "postgres"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for unknown backend")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}
