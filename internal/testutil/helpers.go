// Package testutil provides reusable test utilities for tasktrack tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestEnv provides access to isolated test directories
type TestEnv struct {
	Home       string // Mocked HOME directory
	ProjectDir string // Test project directory, holds user.txt and task.txt
	GlobalDir  string // ~/.tasktrack equivalent
	ProjectCfg string // .tasktrack in project
	t          *testing.T
}

// SetupTestEnv creates an isolated test environment with mocked HOME.
// Uses t.TempDir() for automatic cleanup and t.Setenv() for automatic env restoration.
func SetupTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpHome := t.TempDir()
	tmpProject := t.TempDir()

	globalDir := filepath.Join(tmpHome, ".tasktrack")
	projectCfg := filepath.Join(tmpProject, ".tasktrack")

	if err := os.MkdirAll(globalDir, 0755); err != nil {
		t.Fatalf("Failed to create global .tasktrack: %v", err)
	}

	// Set HOME to temp directory (auto-restored after test)
	t.Setenv("HOME", tmpHome)

	return &TestEnv{
		Home:       tmpHome,
		ProjectDir: tmpProject,
		GlobalDir:  globalDir,
		ProjectCfg: projectCfg,
		t:          t,
	}
}

// Chdir changes into the project directory until the test ends.
// Tests calling it must not run in parallel.
func (e *TestEnv) Chdir() {
	e.t.Helper()

	originalWd, err := os.Getwd()
	if err != nil {
		e.t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(e.ProjectDir); err != nil {
		e.t.Fatalf("Failed to change to project directory: %v", err)
	}
	e.t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			e.t.Errorf("Failed to restore working directory: %v", err)
		}
	})
}

// CreateFile creates a file with the given content in the test environment.
func (e *TestEnv) CreateFile(path, content string) {
	e.t.Helper()

	fullPath := e.path(path)
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		e.t.Fatalf("Failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		e.t.Fatalf("Failed to write file %s: %v", fullPath, err)
	}
}

// CreateGlobalFile creates a file relative to the global .tasktrack directory.
func (e *TestEnv) CreateGlobalFile(relPath, content string) {
	e.t.Helper()
	e.CreateFile(filepath.Join(e.GlobalDir, relPath), content)
}

// SeedUsers writes user.txt in the project directory.
func (e *TestEnv) SeedUsers(content string) {
	e.t.Helper()
	e.CreateFile("user.txt", content)
}

// SeedTasks writes task.txt in the project directory.
func (e *TestEnv) SeedTasks(content string) {
	e.t.Helper()
	e.CreateFile("task.txt", content)
}

// ReadFile reads a file from the test environment.
func (e *TestEnv) ReadFile(path string) string {
	e.t.Helper()

	data, err := os.ReadFile(e.path(path))
	if err != nil {
		e.t.Fatalf("Failed to read file %s: %v", e.path(path), err)
	}
	return string(data)
}

// FileExists checks if a file exists in the test environment.
func (e *TestEnv) FileExists(path string) bool {
	e.t.Helper()

	_, err := os.Stat(e.path(path))
	return err == nil
}

func (e *TestEnv) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(e.ProjectDir, p)
}
