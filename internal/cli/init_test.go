package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tasktrack/tasktrack/internal/config"
	"github.com/tasktrack/tasktrack/internal/testutil"
)

func TestInitProject(t *testing.T) {
	// Cannot use t.Parallel() - modifies working directory
	env := testutil.SetupTestEnv(t)
	env.Chdir()

	var out bytes.Buffer
	if err := initProject(&out, false); err != nil {
		t.Fatalf("initProject failed: %v", err)
	}

	if !env.FileExists(".tasktrack/config.yaml") {
		t.Fatal("Expected .tasktrack/config.yaml to exist")
	}
	if !strings.Contains(env.ReadFile(".tasktrack/config.yaml"), "# tasktrack Project Configuration") {
		t.Error("Expected project config header")
	}
	if !strings.Contains(out.String(), "Initialized tasktrack in current directory") {
		t.Errorf("Unexpected output: %s", out.String())
	}

	// The written file must load
	if _, err := config.Load(); err != nil {
		t.Errorf("Expected written config to load: %v", err)
	}
}

func TestInitProjectAlreadyExists(t *testing.T) {
	// Cannot use t.Parallel() - modifies working directory
	env := testutil.SetupTestEnv(t)
	env.Chdir()
	env.CreateFile(".tasktrack/config.yaml", "version: \"1\"\n")

	var out bytes.Buffer
	if err := initProject(&out, false); err == nil {
		t.Error("Expected initProject to fail when config exists")
	}
	if err := initProject(&out, true); err != nil {
		t.Errorf("Expected initProject with force to succeed: %v", err)
	}
}

func TestInitGlobal(t *testing.T) {
	// Cannot use t.Parallel() - modifies HOME env var
	env := testutil.SetupTestEnv(t)
	env.Chdir()

	var out bytes.Buffer
	if err := initGlobal(&out, false, config.BackendSQLite); err != nil {
		t.Fatalf("initGlobal failed: %v", err)
	}

	configPath := filepath.Join(env.GlobalDir, "config.yaml")
	if !env.FileExists(configPath) {
		t.Fatal("Expected ~/.tasktrack/config.yaml to exist")
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Expected written config to load: %v", err)
	}
	if cfg.Storage.Backend != config.BackendSQLite {
		t.Errorf("Expected sqlite backend, got %s", cfg.Storage.Backend)
	}

	if err := initGlobal(&out, false, config.BackendText); err == nil {
		t.Error("Expected initGlobal to fail when config exists")
	}
	if err := initGlobal(&out, true, config.BackendText); err != nil {
		t.Errorf("Expected initGlobal with force to succeed: %v", err)
	}
}
