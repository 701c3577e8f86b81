package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DirName is the name of the global and project configuration directories
const DirName = ".tasktrack"

// Options adjusts how Load resolves configuration
type Options struct {
	// ConfigFile is an explicit config file applied after global and project config
	ConfigFile string
	// DataDir overrides data.dir when non-empty
	DataDir string
}

// Load loads and merges configuration from global and project sources
func Load() (*Config, error) {
	return LoadWithOptions(Options{})
}

// LoadWithOptions loads global, project and explicit configuration in that order,
// each overriding the previous one
func LoadWithOptions(opts Options) (*Config, error) {
	cfg := DefaultConfig()

	if home, err := os.UserHomeDir(); err == nil {
		globalPath := filepath.Join(home, DirName, "config.yaml")
		if err := loadFile(globalPath, cfg); err != nil && !os.IsNotExist(err) {
			log.Printf("warning: ignoring global config %s: %v", globalPath, err)
		}
	}

	if cwd, err := os.Getwd(); err == nil {
		projectPath := filepath.Join(cwd, DirName, "config.yaml")
		if err := loadFile(projectPath, cfg); err != nil && !os.IsNotExist(err) {
			log.Printf("warning: ignoring project config %s: %v", projectPath, err)
		}
	}

	// An explicitly requested file must exist and parse
	if opts.ConfigFile != "" {
		if err := loadFile(opts.ConfigFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", opts.ConfigFile, err)
		}
	}

	if opts.DataDir != "" {
		cfg.Data.Dir = opts.DataDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

// Validate checks option values that cannot be defaulted
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendText, BackendSQLite:
	default:
		return fmt.Errorf("invalid storage backend '%s': must be '%s' or '%s'",
			c.Storage.Backend, BackendText, BackendSQLite)
	}
	if c.Auth.AdminUser == "" {
		return fmt.Errorf("auth.admin_user must not be empty")
	}
	return nil
}

// resolve joins a configured file name onto data.dir unless it is absolute
func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) || c.Data.Dir == "" {
		return name
	}
	return filepath.Join(c.Data.Dir, name)
}

// UsersPath returns the path of the credential file
func (c *Config) UsersPath() string { return c.resolve(c.Data.UsersFile) }

// TasksPath returns the path of the task file
func (c *Config) TasksPath() string { return c.resolve(c.Data.TasksFile) }

// SQLitePath returns the path of the sqlite task database
func (c *Config) SQLitePath() string { return c.resolve(c.Storage.SQLitePath) }

// TaskOverviewPath returns the path of the task overview summary
func (c *Config) TaskOverviewPath() string { return c.resolve(c.Reports.TaskOverview) }

// UserOverviewPath returns the path of the user overview summary
func (c *Config) UserOverviewPath() string { return c.resolve(c.Reports.UserOverview) }

// GlobalConfigPath returns the path to the global config file
func GlobalConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DirName, "config.yaml")
}

// ProjectConfigPath returns the path to the project config file
func ProjectConfigPath() string {
	cwd, _ := os.Getwd()
	return filepath.Join(cwd, DirName, "config.yaml")
}

// GlobalDir returns the path to the global tasktrack directory
func GlobalDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DirName)
}

// ProjectDir returns the path to the project tasktrack directory
func ProjectDir() string {
	cwd, _ := os.Getwd()
	return filepath.Join(cwd, DirName)
}
