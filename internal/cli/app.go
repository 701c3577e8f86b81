package cli

import (
	"fmt"

	"github.com/tasktrack/tasktrack/internal/config"
	"github.com/tasktrack/tasktrack/internal/credentials"
	"github.com/tasktrack/tasktrack/internal/report"
	"github.com/tasktrack/tasktrack/internal/tasks"
)

// app bundles the stores and services built from the merged configuration
type app struct {
	cfg     *config.Config
	creds   *credentials.Store
	store   tasks.Store
	tasks   *tasks.Service
	reports *report.Generator
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithOptions(config.Options{
		ConfigFile: cfgFile,
		DataDir:    dataDir,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// openApp loads configuration and opens the stores it names
func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	creds, err := credentials.Load(cfg.UsersPath(), credentials.WithHashing(cfg.Auth.HashPasswords))
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	store, err := openTaskStore(cfg)
	if err != nil {
		return nil, err
	}

	reports := report.NewGenerator(store, creds, cfg.TaskOverviewPath(), cfg.UserOverviewPath())
	svc := tasks.NewService(store,
		tasks.WithExactMatchDelete(cfg.Tasks.ExactMatchDelete),
		tasks.WithMutationHook(reports.Invalidate),
	)

	debugf("users: %s (%d), tasks: %s backend", cfg.UsersPath(), creds.Len(), cfg.Storage.Backend)

	return &app{
		cfg:     cfg,
		creds:   creds,
		store:   store,
		tasks:   svc,
		reports: reports,
	}, nil
}

func openTaskStore(cfg *config.Config) (tasks.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		store, err := tasks.NewSQLiteStore(cfg.SQLitePath())
		if err != nil {
			return nil, fmt.Errorf("failed to open task database: %w", err)
		}
		return store, nil
	default:
		return tasks.NewTextStore(cfg.TasksPath()), nil
	}
}

func (a *app) Close() error {
	return a.store.Close()
}
