package main

import (
	"fmt"

	"moodflow/internal/app"
	"moodflow/internal/config"
	"moodflow/internal/db"
	"moodflow/internal/insight"
	"moodflow/internal/mood"
	"moodflow/internal/storage"

	"go.uber.org/zap"
)

func openStore(cfg config.Config) (storage.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return storage.NewMemory(), nil
	case config.DriverFile:
		return storage.NewFile(cfg.DataDir)
	case config.DriverSQLite:
		return storage.NewSQLite(cfg.SQLitePath)
	case config.DriverPostgres:
		gdb, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := db.AutoMigrateAndIndexes(gdb); err != nil {
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		return storage.NewPostgres(gdb), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// buildApp wires the store, journal and insight client. The caller closes
// the returned store.
func buildApp(cfg config.Config, log *zap.Logger) (*app.App, storage.Store, error) {
	store, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	journal := mood.NewJournal(store, cfg.StorageKey, log.Named("journal"), mood.WithLocation(loc))

	backend, err := insight.NewBackend(cfg.InsightProvider, cfg.InsightBaseURL, nil)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	client, err := insight.New(backend, insight.Options{
		Candidates:        cfg.InsightModels,
		Timeout:           cfg.InsightTimeout,
		DiagnosticTimeout: cfg.InsightDiagnosticTimeout,
		Language:          cfg.InsightLanguage,
	}, log.Named("insight"))
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	return app.New(journal, client, cfg.InsightWindowDays), store, nil
}
