// Package backend opens the entry store selected in the configuration.
package backend

import (
	"fmt"

	"github.com/Tiliavir/caregiver-hours/internal/config"
	"github.com/Tiliavir/caregiver-hours/internal/log"
	"github.com/Tiliavir/caregiver-hours/internal/sqlite"
	"github.com/Tiliavir/caregiver-hours/internal/storage"
	"github.com/Tiliavir/caregiver-hours/internal/supabase"
	"github.com/Tiliavir/caregiver-hours/internal/tracker"
)

// Result is an opened store and the function that releases it.
type Result struct {
	Store   tracker.Store
	Name    string
	Cleanup func() error
}

// Close runs Cleanup if there is one.
func (r *Result) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

// Open creates the store named by cfg.Backend.
func Open(cfg config.Config, logger *log.Logger) (*Result, error) {
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent("backend")

	switch cfg.Backend {
	case config.BackendSupabase:
		return openSupabase(cfg.Supabase, logger)
	case config.BackendSQLite:
		return openSQLite(cfg.SQLite, logger)
	case config.BackendFile:
		return openFile(cfg.File, logger)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Backend)
	}
}

func openSupabase(cfg config.SupabaseConfig, logger *log.Logger) (*Result, error) {
	client, err := supabase.NewClient(supabase.Config{
		URL:           cfg.URL,
		APIKey:        cfg.APIKey,
		AccessToken:   cfg.AccessToken,
		EntriesTable:  cfg.EntriesTable,
		SettingsTable: cfg.SettingsTable,
		Timeout:       cfg.TimeoutDuration(),
	})
	if err != nil {
		return nil, fmt.Errorf("initializing supabase client: %w", err)
	}
	logger.Debug("Initialized supabase backend", "url", cfg.URL, "entries_table", cfg.EntriesTable)
	return &Result{Store: client, Name: config.BackendSupabase}, nil
}

func openSQLite(cfg config.SQLiteConfig, logger *log.Logger) (*Result, error) {
	path := cfg.Path
	if path == "" {
		var err error
		if path, err = sqlite.DefaultPath(); err != nil {
			return nil, err
		}
	}
	store, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("initializing sqlite store: %w", err)
	}
	logger.Debug("Initialized sqlite backend", "db_path", path)
	return &Result{Store: store, Name: config.BackendSQLite, Cleanup: store.Close}, nil
}

func openFile(cfg config.FileConfig, logger *log.Logger) (*Result, error) {
	dir := cfg.Dir
	if dir == "" {
		var err error
		if dir, err = storage.DefaultDir(); err != nil {
			return nil, err
		}
	}
	store := storage.New(dir)
	logger.Debug("Initialized file backend", "data_directory", store.Dir())
	return &Result{Store: store, Name: config.BackendFile}, nil
}
