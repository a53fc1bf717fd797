package backend_test

import (
	"path/filepath"
	"testing"

	"github.com/Tiliavir/caregiver-hours/internal/backend"
	"github.com/Tiliavir/caregiver-hours/internal/config"
	"github.com/Tiliavir/caregiver-hours/internal/sqlite"
	"github.com/Tiliavir/caregiver-hours/internal/storage"
	"github.com/Tiliavir/caregiver-hours/internal/supabase"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		mutate func(*config.Config)
		check  func(*testing.T, *backend.Result)
	}{
		{
			name: "supabase",
			mutate: func(c *config.Config) {
				c.Supabase.URL = "https://example.supabase.co"
				c.Supabase.APIKey = "anon"
			},
			check: func(t *testing.T, r *backend.Result) {
				if _, ok := r.Store.(*supabase.Client); !ok {
					t.Errorf("store = %T", r.Store)
				}
			},
		},
		{
			name: "sqlite",
			mutate: func(c *config.Config) {
				c.Backend = config.BackendSQLite
				c.SQLite.Path = filepath.Join(dir, "cht.db")
			},
			check: func(t *testing.T, r *backend.Result) {
				if _, ok := r.Store.(*sqlite.Store); !ok {
					t.Errorf("store = %T", r.Store)
				}
				if r.Cleanup == nil {
					t.Error("sqlite backend needs a cleanup")
				}
			},
		},
		{
			name: "file",
			mutate: func(c *config.Config) {
				c.Backend = config.BackendFile
				c.File.Dir = filepath.Join(dir, "data")
			},
			check: func(t *testing.T, r *backend.Result) {
				s, ok := r.Store.(*storage.Store)
				if !ok {
					t.Fatalf("store = %T", r.Store)
				}
				if s.Dir() != filepath.Join(dir, "data") {
					t.Errorf("dir = %q", s.Dir())
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			r, err := backend.Open(cfg, nil)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer r.Close()
			if r.Name != cfg.Backend {
				t.Errorf("name = %q, want %q", r.Name, cfg.Backend)
			}
			tt.check(t, r)
		})
	}
}

func TestOpenErrors(t *testing.T) {
	cfg := config.Default()
	if _, err := backend.Open(cfg, nil); err == nil {
		t.Error("supabase without credentials: expected error")
	}
	cfg.Backend = "csv"
	if _, err := backend.Open(cfg, nil); err == nil {
		t.Error("unknown backend: expected error")
	}
}

func TestResultCloseNil(t *testing.T) {
	var r *backend.Result
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil: %v", err)
	}
}
