package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Tiliavir/caregiver-hours/internal/model"
	"github.com/Tiliavir/caregiver-hours/internal/sqlite"
)

func openTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "data", "cht.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cht.db")
	s, err := sqlite.Open(path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	s.Close()
	s, err = sqlite.Open(path)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	s.Close()
}

func TestInsertListDelete(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	for _, in := range []model.NewEntry{
		{Date: "2025-03-01", Hours: 4},
		{Date: "2025-03-03", Hours: 6, Expenses: 12.5, Comments: "drove to pharmacy"},
		{Date: "2025-04-01", Hours: 3},
	} {
		if _, err := s.InsertEntry(ctx, in); err != nil {
			t.Fatalf("InsertEntry(%+v): %v", in, err)
		}
	}

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	got, err := s.ListEntries(ctx, from, to)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("entries = %+v, want 2", got)
	}
	if got[0].Date != "2025-03-03" || got[0].Comments != "drove to pharmacy" || got[0].Expenses != 12.5 {
		t.Errorf("entries[0] = %+v", got[0])
	}

	if err := s.DeleteEntry(ctx, got[0].ID); err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}
	if err := s.DeleteEntry(ctx, 12345); err != nil {
		t.Errorf("DeleteEntry unknown id: %v", err)
	}
	got, err = s.ListEntries(ctx, from, to)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Date != "2025-03-01" {
		t.Errorf("after delete = %+v", got)
	}
}

func TestInsertRejectsMalformedDate(t *testing.T) {
	s := openTestStore(t)
	for _, d := range []string{"2025-13-40", "yesterday", ""} {
		if _, err := s.InsertEntry(context.Background(), model.NewEntry{Date: d, Hours: 1}); err == nil {
			t.Errorf("InsertEntry(date=%q): expected constraint error", d)
		}
	}
}

func TestSettingsUpsert(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	got, err := s.GetSettings(ctx)
	if err != nil || got != nil {
		t.Fatalf("GetSettings fresh = %+v, %v", got, err)
	}
	for _, email := range []string{"a@example.com", "b@example.com"} {
		if err := s.UpsertSettings(ctx, email); err != nil {
			t.Fatalf("UpsertSettings(%q): %v", email, err)
		}
	}
	got, err = s.GetSettings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.ID != model.SettingsID || got.RecipientEmail != "b@example.com" {
		t.Errorf("settings = %+v", got)
	}
}
