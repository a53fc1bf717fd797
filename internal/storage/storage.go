// Package storage is a Store keeping entries as human-readable JSON day
// files under a local directory.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Tiliavir/caregiver-hours/internal/model"
	"github.com/Tiliavir/caregiver-hours/internal/paycalc"
)

const (
	metaFile     = "meta.json"
	settingsFile = "settings.json"
)

// Store keeps one JSON file per day at <base>/YYYY/MM/DD.json.
type Store struct {
	base string
	mu   sync.Mutex
}

type meta struct {
	NextID int64 `json:"next_id"`
}

// DefaultDir returns the default data directory (~/.cht/data).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".cht", "data"), nil
}

// New returns a Store rooted at base. The directory is created lazily.
func New(base string) *Store {
	return &Store{base: base}
}

// Dir returns the root directory of the store.
func (s *Store) Dir() string {
	return s.base
}

// dayFilePath returns the path for the given date's JSON file.
func dayFilePath(base string, t time.Time) string {
	return filepath.Join(base, t.Format("2006"), t.Format("01"), t.Format("02")+".json")
}

// LoadDay loads the DayFile for the given date. Returns an empty DayFile if not found.
func LoadDay(base string, t time.Time) (model.DayFile, error) {
	path := dayFilePath(base, t)
	df, err := loadDayFile(path)
	if os.IsNotExist(err) {
		return model.DayFile{Date: paycalc.FormatDate(t), Entries: []model.Entry{}}, nil
	}
	return df, err
}

func loadDayFile(path string) (model.DayFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DayFile{}, err
		}
		return model.DayFile{}, fmt.Errorf("storage error reading %s: %w", path, err)
	}

	var df model.DayFile
	if err := json.Unmarshal(data, &df); err != nil {
		// Back up corrupt file and abort.
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		return model.DayFile{}, fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", path, backupPath, err)
	}
	return df, nil
}

// SaveDay atomically writes a DayFile for the given date.
func SaveDay(base string, t time.Time, df model.DayFile) error {
	return writeJSON(dayFilePath(base, t), df)
}

// writeJSON atomically writes v as indented JSON: temp file, then rename.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}

// LoadRange loads all entries in [from, to] inclusive, in day order.
func LoadRange(base string, from, to time.Time) ([]model.Entry, error) {
	var entries []model.Entry
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		df, err := LoadDay(base, d)
		if err != nil {
			return nil, err
		}
		entries = append(entries, df.Entries...)
	}
	return entries, nil
}

// ListEntries returns entries dated within [from, to], newest first.
func (s *Store) ListEntries(_ context.Context, from, to time.Time) ([]model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := LoadRange(s.base, from, to)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.Entry{}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date > entries[j].Date
		}
		return entries[i].ID > entries[j].ID
	})
	return entries, nil
}

// InsertEntry appends an entry to its day file and assigns it the next id.
func (s *Store) InsertEntry(_ context.Context, e model.NewEntry) (model.Entry, error) {
	day, err := paycalc.ParseDate(e.Date)
	if err != nil {
		return model.Entry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	df, err := LoadDay(s.base, day)
	if err != nil {
		return model.Entry{}, err
	}
	id, err := s.allocateID()
	if err != nil {
		return model.Entry{}, err
	}
	created := model.Entry{
		ID:       id,
		Date:     paycalc.FormatDate(day),
		Hours:    e.Hours,
		Comments: e.Comments,
		Expenses: e.Expenses,
	}
	df.Entries = append(df.Entries, created)
	if err := SaveDay(s.base, day, df); err != nil {
		return model.Entry{}, err
	}
	return created, nil
}

// allocateID reserves the next entry id in meta.json. Callers hold s.mu.
func (s *Store) allocateID() (int64, error) {
	path := filepath.Join(s.base, metaFile)
	m := meta{NextID: 1}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &m); err != nil {
			return 0, fmt.Errorf("corrupt JSON in %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return 0, fmt.Errorf("storage error reading %s: %w", path, err)
	}
	if m.NextID < 1 {
		m.NextID = 1
	}
	id := m.NextID
	m.NextID++
	if err := writeJSON(path, m); err != nil {
		return 0, err
	}
	return id, nil
}

// DeleteEntry removes the entry with id from whichever day file holds it.
// An unknown id is not an error.
func (s *Store) DeleteEntry(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	errFound := errors.New("found")
	err := filepath.WalkDir(s.base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() || !isDayFile(s.base, path) {
			return nil
		}
		df, err := loadDayFile(path)
		if err != nil {
			return err
		}
		for i, e := range df.Entries {
			if e.ID == id {
				df.Entries = append(df.Entries[:i], df.Entries[i+1:]...)
				if err := writeJSON(path, df); err != nil {
					return err
				}
				return errFound
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, errFound) {
		return fmt.Errorf("deleting entry %d: %w", id, err)
	}
	return nil
}

// isDayFile reports whether path looks like <base>/YYYY/MM/DD.json.
func isDayFile(base, path string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil || !strings.HasSuffix(rel, ".json") {
		return false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	return len(parts) == 3 && len(parts[0]) == 4 && len(parts[1]) == 2 && len(parts[2]) == len("02.json")
}

// GetSettings reads settings.json, returning nil when it does not exist.
func (s *Store) GetSettings(_ context.Context) (*model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.base, settingsFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", path, err)
	}
	var st model.Settings
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("corrupt JSON in %s: %w", path, err)
	}
	return &st, nil
}

// UpsertSettings overwrites settings.json.
func (s *Store) UpsertSettings(_ context.Context, recipientEmail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSON(filepath.Join(s.base, settingsFile), model.Settings{
		ID:             model.SettingsID,
		RecipientEmail: recipientEmail,
	})
}
