package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Tiliavir/caregiver-hours/internal/log"
)

// Config is the root configuration for cht, stored in ~/.cht/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	// Backend selects the entry store: "supabase", "sqlite" or "file".
	Backend  string         `json:"backend"`
	Supabase SupabaseConfig `json:"supabase"`
	SQLite   SQLiteConfig   `json:"sqlite"`
	File     FileConfig     `json:"file"`
	Log      LogConfig      `json:"log"`
}

// SupabaseConfig holds the hosted project connection settings.
type SupabaseConfig struct {
	URL    string `json:"url"`
	APIKey string `json:"api_key"`
	// AccessToken is an optional user JWT sent as bearer instead of APIKey.
	AccessToken   string `json:"access_token"`
	EntriesTable  string `json:"entries_table"`
	SettingsTable string `json:"settings_table"`
	// Timeout is a Go duration string, e.g. "30s".
	Timeout string `json:"timeout"`
}

// SQLiteConfig holds the local database location. Empty means ~/.cht/cht.db.
type SQLiteConfig struct {
	Path string `json:"path"`
}

// FileConfig holds the JSON day file root. Empty means ~/.cht/data.
type FileConfig struct {
	Dir string `json:"dir"`
}

// LogConfig controls diagnostic output on stderr.
type LogConfig struct {
	Level string `json:"level"`
}

const (
	BackendSupabase = "supabase"
	BackendSQLite   = "sqlite"
	BackendFile     = "file"

	DefaultBackend       = BackendSupabase
	DefaultEntriesTable  = "caregiver_entries"
	DefaultSettingsTable = "caregiver_settings"
	DefaultTimeout       = "30s"
	DefaultLogLevel      = "warn"
)

// Environment variables that override the file.
const (
	EnvBackend    = "CHT_BACKEND"
	EnvSupaURL    = "SUPABASE_URL"
	EnvSupaKey    = "SUPABASE_ANON_KEY"
	EnvSupaToken  = "SUPABASE_ACCESS_TOKEN"
	EnvSQLitePath = "CHT_SQLITE_PATH"
	EnvDataDir    = "CHT_DATA_DIR"
	EnvLogLevel   = "CHT_LOG_LEVEL"
)

// Backends lists the accepted backend names.
func Backends() []string {
	return []string{BackendSupabase, BackendSQLite, BackendFile}
}

// Default returns a Config pre-filled with the built-in defaults.
func Default() Config {
	return Config{
		Backend: DefaultBackend,
		Supabase: SupabaseConfig{
			EntriesTable:  DefaultEntriesTable,
			SettingsTable: DefaultSettingsTable,
			Timeout:       DefaultTimeout,
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing.
const configTemplate = `// cht configuration – ~/.cht/config.json
//
// Values set here can be overridden from the environment or a .env file in
// the working directory: CHT_BACKEND, SUPABASE_URL, SUPABASE_ANON_KEY,
// SUPABASE_ACCESS_TOKEN, CHT_SQLITE_PATH, CHT_DATA_DIR, CHT_LOG_LEVEL.
{
  // Where entries and the report recipient are stored.
  // • "supabase" – hosted project over HTTPS (default)
  // • "sqlite"   – local database file
  // • "file"     – local JSON day files
  "backend": "supabase",

  // ── Hosted project ────────────────────────────────────────────────────────
  "supabase": {
    // Project URL, e.g. "https://xyzcompany.supabase.co".
    "url": "",

    // Anon (publishable) API key of the project.
    "api_key": "",

    // Optional user access token (JWT) for row-level security policies.
    // Leave empty to authenticate with the api_key alone.
    "access_token": "",

    "entries_table": "caregiver_entries",
    "settings_table": "caregiver_settings",

    // Request timeout as a Go duration.
    "timeout": "30s"
  },

  // ── Local backends ────────────────────────────────────────────────────────
  // Leave empty to use ~/.cht/cht.db and ~/.cht/data.
  "sqlite": { "path": "" },
  "file": { "dir": "" },

  // Diagnostic output on stderr: "debug", "info", "warn" or "error".
  "log": { "level": "warn" }
}
`

// FilePath returns the path to ~/.cht/config.json.
func FilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".cht", "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads .env from the working directory, then ~/.cht/config.json
// (writing the annotated template on first run), then applies environment
// overrides.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Default(), fmt.Errorf("reading .env: %w", err)
	}
	path, err := FilePath()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

// LoadFile reads the config at path, creating it from the template if it
// does not exist, and applies environment overrides.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		cfg := Default()
		cfg.applyEnv()
		return cfg, nil
	}
	if err != nil {
		return Default(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(stripLineComments(data), &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}
	cfg.fillDefaults()
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) fillDefaults() {
	d := Default()
	if c.Backend == "" {
		c.Backend = d.Backend
	}
	if c.Supabase.EntriesTable == "" {
		c.Supabase.EntriesTable = d.Supabase.EntriesTable
	}
	if c.Supabase.SettingsTable == "" {
		c.Supabase.SettingsTable = d.Supabase.SettingsTable
	}
	if c.Supabase.Timeout == "" {
		c.Supabase.Timeout = d.Supabase.Timeout
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

func (c *Config) applyEnv() {
	override := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	override(&c.Backend, EnvBackend)
	override(&c.Supabase.URL, EnvSupaURL)
	override(&c.Supabase.APIKey, EnvSupaKey)
	override(&c.Supabase.AccessToken, EnvSupaToken)
	override(&c.SQLite.Path, EnvSQLitePath)
	override(&c.File.Dir, EnvDataDir)
	override(&c.Log.Level, EnvLogLevel)
}

// TimeoutDuration returns the parsed request timeout, falling back to the default.
func (s SupabaseConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(s.Timeout)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultTimeout)
	}
	return d
}

// Validate reports every problem with the selected backend's settings.
func (c Config) Validate() error {
	var errs []error
	switch c.Backend {
	case BackendSupabase:
		if c.Supabase.URL == "" {
			errs = append(errs, fmt.Errorf("supabase.url is required (or set %s)", EnvSupaURL))
		} else if u, err := url.Parse(c.Supabase.URL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("supabase.url %q is not an absolute URL", c.Supabase.URL))
		}
		if c.Supabase.APIKey == "" {
			errs = append(errs, fmt.Errorf("supabase.api_key is required (or set %s)", EnvSupaKey))
		}
		if d, err := time.ParseDuration(c.Supabase.Timeout); err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("supabase.timeout %q is not a positive duration", c.Supabase.Timeout))
		}
	case BackendSQLite, BackendFile:
	default:
		errs = append(errs, fmt.Errorf("backend %q is not one of %s", c.Backend, strings.Join(Backends(), ", ")))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
