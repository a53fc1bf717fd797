// Package supabase is a Store backed by a hosted PostgREST table API.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Tiliavir/caregiver-hours/internal/model"
	"github.com/Tiliavir/caregiver-hours/internal/paycalc"
)

const restPath = "/rest/v1/"

// Default table names.
const (
	DefaultEntriesTable  = "caregiver_entries"
	DefaultSettingsTable = "caregiver_settings"
)

// Config holds the connection settings of the hosted project.
type Config struct {
	// URL is the project URL, e.g. https://xyz.supabase.co.
	URL string
	// APIKey is the project's anon (publishable) key.
	APIKey string
	// AccessToken optionally replaces APIKey as bearer token.
	AccessToken   string
	EntriesTable  string
	SettingsTable string
	Timeout       time.Duration
	// Transport overrides http.DefaultTransport; used by tests.
	Transport http.RoundTripper
}

// Client talks to the REST API of a hosted project.
type Client struct {
	baseURL       string
	entriesTable  string
	settingsTable string
	httpClient    *http.Client
}

// APIError is a non-2xx response from the REST API.
type APIError struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Code != "" {
		return fmt.Sprintf("supabase error %d (%s): %s", e.Status, e.Code, msg)
	}
	return fmt.Sprintf("supabase error %d: %s", e.Status, msg)
}

// NewClient validates cfg and returns a client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("supabase url is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("supabase api key is required")
	}
	u, err := url.Parse(cfg.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid supabase url %q", cfg.URL)
	}
	if cfg.EntriesTable == "" {
		cfg.EntriesTable = DefaultEntriesTable
	}
	if cfg.SettingsTable == "" {
		cfg.SettingsTable = DefaultSettingsTable
	}
	return &Client{
		baseURL:       strings.TrimRight(cfg.URL, "/") + restPath,
		entriesTable:  cfg.EntriesTable,
		settingsTable: cfg.SettingsTable,
		httpClient:    newHTTPClient(cfg, cfg.Transport),
	}, nil
}

// ListEntries fetches entries dated within [from, to], newest first.
func (c *Client) ListEntries(ctx context.Context, from, to time.Time) ([]model.Entry, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Add("date", "gte."+paycalc.FormatDate(from))
	q.Add("date", "lte."+paycalc.FormatDate(to))
	q.Set("order", "date.desc,id.desc")

	var entries []model.Entry
	if err := c.do(ctx, http.MethodGet, c.entriesTable, q, nil, "", &entries); err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	if entries == nil {
		entries = []model.Entry{}
	}
	return entries, nil
}

// InsertEntry creates a row and returns it with its assigned id.
func (c *Client) InsertEntry(ctx context.Context, e model.NewEntry) (model.Entry, error) {
	var created []model.Entry
	err := c.do(ctx, http.MethodPost, c.entriesTable, nil, []model.NewEntry{e}, "return=representation", &created)
	if err != nil {
		return model.Entry{}, fmt.Errorf("inserting entry: %w", err)
	}
	if len(created) == 0 {
		return model.Entry{}, errors.New("inserting entry: no row returned")
	}
	return created[0], nil
}

// DeleteEntry deletes the row with the given id. Unknown ids are not an error.
func (c *Client) DeleteEntry(ctx context.Context, id int64) error {
	q := url.Values{}
	q.Set("id", "eq."+strconv.FormatInt(id, 10))
	if err := c.do(ctx, http.MethodDelete, c.entriesTable, q, nil, "return=minimal", nil); err != nil {
		return fmt.Errorf("deleting entry %d: %w", id, err)
	}
	return nil
}

// GetSettings returns the settings row, or nil when it does not exist yet.
func (c *Client) GetSettings(ctx context.Context) (*model.Settings, error) {
	q := url.Values{}
	q.Set("select", "id,recipient_email")
	q.Set("id", "eq."+strconv.Itoa(model.SettingsID))
	q.Set("limit", "1")

	var rows []model.Settings
	if err := c.do(ctx, http.MethodGet, c.settingsTable, q, nil, "", &rows); err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// UpsertSettings writes the recipient to the fixed settings row.
func (c *Client) UpsertSettings(ctx context.Context, recipientEmail string) error {
	q := url.Values{}
	q.Set("on_conflict", "id")
	row := model.Settings{ID: model.SettingsID, RecipientEmail: recipientEmail}
	if err := c.do(ctx, http.MethodPost, c.settingsTable, q, row, "resolution=merge-duplicates,return=minimal", nil); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

// do performs one REST call. body is JSON-encoded when non-nil; out is
// decoded from a 2xx response when non-nil.
func (c *Client) do(ctx context.Context, method, table string, q url.Values, body any, prefer string, out any) error {
	endpoint := c.baseURL + url.PathEscape(table)
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if jsonErr := json.Unmarshal(data, apiErr); jsonErr != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
