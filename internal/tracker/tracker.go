// Package tracker holds the session state of the caregiver log: the cached
// entries of the current month, the draft being composed and the report
// recipient. It drives a Store and hands finished reports to a mail composer.
package tracker

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Tiliavir/caregiver-hours/internal/log"
	"github.com/Tiliavir/caregiver-hours/internal/mailto"
	"github.com/Tiliavir/caregiver-hours/internal/model"
	"github.com/Tiliavir/caregiver-hours/internal/paycalc"
	"github.com/Tiliavir/caregiver-hours/internal/report"
)

const (
	// NoRecipientNotice is shown when a report is requested without a recipient.
	NoRecipientNotice = "Please enter the recipient email address in the settings above."
	// NewPeriodQuestion asks whether to mail the outgoing report first.
	NewPeriodQuestion = "Send report before starting new month?"
)

// Store is the persistence boundary for entries and settings.
type Store interface {
	// ListEntries returns entries dated within [from, to], newest first.
	ListEntries(ctx context.Context, from, to time.Time) ([]model.Entry, error)
	InsertEntry(ctx context.Context, e model.NewEntry) (model.Entry, error)
	// DeleteEntry succeeds when id does not exist.
	DeleteEntry(ctx context.Context, id int64) error
	// GetSettings returns nil, nil when no settings row exists yet.
	GetSettings(ctx context.Context) (*model.Settings, error)
	UpsertSettings(ctx context.Context, recipientEmail string) error
}

// Prompter asks the user synchronous questions.
type Prompter interface {
	Confirm(question string) bool
	Notify(message string)
}

// Options configures a Tracker.
type Options struct {
	Store    Store
	Composer mailto.Composer
	Prompter Prompter
	Logger   *log.Logger
	// Now defaults to time.Now.
	Now func() time.Time
	// Recipient is used until settings are loaded from the store.
	Recipient string
}

// Tracker is the application state controller.
type Tracker struct {
	store    Store
	composer mailto.Composer
	prompter Prompter
	logger   *log.Logger
	now      func() time.Time

	mu        sync.Mutex
	entries   []model.Entry
	draft     model.Draft
	recipient string
	loading   bool
	lastErr   error

	persists sync.WaitGroup
}

// New creates a Tracker with a fresh draft and an empty cache.
func New(opts Options) *Tracker {
	t := &Tracker{
		store:     opts.Store,
		composer:  opts.Composer,
		prompter:  opts.Prompter,
		logger:    opts.Logger,
		now:       opts.Now,
		recipient: opts.Recipient,
		entries:   []model.Entry{},
	}
	if t.now == nil {
		t.now = time.Now
	}
	if t.logger == nil {
		t.logger = log.Discard()
	}
	t.draft = t.freshDraft()
	return t
}

// Initialize loads settings and the current month's entries. Settings are
// best-effort; only an entry load failure is returned.
func (t *Tracker) Initialize(ctx context.Context) error {
	t.setLoading(true)
	defer t.setLoading(false)

	var g errgroup.Group
	g.Go(func() error {
		t.loadSettings(ctx)
		return nil
	})
	g.Go(func() error {
		return t.loadEntries(ctx)
	})
	return g.Wait()
}

// Reload re-reads the current month's entries, replacing the cache.
func (t *Tracker) Reload(ctx context.Context) error {
	t.setLoading(true)
	defer t.setLoading(false)
	return t.loadEntries(ctx)
}

func (t *Tracker) loadEntries(ctx context.Context) error {
	from, to := paycalc.MonthRange(t.now())
	entries, err := t.store.ListEntries(ctx, from, to)
	if err != nil {
		t.logger.ErrorContext(ctx, "error loading entries", "from", paycalc.FormatDate(from), "to", paycalc.FormatDate(to), "error", err)
		return t.fail(&LoadError{Err: err})
	}
	if entries == nil {
		entries = []model.Entry{}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = entries
	t.lastErr = nil
	t.logger.DebugContext(ctx, "entries loaded", "count", len(entries))
	return nil
}

func (t *Tracker) loadSettings(ctx context.Context) {
	s, err := t.store.GetSettings(ctx)
	if err != nil {
		t.logger.WarnContext(ctx, "could not load settings", "error", err)
		return
	}
	if s == nil {
		t.logger.InfoContext(ctx, "no settings found, starting fresh")
		return
	}
	t.mu.Lock()
	t.recipient = s.RecipientEmail
	t.mu.Unlock()
}

// SubmitDraft stores the draft as a new entry. It does nothing while the
// hours field is empty. On failure the draft is kept so no input is lost.
func (t *Tracker) SubmitDraft(ctx context.Context) error {
	t.mu.Lock()
	draft := t.draft
	t.mu.Unlock()

	if strings.TrimSpace(draft.Hours) == "" {
		return nil
	}

	hours, err := paycalc.ParseHours(draft.Hours)
	if err != nil {
		return t.fail(&MutationError{Op: "adding entry", Err: err})
	}
	expenses, err := paycalc.ParseExpenses(draft.Expenses)
	if err != nil {
		return t.fail(&MutationError{Op: "adding entry", Err: err})
	}

	created, err := t.store.InsertEntry(ctx, model.NewEntry{
		Date:     draft.Date,
		Hours:    hours,
		Comments: draft.Comments,
		Expenses: expenses,
	})
	if err != nil {
		t.logger.ErrorContext(ctx, "error adding entry", "date", draft.Date, "error", err)
		return t.fail(&MutationError{Op: "adding entry", Err: err})
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append([]model.Entry{created}, t.entries...)
	t.draft = t.freshDraft()
	t.lastErr = nil
	return nil
}

// DeleteEntry removes an entry from the store, then from the cache.
func (t *Tracker) DeleteEntry(ctx context.Context, id int64) error {
	if err := t.store.DeleteEntry(ctx, id); err != nil {
		t.logger.ErrorContext(ctx, "error deleting entry", "id", id, "error", err)
		return t.fail(&MutationError{Op: "deleting entry", Err: err})
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	kept := make([]model.Entry, 0, len(t.entries))
	for _, e := range t.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	t.entries = kept
	t.lastErr = nil
	return nil
}

// SetRecipient updates the recipient immediately and persists it in the
// background. Persist failures are only logged; call Wait before exiting.
func (t *Tracker) SetRecipient(ctx context.Context, email string) {
	t.mu.Lock()
	t.recipient = email
	t.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	t.persists.Add(1)
	go func() {
		defer t.persists.Done()
		if err := t.store.UpsertSettings(ctx, email); err != nil {
			t.logger.ErrorContext(ctx, "error saving settings", "error", err)
		}
	}()
}

// Wait blocks until all background recipient writes have finished.
func (t *Tracker) Wait() {
	t.persists.Wait()
}

// SendReport renders the current month's report and hands it to the mail
// composer. Without a recipient the user is notified and ErrNoRecipient is
// returned.
func (t *Tracker) SendReport(ctx context.Context) error {
	t.mu.Lock()
	recipient := t.recipient
	entries := report.SortAscending(t.entries)
	t.mu.Unlock()

	if recipient == "" {
		t.prompter.Notify(NoRecipientNotice)
		return ErrNoRecipient
	}

	period := t.Period()
	body := report.Build(report.Input{
		Recipient: recipient,
		Period:    period,
		Entries:   entries,
		Totals:    paycalc.ComputeTotals(entries),
	})
	msg := mailto.Message{
		To:      recipient,
		Subject: report.Subject(period),
		Body:    body,
	}
	if err := t.composer.Compose(ctx, msg); err != nil {
		t.logger.ErrorContext(ctx, "error handing off report", "error", err)
		return err
	}
	t.logger.InfoContext(ctx, "report handed off", "recipient", recipient, "entries", len(entries))
	return nil
}

// StartNewPeriod offers to send the outgoing report when entries exist, then
// reloads the current month. Rows of earlier months are not archived or
// removed; they drop out only because the month range moves with the clock.
func (t *Tracker) StartNewPeriod(ctx context.Context) error {
	t.mu.Lock()
	n := len(t.entries)
	t.mu.Unlock()

	var sendErr error
	if n > 0 && t.prompter.Confirm(NewPeriodQuestion) {
		sendErr = t.SendReport(ctx)
	}
	if err := t.Reload(ctx); err != nil {
		return err
	}
	return sendErr
}

// Entries returns a copy of the cached entries, newest first.
func (t *Tracker) Entries() []model.Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]model.Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Totals aggregates the cached entries.
func (t *Tracker) Totals() paycalc.Totals {
	t.mu.Lock()
	defer t.mu.Unlock()
	return paycalc.ComputeTotals(t.entries)
}

// Draft returns the entry being composed.
func (t *Tracker) Draft() model.Draft {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.draft
}

// SetDraft replaces the entry being composed.
func (t *Tracker) SetDraft(d model.Draft) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.draft = d
}

// Recipient returns the current report recipient.
func (t *Tracker) Recipient() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.recipient
}

// Loading reports whether entries are being (re)loaded.
func (t *Tracker) Loading() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loading
}

// LastError returns the message of the innermost cause of the last surfaced
// failure, or "".
func (t *Tracker) LastError() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.lastErr == nil {
		return ""
	}
	cause := t.lastErr
	for next := errors.Unwrap(cause); next != nil; next = errors.Unwrap(cause) {
		cause = next
	}
	return cause.Error()
}

// Period returns the label of the current month, e.g. "March 2025".
func (t *Tracker) Period() string {
	return paycalc.MonthLabel(t.now())
}

func (t *Tracker) freshDraft() model.Draft {
	return model.Draft{Date: paycalc.Today(t.now())}
}

func (t *Tracker) setLoading(v bool) {
	t.mu.Lock()
	t.loading = v
	t.mu.Unlock()
}

func (t *Tracker) fail(err error) error {
	t.mu.Lock()
	t.lastErr = err
	t.mu.Unlock()
	return err
}
