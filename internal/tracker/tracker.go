package tracker

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gofrs/flock"

	"jobtrack/internal/config"
	"jobtrack/internal/logging"
	"jobtrack/internal/records"
	"jobtrack/internal/reminders"
)

// ErrLocked indicates another jobtrack process already holds the data
// directory.
var ErrLocked = errors.New("another jobtrack instance is already running")

// Tracker is the application facade: it owns the record store and the
// reminder engine, guards the data directory with a single-instance lock,
// and performs the cross-component choreography (pending computation over
// the live record set, dismissal pruning after deletions).
type Tracker struct {
	cfg    *config.Config
	logger *slog.Logger
	lock   *flock.Flock

	store  *records.Store
	engine *reminders.Engine
}

// Option customizes tracker construction.
type Option func(*openOptions)

type openOptions struct {
	clock func() time.Time
}

// WithClock overrides the wall clock for both the store and the engine.
func WithClock(clock func() time.Time) Option {
	return func(o *openOptions) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// Open acquires the data-directory lock, then loads both stores. A held lock
// yields ErrLocked; an unreadable store (primary and backup both bad)
// surfaces the underlying *records.RecoveryError so callers refuse to run
// over lost data.
func Open(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Tracker, error) {
	if cfg == nil {
		return nil, errors.New("tracker requires config")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	options := openOptions{clock: time.Now}
	for _, opt := range opts {
		opt(&options)
	}

	if err := os.MkdirAll(cfg.Paths.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	lock := flock.New(cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire data lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}

	store, err := records.Open(cfg.RecordsPath(), logger, records.WithClock(options.clock))
	if err != nil {
		lock.Unlock()
		return nil, err
	}

	engine, err := reminders.Open(cfg.StatePath(), logger,
		reminders.WithClock(options.clock),
		reminders.WithResetEvery(time.Duration(cfg.Reminders.ResetHours)*time.Hour),
		reminders.WithRetention(time.Duration(cfg.Reminders.RetentionHours)*time.Hour),
	)
	if err != nil {
		lock.Unlock()
		return nil, err
	}

	return &Tracker{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "tracker"),
		lock:   lock,
		store:  store,
		engine: engine,
	}, nil
}

// Close releases the data-directory lock.
func (t *Tracker) Close() error {
	return t.lock.Unlock()
}

// List returns every record in file order.
func (t *Tracker) List() []records.Record {
	return t.store.List()
}

// Get returns the record with the given id.
func (t *Tracker) Get(id string) (records.Record, bool) {
	return t.store.Get(id)
}

// Create validates the draft and appends a new record.
func (t *Tracker) Create(draft records.Draft) (records.Record, error) {
	return t.store.Create(draft)
}

// Update replaces the record with the matching id.
func (t *Tracker) Update(rec records.Record) error {
	return t.store.Update(rec)
}

// SetStatus changes one record's status.
func (t *Tracker) SetStatus(id string, status records.Status) (records.Record, error) {
	rec, ok := t.store.Get(id)
	if !ok {
		return records.Record{}, &records.NotFoundError{ID: id}
	}
	rec.Status = status
	if err := t.store.Update(rec); err != nil {
		return records.Record{}, err
	}
	return rec, nil
}

// SetComments replaces one record's free-text comments.
func (t *Tracker) SetComments(id, comments string) (records.Record, error) {
	rec, ok := t.store.Get(id)
	if !ok {
		return records.Record{}, &records.NotFoundError{ID: id}
	}
	rec.Comments = comments
	if err := t.store.Update(rec); err != nil {
		return records.Record{}, err
	}
	return rec, nil
}

// Delete removes the record and prunes any dismissal it left behind, so the
// reminder state does not accumulate references to deleted records.
func (t *Tracker) Delete(id string) error {
	if err := t.store.Delete(id); err != nil {
		return err
	}
	if err := t.engine.PruneStale(t.store.IDs()); err != nil {
		// The record is gone; a failed prune only leaves a stale entry that
		// the next successful prune or reset will clear.
		t.logger.Warn("prune after delete failed",
			logging.String("id", id),
			logging.Error(err))
	}
	return nil
}

// Pending returns the records that currently need attention, in record-set
// order.
func (t *Tracker) Pending() ([]records.Record, error) {
	return t.engine.Pending(t.store.List())
}

// Dismiss suppresses one record from pending results until the next reset.
func (t *Tracker) Dismiss(id string) error {
	if _, ok := t.store.Get(id); !ok {
		return &records.NotFoundError{ID: id}
	}
	return t.engine.Dismiss(id)
}

// DismissPending dismisses everything currently pending in one persisted
// write and reports how many records were affected.
func (t *Tracker) DismissPending() (int, error) {
	pending, err := t.Pending()
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}
	ids := make([]string, len(pending))
	for i, rec := range pending {
		ids[i] = rec.ID
	}
	if err := t.engine.DismissAll(ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// DismissalAge reports how long ago the given id was dismissed.
func (t *Tracker) DismissalAge(id string) (time.Duration, bool) {
	return t.engine.DismissalAge(id)
}

// Dismissed reports whether the given id is suppressed in the current cycle.
func (t *Tracker) Dismissed(id string) bool {
	return t.engine.Dismissed(id)
}

// ReminderState returns a copy of the engine state for display.
func (t *Tracker) ReminderState() reminders.State {
	return t.engine.Snapshot()
}
