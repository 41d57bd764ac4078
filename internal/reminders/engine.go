package reminders

import (
	"errors"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"jobtrack/internal/fileutil"
	"jobtrack/internal/logging"
	"jobtrack/internal/records"
)

const (
	// DefaultResetEvery is the length of a dismissal cycle.
	DefaultResetEvery = 24 * time.Hour
	// DefaultRetention drops dismissals older than this regardless of cycle.
	DefaultRetention = 48 * time.Hour
)

// Engine owns the reminder state and decides which records currently need the
// user's attention. The 24-hour reset is lazy: whichever Pending call first
// observes an expired cycle performs the reset, so no background timer exists.
// Persistence follows the same two-file crash-safe protocol as the record
// store, applied to the state file.
type Engine struct {
	path       string
	backupPath string
	logger     *slog.Logger
	clock      func() time.Time
	resetEvery time.Duration
	retention  time.Duration

	mu    sync.Mutex
	state State
}

// Option customizes engine construction.
type Option func(*Engine)

// WithClock overrides the wall clock used for reset and dismissal stamps.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithResetEvery overrides the dismissal cycle length.
func WithResetEvery(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.resetEvery = d
		}
	}
}

// WithRetention overrides the dismissal retention window. Zero disables the
// sweep.
func WithRetention(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.retention = d
		}
	}
}

// Open loads the reminder state from path, falling back to the backup sibling
// when the primary is unreadable. Both files absent is a first run: a fresh
// state anchored at now is persisted immediately. Both files unreadable is
// fatal (*records.RecoveryError) — the engine never silently rebuilds state
// over unreadable data, since that would resurface every dismissed reminder.
func Open(path string, logger *slog.Logger, opts ...Option) (*Engine, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	e := &Engine{
		path:       path,
		backupPath: path + records.BackupSuffix,
		logger:     logging.NewComponentLogger(logger, "reminders"),
		clock:      time.Now,
		resetEvery: DefaultResetEvery,
		retention:  DefaultRetention,
	}

	for _, opt := range opts {
		opt(e)
	}

	if err := e.load(); err != nil {
		return nil, err
	}
	return e, nil
}

// Path returns the primary state file path.
func (e *Engine) Path() string {
	return e.path
}

func (e *Engine) load() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, err := decodeStateFile(e.path)
	if err == nil {
		e.state = state
		e.logger.Debug("loaded reminder state",
			logging.Int("dismissals", len(state.Dismissals)),
			logging.String("path", e.path))
		return nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		backupState, backupErr := decodeStateFile(e.backupPath)
		if backupErr == nil {
			e.state = backupState
			e.logger.Warn("primary reminder state missing, recovered from backup",
				logging.String("path", e.path),
				logging.String("backup", e.backupPath))
			return nil
		}
		if errors.Is(backupErr, fs.ErrNotExist) {
			e.state = NewState(e.clock())
			e.logger.Debug("no reminder state yet, starting fresh cycle",
				logging.String("path", e.path))
			return e.saveLocked()
		}
		e.logger.Error("reminder state backup unreadable",
			logging.String("backup", e.backupPath),
			logging.Error(backupErr))
		return &records.RecoveryError{Path: e.path, BackupPath: e.backupPath, PrimaryErr: err, BackupErr: backupErr}
	}

	e.logger.Error("reminder state unreadable, trying backup",
		logging.String("path", e.path),
		logging.Error(err))

	backupState, backupErr := decodeStateFile(e.backupPath)
	if backupErr != nil {
		e.logger.Error("reminder state backup unreadable",
			logging.String("backup", e.backupPath),
			logging.Error(backupErr))
		return &records.RecoveryError{Path: e.path, BackupPath: e.backupPath, PrimaryErr: err, BackupErr: backupErr}
	}

	e.state = backupState
	e.logger.Warn("recovered reminder state from backup",
		logging.String("backup", e.backupPath))
	return nil
}

func (e *Engine) saveLocked() error {
	data, err := EncodeState(e.state)
	if err != nil {
		return &records.PersistenceError{Op: "encode reminder state", Path: e.path, Err: err}
	}
	if err := fileutil.ReplaceWithBackup(e.path, e.backupPath, data, 0o644); err != nil {
		e.logger.Error("save reminder state failed",
			logging.String("path", e.path),
			logging.Error(err))
		return &records.PersistenceError{Op: "save reminder state", Path: e.path, Err: err}
	}
	return nil
}

// Pending returns the records that currently need attention, in input order:
// every record whose status is non-terminal and whose id has no dismissal in
// the current cycle. An expired cycle is reset first (dismissals cleared,
// the new anchor persisted); dismissals older than the retention window are
// swept at the same time.
func (e *Engine) Pending(recs []records.Record) ([]records.Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.maintainLocked(); err != nil {
		return nil, err
	}

	pending := make([]records.Record, 0, len(recs))
	for _, rec := range recs {
		if rec.Status.Terminal() {
			continue
		}
		if _, dismissed := e.state.Dismissals[rec.ID]; dismissed {
			continue
		}
		pending = append(pending, rec)
	}
	return pending, nil
}

// maintainLocked performs the lazy reset and the retention sweep, persisting
// only when something changed.
func (e *Engine) maintainLocked() error {
	now := e.clock()

	if now.Sub(e.state.LastReset) >= e.resetEvery {
		cleared := len(e.state.Dismissals)
		e.state = NewState(now)
		if err := e.saveLocked(); err != nil {
			return err
		}
		e.logger.Info("reminder cycle reset",
			logging.Int("cleared", cleared),
			logging.Time("last_reset", now))
		return nil
	}

	if e.retention <= 0 {
		return nil
	}
	swept := 0
	for id, stamp := range e.state.Dismissals {
		if now.Sub(stamp) >= e.retention {
			delete(e.state.Dismissals, id)
			swept++
		}
	}
	if swept == 0 {
		return nil
	}
	if err := e.saveLocked(); err != nil {
		return err
	}
	e.logger.Debug("swept expired dismissals", logging.Int("count", swept))
	return nil
}

// Dismiss suppresses the given record id from pending results until the next
// reset and persists immediately.
func (e *Engine) Dismiss(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.Dismissals[id] = e.clock()
	if err := e.saveLocked(); err != nil {
		return err
	}
	e.logger.Info("dismissed reminder", logging.String("id", id))
	return nil
}

// DismissAll suppresses every given id in one persisted write.
func (e *Engine) DismissAll(ids []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(ids) == 0 {
		return nil
	}
	now := e.clock()
	for _, id := range ids {
		e.state.Dismissals[id] = now
	}
	if err := e.saveLocked(); err != nil {
		return err
	}
	e.logger.Info("dismissed reminders", logging.Int("count", len(ids)))
	return nil
}

// PruneStale drops dismissal entries whose id is not in validIDs, persisting
// only when something was removed. Called after record deletions so the state
// file does not accumulate references to deleted records.
func (e *Engine) PruneStale(validIDs []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	valid := make(map[string]struct{}, len(validIDs))
	for _, id := range validIDs {
		valid[id] = struct{}{}
	}

	removed := 0
	for id := range e.state.Dismissals {
		if _, ok := valid[id]; !ok {
			delete(e.state.Dismissals, id)
			removed++
		}
	}
	if removed == 0 {
		return nil
	}
	if err := e.saveLocked(); err != nil {
		return err
	}
	e.logger.Debug("pruned stale dismissals", logging.Int("count", removed))
	return nil
}

// DismissalAge reports how long ago the given id was dismissed in the current
// cycle.
func (e *Engine) DismissalAge(id string) (time.Duration, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	stamp, ok := e.state.Dismissals[id]
	if !ok {
		return 0, false
	}
	return e.clock().Sub(stamp), true
}

// Dismissed reports whether the given id has a dismissal in the current cycle.
func (e *Engine) Dismissed(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, ok := e.state.Dismissals[id]
	return ok
}

// Snapshot returns a copy of the current state for display.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.clone()
}
