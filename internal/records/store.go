package records

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"jobtrack/internal/fileutil"
	"jobtrack/internal/logging"
)

// BackupSuffix is appended to a store path to form its backup sibling.
const BackupSuffix = ".bak"

// Store provides thread-safe access to the application record set. The full
// set lives in memory; every mutation persists immediately through the
// two-file crash-safe protocol (see fileutil.ReplaceWithBackup).
type Store struct {
	path       string
	backupPath string
	logger     *slog.Logger
	clock      func() time.Time

	mu    sync.Mutex
	items []Record
	index map[string]int // id -> position in items
}

// Option customizes store construction.
type Option func(*Store)

// WithClock overrides the wall clock used for id minting and date defaults.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// Open loads the record set from path, falling back to the backup sibling
// when the primary is unreadable. Both files unreadable is fatal
// (*RecoveryError); both files absent is a normal first run with an empty
// set. The caller owns surfacing a RecoveryError — the store never fabricates
// an empty set over unreadable data.
func Open(path string, logger *slog.Logger, opts ...Option) (*Store, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	s := &Store{
		path:       path,
		backupPath: path + BackupSuffix,
		logger:     logging.NewComponentLogger(logger, "records"),
		clock:      time.Now,
		index:      make(map[string]int),
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the primary file path.
func (s *Store) Path() string {
	return s.path
}

// BackupPath returns the backup file path.
func (s *Store) BackupPath() string {
	return s.backupPath
}

// Load replaces the in-memory set with the on-disk state. The primary file is
// authoritative; an unreadable or invalid primary falls back to the backup.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() error {
	items, err := decodeRecordsFile(s.path)
	if err == nil {
		s.install(items)
		s.logger.Debug("loaded records",
			logging.Int("count", len(items)),
			logging.String("path", s.path))
		return nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		backupItems, backupErr := decodeRecordsFile(s.backupPath)
		if backupErr == nil {
			// Crash window: the previous primary was rotated to the backup
			// but the replacement never landed. The backup is the last
			// fully-saved state.
			s.install(backupItems)
			s.logger.Warn("primary records file missing, recovered from backup",
				logging.Int("count", len(backupItems)),
				logging.String("path", s.path),
				logging.String("backup", s.backupPath))
			return nil
		}
		if errors.Is(backupErr, fs.ErrNotExist) {
			s.install(nil)
			s.logger.Debug("no records file yet, starting empty",
				logging.String("path", s.path))
			return nil
		}
		s.logger.Error("records backup unreadable",
			logging.String("backup", s.backupPath),
			logging.Error(backupErr))
		return &RecoveryError{Path: s.path, BackupPath: s.backupPath, PrimaryErr: err, BackupErr: backupErr}
	}

	s.logger.Error("records file unreadable, trying backup",
		logging.String("path", s.path),
		logging.Error(err))

	backupItems, backupErr := decodeRecordsFile(s.backupPath)
	if backupErr != nil {
		s.logger.Error("records backup unreadable",
			logging.String("backup", s.backupPath),
			logging.Error(backupErr))
		return &RecoveryError{Path: s.path, BackupPath: s.backupPath, PrimaryErr: err, BackupErr: backupErr}
	}

	s.install(backupItems)
	s.logger.Warn("recovered records from backup",
		logging.Int("count", len(backupItems)),
		logging.String("backup", s.backupPath))
	return nil
}

func (s *Store) install(items []Record) {
	s.items = items
	s.index = make(map[string]int, len(items))
	for i, rec := range items {
		s.index[rec.ID] = i
	}
}

// Save persists the current in-memory set. Exposed so callers can retry after
// a reported persistence failure; ordinary mutations save implicitly.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	data, err := EncodeRecords(s.items)
	if err != nil {
		return &PersistenceError{Op: "encode records", Path: s.path, Err: err}
	}
	if err := fileutil.ReplaceWithBackup(s.path, s.backupPath, data, 0o644); err != nil {
		s.logger.Error("save records failed",
			logging.String("path", s.path),
			logging.Error(err))
		return &PersistenceError{Op: "save records", Path: s.path, Err: err}
	}
	s.logger.Debug("saved records",
		logging.Int("count", len(s.items)),
		logging.String("path", s.path))
	return nil
}

// Create validates the draft, mints a unique id from the current wall-clock
// second, appends the record, and persists. Same-second creations receive a
// deterministic "-2", "-3", ... suffix so ids stay unique and sortable. On a
// persistence failure the record is still returned and retained in memory.
func (s *Store) Create(draft Draft) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.recordFromDraft(draft)
	if err != nil {
		return Record{}, err
	}

	s.items = append(s.items, rec)
	s.index[rec.ID] = len(s.items) - 1

	if err := s.saveLocked(); err != nil {
		return rec, err
	}

	s.logger.Info("created record",
		logging.String("id", rec.ID),
		logging.String("company", rec.Company),
		logging.String("position", rec.Position))
	return rec, nil
}

func (s *Store) recordFromDraft(draft Draft) (Record, error) {
	rec := Record{
		Company:     strings.TrimSpace(draft.Company),
		Position:    strings.TrimSpace(draft.Position),
		Country:     strings.TrimSpace(draft.Country),
		State:       strings.TrimSpace(draft.State),
		Link:        strings.TrimSpace(draft.Link),
		Description: draft.Description,
		Comments:    draft.Comments,
	}

	if rec.Company == "" {
		return Record{}, &ValidationError{Field: "company", Reason: "must not be empty"}
	}
	if rec.Position == "" {
		return Record{}, &ValidationError{Field: "position", Reason: "must not be empty"}
	}

	if draft.Status == "" {
		rec.Status = StatusNotApplied
	} else {
		status, err := ParseStatus(draft.Status)
		if err != nil {
			return Record{}, err
		}
		rec.Status = status
	}

	now := s.clock()
	if draft.AppliedDate == "" {
		rec.AppliedDate = DateOf(now)
	} else {
		date, err := ParseDate(draft.AppliedDate)
		if err != nil {
			return Record{}, err
		}
		rec.AppliedDate = date
	}

	rec.ID = s.mintIDLocked(now)
	return rec, nil
}

// mintIDLocked derives an id from the creation timestamp at second precision
// and disambiguates collisions with an increasing suffix.
func (s *Store) mintIDLocked(now time.Time) string {
	base := now.Format("20060102150405")
	if _, taken := s.index[base]; !taken {
		return base
	}
	for n := 2; ; n++ {
		id := fmt.Sprintf("%s-%d", base, n)
		if _, taken := s.index[id]; !taken {
			return id
		}
	}
}

// Update replaces the record with the matching id, keeping its position in
// the ordered set, and persists.
func (s *Store) Update(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := rec.Validate(); err != nil {
		return err
	}
	pos, ok := s.index[rec.ID]
	if !ok {
		return &NotFoundError{ID: rec.ID}
	}

	s.items[pos] = rec
	if err := s.saveLocked(); err != nil {
		return err
	}

	s.logger.Info("updated record",
		logging.String("id", rec.ID),
		logging.String("status", string(rec.Status)))
	return nil
}

// Delete removes the record with the matching id and persists. Deletion is
// unconditional here; confirmation UX belongs to the caller.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return &NotFoundError{ID: id}
	}

	s.items = append(s.items[:pos], s.items[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.items); i++ {
		s.index[s.items[i].ID] = i
	}

	if err := s.saveLocked(); err != nil {
		return err
	}

	s.logger.Info("deleted record", logging.String("id", id))
	return nil
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return Record{}, false
	}
	return s.items[pos], true
}

// List returns a copy of the record set in file order.
func (s *Store) List() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Record(nil), s.items...)
}

// IDs returns every record id in file order.
func (s *Store) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, len(s.items))
	for i, rec := range s.items {
		ids[i] = rec.ID
	}
	return ids
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// EncodeRecords renders the wire form of a record slice: a two-space indented
// JSON array with HTML escaping off so links survive byte-for-byte.
func EncodeRecords(items []Record) ([]byte, error) {
	if items == nil {
		items = []Record{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeRecordsFile reads and schema-validates one store file. Any invalid
// record fails the whole file so the caller can fall back to the backup;
// partially-accepted files would silently drop user history.
func decodeRecordsFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var items []Record
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse records: %w", err)
	}

	seen := make(map[string]struct{}, len(items))
	for i, rec := range items {
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if _, dup := seen[rec.ID]; dup {
			return nil, fmt.Errorf("record %d: %w", i, &ValidationError{Field: "id", Reason: fmt.Sprintf("duplicate value %q", rec.ID)})
		}
		seen[rec.ID] = struct{}{}
	}
	return items, nil
}
