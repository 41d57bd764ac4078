package reminders

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"jobtrack/internal/records"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestEngine(t *testing.T, clock *fakeClock, opts ...Option) *Engine {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notifications.json")
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	engine, err := Open(path, nil, opts...)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return engine
}

func testClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, time.January, 5, 9, 0, 0, 0, time.Local)}
}

func rec(id string, status records.Status) records.Record {
	return records.Record{
		Company:     "Acme",
		Position:    "Engineer",
		AppliedDate: records.DateOf(time.Date(2026, time.January, 5, 0, 0, 0, 0, time.Local)),
		Status:      status,
		ID:          id,
	}
}

func pendingIDs(t *testing.T, engine *Engine, recs []records.Record) []string {
	t.Helper()
	pending, err := engine.Pending(recs)
	if err != nil {
		t.Fatalf("Pending failed: %v", err)
	}
	ids := make([]string, len(pending))
	for i, r := range pending {
		ids[i] = r.ID
	}
	return ids
}

func TestOpenFirstRunPersistsFreshState(t *testing.T) {
	clock := testClock()
	path := filepath.Join(t.TempDir(), "notifications.json")
	engine, err := Open(path, nil, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("first run should persist the state file: %v", err)
	}
	state := engine.Snapshot()
	if !state.LastReset.Equal(clock.now) {
		t.Errorf("LastReset = %v, want %v", state.LastReset, clock.now)
	}
	if len(state.Dismissals) != 0 {
		t.Errorf("fresh state should have no dismissals")
	}
}

func TestPendingExcludesTerminalStatuses(t *testing.T) {
	clock := testClock()
	engine := newTestEngine(t, clock)

	recs := []records.Record{
		rec("a", records.StatusNotApplied),
		rec("b", records.StatusApplied),
		rec("c", records.StatusApproved),
		rec("d", records.StatusRejected),
	}

	got := pendingIDs(t, engine, recs)
	want := []string{"a", "b"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("pending = %v, want %v", got, want)
	}
}

func TestPendingPreservesInputOrder(t *testing.T) {
	clock := testClock()
	engine := newTestEngine(t, clock)

	recs := []records.Record{
		rec("z", records.StatusApplied),
		rec("a", records.StatusNotApplied),
		rec("m", records.StatusApplied),
	}

	got := pendingIDs(t, engine, recs)
	want := []string{"z", "a", "m"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pending = %v, want %v (input order)", got, want)
		}
	}
}

func TestDismissSuppressesUntilReset(t *testing.T) {
	clock := testClock()
	engine := newTestEngine(t, clock)
	recs := []records.Record{rec("a", records.StatusApplied), rec("b", records.StatusApplied)}

	if err := engine.Dismiss("a"); err != nil {
		t.Fatalf("Dismiss failed: %v", err)
	}

	got := pendingIDs(t, engine, recs)
	if len(got) != 1 || got[0] != "b" {
		t.Fatalf("pending = %v, want [b]", got)
	}

	// Within the cycle the dismissal holds.
	clock.Advance(23 * time.Hour)
	if got := pendingIDs(t, engine, recs); len(got) != 1 {
		t.Fatalf("pending before reset = %v", got)
	}

	// At the 24h boundary the cycle resets and the record reappears.
	clock.Advance(time.Hour)
	got = pendingIDs(t, engine, recs)
	if len(got) != 2 {
		t.Fatalf("pending after reset = %v, want both", got)
	}
	state := engine.Snapshot()
	if len(state.Dismissals) != 0 {
		t.Errorf("reset should clear dismissals, got %v", state.Dismissals)
	}
	if !state.LastReset.Equal(clock.now) {
		t.Errorf("LastReset = %v, want %v", state.LastReset, clock.now)
	}
}

func TestDismissAll(t *testing.T) {
	clock := testClock()
	engine := newTestEngine(t, clock)
	recs := []records.Record{
		rec("a", records.StatusApplied),
		rec("b", records.StatusNotApplied),
		rec("c", records.StatusApplied),
	}

	if err := engine.DismissAll([]string{"a", "b", "c"}); err != nil {
		t.Fatalf("DismissAll failed: %v", err)
	}
	if got := pendingIDs(t, engine, recs); len(got) != 0 {
		t.Errorf("pending after DismissAll = %v, want empty", got)
	}

	// Reloading from disk sees the same dismissals: one persisted write
	// covered the whole batch.
	reopened, err := Open(engine.Path(), nil, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if got := pendingIDs(t, reopened, recs); len(got) != 0 {
		t.Errorf("pending after reopen = %v, want empty", got)
	}
}

func TestTerminalRecordNeverPendingAfterReset(t *testing.T) {
	clock := testClock()
	engine := newTestEngine(t, clock)
	approved := []records.Record{rec("a", records.StatusApproved)}

	if got := pendingIDs(t, engine, approved); len(got) != 0 {
		t.Fatalf("approved record pending: %v", got)
	}
	clock.Advance(25 * time.Hour)
	if got := pendingIDs(t, engine, approved); len(got) != 0 {
		t.Errorf("approved record pending after reset: %v", got)
	}
}

func TestStatusCorrectionReentersPending(t *testing.T) {
	clock := testClock()
	engine := newTestEngine(t, clock)

	// Dismissal outlives a terminal detour: the map is keyed purely by id.
	if err := engine.Dismiss("a"); err != nil {
		t.Fatal(err)
	}
	if got := pendingIDs(t, engine, []records.Record{rec("a", records.StatusRejected)}); len(got) != 0 {
		t.Fatalf("rejected record pending: %v", got)
	}

	// Correcting the mistaken rejection within the dismissal window keeps
	// the record suppressed.
	if got := pendingIDs(t, engine, []records.Record{rec("a", records.StatusApplied)}); len(got) != 0 {
		t.Fatalf("dismissed record pending after correction: %v", got)
	}

	// After the reset it is pending again.
	clock.Advance(24 * time.Hour)
	if got := pendingIDs(t, engine, []records.Record{rec("a", records.StatusApplied)}); len(got) != 1 {
		t.Errorf("corrected record not pending after reset: %v", got)
	}
}

func TestPruneStale(t *testing.T) {
	clock := testClock()
	engine := newTestEngine(t, clock)

	engine.Dismiss("kept")
	engine.Dismiss("deleted")

	if err := engine.PruneStale([]string{"kept"}); err != nil {
		t.Fatalf("PruneStale failed: %v", err)
	}

	state := engine.Snapshot()
	if _, ok := state.Dismissals["deleted"]; ok {
		t.Error("stale dismissal survived prune")
	}
	if _, ok := state.Dismissals["kept"]; !ok {
		t.Error("valid dismissal was pruned")
	}

	// A second prune with nothing stale is a no-op, not an error.
	if err := engine.PruneStale([]string{"kept"}); err != nil {
		t.Errorf("no-op prune failed: %v", err)
	}
}

func TestRetentionSweep(t *testing.T) {
	clock := testClock()
	// A long cycle so the sweep fires before any reset.
	engine := newTestEngine(t, clock, WithResetEvery(100*time.Hour), WithRetention(48*time.Hour))

	engine.Dismiss("old")
	clock.Advance(49 * time.Hour)
	engine.Dismiss("recent")

	if _, err := engine.Pending(nil); err != nil {
		t.Fatalf("Pending failed: %v", err)
	}

	state := engine.Snapshot()
	if _, ok := state.Dismissals["old"]; ok {
		t.Error("dismissal older than retention survived the sweep")
	}
	if _, ok := state.Dismissals["recent"]; !ok {
		t.Error("recent dismissal was swept")
	}
}

func TestRetentionDisabled(t *testing.T) {
	clock := testClock()
	engine := newTestEngine(t, clock, WithResetEvery(100*time.Hour), WithRetention(0))

	engine.Dismiss("a")
	clock.Advance(90 * time.Hour)
	if _, err := engine.Pending(nil); err != nil {
		t.Fatal(err)
	}
	if !engine.Dismissed("a") {
		t.Error("sweep ran with retention disabled")
	}
}

func TestDismissalAge(t *testing.T) {
	clock := testClock()
	engine := newTestEngine(t, clock)

	if _, ok := engine.DismissalAge("a"); ok {
		t.Error("age reported for undismissed id")
	}

	engine.Dismiss("a")
	clock.Advance(3 * time.Hour)

	age, ok := engine.DismissalAge("a")
	if !ok {
		t.Fatal("age missing for dismissed id")
	}
	if age != 3*time.Hour {
		t.Errorf("age = %v, want 3h", age)
	}
}

func TestOpenFallsBackToBackup(t *testing.T) {
	clock := testClock()
	dir := t.TempDir()
	path := filepath.Join(dir, "notifications.json")

	engine, err := Open(path, nil, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	// Second write rotates the fresh state into the backup.
	if err := engine.Dismiss("a"); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte("{corrupt"), 0o644); err != nil {
		t.Fatal(err)
	}

	recovered, err := Open(path, nil, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("Open with corrupt primary failed: %v", err)
	}
	state := recovered.Snapshot()
	if !state.LastReset.Equal(clock.now) {
		t.Errorf("recovered LastReset = %v, want %v", state.LastReset, clock.now)
	}
	// The backup predates the dismissal; its loss is the documented cost of
	// falling back to the last fully-saved prior state.
	if len(state.Dismissals) != 0 {
		t.Errorf("recovered dismissals = %v, want the pre-dismiss state", state.Dismissals)
	}
}

func TestOpenBothCorruptIsRecoveryError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notifications.json")
	if err := os.WriteFile(path, []byte("{corrupt"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path+records.BackupSuffix, []byte("not json either"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Open(path, nil)
	var recErr *records.RecoveryError
	if !errors.As(err, &recErr) {
		t.Fatalf("want RecoveryError, got %v", err)
	}
}

func TestOpenRejectsMalformedStamps(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"bad last_reset", `{"last_reset": "January 5th", "dismissals": {}}`},
		{"empty last_reset", `{"last_reset": "", "dismissals": {}}`},
		{"bad dismissal stamp", `{"last_reset": "2026-01-05 09:00:00", "dismissals": {"a": "noon"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "notifications.json")
			if err := os.WriteFile(path, []byte(tc.payload), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Open(path, nil)
			var recErr *records.RecoveryError
			if !errors.As(err, &recErr) {
				t.Errorf("want RecoveryError, got %v", err)
			}
		})
	}
}

func TestStateRoundTrip(t *testing.T) {
	clock := testClock()
	dir := t.TempDir()
	path := filepath.Join(dir, "notifications.json")

	engine, err := Open(path, nil, WithClock(clock.Now))
	if err != nil {
		t.Fatal(err)
	}
	engine.Dismiss("20260105090000")
	clock.Advance(time.Minute)
	engine.Dismiss("20260105090000-2")

	reopened, err := Open(path, nil, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	want := engine.Snapshot()
	got := reopened.Snapshot()
	if !got.LastReset.Equal(want.LastReset) {
		t.Errorf("LastReset: got %v, want %v", got.LastReset, want.LastReset)
	}
	if len(got.Dismissals) != len(want.Dismissals) {
		t.Fatalf("dismissals: got %d, want %d", len(got.Dismissals), len(want.Dismissals))
	}
	for id, stamp := range want.Dismissals {
		if !got.Dismissals[id].Equal(stamp) {
			t.Errorf("dismissal %q: got %v, want %v", id, got.Dismissals[id], stamp)
		}
	}
}
