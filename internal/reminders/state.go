package reminders

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// stampLayout is the wall-clock format used throughout the state file.
const stampLayout = "2006-01-02 15:04:05"

// State is the persisted reminder state: the anchor of the current dismissal
// cycle and one timestamped entry per dismissed record. Dismissal keys may
// reference records that have since been deleted; stale keys are pruned
// opportunistically, never treated as an error.
type State struct {
	LastReset  time.Time
	Dismissals map[string]time.Time
}

// NewState returns a fresh first-run state anchored at now.
func NewState(now time.Time) State {
	return State{
		LastReset:  now,
		Dismissals: make(map[string]time.Time),
	}
}

func (s State) clone() State {
	out := State{LastReset: s.LastReset, Dismissals: make(map[string]time.Time, len(s.Dismissals))}
	for id, stamp := range s.Dismissals {
		out.Dismissals[id] = stamp
	}
	return out
}

// stateFile is the wire form of State.
type stateFile struct {
	LastReset  string            `json:"last_reset"`
	Dismissals map[string]string `json:"dismissals"`
}

// EncodeState renders the wire form of the reminder state.
func EncodeState(state State) ([]byte, error) {
	wire := stateFile{
		LastReset:  state.LastReset.Format(stampLayout),
		Dismissals: make(map[string]string, len(state.Dismissals)),
	}
	for id, stamp := range state.Dismissals {
		wire.Dismissals[id] = stamp.Format(stampLayout)
	}
	data, err := json.MarshalIndent(wire, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// decodeStateFile reads and validates one state file. A malformed stamp fails
// the whole file so the caller can fall back to the backup.
func decodeStateFile(path string) (State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return State{}, err
	}

	var wire stateFile
	if err := json.Unmarshal(data, &wire); err != nil {
		return State{}, fmt.Errorf("parse reminder state: %w", err)
	}

	if strings.TrimSpace(wire.LastReset) == "" {
		return State{}, fmt.Errorf("reminder state: last_reset is empty")
	}
	lastReset, err := time.ParseInLocation(stampLayout, wire.LastReset, time.Local)
	if err != nil {
		return State{}, fmt.Errorf("reminder state: last_reset: %w", err)
	}

	state := State{LastReset: lastReset, Dismissals: make(map[string]time.Time, len(wire.Dismissals))}
	for id, raw := range wire.Dismissals {
		if strings.TrimSpace(id) == "" {
			return State{}, fmt.Errorf("reminder state: empty dismissal id")
		}
		stamp, err := time.ParseInLocation(stampLayout, raw, time.Local)
		if err != nil {
			return State{}, fmt.Errorf("reminder state: dismissal %q: %w", id, err)
		}
		state.Dismissals[id] = stamp
	}
	return state, nil
}
