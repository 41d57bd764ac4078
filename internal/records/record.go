package records

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Status represents the lifecycle of a job application.
type Status string

const (
	StatusNotApplied Status = "not_applied"
	StatusApplied    Status = "applied"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
)

var allStatuses = []Status{
	StatusNotApplied,
	StatusApplied,
	StatusApproved,
	StatusRejected,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// Statuses returns every recognized status in declaration order.
func Statuses() []Status {
	return append([]Status(nil), allStatuses...)
}

// ParseStatus validates a raw status string from a file or user input.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.TrimSpace(raw))
	if !status.Valid() {
		return "", &ValidationError{Field: "status", Reason: fmt.Sprintf("unrecognized value %q", raw)}
	}
	return status, nil
}

// Valid reports whether the status is one of the enumerated values.
func (s Status) Valid() bool {
	_, ok := statusSet[s]
	return ok
}

// Terminal reports whether the status permanently excludes a record from
// pending reminders.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Display renders the status for humans: "not_applied" becomes "Not Applied".
func (s Status) Display() string {
	return cases.Title(language.Und).String(strings.ReplaceAll(string(s), "_", " "))
}

// UnmarshalJSON rejects unrecognized statuses so that a malformed file fails
// as a whole instead of being silently coerced.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

const dateLayout = "2006-01-02"

// Date is a civil calendar date with no time-of-day or timezone semantics,
// stored on the wire as "YYYY-MM-DD".
type Date struct {
	time.Time
}

// ParseDate parses a wire-format date.
func ParseDate(raw string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return Date{}, &ValidationError{Field: "date", Reason: fmt.Sprintf("invalid value %q (want YYYY-MM-DD)", raw)}
	}
	return Date{t}, nil
}

// DateOf truncates a point in time to its calendar date.
func DateOf(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Record is a single job application. Field order mirrors the on-disk JSON
// object so files stay diffable against what earlier versions wrote.
type Record struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	AppliedDate Date   `json:"date"`
	Status      Status `json:"status"`
	Country     string `json:"country"`
	State       string `json:"state"`
	Link        string `json:"link"`
	Description string `json:"description"`
	Comments    string `json:"comments"`
	ID          string `json:"id"`
}

// Validate checks the invariants every stored record must hold: non-empty
// company, position, and id, a recognized status, and a real applied date.
func (r Record) Validate() error {
	if strings.TrimSpace(r.Company) == "" {
		return &ValidationError{Field: "company", Reason: "must not be empty"}
	}
	if strings.TrimSpace(r.Position) == "" {
		return &ValidationError{Field: "position", Reason: "must not be empty"}
	}
	if strings.TrimSpace(r.ID) == "" {
		return &ValidationError{Field: "id", Reason: "must not be empty"}
	}
	if !r.Status.Valid() {
		return &ValidationError{Field: "status", Reason: fmt.Sprintf("unrecognized value %q", string(r.Status))}
	}
	if r.AppliedDate.IsZero() {
		return &ValidationError{Field: "date", Reason: "must not be empty"}
	}
	return nil
}

// Location joins country and state for display, matching the original
// single-column rendering.
func (r Record) Location() string {
	if r.State == "" {
		return r.Country
	}
	if r.Country == "" {
		return r.State
	}
	return r.Country + ", " + r.State
}

// Draft carries user-supplied fields for a record that does not exist yet.
// Empty Status defaults to not_applied; empty AppliedDate defaults to today.
type Draft struct {
	Company     string
	Position    string
	Status      string
	AppliedDate string
	Country     string
	State       string
	Link        string
	Description string
	Comments    string
}
