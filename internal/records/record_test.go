package records

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseStatus(t *testing.T) {
	for _, status := range Statuses() {
		parsed, err := ParseStatus(string(status))
		if err != nil {
			t.Fatalf("ParseStatus(%q) failed: %v", status, err)
		}
		if parsed != status {
			t.Errorf("ParseStatus(%q) = %q", status, parsed)
		}
	}

	if _, err := ParseStatus("pending"); err == nil {
		t.Error("ParseStatus should reject unrecognized values")
	}
	if !IsValidation(mustErr(t, func() error { _, err := ParseStatus("pending"); return err })) {
		t.Error("ParseStatus error should be a ValidationError")
	}
}

func TestStatusTerminal(t *testing.T) {
	cases := map[Status]bool{
		StatusNotApplied: false,
		StatusApplied:    false,
		StatusApproved:   true,
		StatusRejected:   true,
	}
	for status, want := range cases {
		if got := status.Terminal(); got != want {
			t.Errorf("%s.Terminal() = %v, want %v", status, got, want)
		}
	}
}

func TestStatusDisplay(t *testing.T) {
	if got := StatusNotApplied.Display(); got != "Not Applied" {
		t.Errorf("Display() = %q, want %q", got, "Not Applied")
	}
	if got := StatusApplied.Display(); got != "Applied" {
		t.Errorf("Display() = %q, want %q", got, "Applied")
	}
}

func TestStatusUnmarshalRejectsUnknown(t *testing.T) {
	var rec Record
	payload := `{"company":"Acme","position":"Engineer","date":"2026-01-05","status":"ghosted","id":"20260105120000"}`
	if err := json.Unmarshal([]byte(payload), &rec); err == nil {
		t.Fatal("unmarshal should fail on unrecognized status")
	}
}

func TestDateRoundTrip(t *testing.T) {
	date, err := ParseDate("2026-03-14")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if got := date.String(); got != "2026-03-14" {
		t.Errorf("String() = %q", got)
	}

	data, err := json.Marshal(date)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !back.Equal(date.Time) {
		t.Errorf("round trip mismatch: got %v, want %v", back, date)
	}
}

func TestParseDateRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"03/14/2026", "2026-13-01", "yesterday", ""} {
		if _, err := ParseDate(raw); err == nil {
			t.Errorf("ParseDate(%q) should fail", raw)
		}
	}
}

func TestDateOf(t *testing.T) {
	stamp := time.Date(2026, time.August, 31, 23, 59, 58, 0, time.Local)
	if got := DateOf(stamp).String(); got != "2026-08-31" {
		t.Errorf("DateOf = %q, want 2026-08-31", got)
	}
}

func TestRecordValidate(t *testing.T) {
	valid := Record{
		Company:     "Acme",
		Position:    "Engineer",
		AppliedDate: DateOf(time.Now()),
		Status:      StatusApplied,
		ID:          "20260105120000",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Record)
		field  string
	}{
		{"empty company", func(r *Record) { r.Company = "  " }, "company"},
		{"empty position", func(r *Record) { r.Position = "" }, "position"},
		{"empty id", func(r *Record) { r.ID = "" }, "id"},
		{"bad status", func(r *Record) { r.Status = "ghosted" }, "status"},
		{"zero date", func(r *Record) { r.AppliedDate = Date{} }, "date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := valid
			tc.mutate(&rec)
			err := rec.Validate()
			if err == nil {
				t.Fatal("expected validation failure")
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Errorf("error %q should name field %q", err, tc.field)
			}
		})
	}
}

func TestRecordLocation(t *testing.T) {
	cases := []struct {
		country, state, want string
	}{
		{"Germany", "Bavaria", "Germany, Bavaria"},
		{"Germany", "", "Germany"},
		{"", "Bavaria", "Bavaria"},
		{"", "", ""},
	}
	for _, tc := range cases {
		rec := Record{Country: tc.country, State: tc.state}
		if got := rec.Location(); got != tc.want {
			t.Errorf("Location(%q, %q) = %q, want %q", tc.country, tc.state, got, tc.want)
		}
	}
}

func mustErr(t *testing.T, fn func() error) error {
	t.Helper()
	err := fn()
	if err == nil {
		t.Fatal("expected an error")
	}
	return err
}
