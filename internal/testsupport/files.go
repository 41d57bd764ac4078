package testsupport

import (
	"os"
	"testing"

	"jobtrack/internal/records"
)

// Draft returns a minimal valid draft for the given company and position.
func Draft(company, position string) records.Draft {
	return records.Draft{Company: company, Position: position}
}

// Corrupt overwrites path with bytes no store loader accepts.
func Corrupt(t testing.TB, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("{definitely not valid json"), 0o644); err != nil {
		t.Fatalf("corrupt %s: %v", path, err)
	}
}
