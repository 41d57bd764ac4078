// Package testsupport provides shared fixtures for jobtrack tests: temp-dir
// backed configs, record drafts, and file corruption helpers.
package testsupport

import (
	"path/filepath"
	"testing"

	"jobtrack/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.ExportDir = filepath.Join(base, "exports")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure test directories: %v", err)
	}
	return &cfg
}

// WithReminderHours overrides the reminder cycle tuning.
func WithReminderHours(reset, retention int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Reminders.ResetHours = reset
		cfg.Reminders.RetentionHours = retention
	}
}
