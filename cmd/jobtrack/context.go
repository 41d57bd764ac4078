package main

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"jobtrack/internal/config"
	"jobtrack/internal/logging"
	"jobtrack/internal/tracker"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds a logger that writes only to the log file, keeping
// stdout free for command output.
func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil || cfg.Paths.LogDir == "" {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.New(logging.Options{
			Level:       cfg.Logging.Level,
			Format:      cfg.Logging.Format,
			OutputPaths: []string{filepath.Join(cfg.Paths.LogDir, "jobtrack.log")},
		})
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// withTracker opens the tracker for the duration of one command.
func (c *commandContext) withTracker(fn func(*tracker.Tracker) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	tr, err := tracker.Open(cfg, c.ensureLogger())
	if err != nil {
		return err
	}
	defer tr.Close()
	return fn(tr)
}
