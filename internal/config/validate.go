package config

import (
	"errors"
	"fmt"
)

var validSortColumns = map[string]struct{}{
	"company":  {},
	"position": {},
	"date":     {},
	"status":   {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateReminders(); err != nil {
		return err
	}
	if err := c.validateDisplay(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateReminders() error {
	if c.Reminders.ResetHours <= 0 {
		return errors.New("reminders.reset_hours must be positive")
	}
	if c.Reminders.RetentionHours < 0 {
		return errors.New("reminders.retention_hours must not be negative")
	}
	if c.Reminders.RetentionHours > 0 && c.Reminders.RetentionHours < c.Reminders.ResetHours {
		return errors.New("reminders.retention_hours must be at least reminders.reset_hours")
	}
	return nil
}

func (c *Config) validateDisplay() error {
	if _, ok := validSortColumns[c.Display.DefaultSort]; !ok {
		return fmt.Errorf("display.default_sort: unsupported column %q (want company, position, date, or status)", c.Display.DefaultSort)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q (want debug, info, warn, or error)", c.Logging.Level)
	}
	return nil
}
