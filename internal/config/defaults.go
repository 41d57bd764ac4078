package config

const (
	defaultDataDir        = "~/.local/share/jobtrack"
	defaultLogDir         = "~/.local/share/jobtrack/logs"
	defaultExportDir      = "~/jobtrack-exports"
	defaultResetHours     = 24
	defaultRetentionHours = 48
	defaultSortColumn     = "date"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			LogDir:    defaultLogDir,
			ExportDir: defaultExportDir,
		},
		Reminders: Reminders{
			ResetHours:     defaultResetHours,
			RetentionHours: defaultRetentionHours,
		},
		Display: Display{
			DefaultSort: defaultSortColumn,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
