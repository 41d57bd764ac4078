// Package config loads, normalizes, and validates jobtrack configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// JOBTRACK_CONFIG and JOBTRACK_DATA_DIR. The Config type centralizes every
// knob the CLI needs: data and log directories, reminder cycle tuning, and
// display preferences.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
