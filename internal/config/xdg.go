// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "workflows", "config.toml")
}

// DefaultTodoDir returns the default directory for daily TODO files.
func DefaultTodoDir() string {
	return filepath.Join(XDGDataHome(), "workflows", "todo")
}

// DefaultWeeklyDir returns the default directory for weekly summary files.
func DefaultWeeklyDir() string {
	return filepath.Join(XDGDataHome(), "workflows", "weekly")
}

// DefaultReportsDir returns the default directory for quarterly reports.
func DefaultReportsDir() string {
	return filepath.Join(XDGDataHome(), "workflows", "reports")
}

// DefaultAuditDir returns the default directory for audit logs.
func DefaultAuditDir() string {
	return filepath.Join(XDGDataHome(), "workflows", "audit")
}

// DefaultHistoryDBPath returns the default path for the sync history database.
func DefaultHistoryDBPath() string {
	return filepath.Join(XDGDataHome(), "workflows", "history.db")
}
