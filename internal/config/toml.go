// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// WebhookEnvVar names the environment variable holding the chat webhook URL.
const WebhookEnvVar = "SLACK_WEBHOOK_URL"

const (
	defaultProject   = "ACM"
	defaultBrowseURL = "https://issues.redhat.com/browse/%s"
	defaultLabel     = "pr-import"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Jira  JiraConfig  `toml:"jira"`
	Paths PathsConfig `toml:"paths"`
}

// JiraConfig maps tracker-related settings.
type JiraConfig struct {
	Project   *string `toml:"project"`
	BrowseURL *string `toml:"browse-url"`
	Label     *string `toml:"label"`
}

// PathsConfig maps output directory overrides.
type PathsConfig struct {
	Todo    *string `toml:"todo"`
	Weekly  *string `toml:"weekly"`
	Reports *string `toml:"reports"`
	Audit   *string `toml:"audit"`
	History *string `toml:"history"`
}

// Config is the resolved runtime configuration with defaults applied.
type Config struct {
	Project    string
	BrowseURL  string
	Label      string
	TodoDir    string
	WeeklyDir  string
	ReportsDir string
	AuditDir   string
	HistoryDB  string
}

// Load reads a TOML config from the given path and applies defaults.
// Missing file is not an error.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, fmt.Errorf("config path is empty")
	}
	var fileCfg FileConfig
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to stat config: %w", err)
		}
	} else if _, err := toml.DecodeFile(path, &fileCfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg := Config{
		Project:    defaultProject,
		BrowseURL:  defaultBrowseURL,
		Label:      defaultLabel,
		TodoDir:    DefaultTodoDir(),
		WeeklyDir:  DefaultWeeklyDir(),
		ReportsDir: DefaultReportsDir(),
		AuditDir:   DefaultAuditDir(),
		HistoryDB:  DefaultHistoryDBPath(),
	}
	applyString(&cfg.Project, fileCfg.Jira.Project)
	applyString(&cfg.BrowseURL, fileCfg.Jira.BrowseURL)
	applyString(&cfg.Label, fileCfg.Jira.Label)
	applyString(&cfg.TodoDir, fileCfg.Paths.Todo)
	applyString(&cfg.WeeklyDir, fileCfg.Paths.Weekly)
	applyString(&cfg.ReportsDir, fileCfg.Paths.Reports)
	applyString(&cfg.AuditDir, fileCfg.Paths.Audit)
	applyString(&cfg.HistoryDB, fileCfg.Paths.History)
	return cfg, nil
}

// WebhookURL reads the chat webhook URL from the environment.
// Empty means notifications are disabled.
func WebhookURL() string {
	return os.Getenv(WebhookEnvVar)
}

func applyString(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}
