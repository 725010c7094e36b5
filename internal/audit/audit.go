// Package audit appends import records to the PR-to-issue audit log.
package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LogName is the audit log filename inside the audit directory.
const LogName = "pr-to-issue.log"

// Append records one PR import as a tab-separated line:
// timestamp, PR number, issue key, effort bucket.
func Append(dir string, at time.Time, prNumber int, issueKey, bucket string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create audit directory: %w", err)
	}
	path := filepath.Join(dir, LogName)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close.
			_ = cerr
		}
	}()
	line := fmt.Sprintf("%s\t%d\t%s\t%s\n", at.UTC().Format(time.RFC3339), prNumber, issueKey, bucket)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("failed to append audit line: %w", err)
	}
	return nil
}
