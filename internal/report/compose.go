package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/clyang82/workflows/internal/model"
)

// Compose assembles the quarterly report document from the aggregate state
// and the year's weekly summary files. The timestamp line is the only part
// that varies between runs over unchanged inputs.
func Compose(agg *Aggregate, q model.Quarter, weeklyDir, browseURL string, now time.Time) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# Quarterly Report %s\n\n", q.Label())
	fmt.Fprintf(&b, "Generated: %s\n\n", now.UTC().Format("2006-01-02 15:04:05 UTC"))

	renderKeyMetrics(&b, agg)
	renderStatusDistribution(&b, agg)
	renderWeeklyBreakdown(&b, agg)
	renderIssueLinks(&b, agg, browseURL)

	if err := appendWeeklySummaries(&b, weeklyDir, q.Year); err != nil {
		return "", err
	}

	renderInsights(&b, agg)

	if agg.Unparsed > 0 {
		fmt.Fprintf(&b, "\nSkipped %d list %s that did not match the record shape.\n",
			agg.Unparsed, plural(agg.Unparsed, "line", "lines"))
	}
	return b.String(), nil
}

// appendWeeklySummaries appends every weekly summary file of the target year
// verbatim, sorted by filename. A missing weekly directory is not an error.
func appendWeeklySummaries(b *strings.Builder, weeklyDir string, year int) error {
	b.WriteString("## Weekly Summaries\n\n")
	entries, err := os.ReadDir(weeklyDir)
	if err != nil {
		if os.IsNotExist(err) {
			b.WriteString("No weekly summaries found.\n\n")
			return nil
		}
		return fmt.Errorf("failed to read weekly directory: %w", err)
	}

	prefix := strconv.Itoa(year) + "-W"
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), prefix) && strings.HasSuffix(entry.Name(), ".md") {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		b.WriteString("No weekly summaries found.\n\n")
		return nil
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(weeklyDir, name))
		if err != nil {
			return fmt.Errorf("failed to read weekly summary %s: %w", name, err)
		}
		fmt.Fprintf(b, "### %s\n\n", strings.TrimSuffix(name, ".md"))
		b.Write(data)
		if !strings.HasSuffix(string(data), "\n") {
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return nil
}

// Write writes the composed report atomically into dir and returns its path.
// An existing report for the same quarter is silently overwritten.
func Write(dir string, q model.Quarter, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}
	path := filepath.Join(dir, q.Label()+".md")
	if err := writeFileAtomic(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// writeFileAtomic writes data to path via temp file + rename so readers never
// observe a truncated report.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	ok := false
	defer func() {
		_ = tmp.Close()
		if !ok {
			_ = os.Remove(tmpName)
		}
	}()

	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	ok = true
	return nil
}
