// Package todo reads and writes the daily TODO and weekly summary files.
package todo

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/clyang82/workflows/internal/model"
)

// DateLayout is the file-naming layout for daily TODO files.
const DateLayout = "2006-01-02"

// A record is an unchecked TODO item starting with an issue key and a colon,
// ending with a bracketed status token.
var lineRe = regexp.MustCompile(`^- \[ \] ([A-Z][A-Z0-9]*-\d+): (.*) \[([^\[\]]+)\]$`)

// DailyPath returns the daily TODO file path for a date.
func DailyPath(dir string, day time.Time) string {
	return filepath.Join(dir, day.Format(DateLayout)+".md")
}

// WeekLabel renders the ISO week containing day as YYYY-Www.
func WeekLabel(day time.Time) string {
	year, week := day.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// WeeklyPath returns the weekly summary file path for the ISO week containing day.
func WeeklyPath(dir string, day time.Time) string {
	return filepath.Join(dir, WeekLabel(day)+".md")
}

// ParseLine extracts a mention from one daily-file line.
// Lines that are not unchecked TODO records report ok=false.
func ParseLine(line string) (model.Mention, bool) {
	m := lineRe.FindStringSubmatch(line)
	if m == nil {
		return model.Mention{}, false
	}
	return model.Mention{Key: m[1], Status: m[3]}, true
}

// FormatLine renders one issue as an unchecked TODO record.
func FormatLine(is model.Issue) string {
	return fmt.Sprintf("- [ ] %s: %s [%s]", is.Key, is.Summary, is.Status)
}

// WriteDaily writes the daily TODO file for day, overwriting any previous run.
func WriteDaily(dir string, day time.Time, issues []model.Issue) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create todo directory: %w", err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# TODO %s\n\n", day.Format(DateLayout))
	for _, is := range issues {
		b.WriteString(FormatLine(is))
		b.WriteByte('\n')
	}
	path := DailyPath(dir, day)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write daily todo: %w", err)
	}
	return path, nil
}

// RenderWeekly renders the weekly summary block for the ISO week of day.
func RenderWeekly(day time.Time, issues []model.Issue) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Week %s\n\n", WeekLabel(day))
	fmt.Fprintf(&b, "Issues touched: %d\n\n", len(issues))

	b.WriteString("## By Status\n\n")
	for _, status := range StatusesInOrder(issues) {
		n := 0
		for _, is := range issues {
			if is.Status == status {
				n++
			}
		}
		fmt.Fprintf(&b, "- %s: %d\n", status, n)
	}

	b.WriteString("\n## By Priority\n\n")
	byPriority := map[string]int{}
	for _, is := range issues {
		p := is.Priority
		if p == "" {
			p = "Unset"
		}
		byPriority[p]++
	}
	priorities := make([]string, 0, len(byPriority))
	for p := range byPriority {
		priorities = append(priorities, p)
	}
	sort.Strings(priorities)
	for _, p := range priorities {
		fmt.Fprintf(&b, "- %s: %d\n", p, byPriority[p])
	}

	b.WriteString("\n## Issues\n")
	for _, status := range StatusesInOrder(issues) {
		fmt.Fprintf(&b, "\n### %s\n\n", status)
		for _, is := range issues {
			if is.Status == status {
				fmt.Fprintf(&b, "- %s: %s\n", is.Key, is.Summary)
			}
		}
	}
	return b.String()
}

// WriteWeekly writes the weekly summary for the ISO week of day unless one
// already exists. It reports whether a file was written.
func WriteWeekly(dir string, day time.Time, issues []model.Issue) (string, bool, error) {
	path := WeeklyPath(dir, day)
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	} else if !os.IsNotExist(err) {
		return "", false, fmt.Errorf("failed to stat weekly summary: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create weekly directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(RenderWeekly(day, issues)), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write weekly summary: %w", err)
	}
	return path, true, nil
}

// StatusesInOrder returns the statuses present in issues, known vocabulary
// first, unknown labels after in lexicographic order.
func StatusesInOrder(issues []model.Issue) []string {
	present := map[string]bool{}
	for _, is := range issues {
		present[is.Status] = true
	}
	var out []string
	for _, status := range model.StatusOrder {
		if present[status] {
			out = append(out, status)
			delete(present, status)
		}
	}
	var rest []string
	for status := range present {
		rest = append(rest, status)
	}
	sort.Strings(rest)
	return append(out, rest...)
}
