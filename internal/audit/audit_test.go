package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestAppendAccumulatesLines(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)

	if err := Append(dir, at, 128, "ACM-4711", "M"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := Append(dir, at.Add(time.Hour), 129, "ACM-4712", "XS"); err != nil {
		t.Fatalf("second append: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, LogName))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", data)
	}
	if lines[0] != "2025-03-14T10:00:00Z\t128\tACM-4711\tM" {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[1], "ACM-4712") {
		t.Fatalf("unexpected second line %q", lines[1])
	}
}
