package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/clyang82/workflows/internal/model"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestScanAccumulatesMentions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2025-03-10.md", "# TODO 2025-03-10\n\n- [ ] ACM-1: fix bug [In Progress]\n- [ ] ACM-2: add test [New]\n")
	writeFile(t, dir, "2025-03-11.md", "# TODO 2025-03-11\n\n- [ ] ACM-1: fix bug [Review]\n")

	agg, err := Scan(dir, model.Quarter{Year: 2025, Number: 1})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if agg.Total != 3 {
		t.Fatalf("expected total 3, got %d", agg.Total)
	}
	if len(agg.Unique) != 2 {
		t.Fatalf("expected 2 unique issues, got %v", agg.Unique)
	}
	want := map[string]int{"In Progress": 1, "New": 1, "Review": 1}
	for status, n := range want {
		if agg.ByStatus[status] != n {
			t.Fatalf("status %q = %d, want %d", status, agg.ByStatus[status], n)
		}
	}

	// Sum invariants: status and week counts both add up to the total.
	statusSum, weekSum := 0, 0
	for _, n := range agg.ByStatus {
		statusSum += n
	}
	for _, n := range agg.ByWeek {
		weekSum += n
	}
	if statusSum != agg.Total || weekSum != agg.Total {
		t.Fatalf("sum invariants violated: status=%d week=%d total=%d", statusSum, weekSum, agg.Total)
	}
}

func TestScanWeekBucketsPerMention(t *testing.T) {
	dir := t.TempDir()
	// 2025-03-10 is ISO week 11, 2025-03-17 is week 12.
	writeFile(t, dir, "2025-03-10.md", "- [ ] ACM-1: a [New]\n- [ ] ACM-2: b [New]\n")
	writeFile(t, dir, "2025-03-17.md", "- [ ] ACM-3: c [New]\n")

	agg, err := Scan(dir, model.Quarter{Year: 2025, Number: 1})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if agg.ByWeek[11] != 2 || agg.ByWeek[12] != 1 {
		t.Fatalf("unexpected week buckets: %v", agg.ByWeek)
	}
}

func TestScanIgnoresOutOfQuarterFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2024-12-31.md", "- [ ] ACM-1: old [Done]\n")
	writeFile(t, dir, "2025-01-15.md", "- [ ] ACM-2: in scope [New]\n")
	writeFile(t, dir, "2025-04-01.md", "- [ ] ACM-3: next quarter [New]\n")

	agg, err := Scan(dir, model.Quarter{Year: 2025, Number: 1})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if agg.Total != 1 || len(agg.Unique) != 1 || agg.Unique[0] != "ACM-2" {
		t.Fatalf("scan leaked out-of-quarter data: %+v", agg)
	}
}

func TestScanZeroMatchFileContributesNothing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2025-02-01.md", "# TODO 2025-02-01\n\nnothing assigned today\n")

	agg, err := Scan(dir, model.Quarter{Year: 2025, Number: 1})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if agg.Total != 0 || len(agg.ByWeek) != 0 || len(agg.ByStatus) != 0 {
		t.Fatalf("expected empty aggregate, got %+v", agg)
	}
}

func TestScanCountsUnparsedListLines(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2025-02-01.md", "- [ ] ACM-1: ok [New]\n- [x] ACM-2: done item [Done]\n- malformed entry\n")

	agg, err := Scan(dir, model.Quarter{Year: 2025, Number: 1})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if agg.Total != 1 {
		t.Fatalf("expected 1 mention, got %d", agg.Total)
	}
	if agg.Unparsed != 2 {
		t.Fatalf("expected 2 unparsed lines, got %d", agg.Unparsed)
	}
}

func TestScanMissingDirectoryIsEmpty(t *testing.T) {
	agg, err := Scan(filepath.Join(t.TempDir(), "missing"), model.Quarter{Year: 2025, Number: 1})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if agg.Total != 0 {
		t.Fatalf("expected empty aggregate, got %+v", agg)
	}
}
