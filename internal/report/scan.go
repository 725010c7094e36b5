package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/clyang82/workflows/internal/model"
	"github.com/clyang82/workflows/internal/quarter"
	"github.com/clyang82/workflows/internal/todo"
)

// Scan reads every existing daily TODO file of the quarter and accumulates
// mentions. A missing daily file is skipped; an unreadable one aborts the
// whole aggregation.
func Scan(todoDir string, q model.Quarter) (*Aggregate, error) {
	agg := NewAggregate()
	for _, day := range quarter.Days(q) {
		path := todo.DailyPath(todoDir, day)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimRight(line, "\r")
			if m, ok := todo.ParseLine(line); ok {
				agg.Record(day, m)
			} else if strings.HasPrefix(line, "- ") {
				agg.RecordUnparsed()
			}
		}
	}
	return agg, nil
}
