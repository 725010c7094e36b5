// Package quarter resolves quarter selectors and iterates their calendar days.
package quarter

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/clyang82/workflows/internal/model"
)

var labelRe = regexp.MustCompile(`^(\d{4})-Q([1-4])$`)

// Parse parses an explicit YYYY-QN label.
func Parse(label string) (model.Quarter, error) {
	m := labelRe.FindStringSubmatch(label)
	if m == nil {
		return model.Quarter{}, fmt.Errorf("invalid quarter label %q: expected YYYY-QN with N in 1-4", label)
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return model.Quarter{}, fmt.Errorf("invalid quarter year in %q: %w", label, err)
	}
	number, err := strconv.Atoi(m[2])
	if err != nil {
		return model.Quarter{}, fmt.Errorf("invalid quarter number in %q: %w", label, err)
	}
	return model.Quarter{Year: year, Number: number}, nil
}

// Of returns the quarter containing t.
func Of(t time.Time) model.Quarter {
	return model.Quarter{Year: t.Year(), Number: (int(t.Month())-1)/3 + 1}
}

// Resolve parses an explicit label, or derives the quarter containing now
// when the label is empty.
func Resolve(label string, now time.Time) (model.Quarter, error) {
	if label == "" {
		return Of(now), nil
	}
	return Parse(label)
}

// Days returns every real calendar day of the quarter in ascending order.
// Month lengths are honored, so no invalid dates are produced.
func Days(q model.Quarter) []time.Time {
	var days []time.Time
	for _, month := range q.Months() {
		first := time.Date(q.Year, month, 1, 0, 0, 0, 0, time.UTC)
		for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
			days = append(days, d)
		}
	}
	return days
}
