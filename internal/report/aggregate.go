// Package report builds the quarterly aggregation report.
package report

import (
	"sort"
	"time"

	"github.com/clyang82/workflows/internal/model"
)

// Aggregate accumulates mention statistics over a single quarterly scan.
// It is created fresh per invocation and consumed once by Compose.
type Aggregate struct {
	Total    int
	ByStatus map[string]int
	ByWeek   map[int]int
	Unique   []string
	Unparsed int

	seen map[string]struct{}
}

// NewAggregate returns an empty accumulator.
func NewAggregate() *Aggregate {
	return &Aggregate{
		ByStatus: map[string]int{},
		ByWeek:   map[int]int{},
		seen:     map[string]struct{}{},
	}
}

// Record attributes one mention to the total, the status map, the ISO week
// of the file's date, and the unique-issue set.
func (a *Aggregate) Record(day time.Time, m model.Mention) {
	a.Total++
	a.ByStatus[m.Status]++
	_, week := day.ISOWeek()
	a.ByWeek[week]++
	if _, ok := a.seen[m.Key]; !ok {
		a.seen[m.Key] = struct{}{}
		a.Unique = append(a.Unique, m.Key)
	}
}

// RecordUnparsed counts a list line that did not match the record shape.
func (a *Aggregate) RecordUnparsed() {
	a.Unparsed++
}

// Weeks returns the week numbers with data in ascending order.
func (a *Aggregate) Weeks() []int {
	weeks := make([]int, 0, len(a.ByWeek))
	for w := range a.ByWeek {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)
	return weeks
}

// SortedUnique returns the unique issue keys in lexicographic order.
func (a *Aggregate) SortedUnique() []string {
	keys := make([]string, len(a.Unique))
	copy(keys, a.Unique)
	sort.Strings(keys)
	return keys
}

// BusiestWeek returns the week with the most mentions, lowest week number
// winning ties. ok is false when no week has data.
func (a *Aggregate) BusiestWeek() (week, count int, ok bool) {
	for _, w := range a.Weeks() {
		if !ok || a.ByWeek[w] > count {
			week, count, ok = w, a.ByWeek[w], true
		}
	}
	return week, count, ok
}
