// Package model defines shared data structures.
package model

import (
	"fmt"
	"time"
)

// Status vocabulary used by the tracker workflows. The quarterly insights
// block matches these by exact name.
const (
	StatusNew        = "New"
	StatusInProgress = "In Progress"
	StatusReview     = "Review"
	StatusBlocked    = "Blocked"
	StatusDone       = "Done"
)

// StatusOrder is the display order for status groupings.
var StatusOrder = []string{StatusNew, StatusInProgress, StatusReview, StatusBlocked, StatusDone}

// Issue is one tracked work item as reported by the tracker CLI.
type Issue struct {
	Key      string
	Summary  string
	Status   string
	Priority string
}

// Mention is one occurrence of an issue key in a daily TODO file line.
type Mention struct {
	Key    string
	Status string
}

// Quarter identifies a 3-month reporting period.
type Quarter struct {
	Year   int
	Number int
}

// Label renders the quarter as YYYY-QN.
func (q Quarter) Label() string {
	return fmt.Sprintf("%d-Q%d", q.Year, q.Number)
}

// Months returns the three calendar months of the quarter.
func (q Quarter) Months() [3]time.Month {
	first := time.Month((q.Number-1)*3 + 1)
	return [3]time.Month{first, first + 1, first + 2}
}

// PullRequest captures merged change-request metadata from the code host.
type PullRequest struct {
	Number       int        `json:"number"`
	Title        string     `json:"title"`
	URL          string     `json:"url"`
	Body         string     `json:"body"`
	Additions    int        `json:"additions"`
	Deletions    int        `json:"deletions"`
	ChangedFiles int        `json:"changedFiles"`
	MergedAt     *time.Time `json:"mergedAt"`
}

// LinesChanged is the total churn of the change request.
func (pr PullRequest) LinesChanged() int {
	return pr.Additions + pr.Deletions
}

// Estimate is a coarse effort bucket with its story points.
type Estimate struct {
	Bucket string
	Points int
}
