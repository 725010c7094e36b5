package report

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/clyang82/workflows/internal/model"
)

// barScale is the bar length of a status holding 100% of the mentions.
const barScale = 50

// Percentage returns count/total as a percentage. Zero total yields 0.
func Percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

// BarLength returns the proportional bar length for a status count.
// Zero total yields 0.
func BarLength(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * barScale))
}

func renderKeyMetrics(b *strings.Builder, agg *Aggregate) {
	b.WriteString("## Key Metrics\n\n")
	rows := [][]string{
		{"Total mentions", strconv.Itoa(agg.Total)},
		{"Unique issues", strconv.Itoa(len(agg.Unique))},
		{"Active weeks", strconv.Itoa(len(agg.ByWeek))},
		{"Statuses seen", strconv.Itoa(len(agg.ByStatus))},
	}
	for _, line := range formatTable([]string{"Metric", "Value"}, rows, map[int]bool{1: true}) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
}

func renderStatusDistribution(b *strings.Builder, agg *Aggregate) {
	b.WriteString("## Status Distribution\n\n")
	statuses := statusesInOrder(agg.ByStatus)
	if len(statuses) == 0 {
		b.WriteString("No mentions recorded.\n\n")
		return
	}
	nameWidth := 0
	for _, status := range statuses {
		if w := displayWidth(status); w > nameWidth {
			nameWidth = w
		}
	}
	for _, status := range statuses {
		count := agg.ByStatus[status]
		bar := strings.Repeat("#", BarLength(count, agg.Total))
		fmt.Fprintf(b, "%-*s %4d  %5.1f%%  %s\n", nameWidth, status, count, Percentage(count, agg.Total), bar)
	}
	b.WriteByte('\n')
}

func renderWeeklyBreakdown(b *strings.Builder, agg *Aggregate) {
	b.WriteString("## Weekly Breakdown\n\n")
	weeks := agg.Weeks()
	if len(weeks) == 0 {
		b.WriteString("No mentions recorded.\n\n")
		return
	}
	for _, w := range weeks {
		fmt.Fprintf(b, "- W%02d: %d %s\n", w, agg.ByWeek[w], plural(agg.ByWeek[w], "mention", "mentions"))
	}
	b.WriteByte('\n')
}

func renderIssueLinks(b *strings.Builder, agg *Aggregate, browseURL string) {
	b.WriteString("## Issues Touched\n\n")
	keys := agg.SortedUnique()
	if len(keys) == 0 {
		b.WriteString("No issues recorded.\n\n")
		return
	}
	for _, key := range keys {
		fmt.Fprintf(b, "- [%s](%s)\n", key, fmt.Sprintf(browseURL, key))
	}
	b.WriteByte('\n')
}

func renderInsights(b *strings.Builder, agg *Aggregate) {
	b.WriteString("## Insights\n\n")
	week, count, ok := agg.BusiestWeek()
	if !ok {
		b.WriteString("No data for this quarter.\n")
		return
	}
	fmt.Fprintf(b, "- Busiest week: W%02d with %d %s\n", week, count, plural(count, "mention", "mentions"))
	mean := float64(agg.Total) / float64(len(agg.ByWeek))
	fmt.Fprintf(b, "- Average mentions per active week: %.1f\n", mean)

	newCount := agg.ByStatus[model.StatusNew]
	inProgress := agg.ByStatus[model.StatusInProgress]
	review := agg.ByStatus[model.StatusReview]
	fmt.Fprintf(b, "- New: %d, In Progress: %d, Review: %d\n", newCount, inProgress, review)

	b.WriteString("\n### Recommendations\n\n")
	recommended := false
	if review > 0 {
		fmt.Fprintf(b, "- %d %s waiting in Review. Chase reviewers before the work goes stale.\n",
			review, plural(review, "mention", "mentions"))
		recommended = true
	}
	if newCount > inProgress {
		fmt.Fprintf(b, "- Intake (%d New) outpaces active work (%d In Progress). Consider starting fewer new issues.\n",
			newCount, inProgress)
		recommended = true
	}
	if !recommended {
		b.WriteString("- Work intake and progress look balanced. Keep the current pace.\n")
	}
}

// statusesInOrder returns statuses with data, known vocabulary first and
// unknown labels after in lexicographic order.
func statusesInOrder(byStatus map[string]int) []string {
	present := map[string]bool{}
	for status := range byStatus {
		present[status] = true
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

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
