// Package main provides the CLI entrypoint for jirasync.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/clyang82/workflows/internal/config"
	"github.com/clyang82/workflows/internal/execx"
	"github.com/clyang82/workflows/internal/jiracli"
	"github.com/clyang82/workflows/internal/model"
	"github.com/clyang82/workflows/internal/slack"
	"github.com/clyang82/workflows/internal/store"
	"github.com/clyang82/workflows/internal/todo"
)

// weeklyWindow is the trailing window queried for the weekly summary.
const weeklyWindow = "-7d"

var (
	syncNoNotify bool
	syncNoWeekly bool
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	statusStyles = map[string]lipgloss.Style{
		model.StatusNew:        lipgloss.NewStyle().Foreground(lipgloss.Color("#2F9E44")),
		model.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")),
		model.StatusReview:     lipgloss.NewStyle().Foreground(lipgloss.Color("#1971C2")),
		model.StatusBlocked:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")),
		model.StatusDone:       lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
	}
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "jirasync",
		Short:         "Sync assigned issues into a daily TODO list",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runSync,
	}
	rootCmd.Flags().BoolVar(&syncNoNotify, "no-notify", false, "skip the chat notification")
	rootCmd.Flags().BoolVar(&syncNoWeekly, "no-weekly", false, "skip the weekly summary")
	return rootCmd
}

func runSync(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := jiracli.CheckInstalled(); err != nil {
		return err
	}

	ctx := context.Background()
	client := jiracli.New(execx.CLI{}, cfg.Project)
	user, err := client.Me(ctx)
	if err != nil {
		return err
	}
	issues, err := client.AssignedOpen(ctx, user)
	if err != nil {
		return err
	}

	printIssueList(user, issues)

	now := time.Now()
	path, err := todo.WriteDaily(cfg.TodoDir, now, issues)
	if err != nil {
		return err
	}
	logErrf("Wrote %s\n", path)

	changes := recordHistory(ctx, cfg.HistoryDB, now, issues)

	if !syncNoNotify {
		notify(ctx, user, issues, changes)
	}

	if !syncNoWeekly {
		if err := writeWeeklySummary(ctx, client, cfg, user, now); err != nil {
			return err
		}
	}
	return nil
}

func printIssueList(user string, issues []model.Issue) {
	useColor := shouldUseColor(os.Stdout)
	fmt.Println(render(headerStyle, useColor, fmt.Sprintf("%d open issues assigned to %s", len(issues), user)))
	for _, status := range todo.StatusesInOrder(issues) {
		style, ok := statusStyles[status]
		if !ok {
			style = headerStyle
		}
		fmt.Printf("\n%s\n", render(style, useColor, status))
		for _, is := range issues {
			if is.Status != status {
				continue
			}
			fmt.Printf("  %-10s %s\n", is.Key, is.Summary)
		}
	}
}

// recordHistory stores today's snapshot and returns the changes since the
// previous run. History is supporting bookkeeping, so failures degrade to a
// warning instead of aborting the sync.
func recordHistory(ctx context.Context, dbPath string, now time.Time, issues []model.Issue) []store.Change {
	st, err := store.Open(dbPath)
	if err != nil {
		logErrf("warning: failed to open sync history: %v\n", err)
		return nil
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("warning: failed to close sync history: %v\n", cerr)
		}
	}()

	id, err := st.RecordRun(ctx, now, issues)
	if err != nil {
		logErrf("warning: failed to record sync run: %v\n", err)
		return nil
	}
	prev, err := st.PreviousSnapshot(ctx, id)
	if err != nil {
		logErrf("warning: failed to load previous sync run: %v\n", err)
		return nil
	}
	return store.Diff(prev, issues)
}

func notify(ctx context.Context, user string, issues []model.Issue, changes []store.Change) {
	url := config.WebhookURL()
	if url == "" {
		logErrf("warning: %s not set, skipping chat notification\n", config.WebhookEnvVar)
		return
	}
	if err := slack.New(url).Post(ctx, buildNotification(user, issues, changes)); err != nil {
		logErrf("warning: chat notification failed: %v\n", err)
	}
}

// buildNotification summarizes the sync for the chat channel: per-status
// counts plus the issues that changed since the previous run.
func buildNotification(user string, issues []model.Issue, changes []store.Change) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d open %s assigned to %s", len(issues), plural(len(issues), "issue", "issues"), user)

	var counts []string
	byStatus := map[string]int{}
	for _, is := range issues {
		byStatus[is.Status]++
	}
	for _, status := range todo.StatusesInOrder(issues) {
		counts = append(counts, fmt.Sprintf("%s: %d", status, byStatus[status]))
	}
	if len(counts) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(counts, ", "))
	}

	if len(changes) > 0 {
		b.WriteString("\nChanges since last sync:")
		for _, c := range changes {
			if c.IsNew() {
				fmt.Fprintf(&b, "\n• %s newly assigned [%s]", c.Issue.Key, c.Issue.Status)
			} else {
				fmt.Fprintf(&b, "\n• %s moved to %s (was %s)", c.Issue.Key, c.Issue.Status, c.From)
			}
		}
	}
	return b.String()
}

// writeWeeklySummary queries the trailing 7-day window and writes the weekly
// summary file for the current ISO week, once per calendar week.
func writeWeeklySummary(ctx context.Context, client *jiracli.Client, cfg config.Config, user string, now time.Time) error {
	if _, err := os.Stat(todo.WeeklyPath(cfg.WeeklyDir, now)); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat weekly summary: %w", err)
	}
	recent, err := client.UpdatedSince(ctx, user, weeklyWindow)
	if err != nil {
		return err
	}
	path, written, err := todo.WriteWeekly(cfg.WeeklyDir, now, recent)
	if err != nil {
		return err
	}
	if written {
		logErrf("Wrote %s\n", path)
	}
	return nil
}

func shouldUseColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func render(style lipgloss.Style, useColor bool, s string) string {
	if !useColor {
		return s
	}
	return style.Render(s)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
