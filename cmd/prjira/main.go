// Package main provides the CLI entrypoint for prjira.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/clyang82/workflows/internal/audit"
	"github.com/clyang82/workflows/internal/config"
	"github.com/clyang82/workflows/internal/estimate"
	"github.com/clyang82/workflows/internal/execx"
	"github.com/clyang82/workflows/internal/ghcli"
	"github.com/clyang82/workflows/internal/jiracli"
	"github.com/clyang82/workflows/internal/model"
)

var createdStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2F9E44"))

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "prjira <pr-number>",
		Short:         "Convert a merged PR into a tracked issue",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runImport,
	}
}

func runImport(_ *cobra.Command, args []string) error {
	cfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := ghcli.CheckInstalled(); err != nil {
		return err
	}
	if err := jiracli.CheckInstalled(); err != nil {
		return err
	}

	number, err := strconv.Atoi(args[0])
	if err != nil || number <= 0 {
		return fmt.Errorf("invalid PR number %q", args[0])
	}

	ctx := context.Background()
	gh := ghcli.New(execx.CLI{})
	pr, err := gh.PRView(ctx, number)
	if err != nil {
		return err
	}
	if pr.MergedAt == nil {
		return fmt.Errorf("PR %d is not merged; only merged change requests are imported", number)
	}

	est := estimate.ForChange(pr.LinesChanged(), pr.ChangedFiles)

	jc := jiracli.New(execx.CLI{}, cfg.Project)
	key, err := jc.Create(ctx, jiracli.CreateRequest{
		Summary: pr.Title,
		Body:    issueBody(pr, est),
		Label:   cfg.Label,
		Points:  est.Points,
	})
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("Created %s (%s, %d points) for PR #%d", key, est.Bucket, est.Points, number)
	if shouldUseColor(os.Stdout) {
		msg = createdStyle.Render(msg)
	}
	fmt.Println(msg)

	// The PR is already merged, so the tracked issue starts closed. These
	// follow-ups are best-effort: a failure is a warning, not an abort.
	if err := jc.Move(ctx, key, model.StatusDone); err != nil {
		logErrf("warning: %v\n", err)
	}
	if err := jc.AddToActiveSprint(ctx, key); err != nil {
		logErrf("warning: %v\n", err)
	}
	backlink := fmt.Sprintf("Tracked as [%s](%s)", key, fmt.Sprintf(cfg.BrowseURL, key))
	if err := gh.Comment(ctx, number, backlink); err != nil {
		logErrf("warning: %v\n", err)
	}

	return audit.Append(cfg.AuditDir, time.Now(), number, key, est.Bucket)
}

func issueBody(pr model.PullRequest, est model.Estimate) string {
	return fmt.Sprintf("Imported from merged PR %s\n\nLines changed: %d\nFiles changed: %d\nEffort bucket: %s",
		pr.URL, pr.LinesChanged(), pr.ChangedFiles, est.Bucket)
}

func shouldUseColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
