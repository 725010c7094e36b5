package ghcli

import (
	"context"
	"strings"
	"testing"

	"github.com/clyang82/workflows/internal/execx"
)

func TestPRView(t *testing.T) {
	fake := &execx.Fake{Handler: func(name string, args []string) (string, error) {
		return `{
			"number": 128,
			"title": "Fix reconcile loop",
			"url": "https://github.com/clyang82/workflows/pull/128",
			"body": "details",
			"additions": 120,
			"deletions": 30,
			"changedFiles": 4,
			"mergedAt": "2025-03-14T10:00:00Z"
		}`, nil
	}}
	pr, err := New(fake).PRView(context.Background(), 128)
	if err != nil {
		t.Fatalf("pr view: %v", err)
	}
	if pr.Number != 128 || pr.Title != "Fix reconcile loop" {
		t.Fatalf("unexpected PR: %+v", pr)
	}
	if pr.LinesChanged() != 150 || pr.ChangedFiles != 4 {
		t.Fatalf("unexpected churn: %+v", pr)
	}
	if pr.MergedAt == nil {
		t.Fatalf("expected merged timestamp")
	}
	call := strings.Join(fake.Calls[0], " ")
	if !strings.Contains(call, "gh pr view 128 --json") {
		t.Fatalf("unexpected call %q", call)
	}
}

func TestPRViewNotMerged(t *testing.T) {
	fake := &execx.Fake{Handler: func(string, []string) (string, error) {
		return `{"number": 7, "title": "wip", "mergedAt": null}`, nil
	}}
	pr, err := New(fake).PRView(context.Background(), 7)
	if err != nil {
		t.Fatalf("pr view: %v", err)
	}
	if pr.MergedAt != nil {
		t.Fatalf("expected nil merged timestamp, got %v", pr.MergedAt)
	}
}

func TestComment(t *testing.T) {
	fake := &execx.Fake{Handler: func(string, []string) (string, error) {
		return "", nil
	}}
	if err := New(fake).Comment(context.Background(), 128, "Tracked as ACM-1"); err != nil {
		t.Fatalf("comment: %v", err)
	}
	call := strings.Join(fake.Calls[0], " ")
	if !strings.Contains(call, "gh pr comment 128 --body Tracked as ACM-1") {
		t.Fatalf("unexpected call %q", call)
	}
}
