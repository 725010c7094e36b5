package main

import (
	"strings"
	"testing"

	"github.com/clyang82/workflows/internal/model"
	"github.com/clyang82/workflows/internal/store"
)

func TestBuildNotification(t *testing.T) {
	issues := []model.Issue{
		{Key: "ACM-1", Summary: "fix bug", Status: model.StatusInProgress},
		{Key: "ACM-2", Summary: "add test", Status: model.StatusNew},
		{Key: "ACM-3", Summary: "write docs", Status: model.StatusNew},
	}
	changes := []store.Change{
		{Issue: issues[0], From: model.StatusNew},
		{Issue: issues[2]},
	}
	msg := buildNotification("clyang", issues, changes)
	for _, want := range []string{
		"3 open issues assigned to clyang",
		"New: 2",
		"In Progress: 1",
		"Changes since last sync:",
		"• ACM-1 moved to In Progress (was New)",
		"• ACM-3 newly assigned [New]",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("missing %q in:\n%s", want, msg)
		}
	}
}

func TestBuildNotificationNoChanges(t *testing.T) {
	issues := []model.Issue{{Key: "ACM-1", Summary: "fix bug", Status: model.StatusReview}}
	msg := buildNotification("clyang", issues, nil)
	if strings.Contains(msg, "Changes since last sync") {
		t.Fatalf("unexpected changes block:\n%s", msg)
	}
	if !strings.Contains(msg, "1 open issue assigned to clyang (Review: 1)") {
		t.Fatalf("unexpected message:\n%s", msg)
	}
}
