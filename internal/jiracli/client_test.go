package jiracli

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/clyang82/workflows/internal/execx"
)

func TestAssignedOpenParsesPlainOutput(t *testing.T) {
	fake := &execx.Fake{Handler: func(name string, args []string) (string, error) {
		return strings.Join([]string{
			"ACM-1\tfix bug\tIn Progress\tMajor",
			"ACM-2\tadd test\tNew\tMinor",
			"",
			"ACM-3\tno priority column\tReview",
		}, "\n"), nil
	}}
	c := New(fake, "ACM")
	issues, err := c.AssignedOpen(context.Background(), "clyang")
	if err != nil {
		t.Fatalf("assigned open: %v", err)
	}
	if len(issues) != 3 {
		t.Fatalf("expected 3 issues, got %d", len(issues))
	}
	if issues[0].Key != "ACM-1" || issues[0].Status != "In Progress" || issues[0].Priority != "Major" {
		t.Fatalf("unexpected first issue: %+v", issues[0])
	}
	if issues[2].Priority != "" {
		t.Fatalf("expected empty priority, got %q", issues[2].Priority)
	}
	if len(fake.Calls) != 1 {
		t.Fatalf("expected one CLI call, got %d", len(fake.Calls))
	}
	call := strings.Join(fake.Calls[0], " ")
	for _, want := range []string{"jira issue list", "--project ACM", "--assignee clyang", "--plain"} {
		if !strings.Contains(call, want) {
			t.Fatalf("call %q missing %q", call, want)
		}
	}
}

func TestMeTrimsOutput(t *testing.T) {
	fake := &execx.Fake{Handler: func(string, []string) (string, error) {
		return "clyang@example.com\n", nil
	}}
	user, err := New(fake, "ACM").Me(context.Background())
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if user != "clyang@example.com" {
		t.Fatalf("unexpected user %q", user)
	}
}

func TestCreateParsesKeyFromBrowseURL(t *testing.T) {
	fake := &execx.Fake{Handler: func(name string, args []string) (string, error) {
		return "✓ Issue created\nhttps://issues.redhat.com/browse/ACM-4711", nil
	}}
	c := New(fake, "ACM")
	key, err := c.Create(context.Background(), CreateRequest{
		Summary: "imported from PR",
		Body:    "details",
		Label:   "pr-import",
		Points:  3,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if key != "ACM-4711" {
		t.Fatalf("unexpected key %q", key)
	}
	call := strings.Join(fake.Calls[0], " ")
	for _, want := range []string{"--type Task", "--label pr-import", "story-points=3", "--no-input"} {
		if !strings.Contains(call, want) {
			t.Fatalf("call %q missing %q", call, want)
		}
	}
}

func TestCreateFailsWithoutKey(t *testing.T) {
	fake := &execx.Fake{Handler: func(string, []string) (string, error) {
		return "nothing useful", nil
	}}
	if _, err := New(fake, "ACM").Create(context.Background(), CreateRequest{Summary: "s"}); err == nil {
		t.Fatalf("expected error when output has no issue key")
	}
}

func TestErrorsPropagate(t *testing.T) {
	fake := &execx.Fake{Handler: func(string, []string) (string, error) {
		return "", fmt.Errorf("boom")
	}}
	c := New(fake, "ACM")
	if _, err := c.AssignedOpen(context.Background(), "u"); err == nil {
		t.Fatalf("expected list error")
	}
	if err := c.Move(context.Background(), "ACM-1", "Done"); err == nil {
		t.Fatalf("expected move error")
	}
	if err := c.AddToActiveSprint(context.Background(), "ACM-1"); err == nil {
		t.Fatalf("expected sprint error")
	}
}
