// Package jiracli drives the jira command-line client.
package jiracli

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/clyang82/workflows/internal/execx"
	"github.com/clyang82/workflows/internal/model"
)

const installHint = "install it from https://github.com/ankitpokhrel/jira-cli and run `jira init`"

var issueKeyRe = regexp.MustCompile(`[A-Z][A-Z0-9]*-\d+`)

// Client wraps the jira CLI for issue listing, creation, transition, and
// sprint membership.
type Client struct {
	run     execx.Runner
	project string
}

// New returns a client executing through run against the given project.
func New(run execx.Runner, project string) *Client {
	return &Client{run: run, project: project}
}

// CheckInstalled verifies the jira CLI is available, with installation
// guidance when it is not.
func CheckInstalled() error {
	return execx.CheckInstalled("jira", installHint)
}

// Me returns the login of the authenticated user.
func (c *Client) Me(ctx context.Context) (string, error) {
	out, err := c.run.Run(ctx, "jira", "me")
	if err != nil {
		return "", fmt.Errorf("failed to resolve current user: %w", err)
	}
	user := strings.TrimSpace(out)
	if user == "" {
		return "", fmt.Errorf("jira me returned no user")
	}
	return user, nil
}

// AssignedOpen lists open issues assigned to user, ordered as the tracker
// returns them.
func (c *Client) AssignedOpen(ctx context.Context, user string) ([]model.Issue, error) {
	out, err := c.run.Run(ctx, "jira", "issue", "list",
		"--project", c.project,
		"--assignee", user,
		"--status", "~Done",
		"--plain", "--no-headers",
		"--columns", "key,summary,status,priority")
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned issues: %w", err)
	}
	return parsePlainList(out)
}

// UpdatedSince lists the user's issues updated within the trailing window,
// e.g. "-7d".
func (c *Client) UpdatedSince(ctx context.Context, user, window string) ([]model.Issue, error) {
	out, err := c.run.Run(ctx, "jira", "issue", "list",
		"--project", c.project,
		"--assignee", user,
		"--updated", window,
		"--plain", "--no-headers",
		"--columns", "key,summary,status,priority")
	if err != nil {
		return nil, fmt.Errorf("failed to list recently updated issues: %w", err)
	}
	return parsePlainList(out)
}

// CreateRequest carries the fields for issue creation.
type CreateRequest struct {
	Summary string
	Body    string
	Type    string
	Label   string
	Points  int
}

// Create creates an issue and returns its key, parsed from the browse URL the
// CLI prints. Creation failure is fatal to the caller.
func (c *Client) Create(ctx context.Context, req CreateRequest) (string, error) {
	issueType := req.Type
	if issueType == "" {
		issueType = "Task"
	}
	args := []string{"issue", "create",
		"--project", c.project,
		"--type", issueType,
		"--summary", req.Summary,
		"--body", req.Body,
		"--no-input"}
	if req.Label != "" {
		args = append(args, "--label", req.Label)
	}
	if req.Points > 0 {
		args = append(args, "--custom", fmt.Sprintf("story-points=%d", req.Points))
	}
	out, err := c.run.Run(ctx, "jira", args...)
	if err != nil {
		return "", fmt.Errorf("failed to create issue: %w", err)
	}
	key := issueKeyRe.FindString(out)
	if key == "" {
		return "", fmt.Errorf("could not find issue key in create output %q", out)
	}
	return key, nil
}

// Move transitions an issue to the named state.
func (c *Client) Move(ctx context.Context, key, state string) error {
	if _, err := c.run.Run(ctx, "jira", "issue", "move", key, state); err != nil {
		return fmt.Errorf("failed to move %s to %s: %w", key, state, err)
	}
	return nil
}

// AddToActiveSprint puts the issue into the currently active sprint.
func (c *Client) AddToActiveSprint(ctx context.Context, key string) error {
	if _, err := c.run.Run(ctx, "jira", "sprint", "add", "--current", key); err != nil {
		return fmt.Errorf("failed to add %s to the active sprint: %w", key, err)
	}
	return nil
}

// parsePlainList parses `--plain --no-headers` tab-separated output. Rows
// with fewer than three columns are skipped.
func parsePlainList(out string) ([]model.Issue, error) {
	var issues []model.Issue
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 3 {
			continue
		}
		is := model.Issue{
			Key:     strings.TrimSpace(cols[0]),
			Summary: strings.TrimSpace(cols[1]),
			Status:  strings.TrimSpace(cols[2]),
		}
		if len(cols) > 3 {
			is.Priority = strings.TrimSpace(cols[3])
		}
		if is.Key == "" {
			continue
		}
		issues = append(issues, is)
	}
	return issues, nil
}
