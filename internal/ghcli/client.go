// Package ghcli drives the gh command-line client.
package ghcli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/clyang82/workflows/internal/execx"
	"github.com/clyang82/workflows/internal/model"
)

const installHint = "install it from https://cli.github.com and run `gh auth login`"

// Client wraps the gh CLI for change-request metadata and comments.
type Client struct {
	run execx.Runner
}

// New returns a client executing through run.
func New(run execx.Runner) *Client {
	return &Client{run: run}
}

// CheckInstalled verifies the gh CLI is available, with installation guidance
// when it is not.
func CheckInstalled() error {
	return execx.CheckInstalled("gh", installHint)
}

// PRView fetches metadata for a single pull request.
func (c *Client) PRView(ctx context.Context, number int) (model.PullRequest, error) {
	out, err := c.run.Run(ctx, "gh", "pr", "view", strconv.Itoa(number),
		"--json", "number,title,url,body,additions,deletions,changedFiles,mergedAt")
	if err != nil {
		return model.PullRequest{}, fmt.Errorf("failed to fetch PR %d: %w", number, err)
	}
	var pr model.PullRequest
	if err := json.Unmarshal([]byte(out), &pr); err != nil {
		return model.PullRequest{}, fmt.Errorf("failed to decode PR %d metadata: %w", number, err)
	}
	return pr, nil
}

// Comment posts a comment on the pull request.
func (c *Client) Comment(ctx context.Context, number int, body string) error {
	if _, err := c.run.Run(ctx, "gh", "pr", "comment", strconv.Itoa(number), "--body", body); err != nil {
		return fmt.Errorf("failed to comment on PR %d: %w", number, err)
	}
	return nil
}
