// Package execx runs external command-line collaborators.
package execx

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes an external command and returns its stdout.
// It allows swapping the real runner with a fake one for testing.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// CLI is the production Runner backed by os/exec.
type CLI struct{}

// Run executes name with args and returns trimmed stdout. A non-zero exit
// surfaces as an error carrying the command line and captured stderr.
func (CLI) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%s %s: %s", name, strings.Join(args, " "), msg)
	}
	return strings.TrimRight(stdout.String(), "\n"), nil
}

// Fake is a scripted Runner for tests.
type Fake struct {
	// Handler produces the result for each invocation.
	Handler func(name string, args []string) (string, error)
	// Calls records every invocation in order.
	Calls [][]string
}

// Run records the invocation and delegates to Handler.
func (f *Fake) Run(_ context.Context, name string, args ...string) (string, error) {
	f.Calls = append(f.Calls, append([]string{name}, args...))
	if f.Handler == nil {
		return "", fmt.Errorf("fake runner: no handler for %s", name)
	}
	return f.Handler(name, args)
}

// CheckInstalled verifies that the named binary is on PATH. The hint is
// surfaced to the user as installation guidance.
func CheckInstalled(name, hint string) error {
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("%s CLI not found in PATH: %s", name, hint)
	}
	return nil
}
