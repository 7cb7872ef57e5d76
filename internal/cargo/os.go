package cargo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ExitError reports a cargo invocation that ran but exited non-zero
type ExitError struct {
	Args []string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("cargo %s returned non-zero status: exit status %d", strings.Join(e.Args, " "), e.Code)
}

// OSClient implements Client using a real cargo binary
type OSClient struct {
	ctx    context.Context
	binary string
	stdout io.Writer
	stderr io.Writer
}

// NewOSClient creates a new OSClient. An empty binary means "cargo" on PATH.
// Cargo's own output is streamed to stdout and stderr.
func NewOSClient(binary string) *OSClient {
	if binary == "" {
		binary = "cargo"
	}
	return &OSClient{
		ctx:    context.Background(),
		binary: binary,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// WithOutput redirects cargo's stdout and stderr
func (c *OSClient) WithOutput(stdout, stderr io.Writer) *OSClient {
	return &OSClient{ctx: c.ctx, binary: c.binary, stdout: stdout, stderr: stderr}
}

// WithContext returns a new client with the given context
func (c *OSClient) WithContext(ctx context.Context) Client {
	return &OSClient{ctx: ctx, binary: c.binary, stdout: c.stdout, stderr: c.stderr}
}

// Run executes cargo and waits for it to exit
func (c *OSClient) Run(dir string, args ...string) error {
	cmd := exec.CommandContext(c.ctx, c.binary, args...)
	cmd.Dir = dir
	cmd.Stdin = nil
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Args: args, Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("failed to execute %s: %w", c.binary, err)
	}

	return nil
}
