// Package console holds the end-of-run pause that keeps a double-clicked
// console window open until the user has read the output.
package console

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
)

// Pauser waits for the user before the process exits.
//
// Pause returns an error only when the pause command cannot be started;
// its exit status is ignored.
type Pauser interface {
	Pause() error
}

// OSPauser pauses with the platform shell. Only Windows opens a console
// window that closes on exit, so other platforms return immediately.
type OSPauser struct {
	goos   string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewOSPauser creates a pauser for the running platform
func NewOSPauser() *OSPauser {
	return &OSPauser{goos: runtime.GOOS, stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
}

// Command returns the pause command for the platform, or nil if none
func (p *OSPauser) Command() *exec.Cmd {
	switch p.goos {
	case "windows":
		cmd := exec.Command("cmd", "/c", "pause")
		cmd.Stdin = p.stdin
		cmd.Stdout = p.stdout
		cmd.Stderr = p.stderr
		return cmd
	default:
		return nil
	}
}

func (p *OSPauser) Pause() error {
	cmd := p.Command()
	if cmd == nil {
		return nil
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil
		}
		return fmt.Errorf("failed to pause: %w", err)
	}
	return nil
}

// NoopPauser never waits
type NoopPauser struct{}

func (NoopPauser) Pause() error { return nil }

// MockPauser records calls for testing
type MockPauser struct {
	Calls int
	Err   error
}

func (m *MockPauser) Pause() error {
	m.Calls++
	return m.Err
}
