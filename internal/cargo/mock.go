package cargo

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jakoblorz/wdk-wizard/internal/filesystem"
)

// Invocation is one recorded cargo call
type Invocation struct {
	Dir  string
	Args []string
}

// String renders the invocation the way it would be typed
func (i Invocation) String() string {
	return "cargo " + strings.Join(i.Args, " ")
}

// MockClient implements Client for testing. `cargo new` is simulated by
// writing the files cargo would create into fs; every other subcommand is
// only recorded.
type MockClient struct {
	mu          sync.Mutex
	fs          filesystem.FileSystem
	invocations []Invocation
	exitCodes   map[string]int // key: subcommand
	ctx         context.Context

	// LaunchError, when set, is returned for every call as if the binary
	// could not be started
	LaunchError error
}

// NewMockClient creates a new MockClient backed by fs
func NewMockClient(fs filesystem.FileSystem) *MockClient {
	return &MockClient{
		fs:        fs,
		exitCodes: make(map[string]int),
		ctx:       context.Background(),
	}
}

// WithContext stores ctx on the mock and returns it
func (m *MockClient) WithContext(ctx context.Context) Client {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ctx = ctx
	return m
}

// SetExitCode makes every call of subcommand ("new", "add") exit with code
func (m *MockClient) SetExitCode(subcommand string, code int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exitCodes[subcommand] = code
}

// Invocations returns the recorded calls in order
func (m *MockClient) Invocations() []Invocation {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Invocation, len(m.invocations))
	copy(out, m.invocations)
	return out
}

func (m *MockClient) Run(dir string, args ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.invocations = append(m.invocations, Invocation{Dir: dir, Args: append([]string(nil), args...)})

	if m.LaunchError != nil {
		return fmt.Errorf("failed to execute cargo: %w", m.LaunchError)
	}
	if err := m.ctx.Err(); err != nil {
		return fmt.Errorf("failed to execute cargo: %w", err)
	}
	if len(args) == 0 {
		return &ExitError{Args: args, Code: 1}
	}
	if code := m.exitCodes[args[0]]; code != 0 {
		return &ExitError{Args: args, Code: code}
	}

	if args[0] == "new" && len(args) > 1 {
		return m.simulateNew(dir, args[1])
	}
	return nil
}

func (m *MockClient) simulateNew(dir, crateName string) error {
	root := filepath.Join(dir, crateName)
	if m.fs.Exists(root) {
		return &ExitError{Args: []string{"new", crateName}, Code: 101}
	}
	if err := m.fs.MkdirAll(filepath.Join(root, "src"), 0755); err != nil {
		return err
	}

	manifest := fmt.Sprintf("[package]\nname = %q\nversion = \"0.1.0\"\nedition = \"2021\"\n\n[dependencies]\n", crateName)
	if err := m.fs.WriteFile(filepath.Join(root, "Cargo.toml"), []byte(manifest), 0644); err != nil {
		return err
	}

	lib := "pub fn add(left: u64, right: u64) -> u64 {\n    left + right\n}\n"
	return m.fs.WriteFile(filepath.Join(root, "src", "lib.rs"), []byte(lib), 0644)
}
