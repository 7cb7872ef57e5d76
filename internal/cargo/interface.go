package cargo

import (
	"context"
)

// Client runs cargo subcommands for the scaffold.
//
// Run returns an *ExitError when cargo starts but exits non-zero, and a
// wrapped launch error when the binary cannot be started at all.
type Client interface {
	// Run executes cargo with args in dir.
	Run(dir string, args ...string) error

	// WithContext returns a client bound to ctx
	WithContext(ctx context.Context) Client
}

// NewArgs builds the argument vector for `cargo new`.
// The --vcs selector is omitted when vcs is empty.
func NewArgs(crateName, vcs string) []string {
	args := []string{"new", crateName, "--lib"}
	if vcs != "" {
		args = append(args, "--vcs", vcs)
	}
	return args
}

// AddBuildArgs builds the argument vector for a build-dependency `cargo add`.
func AddBuildArgs(dep string) []string {
	return []string{"add", "--build", dep}
}

// AddArgs builds the argument vector for a runtime-dependency `cargo add`.
func AddArgs(deps ...string) []string {
	return append([]string{"add"}, deps...)
}
