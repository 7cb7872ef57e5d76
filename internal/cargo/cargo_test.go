package cargo

import (
	"errors"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jakoblorz/wdk-wizard/internal/filesystem"
	"github.com/stretchr/testify/require"
)

func TestArgs(t *testing.T) {
	require.Equal(t, []string{"new", "mydriver", "--lib", "--vcs", "git"}, NewArgs("mydriver", "git"))
	require.Equal(t, []string{"new", "mydriver", "--lib"}, NewArgs("mydriver", ""))
	require.Equal(t, []string{"add", "--build", "wdk-build"}, AddBuildArgs("wdk-build"))
	require.Equal(t, []string{"add", "wdk", "wdk-sys"}, AddArgs("wdk", "wdk-sys"))
}

func TestMockClient_SimulatesNew(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	client := NewMockClient(fs)

	err := client.Run("/workspace", NewArgs("mydriver", "none")...)
	require.NoError(t, err)

	require.True(t, fs.Exists("/workspace/mydriver/Cargo.toml"))
	require.True(t, fs.Exists("/workspace/mydriver/src/lib.rs"))

	invocations := client.Invocations()
	require.Len(t, invocations, 1)
	require.Equal(t, "/workspace", invocations[0].Dir)
	require.Equal(t, "cargo new mydriver --lib --vcs none", invocations[0].String())
}

func TestMockClient_ExitCode(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	client := NewMockClient(fs)
	client.SetExitCode("new", 1)

	err := client.Run("/workspace", NewArgs("mydriver", "git")...)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, 1, exitErr.Code)
	require.False(t, fs.Exists("/workspace/mydriver"))
}

func TestMockClient_LaunchError(t *testing.T) {
	client := NewMockClient(filesystem.NewMockFileSystem())
	client.LaunchError = exec.ErrNotFound

	err := client.Run("/workspace", AddArgs("wdk")...)
	require.ErrorIs(t, err, exec.ErrNotFound)
}

func TestOSClient_MissingBinary(t *testing.T) {
	client := NewOSClient(filepath.Join(t.TempDir(), "no-such-cargo"))

	err := client.Run(t.TempDir(), "--version")
	require.Error(t, err)

	var exitErr *ExitError
	require.False(t, errors.As(err, &exitErr))
}

func TestOSClient_NonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available in PATH")
	}

	client := NewOSClient(sh).WithOutput(nil, nil)
	err = client.Run(t.TempDir(), "-c", "exit 3")

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, 3, exitErr.Code)
}
