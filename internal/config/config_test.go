package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("dir", ".", "")
	flags.String("cargo", "cargo", "")
	flags.Bool("tui", false, "")
	flags.Bool("verbose", false, "")
	flags.Bool("no-pause", false, "")
	flags.Bool("no-inx", false, "")
	require.NoError(t, flags.Parse(args))
	return flags
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wdk-wizard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("", newFlags(t))
	require.NoError(t, err)
	require.Equal(t, ".", cfg.Dir)
	require.Equal(t, "cargo", cfg.Cargo)
	require.True(t, cfg.Pause)
	require.True(t, cfg.InstallDescriptor)
	require.False(t, cfg.TUI)
	require.False(t, cfg.Verbose)
	require.Empty(t, cfg.File)
}

func TestLoad_FileThenEnvThenFlags(t *testing.T) {
	path := writeConfig(t, "dir: /from/file\ncargo: /opt/cargo\npause: false\ninstall_descriptor: false\n")

	cfg, err := Load(path, newFlags(t))
	require.NoError(t, err)
	require.Equal(t, "/from/file", cfg.Dir)
	require.Equal(t, "/opt/cargo", cfg.Cargo)
	require.False(t, cfg.Pause)
	require.False(t, cfg.InstallDescriptor)
	require.Equal(t, path, cfg.File)

	t.Setenv("WDK_WIZARD_DIR", "/from/env")
	cfg, err = Load(path, newFlags(t))
	require.NoError(t, err)
	require.Equal(t, "/from/env", cfg.Dir)

	cfg, err = Load(path, newFlags(t, "--dir", "/from/flag"))
	require.NoError(t, err)
	require.Equal(t, "/from/flag", cfg.Dir)
}

func TestLoad_NegatedFlags(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("", newFlags(t, "--no-pause", "--no-inx", "--tui"))
	require.NoError(t, err)
	require.False(t, cfg.Pause)
	require.False(t, cfg.InstallDescriptor)
	require.True(t, cfg.TUI)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, "dir: [unterminated\n")

	_, err := Load(path, nil)
	require.Error(t, err)
}

func TestLoad_IgnoresBinaryNamedLikeConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, os.WriteFile("wdk-wizard", []byte{0x7f, 'E', 'L', 'F', 0x02, 0x01, 0x00, 0x1b}, 0755))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	require.Empty(t, cfg.File)
	require.Equal(t, ".", cfg.Dir)
}

func TestLoad_SearchPaths(t *testing.T) {
	t.Run("working directory", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("HOME", t.TempDir())
		require.NoError(t, os.WriteFile("wdk-wizard.yaml", []byte("cargo: /cwd/cargo\n"), 0644))

		cfg, err := Load("", nil)
		require.NoError(t, err)
		require.Equal(t, "/cwd/cargo", cfg.Cargo)
		require.Equal(t, "wdk-wizard.yaml", cfg.File)
	})

	t.Run("user config directory", func(t *testing.T) {
		t.Chdir(t.TempDir())
		home := t.TempDir()
		t.Setenv("HOME", home)
		dir := filepath.Join(home, ".config", "wdk-wizard")
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "wdk-wizard.yaml"), []byte("pause: false\n"), 0644))

		cfg, err := Load("", nil)
		require.NoError(t, err)
		require.False(t, cfg.Pause)
		require.Equal(t, filepath.Join(dir, "wdk-wizard.yaml"), cfg.File)
	})

	t.Run("malformed discovered file", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("HOME", t.TempDir())
		require.NoError(t, os.WriteFile("wdk-wizard.yaml", []byte("dir: [unterminated\n"), 0644))

		_, err := Load("", nil)
		require.ErrorContains(t, err, "reading config file")
	})
}
