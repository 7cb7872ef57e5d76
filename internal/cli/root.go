package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/jakoblorz/wdk-wizard/internal/cargo"
	"github.com/jakoblorz/wdk-wizard/internal/console"
	"github.com/jakoblorz/wdk-wizard/internal/filesystem"
	"github.com/jakoblorz/wdk-wizard/internal/tui"
	"github.com/jakoblorz/wdk-wizard/internal/wizard"
	"github.com/spf13/cobra"
)

// Exit codes reported by the wdk-wizard binary
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitAborted = 2
)

// CargoFactory builds the cargo client for the configured binary
type CargoFactory func(binary string) cargo.Client

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem, newCargo CargoFactory, pauser console.Pauser) *cobra.Command {
	newCmd := &NewCommand{fs: fs, newCargo: newCargo, pauser: pauser}

	rootCmd := &cobra.Command{
		Use:   "wdk-wizard",
		Short: "Create a Rust crate that builds a Windows driver",
		Long: `An interactive wizard that creates a new Rust crate configured to build a
Windows driver (WDM, KMDF or UMDF) with the wdk crates and cargo-make.

The wizard asks for the crate name, driver type and version-control system,
runs cargo new and cargo add, then writes Cargo.toml additions, Makefile.toml,
.cargo/config.toml, build.rs, src/lib.rs and an .inx install descriptor.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          newCmd.Run,
	}

	newCmd.registerFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(NewTemplatesCommand())

	return rootCmd
}

// Execute runs the root command against the real OS
func Execute() error {
	fs := filesystem.NewOSFileSystem()
	newCargo := func(binary string) cargo.Client { return cargo.NewOSClient(binary) }

	rootCmd := NewRootCommand(fs, newCargo, console.NewOSPauser())

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}

// ExitCode maps a command error to the process exit status
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, wizard.ErrAborted):
		return ExitAborted
	default:
		return ExitFailure
	}
}

// ReportError prints err for the user unless it is a plain abort
func ReportError(w io.Writer, err error) {
	if err == nil || errors.Is(err, wizard.ErrAborted) {
		return
	}
	_, _ = fmt.Fprintln(w, tui.ErrorStyle.Render("Error: "+err.Error()))
}
