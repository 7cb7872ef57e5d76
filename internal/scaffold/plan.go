package scaffold

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jakoblorz/wdk-wizard/internal/cargo"
	"github.com/jakoblorz/wdk-wizard/internal/models"
	"github.com/jakoblorz/wdk-wizard/internal/templates"
)

// BuildDependency is added with `cargo add --build`.
const BuildDependency = "wdk-build"

// RuntimeDependencies are added with a single `cargo add`.
var RuntimeDependencies = []string{"wdk", "wdk-sys", "wdk-alloc", "wdk-panic"}

// StepKind is the kind of side effect a step performs
type StepKind int

const (
	// StepCommand runs cargo with Args.
	StepCommand StepKind = iota
	// StepEnterRoot checks that the project root exists and is a directory.
	StepEnterRoot
	// StepMkdir creates Path; an existing directory is an error.
	StepMkdir
	// StepWriteFile renders Template into Path according to Mode, then syncs.
	StepWriteFile
)

// WriteMode controls how StepWriteFile opens its target
type WriteMode int

const (
	// ModeAppend appends to an existing file and never creates one.
	ModeAppend WriteMode = iota
	// ModeCreate creates the file or truncates an existing one.
	ModeCreate
	// ModeTruncate opens the file, sets its length to zero, then writes.
	ModeTruncate
)

// Step is a single scaffold action. Paths are slash-separated and relative
// to the project root.
type Step struct {
	Kind   StepKind
	Action string

	// StepCommand
	Args   []string
	InRoot bool // run in the project root instead of its parent

	// StepMkdir, StepWriteFile
	Path     string
	Mode     WriteMode
	Template templates.Name
}

// String renders a step for logs and the dry-run listing
func (s Step) String() string {
	switch s.Kind {
	case StepCommand:
		return "cargo " + strings.Join(s.Args, " ")
	case StepEnterRoot:
		return "cd <crate>"
	case StepMkdir:
		return "mkdir " + s.Path
	case StepWriteFile:
		switch s.Mode {
		case ModeAppend:
			return "append " + s.Path
		case ModeTruncate:
			return "rewrite " + s.Path
		default:
			return "create " + s.Path
		}
	default:
		return s.Action
	}
}

// Plan is the ordered list of steps that materializes one crate
type Plan struct {
	CrateName string
	Data      templates.Data
	Steps     []Step
}

// Options toggles optional parts of the scaffold
type Options struct {
	// InstallDescriptor adds the <crate>.inx step
	InstallDescriptor bool
}

// DefaultOptions matches a full scaffold
func DefaultOptions() Options {
	return Options{InstallDescriptor: true}
}

// NewPlan builds the plan for a, which must be complete
func NewPlan(a models.Answers, opts Options) (*Plan, error) {
	if !a.Complete() {
		return nil, errors.New("cannot plan scaffold: answers are incomplete")
	}

	steps := []Step{
		{Kind: StepCommand, Action: "create the crate", Args: cargo.NewArgs(a.CrateName, a.VCS)},
		{Kind: StepEnterRoot, Action: "switch directory"},
		{Kind: StepCommand, Action: "add build dependencies", Args: cargo.AddBuildArgs(BuildDependency), InRoot: true},
		{Kind: StepCommand, Action: "add dependencies", Args: cargo.AddArgs(RuntimeDependencies...), InRoot: true},
		{Kind: StepWriteFile, Action: "set up Cargo.toml", Path: "Cargo.toml", Mode: ModeAppend, Template: templates.ManifestAddition},
		{Kind: StepWriteFile, Action: "set up Makefile.toml", Path: "Makefile.toml", Mode: ModeCreate, Template: templates.Makefile},
		{Kind: StepMkdir, Action: "set up .cargo directory", Path: ".cargo"},
		{Kind: StepWriteFile, Action: "set up .cargo/config.toml", Path: ".cargo/config.toml", Mode: ModeCreate, Template: templates.CargoConfig},
		{Kind: StepWriteFile, Action: "set up build.rs", Path: "build.rs", Mode: ModeCreate, Template: templates.BuildScript},
		{Kind: StepWriteFile, Action: "set up src/lib.rs", Path: "src/lib.rs", Mode: ModeTruncate, Template: templates.LibEntry},
	}

	if opts.InstallDescriptor {
		inx := fmt.Sprintf("%s.inx", a.CrateName)
		steps = append(steps, Step{
			Kind:     StepWriteFile,
			Action:   "set up " + inx,
			Path:     inx,
			Mode:     ModeCreate,
			Template: templates.InstallDescriptor,
		})
	}

	return &Plan{
		CrateName: a.CrateName,
		Data: templates.Data{
			CrateName:  a.CrateName,
			DriverType: a.DriverType.String(),
		},
		Steps: steps,
	}, nil
}
