// Package scaffold turns collected answers into a driver crate on disk.
//
// Steps run strictly in order and the first failure stops the run. Nothing
// created by earlier steps is rolled back.
package scaffold

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jakoblorz/wdk-wizard/internal/cargo"
	"github.com/jakoblorz/wdk-wizard/internal/filesystem"
	"github.com/jakoblorz/wdk-wizard/internal/templates"
	"go.uber.org/zap"
)

// StepError reports the step that stopped a scaffold run
type StepError struct {
	// Index is the 1-based position of the step in the plan
	Index int
	Step  Step
	// Op names the attempted action, e.g. "write to Cargo.toml"
	Op  string
	Err error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): failed to %s: %v", e.Index, e.Step.Action, e.Op, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Result describes a completed scaffold
type Result struct {
	// Root is the crate directory
	Root string
	// Files lists the written files relative to Root, in write order
	Files []string
	// Commands lists the cargo argument vectors that ran
	Commands [][]string
}

// Executor runs plans against a file system and a cargo client
type Executor struct {
	fs     filesystem.FileSystem
	cargo  cargo.Client
	logger *zap.Logger
}

// NewExecutor creates an Executor. A nil logger discards logs.
func NewExecutor(fs filesystem.FileSystem, cargoClient cargo.Client, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{fs: fs, cargo: cargoClient, logger: logger}
}

// Execute runs every step of plan with parentDir as the directory the crate
// is created in. The crate root is always passed explicitly; the process
// working directory is never changed.
func (e *Executor) Execute(ctx context.Context, parentDir string, plan *Plan) (*Result, error) {
	root := filepath.Join(parentDir, plan.CrateName)
	client := e.cargo.WithContext(ctx)
	result := &Result{Root: root}

	for i, step := range plan.Steps {
		index := i + 1
		log := e.logger.With(zap.Int("step", index), zap.String("action", step.Action))

		if err := ctx.Err(); err != nil {
			return nil, &StepError{Index: index, Step: step, Op: step.Action, Err: err}
		}

		log.Debug("running step", zap.Stringer("step", step))

		op, err := e.run(client, parentDir, root, plan.Data, step)
		if err != nil {
			serr := &StepError{Index: index, Step: step, Op: op, Err: err}
			log.Error("step failed", zap.String("op", op), zap.Error(err))
			return nil, serr
		}

		switch step.Kind {
		case StepCommand:
			result.Commands = append(result.Commands, step.Args)
		case StepWriteFile:
			result.Files = append(result.Files, step.Path)
		}
	}

	e.logger.Debug("scaffold complete", zap.String("root", root), zap.Int("files", len(result.Files)))
	return result, nil
}

// run performs one step and returns the op it was attempting
func (e *Executor) run(client cargo.Client, parentDir, root string, data templates.Data, step Step) (string, error) {
	switch step.Kind {
	case StepCommand:
		dir := parentDir
		if step.InRoot {
			dir = root
		}
		return "run " + step.String(), client.Run(dir, step.Args...)

	case StepEnterRoot:
		op := "switch directory to " + root
		info, err := e.fs.Stat(root)
		if err != nil {
			return op, err
		}
		if !info.IsDir() {
			return op, errors.New("not a directory")
		}
		return op, nil

	case StepMkdir:
		return "create " + step.Path + " directory", e.fs.Mkdir(e.path(root, step.Path), 0755)

	case StepWriteFile:
		return e.writeFile(root, data, step)

	default:
		return step.Action, fmt.Errorf("unknown step kind %d", step.Kind)
	}
}

func (e *Executor) writeFile(root string, data templates.Data, step Step) (op string, err error) {
	body, err := templates.Render(step.Template, data)
	if err != nil {
		return "render " + step.Path, err
	}

	var (
		flag   int
		openOp string
	)
	switch step.Mode {
	case ModeAppend:
		flag, openOp = os.O_WRONLY|os.O_APPEND, "open "
	case ModeTruncate:
		flag, openOp = os.O_WRONLY|os.O_CREATE, "open "
	default:
		flag, openOp = os.O_WRONLY|os.O_CREATE|os.O_TRUNC, "create "
	}

	f, err := e.fs.OpenFile(e.path(root, step.Path), flag, 0644)
	if err != nil {
		return openOp + step.Path, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			op, err = "close "+step.Path, cerr
		}
	}()

	if step.Mode == ModeTruncate {
		if err := f.Truncate(0); err != nil {
			return "clear " + step.Path, err
		}
	}
	if _, err := f.Write([]byte(body)); err != nil {
		return "write to " + step.Path, err
	}
	if err := f.Sync(); err != nil {
		return "sync " + step.Path, err
	}
	return "", nil
}

func (e *Executor) path(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}
