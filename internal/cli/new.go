package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jakoblorz/wdk-wizard/internal/config"
	"github.com/jakoblorz/wdk-wizard/internal/console"
	"github.com/jakoblorz/wdk-wizard/internal/filesystem"
	"github.com/jakoblorz/wdk-wizard/internal/logging"
	"github.com/jakoblorz/wdk-wizard/internal/models"
	"github.com/jakoblorz/wdk-wizard/internal/scaffold"
	"github.com/jakoblorz/wdk-wizard/internal/tui"
	tuiwizard "github.com/jakoblorz/wdk-wizard/internal/tui/wizard"
	"github.com/jakoblorz/wdk-wizard/internal/wizard"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const welcomeTitle = "Welcome to Rust!"

const welcomeBody = `
This wizard will create a crate that builds a Windows Driver.
You only need to follow the wizard's guide to create a new crate.

`

// Collector gathers confirmed answers from the user
type Collector interface {
	Run() (*models.Answers, error)
}

// NewCommand runs the wizard and scaffolds the crate
type NewCommand struct {
	fs       filesystem.FileSystem
	newCargo CargoFactory
	pauser   console.Pauser
	now      func() time.Time

	configFile string
	dryRun     bool
}

func (c *NewCommand) registerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.configFile, "config", "", "Config file (default: ./wdk-wizard.yaml or ~/.config/wdk-wizard/wdk-wizard.yaml)")
	cmd.Flags().String("dir", ".", "Directory to create the crate in")
	cmd.Flags().String("cargo", "cargo", "Cargo binary to invoke")
	cmd.Flags().Bool("tui", false, "Use interactive forms instead of line prompts")
	cmd.Flags().Bool("no-pause", false, "Do not wait for a key press before exiting")
	cmd.Flags().Bool("no-inx", false, "Skip writing the <crate>.inx install descriptor")
	cmd.Flags().BoolP("verbose", "v", false, "Log every scaffold step to stderr")
	cmd.Flags().BoolVar(&c.dryRun, "dry-run", false, "Print the scaffold steps without running them")
}

// Run executes the wizard
func (c *NewCommand) Run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cfg.File != "" {
		logger.Debug("loaded config", zap.String("file", cfg.File))
	}

	out := cmd.OutOrStdout()
	in := cmd.InOrStdin()

	_, _ = fmt.Fprint(out, tui.TitleStyle.Render(welcomeTitle)+"\n"+welcomeBody)

	answers, err := c.collector(cfg, in, out, cmd.ErrOrStderr()).Run()
	if err != nil {
		return err
	}

	now := c.now
	if now == nil {
		now = time.Now
	}
	start := now()

	opts := scaffold.Options{InstallDescriptor: cfg.InstallDescriptor}
	plan, err := scaffold.NewPlan(*answers, opts)
	if err != nil {
		return err
	}

	parent, err := c.parentDir(cfg.Dir)
	if err != nil {
		return err
	}

	if c.dryRun {
		printPlan(out, parent, plan)
		return nil
	}

	executor := scaffold.NewExecutor(c.fs, c.newCargo(cfg.Cargo), logger)
	result, err := executor.Execute(cmd.Context(), parent, plan)
	if err != nil {
		return err
	}

	elapsed := now().Sub(start)
	_, _ = fmt.Fprintln(out, tui.SuccessStyle.Render("Wizard has completed creating a new Windows Driver crate!"))
	_, _ = fmt.Fprintln(out, "You will need to manually execute `cargo make` to get started!")
	_, _ = fmt.Fprintf(out, "%s seconds elapsed in creating new crate!\n", strconv.FormatFloat(elapsed.Seconds(), 'f', -1, 64))
	logger.Debug("crate created", zap.String("root", result.Root), zap.Duration("elapsed", elapsed))

	if cfg.Pause && c.pauser != nil {
		if err := c.pauser.Pause(); err != nil {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), tui.WarningStyle.Render("warning: "+err.Error()))
		}
	}

	return nil
}

// collector picks the huh forms when asked for and stdin is a terminal
func (c *NewCommand) collector(cfg *config.Config, in io.Reader, out, errOut io.Writer) Collector {
	if cfg.TUI {
		if f, ok := in.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
			return tuiwizard.NewFlow()
		}
		_, _ = fmt.Fprintln(errOut, tui.WarningStyle.Render("warning: --tui needs an interactive terminal, using line prompts"))
	}
	return wizard.New(in, out)
}

func (c *NewCommand) parentDir(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return dir, nil
	}
	wd, err := c.fs.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return filepath.Join(wd, dir), nil
}

func printPlan(out io.Writer, parent string, plan *scaffold.Plan) {
	_, _ = fmt.Fprintln(out, tui.HeaderStyle.Render("Scaffold plan"))
	_, _ = fmt.Fprintf(out, "%s\n", tui.SubtleStyle.Render("in "+filepath.Join(parent, plan.CrateName)))
	for i, step := range plan.Steps {
		_, _ = fmt.Fprintf(out, "%2d. %s\n", i+1, step)
	}
	_, _ = fmt.Fprintln(out, tui.HelpStyle.Render("Run without --dry-run to create the crate."))
}
