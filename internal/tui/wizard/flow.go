// Package wizard is the form-based alternative to the line prompts.
package wizard

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	huh "github.com/charmbracelet/huh"
	"github.com/jakoblorz/wdk-wizard/internal/models"
	"github.com/jakoblorz/wdk-wizard/internal/tui"
	linewizard "github.com/jakoblorz/wdk-wizard/internal/wizard"
)

// Flow collects the crate parameters using huh forms.
type Flow struct {
	theme *huh.Theme
}

// NewFlow constructs a Flow with the wizard huh theme.
func NewFlow() *Flow {
	return &Flow{theme: tui.NewHuhTheme()}
}

// Run shows the question form, then the confirmation form, until the user
// accepts or aborts. Retry clears every answer; escape or ctrl+c aborts.
func (f *Flow) Run() (*models.Answers, error) {
	for {
		answers, err := f.collect()
		if err != nil {
			return nil, f.mapErr(err)
		}

		decision, err := f.confirm(answers)
		if err != nil {
			return nil, f.mapErr(err)
		}

		switch decision {
		case models.DecisionAccept:
			return &answers, nil
		case models.DecisionAbort:
			return nil, linewizard.ErrAborted
		}
	}
}

func (f *Flow) mapErr(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return linewizard.ErrAborted
	}
	return err
}

func (f *Flow) collect() (models.Answers, error) {
	var (
		name   string
		driver = string(models.DriverKMDF)
		vcs    = "git"
	)

	opts := make([]huh.Option[string], 0, len(models.AllDriverTypes()))
	for _, dt := range models.AllDriverTypes() {
		opts = append(opts, huh.NewOption(dt.String(), dt.String()))
	}

	notBlank := func(field string) func(string) error {
		return func(v string) error {
			if strings.TrimSpace(v) == "" {
				return fmt.Errorf("%s cannot be empty", field)
			}
			return nil
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Crate name").
				Description("Name your driver in snake_case.").
				Placeholder("my_driver").
				Value(&name).
				Validate(notBlank("crate name")),
			huh.NewSelect[string]().
				Title("Driver type").
				Options(opts...).
				Value(&driver),
			huh.NewInput().
				Title("Version-control system").
				Description("Passed to cargo new --vcs. Recommended: git or none.").
				Suggestions([]string{"git", "none", "hg", "pijul", "fossil"}).
				Value(&vcs).
				Validate(notBlank("VCS type")),
		).
			Title("New Windows Driver crate"),
	).
		WithTheme(f.theme).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen())

	if err := form.Run(); err != nil {
		return models.Answers{}, err
	}

	dt, err := models.ParseDriverType(driver)
	if err != nil {
		return models.Answers{}, err
	}

	return models.Answers{
		CrateName:  strings.ToLower(strings.TrimSpace(name)),
		DriverType: dt,
		VCS:        strings.ToLower(strings.TrimSpace(vcs)),
	}, nil
}

func (f *Flow) confirm(answers models.Answers) (models.Decision, error) {
	decision := models.DecisionAccept

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.Decision]().
				Options(
					huh.NewOption("Confirm", models.DecisionAccept),
					huh.NewOption("Retry", models.DecisionRetry),
					huh.NewOption("Quit", models.DecisionAbort),
				).
				Value(&decision),
		).
			Title("Are you sure?").
			Description(RenderSummary(answers)),
	).
		WithTheme(f.theme).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen())

	if err := form.Run(); err != nil {
		return models.DecisionAccept, err
	}
	return decision, nil
}
