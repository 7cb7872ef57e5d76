// Package wizard collects the crate parameters over a line-oriented
// prompt/response protocol.
package wizard

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jakoblorz/wdk-wizard/internal/models"
)

var (
	// ErrAborted is returned when the user quits at the confirmation step.
	ErrAborted = errors.New("wizard aborted by user")

	// ErrInputClosed is returned when input ends before an answer is read.
	ErrInputClosed = errors.New("input closed")
)

const (
	crateNamePrompt  = "What's the name of your new Windows Driver crate? Please name your driver in snake_case."
	driverTypePrompt = "What's your driver type? Valid Options: [WDM | KMDF | UMDF]"
	vcsPrompt        = "What's your VCS type? For valid options, see: https://doc.rust-lang.org/cargo/commands/cargo-new.html#new-options"
	vcsHint          = "Recommended options: [git | none]"
	confirmOptions   = "Type 1 to confirm. Type 2 to retry. Type 3 to quit. (Default: 1 - Confirm)"
)

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Prompter
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Run drives the wizard until the user accepts or aborts.
//
// Only empty fields are prompted. Retry clears every field, so all three
// questions are asked again.
func (p *Prompter) Run() (*models.Answers, error) {
	var answers models.Answers

	for {
		if answers.CrateName == "" {
			name, err := p.CollectCrateName()
			if err != nil {
				return nil, err
			}
			answers.CrateName = name
		}

		if answers.DriverType == "" {
			dt, err := p.CollectDriverType()
			if err != nil {
				return nil, err
			}
			answers.DriverType = dt
		}

		if answers.VCS == "" {
			vcs, err := p.CollectVCS()
			if err != nil {
				return nil, err
			}
			answers.VCS = vcs
		}

		decision, err := p.Confirm(answers)
		if err != nil {
			return nil, err
		}

		switch decision {
		case models.DecisionAccept:
			return &answers, nil
		case models.DecisionAbort:
			return nil, ErrAborted
		default:
			answers.Reset()
		}
	}
}

// CollectCrateName re-prompts until the trimmed, lower-cased answer is non-empty
func (p *Prompter) CollectCrateName() (string, error) {
	for {
		p.println(crateNamePrompt)
		line, err := p.readLine("crate name")
		if err != nil {
			return "", err
		}
		if name := strings.ToLower(strings.TrimSpace(line)); name != "" {
			return name, nil
		}
	}
}

// CollectDriverType re-prompts until the answer names a supported driver type.
// Empty answers re-prompt silently; anything else is rejected by name.
func (p *Prompter) CollectDriverType() (models.DriverType, error) {
	for {
		p.println(driverTypePrompt)
		line, err := p.readLine("driver type")
		if err != nil {
			return "", err
		}

		dt := models.NormalizeDriverType(line)
		if dt == "" {
			continue
		}
		if !dt.IsValid() {
			p.printf("Unrecognized driver type: %s!\n", dt)
			continue
		}
		return dt, nil
	}
}

// CollectVCS re-prompts until the answer is non-empty. The value is handed
// to cargo as-is; cargo rejects unknown selectors itself.
func (p *Prompter) CollectVCS() (string, error) {
	for {
		p.println(vcsPrompt)
		p.println(vcsHint)
		line, err := p.readLine("VCS type")
		if err != nil {
			return "", err
		}
		if vcs := strings.ToLower(strings.TrimSpace(line)); vcs != "" {
			return vcs, nil
		}
	}
}

// Confirm echoes answers once and reads a decision. An empty line accepts.
func (p *Prompter) Confirm(answers models.Answers) (models.Decision, error) {
	p.printf("\nAre you sure?\nConfirm the following configurations:\n")
	p.printf("Crate Name: %s\n", answers.CrateName)
	p.printf("Driver Type: %s\n", answers.DriverType)
	p.printf("Version-Control System: %s\n", answers.VCS)
	p.printf("\n%s\n", confirmOptions)

	for {
		line, err := p.readLine("confirmation")
		if err != nil {
			return models.DecisionAccept, err
		}

		decision, ok, msg := ParseDecision(line)
		if ok {
			return decision, nil
		}
		p.println(msg)
	}
}

// ParseDecision maps a confirmation token to a decision. When ok is false,
// msg explains why the token was rejected.
func ParseDecision(token string) (decision models.Decision, ok bool, msg string) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.DecisionAccept, true, ""
	}

	digits := token
	if len(digits) > 1 && digits[0] == '+' {
		digits = digits[1:]
	}

	n, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, false, "Unrecognized input!"
		}
		return 0, false, fmt.Sprintf("Invalid input %q: expected a number.", token)
	}

	switch n {
	case 1:
		return models.DecisionAccept, true, ""
	case 2:
		return models.DecisionRetry, true, ""
	case 3:
		return models.DecisionAbort, true, ""
	default:
		return 0, false, "Unrecognized input!"
	}
}

// readLine returns one line without its terminator. A final line without a
// newline is still returned; end of input with nothing pending is an error.
func (p *Prompter) readLine(what string) (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line != "" {
				return line, nil
			}
			return "", fmt.Errorf("failed to get the %s: %w", what, ErrInputClosed)
		}
		return "", fmt.Errorf("failed to get the %s: %w", what, err)
	}
	return line, nil
}

func (p *Prompter) println(s string) {
	if p.out != nil {
		fmt.Fprintln(p.out, s)
	}
}

func (p *Prompter) printf(format string, args ...any) {
	if p.out != nil {
		fmt.Fprintf(p.out, format, args...)
	}
}
