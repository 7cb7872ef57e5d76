package wizard

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/jakoblorz/wdk-wizard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrompter(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return New(strings.NewReader(input), &out), &out
}

func TestCollectCrateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		prompts int
	}{
		{name: "plain", input: "mydriver\n", want: "mydriver", prompts: 1},
		{name: "trimmed and lowered", input: "  My_Driver \n", want: "my_driver", prompts: 1},
		{name: "blank lines re-prompt", input: "\n   \nmydriver\n", want: "mydriver", prompts: 3},
		{name: "crlf", input: "mydriver\r\n", want: "mydriver", prompts: 1},
		{name: "no character set validation", input: "my driver!\n", want: "my driver!", prompts: 1},
		{name: "final line without newline", input: "mydriver", want: "mydriver", prompts: 1},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p, out := newTestPrompter(tc.input)
			got, err := p.CollectCrateName()
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.prompts, strings.Count(out.String(), crateNamePrompt))
		})
	}
}

func TestCollectDriverType_RejectsUntilValid(t *testing.T) {
	t.Parallel()

	invalid := []string{"ndis", "kmdfx", "wdf"}
	input := strings.Join(invalid, "\n") + "\nkmdf\n"

	p, out := newTestPrompter(input)
	got, err := p.CollectDriverType()
	require.NoError(t, err)
	assert.Equal(t, models.DriverKMDF, got)

	output := out.String()
	assert.Equal(t, len(invalid)+1, strings.Count(output, driverTypePrompt))
	assert.Equal(t, len(invalid), strings.Count(output, "Unrecognized driver type:"))
	assert.Contains(t, output, "Unrecognized driver type: NDIS!\n")
	assert.Contains(t, output, "Unrecognized driver type: KMDFX!\n")
	assert.Contains(t, output, "Unrecognized driver type: WDF!\n")
}

func TestCollectDriverType_EmptyIsSilent(t *testing.T) {
	t.Parallel()

	p, out := newTestPrompter("\n  \n Umdf \n")
	got, err := p.CollectDriverType()
	require.NoError(t, err)
	assert.Equal(t, models.DriverUMDF, got)
	assert.Equal(t, 3, strings.Count(out.String(), driverTypePrompt))
	assert.NotContains(t, out.String(), "Unrecognized")
}

func TestCollectVCS(t *testing.T) {
	t.Parallel()

	p, out := newTestPrompter("\nfossil\n")
	got, err := p.CollectVCS()
	require.NoError(t, err)
	assert.Equal(t, "fossil", got)
	assert.Equal(t, 2, strings.Count(out.String(), vcsHint))
}

func TestParseDecision(t *testing.T) {
	t.Parallel()

	tests := []struct {
		token string
		want  models.Decision
		ok    bool
	}{
		{token: "", want: models.DecisionAccept, ok: true},
		{token: "   ", want: models.DecisionAccept, ok: true},
		{token: "1", want: models.DecisionAccept, ok: true},
		{token: "2", want: models.DecisionRetry, ok: true},
		{token: "3", want: models.DecisionAbort, ok: true},
		{token: " 2 ", want: models.DecisionRetry, ok: true},
		{token: "+1", want: models.DecisionAccept, ok: true},
		{token: "+3", want: models.DecisionAbort, ok: true},
		{token: "+", ok: false},
		{token: "++1", ok: false},
		{token: "0", ok: false},
		{token: "4", ok: false},
		{token: "abc", ok: false},
		{token: "-1", ok: false},
		{token: "99999999999", ok: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run("token "+tc.token, func(t *testing.T) {
			t.Parallel()

			got, ok, msg := ParseDecision(tc.token)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
				assert.Empty(t, msg)
			} else {
				assert.NotEmpty(t, msg)
			}
		})
	}
}

func TestConfirm_RepromptsWithoutEchoingSummary(t *testing.T) {
	t.Parallel()

	answers := models.Answers{CrateName: "mydriver", DriverType: models.DriverKMDF, VCS: "git"}
	p, out := newTestPrompter("0\n4\nabc\n2\n")

	got, err := p.Confirm(answers)
	require.NoError(t, err)
	assert.Equal(t, models.DecisionRetry, got)

	output := out.String()
	assert.Equal(t, 1, strings.Count(output, "Crate Name: mydriver\n"))
	assert.Equal(t, 1, strings.Count(output, "Driver Type: KMDF\n"))
	assert.Equal(t, 1, strings.Count(output, "Version-Control System: git\n"))
	assert.Equal(t, 2, strings.Count(output, "Unrecognized input!\n"))
	assert.Contains(t, output, "Invalid input \"abc\"")
}

func TestRun_Accept(t *testing.T) {
	t.Parallel()

	p, _ := newTestPrompter("MyDriver\nkmdf\nGit\n\n")
	answers, err := p.Run()
	require.NoError(t, err)
	assert.Equal(t, models.Answers{CrateName: "mydriver", DriverType: models.DriverKMDF, VCS: "git"}, *answers)
}

func TestRun_RetryClearsEveryField(t *testing.T) {
	t.Parallel()

	p, out := newTestPrompter("first\nwdm\ngit\n2\nsecond\numdf\nnone\n1\n")
	answers, err := p.Run()
	require.NoError(t, err)
	assert.Equal(t, models.Answers{CrateName: "second", DriverType: models.DriverUMDF, VCS: "none"}, *answers)
	assert.Equal(t, 2, strings.Count(out.String(), crateNamePrompt))
	assert.Equal(t, 2, strings.Count(out.String(), "Are you sure?"))
}

func TestRun_EmptyConfirmationAcceptsAfterRetries(t *testing.T) {
	t.Parallel()

	input := "a\nwdm\ngit\n2\nb\nwdm\ngit\n2\nc\nkmdf\ngit\n\n"
	p, _ := newTestPrompter(input)
	answers, err := p.Run()
	require.NoError(t, err)
	assert.Equal(t, "c", answers.CrateName)
}

func TestRun_Abort(t *testing.T) {
	t.Parallel()

	p, _ := newTestPrompter("mydriver\nkmdf\ngit\n3\n")
	answers, err := p.Run()
	assert.Nil(t, answers)
	assert.ErrorIs(t, err, ErrAborted)
}

func TestRun_EndOfInputIsFatal(t *testing.T) {
	t.Parallel()

	inputs := map[string]string{
		"before name":         "",
		"during driver type":  "mydriver\nndis\n",
		"during confirmation": "mydriver\nkmdf\ngit\nabc\n",
	}

	for name, input := range inputs {
		input := input
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p, _ := newTestPrompter(input)
			_, err := p.Run()
			assert.ErrorIs(t, err, ErrInputClosed)
		})
	}
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestRun_ReadErrorIsFatal(t *testing.T) {
	t.Parallel()

	boom := errors.New("device not configured")
	p := New(failingReader{err: boom}, io.Discard)
	_, err := p.Run()
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to get the crate name")
}
