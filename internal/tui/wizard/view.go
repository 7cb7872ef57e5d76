package wizard

import (
	"fmt"
	"strings"

	"github.com/jakoblorz/wdk-wizard/internal/models"
	"github.com/jakoblorz/wdk-wizard/internal/tui"
)

// RenderSummary renders the answers shown on the confirmation form.
func RenderSummary(answers models.Answers) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s\n", tui.SubtleStyle.Render("Crate Name:"), answers.CrateName))
	b.WriteString(fmt.Sprintf("%s %s\n", tui.SubtleStyle.Render("Driver Type:"), answers.DriverType))
	b.WriteString(fmt.Sprintf("%s %s", tui.SubtleStyle.Render("Version-Control System:"), answers.VCS))

	return b.String()
}
