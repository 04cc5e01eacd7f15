// Package cli provides styled terminal output and line-based prompts.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette shared by the CLI output.
var (
	primary = lipgloss.Color("#3D5AFE")
	accent  = lipgloss.Color("#00BFA5")
	subtle  = lipgloss.Color("#666666")
	border  = lipgloss.Color("#333333")
)

var (
	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(primary).MarginBottom(1)
	// SubtleStyle is for hints and empty states.
	SubtleStyle = lipgloss.NewStyle().Foreground(subtle)
	// BoldStyle is for field labels.
	BoldStyle = lipgloss.NewStyle().Bold(true)
	// AccentStyle marks amounts converted to the second currency.
	AccentStyle = lipgloss.NewStyle().Foreground(accent)

	// TableHeaderStyle and TableCellStyle lay out course tables.
	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(primary).PaddingRight(2)
	TableCellStyle   = lipgloss.NewStyle().PaddingRight(2)

	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(1, 2)
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(primary)
)

// Icons used in headings.
const (
	GradIcon  = "🎓"
	RobotIcon = "🤖"
	MoneyIcon = "💱"
)

type status struct {
	icon  string
	style lipgloss.Style
}

var (
	statusSuccess = status{"✓", lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))}
	statusWarning = status{"⚠️", lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))}
	statusError   = status{"✗", lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))}
)

func (s status) render(message string) string {
	return s.style.Render(s.icon + " " + message)
}

// FormatSuccess renders a one-line success message.
func FormatSuccess(message string) string { return statusSuccess.render(message) }

// FormatWarning renders a one-line warning.
func FormatWarning(message string) string { return statusWarning.render(message) }

// FormatError renders a one-line error.
func FormatError(message string) string { return statusError.render(message) }

// FormatPrompt renders a form prompt label.
func FormatPrompt(prompt string) string {
	return promptStyle.Render(prompt + " → ")
}

// RenderBox draws content in a rounded box under a title.
func RenderBox(title, content string) string {
	heading := TitleStyle.UnsetMargins().Render(title)
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, heading, content))
}
