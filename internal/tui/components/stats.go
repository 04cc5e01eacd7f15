package components

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/edubridge/internal/cli"
	"github.com/Veraticus/edubridge/internal/model"
	"github.com/Veraticus/edubridge/internal/tui/themes"
)

// StatsPanelModel summarizes how much of the catalog the filters let through.
type StatsPanelModel struct {
	theme       themes.Theme
	progressBar progress.Model
	visible     int
	total       int
	minFee      float64
	maxFee      float64
	avgFee      float64
	rate        float64
	width       int
}

// NewStatsPanelModel creates an empty panel.
func NewStatsPanelModel(theme themes.Theme) StatsPanelModel {
	prog := progress.New(progress.WithSolidFill(string(theme.Primary)))
	prog.ShowPercentage = false
	prog.Width = 30

	return StatsPanelModel{theme: theme, progressBar: prog}
}

// SetData recomputes the summary for the visible subset of total courses.
func (m *StatsPanelModel) SetData(visible []model.Course, total int, rate float64) {
	m.visible = len(visible)
	m.total = total
	m.rate = rate
	m.minFee, m.maxFee, m.avgFee = feeRange(visible)
}

// Resize sets the available width.
func (m *StatsPanelModel) Resize(width int) {
	m.width = width
	m.progressBar.Width = max(min(width-30, 40), 10)
}

// Visible returns the number of visible courses.
func (m StatsPanelModel) Visible() int {
	return m.visible
}

// View renders the count line, the coverage bar and the fee range.
func (m StatsPanelModel) View() string {
	count := m.theme.Bold.Render(fmt.Sprintf("%d of %d courses", m.visible, m.total))

	ratio := 0.0
	if m.total > 0 {
		ratio = float64(m.visible) / float64(m.total)
	}
	line := lipgloss.JoinHorizontal(lipgloss.Center, count, "  ", m.progressBar.ViewAs(ratio))

	if m.visible == 0 {
		return line
	}

	fees := m.theme.Subtitle.Render(fmt.Sprintf("Total fee %s to %s, avg %s",
		cli.FormatMYR(m.minFee), cli.FormatMYR(m.maxFee), cli.FormatMYR(m.avgFee)))
	converted := m.theme.Converted.Render(cli.FormatBDT(m.avgFee, m.rate))

	return lipgloss.JoinVertical(lipgloss.Left, line, fees+"  "+converted)
}

func feeRange(courses []model.Course) (lo, hi, avg float64) {
	if len(courses) == 0 {
		return 0, 0, 0
	}

	lo, hi = math.Inf(1), math.Inf(-1)
	var sum float64
	for _, c := range courses {
		total := c.TotalFee()
		lo = min(lo, total)
		hi = max(hi, total)
		sum += total
	}
	return lo, hi, sum / float64(len(courses))
}
