// Package components holds the building blocks of the catalog browser.
package components

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/edubridge/internal/cli"
	"github.com/Veraticus/edubridge/internal/model"
	"github.com/Veraticus/edubridge/internal/tui/themes"
)

// CourseSelectedMsg is sent when the user opens a course.
type CourseSelectedMsg struct {
	Course model.Course
	Index  int
}

// CourseListModel shows the visible courses with both currencies.
type CourseListModel struct {
	theme   themes.Theme
	courses []model.Course
	table   table.Model
	rate    float64
	width   int
	height  int
}

// NewCourseList creates an empty list.
func NewCourseList(theme themes.Theme) CourseListModel {
	t := table.New(
		table.WithColumns(courseColumns(100)),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = theme.Selected
	t.SetStyles(s)

	return CourseListModel{theme: theme, table: t, width: 100, height: 15}
}

// courseColumns spreads width over the columns, giving the names the slack.
func courseColumns(width int) []table.Column {
	const fixed = 12 + 14 + 14 + 14
	flex := max(width-fixed-12, 30)

	return []table.Column{
		{Title: "University", Width: flex * 2 / 5},
		{Title: "Course", Width: flex * 3 / 5},
		{Title: "Level", Width: 12},
		{Title: "Location", Width: 14},
		{Title: "Total", Width: 14},
		{Title: "Converted", Width: 14},
	}
}

// SetCourses replaces the rows, keeping the cursor in range.
func (m *CourseListModel) SetCourses(courses []model.Course, rate float64) {
	m.courses = courses
	m.rate = rate

	rows := make([]table.Row, len(courses))
	for i, c := range courses {
		rows[i] = table.Row{
			c.UniversityName,
			c.CourseName,
			string(c.CourseType),
			c.Location,
			cli.FormatMYR(c.TotalFee()),
			cli.FormatBDT(c.TotalFee(), rate),
		}
	}
	m.table.SetRows(rows)

	if cursor := m.table.Cursor(); cursor >= len(courses) {
		m.table.SetCursor(max(len(courses)-1, 0))
	}
}

// Resize fits the table into width x height.
func (m *CourseListModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetColumns(courseColumns(width))
	m.table.SetHeight(max(height, 3))
}

// Selected returns the course under the cursor.
func (m CourseListModel) Selected() (model.Course, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.courses) {
		return model.Course{}, false
	}
	return m.courses[i], true
}

// Cursor returns the highlighted row index.
func (m CourseListModel) Cursor() int {
	return m.table.Cursor()
}

// Len returns the number of rows.
func (m CourseListModel) Len() int {
	return len(m.courses)
}

// Update moves the cursor and emits CourseSelectedMsg on enter.
func (m CourseListModel) Update(msg tea.Msg) (CourseListModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		if c, found := m.Selected(); found {
			i := m.table.Cursor()
			return m, func() tea.Msg { return CourseSelectedMsg{Course: c, Index: i} }
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table, or a notice when nothing matches.
func (m CourseListModel) View() string {
	if len(m.courses) == 0 {
		return m.theme.Muted.
			Width(m.width).
			Align(lipgloss.Center).
			Padding(2, 0).
			Render("No courses match the current filters.")
	}
	return m.table.View()
}
