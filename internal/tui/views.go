package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/edubridge/internal/assistant"
	"github.com/Veraticus/edubridge/internal/cli"
	"github.com/Veraticus/edubridge/internal/model"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case ModeDetail:
		return lipgloss.JoinVertical(lipgloss.Left,
			m.renderHeader(),
			"",
			cli.RenderCourseDetail(m.detail, m.store.Rate()),
			m.theme.Muted.Render("Esc to go back"),
		)
	case ModeHelp:
		m.help.ShowAll = true
		return lipgloss.JoinVertical(lipgloss.Left,
			m.renderHeader(),
			"",
			m.help.View(m.keymap),
		)
	}

	sections := []string{
		m.renderHeader(),
		m.renderFilters(),
		m.renderInput(),
	}
	if m.config.ShowStats {
		sections = append(sections, m.stats.View())
	}
	sections = append(sections, m.list.View())
	if panel := m.renderAssistant(); panel != "" {
		sections = append(sections, panel)
	}
	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render(cli.GradIcon + " EduBridge")
	rate := m.theme.Subtitle.Render("1 MYR = " + strconv.FormatFloat(m.store.Rate(), 'f', -1, 64) + " BDT")
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", rate)
}

func (m Model) renderFilters() string {
	chips := []string{
		m.chip("Level", m.criteria.CourseType),
		m.chip("Location", m.criteria.Location),
		m.chip("University", m.criteria.University),
		m.chip("Course", m.criteria.CourseName),
	}

	price := "Max " + priceLabel(m.criteria.MaxPrice)
	if m.criteria.MaxPrice <= PriceCeiling {
		chips = append(chips, m.theme.ActiveChip.Render(price))
	} else {
		chips = append(chips, m.theme.Chip.Render(price))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

func (m Model) chip(label, value string) string {
	if model.IsAll(value) {
		return m.theme.Chip.Render(label + ": All")
	}
	return m.theme.ActiveChip.Render(label + ": " + value)
}

func (m Model) renderInput() string {
	switch {
	case m.mode == ModeAsk:
		return m.ask.View()
	case m.mode == ModeSearch || m.search.Value() != "":
		return m.search.View()
	default:
		return m.theme.Muted.Render("/ to search, a to ask the assistant")
	}
}

func (m Model) renderAssistant() string {
	width := max(m.width-4, 20)

	switch {
	case m.pending:
		return m.theme.RoundedBox.Width(width).Render(
			m.spinner.View() + " Thinking about: " + m.question)
	case m.answer != nil:
		title := m.theme.StatusSuccess.Render(cli.RobotIcon + " Assistant")
		if m.answerState == assistant.StateFailed {
			title = m.theme.StatusWarning.Render(cli.RobotIcon + " Assistant")
		}
		body := m.theme.Normal.Width(width - 2).Render(strings.TrimSpace(m.answer.Text))
		return m.theme.RoundedBox.Width(width).Render(title + "\n" + body)
	}
	return ""
}

func (m Model) renderFooter() string {
	if m.mode == ModeConfirmDelete {
		if c, ok := m.list.Selected(); ok {
			return m.theme.StatusWarning.Render(
				fmt.Sprintf("Delete %s at %s? (y/n)", c.CourseName, c.UniversityName))
		}
	}

	if m.status != "" {
		if m.statusErr {
			return m.theme.StatusError.Render(m.status)
		}
		return m.theme.StatusSuccess.Render(m.status)
	}

	return m.help.View(m.keymap)
}
