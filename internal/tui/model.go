// Package tui is the interactive catalog browser: live filters over the
// course list, a detail view and the assistant panel.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/edubridge/internal/assistant"
	"github.com/Veraticus/edubridge/internal/catalog"
	"github.com/Veraticus/edubridge/internal/model"
	"github.com/Veraticus/edubridge/internal/tui/components"
	"github.com/Veraticus/edubridge/internal/tui/themes"
)

// Mode is what the keyboard currently drives.
type Mode int

// Modes.
const (
	ModeBrowse Mode = iota
	ModeSearch
	ModeAsk
	ModeDetail
	ModeConfirmDelete
	ModeHelp
)

// Model holds the browser state.
type Model struct {
	ctx         context.Context
	store       CatalogStore
	session     *assistant.Session
	answer      *assistant.Answer
	theme       themes.Theme
	status      string
	question    string
	criteria    model.FilterCriteria
	detail      model.Course
	visible     []model.Course
	list        components.CourseListModel
	stats       components.StatsPanelModel
	search      textinput.Model
	ask         textinput.Model
	spinner     spinner.Model
	help        help.Model
	keymap      KeyMap
	config      Config
	mode        Mode
	answerState assistant.State
	width       int
	height      int
	pending     bool
	statusErr   bool
	quitting    bool
}

// New creates a browser over store. A nil session disables the assistant.
func New(ctx context.Context, store CatalogStore, session *assistant.Session, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "university or course name"
	search.CharLimit = 80

	ask := textinput.New()
	ask.Prompt = "Ask: "
	ask.Placeholder = "e.g. cheapest master's degree in Selangor?"
	ask.CharLimit = 500

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = cfg.Theme.StatusInfo

	m := Model{
		ctx:      ctx,
		store:    store,
		session:  session,
		theme:    cfg.Theme,
		criteria: model.DefaultFilterCriteria(),
		list:     components.NewCourseList(cfg.Theme),
		stats:    components.NewStatsPanelModel(cfg.Theme),
		search:   search,
		ask:      ask,
		spinner:  spin,
		help:     help.New(),
		keymap:   DefaultKeyMap(),
		config:   cfg,
		width:    cfg.Width,
		height:   cfg.Height,
	}
	m.resize()
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Criteria returns the active filter criteria.
func (m Model) Criteria() model.FilterCriteria {
	return m.criteria
}

// Visible returns the courses passing the current filters.
func (m Model) Visible() []model.Course {
	return m.visible
}

// Mode returns the current input mode.
func (m Model) Mode() Mode {
	return m.mode
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case answerMsg:
		m.pending = false
		m.answer = &msg.answer
		m.answerState = msg.state
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case components.CourseSelectedMsg:
		m.detail = msg.Course
		m.mode = ModeDetail
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeSearch:
		return m.updateSearch(msg)
	case ModeAsk:
		return m.updateAsk(msg)
	case ModeDetail:
		if key.Matches(msg, m.keymap.Back, m.keymap.Select, m.keymap.Quit) {
			m.mode = ModeBrowse
		}
		return m, nil
	case ModeConfirmDelete:
		return m.updateConfirm(msg)
	case ModeHelp:
		if key.Matches(msg, m.keymap.Back, m.keymap.Help, m.keymap.Quit) {
			m.mode = ModeBrowse
		}
		return m, nil
	default:
		return m.updateBrowse(msg)
	}
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	opts := m.store.Options()
	m.status = ""

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, m.keymap.Search):
		m.mode = ModeSearch
		return m, m.search.Focus()

	case key.Matches(msg, m.keymap.Ask):
		if m.session == nil {
			m.setError("The assistant is not configured.")
			return m, nil
		}
		m.mode = ModeAsk
		return m, m.ask.Focus()

	case key.Matches(msg, m.keymap.Delete):
		if _, ok := m.list.Selected(); ok {
			m.mode = ModeConfirmDelete
		}
		return m, nil

	case key.Matches(msg, m.keymap.NextLevel):
		m.criteria.CourseType = cycleOption(levelOptions(opts), m.criteria.CourseType, 1)
	case key.Matches(msg, m.keymap.PrevLevel):
		m.criteria.CourseType = cycleOption(levelOptions(opts), m.criteria.CourseType, -1)
	case key.Matches(msg, m.keymap.NextLocation):
		m.criteria.Location = cycleOption(opts.Locations, m.criteria.Location, 1)
	case key.Matches(msg, m.keymap.PrevLocation):
		m.criteria.Location = cycleOption(opts.Locations, m.criteria.Location, -1)
	case key.Matches(msg, m.keymap.NextUniversity):
		m.criteria.University = cycleOption(opts.Universities, m.criteria.University, 1)
	case key.Matches(msg, m.keymap.PrevUniversity):
		m.criteria.University = cycleOption(opts.Universities, m.criteria.University, -1)
	case key.Matches(msg, m.keymap.NextCourse):
		m.criteria.CourseName = cycleOption(opts.CourseNames, m.criteria.CourseName, 1)
	case key.Matches(msg, m.keymap.PrevCourse):
		m.criteria.CourseName = cycleOption(opts.CourseNames, m.criteria.CourseName, -1)
	case key.Matches(msg, m.keymap.RaisePrice):
		m.criteria.MaxPrice = stepPrice(m.criteria.MaxPrice, 1)
	case key.Matches(msg, m.keymap.LowerPrice):
		m.criteria.MaxPrice = stepPrice(m.criteria.MaxPrice, -1)
	case key.Matches(msg, m.keymap.Reset):
		m.criteria = model.DefaultFilterCriteria()
		m.search.SetValue("")

	default:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	m.refresh()
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.Back, m.keymap.Select) {
		m.search.Blur()
		m.mode = ModeBrowse
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.criteria.Search = m.search.Value()
	m.refresh()
	return m, cmd
}

func (m Model) updateAsk(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Back):
		m.ask.Blur()
		m.mode = ModeBrowse
		return m, nil

	case key.Matches(msg, m.keymap.Select):
		question := m.ask.Value()
		err := m.session.Submit(m.ctx, question)
		switch {
		case errors.Is(err, assistant.ErrEmptyQuery):
			m.setError("Type a question first.")
			return m, nil
		case errors.Is(err, assistant.ErrRequestPending):
			m.setError("Still waiting for the previous answer.")
			return m, nil
		case err != nil:
			m.setError(err.Error())
			return m, nil
		}

		m.status = ""
		m.question = question
		m.pending = true
		m.answer = nil
		m.ask.Reset()
		m.ask.Blur()
		m.mode = ModeBrowse
		m.resize()
		return m, tea.Batch(m.spinner.Tick, waitForAnswer(m.session))
	}

	var cmd tea.Cmd
	m.ask, cmd = m.ask.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Yes):
		m.mode = ModeBrowse
		course, ok := m.list.Selected()
		if !ok {
			return m, nil
		}
		if _, err := m.store.Remove(m.ctx, course.ID); err != nil {
			m.setError(fmt.Sprintf("Delete failed: %v", err))
			return m, nil
		}
		m.status = fmt.Sprintf("Deleted %s.", course.CourseName)
		m.statusErr = false
		m.refresh()
	case key.Matches(msg, m.keymap.No):
		m.mode = ModeBrowse
	}
	return m, nil
}

func (m *Model) setError(text string) {
	m.status = text
	m.statusErr = true
}

// refresh recomputes the visible subset from the live catalog.
func (m *Model) refresh() {
	all := m.store.Courses()
	rate := m.store.Rate()

	m.visible = catalog.ApplyFilters(all, m.criteria)
	m.list.SetCourses(m.visible, rate)
	m.stats.SetData(m.visible, len(all), rate)
}

func (m *Model) resize() {
	chrome := 10
	if m.config.ShowStats {
		chrome += 2
	}
	if m.pending || m.answer != nil {
		chrome += 6
	}

	m.list.Resize(m.width, m.height-chrome)
	m.stats.Resize(m.width)
	m.search.Width = max(m.width-12, 20)
	m.ask.Width = max(m.width-10, 20)
	m.help.Width = m.width
}
