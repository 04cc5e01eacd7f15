package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/edubridge/internal/assistant"
)

// answerMsg delivers a finished assistant request.
type answerMsg struct {
	answer assistant.Answer
	state  assistant.State
}

// waitForAnswer blocks until the session's current request finishes.
func waitForAnswer(s *assistant.Session) tea.Cmd {
	return func() tea.Msg {
		if done := s.Done(); done != nil {
			<-done
		}
		answer, state := s.Result()
		return answerMsg{answer: answer, state: state}
	}
}
