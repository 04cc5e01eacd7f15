package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Veraticus/edubridge/internal/model"
)

// Session errors.
var (
	ErrEmptyQuery     = errors.New("query is empty")
	ErrRequestPending = errors.New("an assistant request is already pending")
	ErrNoClient       = errors.New("no assistant client configured")
)

// State is the lifecycle of the most recent request.
type State int

// Session states.
const (
	StateIdle State = iota
	StatePending
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot supplies the catalog and rate at submit time.
type Snapshot interface {
	Courses() []model.Course
	Rate() float64
}

// Session runs at most one assistant request at a time in the background.
// The catalog is copied when the request is submitted, so later edits do not
// affect a request in flight.
type Session struct {
	bridge *Bridge
	source Snapshot
	done   chan struct{}
	answer Answer
	state  State
	mu     sync.Mutex
}

// NewSession creates an idle session.
func NewSession(bridge *Bridge, source Snapshot) *Session {
	return &Session{bridge: bridge, source: source}
}

// Submit starts a request for query. It fails with ErrEmptyQuery for a blank
// query and ErrRequestPending while another request is outstanding.
func (s *Session) Submit(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return ErrEmptyQuery
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StatePending {
		return ErrRequestPending
	}

	courses := s.source.Courses()
	rate := s.source.Rate()
	done := make(chan struct{})

	s.state = StatePending
	s.answer = Answer{}
	s.done = done

	go func() {
		defer close(done)
		answer := s.bridge.Ask(context.WithoutCancel(ctx), query, courses, rate)

		s.mu.Lock()
		defer s.mu.Unlock()
		s.answer = answer
		if answer.Fallback {
			s.state = StateFailed
		} else {
			s.state = StateSucceeded
		}
	}()

	return nil
}

// State reports the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the latest answer and state. The answer is zero while a
// request is pending.
func (s *Session) Result() (Answer, State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answer, s.state
}

// Wait blocks until the current request finishes or ctx is done. It returns
// immediately when nothing has been submitted.
func (s *Session) Wait(ctx context.Context) (Answer, error) {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return Answer{}, ctx.Err()
		}
	}

	answer, _ := s.Result()
	return answer, nil
}

// Done returns a channel closed when the current request finishes, or nil
// when nothing has been submitted.
func (s *Session) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}
