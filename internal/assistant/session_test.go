package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Veraticus/edubridge/internal/model"
	"github.com/Veraticus/edubridge/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func waitAnswer(t *testing.T, s *Session) Answer {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	answer, err := s.Wait(ctx)
	require.NoError(t, err)
	return answer
}

func TestSession_Succeeds(t *testing.T) {
	client := &fakeClient{text: "Try Monash."}
	session := NewSession(NewBridge(client, quietLogger()), testutil.NewStore(t))

	assert.Equal(t, StateIdle, session.State())
	require.NoError(t, session.Submit(context.Background(), "business degree in Johor?"))

	answer := waitAnswer(t, session)
	assert.Equal(t, "Try Monash.", answer.Text)
	assert.Equal(t, StateSucceeded, session.State())
}

func TestSession_FailureIsRecoverable(t *testing.T) {
	client := &fakeClient{err: errors.New("timeout")}
	session := NewSession(NewBridge(client, quietLogger()), testutil.NewStore(t))

	require.NoError(t, session.Submit(context.Background(), "q1"))
	answer := waitAnswer(t, session)
	assert.Equal(t, UnavailableMessage, answer.Text)
	assert.Equal(t, StateFailed, session.State())

	client.mu.Lock()
	client.err = nil
	client.text = "ok now"
	client.mu.Unlock()

	require.NoError(t, session.Submit(context.Background(), "q2"))
	answer = waitAnswer(t, session)
	assert.Equal(t, "ok now", answer.Text)
	assert.Equal(t, StateSucceeded, session.State())
}

func TestSession_RejectsWhilePending(t *testing.T) {
	client := &fakeClient{text: "done", release: make(chan struct{})}
	session := NewSession(NewBridge(client, quietLogger()), testutil.NewStore(t))

	require.NoError(t, session.Submit(context.Background(), "first"))
	assert.Equal(t, StatePending, session.State())

	err := session.Submit(context.Background(), "second")
	require.ErrorIs(t, err, ErrRequestPending)

	answer, state := session.Result()
	assert.Empty(t, answer.Text)
	assert.Equal(t, StatePending, state)

	close(client.release)
	waitAnswer(t, session)

	calls := client.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "first", calls[0].Prompt)
}

func TestSession_EmptyQuery(t *testing.T) {
	client := &fakeClient{text: "x"}
	session := NewSession(NewBridge(client, quietLogger()), testutil.NewStore(t))

	require.ErrorIs(t, session.Submit(context.Background(), "   "), ErrEmptyQuery)
	assert.Equal(t, StateIdle, session.State())
	assert.Nil(t, session.Done())
	assert.Empty(t, client.calls())
}

func TestSession_SnapshotTakenAtSubmit(t *testing.T) {
	store := testutil.NewStore(t)
	client := &fakeClient{text: "ok", release: make(chan struct{})}
	session := NewSession(NewBridge(client, quietLogger()), store)
	ctx := context.Background()

	require.NoError(t, session.Submit(ctx, "what is available?"))

	// Edits made while the request is in flight must not reach it.
	require.NoError(t, store.Add(ctx, model.Course{
		ID:             "late",
		UniversityName: "Late University",
		CourseName:     "Late Course",
		CourseType:     model.LevelMaster,
		Location:       "Sabah",
	}))
	require.NoError(t, store.SetRate(ctx, 40))

	close(client.release)
	waitAnswer(t, session)

	calls := client.calls()
	require.Len(t, calls, 1)
	assert.NotContains(t, calls[0].System, "Late Course")
	assert.Contains(t, calls[0].System, "1 MYR = 26.5 BDT")
}

func TestSession_CancelledSubmitContextStillCompletes(t *testing.T) {
	client := &fakeClient{text: "finished"}
	session := NewSession(NewBridge(client, quietLogger()), testutil.NewStore(t))

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, session.Submit(ctx, "q"))
	cancel()

	answer := waitAnswer(t, session)
	assert.Equal(t, "finished", answer.Text)
}

func TestSession_WaitWithoutSubmit(t *testing.T) {
	session := NewSession(NewBridge(nil, quietLogger()), testutil.NewStore(t))
	answer, err := session.Wait(context.Background())
	require.NoError(t, err)
	assert.Empty(t, answer.Text)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "pending", StatePending.String())
	assert.Equal(t, "succeeded", StateSucceeded.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "unknown", State(42).String())
}
