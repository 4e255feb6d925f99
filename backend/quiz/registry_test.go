package quiz

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudyCycleWraps(t *testing.T) {
	require.Len(t, DefaultCycle, 11)

	assert.Equal(t, 0, DefaultCycle.Next(10))
	assert.Equal(t, 5, DefaultCycle.Next(4))
	assert.Equal(t, 10, DefaultCycle.Normalize(-1))
	assert.Equal(t, DefaultCycle[0], DefaultCycle.Subject(11))
	assert.Equal(t, "", StudyCycle{}.Subject(3))
}

func TestShuffleKeepsQuestions(t *testing.T) {
	qs := makeQuestions(20)
	out := Shuffle(qs)

	require.Len(t, out, len(qs))
	assert.ElementsMatch(t, qs, out)
	assert.Equal(t, "q-1", qs[0].ID, "input is left untouched")
}

func TestRegistryStartReplacesSession(t *testing.T) {
	r := NewRegistry(nil)

	first, err := r.Start("u1", makeQuestions(2), Options{})
	require.NoError(t, err)
	second, err := r.Start("u1", makeQuestions(3), Options{})
	require.NoError(t, err)

	got, err := r.Get("u1")
	require.NoError(t, err)
	assert.Same(t, second, got)
	assert.NotSame(t, first, got)
	assert.Equal(t, 1, r.Active())
}

func TestRegistryStartEmpty(t *testing.T) {
	r := NewRegistry(nil)
	_, err := r.Start("u1", nil, Options{})
	assert.ErrorIs(t, err, ErrEmptySession)

	_, err = r.Get("u1")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestRegistryFinishOnlyOnce(t *testing.T) {
	r := NewRegistry(nil)
	s, err := r.Start("u1", makeQuestions(1), Options{})
	require.NoError(t, err)

	_, ok := r.Finish("u1", s)
	assert.False(t, ok, "session still running")

	answer(t, s, "B")
	_, err = s.Advance()
	require.NoError(t, err)

	report, ok := r.Finish("u1", s)
	require.True(t, ok)
	assert.Equal(t, EndExhausted, report.Reason)

	_, ok = r.Finish("u1", s)
	assert.False(t, ok)

	got, err := r.Get("u1")
	require.NoError(t, err)
	assert.Same(t, s, got, "completed session stays readable")

	require.NoError(t, r.Exit("u1"))
	assert.Equal(t, 0, r.Active())
}

func TestRegistryDropsCompletedSessionAfterRetention(t *testing.T) {
	r := NewRegistry(nil, WithRetention(20*time.Millisecond))
	s, err := r.Start("u1", makeQuestions(1), Options{})
	require.NoError(t, err)

	answer(t, s, "B")
	_, err = s.Advance()
	require.NoError(t, err)
	_, ok := r.Finish("u1", s)
	require.True(t, ok)

	require.Eventually(t, func() bool { return r.Active() == 0 }, time.Second, 5*time.Millisecond)
	_, err = r.Get("u1")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestRegistryRetentionSparesNewerSession(t *testing.T) {
	r := NewRegistry(nil, WithRetention(20*time.Millisecond))
	s, err := r.Start("u1", makeQuestions(1), Options{})
	require.NoError(t, err)

	answer(t, s, "B")
	_, err = s.Advance()
	require.NoError(t, err)
	_, ok := r.Finish("u1", s)
	require.True(t, ok)

	next, err := r.Start("u1", makeQuestions(2), Options{})
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)
	got, err := r.Get("u1")
	require.NoError(t, err)
	assert.Same(t, next, got)
}

func TestRegistryExit(t *testing.T) {
	r := NewRegistry(nil)
	s, err := r.Start("u1", makeQuestions(2), Options{DurationSeconds: 60})
	require.NoError(t, err)

	require.NoError(t, r.Exit("u1"))
	assert.Equal(t, EndUserExited, s.Reason())
	assert.ErrorIs(t, r.Exit("u1"), ErrNoSession)
}

func TestRegistryCountdownExpires(t *testing.T) {
	var (
		mu      sync.Mutex
		reports []Report
	)
	r := NewRegistry(func(userID string, report Report) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, "u1", userID)
		reports = append(reports, report)
	}, WithTickInterval(5*time.Millisecond))

	s, err := r.Start("u1", makeQuestions(3), Options{DurationSeconds: 2, Mode: ModeMenu, DailyGoal: 3})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(reports) == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, EndTimerExpired, s.Reason())
	mu.Lock()
	assert.Equal(t, EndTimerExpired, reports[0].Reason)
	assert.True(t, reports[0].AdvancesCycle())
	mu.Unlock()
}

func TestRegistryNewSessionCancelsCountdown(t *testing.T) {
	expired := make(chan string, 2)
	r := NewRegistry(func(userID string, report Report) {
		expired <- userID
	}, WithTickInterval(5*time.Millisecond))

	first, err := r.Start("u1", makeQuestions(2), Options{DurationSeconds: 4})
	require.NoError(t, err)
	_, err = r.Start("u1", makeQuestions(2), Options{})
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, StateSelecting, first.State(), "cancelled countdown must not tick")
	assert.Empty(t, expired)
}
