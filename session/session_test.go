package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/focusguard/core/psutil"
	"github.com/focusguard/core/session/store"
	timesrc "github.com/focusguard/core/time"

	"github.com/stretchr/testify/require"
)

type testInspector struct {
	running    map[string]bool
	terminated []string
	lock       sync.Mutex
}

func newTestInspector(apps ...string) *testInspector {
	i := &testInspector{
		running: map[string]bool{},
	}

	for _, app := range apps {
		i.running[app] = true
	}

	return i
}

func (i *testInspector) Set(app string, running bool) {
	i.lock.Lock()
	defer i.lock.Unlock()

	i.running[app] = running
}

func (i *testInspector) Find(name string) []psutil.Process {
	if !i.IsRunning(name) {
		return []psutil.Process{}
	}

	return []psutil.Process{{PID: 42, Name: name}}
}

func (i *testInspector) IsRunning(name string) bool {
	i.lock.Lock()
	defer i.lock.Unlock()

	return i.running[name]
}

func (i *testInspector) Terminate(name string) psutil.TerminationResult {
	i.lock.Lock()
	defer i.lock.Unlock()

	i.terminated = append(i.terminated, name)

	if !i.running[name] {
		return psutil.TerminationResult{}
	}

	i.running[name] = false

	return psutil.TerminationResult{Matched: 1, Killed: 1}
}

func (i *testInspector) Terminated() []string {
	i.lock.Lock()
	defer i.lock.Unlock()

	return append([]string{}, i.terminated...)
}

type testEnv struct {
	engine    Engine
	clock     *timesrc.ManualSource
	inspector *testInspector
	store     store.MemoryStore
}

func newTestEnv(t *testing.T) *testEnv {
	env := &testEnv{
		clock:     timesrc.NewManualSource(time.Date(2024, time.March, 1, 10, 0, 0, 0, time.Local)),
		inspector: newTestInspector("chrome.exe"),
		store:     store.NewMemoryStore(store.MemoryConfig{}),
	}

	e, err := New(Config{
		Store:     env.store,
		Inspector: env.inspector,
		Clock:     env.clock,
	})
	require.NoError(t, err)

	env.engine = e

	return env
}

// advance moves the clock forward in steps of one second.
func (env *testEnv) advance(seconds int) {
	for i := 0; i < seconds; i++ {
		env.clock.Advance(time.Second)
	}
}

func (env *testEnv) entries(t *testing.T) []store.Entry {
	entries, err := env.store.ReadRecent(0)
	require.NoError(t, err)

	return entries
}

func (env *testEnv) actions(t *testing.T) []store.Action {
	actions := []store.Action{}

	for _, e := range env.entries(t) {
		actions = append(actions, e.Action)
	}

	return actions
}

func waitDone(t *testing.T, h Handle) Result {
	select {
	case <-h.Done():
	case <-time.After(5 * time.Second):
		require.FailNow(t, "session didn't end")
	}

	r, ok := h.Result()
	require.True(t, ok)

	return r
}

func TestNew(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)

	_, err = New(Config{Store: store.NewMemoryStore(store.MemoryConfig{})})
	require.Error(t, err)

	e, err := New(Config{
		Store:     store.NewMemoryStore(store.MemoryConfig{}),
		Inspector: newTestInspector(),
	})
	require.NoError(t, err)
	require.False(t, e.Stats().Active)
}

func TestStartAppendsStarted(t *testing.T) {
	env := newTestEnv(t)

	h, err := env.engine.Start("chrome.exe", "research", 10*time.Second)
	require.NoError(t, err)

	entries := env.entries(t)
	require.Equal(t, []store.Entry{
		{App: "chrome.exe", Timestamp: env.clock.Now(), Action: store.ActionStarted, Purpose: "research"},
	}, entries)

	info := h.Info()
	require.Equal(t, h.ID(), info.ID)
	require.Equal(t, "chrome.exe", info.App)
	require.Equal(t, "research", info.Purpose)
	require.Equal(t, "running", info.State)
	require.Equal(t, 10*time.Second, info.TimeLimit)
	require.Equal(t, 10*time.Second, info.Remaining)
	require.True(t, info.EndedAt.IsZero())

	active, ok := env.engine.Active()
	require.True(t, ok)
	require.Equal(t, h.ID(), active.ID())

	_, done := h.Result()
	require.False(t, done)

	h.Cancel()
}

func TestStartValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		app     string
		purpose string
		limit   time.Duration
	}{
		{"", "research", 10 * time.Second},
		{"   ", "research", 10 * time.Second},
		{"chrome.exe", "", 10 * time.Second},
		{"chrome.exe", "research", -time.Second},
		{"chrome.exe", "research", 500 * time.Millisecond},
		{"chrome.exe", "research", 1500 * time.Millisecond},
	}

	for _, test := range tests {
		_, err := env.engine.Start(test.app, test.purpose, test.limit)
		require.ErrorIs(t, err, ErrValidation, "%+v", test)
	}

	require.Equal(t, 0, len(env.entries(t)))

	_, ok := env.engine.Active()
	require.False(t, ok)
}

func TestStartLimitShorterThanTick(t *testing.T) {
	inspector := newTestInspector("chrome.exe")
	logstore := store.NewMemoryStore(store.MemoryConfig{})

	e, err := New(Config{
		Store:        logstore,
		Inspector:    inspector,
		Clock:        timesrc.NewManualSource(time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)),
		TickInterval: 5 * time.Second,
	})
	require.NoError(t, err)

	_, err = e.Start("chrome.exe", "research", time.Second)
	require.ErrorIs(t, err, ErrValidation)

	entries, err := logstore.ReadRecent(0)
	require.NoError(t, err)
	require.Empty(t, entries)

	h, err := e.Start("chrome.exe", "research", 5*time.Second)
	require.NoError(t, err)

	h.Cancel()
}

func TestStartDefaultLimit(t *testing.T) {
	env := newTestEnv(t)

	h, err := env.engine.Start("chrome.exe", "research", 0)
	require.NoError(t, err)

	require.Equal(t, DefaultTimeLimit, h.Info().TimeLimit)

	h.Cancel()
}

func TestStartAlreadyActive(t *testing.T) {
	env := newTestEnv(t)

	h, err := env.engine.Start("chrome.exe", "research", 10*time.Second)
	require.NoError(t, err)

	_, err = env.engine.Start("notepad.exe", "notes", 10*time.Second)
	require.ErrorIs(t, err, ErrSessionAlreadyActive)

	require.Equal(t, 1, len(env.entries(t)))

	h.Cancel()

	h, err = env.engine.Start("notepad.exe", "notes", 10*time.Second)
	require.NoError(t, err)

	h.Cancel()
}

func TestStartLogFailure(t *testing.T) {
	env := newTestEnv(t)

	env.store.SetError(fmt.Errorf("disk full"))

	_, err := env.engine.Start("chrome.exe", "research", 10*time.Second)
	require.ErrorIs(t, err, ErrIO)

	_, ok := env.engine.Active()
	require.False(t, ok)
	require.Equal(t, uint64(1), env.engine.Stats().LogErrors)
	require.Equal(t, uint64(0), env.engine.Stats().Started)

	env.store.SetError(nil)

	h, err := env.engine.Start("chrome.exe", "research", 10*time.Second)
	require.NoError(t, err)

	h.Cancel()
}

func TestVanishedEarly(t *testing.T) {
	env := newTestEnv(t)

	h, err := env.engine.Start("chrome.exe", "research", 900*time.Second)
	require.NoError(t, err)

	env.advance(3)
	env.inspector.Set("chrome.exe", false)
	env.advance(2)

	r := waitDone(t, h)

	require.Equal(t, OutcomeVanishedEarly, r.Outcome)
	require.Equal(t, "app closed early", r.Message)
	require.NoError(t, r.Err)
	require.Greater(t, r.Remaining, time.Duration(0))
	require.Equal(t, psutil.TerminationResult{}, r.Termination)
	require.Equal(t, 0, len(env.inspector.Terminated()))

	require.Equal(t, []store.Action{store.ActionStarted, store.ActionClosedEarly}, env.actions(t))
	require.Equal(t, "", env.entries(t)[1].Purpose)

	require.Equal(t, "vanished_early", h.Info().State)

	_, ok := env.engine.Active()
	require.False(t, ok)

	stats := env.engine.Stats()
	require.Equal(t, uint64(1), stats.Started)
	require.Equal(t, uint64(1), stats.VanishedEarly)
	require.Equal(t, uint64(0), stats.TimedOut)
}

func TestTimedOut(t *testing.T) {
	env := newTestEnv(t)

	h, err := env.engine.Start("chrome.exe", "research", 10*time.Second)
	require.NoError(t, err)

	env.advance(10)

	r := waitDone(t, h)

	require.Equal(t, OutcomeTimedOut, r.Outcome)
	require.Equal(t, "app closed, time limit reached", r.Message)
	require.Equal(t, time.Duration(0), r.Remaining)
	require.Equal(t, psutil.TerminationResult{Matched: 1, Killed: 1}, r.Termination)
	require.Equal(t, []string{"chrome.exe"}, env.inspector.Terminated())
	require.Equal(t, env.clock.Now(), r.EndedAt)

	require.Equal(t, []store.Action{store.ActionStarted, store.ActionClosed}, env.actions(t))

	info := h.Info()
	require.Equal(t, "timed_out", info.State)
	require.Equal(t, time.Duration(0), info.Remaining)
	require.False(t, info.EndedAt.IsZero())

	require.Equal(t, uint64(1), env.engine.Stats().TimedOut)
}

func TestTimedOutShortLimit(t *testing.T) {
	env := newTestEnv(t)

	h, err := env.engine.Start("chrome.exe", "research", 3*time.Second)
	require.NoError(t, err)

	env.advance(3)

	r := waitDone(t, h)

	require.Equal(t, OutcomeTimedOut, r.Outcome)
	require.Equal(t, []store.Action{store.ActionStarted, store.ActionClosed}, env.actions(t))
}

func TestVanishedAtDeadline(t *testing.T) {
	env := newTestEnv(t)

	h, err := env.engine.Start("chrome.exe", "research", 10*time.Second)
	require.NoError(t, err)

	env.advance(9)
	env.inspector.Set("chrome.exe", false)
	env.advance(1)

	r := waitDone(t, h)

	require.Equal(t, OutcomeVanishedEarly, r.Outcome)
	require.Equal(t, 0, len(env.inspector.Terminated()))
	require.Equal(t, []store.Action{store.ActionStarted, store.ActionClosedEarly}, env.actions(t))
}

func TestCancel(t *testing.T) {
	env := newTestEnv(t)

	h, err := env.engine.Start("chrome.exe", "research", 10*time.Second)
	require.NoError(t, err)

	r := h.Cancel()

	require.Equal(t, OutcomeCancelled, r.Outcome)
	require.Equal(t, "session cancelled", r.Message)
	require.Equal(t, 10*time.Second, r.Remaining)
	require.Equal(t, psutil.TerminationResult{Matched: 1, Killed: 1}, r.Termination)
	require.Equal(t, []store.Action{store.ActionStarted, store.ActionClosed}, env.actions(t))

	require.Equal(t, r, h.Cancel())

	r2, err := env.engine.Cancel(h.ID())
	require.NoError(t, err)
	require.Equal(t, r, r2)

	require.Equal(t, []store.Action{store.ActionStarted, store.ActionClosed}, env.actions(t))
	require.Equal(t, uint64(1), env.engine.Stats().Cancelled)
}

func TestCancelUnknown(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.engine.Cancel("unknown")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCancelAfterTimeout(t *testing.T) {
	env := newTestEnv(t)

	h, err := env.engine.Start("chrome.exe", "research", 5*time.Second)
	require.NoError(t, err)

	env.advance(5)

	r := waitDone(t, h)
	require.Equal(t, OutcomeTimedOut, r.Outcome)

	r2, err := env.engine.Cancel(h.ID())
	require.NoError(t, err)
	require.Equal(t, r, r2)

	require.Equal(t, []store.Action{store.ActionStarted, store.ActionClosed}, env.actions(t))
	require.Equal(t, []string{"chrome.exe"}, env.inspector.Terminated())
}

func TestCancelRacingTimeout(t *testing.T) {
	for i := 0; i < 20; i++ {
		env := newTestEnv(t)

		h, err := env.engine.Start("chrome.exe", "research", 5*time.Second)
		require.NoError(t, err)

		wg := sync.WaitGroup{}
		wg.Add(1)

		go func() {
			defer wg.Done()
			env.advance(5)
		}()

		r := h.Cancel()

		wg.Wait()

		require.Contains(t, []Outcome{OutcomeCancelled, OutcomeTimedOut}, r.Outcome)
		require.Equal(t, []store.Action{store.ActionStarted, store.ActionClosed}, env.actions(t))
		require.Equal(t, 1, len(env.inspector.Terminated()))
	}
}

func TestTerminalLogFailure(t *testing.T) {
	env := newTestEnv(t)

	h, err := env.engine.Start("chrome.exe", "research", 5*time.Second)
	require.NoError(t, err)

	events, cancel := h.Events()
	defer cancel()

	env.store.SetError(fmt.Errorf("disk full"))

	env.advance(5)

	r := waitDone(t, h)

	require.Equal(t, OutcomeTimedOut, r.Outcome)
	require.ErrorIs(t, r.Err, ErrIO)

	var final *Event
	for e := range events {
		final = e.(*Event)
	}

	require.NotNil(t, final)
	require.True(t, final.IsFinal())
	require.ErrorIs(t, final.Err, ErrIO)

	_, ok := env.engine.Active()
	require.False(t, ok)
	require.Equal(t, uint64(1), env.engine.Stats().LogErrors)
}

func TestEvents(t *testing.T) {
	env := newTestEnv(t)

	h, err := env.engine.Start("chrome.exe", "research", 3*time.Second)
	require.NoError(t, err)

	events, cancel := h.Events()
	defer cancel()

	next := func() *Event {
		select {
		case e, ok := <-events:
			require.True(t, ok)
			return e.(*Event)
		case <-time.After(5 * time.Second):
			require.FailNow(t, "no event received")
		}

		return nil
	}

	env.advance(1)

	e := next()
	require.Equal(t, EventTick, e.Type)
	require.Equal(t, h.ID(), e.SessionID)
	require.Equal(t, 2*time.Second, e.Remaining)
	require.Equal(t, "00:02", e.Display())

	env.advance(1)

	e = next()
	require.Equal(t, time.Second, e.Remaining)

	env.advance(1)

	e = next()
	require.Equal(t, EventTick, e.Type)
	require.Equal(t, time.Duration(0), e.Remaining)

	e = next()
	require.True(t, e.IsFinal())
	require.Equal(t, OutcomeTimedOut, e.Outcome)
	require.Equal(t, "app closed, time limit reached", e.Message)
	require.NoError(t, e.Err)

	_, ok := <-events
	require.False(t, ok)

	// The terminal entry is written before the final event
	require.Equal(t, 2, len(env.entries(t)))
}

func TestEventsLateSubscriber(t *testing.T) {
	env := newTestEnv(t)

	h, err := env.engine.Start("chrome.exe", "research", 3*time.Second)
	require.NoError(t, err)

	h.Cancel()

	events, cancel := h.Events()
	defer cancel()

	list := []*Event{}
	for e := range events {
		list = append(list, e.(*Event))
	}

	require.Equal(t, 1, len(list))
	require.True(t, list[0].IsFinal())
	require.Equal(t, OutcomeCancelled, list[0].Outcome)
}

func TestGet(t *testing.T) {
	env := newTestEnv(t)

	h, err := env.engine.Start("chrome.exe", "research", 3*time.Second)
	require.NoError(t, err)

	g, ok := env.engine.Get(h.ID())
	require.True(t, ok)
	require.Equal(t, h.ID(), g.ID())

	h.Cancel()

	g, ok = env.engine.Get(h.ID())
	require.True(t, ok)
	require.Equal(t, "cancelled", g.Info().State)

	_, ok = env.engine.Get("unknown")
	require.False(t, ok)
}

func TestRecentLogs(t *testing.T) {
	env := newTestEnv(t)

	for _, app := range []string{"chrome.exe", "notepad.exe"} {
		env.inspector.Set(app, true)

		h, err := env.engine.Start(app, "work", 3*time.Second)
		require.NoError(t, err)

		h.Cancel()
	}

	entries, err := env.engine.RecentLogs(3)
	require.NoError(t, err)
	require.Equal(t, 3, len(entries))
	require.Equal(t, "chrome.exe", entries[0].App)
	require.Equal(t, store.ActionClosed, entries[0].Action)
	require.Equal(t, "notepad.exe", entries[2].App)
}

func TestSystemClock(t *testing.T) {
	inspector := newTestInspector("chrome.exe")
	logstore := store.NewMemoryStore(store.MemoryConfig{})

	e, err := New(Config{
		Store:        logstore,
		Inspector:    inspector,
		PollInterval: 200 * time.Millisecond,
		TickInterval: 100 * time.Millisecond,
	})
	require.NoError(t, err)

	h, err := e.Start("chrome.exe", "research", time.Second)
	require.NoError(t, err)

	r := waitDone(t, h)

	require.Equal(t, OutcomeTimedOut, r.Outcome)
	require.Equal(t, []string{"chrome.exe"}, inspector.Terminated())
}

func TestFormatRemaining(t *testing.T) {
	require.Equal(t, "15:00", FormatRemaining(900*time.Second))
	require.Equal(t, "01:05", FormatRemaining(65*time.Second))
	require.Equal(t, "00:00", FormatRemaining(0))
	require.Equal(t, "00:00", FormatRemaining(-time.Second))
	require.Equal(t, "100:00", FormatRemaining(6000*time.Second))
}

func TestStateTransitions(t *testing.T) {
	state, err := nextState(statePending, stateRunning)
	require.NoError(t, err)
	require.Equal(t, stateRunning, state)

	_, err = nextState(statePending, stateTimedOut)
	require.Error(t, err)

	for _, final := range []stateType{stateTimedOut, stateVanishedEarly, stateCancelled} {
		state, err = nextState(stateRunning, final)
		require.NoError(t, err)
		require.Equal(t, final, state)

		_, err = nextState(final, stateRunning)
		require.Error(t, err)

		_, err = nextState(final, stateCancelled)
		require.Error(t, err)
	}
}

func TestOutcome(t *testing.T) {
	require.Equal(t, store.ActionClosed, OutcomeTimedOut.Action())
	require.Equal(t, store.ActionClosed, OutcomeCancelled.Action())
	require.Equal(t, store.ActionClosedEarly, OutcomeVanishedEarly.Action())
	require.Equal(t, "", OutcomeNone.Message())
}
