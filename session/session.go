package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/focusguard/core/event"
	"github.com/focusguard/core/log"
	"github.com/focusguard/core/psutil"
	"github.com/focusguard/core/session/store"
	timesrc "github.com/focusguard/core/time"
)

// Info is a snapshot of a session.
type Info struct {
	ID        string
	App       string
	Purpose   string
	TimeLimit time.Duration
	State     string
	Remaining time.Duration
	StartedAt time.Time
	EndedAt   time.Time // zero while the session is running
}

// Result describes how a session ended.
type Result struct {
	ID          string
	App         string
	Outcome     Outcome
	Message     string
	Remaining   time.Duration
	EndedAt     time.Time
	Termination psutil.TerminationResult // only for outcomes that kill the app
	Err         error                    // wraps ErrIO if the final log entry couldn't be written
}

// Handle is a running or ended session.
type Handle interface {
	// ID returns the ID of the session.
	ID() string

	// Info returns a snapshot of the session.
	Info() Info

	// Events returns a channel with the progress events. The channel will
	// be closed after the final event. Tick events are dropped if they are
	// not read fast enough, the final event is always delivered.
	Events() (<-chan event.Event, event.CancelFunc)

	// Cancel requests the cancellation of the session and waits until the
	// session ended. If the session already ended, its result is returned.
	Cancel() Result

	// Done returns a channel that is closed after the session ended.
	Done() <-chan struct{}

	// Result returns the result of the session and true, or false if
	// the session didn't end yet.
	Result() (Result, bool)
}

type sessionConfig struct {
	ID           string
	App          string
	Purpose      string
	TimeLimit    time.Duration
	PollInterval time.Duration
	TickInterval time.Duration
	Clock        timesrc.Source
	Inspector    psutil.Inspector
	Store        store.Store
	Logger       log.Logger
	OnDone       func(s *session, r Result)
}

// poll is the report of a liveness check
type poll struct {
	at      time.Time
	running bool
}

type session struct {
	id           string
	app          string
	purpose      string
	limit        time.Duration
	pollInterval time.Duration
	tickInterval time.Duration

	startedAt time.Time
	deadline  time.Time

	clock     timesrc.Source
	inspector psutil.Inspector
	store     store.Store
	logger    log.Logger
	onDone    func(s *session, r Result)

	events *event.PubSub

	cancel     chan struct{}
	cancelOnce sync.Once
	done       chan struct{}

	state struct {
		state     stateType
		remaining time.Duration
		endedAt   time.Time
		result    *Result
		lock      sync.RWMutex
	}
}

var _ Handle = &session{}

func newSession(config sessionConfig) *session {
	s := &session{
		id:           config.ID,
		app:          config.App,
		purpose:      config.Purpose,
		limit:        config.TimeLimit,
		pollInterval: config.PollInterval,
		tickInterval: config.TickInterval,
		clock:        config.Clock,
		inspector:    config.Inspector,
		store:        config.Store,
		logger:       config.Logger,
		onDone:       config.OnDone,
		events:       event.NewPubSub(0),
		cancel:       make(chan struct{}),
		done:         make(chan struct{}),
	}

	s.state.state = statePending
	s.state.remaining = s.limit

	if s.logger == nil {
		s.logger = log.New("")
	}

	s.logger = s.logger.WithFields(log.Fields{
		"id":  s.id,
		"app": s.app,
	})

	return s
}

// start starts the countdown and the liveness checks. The tickers are created
// before this function returns, such that no tick is missed.
func (s *session) start(startedAt time.Time) {
	s.startedAt = startedAt
	s.deadline = startedAt.Add(s.limit)

	s.setState(stateRunning)

	ctx, cancel := context.WithCancel(context.Background())

	ticks := make(chan time.Time)
	polls := make(chan poll)

	countdown := s.clock.NewTicker(s.tickInterval)
	liveness := s.clock.NewTicker(s.pollInterval)

	wg := &sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()
		s.countdown(ctx, countdown, ticks)
	}()

	go func() {
		defer wg.Done()
		s.liveness(ctx, liveness, polls)
	}()

	go s.arbitrate(ticks, polls, func() {
		cancel()
		wg.Wait()
	})

	s.logger.Info().WithField("time_limit_sec", int64(s.limit/time.Second)).Log("Session started")
}

// countdown forwards the ticks of the ticker to the arbiter.
func (s *session) countdown(ctx context.Context, ticker timesrc.Ticker, ticks chan<- time.Time) {
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C():
			select {
			case ticks <- t:
			case <-ctx.Done():
				return
			}
		}
	}
}

// liveness checks on each tick of the ticker whether the app is running
// and reports the result to the arbiter.
func (s *session) liveness(ctx context.Context, ticker timesrc.Ticker, polls chan<- poll) {
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C():
			running := s.inspector.IsRunning(s.app)

			s.logger.Debug().WithField("running", running).Log("Checked app")

			select {
			case polls <- poll{at: t, running: running}:
			case <-ctx.Done():
				return
			}
		}
	}
}

// remainingAt returns the remaining time at t, rounded up to whole seconds.
func (s *session) remainingAt(t time.Time) time.Duration {
	d := s.deadline.Sub(t)
	if d <= 0 {
		return 0
	}

	return ((d + time.Second - 1) / time.Second) * time.Second
}

// arbitrate is the only place where the outcome of a session is decided. The
// liveness check that is due at or before the deadline is always awaited
// before the time limit is considered as reached. If conditions become ready
// at the same time, an absent app wins over a cancellation, which wins over
// the time limit.
func (s *session) arbitrate(ticks <-chan time.Time, polls <-chan poll, stop func()) {
	lastPoll := s.startedAt
	requiredPoll := s.startedAt.Add((s.limit / s.pollInterval) * s.pollInterval)

	expired := false
	absent := false
	cancelled := false

	handleTick := func(t time.Time) {
		if expired {
			return
		}

		remaining := s.remainingAt(t)
		s.setRemaining(remaining)

		if remaining == 0 {
			expired = true
		}

		s.events.Publish(&Event{
			SessionID: s.id,
			Type:      EventTick,
			Time:      t,
			Remaining: remaining,
		})
	}

	handlePoll := func(p poll) {
		if p.at.After(lastPoll) {
			lastPoll = p.at
		}

		if !p.running {
			absent = true
		}
	}

	outcome := OutcomeNone

	for outcome == OutcomeNone {
		select {
		case t := <-ticks:
			handleTick(t)
		case p := <-polls:
			handlePoll(p)
		case <-s.cancel:
			cancelled = true
		}

		// Collect everything else that is ready in this step
		select {
		case t := <-ticks:
			handleTick(t)
		default:
		}

		select {
		case p := <-polls:
			handlePoll(p)
		default:
		}

		select {
		case <-s.cancel:
			cancelled = true
		default:
		}

		if absent {
			outcome = OutcomeVanishedEarly
		} else if cancelled {
			outcome = OutcomeCancelled
		} else if expired && !lastPoll.Before(requiredPoll) {
			outcome = OutcomeTimedOut
		}
	}

	stop()

	s.finish(outcome)
}

// finish executes the terminal action for the outcome.
func (s *session) finish(outcome Outcome) {
	remaining := s.getRemaining()
	if outcome == OutcomeTimedOut {
		remaining = 0
	}

	result := Result{
		ID:        s.id,
		App:       s.app,
		Outcome:   outcome,
		Message:   outcome.Message(),
		Remaining: remaining,
	}

	if outcome.terminates() {
		result.Termination = s.inspector.Terminate(s.app)
	}

	now := s.clock.Now()

	err := s.store.Append(store.Entry{
		App:       s.app,
		Timestamp: now,
		Action:    outcome.Action(),
	})
	if err != nil {
		result.Err = fmt.Errorf("%w: %s", ErrIO, err.Error())
		s.logger.Error().WithError(err).Log("Writing the session log failed")
	}

	result.EndedAt = now

	s.state.lock.Lock()
	if state, err := nextState(s.state.state, stateFromOutcome(outcome)); err == nil {
		s.state.state = state
	}
	s.state.remaining = remaining
	s.state.endedAt = now
	s.state.result = &result
	s.state.lock.Unlock()

	logger := s.logger.WithFields(log.Fields{
		"outcome":       outcome,
		"remaining_sec": int64(remaining / time.Second),
	})

	if outcome.terminates() {
		logger = logger.WithFields(log.Fields{
			"matched": result.Termination.Matched,
			"killed":  result.Termination.Killed,
		})
	}

	logger.Info().Log("Session ended: %s", outcome.Message())

	if s.onDone != nil {
		s.onDone(s, result)
	}

	s.events.PublishFinal(&Event{
		SessionID: s.id,
		Type:      EventFinal,
		Time:      now,
		Remaining: remaining,
		Outcome:   outcome,
		Message:   result.Message,
		Err:       result.Err,
	})

	close(s.done)
}

func (s *session) setState(state stateType) {
	s.state.lock.Lock()
	defer s.state.lock.Unlock()

	next, err := nextState(s.state.state, state)
	if err != nil {
		s.logger.Warn().WithError(err).Log("Invalid state transition")
		return
	}

	s.state.state = next
}

func (s *session) setRemaining(remaining time.Duration) {
	s.state.lock.Lock()
	defer s.state.lock.Unlock()

	s.state.remaining = remaining
}

func (s *session) getRemaining() time.Duration {
	s.state.lock.RLock()
	defer s.state.lock.RUnlock()

	return s.state.remaining
}

func (s *session) ID() string {
	return s.id
}

func (s *session) Info() Info {
	s.state.lock.RLock()
	defer s.state.lock.RUnlock()

	return Info{
		ID:        s.id,
		App:       s.app,
		Purpose:   s.purpose,
		TimeLimit: s.limit,
		State:     s.state.state.String(),
		Remaining: s.state.remaining,
		StartedAt: s.startedAt,
		EndedAt:   s.state.endedAt,
	}
}

func (s *session) Events() (<-chan event.Event, event.CancelFunc) {
	return s.events.Subscribe()
}

func (s *session) Cancel() Result {
	s.cancelOnce.Do(func() {
		close(s.cancel)
	})

	<-s.done

	r, _ := s.Result()

	return r
}

func (s *session) Done() <-chan struct{} {
	return s.done
}

func (s *session) Result() (Result, bool) {
	s.state.lock.RLock()
	defer s.state.lock.RUnlock()

	if s.state.result == nil {
		return Result{}, false
	}

	return *s.state.result, true
}
