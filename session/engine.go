// Package session runs focus sessions. A session watches a running app for a
// limited time and kills it when the time is up, unless the app has been closed
// before or the session has been cancelled. Every start and end of a session is
// written to the session log.
package session

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/focusguard/core/log"
	"github.com/focusguard/core/psutil"
	"github.com/focusguard/core/session/store"
	timesrc "github.com/focusguard/core/time"

	"github.com/google/uuid"
)

const (
	DefaultTimeLimit    = 900 * time.Second
	DefaultPollInterval = 5 * time.Second
	DefaultTickInterval = time.Second

	// number of ended sessions that can still be looked up
	historySize = 32
)

// Stats are the counters of an engine.
type Stats struct {
	Started       uint64
	TimedOut      uint64
	VanishedEarly uint64
	Cancelled     uint64
	LogErrors     uint64
	Active        bool
}

type Engine interface {
	// Start starts a session for the app. A limit of 0 selects the default time limit.
	// The start is written to the log before the session starts.
	Start(app, purpose string, limit time.Duration) (Handle, error)

	// Active returns the running session, if any.
	Active() (Handle, bool)

	// Get returns the running or a recently ended session with the given ID.
	Get(id string) (Handle, bool)

	// Cancel cancels the session with the given ID and returns its result.
	Cancel(id string) (Result, error)

	// RecentLogs returns the last n entries of the session log.
	RecentLogs(n int) ([]store.Entry, error)

	// Stats returns the counters of this engine.
	Stats() Stats
}

type Config struct {
	Store     store.Store
	Inspector psutil.Inspector
	Clock     timesrc.Source // defaults to the system clock

	DefaultTimeLimit time.Duration // time limit for a session started with a limit of 0
	PollInterval     time.Duration // interval for checking whether the app is still running
	TickInterval     time.Duration // interval of the countdown

	Logger log.Logger
}

type engine struct {
	store     store.Store
	inspector psutil.Inspector
	clock     timesrc.Source

	defaultLimit time.Duration
	pollInterval time.Duration
	tickInterval time.Duration

	active  *session
	history []*session
	stats   Stats
	lock    sync.Mutex

	logger log.Logger
}

func New(config Config) (Engine, error) {
	e := &engine{
		store:        config.Store,
		inspector:    config.Inspector,
		clock:        config.Clock,
		defaultLimit: config.DefaultTimeLimit,
		pollInterval: config.PollInterval,
		tickInterval: config.TickInterval,
		logger:       config.Logger,
	}

	if e.store == nil {
		return nil, fmt.Errorf("no session log store provided")
	}

	if e.inspector == nil {
		return nil, fmt.Errorf("no process inspector provided")
	}

	if e.clock == nil {
		e.clock = &timesrc.StdSource{}
	}

	if e.defaultLimit <= 0 {
		e.defaultLimit = DefaultTimeLimit
	}

	if e.pollInterval <= 0 {
		e.pollInterval = DefaultPollInterval
	}

	if e.tickInterval <= 0 {
		e.tickInterval = DefaultTickInterval
	}

	if e.logger == nil {
		e.logger = log.New("")
	}

	return e, nil
}

func (e *engine) validate(app, purpose string, limit time.Duration) (string, string, time.Duration, error) {
	app = strings.TrimSpace(app)
	purpose = strings.TrimSpace(purpose)

	if len(app) == 0 {
		return "", "", 0, fmt.Errorf("%w: app name is required", ErrValidation)
	}

	if len(purpose) == 0 {
		return "", "", 0, fmt.Errorf("%w: purpose is required", ErrValidation)
	}

	if limit == 0 {
		limit = e.defaultLimit
	}

	if limit < time.Second {
		return "", "", 0, fmt.Errorf("%w: time limit must be at least one second (have: %s)", ErrValidation, limit)
	}

	if limit%time.Second != 0 {
		return "", "", 0, fmt.Errorf("%w: time limit must be in whole seconds (have: %s)", ErrValidation, limit)
	}

	if limit < e.tickInterval {
		return "", "", 0, fmt.Errorf("%w: time limit must not be shorter than the countdown interval (have: %s, interval: %s)", ErrValidation, limit, e.tickInterval)
	}

	return app, purpose, limit, nil
}

func (e *engine) Start(app, purpose string, limit time.Duration) (Handle, error) {
	app, purpose, limit, err := e.validate(app, purpose, limit)
	if err != nil {
		return nil, err
	}

	e.lock.Lock()
	defer e.lock.Unlock()

	if e.active != nil {
		return nil, fmt.Errorf("%w: %s (%s)", ErrSessionAlreadyActive, e.active.app, e.active.id)
	}

	now := e.clock.Now()

	err = e.store.Append(store.Entry{
		App:       app,
		Timestamp: now,
		Action:    store.ActionStarted,
		Purpose:   purpose,
	})
	if err != nil {
		e.stats.LogErrors++
		e.logger.Error().WithField("app", app).WithError(err).Log("Writing the session log failed, session not started")
		return nil, fmt.Errorf("%w: %s", ErrIO, err.Error())
	}

	s := newSession(sessionConfig{
		ID:           uuid.New().String(),
		App:          app,
		Purpose:      purpose,
		TimeLimit:    limit,
		PollInterval: e.pollInterval,
		TickInterval: e.tickInterval,
		Clock:        e.clock,
		Inspector:    e.inspector,
		Store:        e.store,
		Logger:       e.logger,
		OnDone:       e.release,
	})

	e.active = s
	e.stats.Started++

	s.start(now)

	return s, nil
}

// release frees the active slot after a session ended.
func (e *engine) release(s *session, r Result) {
	e.lock.Lock()
	defer e.lock.Unlock()

	switch r.Outcome {
	case OutcomeTimedOut:
		e.stats.TimedOut++
	case OutcomeVanishedEarly:
		e.stats.VanishedEarly++
	case OutcomeCancelled:
		e.stats.Cancelled++
	}

	if r.Err != nil {
		e.stats.LogErrors++
	}

	if e.active == s {
		e.active = nil
	}

	e.history = append(e.history, s)
	if len(e.history) > historySize {
		e.history = e.history[len(e.history)-historySize:]
	}
}

func (e *engine) Active() (Handle, bool) {
	e.lock.Lock()
	defer e.lock.Unlock()

	if e.active == nil {
		return nil, false
	}

	return e.active, true
}

func (e *engine) get(id string) *session {
	e.lock.Lock()
	defer e.lock.Unlock()

	if e.active != nil && e.active.id == id {
		return e.active
	}

	for i := len(e.history) - 1; i >= 0; i-- {
		if e.history[i].id == id {
			return e.history[i]
		}
	}

	return nil
}

func (e *engine) Get(id string) (Handle, bool) {
	s := e.get(id)
	if s == nil {
		return nil, false
	}

	return s, true
}

func (e *engine) Cancel(id string) (Result, error) {
	s := e.get(id)
	if s == nil {
		return Result{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return s.Cancel(), nil
}

func (e *engine) RecentLogs(n int) ([]store.Entry, error) {
	return e.store.ReadRecent(n)
}

func (e *engine) Stats() Stats {
	e.lock.Lock()
	defer e.lock.Unlock()

	stats := e.stats
	stats.Active = e.active != nil

	return stats
}
