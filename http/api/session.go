package api

import (
	"time"

	"github.com/focusguard/core/session"
)

// SessionStart is the request for starting a session
type SessionStart struct {
	App       string `json:"app" validate:"required" jsonschema:"minLength=1"`
	Purpose   string `json:"purpose" validate:"required" jsonschema:"minLength=1"`
	TimeLimit int64  `json:"time_limit_sec" validate:"gte=0,lte=9223372036" jsonschema:"minimum=0,maximum=9223372036"` // 0 selects the default limit, at most math.MaxInt64 nanoseconds
}

// Session represents a running or ended session
type Session struct {
	ID        string `json:"id" jsonschema:"minLength=1"`
	App       string `json:"app"`
	Purpose   string `json:"purpose"`
	TimeLimit int64  `json:"time_limit_sec" format:"int64"`
	State     string `json:"state" jsonschema:"enum=pending,enum=running,enum=timed_out,enum=vanished_early,enum=cancelled"`
	Remaining int64  `json:"remaining_sec" format:"int64"`
	Display   string `json:"display"` // MM:SS
	StartedAt string `json:"started_at"`         // RFC3339
	EndedAt   string `json:"ended_at,omitempty"` // RFC3339
}

func (s *Session) Unmarshal(info session.Info) {
	s.ID = info.ID
	s.App = info.App
	s.Purpose = info.Purpose
	s.TimeLimit = int64(info.TimeLimit / time.Second)
	s.State = info.State
	s.Remaining = int64(info.Remaining.Round(time.Second) / time.Second)
	s.Display = session.FormatRemaining(info.Remaining)
	s.StartedAt = info.StartedAt.Format(time.RFC3339)
	s.EndedAt = ""

	if !info.EndedAt.IsZero() {
		s.EndedAt = info.EndedAt.Format(time.RFC3339)
	}
}

// SessionResult describes how a session ended
type SessionResult struct {
	ID        string `json:"id"`
	App       string `json:"app"`
	Outcome   string `json:"outcome" jsonschema:"enum=timed_out,enum=vanished_early,enum=cancelled"`
	Message   string `json:"message"`
	Remaining int64  `json:"remaining_sec" format:"int64"`
	EndedAt   string `json:"ended_at"` // RFC3339
	Matched   int    `json:"processes_matched"`
	Killed    int    `json:"processes_killed"`
	Error     string `json:"error,omitempty"`
}

func (r *SessionResult) Unmarshal(res session.Result) {
	r.ID = res.ID
	r.App = res.App
	r.Outcome = string(res.Outcome)
	r.Message = res.Message
	r.Remaining = int64(res.Remaining.Round(time.Second) / time.Second)
	r.EndedAt = res.EndedAt.Format(time.RFC3339)
	r.Matched = res.Termination.Matched
	r.Killed = res.Termination.Killed
	r.Error = ""

	if res.Err != nil {
		r.Error = res.Err.Error()
	}
}

// SessionStats are the counters of the session engine
type SessionStats struct {
	Started       uint64 `json:"started" format:"uint64"`
	TimedOut      uint64 `json:"timed_out" format:"uint64"`
	VanishedEarly uint64 `json:"vanished_early" format:"uint64"`
	Cancelled     uint64 `json:"cancelled" format:"uint64"`
	LogErrors     uint64 `json:"log_errors" format:"uint64"`
	Active        bool   `json:"active"`
}

func (s *SessionStats) Unmarshal(stats session.Stats) {
	s.Started = stats.Started
	s.TimedOut = stats.TimedOut
	s.VanishedEarly = stats.VanishedEarly
	s.Cancelled = stats.Cancelled
	s.LogErrors = stats.LogErrors
	s.Active = stats.Active
}
