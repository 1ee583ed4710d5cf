package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/focusguard/core/encoding/json"
	"github.com/focusguard/core/event"
	"github.com/focusguard/core/log"
	"github.com/focusguard/core/session"
)

// SessionEvent is a countdown tick or the final event of a session
type SessionEvent struct {
	SessionID string `json:"session_id"`
	Type      string `json:"type" jsonschema:"enum=tick,enum=final"`
	Timestamp int64  `json:"ts" format:"int64"` // unix milliseconds
	Remaining int64  `json:"remaining_sec" format:"int64"`
	Display   string `json:"display"` // MM:SS
	Outcome   string `json:"outcome,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (e *SessionEvent) Unmarshal(evt event.Event) bool {
	se, ok := evt.(*session.Event)
	if !ok {
		return false
	}

	e.SessionID = se.SessionID
	e.Type = string(se.Type)
	e.Timestamp = se.Time.UnixMilli()
	e.Remaining = int64(se.Remaining.Round(time.Second) / time.Second)
	e.Display = se.Display()
	e.Outcome = string(se.Outcome)
	e.Message = se.Message
	e.Error = ""

	if se.Err != nil {
		e.Error = se.Err.Error()
	}

	return true
}

// LogEvent is a line of the application log
type LogEvent struct {
	Timestamp int64  `json:"ts" format:"int64"`
	Level     string `json:"level"`
	Component string `json:"event"`
	Message   string `json:"message"`
	Caller    string `json:"caller"`

	Data map[string]string `json:"data"`
}

func (e *LogEvent) Unmarshal(le *log.Event) {
	e.Timestamp = le.Time.Unix()
	e.Level = strings.ToLower(le.Level.String())
	e.Component = strings.ToLower(le.Component)
	e.Message = le.Message
	e.Caller = le.Caller

	e.Data = make(map[string]string)

	for k, v := range le.Data {
		var value string

		switch val := v.(type) {
		case string:
			value = val
		case error:
			value = val.Error()
		default:
			if s, ok := v.(fmt.Stringer); ok {
				value = s.String()
			} else {
				if jsonvalue, err := json.Marshal(v); err == nil {
					value = string(jsonvalue)
				} else {
					value = err.Error()
				}
			}
		}

		e.Data[k] = value
	}
}
