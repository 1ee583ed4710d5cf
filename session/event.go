package session

import (
	"fmt"
	"time"

	"github.com/focusguard/core/event"
)

type EventType string

const (
	EventTick  EventType = "tick"
	EventFinal EventType = "final"
)

// Event is a progress report of a session. Each countdown tick results in a tick
// event. The final event is the last event of a session.
type Event struct {
	SessionID string
	Type      EventType
	Time      time.Time
	Remaining time.Duration
	Outcome   Outcome // only for final events
	Message   string  // only for final events
	Err       error   // only for final events, if the log couldn't be written
}

func (e *Event) Clone() event.Event {
	return &Event{
		SessionID: e.SessionID,
		Type:      e.Type,
		Time:      e.Time,
		Remaining: e.Remaining,
		Outcome:   e.Outcome,
		Message:   e.Message,
		Err:       e.Err,
	}
}

// IsFinal returns whether this is the final event of a session.
func (e *Event) IsFinal() bool {
	return e.Type == EventFinal
}

// Display returns the remaining time as MM:SS.
func (e *Event) Display() string {
	return FormatRemaining(e.Remaining)
}

// FormatRemaining formats a duration as MM:SS, e.g. 15:00. Minutes are
// not wrapped into hours. Negative durations are formatted as 00:00.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	secs := int64(d.Round(time.Second) / time.Second)

	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
