// Package store defines the session log, an append-only audit trail of
// session starts and ends.
package store

import (
	"fmt"
	"time"

	"github.com/focusguard/core/glob"
)

// Action is what happened to the monitored app.
type Action string

const (
	ActionStarted     Action = "started"
	ActionClosed      Action = "closed"
	ActionClosedEarly Action = "closed early"
)

// TimeLayout is the layout of the timestamps in the log.
const TimeLayout = "2006-01-02 15:04:05"

type Entry struct {
	App       string
	Timestamp time.Time // second precision, local time
	Action    Action
	Purpose   string // only set for ActionStarted
}

// String returns the entry as a line of the form
// "2024-03-01 10:00:00 - chrome.exe: started (research)".
func (e Entry) String() string {
	return fmt.Sprintf("%s - %s: %s (%s)", e.Timestamp.Format(TimeLayout), e.App, e.Action, e.Purpose)
}

type Store interface {
	// Append adds an entry to the end of the log. The log is rewritten as
	// a whole. If rewriting fails, the previous log stays intact.
	Append(e Entry) error

	// ReadRecent returns the last n entries in the order they have been
	// appended. With n <= 0 all entries are returned. A missing or unreadable
	// log is treated as empty.
	ReadRecent(n int) ([]Entry, error)
}

// Filter returns the entries whose app matches the glob pattern. Case is
// ignored. An empty pattern matches every entry.
func Filter(entries []Entry, pattern string) ([]Entry, error) {
	if len(pattern) == 0 {
		return entries, nil
	}

	g, err := glob.CompileFold(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern '%s': %w", pattern, err)
	}

	filtered := []Entry{}

	for _, e := range entries {
		if !g.Match(e.App) {
			continue
		}

		filtered = append(filtered, e)
	}

	return filtered, nil
}
