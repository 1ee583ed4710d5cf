package api

import "github.com/focusguard/core/session/store"

// LogEntry is an entry of the session log
type LogEntry struct {
	App       string `json:"app"`
	Timestamp string `json:"timestamp"` // YYYY-MM-DD HH:MM:SS, local time
	Action    string `json:"action" jsonschema:"enum=started,enum=closed,enum=closed early"`
	Purpose   string `json:"purpose"`
	Line      string `json:"line"`
}

func (l *LogEntry) Unmarshal(e store.Entry) {
	l.App = e.App
	l.Timestamp = ""
	l.Action = string(e.Action)
	l.Purpose = e.Purpose
	l.Line = e.String()

	if !e.Timestamp.IsZero() {
		l.Timestamp = e.Timestamp.Format(store.TimeLayout)
	}
}
