package session

import "errors"

var (
	// ErrValidation is returned for an empty app or purpose or an invalid time limit.
	ErrValidation = errors.New("invalid session parameters")

	// ErrSessionAlreadyActive is returned if a session is started while another one is running.
	ErrSessionAlreadyActive = errors.New("a session is already active")

	// ErrIO is returned if the session log can't be written.
	ErrIO = errors.New("session log not writable")

	// ErrNotFound is returned if there is no session with the given ID.
	ErrNotFound = errors.New("session not found")
)
