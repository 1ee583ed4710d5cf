package session

import (
	"fmt"

	"github.com/focusguard/core/session/store"
)

// Outcome is how a session ended.
type Outcome string

const (
	OutcomeNone          Outcome = ""
	OutcomeTimedOut      Outcome = "timed_out"
	OutcomeVanishedEarly Outcome = "vanished_early"
	OutcomeCancelled     Outcome = "cancelled"
)

func (o Outcome) String() string {
	return string(o)
}

// Message returns a human readable description of the outcome.
func (o Outcome) Message() string {
	switch o {
	case OutcomeTimedOut:
		return "app closed, time limit reached"
	case OutcomeVanishedEarly:
		return "app closed early"
	case OutcomeCancelled:
		return "session cancelled"
	}

	return ""
}

// Action returns the log action for the outcome.
func (o Outcome) Action() store.Action {
	if o == OutcomeVanishedEarly {
		return store.ActionClosedEarly
	}

	return store.ActionClosed
}

// terminates returns whether the app has to be killed for this outcome.
func (o Outcome) terminates() bool {
	return o == OutcomeTimedOut || o == OutcomeCancelled
}

type stateType string

const (
	statePending       stateType = "pending"
	stateRunning       stateType = "running"
	stateTimedOut      stateType = "timed_out"
	stateVanishedEarly stateType = "vanished_early"
	stateCancelled     stateType = "cancelled"
)

// String returns a string representation of the state
func (s stateType) String() string {
	return string(s)
}

// IsFinal returns whether the state is representing an ended session
func (s stateType) IsFinal() bool {
	return s == stateTimedOut || s == stateVanishedEarly || s == stateCancelled
}

func stateFromOutcome(o Outcome) stateType {
	switch o {
	case OutcomeTimedOut:
		return stateTimedOut
	case OutcomeVanishedEarly:
		return stateVanishedEarly
	case OutcomeCancelled:
		return stateCancelled
	}

	return ""
}

// nextState checks if the transition of the current state to the new
// state is allowed. Final states can't be left.
func nextState(current, state stateType) (stateType, error) {
	failed := false

	switch current {
	case statePending:
		switch state {
		case stateRunning:
		default:
			failed = true
		}
	case stateRunning:
		if !state.IsFinal() {
			failed = true
		}
	case stateTimedOut, stateVanishedEarly, stateCancelled:
		failed = true
	default:
		return current, fmt.Errorf("current state is unhandled: %s", current)
	}

	if failed {
		return current, fmt.Errorf("can't change from state %s to %s", current, state)
	}

	return state, nil
}
