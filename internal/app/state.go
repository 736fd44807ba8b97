package app

import (
	"github.com/quantmind-br/codecollector/internal/domain"
)

// Phase is the pipeline lifecycle position
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseProcessing
	PhaseSuccess
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseProcessing:
		return "processing"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether only a reset can leave the phase
func (p Phase) IsTerminal() bool {
	return p == PhaseSuccess || p == PhaseError
}

// EventKind names a pipeline event
type EventKind int

const (
	EventStart EventKind = iota
	EventSucceeded
	EventFailed
	EventReset
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventSucceeded:
		return "succeeded"
	case EventFailed:
		return "failed"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Event drives Reduce. Source and Result are read on EventSucceeded, Err on EventFailed.
type Event struct {
	Kind   EventKind
	Source domain.Source
	Result *domain.Result
	Err    error
}

// State is an immutable snapshot of the pipeline
type State struct {
	Phase  Phase
	Source domain.Source  // set in PhaseSuccess
	Result *domain.Result // set in PhaseSuccess
	// Message is the user-facing text for PhaseError; Err keeps the cause
	Message string
	Err     error
}

var transitions = map[Phase]map[EventKind]Phase{
	PhaseIdle:       {EventStart: PhaseProcessing},
	PhaseProcessing: {EventSucceeded: PhaseSuccess, EventFailed: PhaseError},
	PhaseSuccess:    {EventReset: PhaseIdle},
	PhaseError:      {EventReset: PhaseIdle},
}

// Reduce applies ev to s. Disallowed events return s unchanged and a
// *domain.TransitionError. Every accepted event builds a fresh State, so
// payload from a previous run never survives into Processing.
func Reduce(s State, ev Event) (State, error) {
	next, ok := transitions[s.Phase][ev.Kind]
	if !ok {
		return s, &domain.TransitionError{From: s.Phase.String(), Event: ev.Kind.String()}
	}

	switch next {
	case PhaseSuccess:
		return State{Phase: next, Source: ev.Source, Result: ev.Result}, nil
	case PhaseError:
		return State{Phase: next, Err: ev.Err, Message: UserMessage(ev.Err)}, nil
	default:
		return State{Phase: next}, nil
	}
}
