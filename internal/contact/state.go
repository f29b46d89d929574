package contact

import (
	"github.com/byteik/site/internal/errors"
)

// Status is the submission state.
type Status int

const (
	StatusIdle Status = iota
	StatusSending
	// StatusSuccess and StatusError are outcomes reported on the transition
	// out of sending; the machine itself rests in StatusIdle.
	StatusSuccess
	StatusError
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSending:
		return "sending"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// AlertKind selects the banner style.
type AlertKind string

const (
	AlertNone    AlertKind = ""
	AlertSuccess AlertKind = "success"
	AlertError   AlertKind = "error"
)

// Alert is the latest user-visible outcome.
type Alert struct {
	Message string    `json:"message"`
	Kind    AlertKind `json:"kind"`
}

// IsZero reports whether there is nothing to show.
func (a Alert) IsZero() bool {
	return a.Message == ""
}

// State is the whole contact form state for one visitor.
type State struct {
	Form   Form
	Status Status
	Alert  Alert
}

// SubmitEnabled is the submit button predicate: all fields filled and no
// request in flight.
func SubmitEnabled(s State) bool {
	return s.Status != StatusSending && Filled(s.Form)
}

// EventKind enumerates inputs to Reduce.
type EventKind int

const (
	EventInput EventKind = iota
	EventSubmit
	EventSucceeded
	EventFailed
)

// Event is one input to the state machine.
type Event struct {
	Kind  EventKind
	Field Field
	Value string
	Err   error
}

// Effect is the side effect Reduce asks its runtime to perform.
type Effect struct {
	Dispatch bool
	Snapshot Form
}

// Outcome reports how a transition out of sending ended, StatusIdle otherwise.
func Outcome(ev Event) Status {
	switch ev.Kind {
	case EventSucceeded:
		return StatusSuccess
	case EventFailed:
		return StatusError
	default:
		return StatusIdle
	}
}

// Reduce is the pure transition function of the submission machine:
//
//	idle --submit(valid)--> sending --succeeded|failed--> idle
//
// Submitting an invalid form sets the alert and stays idle. Submitting while
// sending is ignored. Completion events outside sending are ignored.
func Reduce(s State, ev Event, msgs Messages) (State, Effect) {
	switch ev.Kind {
	case EventInput:
		s.Form = s.Form.With(ev.Field, ev.Value)
		return s, Effect{}

	case EventSubmit:
		if s.Status == StatusSending {
			return s, Effect{}
		}
		if err := Validate(s.Form); err != nil {
			s.Alert = Alert{Message: msgs.ForValidation(errors.CodeOf(err)), Kind: AlertError}
			return s, Effect{}
		}
		s.Status = StatusSending
		s.Alert = Alert{}
		return s, Effect{Dispatch: true, Snapshot: s.Form}

	case EventSucceeded:
		if s.Status != StatusSending {
			return s, Effect{}
		}
		s.Status = StatusIdle
		s.Form = Form{}
		s.Alert = Alert{Message: msgs.Success, Kind: AlertSuccess}
		return s, Effect{}

	case EventFailed:
		if s.Status != StatusSending {
			return s, Effect{}
		}
		s.Status = StatusIdle
		s.Alert = Alert{Message: msgs.Failure, Kind: AlertError}
		return s, Effect{}
	}

	return s, Effect{}
}
