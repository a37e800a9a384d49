package submission

import "strings"

// FailureMessage is shown for any network or response failure.
const FailureMessage = "Error generating responses. Check the log for details."

// Phase is the controller's position in its state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseCompleted
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseCompleted:
		return "completed"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot. Every transition produces a new value.
type State struct {
	Phase     Phase
	Total     int
	Completed int
	Message   string
}

// Submitting reports whether a request is in flight.
func (s State) Submitting() bool {
	return s.Phase == PhaseSubmitting
}

// Percent is 100*Completed/Total, clamped to [0,100].
func (s State) Percent() float64 {
	if s.Total <= 0 {
		return 0
	}
	p := 100 * float64(s.Completed) / float64(s.Total)
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// IsError reports whether the message should be presented as an error.
// A server can answer with its own error text, so the message is checked
// as well as the phase.
func (s State) IsError() bool {
	if s.Phase == PhaseFailed {
		return true
	}
	return strings.Contains(s.Message, "Error") || strings.Contains(s.Message, "⚠")
}

// Event is an input to Reduce.
type Event interface {
	isEvent()
}

// Started resets progress for a new submission of Total responses.
type Started struct{ Total int }

// Ticked is one firing of the simulated progress timer.
type Ticked struct{}

// Succeeded carries the server's message.
type Succeeded struct{ Message string }

// Failed marks a network or response failure.
type Failed struct{}

// Edited is a field change made while not submitting.
type Edited struct{}

func (Started) isEvent()   {}
func (Ticked) isEvent()    {}
func (Succeeded) isEvent() {}
func (Failed) isEvent()    {}
func (Edited) isEvent()    {}

// Reduce returns the state that follows s after e. Events that do not
// apply to the current phase leave s unchanged.
func Reduce(s State, e Event) State {
	switch e := e.(type) {
	case Started:
		if s.Submitting() {
			return s
		}
		return State{Phase: PhaseSubmitting, Total: e.Total}
	case Ticked:
		if !s.Submitting() || s.Completed >= s.Total {
			return s
		}
		s.Completed++
		return s
	case Succeeded:
		if !s.Submitting() {
			return s
		}
		return State{Phase: PhaseCompleted, Total: s.Total, Completed: s.Total, Message: e.Message}
	case Failed:
		if !s.Submitting() {
			return s
		}
		s.Phase = PhaseFailed
		s.Message = FailureMessage
		return s
	case Edited:
		if s.Phase == PhaseCompleted || s.Phase == PhaseFailed {
			s.Phase = PhaseIdle
		}
		return s
	}
	return s
}
