package battle

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnhandledEvent       = errors.New("unhandled protocol event")
	ErrMalformedEvent       = errors.New("malformed protocol event")
	ErrTeamFull             = errors.New("team is already full")
	ErrUnknownSideCondition = errors.New("side condition is not active")
	ErrUnknownField         = errors.New("field is not active")
	ErrIllusion             = errors.New("illusion could not be resolved")
	ErrIllegalOrder         = errors.New("order is not legal for the current request")
	ErrUnexplainedMove      = errors.New("request lists a move the pokemon can't have")
)

// UnhandledEventError is returned for protocol keywords the engine neither handles nor ignores.
type UnhandledEventError struct {
	Event []string
}

func (e *UnhandledEventError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnhandledEvent, strings.Join(e.Event, "|"))
}

func (e *UnhandledEventError) Is(target error) bool {
	return target == ErrUnhandledEvent
}

// EventError wraps a failure while applying a known event.
type EventError struct {
	Event []string
	Err   error
}

func (e *EventError) Error() string {
	return fmt.Sprintf("applying %q: %s", strings.Join(e.Event, "|"), e.Err)
}

func (e *EventError) Unwrap() error {
	return e.Err
}

// RequestError wraps a failure while reconciling a request payload. Request is the payload
// as it was received.
type RequestError struct {
	Request *Request
	Err     error
}

func (e *RequestError) Error() string {
	rqid := 0
	if e.Request != nil {
		rqid = e.Request.RQID
	}
	return fmt.Sprintf("reconciling request %d: %s", rqid, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func malformed(event []string, reason string) error {
	return fmt.Errorf("%w: %s (%d fields)", ErrMalformedEvent, reason, len(event))
}
