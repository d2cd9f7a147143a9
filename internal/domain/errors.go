package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound       = errors.New("session not found")
	ErrLastSession           = errors.New("cannot delete the last remaining session")
	ErrStateNotFound         = errors.New("persisted state not found")
	ErrMalformedState        = fmt.Errorf("%w: malformed persisted state", ErrStateNotFound)
	ErrKeyNotFound           = errors.New("key not found")
	ErrEmptyMessage          = errors.New("message text is empty")
	ErrSessionBusy           = errors.New("session is already sending")
	ErrNoTicket              = errors.New("session has no ticket yet")
	ErrLinkInProgress        = errors.New("session is already linking")
	ErrLinkingUnavailable    = errors.New("contact linking is not available yet")
	ErrTicketAlreadyAssigned = errors.New("ticket already assigned")
)

// TransportError reports a failed backend request or a non-success status.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": transport error"
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
