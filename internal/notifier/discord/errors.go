package discord

import (
	"errors"
	"fmt"
)

// DispatchErrorKind classifies a delivery failure.
type DispatchErrorKind string

const (
	// KindHTTPStatus means Discord answered with something other than 204.
	KindHTTPStatus DispatchErrorKind = "http_status"
	// KindTransport means Discord could not be reached.
	KindTransport DispatchErrorKind = "transport"
)

var (
	// ErrHTTPStatus matches any DispatchError of kind http_status.
	ErrHTTPStatus = errors.New("discord webhook rejected the message")
	// ErrTransport matches any DispatchError of kind transport.
	ErrTransport = errors.New("discord webhook unreachable")
	// ErrEmptyMessage is returned when a send carries no message text.
	ErrEmptyMessage = errors.New("message is required")
	// ErrClosed is returned when sending through a notifier that has been closed.
	ErrClosed = errors.New("notifier is closed")
	// ErrUnknownTarget is returned when no notifier is registered under an ID.
	ErrUnknownTarget = errors.New("unknown notification target")
	// ErrTargetExists is returned when registering an ID twice.
	ErrTargetExists = errors.New("notification target already registered")
)

// DispatchError reports a failed delivery to a webhook. Body is set for
// KindHTTPStatus and Cause for KindTransport.
type DispatchError struct {
	Kind       DispatchErrorKind
	Target     string
	StatusCode int
	Body       string
	Cause      error
}

func (e *DispatchError) Error() string {
	if e.Kind == KindHTTPStatus {
		return fmt.Sprintf("discord webhook %q failed with status %d: %s", e.Target, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("discord webhook %q unreachable: %v", e.Target, e.Cause)
}

func (e *DispatchError) Unwrap() error {
	return e.Cause
}

func (e *DispatchError) Is(target error) bool {
	switch target {
	case ErrHTTPStatus:
		return e.Kind == KindHTTPStatus
	case ErrTransport:
		return e.Kind == KindTransport
	}
	return false
}
