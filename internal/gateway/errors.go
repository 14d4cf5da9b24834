package gateway

import (
	"errors"
	"fmt"
)

// ErrInFlight is returned when an action is submitted while its previous
// submission has not completed.
var ErrInFlight = errors.New("request already in progress")

// RemoteRejection is a response outside 2xx. Message is the server's text,
// or the action's fallback when the server sent none.
type RemoteRejection struct {
	Status  int
	Message string
}

func (e *RemoteRejection) Error() string { return e.Message }

// TransportFailure means no usable response arrived. Only the fallback is
// shown to the user; Err is kept for logs.
type TransportFailure struct {
	Fallback string
	Err      error
}

func (e *TransportFailure) Error() string { return e.Fallback }

func (e *TransportFailure) Unwrap() error { return e.Err }

// Detail is the full error text for logs.
func (e *TransportFailure) Detail() string {
	return fmt.Sprintf("%s: %v", e.Fallback, e.Err)
}

// IsNotFound reports whether err is a 404 rejection. Listing endpoints answer
// 404 when nothing matched.
func IsNotFound(err error) bool {
	var rejection *RemoteRejection
	return errors.As(err, &rejection) && rejection.Status == 404
}

func withFallback(err error, fallback string) error {
	var rejection *RemoteRejection
	if errors.As(err, &rejection) && rejection.Message == "" {
		rejection.Message = fallback
		return rejection
	}
	var failure *TransportFailure
	if errors.As(err, &failure) && failure.Fallback == "" {
		failure.Fallback = fallback
		return failure
	}
	return err
}
