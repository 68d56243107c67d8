package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSuperseded is returned when waiting on a container replaced by a newer request.
	ErrSuperseded = errors.New("request superseded")

	// ErrNoRequest is returned when a session has no request to wait for.
	ErrNoRequest = errors.New("no request issued")

	// ErrUnknownKind is returned for an unrecognized operation kind.
	ErrUnknownKind = errors.New("unknown operation kind")

	// ErrOwnerNotFound is returned when an owner has no registered value.
	ErrOwnerNotFound = errors.New("owner not found")

	// ErrPromptTooLarge is returned when a prompt exceeds the configured size.
	ErrPromptTooLarge = errors.New("prompt exceeds maximum allowed size")

	// ErrInvalidUTF8 is returned when a prompt contains invalid UTF-8.
	ErrInvalidUTF8 = errors.New("prompt contains invalid UTF-8 sequences")
)

// RequestError is reported by the AI service itself (error=true in the response).
type RequestError struct {
	Kind    OperationKind
	Message string
}

func (e *RequestError) Error() string {
	if e.Kind == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// TransportError means the call to the service failed before a response was decoded.
type TransportError struct {
	Kind OperationKind
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s transport: %v", e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Message returns the text exposed to users for any request failure.
func Message(err error) string {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Message
	}
	var trErr *TransportError
	if errors.As(err, &trErr) {
		return trErr.Err.Error()
	}
	return err.Error()
}
