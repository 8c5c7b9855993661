package openlibrary

import (
	"errors"
	"fmt"
)

var (
	// ErrUpstreamUnavailable covers transport failures and non-2xx responses.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrUpstreamMalformed is returned when a response cannot be decoded or
	// lacks a required field.
	ErrUpstreamMalformed = errors.New("upstream response malformed")
	// ErrRecordNotFound is returned when a valid call does not carry the
	// requested record.
	ErrRecordNotFound = errors.New("record not found")
	// ErrValidation is returned for empty or malformed caller input.
	ErrValidation = errors.New("invalid input")
)

// Error describes a failed catalog operation. It matches one of the sentinel
// errors above with errors.Is.
type Error struct {
	Op     string
	URL    string
	Status int
	Kind   error
	Err    error
}

func (e *Error) Error() string {
	msg := "openlibrary: " + e.Op + ": " + e.Kind.Error()
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func validationError(op, format string, args ...any) error {
	return &Error{Op: op, Kind: ErrValidation, Err: fmt.Errorf(format, args...)}
}

func malformed(op, url, format string, args ...any) error {
	return &Error{Op: op, URL: url, Kind: ErrUpstreamMalformed, Err: fmt.Errorf(format, args...)}
}

func notFound(op, url, format string, args ...any) error {
	return &Error{Op: op, URL: url, Kind: ErrRecordNotFound, Err: fmt.Errorf(format, args...)}
}
