package diag

import (
	"errors"
	"fmt"

	"bracefmt/internal/source"
)

// Error is the error value returned by every stage. Error() yields the
// diagnostic message unchanged so callers comparing text keep working.
type Error struct {
	Diagnostic
	// Err is the cause reported by a host primitive, if any.
	Err error
}

// Errorf builds an error-severity *Error with a formatted message.
func Errorf(code Code, primary source.Span, format string, args ...any) *Error {
	return &Error{Diagnostic: NewError(code, primary, fmt.Sprintf(format, args...))}
}

// Wrap builds an *Error around a host failure; the message embeds the cause.
func Wrap(code Code, primary source.Span, cause error, msg string) *Error {
	if cause != nil {
		msg = msg + ": " + cause.Error()
	}
	return &Error{Diagnostic: NewError(code, primary, msg), Err: cause}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	s := e.Code.Kind().Sentinel()
	return s != nil && target == s
}

// Kind returns the taxonomy kind of the error.
func (e *Error) Kind() Kind {
	return e.Code.Kind()
}

// Shift moves the primary span and notes by n bytes. Used when an error was
// produced against a substring (a field name) and must point into the whole
// format string.
func (e *Error) Shift(n uint32) *Error {
	if e == nil || n == 0 {
		return e
	}
	e.Primary = e.Primary.ShiftRight(n)
	for i := range e.Notes {
		e.Notes[i].Span = e.Notes[i].Span.ShiftRight(n)
	}
	return e
}

// AsError extracts the *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
