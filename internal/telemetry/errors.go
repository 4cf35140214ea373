// Package telemetry fetches a driver's session telemetry and prepares it for animation.
package telemetry

import (
	"errors"
	"fmt"
)

// ErrorKind classifies load failures
type ErrorKind string

// Load failure kinds
const (
	KindDriverNotFound     ErrorKind = "DriverNotFound"
	KindSessionLoadError   ErrorKind = "SessionLoadError"
	KindNoResultsForDriver ErrorKind = "NoResultsForDriver"
	KindEmptyTelemetry     ErrorKind = "EmptyTelemetry"
)

// Sentinels matching each kind through errors.Is
var (
	ErrDriverNotFound     = errors.New("driver not found")
	ErrSessionLoad        = errors.New("session could not be loaded")
	ErrNoResultsForDriver = errors.New("no results for driver")
	ErrEmptyTelemetry     = errors.New("empty telemetry")
)

var kindSentinels = map[ErrorKind]error{
	KindDriverNotFound:     ErrDriverNotFound,
	KindSessionLoadError:   ErrSessionLoad,
	KindNoResultsForDriver: ErrNoResultsForDriver,
	KindEmptyTelemetry:     ErrEmptyTelemetry,
}

// LoadError is returned for every failed load
type LoadError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func newLoadError(kind ErrorKind, err error, format string, args ...any) *LoadError {
	return &LoadError{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind
func (e *LoadError) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && sentinel == target
}

// KindOf returns the kind of a load error, or an empty kind for other errors
func KindOf(err error) ErrorKind {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Kind
	}
	return ""
}
