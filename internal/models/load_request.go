package models

import (
	"errors"
	"fmt"
	"strings"
)

// Bounds accepted for user supplied load parameters
const (
	MinYear       = 2018
	MaxYear       = 2025
	MinStride     = 10
	MaxStride     = 200
	StrideStep    = 10
	DefaultYear   = 2024
	DefaultRace   = "Monza"
	DefaultDriver = "Verstappen"
	DefaultStride = 50
)

// Validation errors for LoadRequest
var (
	ErrInvalidYear    = errors.New("year out of range")
	ErrMissingRace    = errors.New("race name is required")
	ErrMissingDriver  = errors.New("driver name is required")
	ErrInvalidStride  = errors.New("stride out of range")
	ErrInvalidSession = errors.New("invalid session type")
)

// LoadRequest holds the parameters collected by the form or the CLI
type LoadRequest struct {
	Year    int         `form:"year" json:"year"`
	Race    string      `form:"race" json:"race"`
	Session SessionType `form:"session" json:"session"`
	Driver  string      `form:"driver" json:"driver"`
	Stride  int         `form:"stride" json:"stride"`
}

// DefaultLoadRequest returns the values the form is pre-filled with
func DefaultLoadRequest() LoadRequest {
	return LoadRequest{
		Year:    DefaultYear,
		Race:    DefaultRace,
		Session: SessionRace,
		Driver:  DefaultDriver,
		Stride:  DefaultStride,
	}
}

// Validate checks the request against the input widget bounds
func (r *LoadRequest) Validate() error {
	if r.Year < MinYear || r.Year > MaxYear {
		return fmt.Errorf("%w: %d not in %d-%d", ErrInvalidYear, r.Year, MinYear, MaxYear)
	}
	if strings.TrimSpace(r.Race) == "" {
		return ErrMissingRace
	}
	st, err := ParseSessionType(string(r.Session))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidSession, r.Session)
	}
	r.Session = st
	if strings.TrimSpace(r.Driver) == "" {
		return ErrMissingDriver
	}
	if r.Stride < MinStride || r.Stride > MaxStride || r.Stride%StrideStep != 0 {
		return fmt.Errorf("%w: %d", ErrInvalidStride, r.Stride)
	}
	return nil
}
