// Package provider defines the boundary to the external motorsport data source
// and its OpenF1 implementation.
package provider

import (
	"context"
	"errors"
	"time"

	"github.com/sebasr/f1-telemetry-viewer/internal/models"
)

// Provider errors
var (
	// ErrSessionNotFound means no session matches the year, race and type
	ErrSessionNotFound = errors.New("session not found")

	// ErrDriverNotInSession means the driver code has no entry in the session
	ErrDriverNotInSession = errors.New("driver not in session")

	// ErrNoResult means the session has no classification for the driver
	ErrNoResult = errors.New("no result for driver")

	// ErrUnavailable wraps transport and decoding failures
	ErrUnavailable = errors.New("provider unavailable")
)

// Session identifies a loaded on-track session
type Session struct {
	Key              int
	MeetingKey       int
	Year             int
	Name             string
	Type             models.SessionType
	Location         string
	CountryName      string
	CircuitShortName string
	Start            time.Time
}

// Lap is one timed lap of a driver. Duration is zero when the lap has no valid time.
type Lap struct {
	Number   int
	Start    time.Time
	Duration time.Duration
	PitOut   bool
}

// HasTime reports whether the lap has a recorded duration
func (l Lap) HasTime() bool {
	return l.Duration > 0
}

// RawSample is a telemetry sample as reported by the provider, speed in km/h
type RawSample struct {
	Date  time.Time
	Speed float64
	X     float64
	Y     float64
	Z     float64
}

// Result is the classification of a driver in a session
type Result struct {
	FullName     string
	Team         string
	GridPosition int // zero when the session has no starting grid
	Position     int // zero when unclassified
	Points       float64
}

// SessionProvider is the capability the fetcher needs from a data source
type SessionProvider interface {
	// GetSession resolves a session by year, race name and session type
	GetSession(ctx context.Context, year int, race string, sessionType models.SessionType) (*Session, error)

	// GetLaps returns the laps of a driver ordered by lap number
	GetLaps(ctx context.Context, session *Session, driverCode string) ([]Lap, error)

	// GetTelemetry returns the position and speed samples covering the given laps in temporal order
	GetTelemetry(ctx context.Context, session *Session, driverCode string, laps []Lap) ([]RawSample, error)

	// GetResult returns the driver's classification in the session
	GetResult(ctx context.Context, session *Session, driverCode string) (*Result, error)
}
