// Package models contains data models for the F1 telemetry viewer.
package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NotAvailable is displayed for lap fields the provider could not determine
const NotAvailable = "not available"

// SessionType identifies an on-track session within a race weekend
type SessionType string

// Supported session types
const (
	SessionRace       SessionType = "R"
	SessionQualifying SessionType = "Q"
	SessionPractice1  SessionType = "FP1"
	SessionPractice2  SessionType = "FP2"
	SessionPractice3  SessionType = "FP3"
)

// SessionTypes lists the session types in the order they are offered to users
var SessionTypes = []SessionType{
	SessionRace,
	SessionQualifying,
	SessionPractice1,
	SessionPractice2,
	SessionPractice3,
}

// ParseSessionType parses a session type case-insensitively
func ParseSessionType(s string) (SessionType, error) {
	st := SessionType(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range SessionTypes {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown session type %q", s)
}

// Name returns the long name of the session as used by timing data providers
func (s SessionType) Name() string {
	switch s {
	case SessionRace:
		return "Race"
	case SessionQualifying:
		return "Qualifying"
	case SessionPractice1:
		return "Practice 1"
	case SessionPractice2:
		return "Practice 2"
	case SessionPractice3:
		return "Practice 3"
	default:
		return string(s)
	}
}

// TelemetrySample is one recorded car state along a session.
// Speed is in meters per second; X, Y and Z are raw course position units.
type TelemetrySample struct {
	// Time elapsed since the first sample of the stream
	Timestamp time.Duration `json:"timestamp"`

	// Speed in m/s
	Speed float64 `json:"speed"`

	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// LapNumber is a lap number where the zero value means not available
type LapNumber int

// Valid reports whether the lap number is defined
func (n LapNumber) Valid() bool {
	return n > 0
}

// String implements fmt.Stringer
func (n LapNumber) String() string {
	if !n.Valid() {
		return NotAvailable
	}
	return strconv.Itoa(int(n))
}

// MarshalJSON encodes undefined lap numbers as the "not available" sentinel
func (n LapNumber) MarshalJSON() ([]byte, error) {
	if !n.Valid() {
		return json.Marshal(NotAvailable)
	}
	return json.Marshal(int(n))
}

// UnmarshalJSON accepts either a number or the "not available" sentinel
func (n *LapNumber) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = 0
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid lap number: %w", err)
	}
	*n = LapNumber(v)
	return nil
}

// RaceStats is the summary shown for a driver after a successful load
type RaceStats struct {
	Driver           string    `json:"driver"`
	Team             string    `json:"team"`
	GridPosition     int       `json:"gridPosition"`
	FinishPosition   int       `json:"finishPosition"`
	Points           float64   `json:"points"`
	FastestLapTime   string    `json:"fastestLapTime"`
	FastestLapNumber LapNumber `json:"fastestLapNumber"`
}

// AnimationFrame is one step of the path animation: the path prefix up to Index
type AnimationFrame struct {
	Index int               `json:"index"`
	Path  []TelemetrySample `json:"path"`
}

// Last returns the most recent point of the frame's path
func (f AnimationFrame) Last() TelemetrySample {
	if len(f.Path) == 0 {
		return TelemetrySample{}
	}
	return f.Path[len(f.Path)-1]
}
