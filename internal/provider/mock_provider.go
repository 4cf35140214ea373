package provider

import (
	"context"
	"sync/atomic"

	"github.com/sebasr/f1-telemetry-viewer/internal/models"
)

// MockProvider is a mock implementation of SessionProvider for testing
type MockProvider struct {
	GetSessionFunc   func(ctx context.Context, year int, race string, sessionType models.SessionType) (*Session, error)
	GetLapsFunc      func(ctx context.Context, session *Session, driverCode string) ([]Lap, error)
	GetTelemetryFunc func(ctx context.Context, session *Session, driverCode string, laps []Lap) ([]RawSample, error)
	GetResultFunc    func(ctx context.Context, session *Session, driverCode string) (*Result, error)

	calls atomic.Int64
}

// NewMockProvider creates a mock provider where every call succeeds with empty data
func NewMockProvider() *MockProvider {
	return &MockProvider{
		GetSessionFunc: func(_ context.Context, year int, race string, sessionType models.SessionType) (*Session, error) {
			return &Session{Key: 1, Year: year, Name: sessionType.Name(), Type: sessionType, Location: race}, nil
		},
		GetLapsFunc: func(_ context.Context, _ *Session, _ string) ([]Lap, error) {
			return []Lap{}, nil
		},
		GetTelemetryFunc: func(_ context.Context, _ *Session, _ string, _ []Lap) ([]RawSample, error) {
			return []RawSample{}, nil
		},
		GetResultFunc: func(_ context.Context, _ *Session, _ string) (*Result, error) {
			return &Result{}, nil
		},
	}
}

// Calls returns how many provider methods have been invoked
func (m *MockProvider) Calls() int {
	return int(m.calls.Load())
}

// GetSession implements SessionProvider.GetSession
func (m *MockProvider) GetSession(ctx context.Context, year int, race string, sessionType models.SessionType) (*Session, error) {
	m.calls.Add(1)
	return m.GetSessionFunc(ctx, year, race, sessionType)
}

// GetLaps implements SessionProvider.GetLaps
func (m *MockProvider) GetLaps(ctx context.Context, session *Session, driverCode string) ([]Lap, error) {
	m.calls.Add(1)
	return m.GetLapsFunc(ctx, session, driverCode)
}

// GetTelemetry implements SessionProvider.GetTelemetry
func (m *MockProvider) GetTelemetry(ctx context.Context, session *Session, driverCode string, laps []Lap) ([]RawSample, error) {
	m.calls.Add(1)
	return m.GetTelemetryFunc(ctx, session, driverCode, laps)
}

// GetResult implements SessionProvider.GetResult
func (m *MockProvider) GetResult(ctx context.Context, session *Session, driverCode string) (*Result, error) {
	m.calls.Add(1)
	return m.GetResultFunc(ctx, session, driverCode)
}
