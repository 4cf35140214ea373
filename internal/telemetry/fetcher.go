package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/sebasr/f1-telemetry-viewer/internal/drivers"
	"github.com/sebasr/f1-telemetry-viewer/internal/models"
	"github.com/sebasr/f1-telemetry-viewer/internal/provider"
)

// kmhPerMs is the factor between the provider's km/h speeds and m/s
const kmhPerMs = 3.6

// KmhToMs converts a provider speed to meters per second
func KmhToMs(kmh float64) float64 {
	return kmh / kmhPerMs
}

// Dataset is the result of a successful fetch
type Dataset struct {
	Samples []models.TelemetrySample
	Stats   models.RaceStats
}

// SnapshotWriter persists the raw samples of a successful load
type SnapshotWriter interface {
	Write(samples []models.TelemetrySample) error
}

// Fetcher loads a driver's telemetry and race statistics from a SessionProvider
type Fetcher struct {
	provider provider.SessionProvider
	snapshot SnapshotWriter
	logger   *zap.Logger
}

// NewFetcher creates a new fetcher
func NewFetcher(p provider.SessionProvider, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		provider: p,
		logger:   logger.Named("fetcher"),
	}
}

// WithSnapshot configures a snapshot writer for successful loads
func (f *Fetcher) WithSnapshot(w SnapshotWriter) *Fetcher {
	f.snapshot = w
	return f
}

// Load resolves the driver surname and fetches the data. Failures are logged here
// and returned as *LoadError.
func (f *Fetcher) Load(ctx context.Context, year int, race string, sessionType models.SessionType, driverName string) (*Dataset, error) {
	log := f.logger.With(
		zap.Int("year", year),
		zap.String("race", race),
		zap.String("session", string(sessionType)),
		zap.String("driver", driverName))

	code, err := drivers.Resolve(driverName)
	if err != nil {
		lerr := newLoadError(KindDriverNotFound, err, "driver %q not found", driverName)
		log.Warn("load failed", zap.String("kind", string(lerr.Kind)), zap.Error(lerr))
		return nil, lerr
	}

	start := time.Now()
	ds, err := f.Fetch(ctx, year, race, sessionType, code)
	if err != nil {
		log.Error("load failed", zap.String("kind", string(KindOf(err))), zap.Error(err))
		return nil, err
	}

	log.Info("telemetry loaded",
		zap.String("code", code),
		zap.Int("samples", len(ds.Samples)),
		zap.Duration("elapsed", time.Since(start)))
	return ds, nil
}

// Fetch loads samples and statistics for a driver code. Either both are returned
// or a *LoadError is.
func (f *Fetcher) Fetch(ctx context.Context, year int, race string, sessionType models.SessionType, driverCode string) (*Dataset, error) {
	session, err := f.provider.GetSession(ctx, year, race, sessionType)
	if err != nil {
		return nil, newLoadError(KindSessionLoadError, err, "loading %d %s %s", year, race, sessionType)
	}

	laps, err := f.provider.GetLaps(ctx, session, driverCode)
	if err != nil {
		return nil, driverError(err, "laps", driverCode)
	}
	if len(laps) == 0 {
		return nil, newLoadError(KindNoResultsForDriver, nil, "no laps for %s", driverCode)
	}

	raw, err := f.provider.GetTelemetry(ctx, session, driverCode, laps)
	if err != nil {
		return nil, driverError(err, "telemetry", driverCode)
	}
	if len(raw) == 0 {
		return nil, newLoadError(KindEmptyTelemetry, nil, "no telemetry samples for %s", driverCode)
	}

	result, err := f.provider.GetResult(ctx, session, driverCode)
	if err != nil {
		return nil, driverError(err, "results", driverCode)
	}

	samples := toSamples(raw)
	lapTime, lapNumber := fastestLap(laps)

	ds := &Dataset{
		Samples: samples,
		Stats: models.RaceStats{
			Driver:           result.FullName,
			Team:             result.Team,
			GridPosition:     result.GridPosition,
			FinishPosition:   result.Position,
			Points:           result.Points,
			FastestLapTime:   lapTime,
			FastestLapNumber: lapNumber,
		},
	}

	if f.snapshot != nil {
		if err := f.snapshot.Write(samples); err != nil {
			f.logger.Warn("snapshot write failed", zap.Error(err))
		}
	}

	return ds, nil
}

// LoadTelemetryData is the simple form of Load: it returns (nil, nil) on any
// failure, having logged the cause.
func LoadTelemetryData(ctx context.Context, f *Fetcher, year int, race string, sessionType models.SessionType, driverName string) ([]models.TelemetrySample, *models.RaceStats) {
	ds, err := f.Load(ctx, year, race, sessionType, driverName)
	if err != nil {
		return nil, nil
	}
	return ds.Samples, &ds.Stats
}

// FormatLapTime renders a lap duration as MM:SS.mmm
func FormatLapTime(d time.Duration) string {
	if d <= 0 {
		return models.NotAvailable
	}
	ms := d.Milliseconds()
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	millis := ms % 1000
	return fmt.Sprintf("%02d:%02d.%03d", minutes, seconds, millis)
}

func driverError(err error, what, code string) *LoadError {
	if errors.Is(err, provider.ErrDriverNotInSession) || errors.Is(err, provider.ErrNoResult) {
		return newLoadError(KindNoResultsForDriver, err, "no %s for %s", what, code)
	}
	return newLoadError(KindSessionLoadError, err, "loading %s for %s", what, code)
}

func toSamples(raw []provider.RawSample) []models.TelemetrySample {
	origin := raw[0].Date
	return lo.Map(raw, func(r provider.RawSample, _ int) models.TelemetrySample {
		return models.TelemetrySample{
			Timestamp: r.Date.Sub(origin),
			Speed:     KmhToMs(r.Speed),
			X:         r.X,
			Y:         r.Y,
			Z:         r.Z,
		}
	})
}

// fastestLap returns the formatted time and number of the quickest timed lap
func fastestLap(laps []provider.Lap) (string, models.LapNumber) {
	timed := lo.Filter(laps, func(l provider.Lap, _ int) bool { return l.HasTime() })
	if len(timed) == 0 {
		return models.NotAvailable, 0
	}
	best := lo.MinBy(timed, func(a, b provider.Lap) bool { return a.Duration < b.Duration })
	return FormatLapTime(best.Duration), models.LapNumber(best.Number)
}
