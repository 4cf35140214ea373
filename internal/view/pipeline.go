package view

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sebasr/f1-telemetry-viewer/internal/models"
	"github.com/sebasr/f1-telemetry-viewer/internal/plot"
	"github.com/sebasr/f1-telemetry-viewer/internal/telemetry"
)

// ErrorMessage is the only failure text shown to users
const ErrorMessage = "Error loading data."

// ErrInvalidRequest wraps LoadRequest validation failures
var ErrInvalidRequest = errors.New("invalid request")

// Loader resolves a driver and fetches the session data
type Loader interface {
	Load(ctx context.Context, year int, race string, sessionType models.SessionType, driverName string) (*telemetry.Dataset, error)
}

// Outcome is the result of one load. On failure only Request, Err and LoadedAt are set.
type Outcome struct {
	Request    models.LoadRequest
	Stats      *models.RaceStats
	RawSamples int
	Path       []models.TelemetrySample
	Frames     []models.AnimationFrame
	Figure     *plot.Figure
	Err        error
	LoadedAt   time.Time
}

// OK reports whether the load succeeded
func (o *Outcome) OK() bool {
	return o != nil && o.Err == nil
}

// Kind returns the failure kind, or an empty string on success
func (o *Outcome) Kind() string {
	if o == nil || o.Err == nil {
		return ""
	}
	if errors.Is(o.Err, ErrInvalidRequest) {
		return "InvalidRequest"
	}
	return string(telemetry.KindOf(o.Err))
}

// Heading returns the summary title, e.g. "Race Summary: Verstappen in Monza 2024"
func (o *Outcome) Heading() string {
	caser := cases.Title(language.English)
	return fmt.Sprintf("Race Summary: %s in %s %d",
		caser.String(o.Request.Driver), caser.String(o.Request.Race), o.Request.Year)
}

// Rejected builds the outcome of a request that could not be parsed
func Rejected(req models.LoadRequest, err error) *Outcome {
	return &Outcome{
		Request:  req,
		Err:      fmt.Errorf("%w: %w", ErrInvalidRequest, err),
		LoadedAt: time.Now(),
	}
}

// Pipeline runs resolve, fetch, transform and frame building for a request
type Pipeline struct {
	loader        Loader
	frameDuration time.Duration
	logger        *zap.Logger
	now           func() time.Time
}

// NewPipeline creates a pipeline
func NewPipeline(loader Loader, frameDuration time.Duration, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		loader:        loader,
		frameDuration: frameDuration,
		logger:        logger.Named("pipeline"),
		now:           time.Now,
	}
}

// Load runs synchronously and always returns an outcome
func (p *Pipeline) Load(ctx context.Context, req models.LoadRequest) *Outcome {
	out := &Outcome{Request: req, LoadedAt: p.now()}

	if err := req.Validate(); err != nil {
		out.Err = fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		return out
	}
	out.Request = req

	ds, err := p.loader.Load(ctx, req.Year, req.Race, req.Session, req.Driver)
	if err != nil {
		out.Err = err
		return out
	}

	path, err := telemetry.Transform(ds.Samples, req.Stride)
	if err != nil {
		out.Err = fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		return out
	}
	frames := telemetry.BuildFrames(path)

	stats := ds.Stats
	out.Stats = &stats
	out.RawSamples = len(ds.Samples)
	out.Path = path
	out.Frames = frames
	out.Figure = plot.NewFigure(path, frames, p.frameDuration)

	p.logger.Debug("outcome built",
		zap.Int("samples", out.RawSamples),
		zap.Int("path", len(path)),
		zap.Int("frames", len(frames)))
	return out
}
