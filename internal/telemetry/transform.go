package telemetry

import (
	"errors"

	"github.com/sebasr/f1-telemetry-viewer/internal/models"
)

// ErrInvalidStride is returned for a stride below one
var ErrInvalidStride = errors.New("stride must be at least 1")

// Transform re-bases X and Y so their minimum is zero, flattens Z and keeps every
// stride-th sample starting at index 0. The minimum is taken over the whole input
// before sampling. The input slice is left untouched.
func Transform(samples []models.TelemetrySample, stride int) ([]models.TelemetrySample, error) {
	if stride < 1 {
		return nil, ErrInvalidStride
	}
	if len(samples) == 0 {
		return []models.TelemetrySample{}, nil
	}

	minX, minY := samples[0].X, samples[0].Y
	for _, s := range samples[1:] {
		if s.X < minX {
			minX = s.X
		}
		if s.Y < minY {
			minY = s.Y
		}
	}

	out := make([]models.TelemetrySample, 0, (len(samples)+stride-1)/stride)
	for i := 0; i < len(samples); i += stride {
		s := samples[i]
		s.X -= minX
		s.Y -= minY
		s.Z = 0
		out = append(out, s)
	}
	return out, nil
}
