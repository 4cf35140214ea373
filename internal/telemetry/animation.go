package telemetry

import "github.com/sebasr/f1-telemetry-viewer/internal/models"

// BuildFrames returns one frame per sample index from 1 to N-1. Frame i holds the
// path prefix [0..i] with Z forced to 0. Index 0 gets no frame; the starting
// marker is drawn separately.
func BuildFrames(samples []models.TelemetrySample) []models.AnimationFrame {
	if len(samples) < 2 {
		return []models.AnimationFrame{}
	}

	// frames share one flattened backing path
	flat := make([]models.TelemetrySample, len(samples))
	copy(flat, samples)
	for i := range flat {
		flat[i].Z = 0
	}

	frames := make([]models.AnimationFrame, 0, len(samples)-1)
	for i := 1; i < len(flat); i++ {
		frames = append(frames, models.AnimationFrame{
			Index: i,
			Path:  flat[: i+1 : i+1],
		})
	}
	return frames
}
