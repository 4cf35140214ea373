package telemetry

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebasr/f1-telemetry-viewer/internal/models"
)

func track(n int) []models.TelemetrySample {
	out := make([]models.TelemetrySample, n)
	for i := range out {
		out[i] = models.TelemetrySample{
			Timestamp: time.Duration(i) * 100 * time.Millisecond,
			Speed:     float64(i),
			X:         float64(i*3) - 500,
			Y:         2000 - float64(i*2),
			Z:         float64(i % 7),
		}
	}
	return out
}

func TestTransform(t *testing.T) {
	samples := []models.TelemetrySample{
		{Speed: 10, X: 5, Y: -3, Z: 4},
		{Speed: 11, X: 2, Y: 7, Z: 9},
		{Speed: 12, X: 9, Y: -10, Z: 1},
		{Speed: 13, X: -1, Y: 0, Z: 2},
	}

	t.Run("stride one rebases every sample", func(t *testing.T) {
		got, err := Transform(samples, 1)
		require.NoError(t, err)

		want := []models.TelemetrySample{
			{Speed: 10, X: 6, Y: 7},
			{Speed: 11, X: 3, Y: 17},
			{Speed: 12, X: 10, Y: 0},
			{Speed: 13, X: 0, Y: 10},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Transform() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("minimum is taken before sampling", func(t *testing.T) {
		got, err := Transform(samples, 3)
		require.NoError(t, err)

		// index 2 holds the Y minimum and index 3 the X minimum; neither is kept
		want := []models.TelemetrySample{
			{Speed: 10, X: 6, Y: 7},
			{Speed: 13, X: 0, Y: 10},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Transform() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("input is not mutated", func(t *testing.T) {
		before := append([]models.TelemetrySample(nil), samples...)
		_, err := Transform(samples, 2)
		require.NoError(t, err)
		assert.Equal(t, before, samples)
	})

	t.Run("empty input", func(t *testing.T) {
		got, err := Transform(nil, 5)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("single sample", func(t *testing.T) {
		got, err := Transform(samples[:1], 50)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 0.0, got[0].X)
		assert.Equal(t, 0.0, got[0].Y)
		assert.Equal(t, 0.0, got[0].Z)
	})

	t.Run("invalid stride", func(t *testing.T) {
		for _, stride := range []int{0, -1} {
			_, err := Transform(samples, stride)
			assert.ErrorIs(t, err, ErrInvalidStride)
		}
	})
}

func TestTransform_Properties(t *testing.T) {
	input := track(1000)

	for _, stride := range []int{1, 7, 10, 50, 200, 1000, 2000} {
		got, err := Transform(input, stride)
		require.NoError(t, err)

		assert.Len(t, got, (len(input)+stride-1)/stride, "stride %d", stride)
		for k, s := range got {
			assert.GreaterOrEqual(t, s.X, 0.0)
			assert.GreaterOrEqual(t, s.Y, 0.0)
			assert.Zero(t, s.Z)
			assert.Equal(t, input[k*stride].Timestamp, s.Timestamp)
			assert.Equal(t, input[k*stride].Speed, s.Speed)
		}
	}
}

func TestBuildFrames(t *testing.T) {
	path, err := Transform(track(60), 10)
	require.NoError(t, err)
	require.Len(t, path, 6)

	frames := BuildFrames(path)
	require.Len(t, frames, 5)

	for k, frame := range frames {
		assert.Equal(t, k+1, frame.Index)
		assert.Len(t, frame.Path, k+2)
		assert.Equal(t, path[k+1], frame.Last())
		for j, p := range frame.Path {
			assert.Equal(t, path[j].X, p.X)
			assert.Equal(t, path[j].Y, p.Y)
			assert.Zero(t, p.Z)
		}
	}
}

func TestBuildFrames_ForcesZ(t *testing.T) {
	samples := []models.TelemetrySample{{X: 1, Z: 3}, {X: 2, Z: 4}}
	frames := BuildFrames(samples)

	require.Len(t, frames, 1)
	assert.Zero(t, frames[0].Path[0].Z)
	assert.Zero(t, frames[0].Path[1].Z)
	assert.Equal(t, 3.0, samples[0].Z, "input must not be modified")
}

func TestBuildFrames_FramesAreIndependent(t *testing.T) {
	frames := BuildFrames(track(4))
	require.Len(t, frames, 3)

	extended := append(frames[0].Path, models.TelemetrySample{X: -99})
	assert.Len(t, extended, 3)
	assert.NotEqual(t, -99.0, frames[1].Path[2].X)
}

func TestBuildFrames_Short(t *testing.T) {
	assert.Empty(t, BuildFrames(nil))
	assert.Empty(t, BuildFrames(track(1)))
}
