package telemetry

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebasr/f1-telemetry-viewer/internal/models"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVSnapshot_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "telemetry.csv")
	snap := NewCSVSnapshot(path)
	assert.Equal(t, path, snap.Path())

	err := snap.Write([]models.TelemetrySample{
		{Timestamp: 0, Speed: 50, X: 1.5, Y: -2, Z: 0.25},
		{Timestamp: 1250 * time.Millisecond, Speed: 80.5, X: 3, Y: 4, Z: 0},
	})
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"Timestamp", "Speed", "X", "Y", "Z"},
		{"0.000", "50", "1.5", "-2", "0.25"},
		{"1.250", "80.5", "3", "4", "0"},
	}, readCSV(t, path))
}

func TestCSVSnapshot_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telemetry.csv")
	snap := NewCSVSnapshot(path)

	require.NoError(t, snap.Write([]models.TelemetrySample{{Speed: 1}, {Speed: 2}, {Speed: 3}}))
	require.NoError(t, snap.Write([]models.TelemetrySample{{Speed: 9}}))

	records := readCSV(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, "9", records[1][1])

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must be cleaned up")
}
