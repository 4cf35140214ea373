package telemetry

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sebasr/f1-telemetry-viewer/internal/models"
)

var snapshotHeader = []string{"Timestamp", "Speed", "X", "Y", "Z"}

// CSVSnapshot writes samples to a fixed CSV path, replacing the previous file
type CSVSnapshot struct {
	path string
}

// NewCSVSnapshot creates a snapshot writer for path
func NewCSVSnapshot(path string) *CSVSnapshot {
	return &CSVSnapshot{path: path}
}

// Path returns the file the snapshot is written to
func (s *CSVSnapshot) Path() string {
	return s.path
}

// Write implements SnapshotWriter. The file is written to a temporary name and
// renamed so readers never see a partial snapshot.
func (s *CSVSnapshot) Write(samples []models.TelemetrySample) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".telemetry-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(snapshotHeader); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot header: %w", err)
	}
	for _, sample := range samples {
		record := []string{
			strconv.FormatFloat(sample.Timestamp.Seconds(), 'f', 3, 64),
			strconv.FormatFloat(sample.Speed, 'f', -1, 64),
			strconv.FormatFloat(sample.X, 'f', -1, 64),
			strconv.FormatFloat(sample.Y, 'f', -1, 64),
			strconv.FormatFloat(sample.Z, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write snapshot row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}
