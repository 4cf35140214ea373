// Package cli implements the f1telemetry command.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sebasr/f1-telemetry-viewer/internal/app"
	"github.com/sebasr/f1-telemetry-viewer/internal/config"
	"github.com/sebasr/f1-telemetry-viewer/internal/logging"
	"github.com/sebasr/f1-telemetry-viewer/internal/models"
	"github.com/sebasr/f1-telemetry-viewer/internal/view"
)

type options struct {
	year     int
	race     string
	session  string
	driver   string
	stride   int
	snapshot string
}

// NewRootCmd creates the f1telemetry command
func NewRootCmd() *cobra.Command {
	defaults := models.DefaultLoadRequest()
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "f1telemetry",
		Short: "Load a driver's session telemetry and print the race summary",
		Long: `Loads telemetry for one driver in one session from OpenF1, prints the race
summary and the size of the animation that would be built from it.
Provider and cache settings are read from the same environment as the server.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().IntVar(&opts.year, "year", defaults.Year, "Season year")
	cmd.Flags().StringVar(&opts.race, "race", defaults.Race, "Race name, e.g. Monza")
	cmd.Flags().StringVar(&opts.session, "session", string(defaults.Session), "Session type: R, Q, FP1, FP2 or FP3")
	cmd.Flags().StringVar(&opts.driver, "driver", defaults.Driver, "Driver last name")
	cmd.Flags().IntVar(&opts.stride, "stride", defaults.Stride, "Keep every n-th sample (10-200, step 10)")
	cmd.Flags().StringVar(&opts.snapshot, "snapshot", "", "CSV snapshot path (overrides SNAPSHOT_PATH, \"-\" disables it)")

	return cmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, opts *options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	switch opts.snapshot {
	case "":
	case "-":
		cfg.Snapshot.Enabled = false
	default:
		cfg.Snapshot.Enabled = true
		cfg.Snapshot.Path = opts.snapshot
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("closing provider cache", zap.Error(err))
		}
	}()

	req := models.LoadRequest{
		Year:    opts.year,
		Race:    opts.race,
		Session: models.SessionType(opts.session),
		Driver:  opts.driver,
		Stride:  opts.stride,
	}
	outcome := view.NewPipeline(a.Fetcher, cfg.Viewer.FrameDuration, logger).Load(ctx, req)
	if !outcome.OK() {
		return fmt.Errorf("%s (%s)", view.ErrorMessage, outcome.Kind())
	}

	snapshotPath := ""
	if a.Snapshot != nil {
		snapshotPath = a.Snapshot.Path()
	}
	Render(out, outcome, snapshotPath)
	return nil
}

// Render prints the race summary table for a successful outcome
func Render(out io.Writer, outcome *view.Outcome, snapshotPath string) {
	stats := outcome.Stats

	fmt.Fprintln(out, outcome.Heading())

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	t.AppendRows([]table.Row{
		{"Driver", stats.Driver},
		{"Team", stats.Team},
		{"Grid Position", stats.GridPosition},
		{"Finish Position", stats.FinishPosition},
		{"Points", stats.Points},
		{"Fastest Lap", fmt.Sprintf("%s (Lap %s)", stats.FastestLapTime, stats.FastestLapNumber)},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Samples", humanize.Comma(int64(outcome.RawSamples))},
		{"Path points", humanize.Comma(int64(len(outcome.Path)))},
		{"Frames", humanize.Comma(int64(len(outcome.Frames)))},
	})
	if snapshotPath != "" {
		t.AppendRow(table.Row{"Snapshot", snapshotInfo(snapshotPath)})
	}
	t.Render()
}

func snapshotInfo(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return path + " (not written)"
	}
	return fmt.Sprintf("%s (%s)", path, humanize.Bytes(uint64(info.Size())))
}
