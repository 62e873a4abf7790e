package app

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"datasetaudit/internal/config"
	"datasetaudit/internal/dataset"
	"datasetaudit/internal/report"
	"datasetaudit/internal/stats"
	"datasetaudit/internal/validator"
)

// Application audits every recording of one dataset directory in sequence
type Application struct {
	config  *config.Configuration
	fs      afero.Fs
	logger  *zap.Logger
	auditor *validator.Auditor
	output  report.Output
	monitor *stats.Monitor
}

// NewApplication wires the auditor, report output and run statistics for cfg
func NewApplication(cfg *config.Configuration, fs afero.Fs, output report.Output, logger *zap.Logger) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if fs == nil {
		return nil, fmt.Errorf("filesystem cannot be nil")
	}
	if output == nil {
		return nil, fmt.Errorf("report output cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := cfg.Validate(fs); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Application{
		config:  cfg,
		fs:      fs,
		logger:  logger,
		auditor: validator.NewAuditor(fs, cfg.GetDatasetPath(), logger),
		output:  output,
		monitor: stats.NewMonitor(logger),
	}, nil
}

// Run discovers and audits all recordings, writing their records to the output.
// A recording that cannot be read is counted as failed and the run continues;
// the returned error combines all such failures. The summary is always written
// and the output closed, even when discovery fails.
func (app *Application) Run(ctx context.Context) (stats.Summary, error) {
	dir := app.config.GetDatasetPath()
	app.logger.Info("starting dataset audit", zap.String("path", dir))

	var runErr error

	// Discover recordings by their metadata files
	recordings, err := dataset.Discover(app.fs, dir)
	if err != nil {
		app.logger.Error("dataset discovery failed", zap.String("path", dir), zap.Error(err))
		runErr = multierr.Append(runErr, err)
	}
	app.monitor.RecordDiscovered(len(recordings))

	// Audit recordings one at a time, stopping between recordings on cancellation
	for _, recording := range recordings {
		if err := ctx.Err(); err != nil {
			app.logger.Info("audit interrupted", zap.String("next_recording", recording.Name))
			runErr = multierr.Append(runErr, fmt.Errorf("audit interrupted: %w", err))
			break
		}

		if err := app.auditOne(recording); err != nil {
			runErr = multierr.Append(runErr, err)
		}
	}

	// Report the run summary and flush the output
	summary := app.monitor.Summary()
	app.monitor.LogSummary()

	if err := app.output.WriteSummary(summary); err != nil {
		runErr = multierr.Append(runErr, err)
	}
	if err := app.output.Close(); err != nil {
		runErr = multierr.Append(runErr, err)
	}
	return summary, runErr
}

// auditOne pre-checks, audits and reports a single recording
func (app *Application) auditOne(recording dataset.Recording) error {
	// Skip recordings whose speaker or segment file is missing
	missing, err := dataset.MissingFiles(app.fs, recording, app.logger)
	if err != nil {
		app.monitor.RecordFailed()
		return err
	}
	if len(missing) > 0 {
		app.monitor.RecordSkipped()
		app.logger.Warn("skipping incomplete recording",
			zap.String("recording", recording.Name),
			zap.Strings("missing", missing))
		return nil
	}

	// Validate speakers, reference duration and segments
	records, err := app.auditor.AuditRecording(recording)
	if err != nil {
		app.monitor.RecordFailed()
		app.logger.Error("recording audit failed",
			zap.String("recording", recording.Name),
			zap.Error(err))
		return err
	}
	app.monitor.RecordAudited(records)

	if err := app.output.WriteRecords(recording.Name, records); err != nil {
		return fmt.Errorf("failed to report recording %s: %w", recording.Name, err)
	}
	return nil
}
