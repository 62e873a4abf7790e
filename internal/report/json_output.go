package report

import (
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"datasetaudit/internal/stats"
	"datasetaudit/internal/validator"
)

// JSONOutput writes one JSON object per error record per line
type JSONOutput struct {
	writer io.Writer
	logger *zap.Logger
}

// NewJSONOutput creates a new JSONOutput instance
func NewJSONOutput(writer io.Writer, logger *zap.Logger) *JSONOutput {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JSONOutput{
		writer: writer,
		logger: logger,
	}
}

// WriteRecords writes every record of a recording as its own JSON line
func (jo *JSONOutput) WriteRecords(recording string, records []validator.ErrorRecord) error {
	for _, r := range records {
		if err := jo.writeLine(NewRecord(recording, r)); err != nil {
			return err
		}
	}

	jo.logger.Debug("output JSON records",
		zap.String("recording", recording),
		zap.Int("records", len(records)))
	return nil
}

// WriteSummary writes the run summary as a final JSON line
func (jo *JSONOutput) WriteSummary(summary stats.Summary) error {
	return jo.writeLine(struct {
		Summary        stats.Summary `json:"summary"`
		ElapsedSeconds float64       `json:"elapsed_seconds"`
	}{summary, summary.Elapsed.Seconds()})
}

// Close is a no-op, lines are written as they arrive
func (jo *JSONOutput) Close() error {
	jo.logger.Debug("closing JSON output")
	return nil
}

func (jo *JSONOutput) writeLine(v interface{}) error {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		jo.logger.Error("failed to marshal record to JSON", zap.Error(err))
		return fmt.Errorf("failed to marshal record to JSON: %w", err)
	}

	if _, err := fmt.Fprintf(jo.writer, "%s\n", jsonBytes); err != nil {
		jo.logger.Error("failed to write JSON output", zap.Error(err))
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	return nil
}
