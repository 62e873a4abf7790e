package report

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"datasetaudit/internal/stats"
	"datasetaudit/internal/validator"
)

// TextOutput prints one console line per record
type TextOutput struct {
	writer io.Writer
	logger *zap.Logger
}

// NewTextOutput creates a new TextOutput instance
func NewTextOutput(writer io.Writer, logger *zap.Logger) *TextOutput {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TextOutput{
		writer: writer,
		logger: logger,
	}
}

// WriteRecords prints the records of a recording
func (to *TextOutput) WriteRecords(recording string, records []validator.ErrorRecord) error {
	for _, r := range records {
		if _, err := fmt.Fprintln(to.writer, r.String()); err != nil {
			to.logger.Error("failed to write text record", zap.String("recording", recording), zap.Error(err))
			return fmt.Errorf("failed to write text output: %w", err)
		}
	}
	return nil
}

// WriteSummary prints the summary block
func (to *TextOutput) WriteSummary(summary stats.Summary) error {
	if _, err := fmt.Fprint(to.writer, summary.String()); err != nil {
		to.logger.Error("failed to write text summary", zap.Error(err))
		return fmt.Errorf("failed to write text output: %w", err)
	}
	return nil
}

// Close is a no-op
func (to *TextOutput) Close() error {
	return nil
}
