package report

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"datasetaudit/internal/stats"
	"datasetaudit/internal/validator"
)

type yamlRecording struct {
	Name   string   `yaml:"name"`
	Errors []Record `yaml:"errors"`
}

type yamlDocument struct {
	Recordings []yamlRecording `yaml:"recordings"`
	Summary    *stats.Summary  `yaml:"summary,omitempty"`
}

// YAMLOutput buffers the whole run and writes a single YAML document on Close
type YAMLOutput struct {
	writer   io.Writer
	logger   *zap.Logger
	document yamlDocument
}

// NewYAMLOutput creates a new YAMLOutput instance
func NewYAMLOutput(writer io.Writer, logger *zap.Logger) *YAMLOutput {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &YAMLOutput{
		writer: writer,
		logger: logger,
	}
}

// WriteRecords adds a recording and its records to the document
func (yo *YAMLOutput) WriteRecords(recording string, records []validator.ErrorRecord) error {
	entry := yamlRecording{Name: recording, Errors: make([]Record, 0, len(records))}
	for _, r := range records {
		entry.Errors = append(entry.Errors, NewRecord(recording, r))
	}
	yo.document.Recordings = append(yo.document.Recordings, entry)
	return nil
}

// WriteSummary attaches the run summary to the document
func (yo *YAMLOutput) WriteSummary(summary stats.Summary) error {
	yo.document.Summary = &summary
	return nil
}

// Close marshals and writes the buffered document
func (yo *YAMLOutput) Close() error {
	out, err := yaml.Marshal(yo.document)
	if err != nil {
		yo.logger.Error("failed to marshal YAML report", zap.Error(err))
		return fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	if _, err := yo.writer.Write(out); err != nil {
		yo.logger.Error("failed to write YAML report", zap.Error(err))
		return fmt.Errorf("failed to write YAML report: %w", err)
	}

	yo.logger.Debug("wrote YAML report",
		zap.Int("recordings", len(yo.document.Recordings)))
	return nil
}
