// Package report writes audit results in text, JSON-lines or YAML form.
package report

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"datasetaudit/internal/stats"
	"datasetaudit/internal/validator"
)

// Output receives the error records of each audited recording and the run summary
type Output interface {
	WriteRecords(recording string, records []validator.ErrorRecord) error
	WriteSummary(summary stats.Summary) error
	Close() error
}

// Record is the serialized form of an ErrorRecord
type Record struct {
	Recording   string  `json:"recording" yaml:"-"`
	FilePath    string  `json:"filepath" yaml:"filepath"`
	Line        int     `json:"line" yaml:"line"`
	Error       string  `json:"error" yaml:"error"`
	Type        string  `json:"type" yaml:"type"`
	Detail      string  `json:"detail,omitempty" yaml:"detail,omitempty"`
	DiffSeconds float64 `json:"diff_seconds,omitempty" yaml:"diff_seconds,omitempty"`
}

// NewRecord converts an ErrorRecord of the named recording
func NewRecord(recording string, r validator.ErrorRecord) Record {
	return Record{
		Recording:   recording,
		FilePath:    r.FilePath,
		Line:        r.Line,
		Error:       string(r.Kind),
		Type:        string(r.FileType),
		Detail:      r.Detail,
		DiffSeconds: r.Diff.Seconds(),
	}
}

// NewOutput returns the Output for format writing to w
func NewOutput(format string, w io.Writer, logger *zap.Logger) (Output, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch format {
	case "text":
		return NewTextOutput(w, logger), nil
	case "json":
		return NewJSONOutput(w, logger), nil
	case "yaml":
		return NewYAMLOutput(w, logger), nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}
