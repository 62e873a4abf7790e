// Package stats tracks the outcome of an audit run.
package stats

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"datasetaudit/internal/validator"
)

// Summary is a snapshot of run counters
type Summary struct {
	Recordings int                    `json:"recordings" yaml:"recordings"`
	Audited    int                    `json:"audited" yaml:"audited"`
	Clean      int                    `json:"clean" yaml:"clean"`
	Skipped    int                    `json:"skipped" yaml:"skipped"`
	Failed     int                    `json:"failed" yaml:"failed"`
	Errors     int                    `json:"errors" yaml:"errors"`
	ByKind     map[validator.Kind]int `json:"by_kind" yaml:"by_kind"`
	Elapsed    time.Duration          `json:"-" yaml:"-"`
}

// Monitor accumulates per-recording outcomes of a single sequential run
type Monitor struct {
	logger  *zap.Logger
	now     func() time.Time
	started time.Time
	summary Summary
}

// NewMonitor creates a monitor and starts its clock
func NewMonitor(logger *zap.Logger) *Monitor {
	return newMonitorWithClock(logger, time.Now)
}

func newMonitorWithClock(logger *zap.Logger, now func() time.Time) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		logger:  logger,
		now:     now,
		started: now(),
		summary: Summary{ByKind: make(map[validator.Kind]int)},
	}
}

// RecordDiscovered adds n recordings found in the dataset directory
func (m *Monitor) RecordDiscovered(n int) {
	m.summary.Recordings += n
}

// RecordSkipped counts a recording skipped because of missing files
func (m *Monitor) RecordSkipped() {
	m.summary.Skipped++
}

// RecordFailed counts a recording whose audit aborted with an error
func (m *Monitor) RecordFailed() {
	m.summary.Failed++
}

// RecordAudited counts an audited recording and its error records
func (m *Monitor) RecordAudited(records []validator.ErrorRecord) {
	m.summary.Audited++
	if len(records) == 0 {
		m.summary.Clean++
	}
	m.summary.Errors += len(records)
	for _, r := range records {
		m.summary.ByKind[r.Kind]++
	}
}

// Summary returns a copy of the current counters
func (m *Monitor) Summary() Summary {
	s := m.summary
	s.ByKind = make(map[validator.Kind]int, len(m.summary.ByKind))
	for kind, n := range m.summary.ByKind {
		s.ByKind[kind] = n
	}
	s.Elapsed = m.now().Sub(m.started)
	return s
}

// LogSummary logs the current counters
func (m *Monitor) LogSummary() {
	s := m.Summary()
	fields := []zap.Field{
		zap.Int("recordings", s.Recordings),
		zap.Int("audited", s.Audited),
		zap.Int("clean", s.Clean),
		zap.Int("skipped", s.Skipped),
		zap.Int("failed", s.Failed),
		zap.Int("errors", s.Errors),
		zap.Duration("elapsed", s.Elapsed),
	}
	for _, kind := range validator.Kinds {
		if n := s.ByKind[kind]; n > 0 {
			fields = append(fields, zap.Int(string(kind), n))
		}
	}
	m.logger.Info("audit run finished", fields...)
}

// String formats the summary for the console
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Audit Summary:\n")
	fmt.Fprintf(&b, "  Recordings: %d (%d audited, %d clean, %d skipped, %d failed)\n",
		s.Recordings, s.Audited, s.Clean, s.Skipped, s.Failed)
	fmt.Fprintf(&b, "  Error records: %d\n", s.Errors)
	for _, kind := range validator.Kinds {
		if n := s.ByKind[kind]; n > 0 {
			fmt.Fprintf(&b, "    %s: %d\n", kind, n)
		}
	}
	return b.String()
}
