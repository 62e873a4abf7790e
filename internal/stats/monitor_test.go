package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"datasetaudit/internal/validator"
)

func TestMonitor(t *testing.T) {
	t.Run("should count recordings and records by kind", func(t *testing.T) {
		// Arrange
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		clock := start
		monitor := newMonitorWithClock(nil, func() time.Time { return clock })

		// Act
		monitor.RecordDiscovered(4)
		monitor.RecordAudited(nil)
		monitor.RecordAudited([]validator.ErrorRecord{
			{Kind: validator.KindUnknownSpeaker},
			{Kind: validator.KindUnknownSpeaker},
			{Kind: validator.KindDurationMismatch},
		})
		monitor.RecordSkipped()
		monitor.RecordFailed()
		clock = start.Add(3 * time.Second)
		summary := monitor.Summary()

		// Assert
		assert.Equal(t, 4, summary.Recordings)
		assert.Equal(t, 2, summary.Audited)
		assert.Equal(t, 1, summary.Clean)
		assert.Equal(t, 1, summary.Skipped)
		assert.Equal(t, 1, summary.Failed)
		assert.Equal(t, 3, summary.Errors)
		assert.Equal(t, map[validator.Kind]int{
			validator.KindUnknownSpeaker:   2,
			validator.KindDurationMismatch: 1,
		}, summary.ByKind)
		assert.Equal(t, 3*time.Second, summary.Elapsed)
	})

	t.Run("should return an independent copy", func(t *testing.T) {
		// Arrange
		monitor := NewMonitor(nil)
		monitor.RecordAudited([]validator.ErrorRecord{{Kind: validator.KindTimeFormat}})

		// Act
		summary := monitor.Summary()
		summary.ByKind[validator.KindTimeFormat] = 99

		// Assert
		assert.Equal(t, 1, monitor.Summary().ByKind[validator.KindTimeFormat])
	})

	t.Run("should log the summary", func(t *testing.T) {
		// Arrange
		core, logs := observer.New(zap.InfoLevel)
		monitor := NewMonitor(zap.New(core))
		monitor.RecordDiscovered(1)
		monitor.RecordAudited([]validator.ErrorRecord{{Kind: validator.KindStartAfterEnd}})

		// Act
		monitor.LogSummary()

		// Assert
		entries := logs.FilterMessage("audit run finished").All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, int64(1), fields["errors"])
		assert.Equal(t, int64(1), fields["start bigger than end"])
	})
}

func TestSummary_String(t *testing.T) {
	summary := Summary{
		Recordings: 3,
		Audited:    2,
		Clean:      1,
		Skipped:    1,
		Errors:     2,
		ByKind: map[validator.Kind]int{
			validator.KindWrongLineFormat: 2,
		},
	}

	output := summary.String()

	assert.Contains(t, output, "Recordings: 3 (2 audited, 1 clean, 1 skipped, 0 failed)")
	assert.Contains(t, output, "Error records: 2")
	assert.Contains(t, output, "wrong line format: 2")
	assert.NotContains(t, output, "duration mismatch")
}
