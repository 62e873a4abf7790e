package validator

import (
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"datasetaudit/internal/dataset"
)

// Auditor validates the file triples of one dataset directory
type Auditor struct {
	fs     afero.Fs
	dir    string
	logger *zap.Logger
}

// NewAuditor creates an Auditor reading recordings of dir from fs
func NewAuditor(fs afero.Fs, dir string, logger *zap.Logger) *Auditor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auditor{
		fs:     fs,
		dir:    dir,
		logger: logger,
	}
}

// Audit validates the recording with the given base name.
// Speaker errors come first, followed by segment errors.
func (a *Auditor) Audit(name string) ([]ErrorRecord, error) {
	return a.AuditRecording(dataset.Recording{Dir: a.dir, Name: name})
}

// AuditRecording validates one recording's speaker, metadata and segment files in that order
func (a *Auditor) AuditRecording(recording dataset.Recording) ([]ErrorRecord, error) {
	logger := a.logger.With(zap.String("recording", recording.Name))

	speakerErrors, roster, err := ValidateSpeakers(a.fs, recording.SpeakerPath(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to audit recording %s: %w", recording.Name, err)
	}

	reference, err := ResolveReference(a.fs, recording.MetaPath(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to audit recording %s: %w", recording.Name, err)
	}

	segmentErrors, err := ValidateSegments(a.fs, recording.SegmentPath(), reference, roster, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to audit recording %s: %w", recording.Name, err)
	}

	records := make([]ErrorRecord, 0, len(speakerErrors)+len(segmentErrors))
	records = append(records, speakerErrors...)
	records = append(records, segmentErrors...)

	logger.Info("recording audited",
		zap.Int("speaker_errors", len(speakerErrors)),
		zap.Int("segment_errors", len(segmentErrors)),
		zap.String("reference", reference.State.String()))

	return records, nil
}
