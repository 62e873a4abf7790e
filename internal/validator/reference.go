package validator

import (
	"fmt"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"datasetaudit/internal/timecode"
	"datasetaudit/internal/tsv"
)

const (
	metaDurationRow    = 1
	metaDurationColumn = 2
)

// ReferenceState distinguishes a resolved duration from a missing one
type ReferenceState int

const (
	// ReferenceUnresolved means the metadata file has not been read yet
	ReferenceUnresolved ReferenceState = iota
	// ReferenceAbsent means the metadata file holds no usable duration
	ReferenceAbsent
	// ReferencePresent means Duration holds the recording length
	ReferencePresent
)

// String returns the state name
func (s ReferenceState) String() string {
	switch s {
	case ReferenceAbsent:
		return "absent"
	case ReferencePresent:
		return "present"
	default:
		return "unresolved"
	}
}

// Reference is the authoritative length of a recording
type Reference struct {
	State    ReferenceState
	Duration time.Duration
}

// PresentReference returns a resolved reference of length d
func PresentReference(d time.Duration) Reference {
	return Reference{State: ReferencePresent, Duration: d}
}

// AbsentReference returns a reference whose metadata duration could not be read
func AbsentReference() Reference {
	return Reference{State: ReferenceAbsent}
}

// ResolveReference reads the recording length from row 2, column 3 of a metadata file.
// An unusable value is logged and yields an absent reference, not an error.
func ResolveReference(fs afero.Fs, path string, logger *zap.Logger) (Reference, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	rows, err := tsv.ReadRows(fs, path)
	if err != nil {
		return Reference{}, fmt.Errorf("failed to read metadata file: %w", err)
	}

	if len(rows) <= metaDurationRow || len(rows[metaDurationRow]) <= metaDurationColumn {
		logger.Warn("Wrong duration format",
			zap.String("filepath", path),
			zap.String("reason", "duration cell missing"))
		return AbsentReference(), nil
	}

	value := rows[metaDurationRow][metaDurationColumn]
	d, err := timecode.ParseMetaDuration(value)
	if err != nil {
		logger.Warn("Wrong duration format",
			zap.String("filepath", path),
			zap.String("duration", value),
			zap.Error(err))
		return AbsentReference(), nil
	}

	logger.Debug("reference duration resolved",
		zap.String("filepath", path),
		zap.Duration("duration", d))
	return PresentReference(d), nil
}
