package validator

import (
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"datasetaudit/internal/tsv"
)

const (
	speakerColumns  = 8
	speakerIDColumn = 1
)

// Roster is the ordered list of speaker ids declared for a recording.
// Duplicates are kept.
type Roster []string

// Contains reports whether id is declared, compared by exact string equality
func (r Roster) Contains(id string) bool {
	for _, speaker := range r {
		if speaker == id {
			return true
		}
	}
	return false
}

// ValidateSpeakers checks the rows of a speaker file and collects its speaker ids.
// Ids are taken from malformed rows too whenever the id column exists.
func ValidateSpeakers(fs afero.Fs, path string, logger *zap.Logger) ([]ErrorRecord, Roster, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	rows, err := tsv.ReadRows(fs, path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read speaker file: %w", err)
	}

	var records []ErrorRecord
	roster := Roster{}
	for i, row := range tsv.DataRows(rows) {
		if len(row) != speakerColumns {
			record := ErrorRecord{
				FilePath: path,
				Line:     tsv.LineNumber(i),
				Kind:     KindWrongLineFormat,
				FileType: FileTypeSpeaker,
				Detail:   fmt.Sprintf("expected %d columns, got %d", speakerColumns, len(row)),
			}
			logRecord(logger, record)
			records = append(records, record)
		}

		if len(row) > speakerIDColumn {
			roster = append(roster, row[speakerIDColumn])
		}
	}

	logger.Debug("speaker file checked",
		zap.String("filepath", path),
		zap.Int("speakers", len(roster)),
		zap.Int("errors", len(records)))

	return records, roster, nil
}

func logRecord(logger *zap.Logger, record ErrorRecord) {
	logger.Warn(record.String(),
		zap.String("filepath", record.FilePath),
		zap.Int("line", record.Line),
		zap.String("type", string(record.FileType)),
		zap.String("error", string(record.Kind)))
}
