package validator

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"datasetaudit/internal/timecode"
	"datasetaudit/internal/tsv"
)

const (
	// Tolerance is the slack allowed past the reference duration by the bounds checks
	Tolerance = 500 * time.Millisecond
	// MultiSpeakerMarker marks a segment spoken by several speakers.
	// It is matched exactly, without case or whitespace normalization.
	MultiSpeakerMarker = "Group of Speakers"

	segmentColumns = 4
	rangeDelimiter = " - "

	rangeColumn    = 0
	durationColumn = 1
	speakerColumn  = 2
)

// ValidateSegments checks every row of a segment file against the reference
// duration and the speaker roster. An absent reference yields a single record
// and the file is not read.
func ValidateSegments(fs afero.Fs, path string, reference Reference, roster Roster, logger *zap.Logger) ([]ErrorRecord, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch reference.State {
	case ReferenceAbsent:
		record := ErrorRecord{
			FilePath: path,
			Line:     1,
			Kind:     KindNoReferenceDuration,
			FileType: FileTypeSegment,
		}
		logRecord(logger, record)
		return []ErrorRecord{record}, nil
	case ReferencePresent:
	default:
		return nil, fmt.Errorf("reference duration for %s is %s", path, reference.State)
	}

	rows, err := tsv.ReadRows(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read segment file: %w", err)
	}

	var records []ErrorRecord
	data := tsv.DataRows(rows)
	for i, row := range data {
		for _, record := range CheckSegmentRow(path, tsv.LineNumber(i), row, reference.Duration, roster) {
			logRecord(logger, record)
			records = append(records, record)
		}
	}

	logger.Debug("segment file checked",
		zap.String("filepath", path),
		zap.Int("rows", len(data)),
		zap.Int("errors", len(records)))

	return records, nil
}

// CheckSegmentRow returns every violation found in one segment row.
// When the time columns cannot be parsed only the format and time errors are
// reported, since the remaining checks need the parsed values.
func CheckSegmentRow(path string, line int, row []string, reference time.Duration, roster Roster) []ErrorRecord {
	var records []ErrorRecord
	add := func(kind Kind, detail string) {
		records = append(records, ErrorRecord{
			FilePath: path,
			Line:     line,
			Kind:     kind,
			FileType: FileTypeSegment,
			Detail:   detail,
		})
	}

	if len(row) != segmentColumns || row[len(row)-1] == "" {
		add(KindWrongLineFormat, fmt.Sprintf("expected %d columns with text, got %d", segmentColumns, len(row)))
	}

	start, end, duration, err := parseSegmentTimes(row)
	if err != nil {
		add(KindTimeFormat, err.Error())
		return records
	}

	limit := reference + Tolerance
	if end > limit {
		add(KindEndBeyondLength, fmt.Sprintf("%s > %s", timecode.FormatSegmentTime(end), timecode.FormatSegmentTime(reference)))
	}
	if start > limit {
		add(KindStartBeyondLength, fmt.Sprintf("%s > %s", timecode.FormatSegmentTime(start), timecode.FormatSegmentTime(reference)))
	}
	if start > end {
		add(KindStartAfterEnd, fmt.Sprintf("%s > %s", timecode.FormatSegmentTime(start), timecode.FormatSegmentTime(end)))
	}
	if diff := (end - start) - duration; diff != 0 {
		add(KindDurationMismatch, fmt.Sprintf("%s - %s != %s (diff: %gs)",
			timecode.FormatSegmentTime(end), timecode.FormatSegmentTime(start), timecode.FormatSegmentTime(duration), diff.Seconds()))
		records[len(records)-1].Diff = diff
	}

	speaker := ""
	if len(row) > speakerColumn {
		speaker = row[speakerColumn]
	}
	if speaker != MultiSpeakerMarker && !roster.Contains(speaker) {
		add(KindUnknownSpeaker, fmt.Sprintf("speaker %q not in speakers", speaker))
	}

	return records
}

// parseSegmentTimes reads the "start - end" range and the duration column
func parseSegmentTimes(row []string) (start, end, duration time.Duration, err error) {
	if len(row) <= durationColumn {
		return 0, 0, 0, fmt.Errorf("missing time columns")
	}

	bounds := strings.Split(row[rangeColumn], rangeDelimiter)
	if len(bounds) < 2 {
		return 0, 0, 0, fmt.Errorf("range %q has no %q delimiter", row[rangeColumn], rangeDelimiter)
	}

	if start, err = timecode.ParseSegmentTime(bounds[0]); err != nil {
		return 0, 0, 0, err
	}
	if end, err = timecode.ParseSegmentTime(bounds[1]); err != nil {
		return 0, 0, 0, err
	}
	if duration, err = timecode.ParseSegmentTime(row[durationColumn]); err != nil {
		return 0, 0, 0, err
	}
	return start, end, duration, nil
}
