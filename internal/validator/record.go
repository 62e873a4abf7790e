// Package validator checks the consistency of a recording's metadata, speaker and segment files.
package validator

import (
	"fmt"
	"time"
)

// FileType tags the file an ErrorRecord was found in
type FileType string

const (
	FileTypeSegment FileType = "name_tsv"
	FileTypeSpeaker FileType = "speaker_tsv"
)

// Kind is one entry of the fixed error taxonomy
type Kind string

const (
	KindWrongLineFormat     Kind = "wrong line format"
	KindTimeFormat          Kind = "error while parsing time format, time format error"
	KindEndBeyondLength     Kind = "end bigger than file length"
	KindStartBeyondLength   Kind = "start bigger than file length"
	KindStartAfterEnd       Kind = "start bigger than end"
	KindDurationMismatch    Kind = "duration mismatch"
	KindUnknownSpeaker      Kind = "speaker not in speakers"
	KindNoReferenceDuration Kind = "No len from meta.tsv"
)

// Kinds lists the taxonomy in reporting order
var Kinds = []Kind{
	KindWrongLineFormat,
	KindTimeFormat,
	KindEndBeyondLength,
	KindStartBeyondLength,
	KindStartAfterEnd,
	KindDurationMismatch,
	KindUnknownSpeaker,
	KindNoReferenceDuration,
}

// ErrorRecord is a single consistency violation
type ErrorRecord struct {
	FilePath string
	Line     int
	Kind     Kind
	FileType FileType
	// Detail is the operator facing diagnostic for this violation
	Detail string
	// Diff is (end-start)-duration, set for duration mismatches only
	Diff time.Duration
}

// String renders the record the way it is printed on the console
func (r ErrorRecord) String() string {
	if r.Detail == "" {
		return fmt.Sprintf("%s.%d: %s %s", r.FilePath, r.Line, r.FileType, r.Kind)
	}
	return fmt.Sprintf("%s.%d: %s %s: %s", r.FilePath, r.Line, r.FileType, r.Kind, r.Detail)
}
