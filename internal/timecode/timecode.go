// Package timecode parses the timestamp formats used by recording dataset files.
package timecode

import (
	"fmt"
	"strings"
	"time"
)

const (
	// SegmentLayout is the HH:MM:SS:FF layout used by segment rows
	SegmentLayout = "HH:MM:SS:FF"
	// MetaLayout is the HH:MM:SS layout used by metadata duration cells
	MetaLayout = "HH:MM:SS"
)

// fractionPad is appended to the FF field before it is read as microseconds
const (
	fractionPad       = "0000"
	maxFractionDigits = 6
)

// ParseError reports a timestamp that does not match the expected layout
type ParseError struct {
	Input  string
	Layout string
	Reason string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("time %q does not match %s: %s", e.Input, e.Layout, e.Reason)
}

// ParseSegmentTime converts an HH:MM:SS:FF value into the elapsed time since zero.
// FF is padded with four zeros and read as a fraction of a second with
// microsecond precision, so "12" is 120ms and "5" is 500ms.
func ParseSegmentTime(value string) (time.Duration, error) {
	fields := strings.Split(value, ":")
	if len(fields) != 4 {
		return 0, &ParseError{Input: value, Layout: SegmentLayout, Reason: fmt.Sprintf("expected 4 fields, got %d", len(fields))}
	}

	clock, err := parseClock(value, SegmentLayout, fields[:3])
	if err != nil {
		return 0, err
	}

	fraction := fields[3] + fractionPad
	if len(fraction) > maxFractionDigits || !isDigits(fraction) {
		return 0, &ParseError{Input: value, Layout: SegmentLayout, Reason: fmt.Sprintf("invalid fraction %q", fields[3])}
	}
	micros := 0
	for i := 0; i < maxFractionDigits; i++ {
		micros *= 10
		if i < len(fraction) {
			micros += int(fraction[i] - '0')
		}
	}

	return clock + time.Duration(micros)*time.Microsecond, nil
}

// ParseMetaDuration converts an HH:MM:SS metadata value into a duration
func ParseMetaDuration(value string) (time.Duration, error) {
	fields := strings.Split(value, ":")
	if len(fields) != 3 {
		return 0, &ParseError{Input: value, Layout: MetaLayout, Reason: fmt.Sprintf("expected 3 fields, got %d", len(fields))}
	}
	return parseClock(value, MetaLayout, fields)
}

// FormatSegmentTime renders d as HH:MM:SS:FF with FF in hundredths of a second.
// Precision below 10ms is truncated.
func FormatSegmentTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	cs := d / (10 * time.Millisecond)
	return fmt.Sprintf("%02d:%02d:%02d:%02d", h, m, s, cs)
}

func parseClock(input, layout string, fields []string) (time.Duration, error) {
	limits := [3]struct {
		name string
		max  int
		unit time.Duration
	}{
		{"hour", 23, time.Hour},
		{"minute", 59, time.Minute},
		{"second", 59, time.Second},
	}

	var total time.Duration
	for i, field := range fields {
		n, ok := parseComponent(field)
		if !ok {
			return 0, &ParseError{Input: input, Layout: layout, Reason: fmt.Sprintf("invalid %s %q", limits[i].name, field)}
		}
		if n > limits[i].max {
			return 0, &ParseError{Input: input, Layout: layout, Reason: fmt.Sprintf("%s %d out of range", limits[i].name, n)}
		}
		total += time.Duration(n) * limits[i].unit
	}
	return total, nil
}

// parseComponent accepts one or two ASCII digits
func parseComponent(field string) (int, bool) {
	if len(field) == 0 || len(field) > 2 || !isDigits(field) {
		return 0, false
	}
	n := 0
	for i := 0; i < len(field); i++ {
		n = n*10 + int(field[i]-'0')
	}
	return n, true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
