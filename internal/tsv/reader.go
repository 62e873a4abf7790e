// Package tsv reads tab separated dataset files into rows of fields.
package tsv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
)

// ReadRows opens path on fs and returns every record, header included.
// Rows keep their own field count; a blank line is an empty row.
func ReadRows(fs afero.Fs, path string) ([][]string, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	rows, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return rows, nil
}

// Parse reads tab separated records from r. encoding/csv drops blank lines,
// so the gaps between record line numbers are filled with empty rows to keep
// row indexes aligned with physical lines.
func Parse(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	lastLine := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		startLine, _ := reader.FieldPos(0)
		for ; lastLine+1 < startLine; lastLine++ {
			rows = append(rows, []string{})
		}

		// quoted fields may span lines
		last := len(record) - 1
		endLine, _ := reader.FieldPos(last)
		lastLine = endLine + strings.Count(record[last], "\n")
		rows = append(rows, record)
	}

	// trailing blank lines
	for total := countLines(data); lastLine < total; lastLine++ {
		rows = append(rows, []string{})
	}
	return rows, nil
}

// countLines returns the number of physical lines, a final line without a newline included
func countLines(data []byte) int {
	n := bytes.Count(data, []byte("\n"))
	if len(data) > 0 && data[len(data)-1] != '\n' {
		n++
	}
	return n
}

// DataRows drops the header row
func DataRows(rows [][]string) [][]string {
	if len(rows) < 2 {
		return nil
	}
	return rows[1:]
}

// LineNumber maps a 0-based data row index to its 1-based line, counting the header
func LineNumber(index int) int {
	return index + 2
}
