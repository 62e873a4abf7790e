package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gopkg.in/yaml.v2"

	"datasetaudit/internal/stats"
	"datasetaudit/internal/validator"
)

var sampleRecords = []validator.ErrorRecord{
	{
		FilePath: "/data/talk.speaker.tsv",
		Line:     3,
		Kind:     validator.KindWrongLineFormat,
		FileType: validator.FileTypeSpeaker,
		Detail:   "expected 8 columns, got 2",
	},
	{
		FilePath: "/data/talk.tsv",
		Line:     5,
		Kind:     validator.KindDurationMismatch,
		FileType: validator.FileTypeSegment,
		Detail:   "00:00:02:00 - 00:00:01:00 != 00:00:00:99 (diff: 0.01s)",
		Diff:     10 * time.Millisecond,
	},
}

var sampleSummary = stats.Summary{
	Recordings: 2,
	Audited:    2,
	Clean:      1,
	Errors:     2,
	ByKind: map[validator.Kind]int{
		validator.KindWrongLineFormat:  1,
		validator.KindDurationMismatch: 1,
	},
	Elapsed: 1500 * time.Millisecond,
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestNewOutput(t *testing.T) {
	t.Run("should select output by format", func(t *testing.T) {
		var buffer bytes.Buffer

		text, err := NewOutput("text", &buffer, nil)
		require.NoError(t, err)
		assert.IsType(t, &TextOutput{}, text)

		jsonOut, err := NewOutput("json", &buffer, nil)
		require.NoError(t, err)
		assert.IsType(t, &JSONOutput{}, jsonOut)

		yamlOut, err := NewOutput("yaml", &buffer, nil)
		require.NoError(t, err)
		assert.IsType(t, &YAMLOutput{}, yamlOut)
	})

	t.Run("should reject unknown formats", func(t *testing.T) {
		output, err := NewOutput("xml", &bytes.Buffer{}, nil)

		assert.Error(t, err)
		assert.Nil(t, output)
	})
}

func TestJSONOutput(t *testing.T) {
	t.Run("should output one JSON line per record", func(t *testing.T) {
		// Arrange
		var buffer bytes.Buffer
		output := NewJSONOutput(&buffer, zaptest.NewLogger(t))

		// Act
		require.NoError(t, output.WriteRecords("talk", sampleRecords))
		require.NoError(t, output.WriteRecords("clean", nil))
		require.NoError(t, output.Close())

		// Assert
		lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
		require.Len(t, lines, 2)

		var first Record
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
		assert.Equal(t, Record{
			Recording: "talk",
			FilePath:  "/data/talk.speaker.tsv",
			Line:      3,
			Error:     "wrong line format",
			Type:      "speaker_tsv",
			Detail:    "expected 8 columns, got 2",
		}, first)

		assert.JSONEq(t, `{"recording":"talk","filepath":"/data/talk.tsv","line":5,"error":"duration mismatch","type":"name_tsv","detail":"00:00:02:00 - 00:00:01:00 != 00:00:00:99 (diff: 0.01s)","diff_seconds":0.01}`, lines[1])
	})

	t.Run("should output the summary as a final line", func(t *testing.T) {
		// Arrange
		var buffer bytes.Buffer
		output := NewJSONOutput(&buffer, zaptest.NewLogger(t))

		// Act
		err := output.WriteSummary(sampleSummary)

		// Assert
		require.NoError(t, err)
		assert.JSONEq(t, `{"summary":{"recordings":2,"audited":2,"clean":1,"skipped":0,"failed":0,"errors":2,"by_kind":{"wrong line format":1,"duration mismatch":1}},"elapsed_seconds":1.5}`, buffer.String())
	})

	t.Run("should return write errors", func(t *testing.T) {
		output := NewJSONOutput(failingWriter{}, zaptest.NewLogger(t))

		err := output.WriteRecords("talk", sampleRecords)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to write JSON output")
	})

	t.Run("should return write errors without a logger", func(t *testing.T) {
		output := NewJSONOutput(failingWriter{}, nil)

		err := output.WriteRecords("talk", sampleRecords)

		assert.Error(t, err)
	})
}

func TestYAMLOutput(t *testing.T) {
	t.Run("should write a single document on close", func(t *testing.T) {
		// Arrange
		var buffer bytes.Buffer
		output := NewYAMLOutput(&buffer, zaptest.NewLogger(t))

		// Act
		require.NoError(t, output.WriteRecords("clean", nil))
		require.NoError(t, output.WriteRecords("talk", sampleRecords))
		require.NoError(t, output.WriteSummary(sampleSummary))
		assert.Empty(t, buffer.String())
		require.NoError(t, output.Close())

		// Assert
		var document struct {
			Recordings []struct {
				Name   string                   `yaml:"name"`
				Errors []map[string]interface{} `yaml:"errors"`
			} `yaml:"recordings"`
			Summary map[string]interface{} `yaml:"summary"`
		}
		require.NoError(t, yaml.Unmarshal(buffer.Bytes(), &document))
		require.Len(t, document.Recordings, 2)
		assert.Equal(t, "clean", document.Recordings[0].Name)
		assert.Empty(t, document.Recordings[0].Errors)
		require.Len(t, document.Recordings[1].Errors, 2)
		assert.Equal(t, "duration mismatch", document.Recordings[1].Errors[1]["error"])
		assert.Equal(t, 0.01, document.Recordings[1].Errors[1]["diff_seconds"])
		assert.NotContains(t, document.Recordings[1].Errors[0], "diff_seconds")
		assert.Equal(t, 2, document.Summary["errors"])
	})

	t.Run("should return write errors on close", func(t *testing.T) {
		output := NewYAMLOutput(failingWriter{}, zaptest.NewLogger(t))
		require.NoError(t, output.WriteRecords("talk", sampleRecords))

		err := output.Close()

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to write YAML report")
	})

	t.Run("should return write errors on close without a logger", func(t *testing.T) {
		output := NewYAMLOutput(failingWriter{}, nil)
		require.NoError(t, output.WriteRecords("talk", sampleRecords))

		err := output.Close()

		assert.Error(t, err)
	})
}

func TestTextOutput(t *testing.T) {
	t.Run("should print one line per record and the summary", func(t *testing.T) {
		// Arrange
		var buffer bytes.Buffer
		output := NewTextOutput(&buffer, zaptest.NewLogger(t))

		// Act
		require.NoError(t, output.WriteRecords("talk", sampleRecords))
		require.NoError(t, output.WriteSummary(sampleSummary))
		require.NoError(t, output.Close())

		// Assert
		text := buffer.String()
		assert.True(t, strings.HasPrefix(text, "/data/talk.speaker.tsv.3: speaker_tsv wrong line format: expected 8 columns, got 2\n"))
		assert.Contains(t, text, "/data/talk.tsv.5: name_tsv duration mismatch: ")
		assert.Contains(t, text, "Audit Summary:")
	})

	t.Run("should return write errors without a logger", func(t *testing.T) {
		output := NewTextOutput(failingWriter{}, nil)

		err := output.WriteSummary(sampleSummary)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to write text output")
	})
}
