// Package dataset locates recording file triples inside a dataset directory.
package dataset

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// File suffixes of a recording triple
const (
	MetaSuffix    = ".meta.tsv"
	SpeakerSuffix = ".speaker.tsv"
	SegmentSuffix = ".tsv"
)

// Recording identifies one file triple by directory and shared base name
type Recording struct {
	Dir  string
	Name string
}

// MetaPath returns the path of N.meta.tsv
func (r Recording) MetaPath() string {
	return filepath.Join(r.Dir, r.Name+MetaSuffix)
}

// SpeakerPath returns the path of N.speaker.tsv
func (r Recording) SpeakerPath() string {
	return filepath.Join(r.Dir, r.Name+SpeakerSuffix)
}

// SegmentPath returns the path of N.tsv
func (r Recording) SegmentPath() string {
	return filepath.Join(r.Dir, r.Name+SegmentSuffix)
}

// Discover lists the recordings of dir, one per *.meta.tsv entry, sorted by name
func Discover(fs afero.Fs, dir string) ([]Recording, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list dataset directory %s: %w", dir, err)
	}

	var recordings []Recording
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), MetaSuffix) {
			continue
		}
		recordings = append(recordings, Recording{
			Dir:  dir,
			Name: strings.TrimSuffix(entry.Name(), MetaSuffix),
		})
	}

	sort.Slice(recordings, func(i, j int) bool {
		return recordings[i].Name < recordings[j].Name
	})
	return recordings, nil
}

// MissingFiles returns the dependent files of r that do not exist, logging each one.
// A recording with any missing file must be skipped.
func MissingFiles(fs afero.Fs, r Recording, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var missing []string
	for _, path := range []string{r.SpeakerPath(), r.SegmentPath()} {
		exists, err := afero.Exists(fs, path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if !exists {
			logger.Warn("DOES NOT EXIST",
				zap.String("recording", r.Name),
				zap.String("filepath", path))
			missing = append(missing, path)
		}
	}
	return missing, nil
}
