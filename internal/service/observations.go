package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/cookievault/go-cookie-vault/models"
)

// FileObservationSource reads per-domain cookie observations from a JSON
// file maintained by the external collector (the browsing runtime writes
// the file, this module only reads it). The expected shape is
// {"domain": [cookie, ...], ...}.
type FileObservationSource struct {
	Path string

	mu      sync.Mutex
	modTime time.Time
}

// NewFileObservationSource builds a source over path.
func NewFileObservationSource(path string) *FileObservationSource {
	return &FileObservationSource{Path: path}
}

// Load implements [ObservationSource]. A missing file yields an empty
// observation set, not an error: the collector may simply not have written
// yet.
func (f *FileObservationSource) Load(_ context.Context) (map[string][]models.Cookie, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string][]models.Cookie{}, nil
		}
		return nil, fmt.Errorf("read observations file: %w", err)
	}

	observations := make(map[string][]models.Cookie)
	if err = json.Unmarshal(data, &observations); err != nil {
		return nil, fmt.Errorf("decode observations file: %w", err)
	}

	return observations, nil
}

// Changed polls the file's modification time and reports whether it moved
// since the last call. Used by the watch daemon to feed change signals
// into the debouncer without any hook into the collector process.
func (f *FileObservationSource) Changed() bool {
	info, err := os.Stat(f.Path)
	if err != nil {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if info.ModTime().Equal(f.modTime) {
		return false
	}

	first := f.modTime.IsZero()
	f.modTime = info.ModTime()

	// The very first stat only primes the baseline.
	return !first
}
