package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileObservationSource_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "observations.json")
	payload := `{
		"example.com": [{"name": "sessionid", "value": "abc", "domain": ".example.com"}],
		"other.org":   [{"name": "pref", "value": "dark"}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	source := NewFileObservationSource(path)
	observations, err := source.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, observations, 2)
	require.Len(t, observations["example.com"], 1)
	assert.Equal(t, "sessionid", observations["example.com"][0].Name)
	assert.Equal(t, ".example.com", observations["example.com"][0].Domain)
	assert.True(t, observations["example.com"][0].IsSession())
}

func TestFileObservationSource_MissingFileIsEmpty(t *testing.T) {
	source := NewFileObservationSource(filepath.Join(t.TempDir(), "nope.json"))

	observations, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, observations)
}

func TestFileObservationSource_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "observations.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := NewFileObservationSource(path).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode observations file")
}

func TestFileObservationSource_Changed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "observations.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))

	source := NewFileObservationSource(path)

	assert.False(t, source.Changed(), "first stat only primes the baseline")
	assert.False(t, source.Changed(), "unchanged file stays quiet")

	// Push the mtime forward explicitly; sub-second writes may not move it.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	assert.True(t, source.Changed())
	assert.False(t, source.Changed(), "one change reports once")
}

func TestFileObservationSource_ChangedMissingFile(t *testing.T) {
	source := NewFileObservationSource(filepath.Join(t.TempDir(), "nope.json"))
	assert.False(t, source.Changed())
}
