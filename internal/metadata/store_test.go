package metadata

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "metadata.json"))
	require.NoError(t, err)
	return s
}

func TestOpenMissingFile(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, 0, s.Len())
}

func TestPutGetRoundTrip(t *testing.T) {
	s := newTestStore(t)

	when := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	entry := Entry{UploaderName: "Grandma", UploadDate: when, OriginalName: "IMG_0042.jpg"}
	require.NoError(t, s.Put("123-abc.jpg", entry))

	got, ok := s.Get("123-abc.jpg")
	require.True(t, ok)
	assert.Equal(t, entry, got)

	// Reopen from disk: the entry must survive losslessly.
	reloaded, err := Open(s.Path())
	require.NoError(t, err)
	got, ok = reloaded.Get("123-abc.jpg")
	require.True(t, ok)
	assert.Equal(t, "Grandma", got.UploaderName)
	assert.Equal(t, "IMG_0042.jpg", got.OriginalName)
	assert.True(t, when.Equal(got.UploadDate))
}

func TestPutEmptyFilename(t *testing.T) {
	s := newTestStore(t)
	assert.Error(t, s.Put("", Entry{UploaderName: "x"}))
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Put("a.jpg", Entry{UploaderName: "A"}))

	require.NoError(t, s.Delete("a.jpg"))
	_, ok := s.Get("a.jpg")
	assert.False(t, ok)

	// Deleting an absent entry is a no-op, not an error.
	require.NoError(t, s.Delete("a.jpg"))
}

func TestGetMissing(t *testing.T) {
	s := newTestStore(t)
	_, ok := s.Get("nope.jpg")
	assert.False(t, ok)
}

func TestConcurrentPuts(t *testing.T) {
	s := newTestStore(t)

	var wg sync.WaitGroup
	names := []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg"}
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			_ = s.Put(name, Entry{UploaderName: name, UploadDate: time.Now()})
		}(name)
	}
	wg.Wait()

	assert.Equal(t, len(names), s.Len())
	reloaded, err := Open(s.Path())
	require.NoError(t, err)
	assert.Equal(t, len(names), reloaded.Len())
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metadata.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Open(path)
	assert.Error(t, err)
}
