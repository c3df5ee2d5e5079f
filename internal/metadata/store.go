// Package metadata persists per-image upload attributes keyed by stored filename.
//
// The whole mapping lives in one JSON document next to the images
// (metadata.json). Mutations update an in-memory map under a mutex and rewrite
// the document atomically via a temp file + rename, with a flock guarding the
// file against a second process. Entries are advisory: readers must tolerate a
// missing entry for an image that exists on disk.
package metadata

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

// Entry holds the upload attributes for one stored image.
type Entry struct {
	UploaderName string    `json:"uploaderName"`
	UploadDate   time.Time `json:"uploadDate"`
	// OriginalName is the client-provided filename, kept for display only.
	// It is never used to build storage paths.
	OriginalName string `json:"originalName"`
}

// Store provides thread-safe access to the metadata document.
type Store struct {
	path string
	lock *flock.Flock

	mu      sync.RWMutex
	entries map[string]Entry
}

// Open loads the metadata document at path, creating an empty store when the
// file does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{
		path:    path,
		lock:    flock.New(path + ".lock"),
		entries: make(map[string]Entry),
	}
	if err := s.load(); err != nil {
		return nil, fmt.Errorf("load metadata: %w", err)
	}
	return s, nil
}

// Path returns the location of the backing document.
func (s *Store) Path() string {
	return s.path
}

// Get returns the entry for the given stored filename if present.
func (s *Store) Get(filename string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[filename]
	return e, ok
}

// Put adds or replaces the entry for filename and persists the document.
func (s *Store) Put(filename string, e Entry) error {
	if filename == "" {
		return errors.New("filename cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[filename] = e
	if err := s.save(); err != nil {
		return fmt.Errorf("persist metadata: %w", err)
	}
	return nil
}

// Delete removes the entry for filename, if any, and persists the document.
// Deleting an absent entry is a no-op.
func (s *Store) Delete(filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[filename]; !ok {
		return nil
	}
	delete(s.entries, filename)
	if err := s.save(); err != nil {
		return fmt.Errorf("persist metadata: %w", err)
	}
	return nil
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

func (s *Store) load() error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("acquire metadata lock: %w", err)
	}
	defer s.lock.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil // fresh start
		}
		return fmt.Errorf("read %s: %w", s.path, err)
	}

	entries := make(map[string]Entry)
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse %s: %w", s.path, err)
	}
	s.entries = entries
	return nil
}

// save writes the document under the flock. Callers must hold s.mu.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return err
	}

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("acquire metadata lock: %w", err)
	}
	defer s.lock.Unlock()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
