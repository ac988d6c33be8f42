// Package state persists generation records between runs.
package state

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
	"go.trai.ch/flexgen/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.RecordStore using a flat JSON file.
type Store struct {
	path    string
	mu      sync.RWMutex
	records map[string]domain.GenerationRecord
}

// NewStore creates a new Store backed by the file at the given path.
// A missing file is an empty store.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:    filepath.Clean(path),
		records: make(map[string]domain.GenerationRecord),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(errors.Join(domain.ErrStoreReadFailed, err), "path", s.path)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.records); err != nil {
		return zerr.With(errors.Join(domain.ErrStoreReadFailed, err), "path", s.path)
	}

	return nil
}

// save writes the records to a temporary file and renames it over the store.
// The caller must hold s.mu.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return errors.Join(domain.ErrStoreWriteFailed, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.With(errors.Join(domain.ErrStoreWriteFailed, err), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*")
	if err != nil {
		return zerr.With(errors.Join(domain.ErrStoreWriteFailed, err), "path", s.path)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(errors.Join(domain.ErrStoreWriteFailed, err), "path", s.path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(errors.Join(domain.ErrStoreWriteFailed, err), "path", s.path)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return zerr.With(errors.Join(domain.ErrStoreWriteFailed, err), "path", s.path)
	}

	return nil
}

// Get retrieves the record for a step key.
func (s *Store) Get(key string) (*domain.GenerationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// Put stores the record and writes the store to disk.
func (s *Store) Put(record domain.GenerationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.Key] = record
	return s.save()
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
