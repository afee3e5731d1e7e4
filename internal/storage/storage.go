// Package storage persists scraped product collections as a JSON
// snapshot: the whole file is overwritten on every save, never
// appended to.
package storage

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/watchfolio/aristohk-scraper/internal/models"
)

// SnapshotStore writes an ordered sequence of ProductRecord to one
// file. Saves are atomic (temp file + rename) so readers never see a
// torn snapshot.
type SnapshotStore struct {
	mu       sync.RWMutex
	filename string
}

func NewSnapshotStore(filename string) *SnapshotStore {
	return &SnapshotStore{filename: filename}
}

// Save replaces the snapshot with the given records.
func (s *SnapshotStore) Save(records []models.ProductRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	tmpFile := s.filename + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return err
	}

	return os.Rename(tmpFile, s.filename)
}

// Load reads the current snapshot. A missing file is an error the
// caller can test with os.IsNotExist.
func (s *SnapshotStore) Load() ([]models.ProductRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.filename)
	if err != nil {
		return nil, err
	}

	var records []models.ProductRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}
