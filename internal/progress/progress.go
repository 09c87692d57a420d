// Package progress persists the collection checkpoint so an interrupted
// run can resume without re-fetching matches it already stored.
package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Checkpoint is the durable record of collection progress.
type Checkpoint struct {
	LastMatchID    int64  `json:"last_match_id"`
	CollectedCount int    `json:"collected_count"`
	LastUpdate     string `json:"last_update"`
}

// Store reads and writes the checkpoint file. Single writer, read once at
// startup; Save overwrites in place via a temp file + rename so a reader
// never observes a torn write.
type Store struct {
	path string
}

// NewStore creates a store backed by the given checkpoint path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the last persisted checkpoint. Returns nil when no
// checkpoint file exists.
func (s *Store) Load() (*Checkpoint, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}

	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("failed to parse checkpoint %s: %w", s.path, err)
	}
	return &cp, nil
}

// Save overwrites the checkpoint with the given identifier and count.
func (s *Store) Save(lastMatchID int64, collectedCount int) error {
	cp := Checkpoint{
		LastMatchID:    lastMatchID,
		CollectedCount: collectedCount,
		LastUpdate:     time.Now().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(&cp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal checkpoint: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create checkpoint directory: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace checkpoint: %w", err)
	}
	return nil
}
