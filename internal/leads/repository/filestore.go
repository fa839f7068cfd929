// Package repository implements the flat-file lead store.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"solarquote_backend/internal/leads/domain"
	"solarquote_backend/platform/logger"
)

// FileStore persists leads as a single JSON array on disk. Writes go through
// a temp file and rename so a crash never leaves a half-written store. A
// corrupt or missing file reads as empty: history is worth less than
// accepting the next lead.
type FileStore struct {
	mu   sync.Mutex
	path string
	log  *logger.Logger
}

// NewFileStore creates a file store at the given path.
func NewFileStore(path string, log *logger.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

// Append adds a lead to the store.
func (s *FileStore) Append(ctx context.Context, lead domain.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.readAll()
	existing = append(existing, lead)

	data, err := json.MarshalIndent(existing, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal leads: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create leads directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write leads file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace leads file: %w", err)
	}

	return nil
}

// List returns every persisted lead, oldest first. Missing, empty or corrupt
// stores read as an empty list.
func (s *FileStore) List(ctx context.Context) ([]domain.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll(), nil
}

func (s *FileStore) readAll() []domain.Lead {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.StoreError("read", err)
		}
		return []domain.Lead{}
	}
	if len(data) == 0 {
		return []domain.Lead{}
	}

	var all []domain.Lead
	if err := json.Unmarshal(data, &all); err != nil {
		s.log.StoreError("decode", err)
		return []domain.Lead{}
	}
	return all
}

// Compile-time check that FileStore implements domain.Store.
var _ domain.Store = (*FileStore)(nil)
