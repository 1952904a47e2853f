package specimen

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore is a file-based specimen store for the CLI.
// Specimens are stored as one JSON file per ID in a config directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based specimen store.
// If baseDir is empty, defaults to ~/.config/sprout/specimens/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "sprout", "specimens")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create specimen dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) specimenPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Get(ctx context.Context, id string) (*Specimen, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(s.specimenPath(filepath.Base(id)), id)
}

func (s *FileStore) read(path, ref string) (*Specimen, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(ref)
		}
		return nil, fmt.Errorf("read specimen file: %w", err)
	}
	var sp Specimen
	if err := json.Unmarshal(data, &sp); err != nil {
		return nil, fmt.Errorf("parse specimen %s: %w", filepath.Base(path), err)
	}
	return &sp, nil
}

func (s *FileStore) GetByName(ctx context.Context, name string) (*Specimen, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all, err := s.list()
	if err != nil {
		return nil, err
	}
	for _, sp := range all {
		if sp.Name == name {
			return sp, nil
		}
	}
	return nil, notFound(name)
}

func (s *FileStore) Save(ctx context.Context, sp *Specimen) error {
	if err := sp.Normalize(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.list()
	if err != nil {
		return err
	}
	for _, existing := range all {
		if existing.Name == sp.Name && existing.ID != sp.ID {
			return nameTaken(sp.Name)
		}
	}

	data, err := json.MarshalIndent(sp, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal specimen: %w", err)
	}
	if err := os.WriteFile(s.specimenPath(sp.ID), data, 0600); err != nil {
		return fmt.Errorf("write specimen file: %w", err)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]*Specimen, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out, err := s.list()
	if err != nil {
		return nil, err
	}
	sortSpecimens(out)
	return out, nil
}

// list reads every specimen file. Unreadable files are skipped.
func (s *FileStore) list() ([]*Specimen, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read specimen dir: %w", err)
	}
	var out []*Specimen
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		sp, err := s.read(filepath.Join(s.baseDir, entry.Name()), entry.Name())
		if err != nil {
			continue
		}
		out = append(out, sp)
	}
	return out, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.specimenPath(filepath.Base(id)))
	if os.IsNotExist(err) {
		return notFound(id)
	}
	if err != nil {
		return fmt.Errorf("remove specimen file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for specimen files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
