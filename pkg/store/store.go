package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/helmcode/bug-autopsy/pkg/model"
)

// ErrNotFound is returned by Get and the status/notes mutations when no case
// with the given id exists.
var ErrNotFound = errors.New("case file not found")

// Store persists the ordered case-file list as a single JSON document on
// disk. Reads fail open: a missing or corrupt file degrades to an empty list
// so the rest of the application keeps working. Writes never fail open.
//
// The store guards against concurrent use within one process only. Two
// processes racing on the same file can silently lose updates; last write
// wins. That is a documented limitation, matching the single-writer
// assumption of the original design.
type Store struct {
	path string
	log  *zap.Logger
	mu   sync.Mutex
}

// New creates a store backed by the file at path, creating the parent
// directory if needed.
func New(path string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &Store{
		path: path,
		log:  logger.Named("store"),
	}, nil
}

// List returns all case files, most recently created first. Corruption or
// read failure is swallowed and yields an empty list.
func (s *Store) List() []model.CaseFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save upserts by id. An existing case is replaced in place, keeping its
// position in the order; a new case goes to the front.
func (s *Store) Save(cf model.CaseFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cases := s.load()
	replaced := false
	for i := range cases {
		if cases[i].ID == cf.ID {
			cases[i] = cf
			replaced = true
			break
		}
	}
	if !replaced {
		cases = append([]model.CaseFile{cf}, cases...)
	}
	return s.write(cases)
}

// Delete removes the case with the given id. Deleting an absent id is a
// no-op, not an error.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cases := s.load()
	kept := cases[:0]
	for _, cf := range cases {
		if cf.ID != id {
			kept = append(kept, cf)
		}
	}
	if len(kept) == len(cases) {
		return nil
	}
	return s.write(kept)
}

// Get returns the case with the given id or ErrNotFound.
func (s *Store) Get(id string) (model.CaseFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, cf := range s.load() {
		if cf.ID == id {
			return cf, nil
		}
	}
	return model.CaseFile{}, ErrNotFound
}

// SetStatus moves a case to a new lifecycle status and bumps updatedAt.
func (s *Store) SetStatus(id string, status model.CaseStatus) (model.CaseFile, error) {
	if !status.Valid() {
		return model.CaseFile{}, fmt.Errorf("invalid case status %q", status)
	}
	return s.update(id, func(cf *model.CaseFile) { cf.Status = status })
}

// SetNotes replaces a case's notes and bumps updatedAt.
func (s *Store) SetNotes(id, notes string) (model.CaseFile, error) {
	return s.update(id, func(cf *model.CaseFile) { cf.Notes = notes })
}

func (s *Store) update(id string, mutate func(*model.CaseFile)) (model.CaseFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cases := s.load()
	for i := range cases {
		if cases[i].ID == id {
			mutate(&cases[i])
			cases[i].UpdatedAt = time.Now()
			if err := s.write(cases); err != nil {
				return model.CaseFile{}, err
			}
			return cases[i], nil
		}
	}
	return model.CaseFile{}, ErrNotFound
}

// load reads and decodes the backing file. Timestamps come back as
// structured time values via the RFC3339 strings in the JSON. Any failure
// logs and returns an empty list.
func (s *Store) load() []model.CaseFile {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("Failed to read case store, treating as empty", zap.Error(err))
		}
		return nil
	}

	var cases []model.CaseFile
	if err := json.Unmarshal(data, &cases); err != nil {
		s.log.Warn("Case store is corrupt, treating as empty", zap.Error(err))
		return nil
	}
	return cases
}

// write marshals the whole collection and atomically replaces the backing
// file via a temp file and rename.
func (s *Store) write(cases []model.CaseFile) error {
	if cases == nil {
		cases = []model.CaseFile{}
	}
	data, err := json.MarshalIndent(cases, "", "  ")
	if err != nil {
		return fmt.Errorf("encode case store: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write case store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace case store: %w", err)
	}
	return nil
}
