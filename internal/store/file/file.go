package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"maps"
	"os"
	"path/filepath"
	"sync"
	"time"

	"dropos/internal/store"
)

// Store keeps every key in one JSON document whose values are the raw
// documents as strings. Another process writing the same file is not
// detected; the last rename wins.
type Store struct {
	mu     sync.RWMutex
	path   string
	data   map[string]string
	closed bool
}

func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := &Store{path: path, data: map[string]string{}}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read data file: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	data := map[string]string{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return s.quarantine(err)
	}
	s.data = data
	return nil
}

// quarantine moves an undecodable data file aside so the store starts empty
// and the original bytes stay recoverable.
func (s *Store) quarantine(cause error) error {
	aside := fmt.Sprintf("%s.corrupt-%s", s.path, time.Now().UTC().Format("20060102T150405Z"))
	if err := os.Rename(s.path, aside); err != nil {
		return fmt.Errorf("move corrupt data file: %w", err)
	}
	log.Printf("[store] WARN: %s is not valid json, moved to %s and starting empty: %v", s.path, aside, cause)
	return nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, store.ErrClosed
	}
	raw, ok := s.data[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return []byte(raw), nil
}

func (s *Store) Update(ctx context.Context, fn func(tx store.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return store.ErrClosed
	}
	tx := &docTx{data: maps.Clone(s.data)}
	if err := fn(tx); err != nil {
		return err
	}
	if !tx.dirty {
		return nil
	}
	if err := persist(s.path, tx.data); err != nil {
		return err
	}
	s.data = tx.data
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func persist(path string, data map[string]string) error {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal data: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, append(encoded, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp data file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}

type docTx struct {
	data  map[string]string
	dirty bool
}

func (t *docTx) Get(key string) ([]byte, error) {
	raw, ok := t.data[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return []byte(raw), nil
}

func (t *docTx) Put(key string, value []byte) error {
	t.data[key] = string(value)
	t.dirty = true
	return nil
}

func (t *docTx) Delete(key string) error {
	if _, ok := t.data[key]; ok {
		delete(t.data, key)
		t.dirty = true
	}
	return nil
}
