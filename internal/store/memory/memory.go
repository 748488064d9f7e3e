package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"dropos/internal/store"
)

type Store struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

// NewSeeded returns a store preloaded with raw documents, keyed as on disk.
func NewSeeded(docs map[string]string) *Store {
	s := New()
	for k, v := range docs {
		s.data[k] = []byte(v)
	}
	return s
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
	return slices.Clone(raw), nil
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
	tx := &stagedTx{base: s.data, writes: make(map[string][]byte), deletes: make(map[string]struct{})}
	if err := fn(tx); err != nil {
		return err
	}
	for k := range tx.deletes {
		delete(s.data, k)
	}
	maps.Copy(s.data, tx.writes)
	return nil
}

func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.data))
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// stagedTx buffers writes until the enclosing Update commits.
type stagedTx struct {
	base    map[string][]byte
	writes  map[string][]byte
	deletes map[string]struct{}
}

func (t *stagedTx) Get(key string) ([]byte, error) {
	if raw, ok := t.writes[key]; ok {
		return slices.Clone(raw), nil
	}
	if _, gone := t.deletes[key]; gone {
		return nil, store.ErrNotFound
	}
	raw, ok := t.base[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return slices.Clone(raw), nil
}

func (t *stagedTx) Put(key string, value []byte) error {
	delete(t.deletes, key)
	t.writes[key] = slices.Clone(value)
	return nil
}

func (t *stagedTx) Delete(key string) error {
	delete(t.writes, key)
	t.deletes[key] = struct{}{}
	return nil
}
