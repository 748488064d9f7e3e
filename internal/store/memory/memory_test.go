package memory

import (
	"context"
	"errors"
	"testing"

	"dropos/internal/store"
	"dropos/internal/store/storetest"
)

func TestMemoryStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.KV {
		return New()
	})
}

func TestGetReturnsCopy(t *testing.T) {
	s := NewSeeded(map[string]string{store.KeyProducts: `[]`})
	raw, err := s.Get(context.Background(), store.KeyProducts)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	raw[0] = '{'

	again, _ := s.Get(context.Background(), store.KeyProducts)
	if string(again) != `[]` {
		t.Fatalf("expected stored bytes to be isolated, got %q", again)
	}
}

func TestClosedStoreRejectsCalls(t *testing.T) {
	s := New()
	_ = s.Close()
	if _, err := s.Get(context.Background(), "a"); !errors.Is(err, store.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if err := s.Update(context.Background(), func(store.Tx) error { return nil }); !errors.Is(err, store.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestKeysSorted(t *testing.T) {
	s := NewSeeded(map[string]string{"b": "1", "a": "2"})
	keys := s.Keys()
	if len(keys) != 2 || keys[0] != "a" {
		t.Fatalf("expected sorted keys, got %v", keys)
	}
}
