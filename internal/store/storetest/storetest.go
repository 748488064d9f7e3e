// Package storetest holds the behaviour every store.KV backend must share.
package storetest

import (
	"context"
	"errors"
	"testing"

	"dropos/internal/store"
)

var errAbort = errors.New("abort")

// Run exercises a fresh backend returned by open.
func Run(t *testing.T, open func(t *testing.T) store.KV) {
	t.Run("MissingKey", func(t *testing.T) {
		kv := open(t)
		if _, err := kv.Get(context.Background(), "dropos_test_missing"); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("CommitIsVisible", func(t *testing.T) {
		kv := open(t)
		ctx := context.Background()
		err := kv.Update(ctx, func(tx store.Tx) error {
			if err := tx.Put("a", []byte(`[1,2]`)); err != nil {
				return err
			}
			got, err := tx.Get("a")
			if err != nil || string(got) != `[1,2]` {
				t.Fatalf("expected own write inside tx, got %q (%v)", got, err)
			}
			return tx.Put("b", []byte(`{"x":1}`))
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		got, err := kv.Get(ctx, "a")
		if err != nil || string(got) != `[1,2]` {
			t.Fatalf("expected committed value, got %q (%v)", got, err)
		}
	})

	t.Run("ErrorRollsBack", func(t *testing.T) {
		kv := open(t)
		ctx := context.Background()
		if err := kv.Update(ctx, func(tx store.Tx) error {
			return tx.Put("a", []byte(`"before"`))
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}

		err := kv.Update(ctx, func(tx store.Tx) error {
			if err := tx.Put("a", []byte(`"after"`)); err != nil {
				return err
			}
			if err := tx.Put("c", []byte(`true`)); err != nil {
				return err
			}
			return errAbort
		})
		if !errors.Is(err, errAbort) {
			t.Fatalf("expected fn error to surface, got %v", err)
		}
		got, _ := kv.Get(ctx, "a")
		if string(got) != `"before"` {
			t.Fatalf("expected rollback to keep old value, got %q", got)
		}
		if _, err := kv.Get(ctx, "c"); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("expected rolled back key to be absent, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		kv := open(t)
		ctx := context.Background()
		if err := kv.Update(ctx, func(tx store.Tx) error {
			return tx.Put("a", []byte(`1`))
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}
		if err := kv.Update(ctx, func(tx store.Tx) error {
			if err := tx.Delete("a"); err != nil {
				return err
			}
			if _, err := tx.Get("a"); !errors.Is(err, store.ErrNotFound) {
				t.Fatalf("expected deleted key to be gone inside tx, got %v", err)
			}
			return tx.Delete("never-written")
		}); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := kv.Get(ctx, "a"); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("TypedHelpers", func(t *testing.T) {
		kv := open(t)
		ctx := context.Background()
		if err := kv.Update(ctx, func(tx store.Tx) error {
			if err := store.Write(tx, "list", []string{"x", "y"}); err != nil {
				return err
			}
			if err := tx.Put("broken", []byte(`{not json`)); err != nil {
				return err
			}
			_, err := store.BumpRevision(tx)
			return err
		}); err != nil {
			t.Fatalf("update: %v", err)
		}

		list := store.Read(ctx, kv, "list", []string{})
		if len(list) != 2 || list[1] != "y" {
			t.Fatalf("expected decoded list, got %v", list)
		}
		def := []string{"default"}
		if got := store.Read(ctx, kv, "broken", def); len(got) != 1 || got[0] != "default" {
			t.Fatalf("expected default for malformed json, got %v", got)
		}
		if got := store.Read(ctx, kv, "absent", def); len(got) != 1 || got[0] != "default" {
			t.Fatalf("expected default for missing key, got %v", got)
		}
		if rev := store.Revision(ctx, kv); rev != 1 {
			t.Fatalf("expected revision 1, got %d", rev)
		}
	})
}
