package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"dropos/internal/telemetry"
)

var (
	ErrNotFound = errors.New("not found")
	ErrClosed   = errors.New("store closed")
)

const (
	KeyProducts     = "dropos_v14_prod"
	KeySales        = "dropos_v14_vend"
	KeyEntries      = "dropos_v14_fin"
	KeyStats        = "dropos_v14_stat"
	KeyConfig       = "dropos_v14_conf"
	KeyMissions     = "dropos_v14_miss"
	KeyUsers        = "dropos_v14_users"
	KeyRevision     = "dropos_v14_rev"
	KeyMasterBackup = "dropos_v14_master_backup"
)

// KV is a persistent map of versioned keys to JSON documents.
type KV interface {
	// Get returns ErrNotFound when the key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)
	// Update runs fn against a consistent view. Writes made through the Tx
	// become visible only if fn returns nil.
	Update(ctx context.Context, fn func(tx Tx) error) error
	Close() error
}

type Tx interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
}

// Read decodes key into a T. Missing keys and malformed documents yield def.
func Read[T any](ctx context.Context, kv KV, key string, def T) T {
	raw, err := kv.Get(ctx, key)
	return decodeOr(key, raw, err, def)
}

// ReadTx is Read within an open transaction.
func ReadTx[T any](tx Tx, key string, def T) T {
	raw, err := tx.Get(key)
	return decodeOr(key, raw, err, def)
}

func decodeOr[T any](key string, raw []byte, err error, def T) T {
	if errors.Is(err, ErrNotFound) {
		return def
	}
	if err != nil {
		log.Printf("[store] WARN: read %s failed, using default: %v", key, err)
		telemetry.ReadFallbacks.WithLabelValues(key).Inc()
		return def
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Printf("[store] WARN: %s holds malformed json, using default: %v", key, err)
		telemetry.ReadFallbacks.WithLabelValues(key).Inc()
		return def
	}
	return out
}

func Write(tx Tx, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := tx.Put(key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// BumpRevision increments the write revision inside tx and returns it.
func BumpRevision(tx Tx) (int64, error) {
	rev := ReadTx[int64](tx, KeyRevision, 0) + 1
	if err := Write(tx, KeyRevision, rev); err != nil {
		return 0, err
	}
	return rev, nil
}

func Revision(ctx context.Context, kv KV) int64 {
	return Read[int64](ctx, kv, KeyRevision, 0)
}
