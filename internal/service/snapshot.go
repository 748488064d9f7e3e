package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"dropos/internal/domain"
	"dropos/internal/events"
	"dropos/internal/leveling"
	"dropos/internal/store"
)

func readSnapshot(tx store.Tx, at time.Time) domain.Snapshot {
	return domain.Snapshot{
		ID:       uuid.NewString(),
		TakenAt:  at,
		Products: orEmpty(store.ReadTx[[]domain.Product](tx, store.KeyProducts, nil)),
		Sales:    orEmpty(store.ReadTx[[]domain.Sale](tx, store.KeySales, nil)),
		Entries:  orEmpty(store.ReadTx[[]domain.FinancialEntry](tx, store.KeyEntries, nil)),
		Missions: orEmpty(store.ReadTx[[]domain.Mission](tx, store.KeyMissions, nil)),
		Stats:    leveling.Normalize(store.ReadTx(tx, store.KeyStats, domain.DefaultStats())),
		Config:   store.ReadTx(tx, store.KeyConfig, domain.DefaultConfig()).Normalize(),
	}
}

// writeBackup overwrites the master backup with the state inside tx.
func (s *Service) writeBackup(tx store.Tx, at time.Time) error {
	return store.Write(tx, store.KeyMasterBackup, readSnapshot(tx, at))
}

// Snapshot takes a master backup now and returns it.
func (s *Service) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	var snap domain.Snapshot
	err := s.kv.Update(ctx, func(tx store.Tx) error {
		snap = readSnapshot(tx, s.clock())
		return store.Write(tx, store.KeyMasterBackup, snap)
	})
	return snap, err
}

// ExportSnapshot reads every collection without touching the backup key.
func (s *Service) ExportSnapshot(ctx context.Context) (domain.Snapshot, error) {
	var snap domain.Snapshot
	err := s.kv.Update(ctx, func(tx store.Tx) error {
		snap = readSnapshot(tx, s.clock())
		return nil
	})
	return snap, err
}

// LastBackup returns the stored master backup, if one was ever taken.
func (s *Service) LastBackup(ctx context.Context) (domain.Snapshot, bool) {
	snap := store.Read(ctx, s.kv, store.KeyMasterBackup, domain.Snapshot{})
	return snap, snap.ID != ""
}

// RestoreSnapshot replaces every collection with the ones in snap. progress,
// when non-nil, is called once per collection written.
func (s *Service) RestoreSnapshot(ctx context.Context, snap domain.Snapshot, progress func(collection string)) error {
	if err := snap.Config.Validate(); err != nil {
		return err
	}
	if progress == nil {
		progress = func(string) {}
	}
	// a zero grant settles experience left at or above the threshold
	stats, _ := leveling.AddExperience(snap.Stats, 0)
	writes := []struct {
		key   string
		value any
	}{
		{store.KeyProducts, orEmpty(snap.Products)},
		{store.KeySales, orEmpty(snap.Sales)},
		{store.KeyEntries, orEmpty(snap.Entries)},
		{store.KeyMissions, orEmpty(snap.Missions)},
		{store.KeyStats, stats},
		{store.KeyConfig, snap.Config.Normalize()},
	}
	err := s.mutate(ctx, func(c *change) error {
		for _, w := range writes {
			if err := store.Write(c.tx, w.key, w.value); err != nil {
				return err
			}
			progress(w.key)
		}
		c.emit(events.SnapshotRestored, store.KeyMasterBackup)
		for _, kind := range []events.Kind{
			events.ProductsChanged, events.SalesChanged, events.FinanceChanged,
			events.MissionsChanged, events.StatsChanged, events.ConfigChanged,
		} {
			c.emit(kind, "")
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Printf("[service] snapshot %s restored by %s", snap.ID, actorName(ctx))
	return nil
}
