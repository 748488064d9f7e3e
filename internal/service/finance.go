package service

import (
	"context"

	"dropos/internal/domain"
	"dropos/internal/events"
	"dropos/internal/store"
)

func (s *Service) ListEntries(ctx context.Context) ([]domain.FinancialEntry, error) {
	return orEmpty(store.Read[[]domain.FinancialEntry](ctx, s.kv, store.KeyEntries, nil)), nil
}

func (s *Service) SaveEntry(ctx context.Context, in domain.EntryInput) (domain.FinancialEntry, error) {
	var saved domain.FinancialEntry
	err := s.mutate(ctx, func(c *change) error {
		saved = domain.NewEntry(s.ids(), in, c.at)
		entries := store.ReadTx[[]domain.FinancialEntry](c.tx, store.KeyEntries, nil)
		if err := store.Write(c.tx, store.KeyEntries, append(entries, saved)); err != nil {
			return err
		}
		c.emit(events.FinanceChanged, store.KeyEntries)
		return nil
	})
	return saved, err
}

// MarkEntryPaid settles a pending entry. Entries already paid are returned
// unchanged.
func (s *Service) MarkEntryPaid(ctx context.Context, id string) (domain.FinancialEntry, error) {
	var saved domain.FinancialEntry
	err := s.mutate(ctx, func(c *change) error {
		entries := store.ReadTx[[]domain.FinancialEntry](c.tx, store.KeyEntries, nil)
		for i := range entries {
			if entries[i].ID != id {
				continue
			}
			entries[i].Status = domain.StatusPaid
			saved = entries[i]
			if err := store.Write(c.tx, store.KeyEntries, entries); err != nil {
				return err
			}
			c.emit(events.FinanceChanged, store.KeyEntries)
			return nil
		}
		return domain.ErrNotFound
	})
	return saved, err
}

// DeleteEntry removes one entry. A sale linked to it is kept.
func (s *Service) DeleteEntry(ctx context.Context, id string) error {
	return s.mutate(ctx, func(c *change) error {
		entries := store.ReadTx[[]domain.FinancialEntry](c.tx, store.KeyEntries, nil)
		entries, _ = removeWhere(entries, func(e domain.FinancialEntry) bool { return e.ID == id })
		if err := store.Write(c.tx, store.KeyEntries, orEmpty(entries)); err != nil {
			return err
		}
		c.emit(events.FinanceChanged, store.KeyEntries)
		return nil
	})
}
