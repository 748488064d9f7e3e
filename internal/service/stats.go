package service

import (
	"context"

	"dropos/internal/bi"
	"dropos/internal/domain"
	"dropos/internal/leveling"
	"dropos/internal/store"
)

// Stats returns the stored stats with rank and streak derived on read.
func (s *Service) Stats(ctx context.Context) (domain.UserStats, error) {
	stats := leveling.Normalize(store.Read(ctx, s.kv, store.KeyStats, domain.DefaultStats()))
	stats.Streak = bi.ActiveDays(store.Read[[]domain.Sale](ctx, s.kv, store.KeySales, nil))
	return stats, nil
}

// AddExperience grants XP outside of sales and missions.
func (s *Service) AddExperience(ctx context.Context, amount int64) (domain.ExperienceResponse, error) {
	var resp domain.ExperienceResponse
	err := s.mutate(ctx, func(c *change) error {
		var err error
		resp, err = s.grantXP(c, amount)
		return err
	})
	return resp, err
}
