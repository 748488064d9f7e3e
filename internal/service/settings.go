package service

import (
	"context"

	"dropos/internal/domain"
	"dropos/internal/events"
	"dropos/internal/store"
)

func (s *Service) Config(ctx context.Context) (domain.AppConfig, error) {
	return store.Read(ctx, s.kv, store.KeyConfig, domain.DefaultConfig()).Normalize(), nil
}

// SaveConfig replaces the configuration after backing up the current state.
func (s *Service) SaveConfig(ctx context.Context, cfg domain.AppConfig) (domain.AppConfig, error) {
	if err := cfg.Validate(); err != nil {
		return domain.AppConfig{}, err
	}
	cfg = cfg.Normalize()
	err := s.mutate(ctx, func(c *change) error {
		if err := s.writeBackup(c.tx, c.at); err != nil {
			return err
		}
		if err := store.Write(c.tx, store.KeyConfig, cfg); err != nil {
			return err
		}
		c.emit(events.ConfigChanged, store.KeyConfig)
		return nil
	})
	if err != nil {
		return domain.AppConfig{}, err
	}
	return cfg, nil
}
