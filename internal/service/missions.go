package service

import (
	"context"
	"log"

	"dropos/internal/domain"
	"dropos/internal/events"
	"dropos/internal/store"
)

func (s *Service) ListMissions(ctx context.Context) ([]domain.Mission, error) {
	return orEmpty(store.Read[[]domain.Mission](ctx, s.kv, store.KeyMissions, nil)), nil
}

// CreateMission prices the mission at its priority base plus a random bonus
// below 30% of that base.
func (s *Service) CreateMission(ctx context.Context, req domain.MissionCreateRequest) (domain.Mission, error) {
	var saved domain.Mission
	err := s.mutate(ctx, func(c *change) error {
		bonus := s.int64N(req.Priority.BaseReward() * 3 / 10)
		saved = domain.NewMission(s.ids(), req.Title, req.Priority, req.TargetDate, bonus)
		missions := store.ReadTx[[]domain.Mission](c.tx, store.KeyMissions, nil)
		if err := store.Write(c.tx, store.KeyMissions, append(missions, saved)); err != nil {
			return err
		}
		c.emit(events.MissionsChanged, store.KeyMissions)
		return nil
	})
	return saved, err
}

// CompleteMission grants the reward on the first completion only.
func (s *Service) CompleteMission(ctx context.Context, id string) (domain.Mission, error) {
	var (
		saved   domain.Mission
		granted bool
	)
	err := s.mutate(ctx, func(c *change) error {
		granted = false
		missions := store.ReadTx[[]domain.Mission](c.tx, store.KeyMissions, nil)
		idx := -1
		for i := range missions {
			if missions[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return domain.ErrNotFound
		}
		if missions[idx].Completed {
			saved = missions[idx]
			c.unchanged = true
			return nil
		}

		missions[idx].Completed = true
		missions[idx].Progress = max(missions[idx].Progress, missions[idx].Goal)
		saved = missions[idx]
		if err := store.Write(c.tx, store.KeyMissions, missions); err != nil {
			return err
		}
		c.emit(events.MissionsChanged, store.KeyMissions)
		c.events = append(c.events, events.Event{Kind: events.MissionCompleted, Collection: store.KeyMissions, Detail: saved.ID, Amount: saved.Reward, At: c.at})
		if _, err := s.grantXP(c, saved.Reward); err != nil {
			return err
		}
		granted = true
		return nil
	})
	if err != nil {
		return domain.Mission{}, err
	}
	if granted {
		log.Printf("[service] mission %s completed by %s (+%d xp)", saved.ID, actorName(ctx), saved.Reward)
	}
	return saved, nil
}

func (s *Service) DeleteMission(ctx context.Context, id string) error {
	return s.mutate(ctx, func(c *change) error {
		missions := store.ReadTx[[]domain.Mission](c.tx, store.KeyMissions, nil)
		missions, _ = removeWhere(missions, func(m domain.Mission) bool { return m.ID == id })
		if err := store.Write(c.tx, store.KeyMissions, orEmpty(missions)); err != nil {
			return err
		}
		c.emit(events.MissionsChanged, store.KeyMissions)
		return nil
	})
}
