package service

import (
	"context"
	"fmt"
	"strings"

	"dropos/internal/domain"
	"dropos/internal/store"
)

// Operator accounts live next to the business data so a snapshot of the
// store is a complete deployment. They are not part of Snapshot.

func (s *Service) ListUsers(ctx context.Context) ([]domain.UserAccount, error) {
	return orEmpty(store.Read[[]domain.UserAccount](ctx, s.kv, store.KeyUsers, nil)), nil
}

func (s *Service) CreateUser(ctx context.Context, user domain.UserAccount) error {
	return s.kv.Update(ctx, func(tx store.Tx) error {
		users := store.ReadTx[[]domain.UserAccount](tx, store.KeyUsers, nil)
		for _, u := range users {
			if strings.EqualFold(u.Username, user.Username) {
				return fmt.Errorf("user %s: %w", user.Username, domain.ErrInvalidInput)
			}
		}
		return store.Write(tx, store.KeyUsers, append(users, user))
	})
}

func (s *Service) UpdateUserPassword(ctx context.Context, username string, password string) error {
	return s.kv.Update(ctx, func(tx store.Tx) error {
		users := store.ReadTx[[]domain.UserAccount](tx, store.KeyUsers, nil)
		for i := range users {
			if strings.EqualFold(users[i].Username, username) {
				users[i].Password = password
				return store.Write(tx, store.KeyUsers, users)
			}
		}
		return domain.ErrNotFound
	})
}
