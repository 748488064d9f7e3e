package service

import (
	"context"
	"strings"

	"dropos/internal/domain"
	"dropos/internal/events"
	"dropos/internal/store"
)

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return orEmpty(store.Read[[]domain.Product](ctx, s.kv, store.KeyProducts, nil)), nil
}

// FindProductBySKU is the lookup callers use to keep SKUs unique before
// saving. Matching ignores case and surrounding spaces.
func (s *Service) FindProductBySKU(ctx context.Context, sku string) (domain.Product, bool) {
	sku = strings.TrimSpace(sku)
	for _, p := range store.Read[[]domain.Product](ctx, s.kv, store.KeyProducts, nil) {
		if strings.EqualFold(p.SKU, sku) {
			return p, true
		}
	}
	return domain.Product{}, false
}

// SaveProduct merges in onto the product with in.ID, or creates a new
// product when no id is given.
func (s *Service) SaveProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	var saved domain.Product
	err := s.mutate(ctx, func(c *change) error {
		products := store.ReadTx[[]domain.Product](c.tx, store.KeyProducts, nil)
		if in.ID == "" {
			saved = domain.NewProduct(s.ids(), in)
			products = append(products, saved)
		} else {
			found := false
			for i := range products {
				if products[i].ID == in.ID {
					products[i] = products[i].Merge(in)
					saved = products[i]
					found = true
					break
				}
			}
			if !found {
				return domain.ErrNotFound
			}
		}
		if err := store.Write(c.tx, store.KeyProducts, products); err != nil {
			return err
		}
		c.emit(events.ProductsChanged, store.KeyProducts)
		return nil
	})
	return saved, err
}

// DeleteProduct leaves past sales untouched; they carry their own copy of
// the product name.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.mutate(ctx, func(c *change) error {
		products := store.ReadTx[[]domain.Product](c.tx, store.KeyProducts, nil)
		products, _ = removeWhere(products, func(p domain.Product) bool { return p.ID == id })
		if err := store.Write(c.tx, store.KeyProducts, orEmpty(products)); err != nil {
			return err
		}
		c.emit(events.ProductsChanged, store.KeyProducts)
		return nil
	})
}
