package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"dropos/internal/bi"
	"dropos/internal/domain"
	"dropos/internal/store"
)

type MetricsQuery struct {
	Range domain.DateRange
	// Mode overrides the configured visual mode when set.
	Mode domain.VisualMode
}

func (q MetricsQuery) cacheKey(rev int64, today string) string {
	return fmt.Sprintf("rev=%d|mode=%s|from=%s|to=%s|day=%s", rev, q.Mode, dayKey(q.Range.From), dayKey(q.Range.To), today)
}

func dayKey(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

// Metrics computes dashboard metrics. Results are cached per store revision
// and calendar day, so any write or a new day invalidates them.
func (s *Service) Metrics(ctx context.Context, q MetricsQuery) (domain.Metrics, error) {
	now := s.clock()
	var (
		rev     int64
		sales   []domain.Sale
		entries []domain.FinancialEntry
		cfg     domain.AppConfig
	)
	err := s.kv.Update(ctx, func(tx store.Tx) error {
		rev = store.ReadTx[int64](tx, store.KeyRevision, 0)
		sales = store.ReadTx[[]domain.Sale](tx, store.KeySales, nil)
		entries = store.ReadTx[[]domain.FinancialEntry](tx, store.KeyEntries, nil)
		cfg = store.ReadTx(tx, store.KeyConfig, domain.DefaultConfig()).Normalize()
		return nil
	})
	if err != nil {
		return domain.Metrics{}, err
	}

	mode := q.Mode
	if mode == "" {
		mode = cfg.VisualMode
	}
	key := MetricsQuery{Range: q.Range, Mode: mode}.cacheKey(rev, now.Format("2006-01-02"))
	if cached, ok, err := s.metrics.Get(ctx, key); err != nil {
		log.Printf("[service] WARN: metrics cache get failed: %v", err)
	} else if ok && cached != nil {
		return *cached, nil
	}

	m := bi.Compute(bi.Input{
		Sales:   sales,
		Entries: entries,
		Config:  cfg,
		Mode:    mode,
		Range:   q.Range,
		Now:     now,
	})
	if err := s.metrics.Set(ctx, key, &m, s.metricsTTL); err != nil {
		log.Printf("[service] WARN: metrics cache set failed: %v", err)
	}
	return m, nil
}

func (s *Service) TopProducts(ctx context.Context, q MetricsQuery, limit int) ([]domain.ProductProfit, error) {
	var sales []domain.Sale
	for _, sale := range store.Read[[]domain.Sale](ctx, s.kv, store.KeySales, nil) {
		if q.Range.Contains(sale.Date) {
			sales = append(sales, sale)
		}
	}
	return bi.TopProducts(sales, limit), nil
}
