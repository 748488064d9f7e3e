package service

import (
	"context"
	"log"
	"strings"

	"dropos/internal/domain"
	"dropos/internal/events"
	"dropos/internal/store"
)

// SaleReceipt is what one recorded sale produced.
type SaleReceipt struct {
	Sale       domain.Sale               `json:"sale"`
	Entry      domain.FinancialEntry     `json:"entry"`
	Experience domain.ExperienceResponse `json:"experience"`
}

func (s *Service) ListSales(ctx context.Context) ([]domain.Sale, error) {
	return orEmpty(store.Read[[]domain.Sale](ctx, s.kv, store.KeySales, nil)), nil
}

// SaveSale records a sale, its paid revenue entry and the XP it earns in a
// single transaction. Derived amounts always come from domain.NewSale.
func (s *Service) SaveSale(ctx context.Context, in domain.SaleInput) (SaleReceipt, error) {
	var receipt SaleReceipt
	err := s.mutate(ctx, func(c *change) error {
		if err := s.writeBackup(c.tx, c.at); err != nil {
			return err
		}

		cfg := store.ReadTx(c.tx, store.KeyConfig, domain.DefaultConfig()).Normalize()
		in = fillFromProduct(c.tx, in)
		sale := domain.NewSale(s.ids(), in, cfg.Finance.CommissionPct, c.at)

		sales := store.ReadTx[[]domain.Sale](c.tx, store.KeySales, nil)
		if err := store.Write(c.tx, store.KeySales, append(sales, sale)); err != nil {
			return err
		}

		entry := domain.ReceiptEntry(s.ids(), sale)
		entries := store.ReadTx[[]domain.FinancialEntry](c.tx, store.KeyEntries, nil)
		if err := store.Write(c.tx, store.KeyEntries, append(entries, entry)); err != nil {
			return err
		}

		c.emit(events.SalesChanged, store.KeySales)
		c.emit(events.FinanceChanged, store.KeyEntries)
		c.events = append(c.events, events.Event{Kind: events.SaleRecorded, Collection: store.KeySales, Detail: string(sale.Channel), At: c.at})

		xp, err := s.grantXP(c, saleXPMin+s.int64N(saleXPSpread))
		if err != nil {
			return err
		}
		receipt = SaleReceipt{Sale: sale, Entry: entry, Experience: xp}
		return nil
	})
	if err != nil {
		return SaleReceipt{}, err
	}
	log.Printf("[service] sale %s recorded by %s: net=%.2f real_profit=%.2f", receipt.Sale.ID, actorName(ctx), receipt.Sale.NetReceived, receipt.Sale.RealProfit)
	return receipt, nil
}

// fillFromProduct copies the product name and, when the caller left it at
// zero, the cost of goods from the catalogue.
func fillFromProduct(tx store.Tx, in domain.SaleInput) domain.SaleInput {
	if in.ProductID == "" {
		return in
	}
	for _, p := range store.ReadTx[[]domain.Product](tx, store.KeyProducts, nil) {
		if p.ID != in.ProductID {
			continue
		}
		if strings.TrimSpace(in.ProductName) == "" {
			in.ProductName = p.Name
		}
		if in.CostOfGoods == 0 && in.Quantity > 0 {
			in.CostOfGoods = p.SupplierCost * float64(in.Quantity)
		}
		break
	}
	return in
}

// DeleteSale removes the sale and every entry linked to it. Either side
// being absent already is not an error.
func (s *Service) DeleteSale(ctx context.Context, id string) error {
	if id == "" {
		// Manual entries have no sale id; never match them.
		return nil
	}
	return s.mutate(ctx, func(c *change) error {
		if err := s.writeBackup(c.tx, c.at); err != nil {
			return err
		}

		sales := store.ReadTx[[]domain.Sale](c.tx, store.KeySales, nil)
		sales, _ = removeWhere(sales, func(sale domain.Sale) bool { return sale.ID == id })
		if err := store.Write(c.tx, store.KeySales, orEmpty(sales)); err != nil {
			return err
		}

		entries := store.ReadTx[[]domain.FinancialEntry](c.tx, store.KeyEntries, nil)
		entries, _ = removeWhere(entries, func(e domain.FinancialEntry) bool { return e.SaleID == id })
		if err := store.Write(c.tx, store.KeyEntries, orEmpty(entries)); err != nil {
			return err
		}

		c.emit(events.SalesChanged, store.KeySales)
		c.emit(events.FinanceChanged, store.KeyEntries)
		return nil
	})
}
