// Package bi folds sales and financial entries into dashboard metrics.
// Nothing here touches storage; the same Input always yields the same
// Metrics.
package bi

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"dropos/internal/domain"
)

const (
	payablesWindow = 30 * 24 * time.Hour
	fixedCostDays  = 30
)

type Input struct {
	Sales   []domain.Sale
	Entries []domain.FinancialEntry
	Config  domain.AppConfig
	// Mode overrides Config.VisualMode when set.
	Mode  domain.VisualMode
	Range domain.DateRange
	Now   time.Time
}

var hundred = decimal.NewFromInt(100)

// Compute returns the dashboard metrics for in. Monetary values are scaled
// by the visual mode multiplier; ratios, counts and days are not.
func Compute(in Input) domain.Metrics {
	mode := in.Config.VisualMode
	if in.Mode != "" {
		mode = in.Mode
	}
	mult := mode.Multiplier()
	now := in.Now.UTC()

	sales := make([]domain.Sale, 0, len(in.Sales))
	for _, s := range in.Sales {
		if in.Range.Contains(s.Date) {
			sales = append(sales, s)
		}
	}
	placeholder := false
	if mult > 1 && len(sales) == 0 {
		sales = demoSales(now, in.Config.Finance.CommissionPct)
		placeholder = true
	}

	var gross, net, ads, cogs, fees, operating, commission, realProfit decimal.Decimal
	for _, s := range sales {
		gross = gross.Add(decimal.NewFromFloat(s.GrossRevenue))
		net = net.Add(decimal.NewFromFloat(s.NetReceived))
		ads = ads.Add(decimal.NewFromFloat(s.AdsCost))
		cogs = cogs.Add(decimal.NewFromFloat(s.CostOfGoods))
		fees = fees.Add(decimal.NewFromFloat(s.PlatformFees))
		operating = operating.Add(decimal.NewFromFloat(s.OperatingProfit))
		commission = commission.Add(decimal.NewFromFloat(s.Commission))
		realProfit = realProfit.Add(decimal.NewFromFloat(s.RealProfit))
	}
	orders := decimal.NewFromInt(int64(len(sales)))

	fixedRange := in.Range
	if fixedRange.Days() == 0 {
		fixedRange = domain.DateRange{From: now.AddDate(0, 0, -(fixedCostDays - 1)), To: now}
	}
	var fixed, cash, payables, receivables decimal.Decimal
	for _, e := range in.Entries {
		amount := decimal.NewFromFloat(e.Amount)
		if e.IsFixed && e.Type.Outflow() && fixedRange.Contains(e.Date) {
			fixed = fixed.Add(amount)
		}
		switch e.Status {
		case domain.StatusPaid:
			if e.Date.After(now) {
				continue
			}
			if e.Type.Outflow() {
				cash = cash.Sub(amount)
			} else {
				cash = cash.Add(amount)
			}
		case domain.StatusPending:
			if e.Date.Before(now) || e.Date.After(now.Add(payablesWindow)) {
				continue
			}
			if e.Type.Outflow() {
				payables = payables.Add(amount)
			} else {
				receivables = receivables.Add(amount)
			}
		}
	}

	tax := taxProvision(in.Config.Finance, gross, in.Range)
	netProfit := realProfit.Sub(fixed).Sub(tax)

	m := domain.Metrics{
		Orders:          len(sales),
		GrossMarginPct:  pct(gross.Sub(cogs), gross),
		OperatingMargin: pct(operating, gross),
		NetMarginPct:    pct(netProfit, gross),
		ROAS:            ratio(gross, ads),
		ROIPct:          pct(netProfit, cogs.Add(ads)),
		MarkupPct:       pct(gross.Sub(cogs), cogs),
		Multiplier:      mult,
		Placeholder:     placeholder,
	}

	var breakEven decimal.Decimal
	if realProfit.IsPositive() && gross.IsPositive() {
		breakEven = fixed.Mul(gross).Div(realProfit)
	}
	days := decimal.NewFromInt(int64(fixedRange.Days()))
	if fixed.IsPositive() && cash.IsPositive() {
		m.RunwayDays = round(cash.Div(fixed.Div(days)))
	}

	scale := decimal.NewFromFloat(mult)
	scaled := func(d decimal.Decimal) float64 { return round(d.Mul(scale)) }
	m.GrossRevenue = scaled(gross)
	m.NetReceived = scaled(net)
	m.AdSpend = scaled(ads)
	m.CostOfGoods = scaled(cogs)
	m.PlatformFees = scaled(fees)
	m.Commission = scaled(commission)
	m.RealProfit = scaled(realProfit)
	m.NetProfit = scaled(netProfit)
	m.FixedCosts = scaled(fixed)
	m.CashBalance = scaled(cash)
	m.TaxProvision = scaled(tax)
	m.Payables30 = scaled(payables)
	m.Receivables30 = scaled(receivables)
	m.BreakEven = scaled(breakEven)
	if orders.IsPositive() {
		m.AverageOrder = scaled(gross.Div(orders))
		m.CAC = scaled(ads.Div(orders))
	}
	m.TargetProgress = targetProgress(in.Sales, in.Config.Targets.Monthly, now)
	return m
}

// taxProvision is the flat DAS per month for MEI and a rate over gross
// revenue for the other regimes.
func taxProvision(f domain.FinanceSettings, gross decimal.Decimal, r domain.DateRange) decimal.Decimal {
	if f.Regime == domain.RegimeMEI {
		return decimal.NewFromFloat(f.MonthlyDAS).Mul(decimal.NewFromInt(int64(r.Months())))
	}
	return gross.Mul(decimal.NewFromFloat(f.TaxRate)).Div(hundred)
}

func targetProgress(sales []domain.Sale, monthly float64, now time.Time) float64 {
	if monthly <= 0 {
		return 0
	}
	month := domain.DateRange{
		From: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.UTC),
	}
	var total decimal.Decimal
	for _, s := range sales {
		if month.Contains(s.Date) {
			total = total.Add(decimal.NewFromFloat(s.GrossRevenue))
		}
	}
	return pct(total, decimal.NewFromFloat(monthly))
}

// demoSales is the baseline shown while an inflated mode has no data.
func demoSales(now time.Time, commissionPct float64) []domain.Sale {
	return []domain.Sale{domain.NewSale("demo", domain.SaleInput{
		Date:        now,
		Channel:     domain.ChannelShopee,
		ProductName: "Demo",
		Quantity:    10,
		UnitPrice:   100,
		NetReceived: 900,
		CostOfGoods: 300,
		AdsCost:     100,
	}, commissionPct, now)}
}

func pct(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	return round(part.Mul(hundred).Div(whole))
}

func ratio(a, b decimal.Decimal) float64 {
	if !b.IsPositive() {
		return 0
	}
	return round(a.Div(b))
}

func round(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// TopProducts ranks products by accumulated real profit, best first. n <= 0
// returns every product.
func TopProducts(sales []domain.Sale, n int) []domain.ProductProfit {
	byKey := map[string]*domain.ProductProfit{}
	totals := map[string]decimal.Decimal{}
	for _, s := range sales {
		key := s.ProductID
		if key == "" {
			key = "name:" + s.ProductName
		}
		p, ok := byKey[key]
		if !ok {
			p = &domain.ProductProfit{ProductID: s.ProductID, Name: s.ProductName}
			byKey[key] = p
		}
		totals[key] = totals[key].Add(decimal.NewFromFloat(s.RealProfit))
	}

	out := make([]domain.ProductProfit, 0, len(byKey))
	for key, p := range byKey {
		p.Profit = round(totals[key])
		out = append(out, *p)
	}
	slices.SortFunc(out, func(a, b domain.ProductProfit) int {
		if c := cmp.Compare(b.Profit, a.Profit); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ProductID, b.ProductID)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// ActiveDays counts distinct UTC calendar days with at least one sale.
func ActiveDays(sales []domain.Sale) int {
	days := map[time.Time]struct{}{}
	for _, s := range sales {
		days[domain.StartOfDay(s.Date)] = struct{}{}
	}
	return len(days)
}
