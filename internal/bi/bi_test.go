package bi

import (
	"testing"
	"time"

	"dropos/internal/domain"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func day(month time.Month, d int) time.Time {
	return time.Date(2026, month, d, 9, 0, 0, 0, time.UTC)
}

func sampleInput() Input {
	cfg := domain.DefaultConfig()
	cfg.Targets.Monthly = 1000

	sale := domain.NewSale("sale-1", domain.SaleInput{
		Date:        day(time.March, 10),
		Channel:     domain.ChannelShopee,
		ProductID:   "prod-1",
		ProductName: "Watch",
		Quantity:    2,
		UnitPrice:   100,
		NetReceived: 180,
		CostOfGoods: 60,
		AdsCost:     10,
	}, cfg.Finance.CommissionPct, now)

	entries := []domain.FinancialEntry{
		domain.ReceiptEntry("fin-1", sale),
		{ID: "fin-2", Description: "Hosting", Amount: 50, Type: domain.EntryExpense, Category: domain.CategorySoftware, Date: day(time.March, 1), Status: domain.StatusPaid, IsFixed: true},
		{ID: "fin-3", Description: "Supplier", Amount: 100, Type: domain.EntryExpense, Category: domain.CategoryCOGS, Date: day(time.March, 20), Status: domain.StatusPending},
		{ID: "fin-4", Description: "Refund due", Amount: 40, Type: domain.EntryRevenue, Category: domain.CategoryOther, Date: day(time.May, 1), Status: domain.StatusPending},
	}
	return Input{Sales: []domain.Sale{sale}, Entries: entries, Config: cfg, Now: now}
}

func TestComputeNormalMode(t *testing.T) {
	m := Compute(sampleInput())

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"gross", m.GrossRevenue, 200},
		{"net", m.NetReceived, 180},
		{"ads", m.AdSpend, 10},
		{"cogs", m.CostOfGoods, 60},
		{"fees", m.PlatformFees, 20},
		{"commission", m.Commission, 5.5},
		{"real profit", m.RealProfit, 104.5},
		{"average order", m.AverageOrder, 200},
		{"gross margin", m.GrossMarginPct, 70},
		{"operating margin", m.OperatingMargin, 55},
		{"fixed costs", m.FixedCosts, 50},
		{"tax provision", m.TaxProvision, 72},
		{"net profit", m.NetProfit, -17.5},
		{"net margin", m.NetMarginPct, -8.75},
		{"roas", m.ROAS, 20},
		{"roi", m.ROIPct, -25},
		{"markup", m.MarkupPct, 233.33},
		{"cac", m.CAC, 10},
		{"break even", m.BreakEven, 95.69},
		{"cash", m.CashBalance, 130},
		{"runway", m.RunwayDays, 78},
		{"payables", m.Payables30, 100},
		{"receivables", m.Receivables30, 0},
		{"target progress", m.TargetProgress, 20},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Fatalf("expected %s %v, got %v", c.name, c.want, c.got)
		}
	}
	if m.Orders != 1 || m.Multiplier != 1 || m.Placeholder {
		t.Fatalf("unexpected counters: %+v", m)
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	in := sampleInput()
	if Compute(in) != Compute(in) {
		t.Fatalf("expected identical output for identical input")
	}
}

func TestInflatedModeScalesMoneyOnly(t *testing.T) {
	in := sampleInput()
	in.Mode = domain.ModeRich
	m := Compute(in)

	if m.GrossRevenue != 10000 || m.RealProfit != 5225 || m.CashBalance != 6500 {
		t.Fatalf("expected monetary values scaled by 50, got %+v", m)
	}
	if m.GrossMarginPct != 70 || m.ROAS != 20 || m.RunwayDays != 78 || m.Orders != 1 {
		t.Fatalf("expected ratios, days and counts unscaled, got %+v", m)
	}
	if m.Placeholder {
		t.Fatalf("expected real data, not placeholder")
	}
}

func TestPlaceholderWhenInflatedWithoutSales(t *testing.T) {
	in := sampleInput()
	in.Config.VisualMode = domain.ModeMillionaire
	in.Range = domain.DateRange{From: day(time.January, 1), To: day(time.January, 31)}
	m := Compute(in)

	if !m.Placeholder {
		t.Fatalf("expected placeholder metrics")
	}
	if m.GrossRevenue != 1_000_000 || m.Orders != 1 {
		t.Fatalf("expected demo baseline scaled by 1000, got %+v", m)
	}

	in.Config.VisualMode = domain.ModeNormal
	if Compute(in).Placeholder {
		t.Fatalf("expected normal mode never to synthesize data")
	}
}

func TestRangeFiltersSales(t *testing.T) {
	in := sampleInput()
	in.Range = domain.DateRange{From: day(time.March, 11), To: day(time.March, 31)}
	m := Compute(in)
	if m.Orders != 0 || m.GrossRevenue != 0 {
		t.Fatalf("expected sale outside range to be excluded, got %+v", m)
	}
}

func TestTaxProvisionByRegime(t *testing.T) {
	in := sampleInput()
	in.Config.Finance.Regime = domain.RegimeSimples
	in.Config.Finance.TaxRate = 6
	if got := Compute(in).TaxProvision; got != 12 {
		t.Fatalf("expected 6%% of gross, got %v", got)
	}

	in.Config.Finance.Regime = domain.RegimeMEI
	in.Range = domain.DateRange{From: day(time.January, 15), To: day(time.March, 31)}
	if got := Compute(in).TaxProvision; got != 216 {
		t.Fatalf("expected three months of DAS, got %v", got)
	}
}

func TestTopProductsRanksByProfit(t *testing.T) {
	mk := func(id, name string, profit float64) domain.Sale {
		return domain.Sale{ProductID: id, ProductName: name, RealProfit: profit, Date: now}
	}
	sales := []domain.Sale{
		mk("a", "Alpha", 10),
		mk("b", "Bravo", 50),
		mk("a", "Alpha", 45),
		mk("c", "Charlie", 5),
		mk("", "Loose", 1),
	}
	top := TopProducts(sales, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 products, got %d", len(top))
	}
	if top[0].ProductID != "a" || top[0].Profit != 55 || top[0].Rank != 1 {
		t.Fatalf("expected Alpha first with 55, got %+v", top[0])
	}
	if top[1].ProductID != "b" || top[1].Rank != 2 {
		t.Fatalf("expected Bravo second, got %+v", top[1])
	}
	if all := TopProducts(sales, 0); len(all) != 4 {
		t.Fatalf("expected every product when n <= 0, got %d", len(all))
	}
}

func TestActiveDays(t *testing.T) {
	sales := []domain.Sale{
		{Date: day(time.March, 1)},
		{Date: day(time.March, 1).Add(5 * time.Hour)},
		{Date: day(time.March, 2)},
	}
	if got := ActiveDays(sales); got != 2 {
		t.Fatalf("expected 2 active days, got %d", got)
	}
}
