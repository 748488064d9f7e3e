package domain

import (
	"errors"
	"testing"
	"time"
)

var fixedNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func TestNewSaleDerivesAmounts(t *testing.T) {
	sale := NewSale("sale-1", SaleInput{
		Channel:     ChannelShopee,
		ProductID:   "prod-1",
		ProductName: "Smart Watch",
		Quantity:    2,
		UnitPrice:   100,
		NetReceived: 180,
		CostOfGoods: 60,
		AdsCost:     10,
	}, 5, fixedNow)

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"gross", sale.GrossRevenue, 200},
		{"fees", sale.PlatformFees, 20},
		{"operating", sale.OperatingProfit, 110},
		{"commission", sale.Commission, 5.5},
		{"real", sale.RealProfit, 104.5},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Fatalf("expected %s %v, got %v", c.name, c.want, c.got)
		}
	}
	if !sale.Date.Equal(fixedNow) {
		t.Fatalf("expected date to default to now, got %s", sale.Date)
	}
	if sale.Status != SaleStatusCompleted {
		t.Fatalf("expected default status, got %q", sale.Status)
	}
}

func TestNewSaleClampsLosses(t *testing.T) {
	sale := NewSale("sale-2", SaleInput{
		Channel:     ChannelTikTok,
		ProductName: "Loss Leader",
		Quantity:    1,
		UnitPrice:   50,
		NetReceived: 70,
		CostOfGoods: 60,
		AdsCost:     30,
	}, 10, fixedNow)

	if sale.PlatformFees != 0 {
		t.Fatalf("expected fees clamped to zero when net exceeds gross, got %v", sale.PlatformFees)
	}
	if sale.OperatingProfit != 0 {
		t.Fatalf("expected operating profit clamped to zero, got %v", sale.OperatingProfit)
	}
	if sale.Commission != 0 || sale.RealProfit != 0 {
		t.Fatalf("expected zero commission and real profit, got %v / %v", sale.Commission, sale.RealProfit)
	}
}

func TestNewSaleNegativeInputs(t *testing.T) {
	sale := NewSale("sale-3", SaleInput{
		Channel:     ChannelShopee,
		ProductName: "Refund",
		Quantity:    -3,
		UnitPrice:   10,
		NetReceived: -5,
		CostOfGoods: -1,
	}, 5, fixedNow)
	if sale.GrossRevenue != 0 || sale.NetReceived != 0 || sale.CostOfGoods != 0 {
		t.Fatalf("expected negative amounts clamped, got %+v", sale)
	}
}

func TestCommissionRoundsHalfAwayFromZero(t *testing.T) {
	sale := NewSale("sale-4", SaleInput{
		Channel:     ChannelShopee,
		ProductName: "Cable",
		Quantity:    1,
		UnitPrice:   10.10,
		NetReceived: 10.10,
	}, 5, fixedNow)
	// 10.10 * 5% = 0.505
	if sale.Commission != 0.51 {
		t.Fatalf("expected commission 0.51, got %v", sale.Commission)
	}
	if sale.RealProfit != 9.59 {
		t.Fatalf("expected real profit 9.59, got %v", sale.RealProfit)
	}
}

func TestReceiptEntryMirrorsSale(t *testing.T) {
	sale := NewSale("sale-5", SaleInput{
		Channel:     ChannelMercadoLivre,
		ProductName: "Headset",
		Quantity:    1,
		UnitPrice:   90,
		NetReceived: 81.5,
		Date:        fixedNow.AddDate(0, 0, -2),
	}, 0, fixedNow)
	entry := ReceiptEntry("fin-1", sale)

	if entry.Type != EntryRevenue || entry.Status != StatusPaid || entry.Category != CategorySales {
		t.Fatalf("unexpected receipt classification: %+v", entry)
	}
	if entry.Amount != 81.5 {
		t.Fatalf("expected amount 81.5, got %v", entry.Amount)
	}
	if entry.SaleID != "sale-5" || !entry.Date.Equal(sale.Date) {
		t.Fatalf("expected receipt linked to sale and dated with it, got %+v", entry)
	}
}

func TestNewEntryDefaults(t *testing.T) {
	entry := NewEntry("fin-2", EntryInput{
		Description: "Hosting",
		Amount:      -40,
		Type:        EntryExpense,
		Category:    CategorySoftware,
	}, fixedNow)

	if entry.Amount != 0 {
		t.Fatalf("expected amount clamped to zero, got %v", entry.Amount)
	}
	if !entry.Date.Equal(fixedNow) {
		t.Fatalf("expected date to default to now, got %s", entry.Date)
	}
	if !entry.IsFixed {
		t.Fatalf("expected software expense to be fixed")
	}
	if entry.Status != StatusPaid {
		t.Fatalf("expected paid status by default, got %s", entry.Status)
	}

	notFixed := false
	explicit := NewEntry("fin-3", EntryInput{
		Description: "One-off license",
		Amount:      99,
		Type:        EntryExpense,
		Category:    CategorySoftware,
		IsFixed:     &notFixed,
	}, fixedNow)
	if explicit.IsFixed {
		t.Fatalf("expected explicit flag to win over category")
	}

	marketing := NewEntry("fin-4", EntryInput{
		Description: "Ads",
		Amount:      10,
		Type:        EntryExpense,
		Category:    CategoryMarketing,
	}, fixedNow)
	if marketing.IsFixed {
		t.Fatalf("expected marketing to be variable")
	}
}

func TestProductMergeKeepsUnsetFields(t *testing.T) {
	sku, name, cost := "SKU-1", "Lamp", 12.5
	p := NewProduct("prod-1", ProductInput{SKU: &sku, Name: &name, SupplierCost: &cost})
	if p.Rarity != RarityCommon {
		t.Fatalf("expected default rarity, got %s", p.Rarity)
	}

	price := 49.9
	merged := p.Merge(ProductInput{ID: "other", TargetPrice: &price})
	if merged.ID != "prod-1" {
		t.Fatalf("expected id to be immutable, got %s", merged.ID)
	}
	if merged.Name != "Lamp" || merged.SupplierCost != 12.5 || merged.TargetPrice != 49.9 {
		t.Fatalf("unexpected merge result: %+v", merged)
	}
}

func TestNewMissionReward(t *testing.T) {
	m := NewMission("m-1", "Launch store", PriorityHigh, fixedNow, 120)
	if m.Reward != 1120 {
		t.Fatalf("expected reward 1120, got %d", m.Reward)
	}
	if m.Completed || m.Progress != 0 || m.Goal != 1 || m.Frequency != FrequencyFree {
		t.Fatalf("unexpected mission defaults: %+v", m)
	}
}

func TestValidationErrorsWrapInvalidInput(t *testing.T) {
	errs := []error{
		SaleInput{Channel: "Carrier Pigeon", ProductName: "x", Quantity: 1}.Validate(),
		SaleInput{Channel: ChannelShopee, Quantity: 1}.Validate(),
		EntryInput{Description: "x", Type: "Gift", Category: CategoryOther}.Validate(),
		ProductInput{}.Validate(),
		MissionCreateRequest{Title: "x", Priority: "Urgent"}.Validate(),
		AppConfig{VisualMode: "billionaire"}.Validate(),
		ExperienceRequest{Amount: 0}.Validate(),
		ExperienceRequest{Amount: MaxExperienceGrant + 1}.Validate(),
	}
	for i, err := range errs {
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestExperienceRequestAcceptsUpToMax(t *testing.T) {
	if err := (ExperienceRequest{Amount: MaxExperienceGrant}).Validate(); err != nil {
		t.Fatalf("expected max grant to pass, got %v", err)
	}
}

func TestNormalizeClampsPercentages(t *testing.T) {
	cfg := AppConfig{Finance: FinanceSettings{CommissionPct: 140, PartnerSharePct: -3}}.Normalize()
	if cfg.Finance.CommissionPct != 100 || cfg.Finance.PartnerSharePct != 0 {
		t.Fatalf("expected clamped percentages, got %+v", cfg.Finance)
	}
	if cfg.VisualMode != ModeNormal || cfg.Theme != ThemeDark || cfg.Finance.Regime != RegimeMEI {
		t.Fatalf("expected defaults for unset enums, got %+v", cfg)
	}
}

func TestDateRangeContainsWholeDays(t *testing.T) {
	r := DateRange{
		From: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	if !r.Contains(time.Date(2026, 3, 31, 23, 59, 0, 0, time.UTC)) {
		t.Fatalf("expected last day to be inclusive")
	}
	if r.Contains(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected next month to be excluded")
	}
	if r.Months() != 1 {
		t.Fatalf("expected one month, got %d", r.Months())
	}
	if (DateRange{}).Months() != 1 || !(DateRange{}).Contains(fixedNow) {
		t.Fatalf("expected open range to contain everything")
	}
}

func TestVisualModeMultiplier(t *testing.T) {
	if ModeNormal.Multiplier() != 1 || ModeRich.Multiplier() != 50 || ModeMillionaire.Multiplier() != 1000 {
		t.Fatalf("unexpected multipliers")
	}
}
