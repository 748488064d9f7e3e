package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrDuplicateSKU = errors.New("duplicate sku")
)

const (
	RankRecruit      = "Recruit"
	RankOperator     = "Operator"
	RankSpecialist   = "Specialist"
	RankCommander    = "Commander"
	RankLivingLegend = "Living Legend"
)

const SaleStatusCompleted = "Completed"

var hundred = decimal.NewFromInt(100)

// RoundCents rounds half away from zero to two decimal places.
func RoundCents(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func money(v float64) decimal.Decimal {
	return nonNegative(decimal.NewFromFloat(v))
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func (in SaleInput) Validate() error {
	if !in.Channel.Valid() {
		return invalid("unknown channel %q", in.Channel)
	}
	if strings.TrimSpace(in.ProductID) == "" && strings.TrimSpace(in.ProductName) == "" {
		return invalid("product is required")
	}
	if in.Quantity <= 0 {
		return invalid("quantity must be positive")
	}
	if in.UnitPrice < 0 || in.NetReceived < 0 || in.CostOfGoods < 0 || in.AdsCost < 0 {
		return invalid("amounts cannot be negative")
	}
	return nil
}

// NewSale builds a sale from caller-owned fields. Every derived amount is
// computed here; commissionPct is the staff share of operating profit.
func NewSale(id string, in SaleInput, commissionPct float64, now time.Time) Sale {
	gross := nonNegative(decimal.NewFromFloat(in.UnitPrice).Mul(decimal.NewFromInt(int64(in.Quantity))))
	net := money(in.NetReceived)
	fees := nonNegative(gross.Sub(net))
	cogs := money(in.CostOfGoods)
	ads := money(in.AdsCost)
	operating := nonNegative(net.Sub(cogs).Sub(ads))

	commission := decimal.Zero
	if operating.IsPositive() && commissionPct > 0 {
		commission = operating.Mul(decimal.NewFromFloat(commissionPct)).Div(hundred).Round(2)
	}
	realProfit := nonNegative(operating.Sub(commission))

	date := in.Date
	if date.IsZero() {
		date = now
	}
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = SaleStatusCompleted
	}

	return Sale{
		ID:              id,
		Date:            date.UTC(),
		Channel:         in.Channel,
		Customer:        strings.TrimSpace(in.Customer),
		ProductID:       in.ProductID,
		ProductName:     strings.TrimSpace(in.ProductName),
		Quantity:        in.Quantity,
		UnitPrice:       in.UnitPrice,
		GrossRevenue:    toFloat(gross),
		NetReceived:     toFloat(net),
		PlatformFees:    toFloat(fees),
		CostOfGoods:     toFloat(cogs),
		AdsCost:         toFloat(ads),
		OperatingProfit: toFloat(operating),
		Commission:      toFloat(commission),
		RealProfit:      toFloat(realProfit),
		Status:          status,
	}
}

// ReceiptEntry is the paid revenue entry that mirrors the cash of a sale.
func ReceiptEntry(id string, sale Sale) FinancialEntry {
	name := sale.ProductName
	if name == "" {
		name = sale.ProductID
	}
	return FinancialEntry{
		ID:          id,
		Description: "Receipt: " + name,
		Amount:      sale.NetReceived,
		Type:        EntryRevenue,
		Category:    CategorySales,
		Date:        sale.Date,
		Status:      StatusPaid,
		SaleID:      sale.ID,
	}
}

func (in EntryInput) Validate() error {
	if strings.TrimSpace(in.Description) == "" {
		return invalid("description is required")
	}
	if !in.Type.Valid() {
		return invalid("unknown entry type %q", in.Type)
	}
	if !in.Category.Valid() {
		return invalid("unknown category %q", in.Category)
	}
	if in.Status != "" && !in.Status.Valid() {
		return invalid("unknown status %q", in.Status)
	}
	return nil
}

func NewEntry(id string, in EntryInput, now time.Time) FinancialEntry {
	date := in.Date
	if date.IsZero() {
		date = now
	}
	status := in.Status
	if status == "" {
		status = StatusPaid
	}
	fixed := in.Category.FixedCost()
	if in.IsFixed != nil {
		fixed = *in.IsFixed
	}
	return FinancialEntry{
		ID:          id,
		Description: strings.TrimSpace(in.Description),
		Amount:      toFloat(money(in.Amount)),
		Type:        in.Type,
		Category:    in.Category,
		Date:        date.UTC(),
		Status:      status,
		IsFixed:     fixed,
		SaleID:      in.SaleID,
	}
}

func (in ProductInput) Validate() error {
	if in.ID == "" {
		if in.SKU == nil || strings.TrimSpace(*in.SKU) == "" {
			return invalid("sku is required")
		}
		if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
			return invalid("name is required")
		}
	}
	if in.SupplierCost != nil && *in.SupplierCost < 0 {
		return invalid("supplier cost cannot be negative")
	}
	if in.TargetPrice != nil && *in.TargetPrice < 0 {
		return invalid("target price cannot be negative")
	}
	if in.Rarity != nil && !in.Rarity.Valid() {
		return invalid("unknown rarity %q", *in.Rarity)
	}
	return nil
}

func NewProduct(id string, in ProductInput) Product {
	p := Product{ID: id, Rarity: RarityCommon}
	return p.Merge(in)
}

// Merge applies the set fields of in. The id is never changed.
func (p Product) Merge(in ProductInput) Product {
	if in.SKU != nil {
		p.SKU = strings.TrimSpace(*in.SKU)
	}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.SupplierCost != nil {
		p.SupplierCost = *in.SupplierCost
	}
	if in.TargetPrice != nil {
		p.TargetPrice = *in.TargetPrice
	}
	if in.Rarity != nil {
		p.Rarity = *in.Rarity
	}
	return p
}

func (in MissionCreateRequest) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return invalid("title is required")
	}
	if !in.Priority.Valid() {
		return invalid("unknown priority %q", in.Priority)
	}
	return nil
}

// NewMission returns an open mission worth the priority base plus bonus.
func NewMission(id, title string, priority Priority, target time.Time, bonus int64) Mission {
	if bonus < 0 {
		bonus = 0
	}
	return Mission{
		ID:         id,
		Title:      strings.TrimSpace(title),
		Reward:     priority.BaseReward() + bonus,
		Goal:       1,
		Frequency:  FrequencyFree,
		Category:   "CEO",
		Priority:   priority,
		TargetDate: target,
	}
}

func DefaultStats() UserStats {
	return UserStats{
		Level:        1,
		NextLevelExp: 1000,
		Rank:         RankRecruit,
		Achievements: []string{},
		Skills:       []Skill{},
		HealthScore:  100,
	}
}

func DefaultConfig() AppConfig {
	return AppConfig{
		VisualMode: ModeNormal,
		ShowXP:     true,
		Theme:      ThemeDark,
		Codename:   "Operator Alpha",
		StoreName:  "Drop Command",
		Finance: FinanceSettings{
			Regime:        RegimeMEI,
			MonthlyDAS:    72,
			CommissionPct: 5,
		},
		PomodoroMinutes: 25,
	}
}

// Normalize clamps percentages and fills unset enums with defaults.
func (c AppConfig) Normalize() AppConfig {
	def := DefaultConfig()
	if c.VisualMode == "" {
		c.VisualMode = def.VisualMode
	}
	if c.Theme == "" {
		c.Theme = def.Theme
	}
	if c.Finance.Regime == "" {
		c.Finance.Regime = def.Finance.Regime
	}
	if c.PomodoroMinutes <= 0 {
		c.PomodoroMinutes = def.PomodoroMinutes
	}
	c.Finance.CommissionPct = clampPct(c.Finance.CommissionPct)
	c.Finance.PartnerSharePct = clampPct(c.Finance.PartnerSharePct)
	c.Finance.TaxRate = clampPct(c.Finance.TaxRate)
	c.Finance.MonthlyDAS = toFloat(money(c.Finance.MonthlyDAS))
	c.Finance.EmergencyReserve = toFloat(money(c.Finance.EmergencyReserve))
	c.Targets.Monthly = toFloat(money(c.Targets.Monthly))
	c.Targets.Daily = toFloat(money(c.Targets.Daily))
	return c
}

// MaxExperienceGrant bounds a single manual grant.
const MaxExperienceGrant = 1_000_000

func (r ExperienceRequest) Validate() error {
	if r.Amount <= 0 {
		return invalid("amount must be positive")
	}
	if r.Amount > MaxExperienceGrant {
		return invalid("amount must not exceed %d", MaxExperienceGrant)
	}
	return nil
}

func (c AppConfig) Validate() error {
	if c.VisualMode != "" && !c.VisualMode.Valid() {
		return invalid("unknown visual mode %q", c.VisualMode)
	}
	if c.Theme != "" && !c.Theme.Valid() {
		return invalid("unknown theme %q", c.Theme)
	}
	if c.Finance.Regime != "" && !c.Finance.Regime.Valid() {
		return invalid("unknown tax regime %q", c.Finance.Regime)
	}
	return nil
}

func clampPct(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

// DateRange filters by calendar day in UTC. A zero bound is open.
type DateRange struct {
	From time.Time
	To   time.Time
}

func (r DateRange) IsZero() bool {
	return r.From.IsZero() && r.To.IsZero()
}

func (r DateRange) Contains(t time.Time) bool {
	t = t.UTC()
	if !r.From.IsZero() && t.Before(StartOfDay(r.From)) {
		return false
	}
	if !r.To.IsZero() && !t.Before(StartOfDay(r.To).AddDate(0, 0, 1)) {
		return false
	}
	return true
}

// Days counts the calendar days of a closed range; open ranges report 0.
func (r DateRange) Days() int {
	if r.From.IsZero() || r.To.IsZero() {
		return 0
	}
	n := int(StartOfDay(r.To).Sub(StartOfDay(r.From)).Hours()/24) + 1
	if n < 1 {
		return 0
	}
	return n
}

// Months counts the calendar months touched by a closed range, at least one.
func (r DateRange) Months() int {
	if r.From.IsZero() || r.To.IsZero() {
		return 1
	}
	from, to := r.From.UTC(), r.To.UTC()
	n := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month()) + 1
	if n < 1 {
		return 1
	}
	return n
}

func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
