package domain

import "time"

type Product struct {
	ID           string  `json:"id"`
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	SupplierCost float64 `json:"supplier_cost"`
	TargetPrice  float64 `json:"target_price"`
	Rarity       Rarity  `json:"rarity"`
}

// ProductInput is a partial product. A non-empty ID merges the set fields
// onto the stored record; nil fields are left untouched.
type ProductInput struct {
	ID           string   `json:"id,omitempty"`
	SKU          *string  `json:"sku,omitempty"`
	Name         *string  `json:"name,omitempty"`
	SupplierCost *float64 `json:"supplier_cost,omitempty"`
	TargetPrice  *float64 `json:"target_price,omitempty"`
	Rarity       *Rarity  `json:"rarity,omitempty"`
}

type Sale struct {
	ID              string    `json:"id"`
	Date            time.Time `json:"date"`
	Channel         Channel   `json:"channel"`
	Customer        string    `json:"customer"`
	ProductID       string    `json:"product_id"`
	ProductName     string    `json:"product_name"`
	Quantity        int       `json:"quantity"`
	UnitPrice       float64   `json:"unit_price"`
	GrossRevenue    float64   `json:"gross_revenue"`
	NetReceived     float64   `json:"net_received"`
	PlatformFees    float64   `json:"platform_fees"`
	CostOfGoods     float64   `json:"cost_of_goods"`
	AdsCost         float64   `json:"ads_cost"`
	OperatingProfit float64   `json:"operating_profit"`
	Commission      float64   `json:"commission"`
	RealProfit      float64   `json:"real_profit"`
	Status          string    `json:"status"`
}

// SaleInput holds the caller-owned fields of a sale. Derived amounts are
// computed by NewSale and cannot be supplied.
type SaleInput struct {
	Date        time.Time `json:"date"`
	Channel     Channel   `json:"channel"`
	Customer    string    `json:"customer"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	NetReceived float64   `json:"net_received"`
	CostOfGoods float64   `json:"cost_of_goods"`
	AdsCost     float64   `json:"ads_cost"`
	Status      string    `json:"status,omitempty"`
}

type FinancialEntry struct {
	ID          string      `json:"id"`
	Description string      `json:"description"`
	Amount      float64     `json:"amount"`
	Type        EntryType   `json:"type"`
	Category    Category    `json:"category"`
	Date        time.Time   `json:"date"`
	Status      EntryStatus `json:"status"`
	IsFixed     bool        `json:"is_fixed"`
	SaleID      string      `json:"sale_id,omitempty"`
}

type EntryInput struct {
	Description string      `json:"description"`
	Amount      float64     `json:"amount"`
	Type        EntryType   `json:"type"`
	Category    Category    `json:"category"`
	Date        time.Time   `json:"date"`
	Status      EntryStatus `json:"status"`
	IsFixed     *bool       `json:"is_fixed,omitempty"`
	SaleID      string      `json:"sale_id,omitempty"`
}

type Mission struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Reward     int64     `json:"reward"`
	Progress   int       `json:"progress"`
	Goal       int       `json:"goal"`
	Frequency  Frequency `json:"frequency"`
	Completed  bool      `json:"completed"`
	Category   string    `json:"category"`
	Priority   Priority  `json:"priority"`
	TargetDate time.Time `json:"target_date"`
}

type MissionCreateRequest struct {
	Title      string    `json:"title"`
	Priority   Priority  `json:"priority"`
	TargetDate time.Time `json:"target_date"`
}

type Skill struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

type UserStats struct {
	Level        int      `json:"level"`
	Experience   int64    `json:"experience"`
	NextLevelExp int64    `json:"next_level_exp"`
	Rank         string   `json:"rank"`
	Streak       int      `json:"streak"`
	Achievements []string `json:"achievements"`
	Skills       []Skill  `json:"skills"`
	HealthScore  int      `json:"health_score"`
}

type Targets struct {
	Monthly float64 `json:"monthly"`
	Daily   float64 `json:"daily"`
}

type FinanceSettings struct {
	Regime           TaxRegime `json:"regime"`
	TaxRate          float64   `json:"tax_rate"`
	MonthlyDAS       float64   `json:"monthly_das"`
	EmergencyReserve float64   `json:"emergency_reserve"`
	PartnerSharePct  float64   `json:"partner_share_pct"`
	CommissionPct    float64   `json:"commission_pct"`
}

type AppConfig struct {
	VisualMode      VisualMode      `json:"visual_mode"`
	GhostMode       bool            `json:"ghost_mode"`
	ShowXP          bool            `json:"show_xp"`
	Theme           Theme           `json:"theme"`
	Codename        string          `json:"codename"`
	StoreName       string          `json:"store_name"`
	Targets         Targets         `json:"targets"`
	Finance         FinanceSettings `json:"finance"`
	PomodoroMinutes int             `json:"pomodoro_minutes"`
}

// Snapshot is the master backup of every collection.
type Snapshot struct {
	ID       string           `json:"id"`
	TakenAt  time.Time        `json:"taken_at"`
	Products []Product        `json:"products"`
	Sales    []Sale           `json:"sales"`
	Entries  []FinancialEntry `json:"entries"`
	Missions []Mission        `json:"missions"`
	Stats    UserStats        `json:"stats"`
	Config   AppConfig        `json:"config"`
}

type Metrics struct {
	GrossRevenue     float64 `json:"gross_revenue"`
	NetReceived      float64 `json:"net_received"`
	AdSpend          float64 `json:"ad_spend"`
	CostOfGoods      float64 `json:"cost_of_goods"`
	PlatformFees     float64 `json:"platform_fees"`
	Commission       float64 `json:"commission"`
	RealProfit       float64 `json:"real_profit"`
	Orders           int     `json:"orders"`
	AverageOrder     float64 `json:"average_order"`
	GrossMarginPct   float64 `json:"gross_margin_pct"`
	OperatingMargin  float64 `json:"operating_margin_pct"`
	NetMarginPct     float64 `json:"net_margin_pct"`
	NetProfit        float64 `json:"net_profit"`
	ROAS             float64 `json:"roas"`
	ROIPct           float64 `json:"roi_pct"`
	MarkupPct        float64 `json:"markup_pct"`
	CAC              float64 `json:"cac"`
	BreakEven        float64 `json:"break_even"`
	FixedCosts       float64 `json:"fixed_costs"`
	CashBalance      float64 `json:"cash_balance"`
	RunwayDays       float64 `json:"runway_days"`
	TaxProvision     float64 `json:"tax_provision"`
	Payables30       float64 `json:"payables_30d"`
	Receivables30    float64 `json:"receivables_30d"`
	TargetProgress   float64 `json:"target_progress_pct"`
	Multiplier       float64 `json:"multiplier"`
	Placeholder      bool    `json:"placeholder"`
}

type ProductProfit struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Profit    float64 `json:"profit"`
	Rank      int     `json:"rank"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	ExpiresAt   string `json:"expires_at"`
}

type Actor struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type UserAccount struct {
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type ExperienceRequest struct {
	Amount int64 `json:"amount"`
}

type ExperienceResponse struct {
	Stats    UserStats `json:"stats"`
	LevelUps []int     `json:"level_ups"`
}
