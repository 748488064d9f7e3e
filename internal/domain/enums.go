package domain

type Channel string

const (
	ChannelMercadoLivre Channel = "Mercado Livre"
	ChannelShopee       Channel = "Shopee"
	ChannelWhatsApp     Channel = "WhatsApp"
	ChannelOwnSite      Channel = "Own Site"
	ChannelInstagram    Channel = "Instagram"
	ChannelTikTok       Channel = "TikTok"
	ChannelFacebookAds  Channel = "Facebook Ads"
	ChannelGoogleAds    Channel = "Google Ads"
	ChannelTaboola      Channel = "Taboola"
)

var channels = []Channel{
	ChannelMercadoLivre, ChannelShopee, ChannelWhatsApp, ChannelOwnSite, ChannelInstagram,
	ChannelTikTok, ChannelFacebookAds, ChannelGoogleAds, ChannelTaboola,
}

func (c Channel) Valid() bool {
	for _, known := range channels {
		if c == known {
			return true
		}
	}
	return false
}

type EntryType string

const (
	EntryRevenue    EntryType = "Revenue"
	EntryExpense    EntryType = "Expense"
	EntryInvestment EntryType = "Investment"
)

func (t EntryType) Valid() bool {
	return t == EntryRevenue || t == EntryExpense || t == EntryInvestment
}

// Outflow reports whether the entry takes money out of the cash balance.
func (t EntryType) Outflow() bool {
	return t == EntryExpense || t == EntryInvestment
}

type Category string

const (
	CategorySales       Category = "Sales"
	CategoryCOGS        Category = "COGS"
	CategoryMarketing   Category = "Marketing"
	CategoryTaxes       Category = "Taxes"
	CategoryOperational Category = "Operational"
	CategoryCommissions Category = "Commissions"
	CategorySoftware    Category = "Software"
	CategoryReserve     Category = "Reserve"
	CategoryFixed       Category = "Fixed"
	CategoryVariable    Category = "Variable"
	CategoryOther       Category = "Other"
)

var categories = []Category{
	CategorySales, CategoryCOGS, CategoryMarketing, CategoryTaxes, CategoryOperational,
	CategoryCommissions, CategorySoftware, CategoryReserve, CategoryFixed, CategoryVariable,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// FixedCost reports whether entries of this category are recurring costs
// when the caller does not say otherwise.
func (c Category) FixedCost() bool {
	switch c {
	case CategoryFixed, CategorySoftware, CategoryOperational:
		return true
	default:
		return false
	}
}

type EntryStatus string

const (
	StatusPaid    EntryStatus = "Paid"
	StatusPending EntryStatus = "Pending"
)

func (s EntryStatus) Valid() bool {
	return s == StatusPaid || s == StatusPending
}

type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
)

func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	default:
		return false
	}
}

type TaxRegime string

const (
	RegimeMEI     TaxRegime = "MEI"
	RegimeSimples TaxRegime = "Simples Nacional"
	RegimeCPF     TaxRegime = "CPF"
)

func (r TaxRegime) Valid() bool {
	return r == RegimeMEI || r == RegimeSimples || r == RegimeCPF
}

type VisualMode string

const (
	ModeNormal      VisualMode = "normal"
	ModeRich        VisualMode = "rich"
	ModeMillionaire VisualMode = "millionaire"
)

func (m VisualMode) Valid() bool {
	return m == ModeNormal || m == ModeRich || m == ModeMillionaire
}

// Multiplier is the display factor applied to monetary BI values.
func (m VisualMode) Multiplier() float64 {
	switch m {
	case ModeRich:
		return 50
	case ModeMillionaire:
		return 1000
	default:
		return 1
	}
}

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

func (t Theme) Valid() bool {
	return t == ThemeDark || t == ThemeLight
}

type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

func (p Priority) Valid() bool {
	return p.BaseReward() > 0
}

// BaseReward is the XP a mission of this priority is worth before its bonus.
func (p Priority) BaseReward() int64 {
	switch p {
	case PriorityLow:
		return 200
	case PriorityMedium:
		return 500
	case PriorityHigh:
		return 1000
	case PriorityCritical:
		return 2500
	default:
		return 0
	}
}

type Frequency string

const (
	FrequencyDaily   Frequency = "Daily"
	FrequencyWeekly  Frequency = "Weekly"
	FrequencyMonthly Frequency = "Monthly"
	FrequencyFree    Frequency = "Free"
)
