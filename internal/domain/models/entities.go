package models

// PriceQuote is the price facet. Its presence proves the symbol exists.
type PriceQuote struct {
	Symbol        Symbol   `json:"symbol"`
	Current       float64  `json:"current"`
	Open          float64  `json:"open"`
	High          float64  `json:"high"`
	Low           float64  `json:"low"`
	Change        float64  `json:"change"`
	ChangePercent float64  `json:"change_percent"`
	PreviousClose *float64 `json:"previous_close,omitempty"`
}

// CompanyOverview holds profile data. MarketCap is in millions, unscaled.
type CompanyOverview struct {
	Name        string   `json:"name"`
	Industry    string   `json:"industry"`
	Exchange    string   `json:"exchange,omitempty"`
	MarketCap   *float64 `json:"market_cap"`
	Country     string   `json:"country"`
	Website     string   `json:"website"`
	Employees   *int64   `json:"employees"`
	IPODate     string   `json:"ipo_date"`
	Description string   `json:"description"`
	LogoURL     string   `json:"logo"`
}

// FinancialMetrics holds ratios; every field is independently optional.
type FinancialMetrics struct {
	PERatio         *float64 `json:"pe_ratio"`
	ForwardPE       *float64 `json:"forward_pe"`
	PEGRatio        *float64 `json:"peg_ratio"`
	ProfitMargin    *float64 `json:"profit_margin"`
	EPS             *float64 `json:"earnings_per_share"`
	RevenueGrowth5Y *float64 `json:"revenue_growth_5y"`
	DebtToEquity    *float64 `json:"debt_to_equity"`
	FreeCashFlow    *float64 `json:"free_cash_flow"`
	OperatingMargin *float64 `json:"operating_margin"`
	GrossMargin     *float64 `json:"gross_margin"`
	ROE             *float64 `json:"return_on_equity"`
	ROA             *float64 `json:"return_on_assets"`
	EPSGrowth5Y     *float64 `json:"eps_growth_5y"`
	QuickRatio      *float64 `json:"quick_ratio"`
	FCFPerShare     *float64 `json:"free_cash_flow_per_share"`
	DebtToAssets    *float64 `json:"debt_to_assets"`
}

// NewsItem is one article. Published is epoch seconds, zero when unknown.
type NewsItem struct {
	Headline  string `json:"headline"`
	Summary   string `json:"summary"`
	Source    string `json:"source"`
	URL       string `json:"url"`
	Published int64  `json:"datetime"`
}

type TechnicalIndicators struct {
	RSI           *float64 `json:"rsi"`
	MACD          *float64 `json:"macd"`
	MACDSignal    *float64 `json:"macd_signal"`
	MACDHistogram *float64 `json:"macd_hist"`
}

// HealthScore is the backend's synthetic rating. Score is within [0,100]
// when present.
type HealthScore struct {
	Score          *float64 `json:"health_score"`
	Interpretation string   `json:"interpretation"`
	Reasons        []string `json:"reasons"`
}

// RiskFactor is a derived finding; Icon is a tag the presenter maps to a glyph.
type RiskFactor struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
