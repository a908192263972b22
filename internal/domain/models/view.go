package models

import "time"

// Section is one facet inside a view: the decoded data when Available, or
// the reason it is not.
type Section[T any] struct {
	Available bool      `json:"available"`
	Data      T         `json:"data"`
	ErrorKind ErrorKind `json:"error_kind,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Present wraps successfully decoded data.
func Present[T any](data T) Section[T] {
	return Section[T]{Available: true, Data: data}
}

// Unavailable marks a section whose facet failed.
func Unavailable[T any](err *LoadError) Section[T] {
	s := Section[T]{ErrorKind: err.Kind}
	if err.Err != nil {
		s.Error = err.Err.Error()
	}
	return s
}

// Facets is the joined fan-out: the five optional facets as sections plus
// the price quote, which a committed view always has.
type Facets struct {
	Price      PriceQuote
	Overview   Section[CompanyOverview]
	Financials Section[FinancialMetrics]
	News       Section[[]NewsItem]
	Indicators Section[TechnicalIndicators]
	Health     Section[HealthScore]
}

type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionFlat Direction = "flat"
)

type RSIBand string

const (
	RSIOverbought  RSIBand = "Overbought"
	RSIOversold    RSIBand = "Oversold"
	RSINeutral     RSIBand = "Neutral"
	RSIUnavailable RSIBand = "unavailable"
)

type MACDBand string

const (
	MACDBullish          MACDBand = "bullish"
	MACDBearish          MACDBand = "bearish"
	MACDInsufficientData MACDBand = "insufficient data"
)

type HealthBand string

const (
	HealthStrong      HealthBand = "Strong"
	HealthModerate    HealthBand = "Moderate"
	HealthWeak        HealthBand = "Weak"
	HealthUnavailable HealthBand = "unavailable"
)

// PriceView holds display strings for the quote header.
type PriceView struct {
	Current       string    `json:"current"`
	Change        string    `json:"change"`
	ChangePercent string    `json:"change_percent"`
	Open          string    `json:"open"`
	High          string    `json:"high"`
	Low           string    `json:"low"`
	Direction     Direction `json:"direction"`
}

type OverviewView struct {
	Name        string `json:"name"`
	Industry    string `json:"industry"`
	MarketCap   string `json:"market_cap"`
	Country     string `json:"country"`
	Website     string `json:"website"`
	Employees   string `json:"employees"`
	IPODate     string `json:"ipo_date"`
	Description string `json:"description"`
	LogoURL     string `json:"logo"`
}

type FinancialsView struct {
	PERatio         string `json:"pe_ratio"`
	ForwardPE       string `json:"forward_pe"`
	PEGRatio        string `json:"peg_ratio"`
	ProfitMargin    string `json:"profit_margin"`
	EPS             string `json:"earnings_per_share"`
	RevenueGrowth5Y string `json:"revenue_growth_5y"`
	DebtToEquity    string `json:"debt_to_equity"`
	FreeCashFlow    string `json:"free_cash_flow"`
	OperatingMargin string `json:"operating_margin"`
	GrossMargin     string `json:"gross_margin"`
	ROE             string `json:"return_on_equity"`
	ROA             string `json:"return_on_assets"`
	EPSGrowth5Y     string `json:"eps_growth_5y"`
	QuickRatio      string `json:"quick_ratio"`
	FCFPerShare     string `json:"free_cash_flow_per_share"`
	DebtToAssets    string `json:"debt_to_assets"`
}

type NewsView struct {
	Headline  string `json:"headline"`
	Summary   string `json:"summary"`
	Source    string `json:"source"`
	URL       string `json:"url"`
	Published string `json:"published"`
}

type IndicatorsView struct {
	RSI           string   `json:"rsi"`
	RSIBand       RSIBand  `json:"rsi_band"`
	MACD          string   `json:"macd"`
	MACDSignal    string   `json:"macd_signal"`
	MACDHistogram string   `json:"macd_hist"`
	MACDBand      MACDBand `json:"macd_band"`
}

type HealthView struct {
	Score          string     `json:"score"`
	Band           HealthBand `json:"band"`
	Interpretation string     `json:"interpretation"`
	Reasons        []string   `json:"reasons"`
	GaugeAngle     float64    `json:"gauge_angle"`
}

// ChartPoint is one day of the simulated series.
type ChartPoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// Chart is a synthetic random walk seeded from the current price. It is not
// market data; Simulated is always true.
type Chart struct {
	Simulated bool         `json:"simulated"`
	Label     string       `json:"label"`
	Points    []ChartPoint `json:"points"`
}

// Insight is one canned analysis commentary, carried in every supported
// language so the presenter can pick without another load.
type Insight struct {
	Template int    `json:"template"`
	EN       string `json:"en"`
	TH       string `json:"th"`
}

// Derived is everything MetricsDeriver computes for one load.
type Derived struct {
	Price      PriceView      `json:"price"`
	Overview   OverviewView   `json:"overview"`
	Financials FinancialsView `json:"financials"`
	News       []NewsView     `json:"news"`
	Indicators IndicatorsView `json:"indicators"`
	Health     HealthView     `json:"health"`
	Risks      []RiskFactor   `json:"risks"`
	Chart      Chart          `json:"chart"`
	Insight    Insight        `json:"insight"`
}

// ViewModel is the immutable, render-ready result of one completed load.
type ViewModel struct {
	Symbol      Symbol                       `json:"symbol"`
	GeneratedAt time.Time                    `json:"generated_at"`
	Price       Section[PriceQuote]          `json:"price"`
	Overview    Section[CompanyOverview]     `json:"overview"`
	Financials  Section[FinancialMetrics]    `json:"financials"`
	News        Section[[]NewsItem]          `json:"news"`
	Indicators  Section[TechnicalIndicators] `json:"indicators"`
	Health      Section[HealthScore]         `json:"health"`
	Derived     Derived                      `json:"derived"`
}
