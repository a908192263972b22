package derive

import (
	"hash/fnv"
	"math/rand/v2"
	"time"

	"StockLens/internal/domain/models"
)

// Options carries the scaling conventions and limits that differ between
// backends.
type Options struct {
	Thresholds Thresholds

	// GrowthAsFraction renders 5Y growth fields as 0..1 ratios.
	GrowthAsFraction bool
	// MarginAsFraction renders margins and returns as 0..1 ratios.
	MarginAsFraction bool
	// CashFlowInMillions scales free cash flow up by 1e6 before formatting.
	CashFlowInMillions bool

	ChartDays int
	NewsLimit int

	// Seed fixes the chart random walk and the insight pick. Zero seeds from
	// the load time.
	Seed uint64
}

func DefaultOptions() Options {
	return Options{
		Thresholds:       DefaultThresholds(),
		GrowthAsFraction: true,
		ChartDays:        30,
		NewsLimit:        10,
	}
}

// Deriver is the MetricsDeriver. It holds no mutable state and is safe for
// concurrent use.
type Deriver struct {
	opts Options
}

func New(opts Options) *Deriver {
	opts.Thresholds.RatiosAsFraction = opts.MarginAsFraction
	return &Deriver{opts: opts}
}

// Derive computes every display value for one joined fan-out. Unavailable
// sections produce placeholders, never errors.
func (d *Deriver) Derive(f models.Facets, now time.Time) models.Derived {
	var (
		fin    *models.FinancialMetrics
		health *models.HealthScore
	)
	if f.Financials.Available {
		fin = &f.Financials.Data
	}
	if f.Health.Available {
		health = &f.Health.Data
	}

	rng := d.rng(f.Price.Symbol, now)
	chart := SimulateHistory(f.Price.Current, d.opts.ChartDays, rng, now)

	return models.Derived{
		Price:      d.price(f.Price),
		Overview:   d.overview(f.Price.Symbol, f.Overview),
		Financials: d.financials(fin),
		News:       d.news(f.News, now),
		Indicators: d.indicators(f.Indicators),
		Health:     d.health(health),
		Risks:      DeriveRiskFactors(fin, health, d.opts.Thresholds),
		Chart:      chart,
		Insight:    PickInsight(rng),
	}
}

func (d *Deriver) rng(symbol models.Symbol, now time.Time) *rand.Rand {
	seed := d.opts.Seed
	if seed == 0 {
		seed = uint64(now.UnixNano())
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(symbol))
	return rand.New(rand.NewPCG(seed, h.Sum64()))
}

func (d *Deriver) price(q models.PriceQuote) models.PriceView {
	return models.PriceView{
		Current:       FormatNumber(&q.Current, 2),
		Change:        FormatSigned(&q.Change, 2),
		ChangePercent: signedPercent(q.ChangePercent),
		Open:          nonZero(q.Open),
		High:          nonZero(q.High),
		Low:           nonZero(q.Low),
		Direction:     PriceDirection(q.Change),
	}
}

func (d *Deriver) overview(symbol models.Symbol, s models.Section[models.CompanyOverview]) models.OverviewView {
	o := s.Data
	name := o.Name
	if name == "" {
		name = string(symbol)
	}
	return models.OverviewView{
		Name:        name,
		Industry:    orPlaceholder(o.Industry),
		MarketCap:   FormatMarketCap(o.MarketCap),
		Country:     orPlaceholder(o.Country),
		Website:     orPlaceholder(o.Website),
		Employees:   FormatCount(o.Employees),
		IPODate:     orPlaceholder(o.IPODate),
		Description: DescribeCompany(symbol, o),
		LogoURL:     o.LogoURL,
	}
}

func (d *Deriver) financials(fin *models.FinancialMetrics) models.FinancialsView {
	if fin == nil {
		fin = &models.FinancialMetrics{}
	}
	cashFlow := fin.FreeCashFlow
	if d.opts.CashFlowInMillions {
		cashFlow = scaled(cashFlow, 1e6)
	}
	return models.FinancialsView{
		PERatio:         FormatNumber(fin.PERatio, 2),
		ForwardPE:       FormatNumber(fin.ForwardPE, 2),
		PEGRatio:        FormatNumber(fin.PEGRatio, 2),
		ProfitMargin:    d.margin(fin.ProfitMargin),
		EPS:             FormatNumber(fin.EPS, 2),
		RevenueGrowth5Y: d.growth(fin.RevenueGrowth5Y),
		DebtToEquity:    FormatNumber(fin.DebtToEquity, 2),
		FreeCashFlow:    FormatCashFlow(cashFlow),
		OperatingMargin: d.margin(fin.OperatingMargin),
		GrossMargin:     d.margin(fin.GrossMargin),
		ROE:             d.margin(fin.ROE),
		ROA:             d.margin(fin.ROA),
		EPSGrowth5Y:     d.growth(fin.EPSGrowth5Y),
		QuickRatio:      FormatNumber(fin.QuickRatio, 2),
		FCFPerShare:     FormatNumber(fin.FCFPerShare, 2),
		DebtToAssets:    FormatNumber(fin.DebtToAssets, 2),
	}
}

func (d *Deriver) margin(v *float64) string {
	if d.opts.MarginAsFraction {
		return FormatPercent(v)
	}
	return FormatPercentDirect(v)
}

func (d *Deriver) growth(v *float64) string {
	if d.opts.GrowthAsFraction {
		return FormatPercent(v)
	}
	return FormatPercentDirect(v)
}

func (d *Deriver) news(s models.Section[[]models.NewsItem], now time.Time) []models.NewsView {
	out := []models.NewsView{}
	if !s.Available {
		return out
	}
	for i, n := range s.Data {
		if d.opts.NewsLimit > 0 && i >= d.opts.NewsLimit {
			break
		}
		out = append(out, models.NewsView{
			Headline:  n.Headline,
			Summary:   n.Summary,
			Source:    orPlaceholder(n.Source),
			URL:       n.URL,
			Published: RelativeTime(n.Published, now),
		})
	}
	return out
}

func (d *Deriver) indicators(s models.Section[models.TechnicalIndicators]) models.IndicatorsView {
	ind := s.Data
	return models.IndicatorsView{
		RSI:           FormatNumber(ind.RSI, 2),
		RSIBand:       ClassifyRSI(ind.RSI),
		MACD:          FormatNumber(ind.MACD, 2),
		MACDSignal:    FormatNumber(ind.MACDSignal, 2),
		MACDHistogram: FormatNumber(ind.MACDHistogram, 2),
		MACDBand:      ClassifyMACD(ind.MACD, ind.MACDSignal),
	}
}

func (d *Deriver) health(h *models.HealthScore) models.HealthView {
	if h == nil {
		h = &models.HealthScore{}
	}
	band := ClassifyHealthBand(h.Score)
	interp := h.Interpretation
	if interp == "" {
		interp = string(band)
	}
	return models.HealthView{
		Score:          FormatNumber(h.Score, 0),
		Band:           band,
		Interpretation: interp,
		Reasons:        append([]string{}, h.Reasons...),
		GaugeAngle:     GaugeAngle(h.Score),
	}
}

func signedPercent(v float64) string {
	s := FormatSigned(&v, 2)
	if s == Placeholder {
		return s
	}
	return s + "%"
}

// nonZero treats 0 as missing for session prices the backend zero-fills.
func nonZero(v float64) string {
	if v == 0 {
		return Placeholder
	}
	return FormatNumber(&v, 2)
}
