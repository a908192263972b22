package gateway

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"StockLens/internal/domain/models"
	"StockLens/pkg/util"
)

// ErrNoQuote is returned when a price payload carries no usable price.
var ErrNoQuote = errors.New("price payload has no current price")

// flexFloat accepts a JSON number, a numeric string, or null. Anything else
// decodes as absent rather than failing the whole payload.
type flexFloat struct{ p *float64 }

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	f.p = nil
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return nil
		}
		s = strings.TrimSpace(strings.TrimSuffix(str, "%"))
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	f.p = &v
	return nil
}

// flexTime accepts epoch seconds or milliseconds as a number or string, or
// a formatted date. Unparseable values decode as zero.
type flexTime struct{ unix int64 }

func (f *flexTime) UnmarshalJSON(b []byte) error {
	f.unix = 0
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	var t time.Time
	var ok bool
	switch x := v.(type) {
	case float64:
		t, ok = util.FromEpoch(x)
	case string:
		t, ok = util.ParseTime(x)
	}
	if ok {
		f.unix = t.Unix()
	}
	return nil
}

// first returns the first present value.
func first(vals ...flexFloat) *float64 {
	for _, v := range vals {
		if v.p != nil {
			return v.p
		}
	}
	return nil
}

func firstString(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func or0(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

type priceWire struct {
	CurrentPrice  flexFloat `json:"current_price"`
	Current       flexFloat `json:"current"`
	Open          flexFloat `json:"open"`
	High          flexFloat `json:"high"`
	Low           flexFloat `json:"low"`
	Change        flexFloat `json:"change"`
	ChangePercent flexFloat `json:"change_percent"`
	Percent       flexFloat `json:"percent"`
	PreviousClose flexFloat `json:"previous_close"`
}

// DecodePrice decodes the price facet. The quote always carries the requested
// symbol; any symbol echoed in the body is ignored. A quote without a positive
// current price is treated as an unknown symbol.
func DecodePrice(symbol models.Symbol, raw json.RawMessage) (models.PriceQuote, error) {
	var w priceWire
	if err := unmarshalObject(raw, &w); err != nil {
		return models.PriceQuote{}, err
	}
	cur := first(w.CurrentPrice, w.Current)
	if cur == nil || *cur <= 0 {
		return models.PriceQuote{}, ErrNoQuote
	}
	q := models.PriceQuote{
		Symbol:        symbol,
		Current:       *cur,
		Open:          or0(w.Open.p),
		High:          or0(w.High.p),
		Low:           or0(w.Low.p),
		Change:        or0(w.Change.p),
		ChangePercent: or0(first(w.ChangePercent, w.Percent)),
		PreviousClose: w.PreviousClose.p,
	}
	return q, nil
}

type overviewWire struct {
	Name        string    `json:"name"`
	Industry    string    `json:"industry"`
	Sector      string    `json:"sector"`
	Exchange    string    `json:"exchange"`
	MarketCap   flexFloat `json:"market_cap"`
	Country     string    `json:"country"`
	Website     string    `json:"website"`
	WebURL      string    `json:"weburl"`
	Employees   flexFloat `json:"employees"`
	IPODate     string    `json:"ipo_date"`
	IPO         string    `json:"ipo"`
	Description string    `json:"description"`
	Logo        string    `json:"logo"`
}

func DecodeOverview(raw json.RawMessage) (models.CompanyOverview, error) {
	var w overviewWire
	if err := unmarshalObject(raw, &w); err != nil {
		return models.CompanyOverview{}, err
	}
	o := models.CompanyOverview{
		Name:        strings.TrimSpace(w.Name),
		Industry:    firstString(w.Industry, w.Sector),
		Exchange:    strings.TrimSpace(w.Exchange),
		MarketCap:   w.MarketCap.p,
		Country:     strings.TrimSpace(w.Country),
		Website:     cleanURL(firstString(w.Website, w.WebURL)),
		IPODate:     firstString(w.IPODate, w.IPO),
		Description: strings.TrimSpace(w.Description),
		LogoURL:     cleanURL(w.Logo),
	}
	if w.Employees.p != nil && *w.Employees.p >= 0 {
		n := int64(*w.Employees.p)
		o.Employees = &n
	}
	return o, nil
}

type financialsWire struct {
	PERatio         flexFloat `json:"pe_ratio"`
	ForwardPE       flexFloat `json:"forward_pe"`
	PEGRatio        flexFloat `json:"peg_ratio"`
	ProfitMargin    flexFloat `json:"profit_margin"`
	EPS             flexFloat `json:"earnings_per_share"`
	EPSShort        flexFloat `json:"eps"`
	RevenueGrowth5Y flexFloat `json:"revenue_growth_5y"`
	DebtToEquity    flexFloat `json:"debt_to_equity"`
	DebtEquity      flexFloat `json:"debt_equity"`
	FreeCashFlow    flexFloat `json:"free_cash_flow"`
	OperatingMargin flexFloat `json:"operating_margin"`
	GrossMargin     flexFloat `json:"gross_margin"`
	ROE             flexFloat `json:"return_on_equity"`
	ROEShort        flexFloat `json:"roe"`
	ROA             flexFloat `json:"return_on_assets"`
	ROAShort        flexFloat `json:"roa"`
	EPSGrowth5Y     flexFloat `json:"eps_growth_5y"`
	QuickRatio      flexFloat `json:"quick_ratio"`
	FCFPerShare     flexFloat `json:"free_cash_flow_per_share"`
	DebtToAssets    flexFloat `json:"debt_to_assets"`
}

// DecodeFinancials decodes ratios as-is; scaling is a display concern.
func DecodeFinancials(raw json.RawMessage) (models.FinancialMetrics, error) {
	var w financialsWire
	if err := unmarshalObject(raw, &w); err != nil {
		return models.FinancialMetrics{}, err
	}
	return models.FinancialMetrics{
		PERatio:         w.PERatio.p,
		ForwardPE:       w.ForwardPE.p,
		PEGRatio:        w.PEGRatio.p,
		ProfitMargin:    w.ProfitMargin.p,
		EPS:             first(w.EPS, w.EPSShort),
		RevenueGrowth5Y: w.RevenueGrowth5Y.p,
		DebtToEquity:    first(w.DebtToEquity, w.DebtEquity),
		FreeCashFlow:    w.FreeCashFlow.p,
		OperatingMargin: w.OperatingMargin.p,
		GrossMargin:     w.GrossMargin.p,
		ROE:             first(w.ROE, w.ROEShort),
		ROA:             first(w.ROA, w.ROAShort),
		EPSGrowth5Y:     w.EPSGrowth5Y.p,
		QuickRatio:      w.QuickRatio.p,
		FCFPerShare:     w.FCFPerShare.p,
		DebtToAssets:    w.DebtToAssets.p,
	}, nil
}

type newsItemWire struct {
	Headline  string   `json:"headline"`
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	Source    string   `json:"source"`
	URL       string   `json:"url"`
	Datetime  flexTime `json:"datetime"`
	Published flexTime `json:"published_at"`
}

type newsWire struct {
	News     []newsItemWire `json:"news"`
	Articles []newsItemWire `json:"articles"`
}

// DecodeNews accepts {"news": [...]}, {"articles": [...]} or a bare array.
// Items without a headline or title are dropped.
func DecodeNews(raw json.RawMessage) ([]models.NewsItem, error) {
	body := bytes.TrimSpace(raw)
	var items []newsItemWire
	if len(body) > 0 && body[0] == '[' {
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, fmt.Errorf("decode news: %w", err)
		}
	} else {
		var w newsWire
		if err := unmarshalObject(body, &w); err != nil {
			return nil, err
		}
		items = w.News
		if len(items) == 0 {
			items = w.Articles
		}
	}

	out := make([]models.NewsItem, 0, len(items))
	for _, it := range items {
		headline := firstString(it.Headline, it.Title)
		if headline == "" {
			continue
		}
		n := models.NewsItem{
			Headline: headline,
			Summary:  strings.TrimSpace(it.Summary),
			Source:   strings.TrimSpace(it.Source),
			URL:      cleanURL(it.URL),
		}
		if ts := it.Datetime.unix; ts > 0 {
			n.Published = ts
		} else if ts := it.Published.unix; ts > 0 {
			n.Published = ts
		}
		out = append(out, n)
	}
	return out, nil
}

type macdObject struct {
	MACD      flexFloat `json:"macd"`
	Signal    flexFloat `json:"signal"`
	Histogram flexFloat `json:"histogram"`
	Hist      flexFloat `json:"hist"`
}

type indicatorsWire struct {
	RSI        flexFloat       `json:"rsi"`
	MACD       json.RawMessage `json:"macd"`
	MACDSignal flexFloat       `json:"macd_signal"`
	MACDHist   flexFloat       `json:"macd_hist"`
}

// DecodeIndicators accepts MACD as a scalar or as {macd, signal, histogram}.
// A missing histogram is filled in as MACD minus signal.
func DecodeIndicators(raw json.RawMessage) (models.TechnicalIndicators, error) {
	var w indicatorsWire
	if err := unmarshalObject(raw, &w); err != nil {
		return models.TechnicalIndicators{}, err
	}
	ind := models.TechnicalIndicators{
		RSI:           w.RSI.p,
		MACDSignal:    w.MACDSignal.p,
		MACDHistogram: w.MACDHist.p,
	}

	macd := bytes.TrimSpace(w.MACD)
	if len(macd) > 0 && macd[0] == '{' {
		var obj macdObject
		if err := json.Unmarshal(macd, &obj); err == nil {
			ind.MACD = obj.MACD.p
			if ind.MACDSignal == nil {
				ind.MACDSignal = obj.Signal.p
			}
			if ind.MACDHistogram == nil {
				ind.MACDHistogram = first(obj.Histogram, obj.Hist)
			}
		}
	} else if len(macd) > 0 {
		var v flexFloat
		_ = v.UnmarshalJSON(macd)
		ind.MACD = v.p
	}

	if ind.MACDHistogram == nil && ind.MACD != nil && ind.MACDSignal != nil {
		h := *ind.MACD - *ind.MACDSignal
		ind.MACDHistogram = &h
	}
	return ind, nil
}

type healthFactorWire struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

type healthWire struct {
	HealthScore    flexFloat          `json:"health_score"`
	Score          flexFloat          `json:"score"`
	Interpretation string             `json:"interpretation"`
	Rating         string             `json:"rating"`
	Reasons        []string           `json:"reasons"`
	Factors        []healthFactorWire `json:"factors"`
}

// DecodeHealth clamps the score into [0,100]. Reasons fall back to
// "Name: status" lines built from factors.
func DecodeHealth(raw json.RawMessage) (models.HealthScore, error) {
	var w healthWire
	if err := unmarshalObject(raw, &w); err != nil {
		return models.HealthScore{}, err
	}
	h := models.HealthScore{
		Interpretation: firstString(w.Interpretation, w.Rating),
	}
	if s := first(w.HealthScore, w.Score); s != nil {
		v := math.Max(0, math.Min(100, *s))
		h.Score = &v
	}

	for _, r := range w.Reasons {
		if r = strings.TrimSpace(r); r != "" {
			h.Reasons = append(h.Reasons, r)
		}
	}
	if len(h.Reasons) == 0 {
		for _, f := range w.Factors {
			name := strings.TrimSpace(f.Name)
			if name == "" {
				continue
			}
			if status := strings.TrimSpace(f.Status); status != "" {
				name += ": " + status
			}
			h.Reasons = append(h.Reasons, name)
		}
	}
	return h, nil
}

func unmarshalObject(raw []byte, v interface{}) error {
	body := bytes.TrimSpace(raw)
	if len(body) == 0 || body[0] != '{' {
		return errors.New("payload is not a JSON object")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

// cleanURL drops placeholder links.
func cleanURL(s string) string {
	s = strings.TrimSpace(s)
	if s == "#" {
		return ""
	}
	return s
}
