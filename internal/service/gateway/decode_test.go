package gateway

import (
	"encoding/json"
	"testing"

	"StockLens/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePrice(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    models.PriceQuote
		wantErr bool
	}{
		{
			name:    "current spelling",
			payload: `{"current_price":190.5,"change":-1.2,"change_percent":-0.63,"open":191,"high":192.4,"low":189.9}`,
			want: models.PriceQuote{
				Current: 190.5, Change: -1.2, ChangePercent: -0.63,
				Open: 191, High: 192.4, Low: 189.9,
			},
		},
		{
			name:    "historical spelling",
			payload: `{"current":"42.10","percent":1.5}`,
			want:    models.PriceQuote{Symbol: "MSFT", Current: 42.10, ChangePercent: 1.5},
		},
		{
			name:    "body symbol does not replace the requested one",
			payload: `{"symbol":"brk.b","current_price":1}`,
			want:    models.PriceQuote{Symbol: "MSFT", Current: 1},
		},
		{name: "zero price means unknown symbol", payload: `{"current_price":0}`, wantErr: true},
		{name: "missing price", payload: `{"change":1}`, wantErr: true},
		{name: "not an object", payload: `[1,2]`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodePrice("MSFT", json.RawMessage(tt.payload))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.want.Symbol == "" {
				tt.want.Symbol = "MSFT"
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeOverview_Aliases(t *testing.T) {
	got, err := DecodeOverview(json.RawMessage(`{
		"name": " Apple Inc ",
		"finnhubIndustry": "ignored",
		"sector": "Technology",
		"market_cap": 2950000,
		"weburl": "https://apple.com",
		"ipo": "1980-12-12",
		"employees": "164000",
		"logo": "#"
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Apple Inc", got.Name)
	assert.Equal(t, "Technology", got.Industry)
	require.NotNil(t, got.MarketCap)
	assert.Equal(t, 2950000.0, *got.MarketCap)
	assert.Equal(t, "https://apple.com", got.Website)
	assert.Equal(t, "1980-12-12", got.IPODate)
	require.NotNil(t, got.Employees)
	assert.Equal(t, int64(164000), *got.Employees)
	assert.Empty(t, got.LogoURL)
}

func TestDecodeFinancials_PartialAndAliases(t *testing.T) {
	got, err := DecodeFinancials(json.RawMessage(`{
		"pe_ratio": 28.4,
		"eps": 6.1,
		"debt_equity": "1.8",
		"roe": 150.2,
		"profit_margin": null,
		"gross_margin": "n/a"
	}`))
	require.NoError(t, err)

	require.NotNil(t, got.PERatio)
	assert.Equal(t, 28.4, *got.PERatio)
	require.NotNil(t, got.EPS)
	assert.Equal(t, 6.1, *got.EPS)
	require.NotNil(t, got.DebtToEquity)
	assert.Equal(t, 1.8, *got.DebtToEquity)
	require.NotNil(t, got.ROE)
	assert.Nil(t, got.ProfitMargin)
	assert.Nil(t, got.GrossMargin)
	assert.Nil(t, got.FreeCashFlow)
}

func TestDecodeNews(t *testing.T) {
	t.Run("news key", func(t *testing.T) {
		got, err := DecodeNews(json.RawMessage(`{"news":[
			{"headline":"A","source":"Reuters","url":"https://x","datetime":1700000000},
			{"headline":"","summary":"dropped"},
			{"title":"B","url":"#"}
		]}`))
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, models.NewsItem{Headline: "A", Source: "Reuters", URL: "https://x", Published: 1700000000}, got[0])
		assert.Equal(t, "B", got[1].Headline)
		assert.Empty(t, got[1].URL)
	})

	t.Run("articles key", func(t *testing.T) {
		got, err := DecodeNews(json.RawMessage(`{"articles":[{"headline":"C"}]}`))
		require.NoError(t, err)
		require.Len(t, got, 1)
	})

	t.Run("bare array", func(t *testing.T) {
		got, err := DecodeNews(json.RawMessage(`[{"headline":"D"}]`))
		require.NoError(t, err)
		require.Len(t, got, 1)
	})

	t.Run("timestamp formats", func(t *testing.T) {
		got, err := DecodeNews(json.RawMessage(`[
			{"headline":"ms","datetime":1700000000000},
			{"headline":"str","datetime":"1700000000"},
			{"headline":"iso","published_at":"2023-11-14T22:13:20Z"},
			{"headline":"bad","datetime":"soon"}
		]`))
		require.NoError(t, err)
		require.Len(t, got, 4)
		for _, n := range got[:3] {
			assert.Equal(t, int64(1700000000), n.Published, n.Headline)
		}
		assert.Zero(t, got[3].Published)
	})

	t.Run("empty", func(t *testing.T) {
		got, err := DecodeNews(json.RawMessage(`{"news":[]}`))
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestDecodeIndicators(t *testing.T) {
	t.Run("scalar macd", func(t *testing.T) {
		got, err := DecodeIndicators(json.RawMessage(`{"rsi":72.3,"macd":1.5,"macd_signal":1.0}`))
		require.NoError(t, err)
		require.NotNil(t, got.RSI)
		assert.Equal(t, 72.3, *got.RSI)
		require.NotNil(t, got.MACDHistogram)
		assert.InDelta(t, 0.5, *got.MACDHistogram, 1e-9)
	})

	t.Run("object macd", func(t *testing.T) {
		got, err := DecodeIndicators(json.RawMessage(`{"macd":{"macd":-0.4,"signal":0.1,"histogram":-0.5}}`))
		require.NoError(t, err)
		require.NotNil(t, got.MACD)
		assert.Equal(t, -0.4, *got.MACD)
		require.NotNil(t, got.MACDSignal)
		assert.Equal(t, 0.1, *got.MACDSignal)
		require.NotNil(t, got.MACDHistogram)
		assert.Equal(t, -0.5, *got.MACDHistogram)
		assert.Nil(t, got.RSI)
	})

	t.Run("nothing present", func(t *testing.T) {
		got, err := DecodeIndicators(json.RawMessage(`{"rsi":null,"macd":null}`))
		require.NoError(t, err)
		assert.Equal(t, models.TechnicalIndicators{}, got)
	})
}

func TestDecodeHealth(t *testing.T) {
	t.Run("clamps", func(t *testing.T) {
		got, err := DecodeHealth(json.RawMessage(`{"health_score":135,"interpretation":"Strong"}`))
		require.NoError(t, err)
		require.NotNil(t, got.Score)
		assert.Equal(t, 100.0, *got.Score)

		got, err = DecodeHealth(json.RawMessage(`{"score":-4}`))
		require.NoError(t, err)
		assert.Equal(t, 0.0, *got.Score)
	})

	t.Run("factors become reasons", func(t *testing.T) {
		got, err := DecodeHealth(json.RawMessage(`{"score":62,"rating":"Moderate","factors":[
			{"name":"P/E Ratio","score":15,"status":"Good"},
			{"name":"ROE","status":""}
		]}`))
		require.NoError(t, err)
		assert.Equal(t, "Moderate", got.Interpretation)
		assert.Equal(t, []string{"P/E Ratio: Good", "ROE"}, got.Reasons)
	})

	t.Run("missing score", func(t *testing.T) {
		got, err := DecodeHealth(json.RawMessage(`{}`))
		require.NoError(t, err)
		assert.Nil(t, got.Score)
	})
}
