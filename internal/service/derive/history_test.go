package derive

import (
	"math/rand/v2"
	"testing"
	"time"

	"StockLens/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateHistory(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	price := 200.0

	chart := SimulateHistory(price, 30, rand.New(rand.NewPCG(1, 2)), now)

	assert.True(t, chart.Simulated)
	assert.Equal(t, SimulatedLabel, chart.Label)
	require.Len(t, chart.Points, 30)
	assert.Equal(t, "Feb 15", chart.Points[0].Date)
	assert.Equal(t, "Mar 15", chart.Points[29].Date)

	// One step moves at most 1.04% of price from the 95% start.
	assert.InDelta(t, price*0.95, chart.Points[0].Price, price*0.02*0.52+0.01)
	for i := 1; i < len(chart.Points); i++ {
		step := chart.Points[i].Price - chart.Points[i-1].Price
		assert.InDelta(t, 0, step, price*0.02*0.52+0.01)
	}
}

func TestSimulateHistory_Deterministic(t *testing.T) {
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	a := SimulateHistory(50, 10, rand.New(rand.NewPCG(7, 7)), now)
	b := SimulateHistory(50, 10, rand.New(rand.NewPCG(7, 7)), now)
	assert.Equal(t, a, b)
}

func TestSimulateHistory_Degenerate(t *testing.T) {
	now := time.Now()
	for _, chart := range []models.Chart{
		SimulateHistory(0, 30, rand.New(rand.NewPCG(1, 1)), now),
		SimulateHistory(10, 0, rand.New(rand.NewPCG(1, 1)), now),
		SimulateHistory(10, 30, nil, now),
	} {
		assert.True(t, chart.Simulated)
		assert.NotNil(t, chart.Points)
		assert.Empty(t, chart.Points)
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, time.June, 30, 12, 0, 0, 0, time.UTC)
	ago := func(d time.Duration) int64 { return now.Add(-d).Unix() }

	tests := []struct {
		ts   int64
		want string
	}{
		{0, "--"},
		{ago(2 * time.Hour), "Today"},
		{now.Add(time.Hour).Unix(), "Today"},
		{ago(30 * time.Hour), "Yesterday"},
		{ago(3 * day), "3 days ago"},
		{ago(8 * day), "1 week ago"},
		{ago(15 * day), "2 weeks ago"},
		{ago(31 * day), "1 month ago"},
		{ago(65 * day), "2 months ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RelativeTime(tt.ts, now))
	}
}

func TestDescribeCompany(t *testing.T) {
	assert.Equal(t, "Makes phones.", DescribeCompany("AAPL", models.CompanyOverview{Description: " Makes phones. "}))
	assert.Equal(t,
		"Apple Inc operates in the Technology industry and is listed on NASDAQ, based in US.",
		DescribeCompany("AAPL", models.CompanyOverview{Name: "Apple Inc", Industry: "Technology", Exchange: "NASDAQ", Country: "US"}),
	)
	assert.Equal(t, "ZZZ is a publicly traded company.", DescribeCompany("ZZZ", models.CompanyOverview{}))
}
