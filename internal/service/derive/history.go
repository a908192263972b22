package derive

import (
	"math/rand/v2"
	"time"

	"StockLens/internal/domain/models"

	"github.com/shopspring/decimal"
)

// SimulatedLabel marks the chart as synthetic in every rendering.
const SimulatedLabel = "Simulated trend (not market data)"

// SimulateHistory builds a days-long random walk ending at now. It starts 5%
// below price and moves by (u-0.48)*2% of price per day, u uniform in [0,1).
// The series is not historical data.
func SimulateHistory(price float64, days int, rng *rand.Rand, now time.Time) models.Chart {
	chart := models.Chart{Simulated: true, Label: SimulatedLabel, Points: []models.ChartPoint{}}
	if days <= 0 || price <= 0 || rng == nil {
		return chart
	}

	chart.Points = make([]models.ChartPoint, 0, days)
	level := price * 0.95
	for i := days - 1; i >= 0; i-- {
		level += (rng.Float64() - 0.48) * price * 0.02
		chart.Points = append(chart.Points, models.ChartPoint{
			Date:  now.AddDate(0, 0, -i).Format("Jan 2"),
			Price: decimal.NewFromFloat(level).Round(2).InexactFloat64(),
		})
	}
	return chart
}
