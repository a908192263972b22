package derive

import (
	"math"

	"StockLens/internal/domain/models"
)

const (
	rsiOverbought = 70
	rsiOversold   = 30

	healthStrong   = 70
	healthModerate = 50
)

func ClassifyRSI(rsi *float64) models.RSIBand {
	switch {
	case !usable(rsi):
		return models.RSIUnavailable
	case *rsi > rsiOverbought:
		return models.RSIOverbought
	case *rsi < rsiOversold:
		return models.RSIOversold
	default:
		return models.RSINeutral
	}
}

// ClassifyMACD compares the MACD line with its signal line. Equality counts
// as bearish.
func ClassifyMACD(macd, signal *float64) models.MACDBand {
	if !usable(macd) || !usable(signal) {
		return models.MACDInsufficientData
	}
	if *macd-*signal > 0 {
		return models.MACDBullish
	}
	return models.MACDBearish
}

func ClassifyHealthBand(score *float64) models.HealthBand {
	switch {
	case !usable(score):
		return models.HealthUnavailable
	case *score >= healthStrong:
		return models.HealthStrong
	case *score >= healthModerate:
		return models.HealthModerate
	default:
		return models.HealthWeak
	}
}

func PriceDirection(change float64) models.Direction {
	switch {
	case change > 0:
		return models.DirectionUp
	case change < 0:
		return models.DirectionDown
	default:
		return models.DirectionFlat
	}
}

// GaugeAngle maps a 0..100 score onto a needle angle in [-90, 90] degrees.
// A missing score points the needle at the far left.
func GaugeAngle(score *float64) float64 {
	if !usable(score) {
		return -90
	}
	s := math.Max(0, math.Min(100, *score))
	return s/100*180 - 90
}
