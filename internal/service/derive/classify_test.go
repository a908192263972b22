package derive

import (
	"math"
	"testing"

	"StockLens/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRSI(t *testing.T) {
	assert.Equal(t, models.RSIOverbought, ClassifyRSI(ptr(75)))
	assert.Equal(t, models.RSIOversold, ClassifyRSI(ptr(25)))
	assert.Equal(t, models.RSINeutral, ClassifyRSI(ptr(50)))
	assert.Equal(t, models.RSINeutral, ClassifyRSI(ptr(70)))
	assert.Equal(t, models.RSINeutral, ClassifyRSI(ptr(30)))
	assert.Equal(t, models.RSIUnavailable, ClassifyRSI(nil))
	assert.Equal(t, models.RSIUnavailable, ClassifyRSI(ptr(math.NaN())))
}

func TestClassifyMACD(t *testing.T) {
	assert.Equal(t, models.MACDBullish, ClassifyMACD(ptr(1.2), ptr(0.8)))
	assert.Equal(t, models.MACDBearish, ClassifyMACD(ptr(0.5), ptr(0.9)))
	assert.Equal(t, models.MACDBearish, ClassifyMACD(ptr(0.9), ptr(0.9)))
	assert.Equal(t, models.MACDInsufficientData, ClassifyMACD(nil, ptr(0.9)))
	assert.Equal(t, models.MACDInsufficientData, ClassifyMACD(ptr(0.9), nil))
}

func TestClassifyHealthBand(t *testing.T) {
	assert.Equal(t, models.HealthStrong, ClassifyHealthBand(ptr(70)))
	assert.Equal(t, models.HealthStrong, ClassifyHealthBand(ptr(95)))
	assert.Equal(t, models.HealthModerate, ClassifyHealthBand(ptr(50)))
	assert.Equal(t, models.HealthModerate, ClassifyHealthBand(ptr(69.9)))
	assert.Equal(t, models.HealthWeak, ClassifyHealthBand(ptr(49.9)))
	assert.Equal(t, models.HealthUnavailable, ClassifyHealthBand(nil))
}

func TestPriceDirection(t *testing.T) {
	assert.Equal(t, models.DirectionUp, PriceDirection(0.01))
	assert.Equal(t, models.DirectionDown, PriceDirection(-2))
	assert.Equal(t, models.DirectionFlat, PriceDirection(0))
}

func TestGaugeAngle(t *testing.T) {
	assert.Equal(t, -90.0, GaugeAngle(nil))
	assert.Equal(t, -90.0, GaugeAngle(ptr(0)))
	assert.Equal(t, 0.0, GaugeAngle(ptr(50)))
	assert.Equal(t, 90.0, GaugeAngle(ptr(100)))
	assert.Equal(t, 90.0, GaugeAngle(ptr(140)))
}
