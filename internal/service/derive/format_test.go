package derive

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name     string
		in       *float64
		decimals int
		want     string
	}{
		{"nil", nil, 2, "--"},
		{"NaN", ptr(math.NaN()), 2, "--"},
		{"Inf", ptr(math.Inf(1)), 2, "--"},
		{"rounds half away from zero", ptr(12.345), 2, "12.35"},
		{"negative half", ptr(-12.345), 2, "-12.35"},
		{"pads", ptr(3), 2, "3.00"},
		{"zero decimals", ptr(61.5), 0, "62"},
		{"zero value", ptr(0), 2, "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.in, tt.decimals))
		})
	}
}

func TestFormatSigned(t *testing.T) {
	assert.Equal(t, "+1.20", FormatSigned(ptr(1.2), 2))
	assert.Equal(t, "-1.20", FormatSigned(ptr(-1.2), 2))
	assert.Equal(t, "0.00", FormatSigned(ptr(0), 2))
	assert.Equal(t, "--", FormatSigned(nil, 2))
}

func TestFormatPercentConventionsStayDistinct(t *testing.T) {
	assert.Equal(t, "12.34%", FormatPercent(ptr(0.1234)))
	assert.Equal(t, "0.12%", FormatPercentDirect(ptr(0.1234)))
	assert.Equal(t, "25.00%", FormatPercentDirect(ptr(25)))
	assert.Equal(t, "--", FormatPercent(nil))
	assert.Equal(t, "--", FormatPercentDirect(ptr(math.NaN())))
}

func TestFormatMarketCap(t *testing.T) {
	tests := []struct {
		in   *float64
		want string
	}{
		{ptr(500), "500.00 M"},
		{ptr(2500), "2.50 B"},
		{ptr(1000), "1.00 B"},
		{ptr(999.994), "999.99 M"},
		{ptr(2950000), "2950.00 B"},
		{ptr(0), "--"},
		{nil, "--"},
		{ptr(math.NaN()), "--"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMarketCap(tt.in))
	}
}

func TestFormatCashFlow(t *testing.T) {
	tests := []struct {
		in   *float64
		want string
	}{
		{ptr(2.5e9), "2.50 B"},
		{ptr(-3.2e6), "-3.20 M"},
		{ptr(1e6), "1.00 M"},
		{ptr(12345), "12345.00"},
		{nil, "--"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCashFlow(tt.in))
	}
}

func TestFormatCount(t *testing.T) {
	n := func(v int64) *int64 { return &v }
	assert.Equal(t, "164,000", FormatCount(n(164000)))
	assert.Equal(t, "1,234,567", FormatCount(n(1234567)))
	assert.Equal(t, "999", FormatCount(n(999)))
	assert.Equal(t, "-1,000", FormatCount(n(-1000)))
	assert.Equal(t, "--", FormatCount(nil))
}
