package derive

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Placeholder is rendered for any value that is missing or not a number.
const Placeholder = "--"

var hundred = decimal.NewFromInt(100)

func usable(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

func fixed(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return decimal.NewFromFloat(v).StringFixed(int32(decimals))
}

// FormatNumber renders v with the given number of decimals, rounding half
// away from zero.
func FormatNumber(v *float64, decimals int) string {
	if !usable(v) {
		return Placeholder
	}
	return fixed(*v, decimals)
}

// FormatSigned is FormatNumber with an explicit plus sign for positives.
func FormatSigned(v *float64, decimals int) string {
	s := FormatNumber(v, decimals)
	if s != Placeholder && *v > 0 {
		return "+" + s
	}
	return s
}

// FormatPercent renders a 0..1 ratio as percentage points.
func FormatPercent(fraction *float64) string {
	if !usable(fraction) {
		return Placeholder
	}
	return decimal.NewFromFloat(*fraction).Mul(hundred).StringFixed(2) + "%"
}

// FormatPercentDirect renders a value already in percentage points.
func FormatPercentDirect(points *float64) string {
	if !usable(points) {
		return Placeholder
	}
	return fixed(*points, 2) + "%"
}

// FormatMarketCap renders a capitalization given in millions.
func FormatMarketCap(millions *float64) string {
	if !usable(millions) || *millions == 0 {
		return Placeholder
	}
	v := *millions
	if math.Abs(v) >= 1000 {
		return fixed(v/1000, 2) + " B"
	}
	return fixed(v, 2) + " M"
}

// FormatCashFlow renders an absolute amount with a B or M suffix once it
// crosses a million.
func FormatCashFlow(v *float64) string {
	if !usable(v) {
		return Placeholder
	}
	abs := math.Abs(*v)
	switch {
	case abs >= 1e9:
		return fixed(*v/1e9, 2) + " B"
	case abs >= 1e6:
		return fixed(*v/1e6, 2) + " M"
	default:
		return fixed(*v, 2)
	}
}

// FormatCount renders an integer with comma thousands separators.
func FormatCount(n *int64) string {
	if n == nil {
		return Placeholder
	}
	s := strconv.FormatInt(*n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func orPlaceholder(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return Placeholder
	}
	return s
}

func scaled(v *float64, factor float64) *float64 {
	if !usable(v) || factor == 1 {
		return v
	}
	out := *v * factor
	return &out
}
