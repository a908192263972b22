package derive

import (
	"fmt"

	"StockLens/internal/domain/models"
)

// Icon tags for risk findings; presenters map them to glyphs.
const (
	IconDebt      = "debt"
	IconMargin    = "margin"
	IconValuation = "valuation"
	IconReturns   = "returns"
	IconHealth    = "health"
	IconOK        = "ok"
)

// Thresholds drive DeriveRiskFactors. Margin and return floors are in
// percentage points.
type Thresholds struct {
	DebtToEquity      float64
	ProfitMarginFloor float64
	PECeiling         float64
	ROEFloor          float64
	HealthFloor       float64

	// RatiosAsFraction means profit margin and ROE arrive as 0..1 and are
	// scaled by 100 before comparison.
	RatiosAsFraction bool
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		DebtToEquity:      1.5,
		ProfitMarginFloor: 5,
		PECeiling:         30,
		ROEFloor:          10,
		HealthFloor:       50,
	}
}

// HealthyPlaceholder is the single finding emitted when no rule fires.
var HealthyPlaceholder = models.RiskFactor{
	Icon:        IconOK,
	Title:       "Healthy Metrics",
	Description: "Stock shows positive financial indicators",
}

type riskRule func(fin *models.FinancialMetrics, health *models.HealthScore, th Thresholds) (models.RiskFactor, bool)

// riskRules is evaluated in display order. No rule suppresses another.
var riskRules = []riskRule{
	highDebt,
	lowMargin,
	highValuation,
	weakROE,
	weakHealth,
}

// DeriveRiskFactors evaluates every rule against fin and health, either of
// which may be nil. A missing input never fires its rule. The result is
// never empty.
func DeriveRiskFactors(fin *models.FinancialMetrics, health *models.HealthScore, th Thresholds) []models.RiskFactor {
	risks := make([]models.RiskFactor, 0, len(riskRules))
	for _, rule := range riskRules {
		if r, ok := rule(fin, health, th); ok {
			risks = append(risks, r)
		}
	}
	if len(risks) == 0 {
		risks = append(risks, HealthyPlaceholder)
	}
	return risks
}

func highDebt(fin *models.FinancialMetrics, _ *models.HealthScore, th Thresholds) (models.RiskFactor, bool) {
	if fin == nil || !usable(fin.DebtToEquity) || *fin.DebtToEquity <= th.DebtToEquity {
		return models.RiskFactor{}, false
	}
	return models.RiskFactor{
		Icon:        IconDebt,
		Title:       "High Debt",
		Description: fmt.Sprintf("Debt-to-Equity ratio of %s indicates higher financial risk", FormatNumber(fin.DebtToEquity, 2)),
	}, true
}

func lowMargin(fin *models.FinancialMetrics, _ *models.HealthScore, th Thresholds) (models.RiskFactor, bool) {
	if fin == nil {
		return models.RiskFactor{}, false
	}
	m := pointsOf(fin.ProfitMargin, th.RatiosAsFraction)
	if !usable(m) || *m >= th.ProfitMarginFloor {
		return models.RiskFactor{}, false
	}
	return models.RiskFactor{
		Icon:        IconMargin,
		Title:       "Low Margins",
		Description: fmt.Sprintf("Profit margin of %s is relatively low", FormatPercentDirect(m)),
	}, true
}

func highValuation(fin *models.FinancialMetrics, _ *models.HealthScore, th Thresholds) (models.RiskFactor, bool) {
	if fin == nil || !usable(fin.PERatio) || *fin.PERatio <= th.PECeiling {
		return models.RiskFactor{}, false
	}
	return models.RiskFactor{
		Icon:        IconValuation,
		Title:       "High Valuation",
		Description: fmt.Sprintf("P/E ratio of %s is above average; stock may be overpriced", FormatNumber(fin.PERatio, 2)),
	}, true
}

func weakROE(fin *models.FinancialMetrics, _ *models.HealthScore, th Thresholds) (models.RiskFactor, bool) {
	if fin == nil {
		return models.RiskFactor{}, false
	}
	roe := pointsOf(fin.ROE, th.RatiosAsFraction)
	if !usable(roe) || *roe >= th.ROEFloor {
		return models.RiskFactor{}, false
	}
	return models.RiskFactor{
		Icon:        IconReturns,
		Title:       "Weak ROE",
		Description: fmt.Sprintf("Return on Equity of %s is below industry average", FormatPercentDirect(roe)),
	}, true
}

func weakHealth(_ *models.FinancialMetrics, health *models.HealthScore, th Thresholds) (models.RiskFactor, bool) {
	if health == nil || !usable(health.Score) || *health.Score >= th.HealthFloor {
		return models.RiskFactor{}, false
	}
	return models.RiskFactor{
		Icon:        IconHealth,
		Title:       "Weak Health Score",
		Description: fmt.Sprintf("Overall health score of %s is in the weak range", FormatNumber(health.Score, 0)),
	}, true
}

func pointsOf(v *float64, fraction bool) *float64 {
	if fraction {
		return scaled(v, 100)
	}
	return v
}
