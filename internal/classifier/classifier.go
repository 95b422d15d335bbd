// Package classifier provides the pretrained risk model used alongside the
// questionnaire score.
package classifier

import (
	"context"

	"robo-advisor-workers/internal/models"
)

// Feature names, shared with the remote model's wire format.
const (
	FeatureAge               = "age"
	FeatureIncome            = "income"
	FeatureRiskTolerance     = "risk_tolerance"
	FeatureInvestmentHorizon = "investment_horizon"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Features is the model input.
type Features struct {
	Age               int `json:"age"`
	Income            int `json:"income"`
	RiskTolerance     int `json:"risk_tolerance"`
	InvestmentHorizon int `json:"investment_horizon"`
}

// Value returns the feature by wire name.
func (f Features) Value(name string) (int, bool) {
	switch name {
	case FeatureAge:
		return f.Age, true
	case FeatureIncome:
		return f.Income, true
	case FeatureRiskTolerance:
		return f.RiskTolerance, true
	case FeatureInvestmentHorizon:
		return f.InvestmentHorizon, true
	}
	return 0, false
}

// FeaturesFrom builds model input from questionnaire answers and the
// normalized questionnaire rating.
func FeaturesFrom(d models.Demographics, g models.FinancialGoals, riskTolerance int) Features {
	return Features{
		Age:               d.Age,
		Income:            d.Income,
		RiskTolerance:     riskTolerance,
		InvestmentHorizon: g.TimeHorizon,
	}
}

// Prediction is a 1..5 rating plus per-feature importance weights.
type Prediction struct {
	Rating            int                `json:"predicted_risk_level"`
	FeatureImportance map[string]float64 `json:"feature_importance"`
}

// Classifier predicts a risk rating. Implementations must be safe for
// concurrent use.
type Classifier interface {
	Predict(ctx context.Context, f Features) (Prediction, error)
	Name() string
}
