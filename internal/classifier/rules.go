package classifier

import (
	"context"
)

// DefaultFeatureImportance mirrors the relative weights of the reference
// random forest.
var DefaultFeatureImportance = map[string]float64{
	FeatureRiskTolerance:     0.38,
	FeatureAge:               0.24,
	FeatureInvestmentHorizon: 0.21,
	FeatureIncome:            0.17,
}

// RuleModel is the deterministic labelling rule the reference model was
// trained on: questionnaire tolerance shifted by one step for age, income
// and horizon.
type RuleModel struct {
	importance map[string]float64
}

func NewRuleModel(importance map[string]float64) *RuleModel {
	if len(importance) == 0 {
		importance = DefaultFeatureImportance
	}
	copied := make(map[string]float64, len(importance))
	for k, v := range importance {
		copied[k] = v
	}
	return &RuleModel{importance: copied}
}

func (m *RuleModel) Name() string { return "rules" }

func (m *RuleModel) Predict(ctx context.Context, f Features) (Prediction, error) {
	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}

	rating := f.RiskTolerance + ageFactor(f.Age) + incomeFactor(f.Income) + horizonFactor(f.InvestmentHorizon)

	importance := make(map[string]float64, len(m.importance))
	for k, v := range m.importance {
		importance[k] = v
	}
	return Prediction{Rating: clamp(rating, MinRating, MaxRating), FeatureImportance: importance}, nil
}

func ageFactor(age int) int {
	switch {
	case age < 30:
		return 1
	case age < 50:
		return 0
	default:
		return -1
	}
}

func incomeFactor(income int) int {
	switch {
	case income > 100000:
		return 1
	case income > 60000:
		return 0
	default:
		return -1
	}
}

func horizonFactor(years int) int {
	switch {
	case years > 20:
		return 1
	case years > 10:
		return 0
	default:
		return -1
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
