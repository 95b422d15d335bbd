package advisor

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"robo-advisor-workers/internal/classifier"
	apperrors "robo-advisor-workers/internal/common/errors"
	"robo-advisor-workers/internal/models"
)

const Disclaimer = "This recommendation is for educational purposes only and should not be considered as financial advice."

var riskCategories = map[int]string{
	1: "Very Conservative",
	2: "Conservative",
	3: "Moderate",
	4: "Aggressive",
	5: "Very Aggressive",
}

// RiskCategory names a 1..5 rating. Unknown ratings read as "Moderate".
func RiskCategory(rating int) string {
	if name, ok := riskCategories[rating]; ok {
		return name
	}
	return "Moderate"
}

// Explain builds the plain-language rationale: the headline, an age note
// (none between 30 and 55) and a note on the risk tier.
func Explain(rating, age int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on your comprehensive assessment, we recommend a %s (Level %d) investment strategy. ",
		RiskCategory(rating), rating)

	switch {
	case age < 30:
		b.WriteString("Your young age gives you a long time horizon to recover from market volatility. ")
	case age > 55:
		b.WriteString("Given your age, we've adjusted your portfolio to be more conservative to protect your wealth. ")
	}

	switch {
	case rating <= 2:
		b.WriteString("This conservative approach focuses on capital preservation with steady, predictable returns. ")
	case rating >= 4:
		b.WriteString("This aggressive strategy maximizes growth potential while accepting higher volatility. ")
	default:
		b.WriteString("This balanced approach provides growth potential while managing risk. ")
	}

	return strings.TrimSpace(b.String())
}

const (
	stepEmergencyFund = "Build an emergency fund of 3-6 months of expenses before investing"
	stepPayDownDebt   = "Consider paying down high-interest debt before investing"
)

// NextSteps lists follow-up actions. Prerequisites go right after the first
// step, debt ahead of the emergency fund.
func NextSteps(g models.FinancialGoals) []string {
	steps := []string{
		"Review and understand your recommended portfolio allocation",
		"Consider opening investment accounts if you don't have them",
		"Set up automatic monthly investments to stay consistent",
		"Review and rebalance your portfolio quarterly",
	}
	if g.EmergencyFundMonths < 6 {
		steps = insertAt(steps, 1, stepEmergencyFund)
	}
	if g.ExistingDebt > g.CurrentSavings {
		steps = insertAt(steps, 1, stepPayDownDebt)
	}
	return steps
}

func insertAt(s []string, i int, v string) []string {
	s = append(s, "")
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

// InfluentialFactors picks the two features with the largest importance
// weight. The weights are global to the model, so this is a hint about what
// the model tends to rely on rather than a per-profile attribution.
func InfluentialFactors(pred classifier.Prediction, f classifier.Features) []models.InfluentialFactor {
	names := rankFeatures(pred.FeatureImportance, f)
	if len(names) > 2 {
		names = names[:2]
	}

	factors := make([]models.InfluentialFactor, 0, len(names))
	for _, name := range names {
		v, _ := f.Value(name)
		factors = append(factors, models.InfluentialFactor{
			Feature:     name,
			Importance:  pred.FeatureImportance[name],
			Description: describeFeature(name, v),
		})
	}
	return factors
}

// FeatureImpact is one model input with its importance weight and the
// direction it pushes the rating.
type FeatureImpact struct {
	Value  float64 `json:"value"`
	Weight float64 `json:"weight"`
	Impact string  `json:"impact"`
}

func FeatureImpacts(pred classifier.Prediction, f classifier.Features) map[string]FeatureImpact {
	out := make(map[string]FeatureImpact, len(pred.FeatureImportance))
	for _, name := range rankFeatures(pred.FeatureImportance, f) {
		v, _ := f.Value(name)
		w := pred.FeatureImportance[name]
		impact := "decreases"
		if w > 0 {
			impact = "increases"
		}
		out[name] = FeatureImpact{Value: float64(v), Weight: w, Impact: impact}
	}
	return out
}

// ExplainPrediction is the plain-language reading of a direct model
// prediction: the recommended level, then up to two features on each side
// of the importance scale.
func ExplainPrediction(pred classifier.Prediction, f classifier.Features) string {
	var positive, negative []string
	for _, name := range rankFeatures(pred.FeatureImportance, f) {
		v, _ := f.Value(name)
		switch w := pred.FeatureImportance[name]; {
		case w > 0 && len(positive) < 2:
			positive = append(positive, describeFeature(name, v))
		case w < 0 && len(negative) < 2:
			negative = append(negative, describeFeature(name, v))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Based on your profile, we recommend a %s (Level %d) investment strategy. ",
		RiskCategory(pred.Rating), pred.Rating)
	if len(positive) > 0 {
		b.WriteString("Factors increasing your risk capacity: " + strings.Join(positive, ", ") + ". ")
	}
	if len(negative) > 0 {
		b.WriteString("Factors suggesting lower risk: " + strings.Join(negative, ", ") + ". ")
	}
	return strings.TrimSpace(b.String())
}

// rankFeatures orders known features by absolute importance, then by name.
func rankFeatures(importance map[string]float64, f classifier.Features) []string {
	names := make([]string, 0, len(importance))
	for name := range importance {
		if _, ok := f.Value(name); ok {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		wi, wj := math.Abs(importance[names[i]]), math.Abs(importance[names[j]])
		if wi != wj {
			return wi > wj
		}
		return names[i] < names[j]
	})
	return names
}

func describeFeature(name string, v int) string {
	switch name {
	case classifier.FeatureAge:
		return fmt.Sprintf("your age of %d years", v)
	case classifier.FeatureIncome:
		return "your annual income of " + FormatUSD(float64(v))
	case classifier.FeatureRiskTolerance:
		return fmt.Sprintf("your risk tolerance level of %d/5", v)
	case classifier.FeatureInvestmentHorizon:
		return fmt.Sprintf("your %d-year investment timeline", v)
	}
	return name
}

// ComputeRecommendation runs the full pipeline over a session that has all
// three questionnaire stages filled in, stamping the result with now. It
// does not modify the session.
func ComputeRecommendation(ctx context.Context, s *models.AssessmentSession, clf classifier.Classifier, now time.Time) (*models.Recommendation, error) {
	switch {
	case s.Demographics == nil:
		return nil, apperrors.NewIncompleteAssessmentError(s.ID, "demographics")
	case s.FinancialGoals == nil:
		return nil, apperrors.NewIncompleteAssessmentError(s.ID, "financialGoals")
	case len(s.RiskResponses) == 0 || !s.Status.AtLeast(models.StatusRiskAssessmentComplete):
		return nil, apperrors.NewIncompleteAssessmentError(s.ID, "riskAssessment")
	}
	d, g := *s.Demographics, *s.FinancialGoals

	questionnaireRating, err := NormalizeRiskScore(s.RiskResponses)
	if err != nil {
		return nil, err
	}

	features := classifier.FeaturesFrom(d, g, questionnaireRating)
	pred, err := clf.Predict(ctx, features)
	if err != nil {
		if _, ok := apperrors.AsStandardError(err); ok {
			return nil, err
		}
		return nil, apperrors.NewClassifierFailedError(err)
	}
	if pred.Rating < MinRating || pred.Rating > MaxRating {
		return nil, apperrors.NewClassifierFailedError(fmt.Errorf("rating %d outside %d..%d", pred.Rating, MinRating, MaxRating))
	}

	allocation, err := AllocatePortfolio(pred.Rating, d, g)
	if err != nil {
		return nil, err
	}
	monthly := RecommendedMonthlyInvestment(d.Income, g.MonthlyExpenses)

	return &models.Recommendation{
		SessionID: s.ID,
		AssessmentSummary: models.AssessmentSummary{
			QuestionnaireRiskScore: questionnaireRating,
			ModelRiskScore:         pred.Rating,
			FinalRiskCategory:      RiskCategory(pred.Rating),
		},
		Portfolio: models.Portfolio{
			Allocation:                   allocation,
			RecommendedMonthlyInvestment: monthly,
			RebalancingFrequency:         RebalancingFrequency,
		},
		Projections:        Project(allocation, g, monthly),
		Explanation:        Explain(pred.Rating, d.Age),
		InfluentialFactors: InfluentialFactors(pred, features),
		NextSteps:          NextSteps(g),
		Disclaimer:         Disclaimer,
		GeneratedAt:        now,
	}, nil
}
