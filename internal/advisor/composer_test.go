package advisor

import (
	"context"
	"errors"
	"testing"
	"time"

	"robo-advisor-workers/internal/classifier"
	apperrors "robo-advisor-workers/internal/common/errors"
	"robo-advisor-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClassifier struct {
	pred classifier.Prediction
	err  error
}

func (s stubClassifier) Name() string { return "stub" }

func (s stubClassifier) Predict(ctx context.Context, f classifier.Features) (classifier.Prediction, error) {
	return s.pred, s.err
}

var generatedAt = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func readySession() *models.AssessmentSession {
	now := time.Now().UTC()
	target := 250000
	s := models.NewAssessmentSession("sess-1", now)
	s.Demographics = &models.Demographics{Age: 40, Income: 85000, EmploymentStatus: "employed"}
	s.FinancialGoals = &models.FinancialGoals{
		PrimaryGoal:         "retirement",
		TargetAmount:        &target,
		TimeHorizon:         15,
		CurrentSavings:      10000,
		MonthlyExpenses:     3000,
		EmergencyFundMonths: 6,
	}
	s.RiskResponses = responsesWithScores(3, 3, 3, 3, 3)
	s.Advance(models.StatusRiskAssessmentComplete, now)
	return s
}

// ==========================
// Text composition
// ==========================

func TestRiskCategory(t *testing.T) {
	assert.Equal(t, "Very Conservative", RiskCategory(1))
	assert.Equal(t, "Aggressive", RiskCategory(4))
	assert.Equal(t, "Very Aggressive", RiskCategory(5))
	assert.Equal(t, "Moderate", RiskCategory(0))
}

func TestExplain(t *testing.T) {
	assert.Equal(t,
		"Based on your comprehensive assessment, we recommend a Moderate (Level 3) investment strategy. "+
			"This balanced approach provides growth potential while managing risk.",
		Explain(3, 40))

	young := Explain(5, 25)
	assert.Contains(t, young, "Very Aggressive (Level 5)")
	assert.Contains(t, young, "Your young age gives you a long time horizon")
	assert.Contains(t, young, "This aggressive strategy maximizes growth potential")

	older := Explain(2, 56)
	assert.Contains(t, older, "Given your age, we've adjusted your portfolio")
	assert.Contains(t, older, "This conservative approach focuses on capital preservation")

	assert.NotContains(t, Explain(3, 55), "age")
}

func TestNextSteps(t *testing.T) {
	base := NextSteps(models.FinancialGoals{EmergencyFundMonths: 6})
	assert.Len(t, base, 4)
	assert.Equal(t, "Review and understand your recommended portfolio allocation", base[0])

	both := NextSteps(models.FinancialGoals{EmergencyFundMonths: 2, ExistingDebt: 5000, CurrentSavings: 1000})
	require.Len(t, both, 6)
	assert.Equal(t, stepPayDownDebt, both[1])
	assert.Equal(t, stepEmergencyFund, both[2])
	assert.Equal(t, "Consider opening investment accounts if you don't have them", both[3])
}

func TestInfluentialFactors(t *testing.T) {
	pred := classifier.Prediction{Rating: 3, FeatureImportance: map[string]float64{
		classifier.FeatureAge:               0.1,
		classifier.FeatureIncome:            0.5,
		classifier.FeatureRiskTolerance:     0.3,
		classifier.FeatureInvestmentHorizon: 0.1,
		"unknown_feature":                   0.9,
	}}
	factors := InfluentialFactors(pred, classifier.Features{Age: 40, Income: 85000, RiskTolerance: 3, InvestmentHorizon: 15})

	require.Len(t, factors, 2)
	assert.Equal(t, classifier.FeatureIncome, factors[0].Feature)
	assert.Equal(t, "your annual income of $85,000", factors[0].Description)
	assert.Equal(t, "your risk tolerance level of 3/5", factors[1].Description)
}

// ==========================
// Recommendation pipeline
// ==========================

func TestComputeRecommendation(t *testing.T) {
	s := readySession()

	rec, err := ComputeRecommendation(context.Background(), s, classifier.NewRuleModel(nil), generatedAt)
	require.NoError(t, err)

	assert.Equal(t, "sess-1", rec.SessionID)
	assert.Equal(t, 4, rec.AssessmentSummary.QuestionnaireRiskScore)
	assert.Equal(t, 4, rec.AssessmentSummary.ModelRiskScore)
	assert.Equal(t, "Aggressive", rec.AssessmentSummary.FinalRiskCategory)
	assert.Equal(t, models.Allocation{Stocks: 80, Bonds: 20, Cash: 0}, rec.Portfolio.Allocation)
	assert.Equal(t, 817, rec.Portfolio.RecommendedMonthlyInvestment)
	assert.Equal(t, RebalancingFrequency, rec.Portfolio.RebalancingFrequency)
	assert.Equal(t, 15, rec.Projections.Years)
	assert.Equal(t, "7.2%", rec.Projections.ExpectedAnnualReturnText)
	assert.Len(t, rec.NextSteps, 4)
	assert.Len(t, rec.InfluentialFactors, 2)
	assert.Equal(t, "your risk tolerance level of 4/5", rec.InfluentialFactors[0].Description)
	assert.Equal(t, Disclaimer, rec.Disclaimer)
	assert.Equal(t, generatedAt, rec.GeneratedAt)

	assert.False(t, s.Completed, "session must not be modified")
}

func TestComputeRecommendation_UsesModelRating(t *testing.T) {
	clf := stubClassifier{pred: classifier.Prediction{Rating: 1, FeatureImportance: classifier.DefaultFeatureImportance}}

	rec, err := ComputeRecommendation(context.Background(), readySession(), clf, generatedAt)
	require.NoError(t, err)

	assert.Equal(t, 4, rec.AssessmentSummary.QuestionnaireRiskScore)
	assert.Equal(t, 1, rec.AssessmentSummary.ModelRiskScore)
	assert.Equal(t, "Very Conservative", rec.AssessmentSummary.FinalRiskCategory)
	assert.Equal(t, models.Allocation{Stocks: 20, Bonds: 70, Cash: 10}, rec.Portfolio.Allocation)
}

func TestComputeRecommendation_Incomplete(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *models.AssessmentSession)
		missing string
	}{
		{"no demographics", func(s *models.AssessmentSession) { s.Demographics = nil }, "demographics"},
		{"no goals", func(s *models.AssessmentSession) { s.FinancialGoals = nil }, "financialGoals"},
		{"no responses", func(s *models.AssessmentSession) { s.RiskResponses = nil }, "riskAssessment"},
		{"status behind", func(s *models.AssessmentSession) { s.Status = models.StatusFinancialGoalsComplete }, "riskAssessment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := readySession()
			tt.mutate(s)

			_, err := ComputeRecommendation(context.Background(), s, classifier.NewRuleModel(nil), generatedAt)
			stdErr, ok := apperrors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrCodeIncompleteAssessment, stdErr.Code)
			assert.Equal(t, tt.missing, stdErr.Metadata["missing"])
		})
	}
}

func TestComputeRecommendation_ClassifierErrors(t *testing.T) {
	tests := []struct {
		name string
		clf  classifier.Classifier
		code apperrors.ErrorCode
	}{
		{"plain error", stubClassifier{err: errors.New("boom")}, apperrors.ErrCodeClassifierFailed},
		{"timeout kept", stubClassifier{err: apperrors.NewClassifierTimeoutError()}, apperrors.ErrCodeClassifierTimeout},
		{"rating out of range", stubClassifier{pred: classifier.Prediction{Rating: 7}}, apperrors.ErrCodeClassifierFailed},
		{"zero rating", stubClassifier{pred: classifier.Prediction{}}, apperrors.ErrCodeClassifierFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeRecommendation(context.Background(), readySession(), tt.clf, generatedAt)
			assert.Equal(t, tt.code, apperrors.CodeOf(err))
		})
	}
}

func TestExplainPrediction(t *testing.T) {
	features := classifier.Features{Age: 45, Income: 85000, RiskTolerance: 4, InvestmentHorizon: 20}
	pred := classifier.Prediction{Rating: 4, FeatureImportance: map[string]float64{
		classifier.FeatureRiskTolerance:     0.4,
		classifier.FeatureInvestmentHorizon: 0.2,
		classifier.FeatureIncome:            0.1,
		classifier.FeatureAge:               -0.3,
	}}

	assert.Equal(t,
		"Based on your profile, we recommend a Aggressive (Level 4) investment strategy. "+
			"Factors increasing your risk capacity: your risk tolerance level of 4/5, your 20-year investment timeline. "+
			"Factors suggesting lower risk: your age of 45 years.",
		ExplainPrediction(pred, features))

	impacts := FeatureImpacts(pred, features)
	require.Len(t, impacts, 4)
	assert.Equal(t, "decreases", impacts[classifier.FeatureAge].Impact)
	assert.Equal(t, float64(85000), impacts[classifier.FeatureIncome].Value)
	assert.Equal(t, "increases", impacts[classifier.FeatureIncome].Impact)
}
