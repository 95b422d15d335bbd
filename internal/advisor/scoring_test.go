package advisor

import (
	"testing"

	apperrors "robo-advisor-workers/internal/common/errors"
	"robo-advisor-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func responsesWithScores(scores ...int) []models.RiskResponse {
	out := make([]models.RiskResponse, len(scores))
	for i, s := range scores {
		out[i] = models.RiskResponse{QuestionID: i + 1, Score: s}
	}
	return out
}

// ==========================
// Questionnaire
// ==========================

func TestQuestions_ReturnsCopy(t *testing.T) {
	qs := Questions()
	require.Len(t, qs, 5)
	for i, q := range qs {
		assert.Equal(t, i+1, q.ID)
		assert.Len(t, q.Options, 4)
	}

	qs[0].Options[0].Score = 99
	assert.Equal(t, 1, Questions()[0].Options[0].Score)
}

func TestValidateResponses(t *testing.T) {
	tests := []struct {
		name      string
		responses []models.RiskResponse
		wantErr   bool
	}{
		{"valid", []models.RiskResponse{{QuestionID: 2, SelectedOption: "hold", Score: 3}}, false},
		{"empty", nil, true},
		{"unknown question", []models.RiskResponse{{QuestionID: 9, SelectedOption: "hold", Score: 3}}, true},
		{"option from another question", []models.RiskResponse{{QuestionID: 1, SelectedOption: "hold", Score: 3}}, true},
		{"score mismatch", []models.RiskResponse{{QuestionID: 2, SelectedOption: "hold", Score: 4}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResponses(tt.responses)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidationFailed))
		})
	}
}

// ==========================
// Normalization
// ==========================

func TestNormalizeRiskScore(t *testing.T) {
	tests := []struct {
		name     string
		scores   []int
		expected int
	}{
		{"all moderate", []int{3, 3, 3, 3, 3}, 4},
		{"all lowest", []int{1, 1, 1, 1, 1}, 2},
		{"all highest", []int{4, 4, 4, 4, 4}, 5},
		{"half rounds down to even", []int{1, 2}, 2},
		{"half rounds up to even", []int{2, 3}, 4},
		{"single answer", []int{2}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rating, err := NormalizeRiskScore(responsesWithScores(tt.scores...))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rating)
		})
	}
}

func TestNormalizeRiskScore_Monotonic(t *testing.T) {
	scores := []int{1, 1, 1, 1, 1}
	prev, err := NormalizeRiskScore(responsesWithScores(scores...))
	require.NoError(t, err)

	for i := range scores {
		for scores[i] < MaxOptionScore {
			scores[i]++
			rating, err := NormalizeRiskScore(responsesWithScores(scores...))
			require.NoError(t, err)
			assert.GreaterOrEqual(t, rating, prev)
			assert.GreaterOrEqual(t, rating, MinRating)
			assert.LessOrEqual(t, rating, MaxRating)
			prev = rating
		}
	}
}

func TestNormalizeRiskScore_Errors(t *testing.T) {
	_, err := NormalizeRiskScore(nil)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeDegenerateInput))

	_, err = NormalizeRiskScore(responsesWithScores(3, 5))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidationFailed))
}

// ==========================
// Allocation
// ==========================

func TestAllocatePortfolio(t *testing.T) {
	tests := []struct {
		name     string
		rating   int
		age      int
		fund     int
		expected models.Allocation
	}{
		{"base moderate", 3, 40, 6, models.Allocation{Stocks: 60, Bonds: 35, Cash: 5}},
		{"retiree without fund", 3, 65, 2, models.Allocation{Stocks: 40, Bonds: 45, Cash: 15}},
		{"age 60 is not older", 4, 60, 6, models.Allocation{Stocks: 80, Bonds: 20, Cash: 0}},
		{"three months fund is enough", 5, 40, 3, models.Allocation{Stocks: 90, Bonds: 10, Cash: 0}},
		{"both adjustments on lowest", 1, 70, 0, models.Allocation{Stocks: 0, Bonds: 80, Cash: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := AllocatePortfolio(tt.rating,
				models.Demographics{Age: tt.age},
				models.FinancialGoals{EmergencyFundMonths: tt.fund})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, a)
		})
	}
}

func TestAllocatePortfolio_AlwaysSumsTo100(t *testing.T) {
	for rating := MinRating; rating <= MaxRating; rating++ {
		for _, age := range []int{18, 61} {
			for _, fund := range []int{0, 12} {
				a, err := AllocatePortfolio(rating, models.Demographics{Age: age}, models.FinancialGoals{EmergencyFundMonths: fund})
				require.NoError(t, err)
				assert.Equal(t, 100, a.Total())
			}
		}
	}
}

func TestBaseAllocation_OutOfRange(t *testing.T) {
	_, err := BaseAllocation(6)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidationFailed))
}

func TestRecommendedMonthlyInvestment(t *testing.T) {
	assert.Equal(t, 1400, RecommendedMonthlyInvestment(120000, 3000))
	assert.Equal(t, 817, RecommendedMonthlyInvestment(85000, 3000))
	assert.Equal(t, MinMonthlyInvestment, RecommendedMonthlyInvestment(30000, 3000))
	assert.Equal(t, MaxMonthlyInvestment, RecommendedMonthlyInvestment(240000, 0))
}

// ==========================
// Projection and formatting
// ==========================

func TestFutureValue(t *testing.T) {
	assert.InDelta(t, 13000, FutureValue(1000, 100, 0, 10), 1e-9)
	assert.InDelta(t, 1210, FutureValue(1000, 0, 0.1, 2), 1e-9)
	assert.InDelta(t, 1000, FutureValue(1000, 100, 0.05, 0), 1e-9)
	assert.Greater(t, FutureValue(0, 100, 0.06, 10), 100.0*120)
}

func TestBlendedReturn(t *testing.T) {
	assert.InDelta(t, 0.063, BlendedReturn(models.Allocation{Stocks: 60, Bonds: 35, Cash: 5}), 1e-12)
	assert.InDelta(t, 0.08, BlendedReturn(models.Allocation{Stocks: 100}), 1e-12)
}

func TestProject(t *testing.T) {
	target := 1000000
	p := Project(models.Allocation{Stocks: 80, Bonds: 20}, models.FinancialGoals{
		TimeHorizon:    10,
		CurrentSavings: 10000,
		TargetAmount:   &target,
	}, 500)

	assert.Equal(t, 10, p.Years)
	assert.InDelta(t, 0.072, p.ExpectedAnnualReturn, 1e-12)
	assert.Equal(t, "7.2%", p.ExpectedAnnualReturnText)
	assert.Equal(t, "$500", p.MonthlyContributionText)
	assert.False(t, p.GoalAchievement.LikelyToAchieve)
	require.NotNil(t, p.GoalAchievement.TargetAmount)
	assert.Equal(t, target, *p.GoalAchievement.TargetAmount)
	assert.Equal(t, p.ProjectedValue, p.GoalAchievement.ProjectedAmount)

	noTarget := Project(models.Allocation{Stocks: 80, Bonds: 20}, models.FinancialGoals{TimeHorizon: 10}, 500)
	assert.True(t, noTarget.GoalAchievement.LikelyToAchieve)
	assert.Nil(t, noTarget.GoalAchievement.TargetAmount)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "6.4%", FormatPercent(0.064))
	assert.Equal(t, "8.0%", FormatPercent(0.08))
	assert.Equal(t, "$123,457", FormatUSD(123456.7))
	assert.Equal(t, "$85,000", FormatUSD(85000))
	assert.Equal(t, "$100", FormatUSD(100))
}
