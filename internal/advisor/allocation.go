package advisor

import (
	"fmt"
	"math"

	apperrors "robo-advisor-workers/internal/common/errors"
	"robo-advisor-workers/internal/models"
)

const (
	RebalancingFrequency = "quarterly"

	MinMonthlyInvestment = 100
	MaxMonthlyInvestment = 2000
)

var baseAllocations = map[int]models.Allocation{
	1: {Stocks: 20, Bonds: 70, Cash: 10},
	2: {Stocks: 40, Bonds: 50, Cash: 10},
	3: {Stocks: 60, Bonds: 35, Cash: 5},
	4: {Stocks: 80, Bonds: 20, Cash: 0},
	5: {Stocks: 90, Bonds: 10, Cash: 0},
}

func BaseAllocation(rating int) (models.Allocation, error) {
	a, ok := baseAllocations[rating]
	if !ok {
		return models.Allocation{}, apperrors.NewRangeError("riskRating", float64(rating), MinRating, MaxRating)
	}
	return a, nil
}

// AllocatePortfolio applies the profile adjustments to the base allocation
// for rating. Stocks absorb any drift from 100 and are not clamped, so
// stacked adjustments on a conservative base can leave stocks below zero.
func AllocatePortfolio(rating int, d models.Demographics, g models.FinancialGoals) (models.Allocation, error) {
	a, err := BaseAllocation(rating)
	if err != nil {
		return models.Allocation{}, err
	}

	if d.Age > 60 {
		a.Bonds += 10
		a.Stocks -= 10
	}
	if g.EmergencyFundMonths < 3 {
		a.Cash += 10
		a.Stocks -= 10
	}

	if total := a.Total(); total != 100 {
		a.Stocks += 100 - total
	}

	if a.Total() != 100 {
		return models.Allocation{}, apperrors.NewInternalError(fmt.Errorf("allocation sums to %d", a.Total()))
	}
	return a, nil
}

// RecommendedMonthlyInvestment is 20% of the monthly surplus, kept within
// 100..2000. The floor applies even when there is no surplus.
func RecommendedMonthlyInvestment(annualIncome, monthlyExpenses int) int {
	surplus := float64(annualIncome)/12 - float64(monthlyExpenses)
	amount := math.Max(MinMonthlyInvestment, math.Min(MaxMonthlyInvestment, surplus*0.2))
	return int(math.RoundToEven(amount))
}
