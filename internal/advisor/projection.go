package advisor

import (
	"math"

	"robo-advisor-workers/internal/models"
)

// Expected annual returns per bucket.
const (
	StockReturn = 0.08
	BondReturn  = 0.04
	CashReturn  = 0.02
)

// BlendedReturn weights the bucket returns by allocation percentage.
func BlendedReturn(a models.Allocation) float64 {
	return float64(a.Stocks)/100*StockReturn +
		float64(a.Bonds)/100*BondReturn +
		float64(a.Cash)/100*CashReturn
}

// FutureValue compounds presentValue annually for years and adds an
// ordinary annuity of monthlyPayment at annualRate/12 over years*12 months.
// A zero rate makes the annuity a plain sum of payments.
func FutureValue(presentValue, monthlyPayment, annualRate float64, years int) float64 {
	fvPresent := presentValue * math.Pow(1+annualRate, float64(years))

	months := float64(years * 12)
	monthlyRate := annualRate / 12
	var fvAnnuity float64
	if monthlyRate == 0 {
		fvAnnuity = monthlyPayment * months
	} else {
		fvAnnuity = monthlyPayment * ((math.Pow(1+monthlyRate, months) - 1) / monthlyRate)
	}

	return fvPresent + fvAnnuity
}

// Project estimates portfolio growth over the goal horizon. Without a target
// amount the goal counts as achievable.
func Project(a models.Allocation, g models.FinancialGoals, monthlyInvestment int) models.Projection {
	annual := BlendedReturn(a)
	fv := FutureValue(float64(g.CurrentSavings), float64(monthlyInvestment), annual, g.TimeHorizon)

	achievement := models.GoalAchievement{
		ProjectedAmount: fv,
		LikelyToAchieve: true,
	}
	if g.TargetAmount != nil {
		target := *g.TargetAmount
		achievement.TargetAmount = &target
		achievement.LikelyToAchieve = fv >= float64(target)
	}

	return models.Projection{
		Years:                    g.TimeHorizon,
		ExpectedAnnualReturn:     annual,
		ProjectedValue:           fv,
		MonthlyContribution:      monthlyInvestment,
		ExpectedAnnualReturnText: FormatPercent(annual),
		ProjectedValueText:       FormatUSD(fv),
		MonthlyContributionText:  FormatUSD(float64(monthlyInvestment)),
		GoalAchievement:          achievement,
	}
}
