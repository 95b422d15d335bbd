// internal/workers/risk/predict-risk-level/models.go
package predictrisklevel

import (
	"robo-advisor-workers/internal/assessment"
	"robo-advisor-workers/internal/classifier"
)

type Input struct {
	Age               int `json:"age"`
	Income            int `json:"income"`
	RiskTolerance     int `json:"riskTolerance"`
	InvestmentHorizon int `json:"investmentHorizon"`
}

func (i Input) Features() classifier.Features {
	return classifier.Features{
		Age:               i.Age,
		Income:            i.Income,
		RiskTolerance:     i.RiskTolerance,
		InvestmentHorizon: i.InvestmentHorizon,
	}
}

type Output struct {
	Prediction assessment.RiskPrediction `json:"prediction"`
}
