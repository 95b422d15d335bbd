// internal/workers/assessment/submit-risk-assessment/models.go
package submitriskassessment

import "robo-advisor-workers/internal/models"

type Input struct {
	SessionID     string                `json:"sessionId"`
	RiskResponses []models.RiskResponse `json:"riskResponses"`
}

type Output struct {
	SessionID string `json:"sessionId"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}
