// internal/workers/assessment/submit-financial-goals/models.go
package submitfinancialgoals

import "robo-advisor-workers/internal/models"

type Input struct {
	SessionID      string                 `json:"sessionId"`
	FinancialGoals *models.FinancialGoals `json:"financialGoals"`
}

type Output struct {
	SessionID string `json:"sessionId"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}
