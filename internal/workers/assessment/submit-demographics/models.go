// internal/workers/assessment/submit-demographics/models.go
package submitdemographics

import "robo-advisor-workers/internal/models"

type Input struct {
	SessionID    string               `json:"sessionId"`
	Demographics *models.Demographics `json:"demographics"`
}

type Output struct {
	SessionID string `json:"sessionId"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}
