// internal/workers/assessment/generate-recommendation/models.go
package generaterecommendation

import "robo-advisor-workers/internal/models"

type Input struct {
	SessionID string `json:"sessionId"`
}

type Output struct {
	Recommendation *models.Recommendation `json:"recommendation"`
}
