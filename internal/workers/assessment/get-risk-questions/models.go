// internal/workers/assessment/get-risk-questions/models.go
package getriskquestions

import "robo-advisor-workers/internal/models"

type Input struct{}

// Output lists the catalog in presentation order.
type Output struct {
	Questions      []models.Question `json:"questions"`
	TotalQuestions int               `json:"totalQuestions"`
}
