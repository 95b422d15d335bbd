// internal/workers/assessment/start-assessment/models.go
package startassessment

import "time"

// Input carries no variables; a session is created from nothing.
type Input struct{}

type Output struct {
	SessionID string    `json:"sessionId"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
