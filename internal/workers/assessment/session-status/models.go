// internal/workers/assessment/session-status/models.go
package sessionstatus

import "robo-advisor-workers/internal/models"

type Input struct {
	SessionID string `json:"sessionId"`
}

type Output struct {
	SessionStatus models.SessionProgress `json:"sessionStatus"`
}
