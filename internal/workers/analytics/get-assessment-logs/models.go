// internal/workers/analytics/get-assessment-logs/models.go
package getassessmentlogs

import "robo-advisor-workers/internal/models"

// Input pages through the log. A zero limit selects the service default.
type Input struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type Output struct {
	Entries []models.AssessmentLogEntry `json:"entries"`
	Total   int                         `json:"total"`
	Limit   int                         `json:"limit"`
	Offset  int                         `json:"offset"`
}
