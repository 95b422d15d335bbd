package models

import "time"

const EventAssessmentCompleted = "assessment.completed"

// AssessmentEvent is published when a session reaches a notable state.
type AssessmentEvent struct {
	ID                           string     `json:"id"`
	Type                         string     `json:"type"`
	SessionID                    string     `json:"sessionId"`
	RiskCategory                 string     `json:"riskCategory"`
	Allocation                   Allocation `json:"allocation"`
	RecommendedMonthlyInvestment int        `json:"recommendedMonthlyInvestment"`
	LikelyToAchieveGoal          bool       `json:"likelyToAchieveGoal"`
	OccurredAt                   time.Time  `json:"occurredAt"`
}

// NotificationResult reports what the notifier delivered.
type NotificationResult struct {
	EventID   string `json:"eventId"`
	Published bool   `json:"published"`
	Emailed   bool   `json:"emailed"`
}
