package models

import (
	"reflect"
	"time"
)

// AssessmentStatus is the stage a session has reached.
type AssessmentStatus string

const (
	StatusStarted                AssessmentStatus = "started"
	StatusDemographicsComplete   AssessmentStatus = "demographics_complete"
	StatusFinancialGoalsComplete AssessmentStatus = "financial_goals_complete"
	StatusRiskAssessmentComplete AssessmentStatus = "risk_assessment_complete"
	StatusCompleted              AssessmentStatus = "completed"
)

var statusOrder = map[AssessmentStatus]int{
	StatusStarted:                0,
	StatusDemographicsComplete:   1,
	StatusFinancialGoalsComplete: 2,
	StatusRiskAssessmentComplete: 3,
	StatusCompleted:              4,
}

func (s AssessmentStatus) Valid() bool {
	_, ok := statusOrder[s]
	return ok
}

// AtLeast reports whether s is the same stage as other or a later one.
func (s AssessmentStatus) AtLeast(other AssessmentStatus) bool {
	return s.Valid() && statusOrder[s] >= statusOrder[other]
}

// AssessmentSession is the per-user questionnaire record.
type AssessmentSession struct {
	ID             string           `json:"sessionId"`
	Status         AssessmentStatus `json:"status"`
	Demographics   *Demographics    `json:"demographics,omitempty"`
	FinancialGoals *FinancialGoals  `json:"financialGoals,omitempty"`
	RiskResponses  []RiskResponse   `json:"riskResponses,omitempty"`
	Recommendation *Recommendation  `json:"recommendation,omitempty"`
	Completed      bool             `json:"completed"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
	CompletedAt    *time.Time       `json:"completedAt,omitempty"`
	AuditLogged    bool             `json:"auditLogged,omitempty"`
}

func NewAssessmentSession(id string, now time.Time) *AssessmentSession {
	return &AssessmentSession{
		ID:        id,
		Status:    StatusStarted,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Advance moves the session to status unless it is already there or beyond.
func (s *AssessmentSession) Advance(status AssessmentStatus, now time.Time) {
	if !s.Status.AtLeast(status) {
		s.Status = status
	}
	s.UpdatedAt = now
}

// Complete attaches the recommendation and makes the session terminal.
func (s *AssessmentSession) Complete(rec *Recommendation, now time.Time) {
	s.Recommendation = rec
	s.Completed = true
	s.CompletedAt = &now
	s.Advance(StatusCompleted, now)
}

// SameAnswers reports whether both sessions hold the same questionnaire
// answers.
func (s *AssessmentSession) SameAnswers(other *AssessmentSession) bool {
	return reflect.DeepEqual(s.Demographics, other.Demographics) &&
		reflect.DeepEqual(s.FinancialGoals, other.FinancialGoals) &&
		reflect.DeepEqual(s.RiskResponses, other.RiskResponses)
}

// Clone returns a deep copy so callers can mutate without touching shared state.
func (s *AssessmentSession) Clone() *AssessmentSession {
	if s == nil {
		return nil
	}
	c := *s
	if s.Demographics != nil {
		d := *s.Demographics
		c.Demographics = &d
	}
	if s.FinancialGoals != nil {
		g := *s.FinancialGoals
		if g.TargetAmount != nil {
			t := *g.TargetAmount
			g.TargetAmount = &t
		}
		c.FinancialGoals = &g
	}
	if s.RiskResponses != nil {
		c.RiskResponses = append([]RiskResponse(nil), s.RiskResponses...)
	}
	if s.Recommendation != nil {
		c.Recommendation = s.Recommendation.Clone()
	}
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

// SessionProgress summarises which questionnaire stages are filled in.
type SessionProgress struct {
	SessionID         string           `json:"sessionId"`
	Status            AssessmentStatus `json:"status"`
	HasDemographics   bool             `json:"hasDemographics"`
	HasFinancialGoals bool             `json:"hasFinancialGoals"`
	HasRiskAssessment bool             `json:"hasRiskAssessment"`
	Completed         bool             `json:"completed"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

func (s *AssessmentSession) Progress() SessionProgress {
	return SessionProgress{
		SessionID:         s.ID,
		Status:            s.Status,
		HasDemographics:   s.Demographics != nil,
		HasFinancialGoals: s.FinancialGoals != nil,
		HasRiskAssessment: len(s.RiskResponses) > 0,
		Completed:         s.Completed,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}
