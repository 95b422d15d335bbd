package models

import "time"

// Allocation is a split across the three asset buckets in whole percent.
// After adjustment the buckets always sum to 100, though an individual
// bucket can fall outside 0..100.
type Allocation struct {
	Stocks int `json:"stocks"`
	Bonds  int `json:"bonds"`
	Cash   int `json:"cash"`
}

func (a Allocation) Total() int {
	return a.Stocks + a.Bonds + a.Cash
}

type AssessmentSummary struct {
	QuestionnaireRiskScore int    `json:"questionnaireRiskScore"`
	ModelRiskScore         int    `json:"modelRiskScore"`
	FinalRiskCategory      string `json:"finalRiskCategory"`
}

type Portfolio struct {
	Allocation                   Allocation `json:"allocation"`
	RecommendedMonthlyInvestment int        `json:"recommendedMonthlyInvestment"`
	RebalancingFrequency         string     `json:"rebalancingFrequency"`
}

type GoalAchievement struct {
	TargetAmount    *int    `json:"targetAmount"`
	ProjectedAmount float64 `json:"projectedAmount"`
	LikelyToAchieve bool    `json:"likelyToAchieve"`
}

// Projection holds the compound growth estimate. The *Text fields carry the
// display renderings of the numeric values.
type Projection struct {
	Years                    int             `json:"years"`
	ExpectedAnnualReturn     float64         `json:"expectedAnnualReturn"`
	ProjectedValue           float64         `json:"projectedValue"`
	MonthlyContribution      int             `json:"monthlyContribution"`
	ExpectedAnnualReturnText string          `json:"expectedAnnualReturnText"`
	ProjectedValueText       string          `json:"projectedPortfolioValue"`
	MonthlyContributionText  string          `json:"monthlyContributionNeeded"`
	GoalAchievement          GoalAchievement `json:"goalAchievement"`
}

// InfluentialFactor is a heuristic hint naming a feature the model weighed
// heavily. It is not a causal explanation.
type InfluentialFactor struct {
	Feature     string  `json:"feature"`
	Importance  float64 `json:"importance"`
	Description string  `json:"description"`
}

type Recommendation struct {
	SessionID          string              `json:"sessionId"`
	AssessmentSummary  AssessmentSummary   `json:"assessmentSummary"`
	Portfolio          Portfolio           `json:"portfolio"`
	Projections        Projection          `json:"projections"`
	Explanation        string              `json:"explanation"`
	InfluentialFactors []InfluentialFactor `json:"influentialFactors,omitempty"`
	NextSteps          []string            `json:"nextSteps"`
	Disclaimer         string              `json:"disclaimer"`
	GeneratedAt        time.Time           `json:"generatedAt"`
}

func (r *Recommendation) Clone() *Recommendation {
	if r == nil {
		return nil
	}
	c := *r
	c.InfluentialFactors = append([]InfluentialFactor(nil), r.InfluentialFactors...)
	c.NextSteps = append([]string(nil), r.NextSteps...)
	if r.Projections.GoalAchievement.TargetAmount != nil {
		t := *r.Projections.GoalAchievement.TargetAmount
		c.Projections.GoalAchievement.TargetAmount = &t
	}
	return &c
}

// AssessmentLogEntry is the audit record written when a session completes.
type AssessmentLogEntry struct {
	SessionID         string            `json:"sessionId"`
	Timestamp         time.Time         `json:"timestamp"`
	Demographics      Demographics      `json:"demographics"`
	FinancialGoals    FinancialGoals    `json:"financialGoals"`
	RiskResponses     []RiskResponse    `json:"riskResponses"`
	AssessmentSummary AssessmentSummary `json:"assessmentSummary"`
	Completed         bool              `json:"completed"`
}

// NewAssessmentLogEntry builds the audit record for a completed session.
func NewAssessmentLogEntry(s *AssessmentSession) AssessmentLogEntry {
	entry := AssessmentLogEntry{
		SessionID:     s.ID,
		RiskResponses: append([]RiskResponse(nil), s.RiskResponses...),
		Completed:     s.Completed,
		Timestamp:     s.UpdatedAt,
	}
	if s.CompletedAt != nil {
		entry.Timestamp = *s.CompletedAt
	}
	if s.Demographics != nil {
		entry.Demographics = *s.Demographics
	}
	if s.FinancialGoals != nil {
		entry.FinancialGoals = *s.FinancialGoals
	}
	if s.Recommendation != nil {
		entry.AssessmentSummary = s.Recommendation.AssessmentSummary
	}
	return entry
}
