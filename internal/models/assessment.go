package models

// Employment status values accepted on Demographics.
const (
	EmploymentEmployed     = "employed"
	EmploymentSelfEmployed = "self_employed"
	EmploymentUnemployed   = "unemployed"
	EmploymentRetired      = "retired"
)

// Marital status values accepted on Demographics.
const (
	MaritalSingle   = "single"
	MaritalMarried  = "married"
	MaritalDivorced = "divorced"
	MaritalWidowed  = "widowed"
)

// Primary goal values accepted on FinancialGoals.
const (
	GoalRetirement     = "retirement"
	GoalHomePurchase   = "home_purchase"
	GoalEducation      = "education"
	GoalWealthBuilding = "wealth_building"
	GoalEmergencyFund  = "emergency_fund"
)

var (
	EmploymentStatuses = []string{EmploymentEmployed, EmploymentSelfEmployed, EmploymentUnemployed, EmploymentRetired}
	MaritalStatuses    = []string{MaritalSingle, MaritalMarried, MaritalDivorced, MaritalWidowed}
	PrimaryGoals       = []string{GoalRetirement, GoalHomePurchase, GoalEducation, GoalWealthBuilding, GoalEmergencyFund}
)

// Demographics is the first questionnaire stage. It cannot be replaced once
// stored on a session.
type Demographics struct {
	Age              int    `json:"age"`
	Income           int    `json:"income"`
	EmploymentStatus string `json:"employmentStatus"`
	Location         string `json:"location"`
	Dependents       int    `json:"dependents"`
	MaritalStatus    string `json:"maritalStatus"`
}

// FinancialGoals is the second questionnaire stage. All amounts are whole
// currency units.
type FinancialGoals struct {
	PrimaryGoal         string `json:"primaryGoal"`
	TargetAmount        *int   `json:"targetAmount"`
	TimeHorizon         int    `json:"timeHorizon"`
	CurrentSavings      int    `json:"currentSavings"`
	MonthlyExpenses     int    `json:"monthlyExpenses"`
	ExistingDebt        int    `json:"existingDebt"`
	EmergencyFundMonths int    `json:"emergencyFundMonths"`
}

// RiskResponse is one answer to a catalog question.
type RiskResponse struct {
	QuestionID     int    `json:"questionId"`
	SelectedOption string `json:"selectedOption"`
	Score          int    `json:"score"`
}

// QuestionOption is one selectable answer with its raw score (1..4).
type QuestionOption struct {
	Value string `json:"value"`
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// Question is a scored multiple-choice risk question.
type Question struct {
	ID       int              `json:"id"`
	Category string           `json:"category"`
	Text     string           `json:"question"`
	Type     string           `json:"type"`
	Options  []QuestionOption `json:"options"`
}
