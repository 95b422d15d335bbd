package main

import (
	"encoding/json"
	"fmt"
	"os"

	"robo-advisor-workers/internal/advisor"
	"robo-advisor-workers/internal/models"

	"gopkg.in/yaml.v3"
)

// Profile is a complete set of questionnaire answers read from a YAML or
// JSON file. Field names match the job variable names.
type Profile struct {
	Demographics   models.Demographics   `json:"demographics"`
	FinancialGoals models.FinancialGoals `json:"financialGoals"`
	RiskResponses  []models.RiskResponse `json:"riskResponses"`
}

func loadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return parseProfile(data)
}

// parseProfile accepts YAML (and therefore JSON). Responses that name an
// option but leave the score out get the catalog score.
func parseProfile(data []byte) (*Profile, error) {
	var generic interface{}
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	raw, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}

	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}

	for i, r := range p.RiskResponses {
		if r.Score != 0 {
			continue
		}
		if opt, ok := advisor.FindOption(r.QuestionID, r.SelectedOption); ok {
			p.RiskResponses[i].Score = opt.Score
		}
	}
	return &p, nil
}
