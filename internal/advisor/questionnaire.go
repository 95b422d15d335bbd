// Package advisor holds the recommendation pipeline: questionnaire scoring,
// allocation rules, growth projection and the composer that ties them to a
// classifier prediction.
package advisor

import (
	"fmt"

	apperrors "robo-advisor-workers/internal/common/errors"
	"robo-advisor-workers/internal/models"
)

const (
	MinOptionScore = 1
	MaxOptionScore = 4
)

var catalog = []models.Question{
	{
		ID:       1,
		Category: "experience",
		Text:     "How would you describe your investment experience?",
		Type:     "single_choice",
		Options: []models.QuestionOption{
			{Value: "none", Text: "No prior investment experience", Score: 1},
			{Value: "beginner", Text: "Less than 2 years", Score: 2},
			{Value: "intermediate", Text: "2-10 years of experience", Score: 3},
			{Value: "expert", Text: "More than 10 years of experience", Score: 4},
		},
	},
	{
		ID:       2,
		Category: "loss_tolerance",
		Text:     "If your investments lost 20% of their value in one year, what would you do?",
		Type:     "single_choice",
		Options: []models.QuestionOption{
			{Value: "sell_all", Text: "Sell everything to avoid further losses", Score: 1},
			{Value: "sell_some", Text: "Sell some investments to limit losses", Score: 2},
			{Value: "hold", Text: "Hold everything and wait for recovery", Score: 3},
			{Value: "buy_more", Text: "Buy more at the lower prices", Score: 4},
		},
	},
	{
		ID:       3,
		Category: "volatility_comfort",
		Text:     "What's the maximum loss you could accept in a single year?",
		Type:     "single_choice",
		Options: []models.QuestionOption{
			{Value: "5_percent", Text: "5% - I need stability", Score: 1},
			{Value: "10_percent", Text: "10% - Small fluctuations are OK", Score: 2},
			{Value: "20_percent", Text: "20% - I can handle moderate swings", Score: 3},
			{Value: "30_plus", Text: "30%+ - I'm comfortable with high volatility", Score: 4},
		},
	},
	{
		ID:       4,
		Category: "time_pressure",
		Text:     "When do you expect to need this money?",
		Type:     "single_choice",
		Options: []models.QuestionOption{
			{Value: "less_2_years", Text: "Less than 2 years", Score: 1},
			{Value: "2_5_years", Text: "2-5 years", Score: 2},
			{Value: "5_10_years", Text: "5-10 years", Score: 3},
			{Value: "more_10_years", Text: "More than 10 years", Score: 4},
		},
	},
	{
		ID:       5,
		Category: "priority",
		Text:     "What's most important to you?",
		Type:     "single_choice",
		Options: []models.QuestionOption{
			{Value: "preserve_capital", Text: "Preserving my money (avoiding losses)", Score: 1},
			{Value: "steady_income", Text: "Generating steady income", Score: 2},
			{Value: "balanced_growth", Text: "Balanced growth with some income", Score: 3},
			{Value: "maximize_growth", Text: "Maximizing long-term growth", Score: 4},
		},
	},
}

// Questions returns a copy of the ordered risk questionnaire.
func Questions() []models.Question {
	out := make([]models.Question, len(catalog))
	for i, q := range catalog {
		q.Options = append([]models.QuestionOption(nil), q.Options...)
		out[i] = q
	}
	return out
}

// FindOption looks up an answer option by question id and option value.
func FindOption(questionID int, value string) (models.QuestionOption, bool) {
	for _, q := range catalog {
		if q.ID != questionID {
			continue
		}
		for _, opt := range q.Options {
			if opt.Value == value {
				return opt, true
			}
		}
		return models.QuestionOption{}, false
	}
	return models.QuestionOption{}, false
}

// ValidateResponses checks each response against the catalog: the question
// must exist, the option must belong to it and the score must be that
// option's score.
func ValidateResponses(responses []models.RiskResponse) error {
	if len(responses) == 0 {
		return apperrors.NewValidationError("riskResponses", "at least one risk response is required")
	}

	for i, r := range responses {
		field := fmt.Sprintf("riskResponses[%d]", i)
		opt, ok := FindOption(r.QuestionID, r.SelectedOption)
		if !ok {
			return apperrors.NewValidationError(field,
				fmt.Sprintf("option %q is not an answer to question %d", r.SelectedOption, r.QuestionID))
		}
		if opt.Score != r.Score {
			return apperrors.NewValidationError(field,
				fmt.Sprintf("score %d does not match option %q (score %d)", r.Score, r.SelectedOption, opt.Score))
		}
	}
	return nil
}
