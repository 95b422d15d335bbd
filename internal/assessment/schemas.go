package assessment

import (
	"robo-advisor-workers/internal/classifier"
	apperrors "robo-advisor-workers/internal/common/errors"
	"robo-advisor-workers/internal/common/validation"
	"robo-advisor-workers/internal/models"
)

var demographicsSchema = validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"age":              {Type: "integer", Minimum: validation.Float(18), Maximum: validation.Float(100)},
		"income":           {Type: "integer", Minimum: validation.Float(20000), Maximum: validation.Float(50000000)},
		"employmentStatus": {Type: "string", Enum: models.EmploymentStatuses},
		"location":         {Type: "string", MinLength: validation.Int(1), MaxLength: validation.Int(255)},
		"dependents":       {Type: "integer", Minimum: validation.Float(0), Maximum: validation.Float(20)},
		"maritalStatus":    {Type: "string", Enum: models.MaritalStatuses},
	},
	Required: []string{"age", "income", "employmentStatus", "location", "dependents", "maritalStatus"},
}

var financialGoalsSchema = validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"primaryGoal":         {Type: "string", Enum: models.PrimaryGoals},
		"targetAmount":        {Type: "integer", Minimum: validation.Float(1000), Maximum: validation.Float(100000000)},
		"timeHorizon":         {Type: "integer", Minimum: validation.Float(1), Maximum: validation.Float(50)},
		"currentSavings":      {Type: "integer", Minimum: validation.Float(0), Maximum: validation.Float(50000000)},
		"monthlyExpenses":     {Type: "integer", Minimum: validation.Float(0), Maximum: validation.Float(1000000)},
		"existingDebt":        {Type: "integer", Minimum: validation.Float(0), Maximum: validation.Float(50000000)},
		"emergencyFundMonths": {Type: "integer", Minimum: validation.Float(0), Maximum: validation.Float(12)},
	},
	Required: []string{"primaryGoal", "timeHorizon", "currentSavings", "monthlyExpenses", "existingDebt", "emergencyFundMonths"},
}

var featuresSchema = validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		classifier.FeatureAge:               {Type: "integer", Minimum: validation.Float(18), Maximum: validation.Float(100)},
		classifier.FeatureIncome:            {Type: "integer", Minimum: validation.Float(0)},
		classifier.FeatureRiskTolerance:     {Type: "integer", Minimum: validation.Float(1), Maximum: validation.Float(5)},
		classifier.FeatureInvestmentHorizon: {Type: "integer", Minimum: validation.Float(1), Maximum: validation.Float(50)},
	},
	Required: []string{
		classifier.FeatureAge, classifier.FeatureIncome,
		classifier.FeatureRiskTolerance, classifier.FeatureInvestmentHorizon,
	},
}

// validate checks v against schema and reports the first violation as a
// VALIDATION_FAILED error carrying the field and its bounds.
func validate(v interface{}, schema validation.JSONSchema) error {
	result := validation.ValidateStruct(v, schema)
	if result.Valid {
		return nil
	}

	first := result.Errors[0]
	err := apperrors.NewValidationError(first.Field, first.Message).
		WithMetadata("code", first.Code).
		WithMetadata("violations", result.GetErrorMessages())

	if prop, ok := schema.Properties[first.Field]; ok {
		if prop.Minimum != nil {
			err.WithMetadata("min", *prop.Minimum)
		}
		if prop.Maximum != nil {
			err.WithMetadata("max", *prop.Maximum)
		}
		if len(prop.Enum) > 0 {
			err.WithMetadata("allowed", prop.Enum)
		}
	}
	return err
}
