package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileSchema() JSONSchema {
	return JSONSchema{
		Type: "object",
		Properties: map[string]Property{
			"age":    {Type: "integer", Minimum: Float(18), Maximum: Float(100)},
			"status": {Type: "string", Enum: []string{"single", "married"}},
			"city":   {Type: "string", MinLength: Int(1), MaxLength: Int(10)},
			"target": {Type: "integer", Minimum: Float(1000)},
			"scores": {Type: "array", MinItems: Int(1), Items: &Property{Type: "integer", Minimum: Float(1), Maximum: Float(4)}},
		},
		Required: []string{"age", "status"},
	}
}

func TestValidateInput_Valid(t *testing.T) {
	result := ValidateInput(map[string]interface{}{
		"age":    float64(45),
		"status": "married",
		"city":   "Lisbon",
		"target": nil,
		"scores": []interface{}{float64(1), float64(4)},
	}, profileSchema())

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateInput_Violations(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]interface{}
		field string
		code  string
	}{
		{"missing required", map[string]interface{}{"status": "single"}, "age", CodeRequired},
		{"below minimum", map[string]interface{}{"age": float64(17), "status": "single"}, "age", CodeMinimum},
		{"above maximum", map[string]interface{}{"age": float64(101), "status": "single"}, "age", CodeMaximum},
		{"fractional integer", map[string]interface{}{"age": 30.5, "status": "single"}, "age", CodeInvalidType},
		{"bad enum", map[string]interface{}{"age": float64(30), "status": "complicated"}, "status", CodeInvalidEnum},
		{"empty string", map[string]interface{}{"age": float64(30), "status": "single", "city": ""}, "city", CodeMinLength},
		{"long string", map[string]interface{}{"age": float64(30), "status": "single", "city": "Llanfairpwllgwyngyll"}, "city", CodeMaxLength},
		{"extra field", map[string]interface{}{"age": float64(30), "status": "single", "pets": 2}, "pets", CodeExtraField},
		{"empty array", map[string]interface{}{"age": float64(30), "status": "single", "scores": []interface{}{}}, "scores", CodeMinItems},
		{"array item", map[string]interface{}{"age": float64(30), "status": "single", "scores": []interface{}{float64(5)}}, "scores[0]", CodeMaximum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateInput(tt.input, profileSchema())
			require.False(t, result.Valid)
			require.NotEmpty(t, result.Errors)
			assert.Equal(t, tt.field, result.Errors[0].Field)
			assert.Equal(t, tt.code, result.Errors[0].Code)
		})
	}
}

func TestValidateStruct_UsesJSONTags(t *testing.T) {
	type profile struct {
		Age    int    `json:"age"`
		Status string `json:"status"`
		Target *int   `json:"target"`
	}

	result := ValidateStruct(profile{Age: 16, Status: "single"}, profileSchema())

	require.False(t, result.Valid)
	assert.Len(t, result.GetErrorsForField("age"), 1)
	assert.Equal(t, []string{"age: value must be >= 18, got 16"}, result.GetErrorMessages())
}

func TestValidateInput_ErrorsOrderedByField(t *testing.T) {
	result := ValidateInput(map[string]interface{}{
		"status": "x",
		"age":    float64(5),
	}, profileSchema())

	require.Len(t, result.Errors, 2)
	assert.Equal(t, "age", result.Errors[0].Field)
	assert.Equal(t, "status", result.Errors[1].Field)
}

func TestValidateInput_NestedObject(t *testing.T) {
	schema := JSONSchema{
		Type: "object",
		Properties: map[string]Property{
			"demographics": {
				Type:       "object",
				Properties: map[string]Property{"age": {Type: "integer", Minimum: Float(18)}},
				Required:   []string{"age"},
			},
		},
	}

	result := ValidateInput(map[string]interface{}{"demographics": map[string]interface{}{}}, schema)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "demographics.age", result.Errors[0].Field)
	assert.Equal(t, CodeRequired, result.Errors[0].Code)

	result = ValidateInput(map[string]interface{}{"demographics": map[string]interface{}{"age": float64(12)}}, schema)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "demographics.age", result.Errors[0].Field)
	assert.Equal(t, "value must be >= 18, got 12", result.Errors[0].Message)
}

func TestJSONSchema_Document(t *testing.T) {
	doc := profileSchema().Document()

	assert.Equal(t, "object", doc["type"])
	assert.Equal(t, false, doc["additionalProperties"])
	assert.Equal(t, []string{"age", "status"}, doc["required"])

	props, ok := doc["properties"].(map[string]interface{})
	require.True(t, ok)
	age, ok := props["age"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(18), age["minimum"])
	assert.Equal(t, float64(100), age["maximum"])

	scores, ok := props["scores"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 1, scores["minItems"])
	assert.NotNil(t, scores["items"])
}
