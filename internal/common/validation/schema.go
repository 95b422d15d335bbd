package validation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

type JSONSchema struct {
	Type                 string              `json:"type"`
	Properties           map[string]Property `json:"properties"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties bool                `json:"additionalProperties,omitempty"`
}

type Property struct {
	Type        string              `json:"type"`
	Description string              `json:"description,omitempty"`
	Minimum     *float64            `json:"minimum,omitempty"`
	Maximum     *float64            `json:"maximum,omitempty"`
	Enum        []string            `json:"enum,omitempty"`
	MinLength   *int                `json:"minLength,omitempty"`
	MaxLength   *int                `json:"maxLength,omitempty"`
	MinItems    *int                `json:"minItems,omitempty"`
	Items       *Property           `json:"items,omitempty"`
	Properties  map[string]Property `json:"properties,omitempty"`
	Required    []string            `json:"required,omitempty"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

const (
	CodeRequired    = "REQUIRED_FIELD_MISSING"
	CodeExtraField  = "EXTRA_FIELD"
	CodeInvalidType = "INVALID_TYPE"
	CodeMinLength   = "MIN_LENGTH_VIOLATION"
	CodeMaxLength   = "MAX_LENGTH_VIOLATION"
	CodeInvalidEnum = "INVALID_ENUM_VALUE"
	CodeMinimum     = "MINIMUM_VIOLATION"
	CodeMaximum     = "MAXIMUM_VIOLATION"
	CodeMinItems    = "MIN_ITEMS_VIOLATION"
	CodeNotAnObject = "NOT_AN_OBJECT"
	CodeSchema      = "SCHEMA_VIOLATION"
)

const rootField = "(root)"

func Float(f float64) *float64 { return &f }

func Int(i int) *int { return &i }

// ToMap round-trips v through JSON so struct tags decide the field names.
// Numbers come back as float64.
func ToMap(v interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ValidateStruct validates a tagged struct against schema.
func ValidateStruct(v interface{}, schema JSONSchema) *ValidationResult {
	m, err := ToMap(v)
	if err != nil {
		return &ValidationResult{Errors: []ValidationError{{
			Message: err.Error(),
			Code:    CodeNotAnObject,
		}}}
	}
	return ValidateInput(m, schema)
}

// ValidateInput checks input against schema with gojsonschema. Null values
// count as absent. Errors are ordered by field name.
func ValidateInput(input map[string]interface{}, schema JSONSchema) *ValidationResult {
	input = withoutNulls(input)

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema.Document()),
		gojsonschema.NewGoLoader(input),
	)
	if err != nil {
		return &ValidationResult{Errors: []ValidationError{{
			Message: err.Error(),
			Code:    CodeSchema,
		}}}
	}

	errs := make([]ValidationError, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		errs = append(errs, convert(re, input, schema))
	}
	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })

	return &ValidationResult{
		Valid:  result.Valid(),
		Errors: errs,
	}
}

// Document renders the schema as a JSON Schema document.
func (s JSONSchema) Document() map[string]interface{} {
	doc := map[string]interface{}{
		"type":                 s.Type,
		"additionalProperties": s.AdditionalProperties,
	}
	if len(s.Properties) > 0 {
		doc["properties"] = propertiesDocument(s.Properties)
	}
	if len(s.Required) > 0 {
		doc["required"] = s.Required
	}
	return doc
}

func propertiesDocument(props map[string]Property) map[string]interface{} {
	out := make(map[string]interface{}, len(props))
	for name, p := range props {
		out[name] = p.document()
	}
	return out
}

func (p Property) document() map[string]interface{} {
	doc := map[string]interface{}{}
	if p.Type != "" {
		doc["type"] = p.Type
	}
	if p.Description != "" {
		doc["description"] = p.Description
	}
	if p.Minimum != nil {
		doc["minimum"] = *p.Minimum
	}
	if p.Maximum != nil {
		doc["maximum"] = *p.Maximum
	}
	if len(p.Enum) > 0 {
		doc["enum"] = p.Enum
	}
	if p.MinLength != nil {
		doc["minLength"] = *p.MinLength
	}
	if p.MaxLength != nil {
		doc["maxLength"] = *p.MaxLength
	}
	if p.MinItems != nil {
		doc["minItems"] = *p.MinItems
	}
	if p.Items != nil {
		doc["items"] = p.Items.document()
	}
	if len(p.Properties) > 0 {
		doc["properties"] = propertiesDocument(p.Properties)
	}
	if len(p.Required) > 0 {
		doc["required"] = p.Required
	}
	return doc
}

func withoutNulls(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		switch val := v.(type) {
		case nil:
		case map[string]interface{}:
			out[k] = withoutNulls(val)
		default:
			out[k] = v
		}
	}
	return out
}

func convert(re gojsonschema.ResultError, input map[string]interface{}, schema JSONSchema) ValidationError {
	path := errorPath(re)
	prop, _ := schema.propertyAt(path)
	ve := ValidationError{Field: joinPath(path)}

	switch re.Type() {
	case "required":
		ve.Code, ve.Message = CodeRequired, "required field missing"
	case "additional_property_not_allowed":
		ve.Code, ve.Message = CodeExtraField, "field not allowed in schema"
	case "invalid_type":
		ve.Code, ve.Message = CodeInvalidType, re.Description()
	case "enum":
		ve.Code, ve.Message = CodeInvalidEnum, fmt.Sprintf("value must be one of [%s]", strings.Join(prop.Enum, ", "))
	case "string_gte":
		ve.Code, ve.Message = CodeMinLength, fmt.Sprintf("value must be at least %d characters", intOr(prop.MinLength))
	case "string_lte":
		ve.Code, ve.Message = CodeMaxLength, fmt.Sprintf("value must be at most %d characters", intOr(prop.MaxLength))
	case "array_min_items":
		ve.Code, ve.Message = CodeMinItems, fmt.Sprintf("must contain at least %d items", intOr(prop.MinItems))
	case "number_gte":
		ve.Code, ve.Message = CodeMinimum, fmt.Sprintf("value must be >= %v, got %v", floatOr(prop.Minimum), valueAt(input, path))
	case "number_lte":
		ve.Code, ve.Message = CodeMaximum, fmt.Sprintf("value must be <= %v, got %v", floatOr(prop.Maximum), valueAt(input, path))
	default:
		ve.Code, ve.Message = CodeSchema, re.Description()
	}
	return ve
}

// errorPath splits the error context into property names and array
// indexes. Required and additional-property errors point at their object,
// so the offending property is appended.
func errorPath(re gojsonschema.ResultError) []string {
	var path []string
	if f := strings.TrimPrefix(re.Context().String(), rootField+"."); f != "" && f != rootField {
		path = strings.Split(f, ".")
	}
	switch re.Type() {
	case "required", "additional_property_not_allowed":
		if name, ok := re.Details()["property"].(string); ok {
			if len(path) == 0 || path[len(path)-1] != name {
				path = append(path, name)
			}
		}
	}
	return path
}

func joinPath(path []string) string {
	var b strings.Builder
	for i, part := range path {
		if _, err := strconv.Atoi(part); err == nil && i > 0 {
			b.WriteString("[" + part + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func (s JSONSchema) propertyAt(path []string) (Property, bool) {
	if len(path) == 0 {
		return Property{}, false
	}
	props := s.Properties
	var prop Property
	for i, part := range path {
		if _, err := strconv.Atoi(part); err == nil && i > 0 {
			if prop.Items == nil {
				return Property{}, false
			}
			prop = *prop.Items
			props = prop.Properties
			continue
		}
		p, ok := props[part]
		if !ok {
			return Property{}, false
		}
		prop = p
		props = p.Properties
	}
	return prop, true
}

func valueAt(input map[string]interface{}, path []string) interface{} {
	var cur interface{} = input
	for _, part := range path {
		switch node := cur.(type) {
		case map[string]interface{}:
			cur = node[part]
		case []interface{}:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return nil
			}
			cur = node[i]
		default:
			return nil
		}
	}
	return cur
}

func intOr(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func floatOr(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

func (vr *ValidationResult) GetErrorsForField(field string) []ValidationError {
	var fieldErrors []ValidationError
	for _, err := range vr.Errors {
		if err.Field == field || strings.HasPrefix(err.Field, field+".") || strings.HasPrefix(err.Field, field+"[") {
			fieldErrors = append(fieldErrors, err)
		}
	}
	return fieldErrors
}
