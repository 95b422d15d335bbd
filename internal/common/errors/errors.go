// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed     ErrorCode = "VALIDATION_FAILED"
	ErrCodeParseError           ErrorCode = "PARSE_ERROR"
	ErrCodeDegenerateInput      ErrorCode = "DEGENERATE_INPUT"
	ErrCodeIncompleteAssessment ErrorCode = "INCOMPLETE_ASSESSMENT"

	ErrCodeSessionNotFound    ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeSessionConflict    ErrorCode = "SESSION_CONFLICT"
	ErrCodeSessionStoreFailed ErrorCode = "SESSION_STORE_FAILED"

	ErrCodeClassifierFailed  ErrorCode = "CLASSIFIER_FAILED"
	ErrCodeClassifierTimeout ErrorCode = "CLASSIFIER_TIMEOUT"

	ErrCodeAuditLogFailed   ErrorCode = "AUDIT_LOG_FAILED"
	ErrCodeAuditQueryFailed ErrorCode = "AUDIT_QUERY_FAILED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError is the internal error representation shared by services and workers.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata returns the error with key set in its metadata.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// BPMNError is what gets thrown back to the process engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 2. Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationError reports a field outside its accepted range or value set.
func NewValidationError(field, details string) *StandardError {
	return newError(ErrCodeValidationFailed, "Input validation failed", details, false).
		WithMetadata("field", field)
}

// NewRangeError reports a numeric field outside [min, max].
func NewRangeError(field string, value, min, max float64) *StandardError {
	return NewValidationError(field, fmt.Sprintf("%s must be between %v and %v, got %v", field, min, max, value)).
		WithMetadata("min", min).
		WithMetadata("max", max)
}

func NewParseError(err error) *StandardError {
	return newError(ErrCodeParseError, "Failed to parse job variables", err.Error(), false)
}

func NewDegenerateInputError(details string) *StandardError {
	return newError(ErrCodeDegenerateInput, "Cannot compute a score from empty input", details, false)
}

func NewIncompleteAssessmentError(sessionID, missing string) *StandardError {
	return newError(ErrCodeIncompleteAssessment, "Assessment is incomplete",
		fmt.Sprintf("sessionId: %s, missing: %s", sessionID, missing), false).
		WithMetadata("sessionId", sessionID).
		WithMetadata("missing", missing)
}

func NewSessionNotFoundError(sessionID string) *StandardError {
	return newError(ErrCodeSessionNotFound, "Assessment session not found",
		fmt.Sprintf("sessionId: %s", sessionID), false).
		WithMetadata("sessionId", sessionID)
}

func NewSessionConflictError(sessionID, details string) *StandardError {
	return newError(ErrCodeSessionConflict, "Operation not allowed in current session state", details, false).
		WithMetadata("sessionId", sessionID)
}

func NewSessionStoreFailedError(op string, err error) *StandardError {
	return newError(ErrCodeSessionStoreFailed, "Session store operation failed",
		fmt.Sprintf("op: %s, error: %s", op, err.Error()), true)
}

func NewClassifierFailedError(err error) *StandardError {
	return newError(ErrCodeClassifierFailed, "Risk classifier error", err.Error(), true)
}

func NewClassifierTimeoutError() *StandardError {
	return newError(ErrCodeClassifierTimeout, "Risk classifier timeout",
		"classifier call exceeded timeout threshold", true)
}

func NewAuditLogFailedError(err error) *StandardError {
	return newError(ErrCodeAuditLogFailed, "Assessment log write failed", err.Error(), true)
}

func NewAuditQueryFailedError(err error) *StandardError {
	return newError(ErrCodeAuditQueryFailed, "Assessment log query failed", err.Error(), true)
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Notification delivery failed",
		fmt.Sprintf("channel: %s, error: %s", channel, err.Error()), true)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false)
}

// ==========================
// 3. Inspection helpers
// ==========================

// AsStandardError unwraps err to a *StandardError if one is in the chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// CodeOf returns the code of the first StandardError in the chain, or "".
func CodeOf(err error) ErrorCode {
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr.Code
	}
	return ""
}

func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// ==========================
// 4. BPMN mapping
// ==========================

var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeValidationFailed:       "VALIDATION_FAILED",
	ErrCodeParseError:             "PARSE_ERROR",
	ErrCodeDegenerateInput:        "DEGENERATE_INPUT",
	ErrCodeIncompleteAssessment:   "INCOMPLETE_ASSESSMENT",
	ErrCodeSessionNotFound:        "SESSION_NOT_FOUND",
	ErrCodeSessionConflict:        "SESSION_CONFLICT",
	ErrCodeSessionStoreFailed:     "SESSION_STORE_FAILED",
	ErrCodeClassifierFailed:       "CLASSIFIER_FAILED",
	ErrCodeClassifierTimeout:      "CLASSIFIER_TIMEOUT",
	ErrCodeAuditLogFailed:         "AUDIT_LOG_FAILED",
	ErrCodeAuditQueryFailed:       "AUDIT_QUERY_FAILED",
	ErrCodeNotificationSendFailed: "NOTIFICATION_SEND_FAILED",
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeSessionStoreFailed,
		ErrCodeAuditLogFailed,
		ErrCodeAuditQueryFailed,
		ErrCodeNotificationSendFailed:
		return 3 // technical errors

	case ErrCodeClassifierFailed,
		ErrCodeClassifierTimeout:
		return 2

	default:
		return 0 // business errors
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	if field, ok := stdErr.Metadata["field"]; ok {
		vars["errorField"] = field
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "SESSION"):
		return "SESSION"
	case strings.HasPrefix(codeStr, "CLASSIFIER"):
		return "MODEL"
	case strings.HasPrefix(codeStr, "AUDIT"):
		return "DATABASE"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "VALIDATION") ||
		strings.Contains(codeStr, "PARSE") ||
		strings.Contains(codeStr, "INPUT") ||
		strings.Contains(codeStr, "INCOMPLETE"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
