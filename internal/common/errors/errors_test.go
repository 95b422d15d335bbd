package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardError_Error(t *testing.T) {
	err := NewSessionNotFoundError("s-1")
	assert.Contains(t, err.Error(), "SESSION_NOT_FOUND")
	assert.Contains(t, err.Error(), "sessionId: s-1")
	assert.False(t, err.Retryable)
	assert.False(t, err.Timestamp.IsZero())
}

func TestNewRangeError_Metadata(t *testing.T) {
	err := NewRangeError("age", 17, 18, 100)

	assert.Equal(t, ErrCodeValidationFailed, err.Code)
	assert.Equal(t, "age", err.Metadata["field"])
	assert.Equal(t, float64(18), err.Metadata["min"])
	assert.Equal(t, float64(100), err.Metadata["max"])
	assert.Contains(t, err.Details, "between 18 and 100")
}

func TestCodeOf_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("submit: %w", NewIncompleteAssessmentError("s-1", "financialGoals"))

	assert.Equal(t, ErrCodeIncompleteAssessment, CodeOf(wrapped))
	assert.True(t, IsCode(wrapped, ErrCodeIncompleteAssessment))
	assert.False(t, IsCode(wrapped, ErrCodeSessionNotFound))
	assert.False(t, IsCode(nil, ErrCodeSessionNotFound))
	assert.Equal(t, ErrorCode(""), CodeOf(stderrors.New("plain")))
}

func TestGetRetryCount(t *testing.T) {
	tests := []struct {
		code    ErrorCode
		retries int
	}{
		{ErrCodeSessionStoreFailed, 3},
		{ErrCodeAuditLogFailed, 3},
		{ErrCodeNotificationSendFailed, 3},
		{ErrCodeClassifierFailed, 2},
		{ErrCodeClassifierTimeout, 2},
		{ErrCodeValidationFailed, 0},
		{ErrCodeSessionNotFound, 0},
		{ErrCodeIncompleteAssessment, 0},
		{ErrCodeDegenerateInput, 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.retries, GetRetryCount(tt.code))
			assert.Equal(t, tt.retries > 0, IsRetryableErrorCode(tt.code))
		})
	}
}

func TestConvertToBPMNError(t *testing.T) {
	t.Run("business error carries field", func(t *testing.T) {
		bpmn := ConvertToBPMNError(NewValidationError("income", "too low"))

		assert.Equal(t, "VALIDATION_FAILED", bpmn.Code)
		assert.Equal(t, 0, bpmn.Retries)
		vars := bpmn.ToErrorVariables()
		assert.Equal(t, "income", vars["errorField"])
		assert.Equal(t, "VALIDATION_FAILED", vars["originalErrorCode"])
		assert.Equal(t, false, vars["retryable"])
	})

	t.Run("technical error keeps retries", func(t *testing.T) {
		bpmn := ConvertToBPMNError(NewSessionStoreFailedError("get", stderrors.New("conn refused")))
		assert.Equal(t, 3, bpmn.Retries)
		assert.True(t, bpmn.Retryable)
	})

	t.Run("non retryable instance overrides code", func(t *testing.T) {
		e := NewClassifierFailedError(stderrors.New("bad"))
		e.Retryable = false
		assert.Equal(t, 0, ConvertToBPMNError(e).Retries)
	})

	t.Run("unknown code falls back to itself", func(t *testing.T) {
		bpmn := ConvertToBPMNError(NewInternalError(stderrors.New("x")))
		assert.Equal(t, "INTERNAL_ERROR", bpmn.Code)
	})
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "SESSION", GetErrorCategory(ErrCodeSessionConflict))
	assert.Equal(t, "MODEL", GetErrorCategory(ErrCodeClassifierFailed))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeAuditLogFailed))
	assert.Equal(t, "NOTIFICATION", GetErrorCategory(ErrCodeNotificationSendFailed))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeValidationFailed))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeDegenerateInput))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeIncompleteAssessment))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}

func TestNormalizeAndDecide(t *testing.T) {
	plain := Normalize(stderrors.New("boom"))
	require.Equal(t, ErrCodeInternal, plain.Code)

	action, retries := decide(3, ConvertToBPMNError(plain))
	assert.Equal(t, actionThrow, action)
	assert.Equal(t, 0, retries)

	store := ConvertToBPMNError(NewSessionStoreFailedError("update", stderrors.New("x")))

	action, retries = decide(5, store)
	assert.Equal(t, actionFail, action)
	assert.Equal(t, 2, retries)

	action, retries = decide(1, store)
	assert.Equal(t, actionFail, action)
	assert.Equal(t, 0, retries)

	action, _ = decide(0, store)
	assert.Equal(t, actionThrow, action)
}
