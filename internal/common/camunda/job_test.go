package camunda

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "robo-advisor-workers/internal/common/errors"
	"robo-advisor-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type validatorFunc func(taskType string, vars map[string]interface{}) error

func (f validatorFunc) ValidateInput(taskType string, vars map[string]interface{}) error {
	return f(taskType, vars)
}

type sample struct {
	SessionID string `json:"sessionId"`
	Limit     int    `json:"limit"`
}

func jobWith(variables string) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:       42,
		Type:      "session-status",
		Variables: variables,
		Retries:   3,
	}}
}

// ==========================
// Decode
// ==========================

func TestRuntime_Decode(t *testing.T) {
	rt := NewRuntime("session-status", time.Second, Hooks{}, logger.NewTestLogger(t))

	var in sample
	require.NoError(t, rt.Decode(jobWith(`{"sessionId":"abc","limit":5,"other":true}`), &in))
	assert.Equal(t, sample{SessionID: "abc", Limit: 5}, in)
}

func TestRuntime_DecodeEmptyVariables(t *testing.T) {
	rt := NewRuntime("session-status", time.Second, Hooks{}, logger.NewTestLogger(t))

	var in sample
	require.NoError(t, rt.Decode(jobWith(""), &in))
	assert.Equal(t, sample{}, in)
}

func TestRuntime_DecodeMalformed(t *testing.T) {
	rt := NewRuntime("session-status", time.Second, Hooks{}, logger.NewTestLogger(t))

	var in sample
	err := rt.Decode(jobWith(`{"sessionId":`), &in)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeParseError))
}

func TestRuntime_DecodeRunsValidator(t *testing.T) {
	var seenType string
	hooks := Hooks{Validator: validatorFunc(func(taskType string, vars map[string]interface{}) error {
		seenType = taskType
		if _, ok := vars["sessionId"]; !ok {
			return errors.New("sessionId is required")
		}
		return nil
	})}
	rt := NewRuntime("session-status", time.Second, hooks, logger.NewTestLogger(t))

	var in sample
	err := rt.Decode(jobWith(`{"limit":1}`), &in)
	require.Error(t, err)
	assert.Equal(t, "session-status", seenType)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidationFailed))
	assert.Contains(t, err.Error(), "sessionId is required")

	require.NoError(t, rt.Decode(jobWith(`{"sessionId":"abc"}`), &in))
}

func TestNewRuntime_DefaultTimeout(t *testing.T) {
	rt := NewRuntime("start-assessment", 0, Hooks{}, logger.NewNoOpLogger())
	assert.Equal(t, 30*time.Second, rt.Timeout)
	assert.NotNil(t, rt.Errors)
}

// ==========================
// Retry
// ==========================

func TestRetry_TransientThenSuccess(t *testing.T) {
	attempts := 0
	rc := &RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

	err := Retry(context.Background(), rc, func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("rpc error: code = Unavailable")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetry_PermanentErrorStopsImmediately(t *testing.T) {
	attempts := 0
	rc := &RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}

	err := Retry(context.Background(), rc, func(ctx context.Context) error {
		attempts++
		return errors.New("permission denied")
	})

	assert.EqualError(t, err, "permission denied")
	assert.Equal(t, 1, attempts)
}

func TestRetry_GivesUp(t *testing.T) {
	attempts := 0
	rc := &RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}

	err := Retry(context.Background(), rc, func(ctx context.Context) error {
		attempts++
		return errors.New("connection refused")
	})

	assert.Error(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetry_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rc := &RetryConfig{MaxRetries: 5, BaseDelay: time.Hour, MaxDelay: time.Hour}

	err := Retry(ctx, rc, func(ctx context.Context) error {
		return errors.New("deadline exceeded")
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(errors.New("dial tcp: Connection Refused")))
	assert.True(t, IsTransient(errors.New("context deadline exceeded")))
	assert.False(t, IsTransient(errors.New("invalid argument")))
}
