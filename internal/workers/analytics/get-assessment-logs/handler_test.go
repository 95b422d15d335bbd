// internal/workers/analytics/get-assessment-logs/handler_test.go
package getassessmentlogs

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"robo-advisor-workers/internal/assessment"
	"robo-advisor-workers/internal/audit"
	"robo-advisor-workers/internal/classifier"
	"robo-advisor-workers/internal/common/camunda"
	apperrors "robo-advisor-workers/internal/common/errors"
	"robo-advisor-workers/internal/common/logger"
	"robo-advisor-workers/internal/models"
	"robo-advisor-workers/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type MockService struct {
	AssessmentLogsFunc func(ctx context.Context, limit, offset int) (assessment.LogPage, error)
}

func (m *MockService) AssessmentLogs(ctx context.Context, limit, offset int) (assessment.LogPage, error) {
	return m.AssessmentLogsFunc(ctx, limit, offset)
}

func createTestHandler(t *testing.T, service Service) *Handler {
	return NewHandler(LoadConfig(), service, camunda.Hooks{}, logger.NewTestLogger(t))
}

func seedLog(t *testing.T, n int) *audit.MemoryLog {
	log := audit.NewMemoryLog()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		require.NoError(t, log.Record(context.Background(), models.AssessmentLogEntry{
			SessionID: fmt.Sprintf("session-%02d", i),
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Completed: true,
		}))
	}
	return log
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Pagination(t *testing.T) {
	svc := assessment.NewService(session.NewMemoryStore(), classifier.NewRuleModel(nil), logger.NewTestLogger(t),
		assessment.WithAuditLog(seedLog(t, 7)))
	handler := createTestHandler(t, svc)

	output, err := handler.Execute(context.Background(), &Input{Limit: 3, Offset: 2})
	require.NoError(t, err)

	assert.Equal(t, 7, output.Total)
	assert.Equal(t, 3, output.Limit)
	assert.Equal(t, 2, output.Offset)
	require.Len(t, output.Entries, 3)
	assert.Equal(t, "session-04", output.Entries[0].SessionID)
	assert.Equal(t, "session-02", output.Entries[2].SessionID)
}

func TestHandler_Execute_DefaultLimit(t *testing.T) {
	svc := assessment.NewService(session.NewMemoryStore(), classifier.NewRuleModel(nil), logger.NewTestLogger(t),
		assessment.WithAuditLog(seedLog(t, 2)))
	handler := createTestHandler(t, svc)

	output, err := handler.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.Equal(t, assessment.DefaultLogLimit, output.Limit)
	assert.Len(t, output.Entries, 2)
}

func TestHandler_Execute_NoAuditLog(t *testing.T) {
	svc := assessment.NewService(session.NewMemoryStore(), classifier.NewRuleModel(nil), logger.NewTestLogger(t))
	handler := createTestHandler(t, svc)

	output, err := handler.Execute(context.Background(), &Input{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, output.Entries)
	assert.NotNil(t, output.Entries)
	assert.Zero(t, output.Total)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_Errors(t *testing.T) {
	svc := assessment.NewService(session.NewMemoryStore(), classifier.NewRuleModel(nil), logger.NewTestLogger(t))
	handler := createTestHandler(t, svc)

	_, err := handler.Execute(context.Background(), &Input{Limit: assessment.MaxLogLimit + 1})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidationFailed))

	_, err = handler.Execute(context.Background(), &Input{Limit: 10, Offset: -1})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidationFailed))

	failing := createTestHandler(t, &MockService{
		AssessmentLogsFunc: func(ctx context.Context, limit, offset int) (assessment.LogPage, error) {
			return assessment.LogPage{}, apperrors.NewAuditQueryFailedError(errors.New("connection reset"))
		},
	})
	_, err = failing.Execute(context.Background(), &Input{Limit: 10})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeAuditQueryFailed))
}
