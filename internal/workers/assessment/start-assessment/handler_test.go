// internal/workers/assessment/start-assessment/handler_test.go
package startassessment

import (
	"context"
	"errors"
	"testing"
	"time"

	"robo-advisor-workers/internal/assessment"
	"robo-advisor-workers/internal/classifier"
	"robo-advisor-workers/internal/common/camunda"
	apperrors "robo-advisor-workers/internal/common/errors"
	"robo-advisor-workers/internal/common/logger"
	"robo-advisor-workers/internal/models"
	"robo-advisor-workers/internal/session"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type MockService struct {
	StartAssessmentFunc func(ctx context.Context) (*models.AssessmentSession, error)
}

func (m *MockService) StartAssessment(ctx context.Context) (*models.AssessmentSession, error) {
	return m.StartAssessmentFunc(ctx)
}

func createTestHandler(t *testing.T, service Service) *Handler {
	return NewHandler(LoadConfig(), service, camunda.Hooks{}, logger.NewTestLogger(t))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_CreatesSession(t *testing.T) {
	store := session.NewMemoryStore()
	svc := assessment.NewService(store, classifier.NewRuleModel(nil), logger.NewTestLogger(t))
	handler := createTestHandler(t, svc)

	output, err := handler.Execute(context.Background(), &Input{})
	require.NoError(t, err)

	_, parseErr := uuid.Parse(output.SessionID)
	assert.NoError(t, parseErr)
	assert.Equal(t, string(models.StatusStarted), output.Status)
	assert.False(t, output.CreatedAt.IsZero())
	assert.Equal(t, 1, store.Len())

	stored, err := store.Get(context.Background(), output.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusStarted, stored.Status)
}

func TestHandler_Execute_UniqueSessions(t *testing.T) {
	svc := assessment.NewService(session.NewMemoryStore(), classifier.NewRuleModel(nil), logger.NewTestLogger(t))
	handler := createTestHandler(t, svc)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		output, err := handler.Execute(context.Background(), &Input{})
		require.NoError(t, err)
		assert.False(t, seen[output.SessionID])
		seen[output.SessionID] = true
	}
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_StoreFailure(t *testing.T) {
	handler := createTestHandler(t, &MockService{
		StartAssessmentFunc: func(ctx context.Context) (*models.AssessmentSession, error) {
			return nil, apperrors.NewSessionStoreFailedError("create", errors.New("redis down"))
		},
	})

	output, err := handler.Execute(context.Background(), &Input{})
	assert.Nil(t, output)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeSessionStoreFailed))
}

func TestLoadConfig(t *testing.T) {
	assert.Equal(t, 10*time.Second, LoadConfig().Timeout)
}
