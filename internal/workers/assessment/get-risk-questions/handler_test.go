// internal/workers/assessment/get-risk-questions/handler_test.go
package getriskquestions

import (
	"context"
	"encoding/json"
	"testing"

	"robo-advisor-workers/internal/assessment"
	"robo-advisor-workers/internal/classifier"
	"robo-advisor-workers/internal/common/camunda"
	"robo-advisor-workers/internal/common/logger"
	"robo-advisor-workers/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestHandler(t *testing.T) *Handler {
	svc := assessment.NewService(session.NewMemoryStore(), classifier.NewRuleModel(nil), logger.NewTestLogger(t))
	return NewHandler(LoadConfig(), svc, camunda.Hooks{}, logger.NewTestLogger(t))
}

func TestHandler_Execute_ReturnsCatalog(t *testing.T) {
	output, err := createTestHandler(t).Execute(context.Background(), &Input{})
	require.NoError(t, err)

	require.Len(t, output.Questions, 5)
	assert.Equal(t, 5, output.TotalQuestions)
	for i, q := range output.Questions {
		assert.Equal(t, i+1, q.ID)
		assert.Len(t, q.Options, 4)
		for j, opt := range q.Options {
			assert.Equal(t, j+1, opt.Score)
		}
	}
}

func TestHandler_Execute_OutputShape(t *testing.T) {
	output, err := createTestHandler(t).Execute(context.Background(), &Input{})
	require.NoError(t, err)

	raw, err := json.Marshal(output)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "questions")
	assert.EqualValues(t, 5, decoded["totalQuestions"])

	first := decoded["questions"].([]interface{})[0].(map[string]interface{})
	assert.Contains(t, first, "question")
	assert.Contains(t, first, "category")
}
