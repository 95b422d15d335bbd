// internal/workers/assessment/submit-risk-assessment/handler.go
package submitriskassessment

import (
	"context"

	"robo-advisor-workers/internal/common/camunda"
	apperrors "robo-advisor-workers/internal/common/errors"
	"robo-advisor-workers/internal/common/logger"
	"robo-advisor-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "submit-risk-assessment"
)

type Service interface {
	SubmitRiskAssessment(ctx context.Context, id string, responses []models.RiskResponse) (*models.AssessmentSession, error)
}

type Handler struct {
	config  *Config
	service Service
	runtime *camunda.Runtime
	logger  logger.Logger
}

func NewHandler(config *Config, service Service, hooks camunda.Hooks, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		service: service,
		runtime: camunda.NewRuntime(TaskType, config.Timeout, hooks, log),
		logger:  log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	camunda.Process(h.runtime, client, job, h.Execute)
}

// Execute stores the questionnaire answers. Scores are checked against the
// catalog by the assessment service.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.SessionID == "" {
		return nil, apperrors.NewValidationError("sessionId", "sessionId is required")
	}

	sess, err := h.service.SubmitRiskAssessment(ctx, input.SessionID, input.RiskResponses)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("risk responses stored", map[string]interface{}{
		"sessionId": sess.ID,
		"responses": len(input.RiskResponses),
	})
	return &Output{
		SessionID: sess.ID,
		Status:    string(sess.Status),
		Message:   "Risk assessment saved successfully",
	}, nil
}
