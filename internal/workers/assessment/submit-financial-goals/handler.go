// internal/workers/assessment/submit-financial-goals/handler.go
package submitfinancialgoals

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
	TaskType = "submit-financial-goals"
)

type Service interface {
	SubmitFinancialGoals(ctx context.Context, id string, g models.FinancialGoals) (*models.AssessmentSession, error)
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.SessionID == "" {
		return nil, apperrors.NewValidationError("sessionId", "sessionId is required")
	}
	if input.FinancialGoals == nil {
		return nil, apperrors.NewValidationError("financialGoals", "financialGoals is required")
	}

	sess, err := h.service.SubmitFinancialGoals(ctx, input.SessionID, *input.FinancialGoals)
	if err != nil {
		return nil, err
	}

	return &Output{
		SessionID: sess.ID,
		Status:    string(sess.Status),
		Message:   "Financial goals saved successfully",
	}, nil
}
