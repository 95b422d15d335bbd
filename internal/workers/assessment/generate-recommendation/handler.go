// internal/workers/assessment/generate-recommendation/handler.go
package generaterecommendation

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
	TaskType = "generate-recommendation"
)

type Service interface {
	GenerateRecommendation(ctx context.Context, id string) (*models.Recommendation, error)
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

// Execute completes the session. A retried job on an already completed
// session gets the stored recommendation back.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.SessionID == "" {
		return nil, apperrors.NewValidationError("sessionId", "sessionId is required")
	}

	rec, err := h.service.GenerateRecommendation(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	h.logger.Info("recommendation ready", map[string]interface{}{
		"sessionId":    rec.SessionID,
		"riskCategory": rec.AssessmentSummary.FinalRiskCategory,
	})
	return &Output{Recommendation: rec}, nil
}
