// internal/workers/assessment/submit-demographics/handler.go
package submitdemographics

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
	TaskType = "submit-demographics"
)

type Service interface {
	SubmitDemographics(ctx context.Context, id string, d models.Demographics) (*models.AssessmentSession, error)
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

// Execute stores the demographics stage. Range and enum checks happen in
// the assessment service.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.SessionID == "" {
		return nil, apperrors.NewValidationError("sessionId", "sessionId is required")
	}
	if input.Demographics == nil {
		return nil, apperrors.NewValidationError("demographics", "demographics is required")
	}

	sess, err := h.service.SubmitDemographics(ctx, input.SessionID, *input.Demographics)
	if err != nil {
		return nil, err
	}

	return &Output{
		SessionID: sess.ID,
		Status:    string(sess.Status),
		Message:   "Demographics saved successfully",
	}, nil
}
