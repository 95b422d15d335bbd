// internal/workers/assessment/session-status/handler.go
package sessionstatus

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
	TaskType = "session-status"
)

type Service interface {
	SessionStatus(ctx context.Context, id string) (models.SessionProgress, error)
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

	progress, err := h.service.SessionStatus(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	return &Output{SessionStatus: progress}, nil
}
