// internal/workers/assessment/start-assessment/handler.go
package startassessment

import (
	"context"

	"robo-advisor-workers/internal/common/camunda"
	"robo-advisor-workers/internal/common/logger"
	"robo-advisor-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "start-assessment"
)

// Service is the part of the assessment service this worker calls.
type Service interface {
	StartAssessment(ctx context.Context) (*models.AssessmentSession, error)
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
	sess, err := h.service.StartAssessment(ctx)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("session created", map[string]interface{}{"sessionId": sess.ID})
	return &Output{
		SessionID: sess.ID,
		Status:    string(sess.Status),
		Message:   "Assessment session started",
		CreatedAt: sess.CreatedAt,
	}, nil
}
