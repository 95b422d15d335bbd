// internal/workers/assessment/get-risk-questions/handler.go
package getriskquestions

import (
	"context"

	"robo-advisor-workers/internal/common/camunda"
	"robo-advisor-workers/internal/common/logger"
	"robo-advisor-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "get-risk-questions"
)

type Service interface {
	RiskQuestions() []models.Question
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
	questions := h.service.RiskQuestions()
	return &Output{
		Questions:      questions,
		TotalQuestions: len(questions),
	}, nil
}
