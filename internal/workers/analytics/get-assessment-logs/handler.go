// internal/workers/analytics/get-assessment-logs/handler.go
package getassessmentlogs

import (
	"context"

	"robo-advisor-workers/internal/assessment"
	"robo-advisor-workers/internal/common/camunda"
	"robo-advisor-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "get-assessment-logs"
)

type Service interface {
	AssessmentLogs(ctx context.Context, limit, offset int) (assessment.LogPage, error)
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
	page, err := h.service.AssessmentLogs(ctx, input.Limit, input.Offset)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("assessment logs fetched", map[string]interface{}{
		"returned": len(page.Entries),
		"total":    page.Total,
	})
	return &Output{
		Entries: page.Entries,
		Total:   page.Total,
		Limit:   page.Limit,
		Offset:  page.Offset,
	}, nil
}
