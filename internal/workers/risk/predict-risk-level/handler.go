// internal/workers/risk/predict-risk-level/handler.go
package predictrisklevel

import (
	"context"

	"robo-advisor-workers/internal/assessment"
	"robo-advisor-workers/internal/classifier"
	"robo-advisor-workers/internal/common/camunda"
	"robo-advisor-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "predict-risk-level"
)

type Service interface {
	PredictRiskLevel(ctx context.Context, f classifier.Features) (assessment.RiskPrediction, error)
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

// Execute scores raw features without touching any session.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	prediction, err := h.service.PredictRiskLevel(ctx, input.Features())
	if err != nil {
		return nil, err
	}

	h.logger.Info("risk level predicted", map[string]interface{}{
		"riskLevel": prediction.PredictedRiskLevel,
		"model":     prediction.Model,
	})
	return &Output{Prediction: prediction}, nil
}
