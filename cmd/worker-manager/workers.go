package main

import (
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.uber.org/zap"

	"robo-advisor-workers/internal/assessment"
	"robo-advisor-workers/internal/common/camunda"
	"robo-advisor-workers/internal/common/config"
	"robo-advisor-workers/internal/common/logger"

	gal "robo-advisor-workers/internal/workers/analytics/get-assessment-logs"
	gr "robo-advisor-workers/internal/workers/assessment/generate-recommendation"
	grq "robo-advisor-workers/internal/workers/assessment/get-risk-questions"
	ss "robo-advisor-workers/internal/workers/assessment/session-status"
	sa "robo-advisor-workers/internal/workers/assessment/start-assessment"
	sd "robo-advisor-workers/internal/workers/assessment/submit-demographics"
	sfg "robo-advisor-workers/internal/workers/assessment/submit-financial-goals"
	sra "robo-advisor-workers/internal/workers/assessment/submit-risk-assessment"
	prl "robo-advisor-workers/internal/workers/risk/predict-risk-level"
)

type registration struct {
	taskType string
	handler  worker.JobHandler
	timeout  time.Duration
}

type closer interface {
	Close()
}

// handlerTimeout prefers the per-worker config over the package default.
func handlerTimeout(cfg *config.Config, taskType string, fallback time.Duration) time.Duration {
	if wc, ok := cfg.Workers[taskType]; ok && wc.Timeout > 0 {
		return config.GetDuration(wc.Timeout)
	}
	return fallback
}

// jobActivationTimeout is how long Zeebe leaves a job locked to this worker.
// Without a configured value it matches the handler timeout.
func jobActivationTimeout(wcfg config.WorkerConfig, handler time.Duration) time.Duration {
	if wcfg.Timeout > 0 {
		return config.GetDuration(wcfg.Timeout)
	}
	return handler
}

func buildRegistrations(cfg *config.Config, svc *assessment.Service, hooks camunda.Hooks, log logger.Logger) []registration {
	saCfg := sa.LoadConfig()
	saCfg.Timeout = handlerTimeout(cfg, sa.TaskType, saCfg.Timeout)

	sdCfg := sd.LoadConfig()
	sdCfg.Timeout = handlerTimeout(cfg, sd.TaskType, sdCfg.Timeout)

	sfgCfg := sfg.LoadConfig()
	sfgCfg.Timeout = handlerTimeout(cfg, sfg.TaskType, sfgCfg.Timeout)

	grqCfg := grq.LoadConfig()
	grqCfg.Timeout = handlerTimeout(cfg, grq.TaskType, grqCfg.Timeout)

	sraCfg := sra.LoadConfig()
	sraCfg.Timeout = handlerTimeout(cfg, sra.TaskType, sraCfg.Timeout)

	grCfg := gr.LoadConfig()
	grCfg.Timeout = handlerTimeout(cfg, gr.TaskType, grCfg.Timeout)

	ssCfg := ss.LoadConfig()
	ssCfg.Timeout = handlerTimeout(cfg, ss.TaskType, ssCfg.Timeout)

	galCfg := gal.LoadConfig()
	galCfg.Timeout = handlerTimeout(cfg, gal.TaskType, galCfg.Timeout)

	prlCfg := prl.LoadConfig()
	prlCfg.Timeout = handlerTimeout(cfg, prl.TaskType, prlCfg.Timeout)

	return []registration{
		{sa.TaskType, sa.NewHandler(saCfg, svc, hooks, log).Handle, saCfg.Timeout},
		{sd.TaskType, sd.NewHandler(sdCfg, svc, hooks, log).Handle, sdCfg.Timeout},
		{sfg.TaskType, sfg.NewHandler(sfgCfg, svc, hooks, log).Handle, sfgCfg.Timeout},
		{grq.TaskType, grq.NewHandler(grqCfg, svc, hooks, log).Handle, grqCfg.Timeout},
		{sra.TaskType, sra.NewHandler(sraCfg, svc, hooks, log).Handle, sraCfg.Timeout},
		{gr.TaskType, gr.NewHandler(grCfg, svc, hooks, log).Handle, grCfg.Timeout},
		{ss.TaskType, ss.NewHandler(ssCfg, svc, hooks, log).Handle, ssCfg.Timeout},
		{gal.TaskType, gal.NewHandler(galCfg, svc, hooks, log).Handle, galCfg.Timeout},
		{prl.TaskType, prl.NewHandler(prlCfg, svc, hooks, log).Handle, prlCfg.Timeout},
	}
}

func startWorker(client *camunda.Client, cfg *config.Config, r registration, log *zap.Logger) closer {
	wcfg := config.GetWorkerConfig(cfg, r.taskType)
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", r.taskType))
		return nil
	}

	jobTimeout := jobActivationTimeout(wcfg, r.timeout)
	w := client.Zeebe().NewJobWorker().
		JobType(r.taskType).
		Handler(r.handler).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(jobTimeout).
		Open()

	log.Info("worker started",
		zap.String("taskType", r.taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Duration("timeout", jobTimeout),
	)
	return w
}
