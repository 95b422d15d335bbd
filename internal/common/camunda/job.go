// Package camunda holds the Zeebe client and the job runtime shared by the
// assessment workers.
package camunda

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	apperrors "robo-advisor-workers/internal/common/errors"
	"robo-advisor-workers/internal/common/logger"
	"robo-advisor-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// InputValidator checks raw job variables before they are decoded.
type InputValidator interface {
	ValidateInput(taskType string, vars map[string]interface{}) error
}

// JobRecorder receives one observation per finished job.
type JobRecorder interface {
	RecordJob(ctx context.Context, taskType, status string, duration time.Duration)
}

// Hooks are the optional collaborators shared by all workers of a process.
type Hooks struct {
	Validator InputValidator
	Recorder  JobRecorder
}

// Runtime wraps a worker's Execute with decoding, timeouts, error mapping
// and job telemetry.
type Runtime struct {
	TaskType  string
	Timeout   time.Duration
	Validator InputValidator
	Recorder  JobRecorder
	Logger    logger.Logger
	Errors    *apperrors.ErrorHandler
}

func NewRuntime(taskType string, timeout time.Duration, hooks Hooks, log logger.Logger) *Runtime {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Runtime{
		TaskType:  taskType,
		Timeout:   timeout,
		Validator: hooks.Validator,
		Recorder:  hooks.Recorder,
		Logger:    log,
		Errors:    apperrors.NewErrorHandler(log),
	}
}

// Decode validates job variables and unmarshals them into in.
func (rt *Runtime) Decode(job entities.Job, in interface{}) error {
	raw := job.Variables
	if raw == "" {
		raw = "{}"
	}

	if rt.Validator != nil {
		var vars map[string]interface{}
		if err := json.Unmarshal([]byte(raw), &vars); err != nil {
			return apperrors.NewParseError(err)
		}
		if err := rt.Validator.ValidateInput(rt.TaskType, vars); err != nil {
			return apperrors.NewValidationError("variables", err.Error())
		}
	}

	if err := json.Unmarshal([]byte(raw), in); err != nil {
		return apperrors.NewParseError(err)
	}
	return nil
}

// Process runs one job end to end: decode In, call exec under the job
// timeout, then complete with Out or hand the error to the ErrorHandler.
func Process[In any, Out any](rt *Runtime, client worker.JobClient, job entities.Job, exec func(context.Context, *In) (*Out, error)) {
	log := logger.ForJob(rt.Logger, job)
	log.Info("processing job", nil)

	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(rt.TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(rt.TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), rt.Timeout)
	defer cancel()

	var input In
	if err := rt.Decode(job, &input); err != nil {
		rt.fail(ctx, client, job, err, start)
		return
	}

	output, err := exec(ctx, &input)
	if err != nil {
		rt.fail(ctx, client, job, err, start)
		return
	}

	if err := complete(ctx, client, job, output); err != nil {
		log.Error("failed to complete job", map[string]interface{}{"error": err.Error()})
		rt.record(ctx, "complete_failed", start)
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(rt.TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(rt.TaskType).Observe(time.Since(start).Seconds())
	rt.record(ctx, "completed", start)
	log.Info("job completed", map[string]interface{}{"duration": time.Since(start).String()})
}

func (rt *Runtime) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error, start time.Time) {
	rt.Errors.HandleJobError(ctx, client, job, err)
	rt.record(ctx, "failed", start)
}

func (rt *Runtime) record(ctx context.Context, status string, start time.Time) {
	if rt.Recorder != nil {
		rt.Recorder.RecordJob(ctx, rt.TaskType, status, time.Since(start))
	}
}

func complete(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		return fmt.Errorf("create complete job command: %w", err)
	}
	if _, err := cmd.Send(ctx); err != nil {
		return fmt.Errorf("send complete job command: %w", err)
	}
	return nil
}
