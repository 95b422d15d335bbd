package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	AssessmentsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assessments_started_total",
			Help: "Total number of assessment sessions created",
		},
	)

	AssessmentStageTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_stage_transitions_total",
			Help: "Session status transitions by target status",
		},
		[]string{"status"},
	)

	RecommendationsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_generated_total",
			Help: "Recommendations produced, by final risk category",
		},
		[]string{"risk_category"},
	)

	ClassifierLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "classifier_predict_duration_seconds",
			Help:    "Latency of risk classifier predictions",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"model"},
	)

	SessionStoreConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "session_store_conflicts_total",
			Help: "Optimistic transaction retries in the session store",
		},
	)
)
