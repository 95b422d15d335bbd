package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"robo-advisor-workers/internal/assessment"
	"robo-advisor-workers/internal/audit"
	"robo-advisor-workers/internal/classifier"
	"robo-advisor-workers/internal/common/camunda"
	"robo-advisor-workers/internal/common/config"
	"robo-advisor-workers/internal/common/database"
	"robo-advisor-workers/internal/common/logger"
	"robo-advisor-workers/internal/common/observability"
	"robo-advisor-workers/internal/notify"
	"robo-advisor-workers/internal/session"
	"robo-advisor-workers/pkg/registry"
)

func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name, log)
	defer obs.Shutdown()

	ctx := context.Background()
	deps := make(map[string]database.Pinger)

	reg, err := registry.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		zapLog.Fatal("activity registry load failed", zap.Error(err))
	}
	if err := reg.Validate(); err != nil {
		zapLog.Fatal("activity registry invalid", zap.Error(err))
	}

	zeebe, err := camunda.Connect(ctx, camunda.ConfigFrom(cfg.Camunda))
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	defer zeebe.Close()
	deps["zeebe"] = zeebe
	zapLog.Info("Zeebe client connected successfully")

	var redisClient *database.RedisClient
	if cfg.Session.Backend == config.SessionBackendRedis {
		redisClient = database.NewRedis(cfg.Database.Redis)
		err = retryWithBackoff(func() error {
			return redisClient.Ping(ctx)
		}, 10, 2*time.Second, log, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redisClient.Close()
		deps["redis"] = redisClient
		zapLog.Info("Redis connected successfully")
	}
	store := session.New(cfg.Session, redisClient)

	clf, err := classifier.New(cfg.Classifier)
	if err != nil {
		zapLog.Fatal("classifier setup failed", zap.Error(err))
	}

	opts := []assessment.Option{assessment.WithTracer(obs.Tracer("robo-advisor-workers/assessment"))}

	auditLog, closeAudit := openAuditLog(ctx, cfg, deps, log)
	defer closeAudit()
	opts = append(opts, assessment.WithAuditLog(auditLog))

	if cfg.Notifications.Enabled() {
		notifier, err := notify.NewFromConfig(ctx, cfg.Notifications, log)
		if err != nil {
			zapLog.Fatal("notifier setup failed", zap.Error(err))
		}
		opts = append(opts, assessment.WithNotifier(notifier))
		zapLog.Info("Assessment notifications enabled",
			zap.Bool("sns", cfg.Notifications.SNS.Enabled),
			zap.Bool("email", cfg.Notifications.Email.Enabled),
		)
	}

	svc := assessment.NewService(store, clf, log, opts...)
	hooks := camunda.Hooks{Validator: reg, Recorder: obs}

	var opened []closer
	for _, r := range buildRegistrations(cfg, svc, hooks, log) {
		if _, ok := reg.Find(r.taskType); !ok {
			zapLog.Warn("task type missing from activity registry", zap.String("taskType", r.taskType))
		}
		if w := startWorker(zeebe, cfg, r, zapLog); w != nil {
			opened = append(opened, w)
		}
	}
	zapLog.Info("Workers registered", zap.Int("count", len(opened)))

	srv := newHealthServer(cfg.Metrics.Address, deps)
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Metrics.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range opened {
		w.Close()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

// openAuditLog connects PostgreSQL (and Elasticsearch when configured) for
// the assessment log. With audit disabled the log lives in process memory.
func openAuditLog(ctx context.Context, cfg *config.Config, deps map[string]database.Pinger, log logger.Logger) (audit.Log, func()) {
	if !cfg.Audit.Enabled {
		log.Info("Audit persistence disabled, using in-memory assessment log", nil)
		return audit.NewMemoryLog(), func() {}
	}

	var pg *database.PostgresClient
	err := retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, log, "PostgreSQL connection")
	if err != nil {
		log.Error("postgres failed after retries", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	deps["postgres"] = pg

	repo, err := audit.NewRepository(pg.DB, cfg.Audit.Table)
	if err != nil {
		log.Error("audit repository setup failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Error("audit schema setup failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	var indexer *audit.Indexer
	if cfg.Database.Elasticsearch.Enabled() {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping(ctx)
		}, 15, 2*time.Second, log, "Elasticsearch connection")
		if err != nil {
			log.Error("elasticsearch failed after retries", map[string]interface{}{"error": err.Error()})
			os.Exit(1)
		}
		deps["elasticsearch"] = esClient
		indexer = audit.NewIndexer(esClient.Client, cfg.Audit.Index)
	}

	log.Info("Assessment log connected", map[string]interface{}{
		"table":         cfg.Audit.Table,
		"elasticsearch": indexer != nil,
	})
	return audit.NewRecorder(repo, indexer, log), func() { _ = pg.Close() }
}
