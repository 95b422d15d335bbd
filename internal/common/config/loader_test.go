package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const minimalConfig = `
camunda:
  broker_address: localhost:26500
database:
  redis:
    address: localhost:6379
workers:
  start-assessment:
    enabled: true
  generate-recommendation:
    enabled: true
    timeout: 10000
`

func TestLoadFromFile_Defaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, SessionBackendRedis, cfg.Session.Backend)
	assert.Equal(t, "assessment:session:", cfg.Session.KeyPrefix)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTLDuration())
	assert.Equal(t, 5, cfg.Session.MaxUpdateRetries)
	assert.Equal(t, ClassifierModeRules, cfg.Classifier.Mode)
	assert.Equal(t, "assessment_logs", cfg.Audit.Table)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, ":8080", cfg.Metrics.Address)

	start := cfg.Workers["start-assessment"]
	assert.Equal(t, 5, start.MaxJobsActive)
	assert.Zero(t, start.Timeout, "unset worker timeouts fall back to the worker package default")
	assert.Equal(t, 3, start.MaxRetries)
	assert.Equal(t, 10000, cfg.Workers["generate-recommendation"].Timeout)
}

func TestLoadFromFile_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_RISK_MODEL_URL", "http://model:8000")

	cfg, err := LoadFromFile(writeConfig(t, minimalConfig+`
classifier:
  mode: remote
  base_url: ${TEST_RISK_MODEL_URL}
  feature_importance:
    age: 0.3
    risk_tolerance: 0.4
`))
	require.NoError(t, err)

	assert.Equal(t, "http://model:8000", cfg.Classifier.BaseURL)
	assert.InDelta(t, 0.4, cfg.Classifier.FeatureImportance["risk_tolerance"], 1e-9)
}

func TestLoadFromFile_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "missing broker",
			body:    "database:\n  redis:\n    address: x\n",
			message: "camunda.broker_address",
		},
		{
			name:    "redis backend without address",
			body:    "camunda:\n  broker_address: x\n",
			message: "database.redis.address",
		},
		{
			name:    "unknown backend",
			body:    "camunda:\n  broker_address: x\nsession:\n  backend: etcd\n",
			message: "session.backend",
		},
		{
			name:    "remote classifier without url",
			body:    "camunda:\n  broker_address: x\nsession:\n  backend: memory\nclassifier:\n  mode: remote\n",
			message: "classifier.base_url",
		},
		{
			name:    "audit without postgres",
			body:    "camunda:\n  broker_address: x\nsession:\n  backend: memory\naudit:\n  enabled: true\n",
			message: "database.postgres.host",
		},
		{
			name:    "sns without topic",
			body:    "camunda:\n  broker_address: x\nsession:\n  backend: memory\nnotifications:\n  sns:\n    enabled: true\n",
			message: "topic_arn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ASSESSMENT_TOPIC_ARN", "")
			t.Setenv("RISK_MODEL_URL", "")
			t.Setenv("DB_USER", "")

			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestGetWorkerConfig(t *testing.T) {
	cfg := &Config{Workers: map[string]WorkerConfig{
		"session-status": {Enabled: false, MaxJobsActive: 2, Timeout: 1000},
	}}

	assert.False(t, IsWorkerEnabled(cfg, "session-status"))
	assert.True(t, IsWorkerEnabled(cfg, "get-risk-questions"))
	assert.Equal(t, 2, GetWorkerConfig(cfg, "session-status").MaxJobsActive)
	assert.Equal(t, 5, GetWorkerConfig(cfg, "unknown").MaxJobsActive)
	assert.Equal(t, time.Second, GetDuration(1000))
}

func TestPostgresConfig_GetDSN(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "advisor", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=advisor sslmode=disable", p.GetDSN())
}

func TestLoadFromFile_UnsetPlaceholderIsEmpty(t *testing.T) {
	t.Setenv("TEST_UNSET_REDIS_PASSWORD", "")
	t.Setenv("REDIS_PASSWORD", "from-env")

	cfg, err := LoadFromFile(writeConfig(t, `
camunda:
  broker_address: localhost:26500
database:
  redis:
    address: localhost:6379
    password: ${TEST_UNSET_REDIS_PASSWORD}
`))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Redis.Password)
}
