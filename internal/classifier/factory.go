package classifier

import (
	"context"
	"fmt"
	"time"

	"robo-advisor-workers/internal/common/config"
	"robo-advisor-workers/internal/common/metrics"
)

// New builds the configured classifier wrapped with latency metrics.
func New(cfg config.ClassifierConfig) (Classifier, error) {
	var c Classifier
	switch cfg.Mode {
	case config.ClassifierModeRules, "":
		c = NewRuleModel(cfg.FeatureImportance)
	case config.ClassifierModeRemote:
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("classifier base url is required in remote mode")
		}
		c = NewRemoteModel(cfg.BaseURL, config.GetDuration(cfg.Timeout))
	default:
		return nil, fmt.Errorf("unknown classifier mode %q", cfg.Mode)
	}
	return Instrument(c), nil
}

type instrumented struct {
	Classifier
}

// Instrument records prediction latency per model name.
func Instrument(c Classifier) Classifier {
	return &instrumented{Classifier: c}
}

func (i *instrumented) Predict(ctx context.Context, f Features) (Prediction, error) {
	start := time.Now()
	defer func() {
		metrics.ClassifierLatency.WithLabelValues(i.Name()).Observe(time.Since(start).Seconds())
	}()
	return i.Classifier.Predict(ctx, f)
}
