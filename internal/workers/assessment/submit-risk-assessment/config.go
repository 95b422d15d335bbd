// internal/workers/assessment/submit-risk-assessment/config.go
package submitriskassessment

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
