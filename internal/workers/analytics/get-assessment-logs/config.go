// internal/workers/analytics/get-assessment-logs/config.go
package getassessmentlogs

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 15 * time.Second,
	}
}
