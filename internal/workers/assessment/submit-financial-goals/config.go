// internal/workers/assessment/submit-financial-goals/config.go
package submitfinancialgoals

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
