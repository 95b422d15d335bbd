// internal/workers/assessment/generate-recommendation/config.go
package generaterecommendation

import "time"

// Config sets a longer timeout than the submit workers since the remote
// classifier and the audit write happen inside this job.
type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
