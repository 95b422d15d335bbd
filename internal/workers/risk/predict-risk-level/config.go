// internal/workers/risk/predict-risk-level/config.go
package predictrisklevel

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 15 * time.Second,
	}
}
