package database

import (
	"context"
	"time"
)

// Pinger is implemented by every backing store client.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CheckAll pings each dependency with its own timeout and returns the
// failures keyed by name. An empty map means everything is reachable.
func CheckAll(ctx context.Context, deps map[string]Pinger, timeout time.Duration) map[string]string {
	failures := make(map[string]string)
	for name, dep := range deps {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		if err := dep.Ping(pctx); err != nil {
			failures[name] = err.Error()
		}
		cancel()
	}
	return failures
}
