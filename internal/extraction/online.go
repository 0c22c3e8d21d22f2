package extraction

import (
	"context"
	"net/http"
	"time"
)

// Online services are polled on a fixed budget: an explicit timeout, not an
// indefinite wait.
const (
	defaultPollInterval    = 2 * time.Second
	defaultMaxPollAttempts = 30
)

// defaultHTTPClient bounds individual API calls so a dead service cannot
// stall the chain.
var defaultHTTPClient = &http.Client{Timeout: 30 * time.Second}

// waitPoll sleeps one polling interval, waking early on context cancellation.
func waitPoll(ctx context.Context, interval time.Duration) error {
	t := time.NewTimer(interval)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
