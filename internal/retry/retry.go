package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/debank-scanner/internal/logging"
)

// PollConfig configures a bounded poll of an asynchronous server-side job
type PollConfig struct {
	MaxAttempts int           // Maximum number of polls
	Delay       time.Duration // Fixed delay after a "not ready" poll
}

// DefaultPollConfig returns the polling settings DeBank NFT endpoints need
// Pattern: 3 polls, 3s apart
func DefaultPollConfig() *PollConfig {
	return &PollConfig{
		MaxAttempts: 3,
		Delay:       3 * time.Second,
	}
}

// PollResult contains information about the poll operation
type PollResult struct {
	Attempts      int           `json:"attempts"`
	Ready         bool          `json:"ready"`
	TotalDuration time.Duration `json:"totalDuration"`
}

// PollFunc performs one poll. It returns ready=false while the job is still running.
// A non-nil error stops polling immediately.
type PollFunc func(ctx context.Context, attempt int) (ready bool, err error)

// UntilReady polls fn until it reports ready, errors, or runs out of attempts.
// Running out of attempts is not an error: the result reports Ready=false.
func UntilReady(ctx context.Context, config *PollConfig, fn PollFunc) (*PollResult, error) {
	logger := logging.FromContext(ctx)
	startTime := time.Now()

	result := &PollResult{}

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		result.Attempts = attempt

		ready, err := fn(ctx, attempt)
		if err != nil {
			result.TotalDuration = time.Since(startTime)
			return result, err
		}
		if ready {
			result.Ready = true
			result.TotalDuration = time.Since(startTime)
			if attempt > 1 {
				logger.WithFields(map[string]interface{}{
					"attempts":      attempt,
					"totalDuration": result.TotalDuration,
				}).Debug("Job became ready after polling")
			}
			return result, nil
		}

		if attempt >= config.MaxAttempts {
			break
		}

		logger.WithFields(map[string]interface{}{
			"attempt":     attempt,
			"maxAttempts": config.MaxAttempts,
			"delay":       config.Delay,
		}).Debug("Job not ready, waiting before next poll")

		select {
		case <-time.After(config.Delay):
		case <-ctx.Done():
			result.TotalDuration = time.Since(startTime)
			return result, fmt.Errorf("polling cancelled after %d attempts: %w", attempt, ctx.Err())
		}
	}

	result.TotalDuration = time.Since(startTime)
	logger.WithFields(map[string]interface{}{
		"attempts":      result.Attempts,
		"totalDuration": result.TotalDuration,
	}).Warn("Job still not ready after max poll attempts")
	return result, nil
}
