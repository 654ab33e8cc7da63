package api

import (
	"errors"
	"strings"
	"time"
)

// RetryConfig defines retry behavior for a single logical request.
type RetryConfig struct {
	MaxRetries  int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	ShouldRetry func(error) bool
}

// DefaultRetryConfig provides sensible defaults: up to 3 retries with
// exponential backoff between 1s and 30s, retrying transport failures only.
var DefaultRetryConfig = RetryConfig{
	MaxRetries:  3,
	BaseDelay:   1 * time.Second,
	MaxDelay:    30 * time.Second,
	ShouldRetry: DefaultShouldRetry,
}

// DefaultShouldRetry reports whether an error is worth retrying.
// Transport-class failures are transient; HTTP status failures are terminal
// unless the status text itself names a network condition.
func DefaultShouldRetry(err error) bool {
	if err == nil {
		return false
	}

	var te *TransportError
	if errors.As(err, &te) {
		return true
	}

	s := strings.ToLower(err.Error())
	return strings.Contains(s, "network") ||
		strings.Contains(s, "connection") ||
		strings.Contains(s, "timeout") ||
		strings.Contains(s, "failed to fetch")
}

// Backoff returns the delay inserted before attempt k (0-indexed, k >= 1):
// min(BaseDelay * 2^k, MaxDelay). No jitter is applied.
func Backoff(attempt int, base, max time.Duration) time.Duration {
	delay := base << uint(attempt)
	if delay > max || delay <= 0 {
		delay = max
	}
	return delay
}

func (c RetryConfig) shouldRetry(err error) bool {
	if c.ShouldRetry != nil {
		return c.ShouldRetry(err)
	}
	return DefaultShouldRetry(err)
}
