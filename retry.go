package qsearch

import (
	"math"
	"time"
)

// RetryPolicy defines how the driver reacts to backend failures within
// a round. MaxAttempts counts the first try, so 2 means one retry.
type RetryPolicy struct {
	MaxAttempts int
	Strategy    RetryStrategy
}

// RetryStrategy defines the interface for retry delay behavior
type RetryStrategy interface {
	NextDelay(attempt int) time.Duration
}

// ExponentialBackoff implements RetryStrategy
type ExponentialBackoff struct {
	Initial time.Duration
}

func (eb *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	return eb.Initial * time.Duration(math.Pow(2, float64(attempt-1)))
}
