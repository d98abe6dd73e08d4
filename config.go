package qsearch

import (
	"math"
	"time"
)

// Config tunes the estimator, scheduler and driver. Zero values fall
// back to the defaults set by NewConfig.
type Config struct {
	// PrecisionQubits is the counting register width t. 0 derives
	// t = ceil(log2(sqrt(N)+1)) from the search space.
	PrecisionQubits int

	// CountingShots is the shot count per counting-circuit execution;
	// the estimator reads the mode of the outcomes.
	CountingShots int

	// EstimateRepeats is how many independent estimator runs are
	// averaged before scheduling. Runs execute concurrently.
	EstimateRepeats int

	// MaxRounds bounds the driver's estimate→amplify→verify loop.
	MaxRounds int

	// MaxConsecutiveMisses stops the driver after this many successive
	// measurements that yielded no new solution.
	MaxConsecutiveMisses int

	// StopThreshold is the M estimate below which the scheduler
	// signals stop instead of planning an iteration count.
	StopThreshold float64

	// RetryPolicy governs backend-failure retries within a round.
	RetryPolicy *RetryPolicy
}

// NewConfig returns the default configuration.
func NewConfig() *Config {
	return &Config{
		CountingShots:        32,
		EstimateRepeats:      1,
		MaxRounds:            128,
		MaxConsecutiveMisses: 10,
		StopThreshold:        0.5,
		RetryPolicy: &RetryPolicy{
			MaxAttempts: 2,
			Strategy:    &ExponentialBackoff{Initial: 100 * time.Millisecond},
		},
	}
}

// Option is a function type for configuring a run
type Option func(*Config)

// WithPrecisionQubits fixes the counting register width.
func WithPrecisionQubits(t int) Option {
	return func(c *Config) { c.PrecisionQubits = t }
}

// WithCountingShots sets the shots per counting execution.
func WithCountingShots(shots int) Option {
	return func(c *Config) { c.CountingShots = shots }
}

// WithEstimateRepeats sets how many estimator runs are averaged per round.
func WithEstimateRepeats(repeats int) Option {
	return func(c *Config) { c.EstimateRepeats = repeats }
}

// WithMaxRounds bounds the driver loop.
func WithMaxRounds(rounds int) Option {
	return func(c *Config) { c.MaxRounds = rounds }
}

// WithMaxConsecutiveMisses sets the successive no-discovery cutoff.
func WithMaxConsecutiveMisses(misses int) Option {
	return func(c *Config) { c.MaxConsecutiveMisses = misses }
}

// WithStopThreshold sets the M estimate under which the scheduler stops.
func WithStopThreshold(threshold float64) Option {
	return func(c *Config) { c.StopThreshold = threshold }
}

// WithRetryPolicy replaces the backend retry policy. nil disables retries.
func WithRetryPolicy(policy *RetryPolicy) Option {
	return func(c *Config) { c.RetryPolicy = policy }
}

/*
precisionFor resolves the counting register width for a space: the
configured value when set, otherwise ceil(log2(sqrt(N)+1)), which keeps
the counting error near one solution for spaces up to M ≈ sqrt(N).
*/
func (c *Config) precisionFor(space SearchSpace) int {
	if c.PrecisionQubits > 0 {
		return c.PrecisionQubits
	}
	n := float64(space.Size())
	return int(math.Ceil(math.Log2(math.Sqrt(n) + 1)))
}
