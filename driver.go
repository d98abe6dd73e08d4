package qsearch

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/theapemachine/errnie"
)

/*
Result is the driver's sole externally observable artifact: the verified
solutions, the number of rounds it took, and an honest completeness
flag. Complete is only true when the scheduler itself signalled that no
solutions remain — a bound or failure trip always reports incomplete
with its reason, never a silent claim of completeness.
*/
type Result struct {
	Solutions []int
	Rounds    int
	Complete  bool
	Reason    string
}

/*
Driver orchestrates the full search: estimate the remaining solution
count, schedule an iteration budget, amplify and measure, verify the
sample against the true oracle, then loop with the found set folded
into the working oracle. It owns the found set exclusively and runs
rounds strictly in sequence, since each round's restriction depends on
the previous round's discoveries.
*/
type Driver struct {
	oracle    *Oracle
	space     SearchSpace
	estimator *Estimator
	scheduler *Scheduler
	amplifier *Amplifier
	config    *Config
	metrics   *Metrics

	found map[int]struct{}
}

// NewDriver creates a driver for the given oracle and backend.
func NewDriver(oracle *Oracle, backend Backend, opts ...Option) *Driver {
	config := NewConfig()
	for _, opt := range opts {
		opt(config)
	}
	errnie.Info(
		"NewDriver - space %v, precision %v, maxRounds %v",
		oracle.Space(),
		config.precisionFor(oracle.Space()),
		config.MaxRounds,
	)
	return &Driver{
		oracle:    oracle,
		space:     oracle.Space(),
		estimator: NewEstimator(backend, config),
		scheduler: NewScheduler(config),
		amplifier: NewAmplifier(backend),
		config:    config,
		metrics:   NewMetrics(),
		found:     make(map[int]struct{}),
	}
}

// Metrics exposes the run's cost accounting.
func (d *Driver) Metrics() *Metrics {
	return d.metrics
}

/*
Run executes rounds until the scheduler signals stop or a termination
bound trips. Cancellation is cooperative: the context is checked at the
top of every state transition, and a cancelled run returns whatever has
been found so far, tagged incomplete.
*/
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	state := StateEstimating
	consecutiveMisses := 0
	rounds := 0

	var estimate *CountEstimate
	var plan IterationPlan
	var sampled int

	for state != StateDone {
		if err := ctx.Err(); err != nil {
			return d.result(rounds, false, fmt.Sprintf("cancelled: %v", err)), nil
		}

		switch state {
		case StateEstimating:
			if rounds >= d.config.MaxRounds {
				return d.result(rounds, false, "max rounds reached"), nil
			}
			if consecutiveMisses >= d.config.MaxConsecutiveMisses {
				return d.result(rounds, false, "consecutive misses exhausted"), nil
			}
			rounds++
			d.metrics.recordRound()

			working := d.oracle.Restricted(d.found)
			est, err := d.runEstimate(ctx, working)
			if err != nil {
				d.metrics.recordBackendFailure()
				return d.result(rounds, false, fmt.Sprintf("backend failure: %v", err)), nil
			}
			estimate = est
			state = StateScheduling

		case StateScheduling:
			plan = d.scheduler.Schedule(estimate, d.space)
			if plan.Stop {
				log.Printf("round %d: estimate %s, stopping", rounds, estimate)
				state = StateDone
				continue
			}
			// Near-saturated space: amplification is useless, verify
			// the whole space in one classical pass instead
			if plan.K == 0 && estimate.M > float64(d.space.Size())-d.config.StopThreshold {
				if err := d.sweep(); err != nil {
					return nil, err
				}
				state = StateEstimating
				continue
			}
			state = StateAmplifying

		case StateAmplifying:
			working := d.oracle.Restricted(d.found)
			x, err := d.runAmplify(ctx, working, plan.K)
			if err != nil {
				d.metrics.recordBackendFailure()
				return d.result(rounds, false, fmt.Sprintf("backend failure: %v", err)), nil
			}
			sampled = x
			state = StateVerifying

		case StateVerifying:
			// Verification runs against the true, unrestricted oracle;
			// only verified samples ever reach the found set
			isSolution, err := d.oracle.Evaluate(sampled)
			if err != nil {
				return nil, err
			}
			_, seen := d.found[sampled]
			newSolution := isSolution && !seen
			d.metrics.recordVerification(newSolution, seen)
			if newSolution {
				d.found[sampled] = struct{}{}
				consecutiveMisses = 0
				log.Printf("round %d: solution %d verified, %d found so far", rounds, sampled, len(d.found))
			} else {
				consecutiveMisses++
			}
			state = StateEstimating
		}
	}

	return d.result(rounds, true, ""), nil
}

// runEstimate calls the estimator under the configured retry policy and
// books its quantum cost.
func (d *Driver) runEstimate(ctx context.Context, oracle *Oracle) (*CountEstimate, error) {
	var estimate *CountEstimate
	err := d.withRetry(ctx, func() error {
		est, err := d.estimator.Estimate(ctx, oracle)
		if err != nil {
			return err
		}
		estimate = est
		return nil
	})
	if err != nil {
		return nil, err
	}

	repeats := d.config.EstimateRepeats
	if repeats < 1 {
		repeats = 1
	}
	// A counting execution applies 2^t - 1 controlled iterations
	iterations := (1 << estimate.PrecisionQubits) - 1
	d.metrics.recordEstimate(d.config.CountingShots*repeats, iterations*repeats)
	return estimate, nil
}

// runAmplify calls the amplifier under the configured retry policy.
func (d *Driver) runAmplify(ctx context.Context, oracle *Oracle, k int) (int, error) {
	var sampled int
	err := d.withRetry(ctx, func() error {
		x, err := d.amplifier.Amplify(ctx, oracle, k)
		if err != nil {
			return err
		}
		sampled = x
		return nil
	})
	if err != nil {
		return 0, err
	}
	d.metrics.recordAmplification(k)
	return sampled, nil
}

/*
withRetry reruns a backend call per the retry policy. Only backend
failures are retried; anything else surfaces immediately. A failed
round never mutates the found set, so retrying here is safe.
*/
func (d *Driver) withRetry(ctx context.Context, fn func() error) error {
	attempts := 1
	var strategy RetryStrategy
	if d.config.RetryPolicy != nil {
		if d.config.RetryPolicy.MaxAttempts > 1 {
			attempts = d.config.RetryPolicy.MaxAttempts
		}
		strategy = d.config.RetryPolicy.Strategy
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn()
		if err == nil || !IsBackendError(err) {
			return err
		}
		if attempt == attempts {
			break
		}
		d.metrics.recordBackendFailure()
		log.Printf("backend attempt %d failed: %v, retrying", attempt, err)

		delay := time.Duration(0)
		if strategy != nil {
			delay = strategy.NextDelay(attempt)
		}
		select {
		case <-ctx.Done():
			return err
		case <-time.After(delay):
		}
	}
	return err
}

// sweep verifies every index in the space directly; used when the
// estimate says nearly everything is a solution.
func (d *Driver) sweep() error {
	for x := 0; x < d.space.Size(); x++ {
		isSolution, err := d.oracle.Evaluate(x)
		if err != nil {
			return err
		}
		if _, seen := d.found[x]; isSolution && !seen {
			d.found[x] = struct{}{}
			d.metrics.recordVerification(true, false)
		}
	}
	return nil
}

func (d *Driver) result(rounds int, complete bool, reason string) *Result {
	solutions := make([]int, 0, len(d.found))
	for x := range d.found {
		solutions = append(solutions, x)
	}
	sort.Ints(solutions)
	return &Result{
		Solutions: solutions,
		Rounds:    rounds,
		Complete:  complete,
		Reason:    reason,
	}
}
