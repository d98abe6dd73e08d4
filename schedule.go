package qsearch

import (
	"fmt"
	"math"
)

/*
IterationPlan is one round's Grover iteration budget. Stop marks the
legitimate end of the search: the estimate says no solutions remain, so
there is nothing left to amplify. A plan is only valid for the round
whose estimate produced it.
*/
type IterationPlan struct {
	K                  int
	SuccessProbability float64
	Stop               bool
}

func (p IterationPlan) String() string {
	if p.Stop {
		return "IterationPlan(stop)"
	}
	return fmt.Sprintf("IterationPlan(k=%d, p=%.3f)", p.K, p.SuccessProbability)
}

/*
Scheduler maps a count estimate to an iteration count. Success
probability follows sin²((2k+1)θ) in the amplitude angle θ, which is
non-monotonic in k: too many iterations rotate past the solutions as
surely as too few fall short. The clamping below is the safeguard
against both, and must stay exactly as written rather than any
round-to-nearest simplification.
*/
type Scheduler struct {
	config *Config
}

// NewScheduler creates a scheduler with the given tuning.
func NewScheduler(config *Config) *Scheduler {
	if config == nil {
		config = NewConfig()
	}
	return &Scheduler{config: config}
}

// Schedule derives the iteration plan for an estimate over a space.
func (s *Scheduler) Schedule(estimate *CountEstimate, space SearchSpace) IterationPlan {
	size := float64(space.Size())

	// No solutions left: the primary termination trigger, distinct
	// from the driver's max-rounds bound
	if estimate.M < s.config.StopThreshold {
		return IterationPlan{Stop: true}
	}

	ratio := math.Min(estimate.M/size, 1)

	// Almost everything is a solution; amplification would only
	// rotate away from them
	if estimate.M > size-s.config.StopThreshold {
		return IterationPlan{K: 0, SuccessProbability: ratio}
	}

	theta := math.Asin(math.Sqrt(ratio))
	k := int(math.Floor(math.Pi/(4*theta) - 0.5))

	// Sanity bound against over-rotation past the optimal amplitude
	kMax := int(math.Ceil(math.Pi * math.Sqrt(size/math.Max(estimate.M, 1)) / 4))
	if k > kMax {
		k = kMax
	}
	if k < 0 {
		k = 0
	}

	success := math.Sin(float64(2*k+1) * theta)
	return IterationPlan{K: k, SuccessProbability: success * success}
}
