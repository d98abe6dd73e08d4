package qsearch

import (
	"context"
	"fmt"
	"log"
	"math"

	"golang.org/x/sync/errgroup"
)

/*
CountEstimate is one round's estimate of the number of solutions M.
Phase estimation is numerically approximate, so the estimate always
carries its error bound; consumers must treat it as a distribution,
never as an exact integer.
*/
type CountEstimate struct {
	M               float64
	ErrorBound      float64
	MinM            int
	MaxM            int
	PrecisionQubits int
}

func (e *CountEstimate) String() string {
	return fmt.Sprintf("M=%.3f ±%.3f [%d, %d] (t=%d)", e.M, e.ErrorBound, e.MinM, e.MaxM, e.PrecisionQubits)
}

/*
Estimator estimates the solution count of an oracle by running phase
estimation over the Grover iterator: the counting register's mode
outcome encodes the amplitude angle θ with sin²θ = M/N, and the
register width bounds the estimation error.
*/
type Estimator struct {
	backend Backend
	config  *Config
}

// NewEstimator wires an estimator to an execution backend.
func NewEstimator(backend Backend, config *Config) *Estimator {
	if config == nil {
		config = NewConfig()
	}
	return &Estimator{backend: backend, config: config}
}

/*
Estimate runs the configured number of counting executions and returns
their averaged estimate. Repeats run concurrently; each is an
independent backend job. The returned estimate is always clamped to
[0, N], logging a warning when noisy phase readout lands outside it.
*/
func (e *Estimator) Estimate(ctx context.Context, oracle *Oracle) (*CountEstimate, error) {
	repeats := e.config.EstimateRepeats
	if repeats < 1 {
		repeats = 1
	}
	if repeats == 1 {
		return e.estimateOnce(ctx, oracle)
	}

	estimates := make([]*CountEstimate, repeats)
	group, gctx := errgroup.WithContext(ctx)
	for i := 0; i < repeats; i++ {
		group.Go(func() error {
			est, err := e.estimateOnce(gctx, oracle)
			if err != nil {
				return err
			}
			estimates[i] = est
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	// Average the repeats to sharpen confidence before scheduling
	merged := &CountEstimate{PrecisionQubits: estimates[0].PrecisionQubits}
	for _, est := range estimates {
		merged.M += est.M
		merged.ErrorBound += est.ErrorBound
	}
	merged.M /= float64(repeats)
	merged.ErrorBound /= float64(repeats)
	merged.MinM, merged.MaxM = integerWindow(merged.M, merged.ErrorBound, oracle.Space().Size())
	return merged, nil
}

func (e *Estimator) estimateOnce(ctx context.Context, oracle *Oracle) (*CountEstimate, error) {
	space := oracle.Space()
	precision := e.config.precisionFor(space)
	circuit := NewCountingCircuit(oracle, precision)

	result, err := e.backend.Execute(ctx, circuit, e.config.CountingShots)
	if err != nil {
		return nil, err
	}

	// Phase readout: mode outcome y encodes θ = π·y/2^t
	register := 1 << precision
	theta := math.Pi * float64(result.Mode()) / float64(register)
	size := float64(space.Size())
	estimated := size * math.Sin(theta) * math.Sin(theta)

	// Noisy phase estimation can produce values outside [0, N]; clamp
	// rather than fail
	if estimated < 0 || estimated > size {
		log.Printf("degenerate count estimate %.3f for %s, clamping to [0, %d]", estimated, space, space.Size())
		estimated = math.Max(0, math.Min(estimated, size))
	}

	bound := (math.Sqrt(2*estimated*size) + size/float64(register)) * math.Pow(2, float64(1-precision))
	minM, maxM := integerWindow(estimated, bound, space.Size())

	return &CountEstimate{
		M:               estimated,
		ErrorBound:      bound,
		MinM:            minM,
		MaxM:            maxM,
		PrecisionQubits: precision,
	}, nil
}

/*
integerWindow converts an estimate and its error bound to the integer
range of plausible solution counts, clamped to [0, N] and swapped when
the raw range contains no integers.
*/
func integerWindow(estimated, bound float64, size int) (int, int) {
	minM := int(math.Ceil(estimated - bound))
	maxM := int(math.Floor(estimated + bound))
	if minM < 0 {
		minM = 0
	}
	if maxM > size {
		maxM = size
	}
	if minM > maxM {
		minM, maxM = maxM, minM
	}
	return minM, maxM
}
