package qsearch

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"
)

/*
Simulator is a local statevector Backend. Search circuits are evaluated
by applying the Grover iterator (oracle sign-flip followed by inversion
about the mean) directly to a real amplitude vector; counting circuits
are evaluated by computing the exact phase-estimation outcome
distribution for the iterator's eigenphases. Measurement outcomes are
then sampled classically from the resulting distribution.
*/
type Simulator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulator creates a simulator with a time-based random source.
func NewSimulator() *Simulator {
	return NewSeededSimulator(time.Now().UnixNano())
}

// NewSeededSimulator creates a simulator whose samples are reproducible
// for a fixed seed. Tests depend on this.
func NewSeededSimulator(seed int64) *Simulator {
	return &Simulator{rng: rand.New(rand.NewSource(seed))}
}

// Execute implements Backend.
func (s *Simulator) Execute(ctx context.Context, circuit *Circuit, shots int) (*ExecutionResult, error) {
	jobID := newJobID()
	if err := ctx.Err(); err != nil {
		return nil, &BackendError{JobID: jobID, Err: err}
	}
	if err := circuit.Validate(); err != nil {
		return nil, &BackendError{JobID: jobID, Err: err}
	}
	if shots < 1 {
		return nil, &BackendError{JobID: jobID, Err: fmt.Errorf("shots must be >= 1, got %d", shots)}
	}

	start := time.Now()
	var probs []float64
	switch circuit.Kind {
	case SearchCircuit:
		probs = s.searchDistribution(circuit)
	case CountingCircuit:
		probs = s.countingDistribution(circuit)
	}

	counts := make(map[int]int)
	s.mu.Lock()
	for i := 0; i < shots; i++ {
		counts[sample(probs, s.rng.Float64())]++
	}
	s.mu.Unlock()

	return &ExecutionResult{
		JobID:   jobID,
		Counts:  counts,
		Shots:   shots,
		Elapsed: time.Since(start),
	}, nil
}

/*
searchDistribution returns the measurement probabilities of the data
register after k Grover iterations on a uniform superposition. All
amplitudes stay real under the iterator, so a float64 vector suffices.
*/
func (s *Simulator) searchDistribution(circuit *Circuit) []float64 {
	space := circuit.Oracle.Space()
	n := space.Size()
	amps := make([]float64, n)
	initial := 1.0 / math.Sqrt(float64(n))
	for i := range amps {
		amps[i] = initial
	}

	for iter := 0; iter < circuit.Iterations; iter++ {
		// Oracle: sign-invert each solution amplitude
		var mean float64
		for x := range amps {
			if circuit.Oracle.marks(x) {
				amps[x] = -amps[x]
			}
			mean += amps[x]
		}
		mean /= float64(n)

		// Diffusion: flip about the mean
		for x := range amps {
			amps[x] = 2*mean - amps[x]
		}
	}

	probs := make([]float64, n)
	for x, a := range amps {
		probs[x] = a * a
	}
	return probs
}

/*
countingDistribution returns the measurement probabilities of a t-qubit
counting register after phase estimation over the Grover iterator. The
uniform data state splits evenly across the iterator's two eigenvectors
with eigenphases ±2θ, sin²θ = M/N, so the outcome distribution is an
equal mixture of the two phase-estimation kernels centred at ±θ/π.
*/
func (s *Simulator) countingDistribution(circuit *Circuit) []float64 {
	space := circuit.Oracle.Space()
	n := space.Size()
	solutions := 0
	for x := 0; x < n; x++ {
		if circuit.Oracle.marks(x) {
			solutions++
		}
	}
	theta := math.Asin(math.Sqrt(float64(solutions) / float64(n)))

	t := circuit.PrecisionQubits
	register := 1 << t
	phasePlus := theta / math.Pi
	phaseMinus := -theta / math.Pi

	probs := make([]float64, register)
	total := 0.0
	for y := 0; y < register; y++ {
		target := float64(y) / float64(register)
		p := 0.5*phaseKernel(phasePlus-target, register) +
			0.5*phaseKernel(phaseMinus-target, register)
		probs[y] = p
		total += p
	}
	// Guard against float drift before sampling
	for y := range probs {
		probs[y] /= total
	}
	return probs
}

/*
phaseKernel is the textbook phase-estimation response
|sin(Tπδ)/(T·sin(πδ))|² for a register of T outcomes and a phase offset
δ, reduced mod 1. It peaks at 1 when the phase lands exactly on a
register bucket.
*/
func phaseKernel(delta float64, register int) float64 {
	delta -= math.Floor(delta)
	denom := math.Sin(math.Pi * delta)
	if math.Abs(denom) < 1e-12 {
		return 1.0
	}
	num := math.Sin(math.Pi * delta * float64(register))
	ratio := num / (float64(register) * denom)
	return ratio * ratio
}

/*
sample collapses a probability vector to a single outcome using a random
number in [0, 1): walk the cumulative distribution until it crosses r.
*/
func sample(probs []float64, r float64) int {
	cumulative := 0.0
	for i, p := range probs {
		cumulative += p
		if r <= cumulative {
			return i
		}
	}
	// Fallback for accumulated rounding error
	return len(probs) - 1
}
