package qsearch

import "context"

/*
Amplifier executes amplitude amplification: prepare a uniform
superposition, apply the Grover iterator k times, measure once. It is a
pure executor of a fixed k — it never knows the solution count the k
was derived from. With k = 0 the circuit degrades to a uniform sample
over the space.
*/
type Amplifier struct {
	backend Backend
}

// NewAmplifier wires an amplifier to an execution backend.
func NewAmplifier(backend Backend) *Amplifier {
	return &Amplifier{backend: backend}
}

/*
Amplify runs k Grover iterations against the oracle and returns the
single measured index. The measurement is a raw sample from the
amplified distribution; callers verify it against the true oracle
before trusting it.
*/
func (a *Amplifier) Amplify(ctx context.Context, oracle *Oracle, k int) (int, error) {
	circuit := NewSearchCircuit(oracle, k)
	result, err := a.backend.Execute(ctx, circuit, 1)
	if err != nil {
		return 0, err
	}
	return result.Mode(), nil
}
