package qsearch

import "fmt"

// CircuitKind discriminates the two circuit shapes backends must execute.
type CircuitKind int

const (
	// SearchCircuit prepares a uniform superposition over the data
	// register and applies the Grover iterator Iterations times.
	SearchCircuit CircuitKind = iota
	// CountingCircuit runs phase estimation over the Grover iterator
	// with a counting register of PrecisionQubits qubits.
	CountingCircuit
)

func (k CircuitKind) String() string {
	switch k {
	case SearchCircuit:
		return "search"
	case CountingCircuit:
		return "counting"
	default:
		return "unknown"
	}
}

/*
Circuit is the abstract description handed to a Backend. It names the
oracle and the register widths; how the iterator is realised (statevector
math, gate-level simulation, hardware transpilation) is entirely the
backend's business.
*/
type Circuit struct {
	Kind   CircuitKind
	Oracle *Oracle

	// Iterations is the Grover iteration count k. Search circuits only.
	Iterations int

	// PrecisionQubits is the counting register width t. Counting
	// circuits only.
	PrecisionQubits int
}

// NewSearchCircuit describes k Grover iterations over the oracle's space.
func NewSearchCircuit(oracle *Oracle, iterations int) *Circuit {
	return &Circuit{Kind: SearchCircuit, Oracle: oracle, Iterations: iterations}
}

// NewCountingCircuit describes phase estimation with a t-qubit counting register.
func NewCountingCircuit(oracle *Oracle, precisionQubits int) *Circuit {
	return &Circuit{Kind: CountingCircuit, Oracle: oracle, PrecisionQubits: precisionQubits}
}

// Validate checks the description before execution.
func (c *Circuit) Validate() error {
	if c.Oracle == nil {
		return fmt.Errorf("qsearch: circuit has no oracle")
	}
	switch c.Kind {
	case SearchCircuit:
		if c.Iterations < 0 {
			return fmt.Errorf("qsearch: negative iteration count %d", c.Iterations)
		}
	case CountingCircuit:
		if c.PrecisionQubits < 1 {
			return fmt.Errorf("qsearch: counting register needs at least 1 qubit, got %d", c.PrecisionQubits)
		}
	default:
		return fmt.Errorf("qsearch: unknown circuit kind %d", c.Kind)
	}
	return nil
}

func (c *Circuit) String() string {
	if c.Kind == CountingCircuit {
		return fmt.Sprintf("Circuit(%s, t=%d, %s)", c.Kind, c.PrecisionQubits, c.Oracle.Space())
	}
	return fmt.Sprintf("Circuit(%s, k=%d, %s)", c.Kind, c.Iterations, c.Oracle.Space())
}
