package qsearch

import "fmt"

// MaxQubits bounds the search spaces the statevector simulator can hold in memory.
const MaxQubits = 24

/*
SearchSpace is the index set {0, ..., N-1} over which solutions are sought,
with N = 2^n for n qubits. It is immutable for the lifetime of a run: the
driver never grows or shrinks the space, it only restricts the oracle.
*/
type SearchSpace struct {
	qubits int
}

// NewSearchSpace creates a search space over the given number of qubits.
func NewSearchSpace(qubits int) (SearchSpace, error) {
	if qubits < 1 || qubits > MaxQubits {
		return SearchSpace{}, fmt.Errorf("qsearch: qubits must be in [1, %d], got %d", MaxQubits, qubits)
	}
	return SearchSpace{qubits: qubits}, nil
}

// Qubits returns n, the number of qubits spanning the space.
func (s SearchSpace) Qubits() int {
	return s.qubits
}

// Size returns N = 2^n.
func (s SearchSpace) Size() int {
	return 1 << s.qubits
}

// Contains reports whether x is a valid index within the space.
func (s SearchSpace) Contains(x int) bool {
	return x >= 0 && x < s.Size()
}

func (s SearchSpace) String() string {
	return fmt.Sprintf("SearchSpace(n=%d, N=%d)", s.qubits, s.Size())
}
