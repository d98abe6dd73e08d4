package qsearch

import "sync"

// Metrics accounts for the quantum cost of a run: every measurement and
// every Grover iteration spent, across estimation and amplification.
type Metrics struct {
	mu sync.RWMutex

	Rounds           int
	Estimates        int
	Measurements     int
	GroverIterations int
	SolutionsFound   int
	Duplicates       int
	Misses           int
	BackendFailures  int
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) recordRound() {
	m.mu.Lock()
	m.Rounds++
	m.mu.Unlock()
}

func (m *Metrics) recordEstimate(shots, iterations int) {
	m.mu.Lock()
	m.Estimates++
	m.Measurements += shots
	m.GroverIterations += iterations
	m.mu.Unlock()
}

func (m *Metrics) recordAmplification(k int) {
	m.mu.Lock()
	m.Measurements++
	m.GroverIterations += k
	m.mu.Unlock()
}

func (m *Metrics) recordVerification(newSolution, duplicate bool) {
	m.mu.Lock()
	switch {
	case newSolution:
		m.SolutionsFound++
	case duplicate:
		m.Duplicates++
	default:
		m.Misses++
	}
	m.mu.Unlock()
}

func (m *Metrics) recordBackendFailure() {
	m.mu.Lock()
	m.BackendFailures++
	m.mu.Unlock()
}

// ExportMetrics returns a snapshot for logging or reporting layers.
func (m *Metrics) ExportMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"rounds":            m.Rounds,
		"estimates":         m.Estimates,
		"measurements":      m.Measurements,
		"grover_iterations": m.GroverIterations,
		"solutions_found":   m.SolutionsFound,
		"duplicates":        m.Duplicates,
		"misses":            m.Misses,
		"backend_failures":  m.BackendFailures,
	}
}
