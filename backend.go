package qsearch

import (
	"context"
	"time"

	"github.com/google/uuid"
)

/*
Backend is the single external collaborator boundary: an execution engine
that takes a circuit description and a shot count and returns sampled
measurement outcomes. Implementations may be a local simulator or a
remote sampler/hardware queue; the driver treats every call as blocking
and side-effecting, with no implicit retry at this layer.
*/
type Backend interface {
	Execute(ctx context.Context, circuit *Circuit, shots int) (*ExecutionResult, error)
}

/*
ExecutionResult carries the measurement outcomes of one backend job.
Counts maps a measured basis index to the number of shots that produced
it. For search circuits the index ranges over the data register, for
counting circuits over the counting register.
*/
type ExecutionResult struct {
	JobID   string
	Counts  map[int]int
	Shots   int
	Elapsed time.Duration
}

/*
Mode returns the most frequent outcome. Ties break toward the smaller
index so repeated runs over the same counts are deterministic.
*/
func (r *ExecutionResult) Mode() int {
	best, bestCount := -1, -1
	for outcome, count := range r.Counts {
		if count > bestCount || (count == bestCount && outcome < best) {
			best, bestCount = outcome, count
		}
	}
	return best
}

// newJobID tags a backend execution for log and error correlation.
func newJobID() string {
	return uuid.NewString()
}
