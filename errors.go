package qsearch

import (
	"errors"
	"fmt"
)

// ErrInvalidIndex reports an oracle evaluation outside the search space.
// This is a programming error and is never recovered by the driver.
var ErrInvalidIndex = errors.New("qsearch: index outside search space")

/*
BackendError wraps a failed or timed-out backend execution. The driver
aborts the current round on a BackendError without touching the found
set, retries once when configured, and otherwise terminates with an
incomplete result.
*/
type BackendError struct {
	JobID string
	Err   error
}

func (e *BackendError) Error() string {
	if e.JobID == "" {
		return fmt.Sprintf("qsearch: backend failure: %v", e.Err)
	}
	return fmt.Sprintf("qsearch: backend failure (job %s): %v", e.JobID, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// IsBackendError reports whether err is (or wraps) a BackendError.
func IsBackendError(err error) bool {
	var be *BackendError
	return errors.As(err, &be)
}
