package main

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrInvalidWorkerCount is returned for worker counts outside [0, MaxWorkers].
var ErrInvalidWorkerCount = errors.New("invalid worker count")

// MaxWorkers bounds concurrent documents.
const MaxWorkers = 64

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, MaxWorkers)
	}
	return nil
}

// resolveWorkers determines how many documents run at once.
// Priority: explicit flag > CSSURL_WORKERS > GOMAXPROCS (adjusted by
// automaxprocs for containers). Never exceeds the number of documents.
func resolveWorkers(flagWorkers, envWorkers, documents int) int {
	n := flagWorkers
	if n <= 0 {
		n = envWorkers
	}
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	n = min(n, MaxWorkers)
	if documents > 0 {
		n = min(n, documents)
	}
	return max(n, 1)
}
