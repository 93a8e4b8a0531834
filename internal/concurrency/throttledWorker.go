package concurrency

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// ThrottledWorker runs a job per argument, one at a time, with at least
// interval between consecutive jobs.
type ThrottledWorker[T any] struct {
	logger      *log.Logger
	interval    time.Duration
	jobCallback func(ctx context.Context, arg T) error
}

func NewThrottledWorker[T any](logger *log.Logger, interval time.Duration, jobCallback func(ctx context.Context, arg T) error) ThrottledWorker[T] {
	return ThrottledWorker[T]{logger: logger, interval: interval, jobCallback: jobCallback}
}

// Run blocks until every job has run or ctx is cancelled. Failed jobs are
// logged and counted, they don't stop the rest.
func (w *ThrottledWorker[T]) Run(ctx context.Context, jobArgs []T) int {

	jobArgsChannel := make(chan T, len(jobArgs))

	for _, arg := range jobArgs {
		jobArgsChannel <- arg
	}
	close(jobArgsChannel)
	limiter := time.NewTicker(w.interval)
	defer limiter.Stop()

	failed := 0
	first := true
	for arg := range jobArgsChannel {
		if !first {
			select {
			case <-ctx.Done():
				w.logger.Warn("worker stopped", "remaining", len(jobArgsChannel)+1)
				return failed
			case <-limiter.C:
			}
		}
		first = false

		if err := w.jobCallback(ctx, arg); err != nil {
			w.logger.Error("job failed", "err", err)
			failed++
		}
	}

	return failed
}
