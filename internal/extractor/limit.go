package extractor

import (
	"context"

	"golang.org/x/sync/semaphore"

	"rendix/internal/port"
)

// LimitedCompleter bounds the number of in-flight completions across all
// callers. Acquire blocks until a slot frees or the context is cancelled.
type LimitedCompleter struct {
	inner port.StructuredCompleter
	sem   *semaphore.Weighted
}

// NewLimitedCompleter wraps a completer with a concurrency cap. A cap of 0 or
// less disables the wrapper and returns the inner completer unchanged.
func NewLimitedCompleter(inner port.StructuredCompleter, maxInFlight int64) port.StructuredCompleter {
	if maxInFlight <= 0 {
		return inner
	}
	return &LimitedCompleter{
		inner: inner,
		sem:   semaphore.NewWeighted(maxInFlight),
	}
}

func (l *LimitedCompleter) Complete(ctx context.Context, in port.CompletionInput) (*port.CompletionOutput, error) {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer l.sem.Release(1)
	return l.inner.Complete(ctx, in)
}
