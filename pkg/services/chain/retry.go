package chain

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryTransport retries requests that failed before reaching a JSON-RPC
// answer. Node-reported errors are returned immediately.
type RetryTransport struct {
	next            Transport
	maxTries        uint
	initialInterval time.Duration
	maxInterval     time.Duration
}

type RetryOption func(*RetryTransport)

func WithRetryIntervals(initial, maxInterval time.Duration) RetryOption {
	return func(t *RetryTransport) {
		t.initialInterval = initial
		t.maxInterval = maxInterval
	}
}

// NewRetryTransport wraps next so that each request is attempted at most
// maxTries times.
func NewRetryTransport(next Transport, maxTries uint, opts ...RetryOption) *RetryTransport {
	t := &RetryTransport{
		next:            next,
		maxTries:        maxTries,
		initialInterval: 500 * time.Millisecond,
		maxInterval:     5 * time.Second,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

func (t *RetryTransport) CallContext(ctx context.Context, result any, method string, args ...any) error {
	exponentialBackoff := backoff.NewExponentialBackOff()
	exponentialBackoff.InitialInterval = t.initialInterval
	exponentialBackoff.MaxInterval = t.maxInterval

	operation := func() (struct{}, error) {
		err := t.next.CallContext(ctx, result, method, args...)
		if err == nil {
			return struct{}{}, nil
		}
		if isNodeReported(err) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}

	_, err := backoff.Retry(
		ctx,
		operation,
		backoff.WithBackOff(exponentialBackoff),
		backoff.WithMaxTries(t.maxTries),
		backoff.WithNotify(func(err error, duration time.Duration) {
			log.Warnw("rpc request failed, retrying", "method", method, "in", duration, "error", err)
		}),
	)
	return err
}
