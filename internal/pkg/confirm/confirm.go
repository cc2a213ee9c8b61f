// Package confirm waits for ledger conditions by polling at a fixed interval.
package confirm

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DefaultInterval is used when a non-positive interval is given.
const DefaultInterval = 500 * time.Millisecond

// ErrNotYet is returned by a Check whose condition does not hold yet.
var ErrNotYet = errors.New("condition not met yet")

// Check reports nil once its condition holds, ErrNotYet (or an error wrapping it)
// to be polled again, and any other error to stop immediately.
type Check func(ctx context.Context) error

// HeadFunc returns the current block height.
type HeadFunc func(ctx context.Context) (uint64, error)

// Until polls check every interval until it succeeds, fails, or ctx is done.
func Until(ctx context.Context, interval time.Duration, check Check) error {
	if interval <= 0 {
		interval = DefaultInterval
	}

	op := func() error {
		err := check(ctx)
		if err == nil || errors.Is(err, ErrNotYet) {
			return err
		}
		return backoff.Permanent(err)
	}

	b := backoff.WithContext(backoff.NewConstantBackOff(interval), ctx)
	return backoff.Retry(op, b)
}

// WaitForHeight blocks until head reports at least target and returns the height
// it observed. Errors from head are not retried.
func WaitForHeight(ctx context.Context, interval time.Duration, head HeadFunc, target uint64) (uint64, error) {
	var height uint64
	err := Until(ctx, interval, func(ctx context.Context) error {
		h, err := head(ctx)
		if err != nil {
			return err
		}
		height = h
		if h < target {
			return ErrNotYet
		}
		return nil
	})
	return height, err
}
