package api

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"
)

// RequestWithRetry performs Request with bounded exponential backoff for
// transient outcomes only (transport failures and 502/503/504). Permanent
// failures — auth, validation, not-found — return immediately.
//
// Requests with a RawBody cannot be replayed and are issued exactly once.
func (c *Client) RequestWithRetry(ctx context.Context, opts RequestOptions, maxRetries uint64) *Result {
	if opts.RawBody != nil {
		return c.Request(ctx, opts)
	}

	var res *Result
	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(500*time.Millisecond))

	// retry.Do only reports the last attempt's error; the Result carries
	// everything the caller needs either way.
	_ = retry.Do(ctx, backoff, func(ctx context.Context) error {
		res = c.Request(ctx, opts)
		if res.Transient() {
			return retry.RetryableError(errors.New(res.Err))
		}
		return nil
	})
	return res
}
