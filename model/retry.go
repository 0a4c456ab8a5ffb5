package model

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/hupe1980/skillmesh/logging"
)

// ErrMaxRetries is returned when every attempt of a rate-limited call
// failed with a quota-class error and the retry ceiling is exhausted.
var ErrMaxRetries = errors.New("max retries exceeded")

// RetryOptions configure the retrying wrapper.
type RetryOptions struct {
	// Retries is the retry ceiling: a call is attempted at most Retries+1
	// times before ErrMaxRetries surfaces.
	Retries int
	// OnRetry receives a human-readable status string before each backoff
	// sleep. Optional.
	OnRetry func(status string)
	// Timer overrides the backoff wait mechanism. Tests inject an
	// immediate-fire timer; nil uses real time.
	Timer backoff.Timer
	// Logger receives retry diagnostics.
	Logger logging.Logger
}

// RetryClient wraps a Client with bounded exponential backoff on
// quota-class failures. Delays follow 2^attempt*2000 + 1000 milliseconds
// (3s, 5s, 9s, ...). Non-quota failures propagate immediately and
// unchanged; a stream that already delivered chunks is never replayed.
//
// RetryClient is the sole point of contact with the upstream generation
// service for every skill handler.
type RetryClient struct {
	inner Client
	opts  RetryOptions
}

// NewRetryClient wraps inner with the default ceiling of 3 retries.
func NewRetryClient(inner Client, optFns ...func(o *RetryOptions)) *RetryClient {
	opts := RetryOptions{
		Retries: 3,
		Logger:  logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	return &RetryClient{inner: inner, opts: opts}
}

// quotaBackOff yields the fixed schedule 2^attempt*2000 + 1000 ms.
type quotaBackOff struct {
	attempt int
}

// NextBackOff implements backoff.BackOff.
func (b *quotaBackOff) NextBackOff() time.Duration {
	d := time.Duration(1<<b.attempt)*2*time.Second + time.Second
	b.attempt++
	return d
}

// Reset implements backoff.BackOff.
func (b *quotaBackOff) Reset() { b.attempt = 0 }

// do runs op under the retry policy. op must return the raw attempt error;
// non-quota errors are marked permanent so backoff stops immediately.
func (c *RetryClient) do(ctx context.Context, op func() error) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(&quotaBackOff{}, uint64(c.opts.Retries)),
		ctx,
	)

	attempt := 0
	notify := func(cause error, delay time.Duration) {
		c.opts.Logger.Warn("model call rate limited, backing off delay=%s attempt=%d", delay, attempt)
		if c.opts.OnRetry != nil {
			// attempt+1 is the attempt that just failed; the budget counts
			// the initial attempt plus every retry.
			c.opts.OnRetry(fmt.Sprintf(
				"Rate limited, retrying in %s (attempt %d of %d)",
				delay, attempt+1, c.opts.Retries+1,
			))
		}
		attempt++
	}

	classified := func() error {
		err := op()
		if err == nil {
			return nil
		}
		if !IsQuotaError(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	err := backoff.RetryNotifyWithTimer(classified, policy, notify, c.opts.Timer)
	if err != nil && IsQuotaError(err) && attempt == c.opts.Retries {
		// The full schedule ran and every attempt hit the quota.
		return fmt.Errorf("%w after %d attempts: %v", ErrMaxRetries, c.opts.Retries+1, err)
	}
	return err
}

// GenerateStream implements Client. Each attempt forwards chunks as they
// arrive; once any chunk has been delivered a subsequent failure is
// permanent since the partial output cannot be replayed.
func (c *RetryClient) GenerateStream(ctx context.Context, req Request) (<-chan Chunk, <-chan error) {
	out := make(chan Chunk, 32)
	errCh := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errCh)

		delivered := false
		op := func() error {
			chunks, errs := c.inner.GenerateStream(ctx, req)
			var attemptErr error
			for chunks != nil || errs != nil {
				select {
				case ck, ok := <-chunks:
					if !ok {
						chunks = nil
						continue
					}
					delivered = true
					out <- ck
				case err, ok := <-errs:
					if !ok {
						errs = nil
						continue
					}
					if err != nil && attemptErr == nil {
						attemptErr = err
					}
				}
			}
			if attemptErr != nil && delivered {
				return backoff.Permanent(attemptErr)
			}
			return attemptErr
		}

		if err := c.do(ctx, op); err != nil {
			errCh <- err
		}
	}()

	return out, errCh
}

// Generate implements Client for the one-shot path.
func (c *RetryClient) Generate(ctx context.Context, req Request) (*Chunk, error) {
	var resp *Chunk
	op := func() error {
		r, err := c.inner.Generate(ctx, req)
		if err != nil {
			return err
		}
		resp = r
		return nil
	}
	if err := c.do(ctx, op); err != nil {
		return nil, err
	}
	return resp, nil
}

// Info implements Client delegating to the wrapped client.
func (c *RetryClient) Info() Info { return c.inner.Info() }
