package model

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// instantTimer fires immediately and records every requested delay.
type instantTimer struct {
	delays []time.Duration
	ch     chan time.Time
}

func newInstantTimer() *instantTimer {
	return &instantTimer{ch: make(chan time.Time, 1)}
}

func (t *instantTimer) Start(duration time.Duration) {
	t.delays = append(t.delays, duration)
	t.ch <- time.Now()
}

func (t *instantTimer) C() <-chan time.Time { return t.ch }

func (t *instantTimer) Stop() {}

// flakyClient fails the first `failures` calls with err, then delegates.
type flakyClient struct {
	failures int
	err      error
	calls    int
	inner    *MockClient
}

func (f *flakyClient) GenerateStream(ctx context.Context, req Request) (<-chan Chunk, <-chan error) {
	f.calls++
	if f.calls <= f.failures {
		out := make(chan Chunk)
		errCh := make(chan error, 1)
		errCh <- f.err
		close(out)
		close(errCh)
		return out, errCh
	}
	return f.inner.GenerateStream(ctx, req)
}

func (f *flakyClient) Generate(ctx context.Context, req Request) (*Chunk, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, f.err
	}
	return f.inner.Generate(ctx, req)
}

func (f *flakyClient) Info() Info { return f.inner.Info() }

func drain(t *testing.T, chunks <-chan Chunk, errs <-chan error) (string, error) {
	t.Helper()
	var text string
	var streamErr error
	for chunks != nil || errs != nil {
		select {
		case ck, ok := <-chunks:
			if !ok {
				chunks = nil
				continue
			}
			text += ck.Text
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if err != nil && streamErr == nil {
				streamErr = err
			}
		case <-time.After(5 * time.Second):
			t.Fatal("stream did not complete")
		}
	}
	return text, streamErr
}

func TestRetryClient_BackoffSchedule(t *testing.T) {
	quotaErr := errors.New("googleapi: Error 429: quota exceeded")
	inner := &flakyClient{failures: 10, err: quotaErr, inner: NewMockClient("m")}
	timer := newInstantTimer()

	var statuses []string
	client := NewRetryClient(inner, func(o *RetryOptions) {
		o.Retries = 3
		o.Timer = timer
		o.OnRetry = func(status string) { statuses = append(statuses, status) }
	})

	chunks, errs := client.GenerateStream(context.Background(), Request{})
	_, err := drain(t, chunks, errs)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMaxRetries)

	// 1 initial attempt + 3 retries, with waits of 3s, 5s and 9s between.
	assert.Equal(t, 4, inner.calls)
	assert.Equal(t, []time.Duration{3 * time.Second, 5 * time.Second, 9 * time.Second}, timer.delays)

	// Progress reports count against the full attempt budget.
	require.Len(t, statuses, 3)
	assert.Contains(t, statuses[0], "attempt 1 of 4")
	assert.Contains(t, statuses[2], "attempt 3 of 4")
}

func TestRetryClient_NonQuotaErrorPropagatesUnchanged(t *testing.T) {
	boom := errors.New("model exploded")
	inner := &flakyClient{failures: 10, err: boom, inner: NewMockClient("m")}
	timer := newInstantTimer()

	client := NewRetryClient(inner, func(o *RetryOptions) { o.Timer = timer })

	chunks, errs := client.GenerateStream(context.Background(), Request{})
	_, err := drain(t, chunks, errs)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrMaxRetries)
	assert.Equal(t, 1, inner.calls)
	assert.Empty(t, timer.delays)
}

func TestRetryClient_RecoversAfterQuotaFailures(t *testing.T) {
	mock := NewMockClient("m")
	mock.AddResponse("hi", "hello there")
	inner := &flakyClient{failures: 2, err: errors.New("RESOURCE_EXHAUSTED: slow down"), inner: mock}
	timer := newInstantTimer()

	var statuses []string
	client := NewRetryClient(inner, func(o *RetryOptions) {
		o.Retries = 3
		o.Timer = timer
		o.OnRetry = func(status string) { statuses = append(statuses, status) }
	})

	chunks, errs := client.GenerateStream(context.Background(), Request{
		Contents: []Content{NewTextContent("user", "hi")},
	})
	text, err := drain(t, chunks, errs)
	require.NoError(t, err)
	assert.Equal(t, "hello there", text)
	assert.Equal(t, 3, inner.calls)
	assert.Len(t, statuses, 2)
	assert.Contains(t, statuses[0], "attempt 1 of 4")
	assert.Contains(t, statuses[1], "attempt 2 of 4")
}

func TestRetryClient_NoReplayAfterDeliveredChunks(t *testing.T) {
	// A quota error after chunks were already forwarded must not restart
	// the stream: partial output cannot be replayed.
	quotaErr := errors.New("429 too many requests")
	inner := &midStreamFailClient{err: quotaErr}
	timer := newInstantTimer()

	client := NewRetryClient(inner, func(o *RetryOptions) { o.Timer = timer })

	chunks, errs := client.GenerateStream(context.Background(), Request{})
	text, err := drain(t, chunks, errs)
	require.Error(t, err)
	assert.ErrorIs(t, err, quotaErr)
	assert.NotErrorIs(t, err, ErrMaxRetries)
	assert.Equal(t, "partial ", text)
	assert.Equal(t, 1, inner.calls)
	assert.Empty(t, timer.delays)
}

// midStreamFailClient emits one chunk then fails.
type midStreamFailClient struct {
	err   error
	calls int
}

func (m *midStreamFailClient) GenerateStream(context.Context, Request) (<-chan Chunk, <-chan error) {
	m.calls++
	out := make(chan Chunk, 1)
	errCh := make(chan error, 1)
	out <- Chunk{Text: "partial "}
	errCh <- m.err
	close(out)
	close(errCh)
	return out, errCh
}

func (m *midStreamFailClient) Generate(context.Context, Request) (*Chunk, error) {
	return nil, m.err
}

func (m *midStreamFailClient) Info() Info { return Info{Name: "mid", Provider: "mock"} }

func TestRetryClient_GenerateOneShot(t *testing.T) {
	mock := NewMockClient("m")
	mock.AddResponse("ping", "pong")
	inner := &flakyClient{failures: 1, err: errors.New("rate limit hit"), inner: mock}
	timer := newInstantTimer()

	client := NewRetryClient(inner, func(o *RetryOptions) { o.Timer = timer })

	resp, err := client.Generate(context.Background(), Request{
		Contents: []Content{NewTextContent("user", "ping")},
	})
	require.NoError(t, err)
	assert.Equal(t, "pong", resp.Text)
	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, []time.Duration{3 * time.Second}, timer.delays)
}

func TestRetryClient_InfoDelegates(t *testing.T) {
	inner := NewMockClient("delegate-me")
	client := NewRetryClient(inner)

	assert.Equal(t, "delegate-me", client.Info().Name)
}
