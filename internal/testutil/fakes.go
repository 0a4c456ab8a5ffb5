package testutil

import (
	"context"
	"sync"

	"github.com/hupe1980/skillmesh/core"
)

// CollectSink records every stream chunk it receives. Safe for concurrent
// use.
type CollectSink struct {
	mu     sync.Mutex
	chunks []core.StreamChunk
}

// Sink returns a core.Sink that appends into the collector.
func (c *CollectSink) Sink() core.Sink {
	return func(chunk core.StreamChunk) {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.chunks = append(c.chunks, chunk)
	}
}

// Chunks returns a snapshot of the recorded chunks.
func (c *CollectSink) Chunks() []core.StreamChunk {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]core.StreamChunk, len(c.chunks))
	copy(out, c.chunks)
	return out
}

// Text concatenates the recorded chunk texts.
func (c *CollectSink) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var s string
	for _, ck := range c.chunks {
		s += ck.Text
	}
	return s
}

// Statuses returns the recorded non-empty status strings in order.
func (c *CollectSink) Statuses() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for _, ck := range c.chunks {
		if ck.Status != "" {
			out = append(out, ck.Status)
		}
	}
	return out
}

// StaticRouter always returns the configured routed action.
type StaticRouter struct {
	Routed core.RoutedAction
	Err    error
}

// Route implements core.Router.
func (r *StaticRouter) Route(context.Context, string, string, int) (core.RoutedAction, error) {
	return r.Routed, r.Err
}

// FakeResearch is a scripted core.ResearchService.
type FakeResearch struct {
	Report   *core.ResearchReport
	Progress []string
	Err      error
}

// DeepResearch implements core.ResearchService emitting the scripted
// progress strings before returning.
func (f *FakeResearch) DeepResearch(_ context.Context, _ string, progress func(status string)) (*core.ResearchReport, error) {
	for _, status := range f.Progress {
		if progress != nil {
			progress(status)
		}
	}
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Report, nil
}

// FakeCanvas is a scripted core.CanvasService.
type FakeCanvas struct {
	Output *core.CanvasOutput
	Err    error

	// LastInput records the input of the most recent call.
	LastInput core.CanvasInput
}

// Run implements core.CanvasService.
func (f *FakeCanvas) Run(_ context.Context, input core.CanvasInput) (*core.CanvasOutput, error) {
	f.LastInput = input
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Output, nil
}

// FakeImages is a scripted core.ImageGenerator.
type FakeImages struct {
	Data []byte
	Err  error

	// LastPrompt and LastModel record the most recent call.
	LastPrompt string
	LastModel  string
}

// Generate implements core.ImageGenerator.
func (f *FakeImages) Generate(_ context.Context, prompt, modelPreference string) ([]byte, error) {
	f.LastPrompt = prompt
	f.LastModel = modelPreference
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Data, nil
}

// FakeCounter is a core.UsageCounter recording increments. Safe for
// concurrent use.
type FakeCounter struct {
	mu    sync.Mutex
	calls []string
	err   error
	done  chan struct{}
}

// NewFakeCounter creates a counter whose Done channel is signalled on the
// first increment, letting tests join fire-and-forget calls.
func NewFakeCounter() *FakeCounter {
	return &FakeCounter{done: make(chan struct{}, 1)}
}

// FailWith makes subsequent increments return err.
func (f *FakeCounter) FailWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// Increment implements core.UsageCounter.
func (f *FakeCounter) Increment(_ context.Context, userID string) error {
	f.mu.Lock()
	f.calls = append(f.calls, userID)
	err := f.err
	f.mu.Unlock()
	select {
	case f.done <- struct{}{}:
	default:
	}
	return err
}

// Calls returns the recorded user ids.
func (f *FakeCounter) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// Done returns a channel signalled after the first increment.
func (f *FakeCounter) Done() <-chan struct{} { return f.done }
