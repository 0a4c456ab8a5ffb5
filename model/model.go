package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/skillmesh/core"
)

// Part represents a polymorphic segment of role-based content. Concrete
// part types implement the unexported isPart marker enabling a closed set.
type Part interface{ isPart() }

// TextPart is a plain text content segment.
type TextPart struct {
	Text string // Plain UTF-8 text
}

// isPart implements the Part interface for TextPart.
func (TextPart) isPart() {}

// BlobPart is an inlined binary segment (attachment bytes).
type BlobPart struct {
	MIMEType string
	Data     []byte
}

// isPart implements the Part interface for BlobPart.
func (BlobPart) isPart() {}

// Content holds role + ordered parts.
type Content struct {
	Role  string `json:"role,omitempty"` // Conversation role (user, assistant)
	Parts []Part `json:"parts"`          // Ordered heterogeneous parts
}

// NewTextContent builds a single-part text content for the given role.
func NewTextContent(role, text string) Content {
	return Content{Role: role, Parts: []Part{TextPart{Text: text}}}
}

// Text concatenates the text parts of the content in order.
func (c Content) Text() string {
	var b strings.Builder
	for _, p := range c.Parts {
		if tp, ok := p.(TextPart); ok {
			b.WriteString(tp.Text)
		}
	}
	return b.String()
}

// Request captures the normalized model input produced by skill handlers.
type Request struct {
	Model             string    `json:"model,omitempty"`              // Provider model identifier ("" = adapter default)
	Contents          []Content `json:"contents"`                     // Conversation contents, oldest first
	SystemInstruction string    `json:"system_instruction,omitempty"` // System-level instruction preamble
	EnableSearch      bool      `json:"enable_search,omitempty"`      // Request web-search grounding tooling
	ResponseMIMEType  string    `json:"response_mime_type,omitempty"` // Structured output hint (e.g. application/json)
	ThinkingBudget    int32     `json:"thinking_budget,omitempty"`    // Extended reasoning token budget (0 = provider default)
}

// Chunk is a (partial or final) unit emitted by a streaming model. Text may
// be empty on chunks that only carry grounding metadata.
type Chunk struct {
	Text      string          `json:"text,omitempty"`
	Citations []core.Citation `json:"citations,omitempty"`
}

// Info contains metadata about a client implementation.
type Info struct {
	Name              string `json:"name"`
	Provider          string `json:"provider"` // "gemini", "openai", "anthropic", "mock", ...
	SupportsGrounding bool   `json:"supports_grounding"`
}

// Client is the minimal interface required by skill handlers to drive
// generation. GenerateStream returns a lazy chunk sequence; Generate is the
// one-shot path used by non-streaming skills.
type Client interface {
	GenerateStream(ctx context.Context, req Request) (<-chan Chunk, <-chan error)

	Generate(ctx context.Context, req Request) (*Chunk, error)

	// Info returns information about the client implementation.
	Info() Info
}

// quotaIndicators are matched case-insensitively against error text to
// classify transient rate-limit failures.
var quotaIndicators = []string{"429", "quota", "rate limit", "resource_exhausted", "resource exhausted"}

// IsQuotaError reports whether err is a rate-limit-class failure eligible
// for retry (HTTP 429 or a quota indicator in the message).
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, ind := range quotaIndicators {
		if strings.Contains(msg, ind) {
			return true
		}
	}
	return false
}

// MockClient is a lightweight in-memory Client useful for tests & examples.
type MockClient struct {
	info      Info
	responses map[string]string
	citations map[string][]core.Citation
	err       error
}

// NewMockClient constructs a MockClient with grounding support enabled.
func NewMockClient(name string) *MockClient {
	return &MockClient{
		info: Info{
			Name:              name,
			Provider:          "mock",
			SupportsGrounding: true,
		},
		responses: make(map[string]string),
		citations: make(map[string][]core.Citation),
	}
}

// AddResponse registers a deterministic canned completion for an input prompt.
func (m *MockClient) AddResponse(prompt, response string) { m.responses[prompt] = response }

// AddCitations registers grounding metadata emitted alongside the canned
// completion for the prompt.
func (m *MockClient) AddCitations(prompt string, citations ...core.Citation) {
	m.citations[prompt] = append(m.citations[prompt], citations...)
}

// FailWith makes every subsequent call fail with err. Pass nil to restore
// normal behavior.
func (m *MockClient) FailWith(err error) { m.err = err }

func (m *MockClient) lookup(req Request) (string, []core.Citation) {
	var inputText string
	if len(req.Contents) > 0 {
		inputText = req.Contents[len(req.Contents)-1].Text()
	}
	full, ok := m.responses[inputText]
	if !ok {
		full = fmt.Sprintf("Mock response to: %s", inputText)
	}
	return full, m.citations[inputText]
}

// GenerateStream implements Client; emits word-level chunks then grounding
// metadata.
func (m *MockClient) GenerateStream(ctx context.Context, req Request) (<-chan Chunk, <-chan error) {
	out := make(chan Chunk, 16)
	errCh := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errCh)
		if m.err != nil {
			errCh <- m.err
			return
		}
		full, citations := m.lookup(req)
		words := strings.SplitAfter(full, " ")
		for _, w := range words {
			if w == "" {
				continue
			}
			select {
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			case out <- Chunk{Text: w}:
			}
		}
		if len(citations) > 0 {
			out <- Chunk{Citations: citations}
		}
	}()

	return out, errCh
}

// Generate implements Client returning the whole canned completion at once.
func (m *MockClient) Generate(ctx context.Context, req Request) (*Chunk, error) {
	if m.err != nil {
		return nil, m.err
	}
	full, citations := m.lookup(req)
	return &Chunk{Text: full, Citations: citations}, nil
}

// Info implements Client.
func (m *MockClient) Info() Info { return m.info }
