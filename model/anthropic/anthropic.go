// Package anthropic provides a model.Client wrapper for the Anthropic
// Claude Messages API.
package anthropic

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/hupe1980/skillmesh/model"
)

// Options configures the Anthropic client adapter (temperature, model id,
// max tokens, API key). Extend via functional options to preserve stability.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// Client wraps the Anthropic Messages API behind the generic model.Client
// interface.
type Client struct {
	client *anthropic.Client
	opts   Options
}

// NewClient creates a new Anthropic client using the official SDK.
func NewClient(optFns ...func(o *Options)) *Client {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4096,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}

	client := anthropic.NewClient(clientOpts...)

	return &Client{
		client: &client,
		opts:   opts,
	}
}

// NewClientFromAnthropic creates an Anthropic adapter from an existing SDK client.
func NewClientFromAnthropic(client *anthropic.Client, optFns ...func(o *Options)) *Client {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4096,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Client{
		client: client,
		opts:   opts,
	}
}

// buildParams assembles the Messages API request from the normalized request.
func (c *Client) buildParams(req model.Request) anthropic.MessageNewParams {
	var messages []anthropic.MessageParam
	for _, content := range req.Contents {
		text := content.Text()
		if text == "" {
			continue
		}
		block := anthropic.NewTextBlock(text)
		if content.Role == "assistant" {
			messages = append(messages, anthropic.NewAssistantMessage(block))
		} else {
			messages = append(messages, anthropic.NewUserMessage(block))
		}
	}

	modelID := c.opts.Model
	if req.Model != "" {
		modelID = anthropic.Model(req.Model)
	}

	params := anthropic.MessageNewParams{
		Model:       modelID,
		Messages:    messages,
		MaxTokens:   c.opts.MaxTokens,
		Temperature: anthropic.Float(c.opts.Temperature),
	}

	if req.SystemInstruction != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.SystemInstruction}}
	}

	return params
}

// GenerateStream implements model.Client forwarding text deltas as chunks.
func (c *Client) GenerateStream(ctx context.Context, req model.Request) (<-chan model.Chunk, <-chan error) {
	out := make(chan model.Chunk, 32)
	errCh := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errCh)

		stream := c.client.Messages.NewStreaming(ctx, c.buildParams(req))
		for stream.Next() {
			event := stream.Current()
			switch eventVariant := event.AsAny().(type) {
			case anthropic.ContentBlockDeltaEvent:
				switch deltaVariant := eventVariant.Delta.AsAny().(type) {
				case anthropic.TextDelta:
					if deltaVariant.Text == "" {
						continue
					}
					select {
					case <-ctx.Done():
						errCh <- ctx.Err()
						return
					case out <- model.Chunk{Text: deltaVariant.Text}:
					}
				}
			}
		}
		if err := stream.Err(); err != nil {
			errCh <- fmt.Errorf("anthropic streaming error: %w", err)
		}
	}()

	return out, errCh
}

// Generate implements model.Client for the one-shot path.
func (c *Client) Generate(ctx context.Context, req model.Request) (*model.Chunk, error) {
	resp, err := c.client.Messages.New(ctx, c.buildParams(req))
	if err != nil {
		return nil, fmt.Errorf("anthropic api error: %w", err)
	}

	var ck model.Chunk
	for _, block := range resp.Content {
		if block.Type == "text" {
			ck.Text += block.AsText().Text
		}
	}
	return &ck, nil
}

// Info returns metadata describing this Anthropic client implementation.
func (c *Client) Info() model.Info {
	return model.Info{
		Name:              string(c.opts.Model),
		Provider:          "anthropic",
		SupportsGrounding: false,
	}
}
