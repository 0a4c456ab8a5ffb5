// Package openai provides a model.Client implementation using the OpenAI
// Chat Completions API (including streaming). It adapts the normalized
// Request/Chunk structures into the SDK's message format and back.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/hupe1980/skillmesh/model"
)

// Options configure the OpenAI client adapter.
// Fields mirror a subset of Chat Completion parameters intentionally kept
// minimal; extend via functional options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Client wraps the OpenAI Chat Completions API behind the generic
// model.Client interface.
type Client struct {
	client *openai.Client
	opts   Options
}

// NewClient creates a new OpenAI client using the official SDK.
func NewClient(optFns ...func(o *Options)) *Client {
	client := openai.NewClient()
	return NewClientFromOpenAI(&client, optFns...)
}

// NewClientFromOpenAI creates an OpenAI adapter from an existing SDK client.
func NewClientFromOpenAI(client *openai.Client, optFns ...func(o *Options)) *Client {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Client{client: client, opts: opts}
}

// buildMessages converts normalized contents into OpenAI chat messages.
// Binary parts are skipped; the Chat Completions path is text-only here.
func buildMessages(req model.Request) []openai.ChatCompletionMessageParamUnion {
	var messages []openai.ChatCompletionMessageParamUnion
	if req.SystemInstruction != "" {
		messages = append(messages, openai.SystemMessage(req.SystemInstruction))
	}
	for _, c := range req.Contents {
		text := c.Text()
		if text == "" {
			continue
		}
		switch c.Role {
		case "assistant":
			messages = append(messages, openai.AssistantMessage(text))
		case "system":
			messages = append(messages, openai.SystemMessage(text))
		default:
			messages = append(messages, openai.UserMessage(text))
		}
	}
	return messages
}

// buildParams assembles the OpenAI request parameters.
func (c *Client) buildParams(req model.Request) openai.ChatCompletionNewParams {
	modelID := c.opts.Model
	if req.Model != "" {
		modelID = req.Model
	}
	params := openai.ChatCompletionNewParams{
		Messages:            buildMessages(req),
		Model:               modelID,
		Temperature:         openai.Float(c.opts.Temperature),
		MaxCompletionTokens: openai.Int(c.opts.MaxCompletionTokens),
	}
	if req.ResponseMIMEType == "application/json" {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		}
	}
	return params
}

// GenerateStream implements model.Client.
func (c *Client) GenerateStream(ctx context.Context, req model.Request) (<-chan model.Chunk, <-chan error) {
	out := make(chan model.Chunk, 32)
	errCh := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errCh)

		stream := c.client.Chat.Completions.NewStreaming(ctx, c.buildParams(req))
		for stream.Next() {
			ck := stream.Current()
			for _, choice := range ck.Choices {
				if choice.Delta.Content == "" {
					continue
				}
				select {
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				case out <- model.Chunk{Text: choice.Delta.Content}:
				}
			}
		}
		if err := stream.Err(); err != nil {
			errCh <- fmt.Errorf("openai streaming error: %w", err)
		}
	}()

	return out, errCh
}

// Generate implements model.Client for the one-shot path.
func (c *Client) Generate(ctx context.Context, req model.Request) (*model.Chunk, error) {
	resp, err := c.client.Chat.Completions.New(ctx, c.buildParams(req))
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned")
	}
	return &model.Chunk{Text: resp.Choices[0].Message.Content}, nil
}

// Info returns metadata describing this OpenAI client implementation.
func (c *Client) Info() model.Info {
	return model.Info{
		Name:              c.opts.Model,
		Provider:          "openai",
		SupportsGrounding: false,
	}
}
