// Package gemini provides a model.Client implementation backed by the
// Google Gemini API (google.golang.org/genai), including streaming with
// web-search grounding, extended thinking budgets and image generation.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/hupe1980/skillmesh/core"
	"github.com/hupe1980/skillmesh/model"
)

// Options configure the Gemini client adapter.
type Options struct {
	Model       string
	Temperature float64
	APIKey      string
}

// Client wraps the Gemini API behind the generic model.Client interface.
type Client struct {
	client *genai.Client
	opts   Options
}

// NewClient creates a new Gemini client using the official SDK.
func NewClient(ctx context.Context, optFns ...func(o *Options)) (*Client, error) {
	opts := Options{
		Model:       "gemini-2.5-flash",
		Temperature: 0.7,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: opts.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{client: client, opts: opts}, nil
}

// NewClientFromGenAI creates a Gemini adapter from an existing SDK client.
func NewClientFromGenAI(client *genai.Client, optFns ...func(o *Options)) *Client {
	opts := Options{
		Model:       "gemini-2.5-flash",
		Temperature: 0.7,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Client{client: client, opts: opts}
}

func (c *Client) modelID(req model.Request) string {
	if req.Model != "" {
		return req.Model
	}
	return c.opts.Model
}

// buildContents converts normalized contents into Gemini contents.
func buildContents(req model.Request) []*genai.Content {
	contents := make([]*genai.Content, 0, len(req.Contents))
	for _, content := range req.Contents {
		role := genai.RoleUser
		if content.Role == "assistant" {
			role = genai.RoleModel
		}
		parts := make([]*genai.Part, 0, len(content.Parts))
		for _, p := range content.Parts {
			switch part := p.(type) {
			case model.TextPart:
				if part.Text != "" {
					parts = append(parts, genai.NewPartFromText(part.Text))
				}
			case model.BlobPart:
				parts = append(parts, genai.NewPartFromBytes(part.Data, part.MIMEType))
			}
		}
		if len(parts) == 0 {
			continue
		}
		contents = append(contents, &genai.Content{Role: role, Parts: parts})
	}
	return contents
}

// buildConfig assembles the generation config from the normalized request.
func (c *Client) buildConfig(req model.Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(c.opts.Temperature)),
	}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	if req.EnableSearch {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	if req.ResponseMIMEType != "" {
		cfg.ResponseMIMEType = req.ResponseMIMEType
	}
	if req.ThinkingBudget > 0 {
		cfg.ThinkingConfig = &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr(req.ThinkingBudget),
		}
	}
	return cfg
}

// toChunk converts one API response into a normalized chunk, collecting
// grounding metadata in source order.
func toChunk(resp *genai.GenerateContentResponse) model.Chunk {
	var ck model.Chunk
	if len(resp.Candidates) == 0 {
		return ck
	}
	cand := resp.Candidates[0]
	if cand.Content != nil {
		for _, part := range cand.Content.Parts {
			ck.Text += part.Text
		}
	}
	if gm := cand.GroundingMetadata; gm != nil {
		for _, gc := range gm.GroundingChunks {
			if gc.Web != nil {
				ck.Citations = append(ck.Citations, core.Citation{
					Title: gc.Web.Title,
					URI:   gc.Web.URI,
				})
			}
		}
	}
	return ck
}

// GenerateStream implements model.Client.
func (c *Client) GenerateStream(ctx context.Context, req model.Request) (<-chan model.Chunk, <-chan error) {
	out := make(chan model.Chunk, 32)
	errCh := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errCh)

		stream := c.client.Models.GenerateContentStream(ctx, c.modelID(req), buildContents(req), c.buildConfig(req))
		for resp, err := range stream {
			if err != nil {
				errCh <- fmt.Errorf("gemini streaming error: %w", err)
				return
			}
			ck := toChunk(resp)
			if ck.Text == "" && len(ck.Citations) == 0 {
				continue
			}
			select {
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			case out <- ck:
			}
		}
	}()

	return out, errCh
}

// Generate implements model.Client for the one-shot path.
func (c *Client) Generate(ctx context.Context, req model.Request) (*model.Chunk, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.modelID(req), buildContents(req), c.buildConfig(req))
	if err != nil {
		return nil, fmt.Errorf("gemini api error: %w", err)
	}
	ck := toChunk(resp)
	return &ck, nil
}

// Info implements model.Client.
func (c *Client) Info() model.Info {
	return model.Info{
		Name:              c.opts.Model,
		Provider:          "gemini",
		SupportsGrounding: true,
	}
}
