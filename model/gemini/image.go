package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// defaultImageModel renders inline image parts in the response.
const defaultImageModel = "gemini-2.5-flash-image"

// ImageGenerator implements core.ImageGenerator on top of the Gemini API.
type ImageGenerator struct {
	client *genai.Client
	model  string
}

// NewImageGenerator creates an image generator. model may be empty to use
// the default image-capable model.
func NewImageGenerator(client *genai.Client, model string) *ImageGenerator {
	if model == "" {
		model = defaultImageModel
	}
	return &ImageGenerator{client: client, model: model}
}

// Generate implements core.ImageGenerator returning the first inline image
// payload of the response.
func (g *ImageGenerator) Generate(ctx context.Context, prompt, modelPreference string) ([]byte, error) {
	modelID := g.model
	if modelPreference != "" {
		modelID = modelPreference
	}

	resp, err := g.client.Models.GenerateContent(ctx,
		modelID,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		&genai.GenerateContentConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini image generation failed: %w", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, nil
			}
		}
	}

	return nil, fmt.Errorf("gemini returned no image data")
}
