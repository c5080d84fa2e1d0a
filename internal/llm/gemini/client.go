// Package gemini implements the secondary semantic extractor over the Gemini
// API, behind a small generation interface so tests can stub the model.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Generator is the slice of the Gemini API this package needs.
type Generator interface {
	GenerateContent(ctx context.Context, model string, prompt string, config *GenerateConfig) (string, error)
}

// GenerateConfig holds configuration for content generation.
type GenerateConfig struct {
	Temperature      *float32
	ResponseMIMEType string
}

type genaiGenerator struct {
	client *genai.Client
}

// NewGenerator creates a Generator using the provided API key.
func NewGenerator(ctx context.Context, apiKey string) (Generator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &genaiGenerator{client: client}, nil
}

func (g *genaiGenerator) GenerateContent(ctx context.Context, model string, prompt string, config *GenerateConfig) (string, error) {
	var genConfig *genai.GenerateContentConfig
	if config != nil {
		genConfig = &genai.GenerateContentConfig{}
		if config.Temperature != nil {
			genConfig.Temperature = genai.Ptr(*config.Temperature)
		}
		if config.ResponseMIMEType != "" {
			genConfig.ResponseMIMEType = config.ResponseMIMEType
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, "user"),
	}, genConfig)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
