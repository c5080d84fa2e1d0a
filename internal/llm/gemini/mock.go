package gemini

import "context"

// MockGenerator implements Generator for testing.
type MockGenerator struct {
	GenerateContentFn func(ctx context.Context, model string, prompt string, config *GenerateConfig) (string, error)
}

func (m *MockGenerator) GenerateContent(ctx context.Context, model string, prompt string, config *GenerateConfig) (string, error) {
	if m.GenerateContentFn != nil {
		return m.GenerateContentFn(ctx, model, prompt, config)
	}
	return "", nil
}
