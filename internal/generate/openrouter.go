package generate

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/arqiv-labs/research-pipeline/pkg/openrouter"
)

// OpenRouterGenerator backs Generator with OpenRouter chat completions.
type OpenRouterGenerator struct {
	client openrouter.Client
	model  string
}

// NewOpenRouter creates the OpenRouter backend. model may be empty to
// use the client default.
func NewOpenRouter(client openrouter.Client, model string) *OpenRouterGenerator {
	return &OpenRouterGenerator{client: client, model: model}
}

// Generate runs one chat completion and returns the first choice.
func (g *OpenRouterGenerator) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	req := openrouter.ChatCompletionRequest{
		Model:    g.model,
		Messages: []openrouter.Message{{Role: "user", Content: prompt}},
	}
	if opts.Temperature > 0 {
		req.Temperature = &opts.Temperature
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = &opts.MaxTokens
	}

	resp, err := g.client.ChatCompletion(ctx, req)
	if err != nil {
		return "", eris.Wrap(err, "generate: chat completion")
	}
	if len(resp.Choices) == 0 {
		return "", eris.New("generate: empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}
