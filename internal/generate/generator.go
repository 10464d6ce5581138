// Package generate wraps the downstream text-generation call and the
// follow-up suggestion step. The pipeline treats generation as an
// external collaborator: a failure here never unwinds the aggregation
// work that preceded it.
package generate

import "context"

// Temperatures for the main generation call. Regeneration runs hotter
// so repeat queries vary their perspective.
const (
	DefaultTemperature    = 0.7
	RegenerateTemperature = 0.9
)

// Options tune a single generation call.
type Options struct {
	Temperature float64
	MaxTokens   int
}

// Generator produces text for a composed prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}
