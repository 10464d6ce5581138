// Package aggregate fans a query out to the classifier-selected
// providers and merges their results into one trust-annotated list.
package aggregate

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/arqiv-labs/research-pipeline/internal/classify"
	"github.com/arqiv-labs/research-pipeline/internal/model"
	"github.com/arqiv-labs/research-pipeline/internal/provider"
)

// trustScores is the static reliability rating per provider family.
// Unknown tags fall back to defaultTrustScore.
var trustScores = map[model.Provider]float64{
	model.ProviderArxiv:           5,
	model.ProviderSemanticScholar: 4.5,
	model.ProviderPubMed:          5,
	model.ProviderCrossRef:        4.5,
	model.ProviderGoogleBooks:     3.5,
	model.ProviderNewsAPI:         3,
	model.ProviderYouTube:         2,
	model.ProviderWikipedia:       3,
}

const defaultTrustScore = 3

// Aggregator runs the provider fan-out. It cannot fail: the worst case
// is an empty source list.
type Aggregator struct {
	registry *provider.Registry
	budget   int // records requested per provider
}

// New creates an aggregator. budget is the per-provider record count.
func New(registry *provider.Registry, budget int) *Aggregator {
	if budget <= 0 {
		budget = 2
	}
	return &Aggregator{registry: registry, budget: budget}
}

// Aggregate classifies the query, fetches from every selected provider
// concurrently, and returns the combined list together with the
// analysis. Adapters settle independently; results are collected into
// per-provider slots so the output order follows provider-selection
// order, not completion order.
func (a *Aggregator) Aggregate(ctx context.Context, query, category string) ([]model.ResearchSource, model.PromptAnalysis) {
	analysis := classify.Analyze(query, category)
	sources := a.Fetch(ctx, query, analysis.SuggestedSources)
	return sources, analysis
}

// Fetch fans out to the adapters registered for the given providers, in
// order. Duplicate entries in the selection are fetched once.
func (a *Aggregator) Fetch(ctx context.Context, query string, selected []model.Provider) []model.ResearchSource {
	var adapters []provider.Adapter
	seen := make(map[model.Provider]bool, len(selected))
	for _, p := range selected {
		if seen[p] {
			continue
		}
		seen[p] = true
		if ad := a.registry.Get(p); ad != nil {
			adapters = append(adapters, ad)
		}
	}
	if len(adapters) == 0 {
		return nil
	}

	slots := make([][]model.ResearchSource, len(adapters))
	g, gctx := errgroup.WithContext(ctx)
	for i, ad := range adapters {
		g.Go(func() error {
			// Adapters recover their own failures; a slot is at
			// worst empty, never a cancellation of its siblings.
			slots[i] = ad.Fetch(gctx, query, a.budget)
			return nil
		})
	}
	_ = g.Wait()

	var combined []model.ResearchSource
	for _, slot := range slots {
		combined = append(combined, slot...)
	}
	for i := range combined {
		combined[i].TrustScore = trustScoreFor(combined[i].Provider)
	}

	zap.L().Debug("aggregation settled",
		zap.String("query", query),
		zap.Int("providers", len(adapters)),
		zap.Int("sources", len(combined)),
	)
	return combined
}

func trustScoreFor(p model.Provider) float64 {
	if score, ok := trustScores[p]; ok {
		return score
	}
	return defaultTrustScore
}
