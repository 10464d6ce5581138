package aggregate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arqiv-labs/research-pipeline/internal/model"
	"github.com/arqiv-labs/research-pipeline/internal/provider"
)

type slowAdapter struct {
	tag     model.Provider
	sources []model.ResearchSource
	delay   time.Duration
}

func (a slowAdapter) Provider() model.Provider { return a.tag }

func (a slowAdapter) Fetch(ctx context.Context, query string, limit int) []model.ResearchSource {
	if a.delay > 0 {
		time.Sleep(a.delay)
	}
	return a.sources
}

func src(p model.Provider, title string) model.ResearchSource {
	return model.ResearchSource{Provider: p, Title: title, Content: "c", URL: "u"}
}

func TestFetch_OrderFollowsSelection(t *testing.T) {
	reg := provider.NewRegistry()
	// The slower adapter comes first in the selection; its results must
	// still lead the combined list.
	reg.Register(slowAdapter{tag: model.ProviderArxiv, delay: 30 * time.Millisecond,
		sources: []model.ResearchSource{src(model.ProviderArxiv, "paper")}})
	reg.Register(slowAdapter{tag: model.ProviderYouTube,
		sources: []model.ResearchSource{src(model.ProviderYouTube, "video")}})

	agg := New(reg, 2)
	out := agg.Fetch(context.Background(), "q", []model.Provider{model.ProviderArxiv, model.ProviderYouTube})

	require.Len(t, out, 2)
	assert.Equal(t, "paper", out[0].Title)
	assert.Equal(t, "video", out[1].Title)
}

func TestFetch_AssignsTrustScores(t *testing.T) {
	reg := provider.NewRegistry()
	reg.Register(slowAdapter{tag: model.ProviderArxiv,
		sources: []model.ResearchSource{src(model.ProviderArxiv, "paper")}})
	reg.Register(slowAdapter{tag: model.ProviderYouTube,
		sources: []model.ResearchSource{src(model.ProviderYouTube, "video")}})
	reg.Register(slowAdapter{tag: model.Provider("mystery"),
		sources: []model.ResearchSource{src(model.Provider("mystery"), "odd")}})

	agg := New(reg, 2)
	out := agg.Fetch(context.Background(), "q", []model.Provider{
		model.ProviderArxiv, model.ProviderYouTube, model.Provider("mystery"),
	})

	require.Len(t, out, 3)
	assert.Equal(t, 5.0, out[0].TrustScore)
	assert.Equal(t, 2.0, out[1].TrustScore)
	assert.Equal(t, 3.0, out[2].TrustScore)
}

func TestFetch_DedupsSelection(t *testing.T) {
	reg := provider.NewRegistry()
	reg.Register(slowAdapter{tag: model.ProviderArxiv,
		sources: []model.ResearchSource{src(model.ProviderArxiv, "paper")}})

	agg := New(reg, 2)
	out := agg.Fetch(context.Background(), "q", []model.Provider{
		model.ProviderArxiv, model.ProviderArxiv, model.ProviderArxiv,
	})

	assert.Len(t, out, 1)
}

func TestFetch_UnregisteredProvidersSkipped(t *testing.T) {
	agg := New(provider.NewRegistry(), 2)

	out := agg.Fetch(context.Background(), "q", []model.Provider{model.ProviderArxiv})
	assert.Nil(t, out)
}

func TestAggregate_SelectsFromAnalysis(t *testing.T) {
	reg := provider.NewRegistry()
	reg.Register(slowAdapter{tag: model.ProviderArxiv,
		sources: []model.ResearchSource{src(model.ProviderArxiv, "paper")}})
	reg.Register(slowAdapter{tag: model.ProviderGoogleBooks,
		sources: []model.ResearchSource{src(model.ProviderGoogleBooks, "book")}})
	reg.Register(slowAdapter{tag: model.ProviderNewsAPI,
		sources: []model.ResearchSource{src(model.ProviderNewsAPI, "story")}})

	agg := New(reg, 2)
	sources, analysis := agg.Aggregate(context.Background(), "research on quantum computing theory", "Concept")

	assert.Equal(t, model.IntentAcademic, analysis.Intent)
	// Academic selection includes arXiv and the always-on books provider,
	// but not news.
	titles := make([]string, 0, len(sources))
	for _, s := range sources {
		titles = append(titles, s.Title)
	}
	assert.Contains(t, titles, "paper")
	assert.Contains(t, titles, "book")
	assert.NotContains(t, titles, "story")
}
