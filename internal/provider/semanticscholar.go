package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/arqiv-labs/research-pipeline/internal/model"
	"github.com/arqiv-labs/research-pipeline/pkg/semanticscholar"
)

// SemanticScholarAdapter normalizes citation-graph results. The citation
// count goes into the display detail, not the provider tag.
type SemanticScholarAdapter struct {
	base
	client semanticscholar.Client
}

// NewSemanticScholar creates the Semantic Scholar adapter.
func NewSemanticScholar(client semanticscholar.Client, timeout time.Duration) *SemanticScholarAdapter {
	return &SemanticScholarAdapter{base: newBase(timeout), client: client}
}

// Provider returns the provider tag.
func (a *SemanticScholarAdapter) Provider() model.Provider { return model.ProviderSemanticScholar }

// Fetch returns up to limit citation-graph records.
func (a *SemanticScholarAdapter) Fetch(ctx context.Context, query string, limit int) []model.ResearchSource {
	papers, err := call(ctx, a.base, func(ctx context.Context) ([]semanticscholar.Paper, error) {
		return a.client.Search(ctx, query, limit)
	})
	if err != nil {
		zap.L().Warn("semantic scholar fetch failed", zap.String("query", query), zap.Error(err))
		return truncate(a.placeholder(model.ProviderSemanticScholar, query), limit)
	}

	sources := make([]model.ResearchSource, 0, len(papers))
	for _, p := range papers {
		title := cleanText(p.Title)
		abstract := cleanText(p.Abstract)
		if title == "" || abstract == "" {
			continue
		}
		year := "Unknown"
		published := ""
		if p.Year > 0 {
			year = fmt.Sprintf("%d", p.Year)
			published = fmt.Sprintf("%d-01-01", p.Year)
		}
		sources = append(sources, model.ResearchSource{
			Provider:      model.ProviderSemanticScholar,
			Detail:        fmt.Sprintf("%d citations", p.CitationCount),
			Title:         title,
			Content:       abstract,
			URL:           p.URL,
			PublishedDate: published,
			Authors:       p.Authors,
			Citation: fmt.Sprintf("%s (%s). %s. Semantic Scholar. %s",
				strings.Join(p.Authors, ", "), year, title, p.URL),
		})
	}
	if len(sources) == 0 {
		return truncate(a.placeholder(model.ProviderSemanticScholar, query), limit)
	}
	return truncate(sources, limit)
}
