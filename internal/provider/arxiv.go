package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/arqiv-labs/research-pipeline/internal/model"
	"github.com/arqiv-labs/research-pipeline/pkg/arxiv"
)

// ArxivAdapter normalizes arXiv preprint results. Failure and empty
// result sets both degrade to a placeholder record so academic queries
// always carry some preprint-index context.
type ArxivAdapter struct {
	base
	client arxiv.Client
}

// NewArxiv creates the arXiv adapter.
func NewArxiv(client arxiv.Client, timeout time.Duration) *ArxivAdapter {
	return &ArxivAdapter{base: newBase(timeout), client: client}
}

// Provider returns the provider tag.
func (a *ArxivAdapter) Provider() model.Provider { return model.ProviderArxiv }

// Fetch returns up to limit preprint records.
func (a *ArxivAdapter) Fetch(ctx context.Context, query string, limit int) []model.ResearchSource {
	papers, err := call(ctx, a.base, func(ctx context.Context) ([]arxiv.Paper, error) {
		return a.client.Search(ctx, query, limit)
	})
	if err != nil {
		zap.L().Warn("arxiv fetch failed", zap.String("query", query), zap.Error(err))
		return truncate(a.placeholder(model.ProviderArxiv, query), limit)
	}

	sources := make([]model.ResearchSource, 0, len(papers))
	for _, p := range papers {
		title := cleanText(p.Title)
		summary := cleanText(p.Summary)
		if title == "" || summary == "" {
			continue
		}
		src := model.ResearchSource{
			Provider: model.ProviderArxiv,
			Title:    title,
			Content:  summary,
			URL:      p.ID,
			Authors:  p.Authors,
			Citation: fmt.Sprintf("%s (%d). %s. arXiv. %s",
				strings.Join(p.Authors, ", "), p.Published.Year(), title, p.ID),
		}
		if !p.Published.IsZero() {
			src.PublishedDate = p.Published.Format(time.RFC3339)
		}
		sources = append(sources, src)
	}
	if len(sources) == 0 {
		return truncate(a.placeholder(model.ProviderArxiv, query), limit)
	}
	return truncate(sources, limit)
}
