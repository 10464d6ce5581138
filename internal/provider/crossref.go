package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/arqiv-labs/research-pipeline/internal/model"
	"github.com/arqiv-labs/research-pipeline/pkg/crossref"
)

// CrossRefAdapter normalizes DOI-bearing records. Works without an
// abstract are skipped; empty list on failure.
type CrossRefAdapter struct {
	base
	client crossref.Client
}

// NewCrossRef creates the CrossRef adapter.
func NewCrossRef(client crossref.Client, timeout time.Duration) *CrossRefAdapter {
	return &CrossRefAdapter{base: newBase(timeout), client: client}
}

// Provider returns the provider tag.
func (a *CrossRefAdapter) Provider() model.Provider { return model.ProviderCrossRef }

// Fetch returns up to limit DOI-bearing records.
func (a *CrossRefAdapter) Fetch(ctx context.Context, query string, limit int) []model.ResearchSource {
	works, err := call(ctx, a.base, func(ctx context.Context) ([]crossref.Work, error) {
		return a.client.Works(ctx, query, limit)
	})
	if err != nil {
		zap.L().Warn("crossref fetch failed", zap.String("query", query), zap.Error(err))
		return nil
	}

	sources := make([]model.ResearchSource, 0, len(works))
	for _, w := range works {
		title := cleanText(w.Title)
		abstract := cleanText(w.Abstract)
		if title == "" || abstract == "" {
			continue
		}
		venue := w.ContainerTitle
		if venue == "" {
			venue = "Academic Journal"
		}
		year := "Unknown Year"
		if w.Year > 0 {
			year = fmt.Sprintf("%d", w.Year)
		}
		sources = append(sources, model.ResearchSource{
			Provider:      model.ProviderCrossRef,
			Detail:        venue,
			Title:         title,
			Content:       abstract,
			URL:           w.URL,
			PublishedDate: w.PublishedDate,
			Authors:       w.Authors,
			DOI:           w.DOI,
			Citation: fmt.Sprintf("%s (%s). %s. %s. DOI: %s",
				strings.Join(w.Authors, ", "), year, title, venue, w.DOI),
		})
	}
	return truncate(sources, limit)
}
