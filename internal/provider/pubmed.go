package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/arqiv-labs/research-pipeline/internal/model"
	"github.com/arqiv-labs/research-pipeline/pkg/pubmed"
)

// PubMedAdapter normalizes biomedical literature via the two-step
// id-search then summary-fetch lookup. Either step failing, or an empty
// id list, degrades to the placeholder record.
type PubMedAdapter struct {
	base
	client pubmed.Client
}

// NewPubMed creates the PubMed adapter.
func NewPubMed(client pubmed.Client, timeout time.Duration) *PubMedAdapter {
	return &PubMedAdapter{base: newBase(timeout), client: client}
}

// Provider returns the provider tag.
func (a *PubMedAdapter) Provider() model.Provider { return model.ProviderPubMed }

// Fetch returns up to limit biomedical records.
func (a *PubMedAdapter) Fetch(ctx context.Context, query string, limit int) []model.ResearchSource {
	articles, err := call(ctx, a.base, func(ctx context.Context) ([]pubmed.Article, error) {
		ids, err := a.client.Search(ctx, query, limit)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return nil, nil
		}
		return a.client.Summaries(ctx, ids)
	})
	if err != nil {
		zap.L().Warn("pubmed fetch failed", zap.String("query", query), zap.Error(err))
		return truncate(a.placeholder(model.ProviderPubMed, query), limit)
	}
	if len(articles) == 0 {
		return truncate(a.placeholder(model.ProviderPubMed, query), limit)
	}

	sources := make([]model.ResearchSource, 0, len(articles))
	for _, art := range articles {
		title := cleanText(art.Title)
		if title == "" {
			title = "PubMed Article " + art.PMID
		}
		journal := art.Journal
		if journal == "" {
			journal = "Medical Journal"
		}
		authors := "Various"
		if len(art.Authors) > 0 {
			authors = strings.Join(art.Authors, ", ")
		}
		year := "Unknown"
		if len(art.PubDate) >= 4 {
			year = art.PubDate[:4]
		}
		sources = append(sources, model.ResearchSource{
			Provider:      model.ProviderPubMed,
			Title:         title,
			Content:       fmt.Sprintf("%s. Authors: %s. Published in %s.", title, authors, journal),
			URL:           fmt.Sprintf("https://pubmed.ncbi.nlm.nih.gov/%s/", art.PMID),
			PublishedDate: art.PubDate,
			Authors:       art.Authors,
			Citation:      fmt.Sprintf("%s (%s). %s. %s. PMID: %s", authors, year, title, journal, art.PMID),
		})
	}
	return truncate(sources, limit)
}
