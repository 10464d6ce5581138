package provider

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/arqiv-labs/research-pipeline/internal/model"
	"github.com/arqiv-labs/research-pipeline/pkg/newsapi"
)

// NewsAdapter normalizes news-index results. News is supplementary
// context, so on a missing credential or any failure it returns an
// empty list rather than a placeholder.
type NewsAdapter struct {
	base
	client newsapi.Client
	hasKey bool
}

// NewNews creates the news adapter. hasKey false short-circuits every
// fetch to an empty list without issuing a request.
func NewNews(client newsapi.Client, hasKey bool, timeout time.Duration) *NewsAdapter {
	return &NewsAdapter{base: newBase(timeout), client: client, hasKey: hasKey}
}

// Provider returns the provider tag.
func (a *NewsAdapter) Provider() model.Provider { return model.ProviderNewsAPI }

// Fetch returns up to limit news records.
func (a *NewsAdapter) Fetch(ctx context.Context, query string, limit int) []model.ResearchSource {
	if !a.hasKey {
		return nil
	}

	articles, err := call(ctx, a.base, func(ctx context.Context) ([]newsapi.Article, error) {
		return a.client.Everything(ctx, query, limit)
	})
	if err != nil {
		zap.L().Warn("news fetch failed", zap.String("query", query), zap.Error(err))
		return nil
	}

	sources := make([]model.ResearchSource, 0, len(articles))
	for _, art := range articles {
		title := cleanText(art.Title)
		desc := cleanText(art.Description)
		if title == "" || desc == "" {
			continue
		}
		content := desc
		if extra := cleanText(art.Content); extra != "" {
			content += " " + extra
		}
		outlet := art.SourceName
		if outlet == "" {
			outlet = "Unknown"
		}
		author := art.Author
		if author == "" {
			author = "Unknown Author"
		}
		year := "Unknown"
		if len(art.PublishedAt) >= 4 {
			year = art.PublishedAt[:4]
		}
		var authors []string
		if art.Author != "" {
			authors = []string{art.Author}
		}
		sources = append(sources, model.ResearchSource{
			Provider:      model.ProviderNewsAPI,
			Detail:        outlet,
			Title:         title,
			Content:       content,
			URL:           art.URL,
			PublishedDate: art.PublishedAt,
			Authors:       authors,
			Citation:      author + " (" + year + "). " + title + ". " + outlet + ". " + art.URL,
		})
	}
	return truncate(sources, limit)
}
