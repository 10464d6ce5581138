package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/arqiv-labs/research-pipeline/internal/model"
	"github.com/arqiv-labs/research-pipeline/pkg/googlebooks"
)

// BooksAdapter normalizes book-index results; empty list on failure.
type BooksAdapter struct {
	base
	client googlebooks.Client
}

// NewBooks creates the Google Books adapter.
func NewBooks(client googlebooks.Client, timeout time.Duration) *BooksAdapter {
	return &BooksAdapter{base: newBase(timeout), client: client}
}

// Provider returns the provider tag.
func (a *BooksAdapter) Provider() model.Provider { return model.ProviderGoogleBooks }

// Fetch returns up to limit book records.
func (a *BooksAdapter) Fetch(ctx context.Context, query string, limit int) []model.ResearchSource {
	volumes, err := call(ctx, a.base, func(ctx context.Context) ([]googlebooks.Volume, error) {
		return a.client.Volumes(ctx, query, limit)
	})
	if err != nil {
		zap.L().Warn("books fetch failed", zap.String("query", query), zap.Error(err))
		return nil
	}

	sources := make([]model.ResearchSource, 0, len(volumes))
	for _, v := range volumes {
		title := cleanText(v.Title)
		desc := cleanText(v.Description)
		if title == "" || desc == "" {
			continue
		}
		authors := "Unknown Author"
		if len(v.Authors) > 0 {
			authors = strings.Join(v.Authors, ", ")
		}
		publisher := v.Publisher
		if publisher == "" {
			publisher = "Unknown Publisher"
		}
		year := "Unknown Year"
		if len(v.PublishedDate) >= 4 {
			year = v.PublishedDate[:4]
		}
		sources = append(sources, model.ResearchSource{
			Provider:      model.ProviderGoogleBooks,
			Title:         title,
			Content:       desc,
			URL:           v.InfoLink,
			PublishedDate: v.PublishedDate,
			Authors:       v.Authors,
			Citation:      fmt.Sprintf("%s (%s). %s. %s.", authors, year, title, publisher),
		})
	}
	return truncate(sources, limit)
}
