package provider

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/arqiv-labs/research-pipeline/internal/model"
	"github.com/arqiv-labs/research-pipeline/pkg/youtube"
)

// VideoAdapter normalizes video-index results; the channel name becomes
// the author and display detail. Empty list on failure.
type VideoAdapter struct {
	base
	client youtube.Client
}

// NewVideo creates the YouTube adapter.
func NewVideo(client youtube.Client, timeout time.Duration) *VideoAdapter {
	return &VideoAdapter{base: newBase(timeout), client: client}
}

// Provider returns the provider tag.
func (a *VideoAdapter) Provider() model.Provider { return model.ProviderYouTube }

// Fetch returns up to limit video records.
func (a *VideoAdapter) Fetch(ctx context.Context, query string, limit int) []model.ResearchSource {
	videos, err := call(ctx, a.base, func(ctx context.Context) ([]youtube.Video, error) {
		return a.client.Search(ctx, query, limit)
	})
	if err != nil {
		zap.L().Warn("video fetch failed", zap.String("query", query), zap.Error(err))
		return nil
	}

	sources := make([]model.ResearchSource, 0, len(videos))
	for _, v := range videos {
		title := cleanText(v.Title)
		desc := cleanText(v.Description)
		if title == "" || desc == "" {
			continue
		}
		watchURL := "https://www.youtube.com/watch?v=" + v.VideoID
		year := "Unknown"
		if len(v.PublishedAt) >= 4 {
			year = v.PublishedAt[:4]
		}
		sources = append(sources, model.ResearchSource{
			Provider:      model.ProviderYouTube,
			Detail:        v.ChannelTitle,
			Title:         title,
			Content:       desc,
			URL:           watchURL,
			PublishedDate: v.PublishedAt,
			Authors:       []string{v.ChannelTitle},
			Citation: fmt.Sprintf("%s (%s). %s [Video]. YouTube. %s",
				v.ChannelTitle, year, title, watchURL),
		})
	}
	return truncate(sources, limit)
}
