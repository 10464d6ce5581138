// Package research orchestrates the full pipeline for one query: intent
// analysis, provider fan-out, encyclopedia context, prompt composition,
// text generation, and follow-up suggestions.
package research

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/arqiv-labs/research-pipeline/internal/aggregate"
	"github.com/arqiv-labs/research-pipeline/internal/cache"
	"github.com/arqiv-labs/research-pipeline/internal/compose"
	"github.com/arqiv-labs/research-pipeline/internal/generate"
	"github.com/arqiv-labs/research-pipeline/internal/model"
	"github.com/arqiv-labs/research-pipeline/internal/store"
	"github.com/arqiv-labs/research-pipeline/pkg/wikimedia"
	"github.com/arqiv-labs/research-pipeline/pkg/wikipedia"
)

// maxImages caps how many Commons images attach to one result.
const maxImages = 4

// ErrEmptyQuery rejects a request with no query text.
var ErrEmptyQuery = eris.New("research: empty query")

// Request is one research run.
type Request struct {
	Query       string             `json:"query"`
	Category    string             `json:"category,omitempty"`
	Depth       string             `json:"depth,omitempty"`
	Preferences *model.Preferences `json:"preferences,omitempty"`
	Regenerate  bool               `json:"regenerate,omitempty"`
}

// Result is the assembled output of a run.
type Result struct {
	Query       string                 `json:"query"`
	Category    string                 `json:"category"`
	Depth       string                 `json:"depth"`
	Analysis    model.PromptAnalysis   `json:"analysis"`
	Sources     []model.ResearchSource `json:"sources"`
	Prompt      string                 `json:"prompt"`
	Response    string                 `json:"response"`
	Wiki        model.WikiSummary      `json:"wiki"`
	Images      []model.Image          `json:"images,omitempty"`
	Suggestions []string               `json:"suggestions,omitempty"`
	Cached      bool                   `json:"cached"`
}

// Service wires the pipeline stages together. Generator may be nil, in
// which case runs stop at the composed prompt. Cache and Store may be
// nil to disable those layers.
type Service struct {
	agg       *aggregate.Aggregator
	wiki      wikipedia.Client
	commons   wikimedia.Client
	gen       generate.Generator
	suggester *generate.Suggester
	cache     *cache.Cache
	store     store.Store
}

// New assembles a Service.
func New(agg *aggregate.Aggregator, wiki wikipedia.Client, commons wikimedia.Client,
	gen generate.Generator, c *cache.Cache, st store.Store) *Service {
	var sg *generate.Suggester
	if gen != nil {
		sg = generate.NewSuggester(gen)
	}
	return &Service{
		agg:       agg,
		wiki:      wiki,
		commons:   commons,
		gen:       gen,
		suggester: sg,
		cache:     c,
		store:     st,
	}
}

// Run executes the pipeline for one request. Provider and encyclopedia
// failures degrade to partial results; only an empty query or a failed
// generation call is an error.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if req.Category == "" {
		req.Category = model.CategoryConcept
	}
	if req.Depth == "" {
		req.Depth = model.DepthDetailedResearch
	}
	log := zap.L().With(zap.String("query", query), zap.String("category", req.Category))

	key := cache.Key(query, req.Category, req.Depth)
	if !req.Regenerate {
		var cached Result
		if s.cache.Get(ctx, key, &cached) {
			log.Info("research served from cache")
			cached.Cached = true
			return &cached, nil
		}
	}

	res := &Result{Query: query, Category: req.Category, Depth: req.Depth}

	// Context gathering runs concurrently; each branch tolerates its
	// own failure.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res.Sources, res.Analysis = s.agg.Aggregate(gctx, query, req.Category)
		return nil
	})
	g.Go(func() error {
		if s.wiki == nil {
			return nil
		}
		sum, err := s.wiki.Summary(gctx, query)
		if err != nil {
			log.Warn("wikipedia summary failed", zap.Error(err))
			return nil
		}
		res.Wiki = model.WikiSummary{Extract: sum.Extract, Thumbnail: sum.Thumbnail}
		return nil
	})
	var commonsImgs []model.Image
	g.Go(func() error {
		if s.commons == nil {
			return nil
		}
		imgs, err := s.commons.SearchImages(gctx, query, maxImages)
		if err != nil {
			log.Warn("commons image search failed", zap.Error(err))
			return nil
		}
		for _, img := range imgs {
			commonsImgs = append(commonsImgs, model.Image{
				URL:    img.URL,
				Alt:    query,
				Source: "Wikimedia Commons",
				Credit: img.Description,
			})
		}
		return nil
	})
	g.Wait() //nolint:errcheck // branches never return errors

	// The Wikipedia thumbnail leads the image list, Commons results follow.
	if res.Wiki.Thumbnail != "" {
		res.Images = append(res.Images, model.Image{
			URL:    res.Wiki.Thumbnail,
			Alt:    query,
			Source: "Wikipedia",
			Credit: "Image from Wikipedia",
		})
	}
	res.Images = append(res.Images, commonsImgs...)
	if len(res.Images) > maxImages {
		res.Images = res.Images[:maxImages]
	}

	res.Prompt = compose.Prompt(compose.Input{
		Query:        query,
		Category:     req.Category,
		Depth:        req.Depth,
		WikiExtract:  res.Wiki.Extract,
		Sources:      res.Sources,
		Preferences:  req.Preferences,
		Analysis:     res.Analysis,
		Regeneration: req.Regenerate,
	})

	if s.gen == nil {
		// No generation backend configured; the composed prompt is
		// the deliverable.
		res.Response = res.Prompt
		res.Suggestions = generate.Fallback(req.Category)
		return res, nil
	}

	temp := generate.DefaultTemperature
	if req.Regenerate {
		temp = generate.RegenerateTemperature
	}
	text, err := s.gen.Generate(ctx, res.Prompt, generate.Options{Temperature: temp})
	if err != nil {
		return nil, eris.Wrap(err, "research: generation")
	}
	res.Response = text + compose.Citations(res.Sources)
	res.Suggestions = s.suggester.Suggest(ctx, query, req.Category)

	if !req.Regenerate {
		s.cache.Put(ctx, key, res)
	}
	log.Info("research complete",
		zap.Int("sources", len(res.Sources)),
		zap.Int("images", len(res.Images)))
	return res, nil
}

// Save persists a completed result for a user. Returns
// store.ErrAlreadySaved when the same (topic, category, depth) is
// already saved.
func (s *Service) Save(ctx context.Context, userID string, res *Result) (*model.SavedResearch, error) {
	if s.store == nil {
		return nil, eris.New("research: no store configured")
	}
	return s.store.Save(ctx, model.SavedResearch{
		UserID:      userID,
		Topic:       res.Query,
		Category:    res.Category,
		Depth:       res.Depth,
		Response:    res.Response,
		WikiImage:   res.Wiki.Thumbnail,
		Images:      res.Images,
		Suggestions: res.Suggestions,
	})
}

// Saved lists a user's saved research, newest first.
func (s *Service) Saved(ctx context.Context, userID string, limit int) ([]model.SavedResearch, error) {
	if s.store == nil {
		return nil, eris.New("research: no store configured")
	}
	return s.store.ListByUser(ctx, userID, limit)
}

// Delete removes one saved record owned by the user.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if s.store == nil {
		return eris.New("research: no store configured")
	}
	return s.store.Delete(ctx, userID, id)
}
