package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/arqiv-labs/research-pipeline/internal/aggregate"
	"github.com/arqiv-labs/research-pipeline/internal/cache"
	"github.com/arqiv-labs/research-pipeline/internal/generate"
	"github.com/arqiv-labs/research-pipeline/internal/provider"
	"github.com/arqiv-labs/research-pipeline/internal/research"
	"github.com/arqiv-labs/research-pipeline/internal/store"
	"github.com/arqiv-labs/research-pipeline/pkg/arxiv"
	"github.com/arqiv-labs/research-pipeline/pkg/crossref"
	"github.com/arqiv-labs/research-pipeline/pkg/googlebooks"
	"github.com/arqiv-labs/research-pipeline/pkg/newsapi"
	"github.com/arqiv-labs/research-pipeline/pkg/openrouter"
	"github.com/arqiv-labs/research-pipeline/pkg/pubmed"
	"github.com/arqiv-labs/research-pipeline/pkg/semanticscholar"
	"github.com/arqiv-labs/research-pipeline/pkg/wikimedia"
	"github.com/arqiv-labs/research-pipeline/pkg/wikipedia"
	"github.com/arqiv-labs/research-pipeline/pkg/youtube"
)

// pipelineEnv holds the initialized service and its backing resources
// for the serve/research/saved commands.
type pipelineEnv struct {
	Service *research.Service
	Store   store.Store
	Cache   *cache.Cache
}

// Close releases resources held by the pipeline environment.
func (pe *pipelineEnv) Close() {
	if pe.Cache != nil {
		_ = pe.Cache.Close()
	}
	if pe.Store != nil {
		_ = pe.Store.Close()
	}
}

// initPipeline builds the provider registry, generation backend, cache,
// and store from config. Callers should defer env.Close().
func initPipeline(ctx context.Context) (*pipelineEnv, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if st != nil {
		if err := st.Migrate(ctx); err != nil {
			_ = st.Close()
			return nil, eris.Wrap(err, "migrate store")
		}
	}

	timeout := time.Duration(cfg.Providers.TimeoutSecs) * time.Second

	reg := provider.NewRegistry()
	reg.Register(provider.NewArxiv(arxiv.NewClient(), timeout))
	reg.Register(provider.NewSemanticScholar(semanticscholar.NewClient(), timeout))
	reg.Register(provider.NewPubMed(pubmed.NewClient(), timeout))
	reg.Register(provider.NewNews(newsapi.NewClient(cfg.Providers.NewsAPIKey), cfg.Providers.NewsAPIKey != "", timeout))
	reg.Register(provider.NewBooks(googlebooks.NewClient(cfg.Providers.GoogleBooksKey), timeout))
	reg.Register(provider.NewVideo(youtube.NewClient(cfg.Providers.YouTubeKey), timeout))

	var crOpts []crossref.Option
	if cfg.Providers.CrossRefMailto != "" {
		crOpts = append(crOpts, crossref.WithMailto(cfg.Providers.CrossRefMailto))
	}
	reg.Register(provider.NewCrossRef(crossref.NewClient(crOpts...), timeout))

	agg := aggregate.New(reg, cfg.Providers.Budget)

	gen := initGenerator()
	if gen == nil {
		zap.L().Warn("no generation credential set, runs return the composed prompt only")
	}

	c := cache.New(cfg.Cache.Addr, cfg.Cache.Password, time.Duration(cfg.Cache.TTLMins)*time.Minute)
	if c != nil {
		zap.L().Info("result cache enabled", zap.String("addr", cfg.Cache.Addr))
	}

	svc := research.New(agg, wikipedia.NewClient(), wikimedia.NewClient(), gen, c, st)
	return &pipelineEnv{Service: svc, Store: st, Cache: c}, nil
}

// initGenerator selects the generation backend from config. Returns nil
// when no credential is configured.
func initGenerator() generate.Generator {
	switch cfg.Generation.Backend {
	case "anthropic":
		if cfg.Generation.AnthropicKey == "" {
			return nil
		}
		return generate.NewAnthropic(cfg.Generation.AnthropicKey, cfg.Generation.AnthropicModel)
	default:
		if cfg.Generation.OpenRouterKey == "" {
			return nil
		}
		client := openrouter.NewClient(cfg.Generation.OpenRouterKey,
			openrouter.WithModel(cfg.Generation.OpenRouterModel))
		return generate.NewOpenRouter(client, cfg.Generation.OpenRouterModel)
	}
}

// initStore opens the configured persistence backend. Driver "none"
// disables saving.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "none":
		return nil, nil
	case "postgres":
		if cfg.Store.DatabaseURL == "" {
			return nil, eris.New("store.database_url required for postgres driver")
		}
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	case "sqlite", "":
		return store.NewSQLite(cfg.Store.SQLitePath)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
