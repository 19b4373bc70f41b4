package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/intel-cli/internal/cache"
	"github.com/sells-group/intel-cli/internal/config"
	"github.com/sells-group/intel-cli/internal/intel"
	"github.com/sells-group/intel-cli/internal/score"
	"github.com/sells-group/intel-cli/internal/source"
)

// env bundles the wired service with whatever needs closing at exit.
type env struct {
	Service *intel.Service
	Cache   cache.Cache
}

func (e *env) Close() {
	if e.Cache != nil {
		if err := e.Cache.Close(); err != nil {
			zap.L().Warn("cache close failed", zap.Error(err))
		}
	}
}

// initService wires sources, cache, and scoring from the loaded config.
func initService(ctx context.Context) (*env, error) {
	store, err := openCache(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}

	scoreCfg := score.DefaultConfig()
	if cfg.Score.WeightsFile != "" {
		scoreCfg, err = score.LoadConfig(cfg.Score.WeightsFile)
		if err != nil {
			return nil, err
		}
	}

	registry := source.NewRegistry()
	for name, ep := range cfg.Sources.Endpoints {
		if ep.Disabled {
			zap.L().Debug("source disabled", zap.String("source", name))
			continue
		}
		opts := source.HTTPBaseOptions{
			Name:          name,
			BaseURL:       ep.BaseURL,
			APIKey:        ep.APIKey,
			Timeout:       cfg.Fetch.SourceTimeout,
			RatePerSecond: ep.RatePerSecond,
			Burst:         ep.Burst,
			MaxRetries:    cfg.Fetch.MaxRetries,
		}
		if ep.Provides(string(source.CapCompetitors)) {
			registry.RegisterCompetitor(source.NewHTTPCompetitorSource(opts))
		}
		if ep.Provides(string(source.CapMetrics)) {
			registry.RegisterMetrics(source.NewHTTPMetricsSource(opts))
		}
	}

	svc := intel.NewService(intel.Options{
		Registry:         registry,
		Cache:            store,
		Score:            scoreCfg,
		SourceTimeout:    cfg.Fetch.SourceTimeout,
		CompetitorTTL:    cfg.Cache.CompetitorTTL,
		MetricsTTL:       cfg.Cache.MetricsTTL,
		BatchConcurrency: cfg.Batch.Concurrency,
	})

	return &env{Service: svc, Cache: store}, nil
}

func openCache(ctx context.Context, c config.CacheConfig) (cache.Cache, error) {
	switch c.Driver {
	case "", "memory":
		return cache.NewMemory(), nil
	case "sqlite":
		if c.DatabaseURL == "" {
			return nil, eris.New("cache: sqlite driver requires cache.database_url")
		}
		return cache.NewSQLite(c.DatabaseURL)
	case "postgres":
		if c.DatabaseURL == "" {
			return nil, eris.New("cache: postgres driver requires cache.database_url")
		}
		return cache.NewPostgres(ctx, c.DatabaseURL)
	default:
		return nil, eris.Errorf("cache: unknown driver %q", c.Driver)
	}
}
