package intel

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/intel-cli/internal/aggregate"
	"github.com/sells-group/intel-cli/internal/cache"
	"github.com/sells-group/intel-cli/internal/model"
	"github.com/sells-group/intel-cli/internal/score"
)

// GetDomainMetrics aggregates metric sections for a domain and attaches the
// health score and confidence. When every source fails the result is an
// empty zero-health bundle, not an error: callers always get a bundle they
// can render. A total outage is never cached; the next call re-probes the
// sources instead of serving the empty bundle for the whole TTL.
func (s *Service) GetDomainMetrics(ctx context.Context, domain string) (*model.MetricsBundle, error) {
	subject, err := model.CanonicalDomain(domain)
	if err != nil {
		return nil, &ValidationError{Field: "domain", Reason: "empty or unparseable"}
	}

	key := cache.Key("metrics", subject)
	bundle, _, err := cache.Do(ctx, s.cache, key, s.metricsTTL,
		func(ctx context.Context) (*model.MetricsBundle, error) {
			return s.fetchMetrics(ctx, subject)
		})
	if err != nil {
		if eris.Is(err, aggregate.ErrNoData) {
			return s.emptyBundle(subject), nil
		}
		return nil, err
	}
	return bundle, nil
}

func (s *Service) fetchMetrics(ctx context.Context, subject string) (*model.MetricsBundle, error) {
	lists, err := s.orchestrator.FetchSections(ctx, subject, s.registry.MetricsSources())
	if err != nil {
		if !eris.Is(err, aggregate.ErrNoData) {
			zap.L().Warn("metrics aggregation failed", zap.String("domain", subject), zap.Error(err))
		}
		return nil, err
	}

	bundle := aggregate.MergeSections(subject, lists)
	bundle.HealthScore = score.HealthScore(s.scoreCfg.Health, bundle)
	bundle.Confidence = score.BundleConfidence(s.scoreCfg, bundle)
	bundle.LastUpdated = s.nowFunc().UTC()
	return bundle, nil
}

func (s *Service) emptyBundle(subject string) *model.MetricsBundle {
	b := &model.MetricsBundle{Domain: subject}
	b.Confidence = score.BundleConfidence(s.scoreCfg, b)
	b.LastUpdated = s.nowFunc().UTC()
	return b
}

// GetDomainMetricsBatch fetches metrics for several domains with bounded
// concurrency. One domain's failure never fails the batch: that domain maps
// to an empty bundle. Results are keyed by the caller's input strings.
func (s *Service) GetDomainMetricsBatch(ctx context.Context, domains []string) (map[string]*model.MetricsBundle, error) {
	results := make(map[string]*model.MetricsBundle, len(domains))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)
	for _, d := range domains {
		d := d
		g.Go(func() error {
			bundle, err := s.GetDomainMetrics(ctx, d)
			if err != nil {
				zap.L().Warn("batch domain skipped", zap.String("domain", d), zap.Error(err))
				bundle = s.emptyBundle(model.MustCanonicalDomain(d))
			}
			mu.Lock()
			results[d] = bundle
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
