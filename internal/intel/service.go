// Package intel is the facade over aggregation, caching, and scoring. CLI
// commands and HTTP handlers call this package only.
package intel

import (
	"fmt"
	"time"

	"github.com/sells-group/intel-cli/internal/aggregate"
	"github.com/sells-group/intel-cli/internal/cache"
	"github.com/sells-group/intel-cli/internal/score"
	"github.com/sells-group/intel-cli/internal/source"
)

// ErrNoData is surfaced when every source for an operation failed or was
// skipped. An empty result is not ErrNoData.
var ErrNoData = aggregate.ErrNoData

// ValidationError marks bad caller input, rejected before any source call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("intel: invalid %s: %s", e.Field, e.Reason)
}

// Options wires a Service. Zero-value fields fall back to sane defaults; a
// nil Cache disables memoization entirely.
type Options struct {
	Registry *source.Registry
	Tracker  *source.HealthTracker
	Cache    cache.Cache
	Score    score.Config

	SourceTimeout time.Duration
	CompetitorTTL time.Duration
	MetricsTTL    time.Duration

	// BatchConcurrency bounds the multi-domain metrics fan-out.
	BatchConcurrency int
}

// Service is the competitive-intelligence facade.
type Service struct {
	registry     *source.Registry
	tracker      *source.HealthTracker
	orchestrator *aggregate.Orchestrator
	cache        cache.Cache
	scoreCfg     score.Config
	opportunity  *score.OpportunityScorer

	competitorTTL    time.Duration
	metricsTTL       time.Duration
	batchConcurrency int

	nowFunc func() time.Time
}

// NewService builds the facade from its wired dependencies.
func NewService(opts Options) *Service {
	if opts.Registry == nil {
		opts.Registry = source.NewRegistry()
	}
	if opts.Tracker == nil {
		opts.Tracker = source.NewHealthTracker()
	}
	if opts.CompetitorTTL == 0 {
		opts.CompetitorTTL = 24 * time.Hour
	}
	if opts.MetricsTTL == 0 {
		opts.MetricsTTL = 12 * time.Hour
	}
	if opts.BatchConcurrency <= 0 {
		opts.BatchConcurrency = 4
	}
	if opts.Score.ConfidenceFloor == 0 {
		opts.Score = score.DefaultConfig()
	}

	return &Service{
		registry:         opts.Registry,
		tracker:          opts.Tracker,
		orchestrator:     aggregate.NewOrchestrator(opts.Tracker, opts.SourceTimeout),
		cache:            opts.Cache,
		scoreCfg:         opts.Score,
		opportunity:      score.NewOpportunityScorer(opts.Score.Opportunity),
		competitorTTL:    opts.CompetitorTTL,
		metricsTTL:       opts.MetricsTTL,
		batchConcurrency: opts.BatchConcurrency,
		nowFunc:          time.Now,
	}
}

// Registry exposes the source registry for startup wiring.
func (s *Service) Registry() *source.Registry { return s.registry }

// SourceHealth reports current per-source availability.
func (s *Service) SourceHealth() map[string]source.HealthState {
	return s.tracker.Snapshot()
}

// ResetSourceHealth returns every source to healthy so the next aggregate
// call re-probes degraded providers.
func (s *Service) ResetSourceHealth() {
	s.tracker.Reset()
}
