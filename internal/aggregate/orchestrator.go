// Package aggregate fans out to intelligence sources and merges their
// results into canonical records.
package aggregate

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/intel-cli/internal/model"
	"github.com/sells-group/intel-cli/internal/source"
)

// ErrNoData means every source for an operation failed or was skipped.
// Distinct from an empty result: an empty result is data.
var ErrNoData = eris.New("aggregate: no data available from any source")

// Outcome is one source's result for one aggregate call. Exactly one of
// Value or Err is meaningful.
type Outcome[T any] struct {
	Source string
	Value  T
	Err    error
}

// SourceRecords pairs a source name with the competitor rows it returned.
type SourceRecords struct {
	Source  string
	Records []model.RawCompetitor
}

// SourceSections pairs a source name with the metric sections it returned.
type SourceSections struct {
	Source   string
	Sections []model.PartialSection
}

// Orchestrator issues concurrent per-source calls for one logical operation.
// Each call gets its own timeout; one source's failure or timeout never
// blocks or fails the others. Failures mark the health tracker so later
// aggregate calls skip the source.
type Orchestrator struct {
	tracker *source.HealthTracker
	timeout time.Duration
}

// NewOrchestrator creates an orchestrator with the given per-source timeout.
func NewOrchestrator(tracker *source.HealthTracker, timeout time.Duration) *Orchestrator {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Orchestrator{tracker: tracker, timeout: timeout}
}

// Tracker exposes the health tracker for observability surfaces.
func (o *Orchestrator) Tracker() *source.HealthTracker { return o.tracker }

// FetchCompetitors queries every healthy competitor source concurrently.
// Returns ErrNoData only when zero sources succeeded.
func (o *Orchestrator) FetchCompetitors(ctx context.Context, domain string, sources []source.CompetitorSource) ([]SourceRecords, error) {
	healthy := make([]source.CompetitorSource, 0, len(sources))
	for _, s := range sources {
		if o.tracker.Healthy(s.Name()) {
			healthy = append(healthy, s)
		} else {
			zap.L().Debug("skipping degraded source",
				zap.String("source", s.Name()),
				zap.String("domain", domain),
			)
		}
	}
	if len(healthy) == 0 {
		return nil, ErrNoData
	}

	outcomes := fanOut(ctx, o.timeout, len(healthy), func(ctx context.Context, i int) Outcome[[]model.RawCompetitor] {
		s := healthy[i]
		records, err := s.FindCompetitors(ctx, domain)
		return Outcome[[]model.RawCompetitor]{Source: s.Name(), Value: records, Err: err}
	})

	var results []SourceRecords
	for _, out := range outcomes {
		if out.Err != nil {
			o.tracker.MarkFailure(out.Source)
			zap.L().Warn("competitor source failed",
				zap.String("source", out.Source),
				zap.String("domain", domain),
				zap.Error(out.Err),
			)
			continue
		}
		o.tracker.MarkSuccess(out.Source)
		// Empty is a valid answer: the source knows the domain, found nothing.
		results = append(results, SourceRecords{Source: out.Source, Records: out.Value})
	}

	if len(results) == 0 {
		return nil, ErrNoData
	}
	return results, nil
}

// FetchSections queries every healthy metrics source concurrently.
func (o *Orchestrator) FetchSections(ctx context.Context, domain string, sources []source.MetricsSource) ([]SourceSections, error) {
	healthy := make([]source.MetricsSource, 0, len(sources))
	for _, s := range sources {
		if o.tracker.Healthy(s.Name()) {
			healthy = append(healthy, s)
		}
	}
	if len(healthy) == 0 {
		return nil, ErrNoData
	}

	outcomes := fanOut(ctx, o.timeout, len(healthy), func(ctx context.Context, i int) Outcome[[]model.PartialSection] {
		s := healthy[i]
		sections, err := s.FetchSections(ctx, domain)
		return Outcome[[]model.PartialSection]{Source: s.Name(), Value: sections, Err: err}
	})

	var results []SourceSections
	for _, out := range outcomes {
		if out.Err != nil {
			o.tracker.MarkFailure(out.Source)
			zap.L().Warn("metrics source failed",
				zap.String("source", out.Source),
				zap.String("domain", domain),
				zap.Error(out.Err),
			)
			continue
		}
		o.tracker.MarkSuccess(out.Source)
		results = append(results, SourceSections{Source: out.Source, Sections: out.Value})
	}

	if len(results) == 0 {
		return nil, ErrNoData
	}
	return results, nil
}

// fanOut runs n calls concurrently, each under its own timeout, and captures
// every outcome. A task's timeout cancels only that task; siblings run to
// completion (bulkhead isolation).
func fanOut[T any](ctx context.Context, timeout time.Duration, n int, call func(ctx context.Context, i int) Outcome[T]) []Outcome[T] {
	outcomes := make([]Outcome[T], n)

	g := new(errgroup.Group)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			outcomes[i] = call(callCtx, i)
			return nil
		})
	}
	_ = g.Wait() // tasks never return errors; outcomes carry them

	return outcomes
}
