// Package source defines the contracts for external intelligence providers
// and tracks their availability.
//
// Concrete wire formats live behind these interfaces; the aggregation core
// only sees RawCompetitor rows and PartialSection payloads.
package source

import (
	"context"
	"sort"
	"sync"

	"github.com/sells-group/intel-cli/internal/model"
)

// Capability names one category of intelligence a source can provide.
type Capability string

const (
	CapCompetitors Capability = "competitors"
	CapMetrics     Capability = "metrics"
)

// CompetitorSource discovers competing domains. An empty slice with a nil
// error means the source recognized the domain but found nothing. That is
// data, not a failure.
type CompetitorSource interface {
	Name() string
	FindCompetitors(ctx context.Context, domain string) ([]model.RawCompetitor, error)
}

// MetricsSource fetches one or more metric sections for a domain.
type MetricsSource interface {
	Name() string
	FetchSections(ctx context.Context, domain string) ([]model.PartialSection, error)
}

// Registry holds the configured sources by capability. Safe for concurrent
// readers; registration happens at startup.
type Registry struct {
	mu          sync.RWMutex
	competitors map[string]CompetitorSource
	metrics     map[string]MetricsSource
}

// NewRegistry creates an empty source registry.
func NewRegistry() *Registry {
	return &Registry{
		competitors: make(map[string]CompetitorSource),
		metrics:     make(map[string]MetricsSource),
	}
}

// RegisterCompetitor adds a competitor-discovery source.
func (r *Registry) RegisterCompetitor(s CompetitorSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.competitors[s.Name()] = s
}

// RegisterMetrics adds a metrics source.
func (r *Registry) RegisterMetrics(s MetricsSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metrics[s.Name()] = s
}

// CompetitorSources returns the registered competitor sources in name order.
func (r *Registry) CompetitorSources() []CompetitorSource {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]CompetitorSource, 0, len(r.competitors))
	for _, s := range r.competitors {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// MetricsSources returns the registered metrics sources in name order.
func (r *Registry) MetricsSources() []MetricsSource {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]MetricsSource, 0, len(r.metrics))
	for _, s := range r.metrics {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Names lists all registered source names for the given capability.
func (r *Registry) Names(c Capability) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var names []string
	switch c {
	case CapCompetitors:
		for name := range r.competitors {
			names = append(names, name)
		}
	case CapMetrics:
		for name := range r.metrics {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
