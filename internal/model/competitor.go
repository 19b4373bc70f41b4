package model

import (
	"sort"
	"time"
)

// Well-known metric keys shared across providers. Providers may emit
// additional keys; merging treats every key uniformly.
const (
	MetricCommonKeywords = "common_keywords"
	MetricTrafficShare   = "traffic_share"
	MetricBacklinks      = "backlinks"
	MetricDomainScore    = "domain_score"
)

// RawCompetitor is one provider's view of a competitor, before merging.
type RawCompetitor struct {
	Domain   string             `json:"domain"`
	Metrics  map[string]float64 `json:"metrics,omitempty"`
	Keywords []string           `json:"keywords,omitempty"`
	Industry string             `json:"industry,omitempty"`
	SeenAt   time.Time          `json:"seen_at,omitempty"`
}

// CompetitorRecord is the merged, canonical view of a competitor across all
// sources that reported it.
type CompetitorRecord struct {
	Domain   string             `json:"domain"`
	Sources  []string           `json:"sources"`
	Metrics  map[string]float64 `json:"metrics,omitempty"`
	Keywords []string           `json:"keywords,omitempty"`
	Industry string             `json:"industry,omitempty"`

	// Relevance to the requesting subject, in [0,1].
	Relevance float64 `json:"relevance"`

	SeenAt time.Time `json:"seen_at,omitempty"`
}

// Metric returns the named metric, or 0 when the record does not carry it.
func (r *CompetitorRecord) Metric(key string) float64 {
	return r.Metrics[key]
}

// HasSource reports whether name already contributed to this record.
func (r *CompetitorRecord) HasSource(name string) bool {
	for _, s := range r.Sources {
		if s == name {
			return true
		}
	}
	return false
}

// SortSources orders the source set for deterministic output.
func (r *CompetitorRecord) SortSources() {
	sort.Strings(r.Sources)
}

// Clone returns a deep copy so callers can mutate without aliasing cached
// records.
func (r *CompetitorRecord) Clone() *CompetitorRecord {
	out := *r
	out.Sources = append([]string(nil), r.Sources...)
	out.Keywords = append([]string(nil), r.Keywords...)
	if r.Metrics != nil {
		out.Metrics = make(map[string]float64, len(r.Metrics))
		for k, v := range r.Metrics {
			out.Metrics[k] = v
		}
	}
	return &out
}
