package model

import "time"

// Section names, in the fixed order used for reporting.
var SectionNames = []string{
	"overview", "traffic", "backlinks", "keywords", "performance", "mobile_usability",
}

// MetricsBundle is the merged per-domain metrics view. Every section is
// optional; a nil section means no healthy source covered it.
type MetricsBundle struct {
	Domain string `json:"domain"`

	Overview        *OverviewSection        `json:"overview,omitempty"`
	Traffic         *TrafficSection         `json:"traffic,omitempty"`
	Backlinks       *BacklinksSection       `json:"backlinks,omitempty"`
	Keywords        *KeywordsSection        `json:"keywords,omitempty"`
	Performance     *PerformanceSection     `json:"performance,omitempty"`
	MobileUsability *MobileUsabilitySection `json:"mobile_usability,omitempty"`

	LastUpdated time.Time `json:"last_updated,omitempty"`
	HealthScore float64   `json:"health_score"`
	Confidence  float64   `json:"confidence"`
}

// SectionCount reports how many sections are populated.
func (b *MetricsBundle) SectionCount() int {
	n := 0
	for _, present := range []bool{
		b.Overview != nil,
		b.Traffic != nil,
		b.Backlinks != nil,
		b.Keywords != nil,
		b.Performance != nil,
		b.MobileUsability != nil,
	} {
		if present {
			n++
		}
	}
	return n
}

// Empty reports whether no section is populated at all.
func (b *MetricsBundle) Empty() bool {
	return b.SectionCount() == 0
}

// OverviewSection carries domain-level summary metrics.
type OverviewSection struct {
	DomainAuthority float64 `json:"domain_authority"`
	GlobalRank      float64 `json:"global_rank"`
	Industry        string  `json:"industry,omitempty"`
}

// TrafficSection carries visit and session metrics.
type TrafficSection struct {
	OrganicVisits      float64 `json:"organic_visits"`
	Sessions           float64 `json:"sessions"`
	BounceRate         float64 `json:"bounce_rate"`
	AvgSessionDuration float64 `json:"avg_session_duration"`
}

// BacklinksSection carries the link profile.
type BacklinksSection struct {
	Total            float64 `json:"total"`
	ReferringDomains float64 `json:"referring_domains"`
	DomainScore      float64 `json:"domain_score"`
}

// KeywordsSection carries organic keyword coverage.
type KeywordsSection struct {
	OrganicKeywords float64  `json:"organic_keywords"`
	AvgPosition     float64  `json:"avg_position"`
	Visibility      float64  `json:"visibility"`
	TopKeywords     []string `json:"top_keywords,omitempty"`
}

// PerformanceSection carries Core Web Vitals.
type PerformanceSection struct {
	LCPMillis float64 `json:"lcp_ms"`
	FIDMillis float64 `json:"fid_ms"`
	CLS       float64 `json:"cls"`
}

// MobileUsabilitySection carries the mobile-friendliness verdict.
type MobileUsabilitySection struct {
	Passed bool     `json:"passed"`
	Issues []string `json:"issues,omitempty"`
}

// PartialSection is one section as reported by a single source: a name plus
// at most one populated pointer.
type PartialSection struct {
	Name string `json:"name"`

	Overview        *OverviewSection        `json:"overview,omitempty"`
	Traffic         *TrafficSection         `json:"traffic,omitempty"`
	Backlinks       *BacklinksSection       `json:"backlinks,omitempty"`
	Keywords        *KeywordsSection        `json:"keywords,omitempty"`
	Performance     *PerformanceSection     `json:"performance,omitempty"`
	MobileUsability *MobileUsabilitySection `json:"mobile_usability,omitempty"`
}

// Apply copies the populated section into the bundle, overwriting any
// previous occupant of the slot.
func (p *PartialSection) Apply(b *MetricsBundle) {
	switch {
	case p.Overview != nil:
		b.Overview = p.Overview
	case p.Traffic != nil:
		b.Traffic = p.Traffic
	case p.Backlinks != nil:
		b.Backlinks = p.Backlinks
	case p.Keywords != nil:
		b.Keywords = p.Keywords
	case p.Performance != nil:
		b.Performance = p.Performance
	case p.MobileUsability != nil:
		b.MobileUsability = p.MobileUsability
	}
}
