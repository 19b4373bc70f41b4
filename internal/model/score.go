package model

import (
	"math"
	"time"
)

// ScoreResult is the common shape every composite scorer returns: a bounded
// value plus the components and weights behind it, for explainability.
type ScoreResult struct {
	Name       string             `json:"name"`
	Value      float64            `json:"value"`
	Components map[string]float64 `json:"components,omitempty"`
	Weights    map[string]float64 `json:"weights,omitempty"`
	Confidence float64            `json:"confidence"`
}

// ContentMetrics is the input to the likeability index.
type ContentMetrics struct {
	Position       float64 `json:"position"`
	Visibility     float64 `json:"visibility"`
	Likes          float64 `json:"likes"`
	Shares         float64 `json:"shares"`
	LinkedInShares float64 `json:"linkedin_shares"`
}

// Subtopic is the input to the opportunity index.
type Subtopic struct {
	SearchVolume      float64 `json:"search_volume"`
	Engagement        float64 `json:"engagement"`
	CompetitionLevel  float64 `json:"competition_level"`
	ContentSaturation float64 `json:"content_saturation"`
}

// Subject is the input to the niche potential index.
type Subject struct {
	TotalSearchVolume     float64 `json:"total_search_volume"`
	AvgEngagement         float64 `json:"avg_engagement"`
	CompetitorCount       float64 `json:"competitor_count"`
	AvgContentCompetition float64 `json:"avg_content_competition"`
}

// ContentAsset is the input to the engagement index: per-channel scores on a
// 0-100 scale plus the publish date used for projection decay.
type ContentAsset struct {
	SearchRelevance float64 `json:"search_relevance"`
	Popularity      float64 `json:"popularity"`
	SEOPerformance  float64 `json:"seo_performance"`
	Social          float64 `json:"social"`
	Video           float64 `json:"video"`
	Podcast         float64 `json:"podcast"`
	ImageQuality    float64 `json:"image_quality"`

	PublishedAt time.Time `json:"published_at,omitempty"`
}

// AgeDays is the asset's age in days at now, never negative.
func (a ContentAsset) AgeDays(now time.Time) float64 {
	if a.PublishedAt.IsZero() || !a.PublishedAt.Before(now) {
		return 0
	}
	return math.Max(0, now.Sub(a.PublishedAt).Hours()/24)
}

// Market identifies the target market for engagement multipliers.
type Market struct {
	Name string `json:"name"`
}

// Persona identifies the audience persona for engagement multipliers.
type Persona struct {
	Type     string `json:"type"`
	Industry string `json:"industry"`
}

// EngagementProjection is the forward-looking business impact derived from
// an engagement index.
type EngagementProjection struct {
	EstVisitors    float64 `json:"est_visitors"`
	EstConversions float64 `json:"est_conversions"`
	EstRevenueUSD  float64 `json:"est_revenue_usd"`
	DecayFactor    float64 `json:"decay_factor"`
}
