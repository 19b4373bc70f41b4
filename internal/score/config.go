// Package score implements the composite scoring engine: pure functions
// that reduce aggregated metrics to bounded indices, plus the relevance and
// confidence scorers. Missing data degrades a score, it never fails a call.
package score

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Config collects every weight and normalization constant used by the
// scorers. The constants carry no documented derivation upstream; they are
// kept configurable rather than buried as magic numbers, with per-industry
// tuning left to the weights file.
type Config struct {
	Relevance   RelevanceConfig   `yaml:"relevance"`
	Health      HealthConfig      `yaml:"health"`
	Likeability LikeabilityConfig `yaml:"likeability"`
	Opportunity OpportunityConfig `yaml:"opportunity"`
	Engagement  EngagementConfig  `yaml:"engagement"`
	Niche       NicheConfig       `yaml:"niche"`

	// ConfidenceFloor prevents near-zero confidence when only optional
	// sections are empty.
	ConfidenceFloor float64 `yaml:"confidence_floor"`
}

// RelevanceConfig tunes the competitor-relevance signals.
type RelevanceConfig struct {
	IndustryMatchScore    float64 `yaml:"industry_match_score"`
	IndustryMismatchScore float64 `yaml:"industry_mismatch_score"`
	IndustryWeight        float64 `yaml:"industry_weight"`

	AuthoritySimilaritySpan float64 `yaml:"authority_similarity_span"`
	AuthorityWeight         float64 `yaml:"authority_weight"`

	KeywordOverlapDivisor float64 `yaml:"keyword_overlap_divisor"`
	KeywordWeight         float64 `yaml:"keyword_weight"`

	TrafficRatioWeight float64 `yaml:"traffic_ratio_weight"`
}

// HealthConfig holds the health-score section weights (sum 1.0).
type HealthConfig struct {
	PerformanceWeight float64 `yaml:"performance_weight"`
	SEOWeight         float64 `yaml:"seo_weight"`
	UsabilityWeight   float64 `yaml:"usability_weight"`
	TrafficWeight     float64 `yaml:"traffic_weight"`
}

// LikeabilityConfig holds the likeability weights and social denominators.
type LikeabilityConfig struct {
	RankWeight       float64 `yaml:"rank_weight"`
	VisibilityWeight float64 `yaml:"visibility_weight"`
	LikesWeight      float64 `yaml:"likes_weight"`
	SharesWeight     float64 `yaml:"shares_weight"`
	LinkedInWeight   float64 `yaml:"linkedin_weight"`

	LikesDenominator    float64 `yaml:"likes_denominator"`
	SharesDenominator   float64 `yaml:"shares_denominator"`
	LinkedInDenominator float64 `yaml:"linkedin_denominator"`
}

// OpportunityConfig tunes the opportunity index history window.
type OpportunityConfig struct {
	HistorySize int `yaml:"history_size"`
}

// NicheConfig tunes the niche potential index.
type NicheConfig struct {
	VolumeDivisor            float64 `yaml:"volume_divisor"`
	CompetitorCountDivisor   float64 `yaml:"competitor_count_divisor"`
	CompetitorCountWeight    float64 `yaml:"competitor_count_weight"`
	ContentCompetitionWeight float64 `yaml:"content_competition_weight"`
	ScaleFactor              float64 `yaml:"scale_factor"`
}

// EngagementConfig holds the channel weights, multiplier lookups, and the
// business-impact projection constants.
type EngagementConfig struct {
	SearchRelevanceWeight float64 `yaml:"search_relevance_weight"`
	PopularityWeight      float64 `yaml:"popularity_weight"`
	SEOPerformanceWeight  float64 `yaml:"seo_performance_weight"`
	SocialWeight          float64 `yaml:"social_weight"`
	VideoWeight           float64 `yaml:"video_weight"`
	PodcastWeight         float64 `yaml:"podcast_weight"`
	ImageQualityWeight    float64 `yaml:"image_quality_weight"`

	// SocialContributionCap bounds social's weighted contribution, in index
	// points.
	SocialContributionCap float64 `yaml:"social_contribution_cap"`

	DefaultMarketMultiplier    float64            `yaml:"default_market_multiplier"`
	MarketMultipliers          map[string]float64 `yaml:"market_multipliers"`
	PersonaTypeMultipliers     map[string]float64 `yaml:"persona_type_multipliers"`
	PersonaIndustryMultipliers map[string]float64 `yaml:"persona_industry_multipliers"`

	// Content-age decay for forward-looking projections only.
	DecayHalfPeriodDays float64 `yaml:"decay_half_period_days"`
	DecayFloor          float64 `yaml:"decay_floor"`

	// Projection constants.
	VisitorsPerPoint     float64 `yaml:"visitors_per_point"`
	ConversionRate       float64 `yaml:"conversion_rate"`
	RevenuePerConversion float64 `yaml:"revenue_per_conversion"`
}

// DefaultConfig returns the stock constants.
func DefaultConfig() Config {
	return Config{
		Relevance: RelevanceConfig{
			IndustryMatchScore:      0.7,
			IndustryMismatchScore:   0.1,
			IndustryWeight:          0.3,
			AuthoritySimilaritySpan: 50,
			AuthorityWeight:         0.4,
			KeywordOverlapDivisor:   10,
			KeywordWeight:           0.3,
			TrafficRatioWeight:      0.3,
		},
		Health: HealthConfig{
			PerformanceWeight: 0.40,
			SEOWeight:         0.30,
			UsabilityWeight:   0.20,
			TrafficWeight:     0.10,
		},
		Likeability: LikeabilityConfig{
			RankWeight:          0.40,
			VisibilityWeight:    0.20,
			LikesWeight:         0.15,
			SharesWeight:        0.15,
			LinkedInWeight:      0.10,
			LikesDenominator:    1000,
			SharesDenominator:   500,
			LinkedInDenominator: 200,
		},
		Opportunity: OpportunityConfig{
			HistorySize: 50,
		},
		Niche: NicheConfig{
			VolumeDivisor:            10,
			CompetitorCountDivisor:   100,
			CompetitorCountWeight:    0.7,
			ContentCompetitionWeight: 0.3,
			ScaleFactor:              5,
		},
		Engagement: EngagementConfig{
			SearchRelevanceWeight:   0.25,
			PopularityWeight:        0.20,
			SEOPerformanceWeight:    0.15,
			SocialWeight:            0.15,
			VideoWeight:             0.10,
			PodcastWeight:           0.10,
			ImageQualityWeight:      0.05,
			SocialContributionCap:   8,
			DefaultMarketMultiplier: 0.7,
			DecayHalfPeriodDays:     365,
			DecayFloor:              0.1,
			VisitorsPerPoint:        120,
			ConversionRate:          0.02,
			RevenuePerConversion:    90,
		},
		ConfidenceFloor: 0.4,
	}
}

// LoadConfig reads a YAML weights file over the defaults. Only keys present
// in the file are overridden.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, eris.Wrap(err, "score: read weights file")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, eris.Wrap(err, "score: parse weights file")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the config is internally consistent.
func (c Config) Validate() error {
	var errs []string

	weightSums := map[string]float64{
		"health weights": c.Health.PerformanceWeight + c.Health.SEOWeight +
			c.Health.UsabilityWeight + c.Health.TrafficWeight,
		"likeability weights": c.Likeability.RankWeight + c.Likeability.VisibilityWeight +
			c.Likeability.LikesWeight + c.Likeability.SharesWeight + c.Likeability.LinkedInWeight,
		"engagement weights": c.Engagement.SearchRelevanceWeight + c.Engagement.PopularityWeight +
			c.Engagement.SEOPerformanceWeight + c.Engagement.SocialWeight +
			c.Engagement.VideoWeight + c.Engagement.PodcastWeight + c.Engagement.ImageQualityWeight,
	}
	for name, sum := range weightSums {
		if math.Abs(sum-1.0) > 0.01 {
			errs = append(errs, fmt.Sprintf("%s should sum to 1.0, got %.3f", name, sum))
		}
	}

	for name, w := range map[string]float64{
		"relevance.industry_weight":           c.Relevance.IndustryWeight,
		"relevance.authority_weight":          c.Relevance.AuthorityWeight,
		"relevance.keyword_weight":            c.Relevance.KeywordWeight,
		"relevance.traffic_ratio_weight":      c.Relevance.TrafficRatioWeight,
		"relevance.authority_similarity_span": c.Relevance.AuthoritySimilaritySpan,
		"relevance.keyword_overlap_divisor":   c.Relevance.KeywordOverlapDivisor,
	} {
		if w <= 0 {
			errs = append(errs, fmt.Sprintf("%s must be > 0", name))
		}
	}

	if c.ConfidenceFloor < 0 || c.ConfidenceFloor > 1 {
		errs = append(errs, "confidence_floor must be in [0,1]")
	}
	if c.Engagement.DecayFloor < 0 || c.Engagement.DecayFloor > 1 {
		errs = append(errs, "engagement.decay_floor must be in [0,1]")
	}
	if c.Opportunity.HistorySize < 2 {
		errs = append(errs, "opportunity.history_size must be >= 2")
	}

	if len(errs) > 0 {
		return eris.New("score: invalid config: " + strings.Join(errs, "; "))
	}
	return nil
}
