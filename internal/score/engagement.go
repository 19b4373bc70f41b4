package score

import (
	"math"
	"time"

	"github.com/sells-group/intel-cli/internal/model"
)

// EngagementIndex scores a content asset's engagement across seven channels,
// adjusted for the target market and persona, in [0,100]. Social's weighted
// contribution is capped in absolute index points so a viral spike cannot
// dominate the blend. Content age does NOT reduce the index; decay applies
// only to forward-looking projections.
func EngagementIndex(cfg EngagementConfig, asset model.ContentAsset, market model.Market, persona model.Persona) model.ScoreResult {
	social := math.Min(cfg.SocialWeight*clamp(asset.Social, 0, 100), cfg.SocialContributionCap)

	base := cfg.SearchRelevanceWeight*clamp(asset.SearchRelevance, 0, 100) +
		cfg.PopularityWeight*clamp(asset.Popularity, 0, 100) +
		cfg.SEOPerformanceWeight*clamp(asset.SEOPerformance, 0, 100) +
		social +
		cfg.VideoWeight*clamp(asset.Video, 0, 100) +
		cfg.PodcastWeight*clamp(asset.Podcast, 0, 100) +
		cfg.ImageQualityWeight*clamp(asset.ImageQuality, 0, 100)

	marketMult := cfg.marketMultiplier(market)
	personaMult := cfg.personaMultiplier(persona)
	value := clamp(base*marketMult*personaMult, 0, 100)

	return model.ScoreResult{
		Name:  "engagement_index",
		Value: value,
		Components: map[string]float64{
			"search_relevance":    clamp(asset.SearchRelevance, 0, 100),
			"popularity":          clamp(asset.Popularity, 0, 100),
			"seo_performance":     clamp(asset.SEOPerformance, 0, 100),
			"social_contribution": social,
			"video":               clamp(asset.Video, 0, 100),
			"podcast":             clamp(asset.Podcast, 0, 100),
			"image_quality":       clamp(asset.ImageQuality, 0, 100),
			"market_multiplier":   marketMult,
			"persona_multiplier":  personaMult,
		},
		Weights: map[string]float64{
			"search_relevance": cfg.SearchRelevanceWeight,
			"popularity":       cfg.PopularityWeight,
			"seo_performance":  cfg.SEOPerformanceWeight,
			"social":           cfg.SocialWeight,
			"video":            cfg.VideoWeight,
			"podcast":          cfg.PodcastWeight,
			"image_quality":    cfg.ImageQualityWeight,
		},
		Confidence: clamp(fraction(asset.SearchRelevance > 0, asset.Popularity > 0,
			asset.SEOPerformance > 0, asset.Social > 0, asset.Video > 0,
			asset.Podcast > 0, asset.ImageQuality > 0), 0.4, 1),
	}
}

// ProjectImpact derives a forward-looking business projection from an
// engagement index. The asset's age decays projected visitors by half every
// DecayHalfPeriodDays, floored at DecayFloor.
func ProjectImpact(cfg EngagementConfig, index float64, asset model.ContentAsset, now time.Time) model.EngagementProjection {
	decay := math.Max(cfg.DecayFloor,
		math.Exp(-math.Ln2*asset.AgeDays(now)/cfg.DecayHalfPeriodDays))

	visitors := clamp(index, 0, 100) * cfg.VisitorsPerPoint * decay
	conversions := visitors * cfg.ConversionRate
	revenue := conversions * cfg.RevenuePerConversion

	return model.EngagementProjection{
		EstVisitors:    visitors,
		EstConversions: conversions,
		EstRevenueUSD:  revenue,
		DecayFactor:    decay,
	}
}

func (c EngagementConfig) marketMultiplier(m model.Market) float64 {
	if mult, ok := c.MarketMultipliers[m.Name]; ok {
		return mult
	}
	return c.DefaultMarketMultiplier
}

func (c EngagementConfig) personaMultiplier(p model.Persona) float64 {
	mult := 1.0
	if v, ok := c.PersonaTypeMultipliers[p.Type]; ok {
		mult *= v
	}
	if v, ok := c.PersonaIndustryMultipliers[p.Industry]; ok {
		mult *= v
	}
	return mult
}
