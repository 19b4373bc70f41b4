package score

import (
	"math"

	"github.com/sells-group/intel-cli/internal/model"
)

// LikeabilityIndex reduces content metrics to [0,100]: rank dominates, then
// search visibility, then social signals normalized against fixed
// denominators and individually capped at 100.
func LikeabilityIndex(cfg LikeabilityConfig, m model.ContentMetrics) model.ScoreResult {
	rank := math.Max(0, 100-m.Position)
	visibility := math.Min(100, m.Visibility*100)
	likes := math.Min(100, m.Likes/cfg.LikesDenominator*100)
	shares := math.Min(100, m.Shares/cfg.SharesDenominator*100)
	linkedin := math.Min(100, m.LinkedInShares/cfg.LinkedInDenominator*100)

	value := cfg.RankWeight*rank +
		cfg.VisibilityWeight*visibility +
		cfg.LikesWeight*likes +
		cfg.SharesWeight*shares +
		cfg.LinkedInWeight*linkedin

	return model.ScoreResult{
		Name:  "likeability_index",
		Value: clamp(value, 0, 100),
		Components: map[string]float64{
			"rank":       rank,
			"visibility": visibility,
			"likes":      likes,
			"shares":     shares,
			"linkedin":   linkedin,
		},
		Weights: map[string]float64{
			"rank":       cfg.RankWeight,
			"visibility": cfg.VisibilityWeight,
			"likes":      cfg.LikesWeight,
			"shares":     cfg.SharesWeight,
			"linkedin":   cfg.LinkedInWeight,
		},
		Confidence: contentMetricsConfidence(m),
	}
}

// contentMetricsConfidence is the fraction of likeability inputs actually
// provided, floored at the same level as bundle confidence.
func contentMetricsConfidence(m model.ContentMetrics) float64 {
	f := fraction(m.Position > 0, m.Visibility > 0, m.Likes > 0, m.Shares > 0, m.LinkedInShares > 0)
	return clamp(f, 0.4, 1)
}
