package score

import (
	"math"

	"github.com/sells-group/intel-cli/internal/model"
)

// NichePotential scores how attractive a whole subject area is, in [0,100].
// Interest grows with log-scaled search volume and average engagement;
// competition grows with competitor count and average content competition.
// The quadratic interest-over-competition ratio rewards high-interest
// low-competition niches sharply.
func NichePotential(cfg NicheConfig, sub model.Subject) model.ScoreResult {
	interest := math.Log1p(math.Max(0, sub.TotalSearchVolume))/cfg.VolumeDivisor +
		math.Max(0, sub.AvgEngagement)

	competition := cfg.CompetitorCountWeight*(math.Max(0, sub.CompetitorCount)/cfg.CompetitorCountDivisor) +
		cfg.ContentCompetitionWeight*math.Max(0, sub.AvgContentCompetition)

	denom := 2*competition + 1
	raw := (interest * interest) / (denom * denom)
	value := clamp(raw*cfg.ScaleFactor, 0, 100)

	return model.ScoreResult{
		Name:  "niche_potential",
		Value: value,
		Components: map[string]float64{
			"interest":    interest,
			"competition": competition,
		},
		Confidence: clamp(fraction(sub.TotalSearchVolume > 0, sub.AvgEngagement > 0,
			sub.CompetitorCount > 0, sub.AvgContentCompetition > 0), 0.4, 1),
	}
}
