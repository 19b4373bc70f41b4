package intel

import (
	"github.com/sells-group/intel-cli/internal/model"
	"github.com/sells-group/intel-cli/internal/score"
)

// CalculateLikeabilityIndex scores content metrics on the 0-100 scale.
func (s *Service) CalculateLikeabilityIndex(m model.ContentMetrics) model.ScoreResult {
	return score.LikeabilityIndex(s.scoreCfg.Likeability, m)
}

// CalculateOpportunityIndex scores a subtopic against the subject's rolling
// observation history.
func (s *Service) CalculateOpportunityIndex(subject string, st model.Subtopic) model.ScoreResult {
	return s.opportunity.Score(subject, st)
}

// CalculateNichePotential scores a whole subject area.
func (s *Service) CalculateNichePotential(sub model.Subject) model.ScoreResult {
	return score.NichePotential(s.scoreCfg.Niche, sub)
}

// CalculateEngagementIndex scores a content asset for a market and persona.
func (s *Service) CalculateEngagementIndex(asset model.ContentAsset, market model.Market, persona model.Persona) model.ScoreResult {
	return score.EngagementIndex(s.scoreCfg.Engagement, asset, market, persona)
}

// ProjectEngagementImpact derives the forward-looking business projection
// for an already-computed engagement index.
func (s *Service) ProjectEngagementImpact(index float64, asset model.ContentAsset) model.EngagementProjection {
	return score.ProjectImpact(s.scoreCfg.Engagement, index, asset, s.nowFunc())
}
