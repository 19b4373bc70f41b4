package intel

import (
	"context"

	"github.com/sells-group/intel-cli/internal/aggregate"
	"github.com/sells-group/intel-cli/internal/cache"
	"github.com/sells-group/intel-cli/internal/model"
	"github.com/sells-group/intel-cli/internal/score"
)

// GetCompetingDomains discovers and merges competitors for a domain across
// every healthy source. The merged list (without relevance) is cached; the
// relevance pass runs per call because it depends on the caller's profile.
// Returns aggregate.ErrNoData when no source could answer at all.
func (s *Service) GetCompetingDomains(ctx context.Context, domain string, profile score.Profile) ([]model.CompetitorRecord, error) {
	subject, err := model.CanonicalDomain(domain)
	if err != nil {
		return nil, &ValidationError{Field: "domain", Reason: "empty or unparseable"}
	}

	key := cache.Key("competitors", subject)
	records, _, err := cache.Do(ctx, s.cache, key, s.competitorTTL,
		func(ctx context.Context) ([]model.CompetitorRecord, error) {
			lists, err := s.orchestrator.FetchCompetitors(ctx, subject, s.registry.CompetitorSources())
			if err != nil {
				return nil, err
			}
			return aggregate.Merge(lists, aggregate.ExclusionSet(subject)), nil
		})
	if err != nil {
		return nil, err
	}

	for i := range records {
		records[i].Relevance = score.CompetitorRelevance(s.scoreCfg.Relevance, profile, &records[i])
	}
	return records, nil
}
