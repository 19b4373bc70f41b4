package intel

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/intel-cli/internal/aggregate"
	"github.com/sells-group/intel-cli/internal/cache"
	"github.com/sells-group/intel-cli/internal/model"
	"github.com/sells-group/intel-cli/internal/score"
	"github.com/sells-group/intel-cli/internal/source"
)

type spyCompetitorSource struct {
	name    string
	records map[string][]model.RawCompetitor
	err     error
	calls   atomic.Int32
}

func (s *spyCompetitorSource) Name() string { return s.name }
func (s *spyCompetitorSource) FindCompetitors(_ context.Context, domain string) ([]model.RawCompetitor, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.records[domain], nil
}

type spyMetricsSource struct {
	name      string
	sections  map[string][]model.PartialSection
	err       error
	errFor    map[string]error
	failUntil int32
	calls     atomic.Int32
}

func (s *spyMetricsSource) Name() string { return s.name }
func (s *spyMetricsSource) FetchSections(_ context.Context, domain string) ([]model.PartialSection, error) {
	n := s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	if n <= s.failUntil {
		return nil, eris.New("transient outage")
	}
	if err := s.errFor[domain]; err != nil {
		return nil, err
	}
	return s.sections[domain], nil
}

func newTestService(t *testing.T, c cache.Cache, srcs ...any) *Service {
	t.Helper()
	reg := source.NewRegistry()
	for _, s := range srcs {
		switch v := s.(type) {
		case source.CompetitorSource:
			reg.RegisterCompetitor(v)
		case source.MetricsSource:
			reg.RegisterMetrics(v)
		default:
			t.Fatalf("unexpected source type %T", s)
		}
	}
	return NewService(Options{Registry: reg, Cache: c})
}

func TestGetCompetingDomains_MergesAndScores(t *testing.T) {
	a := &spyCompetitorSource{name: "a", records: map[string][]model.RawCompetitor{
		"acme.com": {{Domain: "Rival.com", Metrics: map[string]float64{model.MetricCommonKeywords: 5}}},
	}}
	b := &spyCompetitorSource{name: "b", records: map[string][]model.RawCompetitor{
		"acme.com": {
			{Domain: "rival.com", Metrics: map[string]float64{model.MetricTrafficShare: 0.3}},
			{Domain: "acme.com"}, // subject excludes itself
		},
	}}
	svc := newTestService(t, nil, a, b)

	got, err := svc.GetCompetingDomains(context.Background(), "https://www.acme.com", score.Profile{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "rival.com", got[0].Domain)
	assert.Equal(t, []string{"a", "b"}, got[0].Sources)
	assert.Equal(t, 5.0, got[0].Metric(model.MetricCommonKeywords))
	assert.Greater(t, got[0].Relevance, 0.0)
}

func TestGetCompetingDomains_ValidatesDomain(t *testing.T) {
	svc := newTestService(t, nil)
	_, err := svc.GetCompetingDomains(context.Background(), "   ", score.Profile{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "domain", verr.Field)
}

func TestGetCompetingDomains_NoData(t *testing.T) {
	bad := &spyCompetitorSource{name: "bad", err: eris.New("boom")}
	svc := newTestService(t, nil, bad)

	_, err := svc.GetCompetingDomains(context.Background(), "acme.com", score.Profile{})
	assert.ErrorIs(t, err, aggregate.ErrNoData)
}

func TestGetCompetingDomains_CacheSkipsSources(t *testing.T) {
	a := &spyCompetitorSource{name: "a", records: map[string][]model.RawCompetitor{
		"acme.com": {{Domain: "rival.com"}},
	}}
	svc := newTestService(t, cache.NewMemory(), a)

	_, err := svc.GetCompetingDomains(context.Background(), "acme.com", score.Profile{})
	require.NoError(t, err)
	require.Equal(t, int32(1), a.calls.Load())

	// Within the TTL the second call never reaches the source.
	got, err := svc.GetCompetingDomains(context.Background(), "ACME.com", score.Profile{})
	require.NoError(t, err)
	assert.Equal(t, int32(1), a.calls.Load())
	require.Len(t, got, 1)
	assert.Equal(t, "rival.com", got[0].Domain)
}

func TestGetCompetingDomains_ExpiredCacheRefetches(t *testing.T) {
	a := &spyCompetitorSource{name: "a", records: map[string][]model.RawCompetitor{
		"acme.com": {{Domain: "rival.com"}},
	}}
	reg := source.NewRegistry()
	reg.RegisterCompetitor(a)
	svc := NewService(Options{
		Registry:      reg,
		Cache:         cache.NewMemory(),
		CompetitorTTL: -time.Second, // everything written is already expired
	})

	_, err := svc.GetCompetingDomains(context.Background(), "acme.com", score.Profile{})
	require.NoError(t, err)
	_, err = svc.GetCompetingDomains(context.Background(), "acme.com", score.Profile{})
	require.NoError(t, err)
	assert.Equal(t, int32(2), a.calls.Load())
}

func TestGetDomainMetrics_AttachesScores(t *testing.T) {
	m := &spyMetricsSource{name: "cwv", sections: map[string][]model.PartialSection{
		"acme.com": {
			{Name: "performance", Performance: &model.PerformanceSection{LCPMillis: 2000, FIDMillis: 80, CLS: 0.01}},
			{Name: "mobile_usability", MobileUsability: &model.MobileUsabilitySection{Passed: true}},
		},
	}}
	svc := newTestService(t, nil, m)

	got, err := svc.GetDomainMetrics(context.Background(), "acme.com")
	require.NoError(t, err)
	assert.Equal(t, "acme.com", got.Domain)
	assert.Equal(t, 2, got.SectionCount())
	assert.Greater(t, got.HealthScore, 0.0)
	assert.GreaterOrEqual(t, got.Confidence, 0.4)
	assert.False(t, got.LastUpdated.IsZero())
}

func TestGetDomainMetrics_AllSourcesFailed(t *testing.T) {
	bad := &spyMetricsSource{name: "bad", err: eris.New("boom")}
	svc := newTestService(t, nil, bad)

	got, err := svc.GetDomainMetrics(context.Background(), "acme.com")
	require.NoError(t, err)
	assert.True(t, got.Empty())
	assert.Equal(t, 0.0, got.HealthScore)
	assert.Equal(t, 0.4, got.Confidence)
}

func TestGetDomainMetrics_OutageNotCached(t *testing.T) {
	m := &spyMetricsSource{
		name:      "cwv",
		failUntil: 1,
		sections: map[string][]model.PartialSection{
			"acme.com": {
				{Name: "performance", Performance: &model.PerformanceSection{LCPMillis: 2000}},
			},
		},
	}
	svc := newTestService(t, cache.NewMemory(), m)

	first, err := svc.GetDomainMetrics(context.Background(), "acme.com")
	require.NoError(t, err)
	assert.True(t, first.Empty())

	// The outage answer must not stick for the TTL: after the source
	// recovers and health is reset, the next call re-probes it.
	svc.ResetSourceHealth()
	second, err := svc.GetDomainMetrics(context.Background(), "acme.com")
	require.NoError(t, err)
	assert.Equal(t, int32(2), m.calls.Load())
	assert.Equal(t, 1, second.SectionCount())

	// The successful bundle is cached as usual.
	third, err := svc.GetDomainMetrics(context.Background(), "acme.com")
	require.NoError(t, err)
	assert.Equal(t, int32(2), m.calls.Load())
	assert.Equal(t, 1, third.SectionCount())
}

func TestGetDomainMetricsBatch_IsolatesFailures(t *testing.T) {
	m := &spyMetricsSource{name: "cwv", sections: map[string][]model.PartialSection{
		"a.com": {
			{Name: "performance", Performance: &model.PerformanceSection{LCPMillis: 2000}},
		},
	}}
	svc := newTestService(t, nil, m)

	got, err := svc.GetDomainMetricsBatch(context.Background(), []string{"a.com", "b.com", ""})
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, 1, got["a.com"].SectionCount())
	// b.com answered empty, which is data, not a failure.
	assert.True(t, got["b.com"].Empty())
	// The invalid entry degrades to an empty bundle instead of failing the batch.
	assert.True(t, got[""].Empty())
}

func TestGetDomainMetricsBatch_SourceErrorIsolated(t *testing.T) {
	good := &spyMetricsSource{name: "good", sections: map[string][]model.PartialSection{
		"a.com": {
			{Name: "performance", Performance: &model.PerformanceSection{LCPMillis: 2000}},
		},
	}}
	flaky := &spyMetricsSource{name: "flaky", errFor: map[string]error{
		"b.com": eris.New("boom"),
	}}
	svc := newTestService(t, nil, good, flaky)

	got, err := svc.GetDomainMetricsBatch(context.Background(), []string{"a.com", "b.com"})
	require.NoError(t, err)

	assert.Equal(t, 1, got["a.com"].SectionCount())
	assert.True(t, got["b.com"].Empty())
	assert.Equal(t, 0.0, got["b.com"].HealthScore)
}

func TestSourceHealth_DegradedAndReset(t *testing.T) {
	bad := &spyCompetitorSource{name: "bad", err: eris.New("boom")}
	good := &spyCompetitorSource{name: "good", records: map[string][]model.RawCompetitor{
		"acme.com": {{Domain: "rival.com"}},
	}}
	svc := newTestService(t, nil, bad, good)

	_, err := svc.GetCompetingDomains(context.Background(), "acme.com", score.Profile{})
	require.NoError(t, err)
	assert.Equal(t, source.Degraded, svc.SourceHealth()["bad"])

	// Degraded sources are skipped on the next call.
	_, err = svc.GetCompetingDomains(context.Background(), "acme.com", score.Profile{})
	require.NoError(t, err)
	assert.Equal(t, int32(1), bad.calls.Load())

	svc.ResetSourceHealth()
	_, err = svc.GetCompetingDomains(context.Background(), "acme.com", score.Profile{})
	require.NoError(t, err)
	assert.Equal(t, int32(2), bad.calls.Load())
}

func TestScoreWrappers(t *testing.T) {
	svc := newTestService(t, nil)

	like := svc.CalculateLikeabilityIndex(model.ContentMetrics{Position: 1, Visibility: 0.5})
	assert.Equal(t, "likeability_index", like.Name)

	opp := svc.CalculateOpportunityIndex("crm", model.Subtopic{SearchVolume: 100})
	assert.InDelta(t, 37.5, opp.Value, 0.001)

	niche := svc.CalculateNichePotential(model.Subject{AvgEngagement: 3, CompetitorCount: 100, AvgContentCompetition: 1})
	assert.InDelta(t, 5.0, niche.Value, 0.001)

	eng := svc.CalculateEngagementIndex(model.ContentAsset{Popularity: 80}, model.Market{}, model.Persona{})
	assert.Greater(t, eng.Value, 0.0)

	proj := svc.ProjectEngagementImpact(eng.Value, model.ContentAsset{PublishedAt: time.Now()})
	assert.Greater(t, proj.EstVisitors, 0.0)
}
