package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/intel-cli/internal/model"
)

type fakeCompetitorSource struct{ name string }

func (f *fakeCompetitorSource) Name() string { return f.name }
func (f *fakeCompetitorSource) FindCompetitors(context.Context, string) ([]model.RawCompetitor, error) {
	return nil, nil
}

type fakeMetricsSource struct{ name string }

func (f *fakeMetricsSource) Name() string { return f.name }
func (f *fakeMetricsSource) FetchSections(context.Context, string) ([]model.PartialSection, error) {
	return nil, nil
}

func TestRegistry_NameOrder(t *testing.T) {
	r := NewRegistry()
	r.RegisterCompetitor(&fakeCompetitorSource{name: "zeta"})
	r.RegisterCompetitor(&fakeCompetitorSource{name: "alpha"})
	r.RegisterMetrics(&fakeMetricsSource{name: "mid"})

	cs := r.CompetitorSources()
	require.Len(t, cs, 2)
	assert.Equal(t, "alpha", cs[0].Name())
	assert.Equal(t, "zeta", cs[1].Name())

	assert.Equal(t, []string{"alpha", "zeta"}, r.Names(CapCompetitors))
	assert.Equal(t, []string{"mid"}, r.Names(CapMetrics))
}

func TestRegistry_ReplaceByName(t *testing.T) {
	r := NewRegistry()
	r.RegisterCompetitor(&fakeCompetitorSource{name: "dup"})
	r.RegisterCompetitor(&fakeCompetitorSource{name: "dup"})
	assert.Len(t, r.CompetitorSources(), 1)
}

func TestHTTPCompetitorSource_Decode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "acme.com", r.URL.Query().Get("domain"))
		json.NewEncoder(w).Encode(map[string]any{
			"competitors": []map[string]any{
				{"domain": "rival.com", "metrics": map[string]float64{"common_keywords": 5}},
			},
		})
	}))
	defer srv.Close()

	s := NewHTTPCompetitorSource(HTTPBaseOptions{Name: "test", BaseURL: srv.URL})
	got, err := s.FindCompetitors(context.Background(), "acme.com")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "rival.com", got[0].Domain)
	assert.Equal(t, 5.0, got[0].Metrics[model.MetricCommonKeywords])
}

func TestHTTPMetricsSource_Decode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"sections": []map[string]any{
				{"name": "performance", "performance": map[string]float64{"lcp_ms": 2100, "fid_ms": 80, "cls": 0.05}},
			},
		})
	}))
	defer srv.Close()

	s := NewHTTPMetricsSource(HTTPBaseOptions{Name: "test", BaseURL: srv.URL})
	got, err := s.FetchSections(context.Background(), "acme.com")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Performance)
	assert.Equal(t, 2100.0, got[0].Performance.LCPMillis)
}

func TestHTTPBase_RetriesTransientStatus(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"competitors": []any{}})
	}))
	defer srv.Close()

	s := NewHTTPCompetitorSource(HTTPBaseOptions{Name: "flaky", BaseURL: srv.URL, MaxRetries: 3, RatePerSecond: 100})
	got, err := s.FindCompetitors(context.Background(), "acme.com")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, int32(3), hits.Load())
}

func TestHTTPBase_PermanentStatusNoRetry(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	s := NewHTTPCompetitorSource(HTTPBaseOptions{Name: "notfound", BaseURL: srv.URL, MaxRetries: 3, RatePerSecond: 100})
	_, err := s.FindCompetitors(context.Background(), "acme.com")
	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestAdaptiveLimiter_Tuning(t *testing.T) {
	l := NewAdaptiveLimiter(10, 10)
	l.OnSuccess()
	assert.InDelta(t, 12.0, float64(l.Limit()), 0.001)

	for i := 0; i < 10; i++ {
		l.OnSuccess()
	}
	assert.InDelta(t, 20.0, float64(l.Limit()), 0.001) // capped at 2x

	for i := 0; i < 10; i++ {
		l.OnRateLimit()
	}
	assert.InDelta(t, 2.5, float64(l.Limit()), 0.001) // floored at initial/4
}
