package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/intel-cli/internal/model"
)

func TestHealthScore_AllEmpty(t *testing.T) {
	cfg := DefaultConfig().Health
	assert.Equal(t, 0.0, HealthScore(cfg, &model.MetricsBundle{Domain: "x.com"}))
	assert.Equal(t, 0.0, HealthScore(cfg, nil))
}

func TestHealthScore_UsabilityOnly(t *testing.T) {
	cfg := DefaultConfig().Health
	b := &model.MetricsBundle{
		Domain:          "x.com",
		MobileUsability: &model.MobileUsabilitySection{Passed: true},
	}
	// Only usability contributes: 100 through its 0.20 weight.
	assert.InDelta(t, 20.0, HealthScore(cfg, b), 0.001)
}

func TestHealthScore_Range(t *testing.T) {
	cfg := DefaultConfig().Health
	best := &model.MetricsBundle{
		Overview:        &model.OverviewSection{DomainAuthority: 100},
		Traffic:         &model.TrafficSection{OrganicVisits: 1e9, Sessions: 1e9, AvgSessionDuration: 600},
		Backlinks:       &model.BacklinksSection{Total: 1e9, ReferringDomains: 1e9},
		Performance:     &model.PerformanceSection{LCPMillis: 1000, FIDMillis: 50, CLS: 0},
		MobileUsability: &model.MobileUsabilitySection{Passed: true},
	}
	got := HealthScore(cfg, best)
	assert.LessOrEqual(t, got, 100.0)
	assert.Greater(t, got, 90.0)

	worst := &model.MetricsBundle{
		Traffic:         &model.TrafficSection{OrganicVisits: 1, BounceRate: 100},
		Performance:     &model.PerformanceSection{LCPMillis: 10000, FIDMillis: 2000, CLS: 1},
		MobileUsability: &model.MobileUsabilitySection{Passed: false, Issues: []string{"a", "b", "c", "d", "e", "f", "g"}},
	}
	assert.GreaterOrEqual(t, HealthScore(cfg, worst), 0.0)
}

func TestPerformanceSubScore_Vitals(t *testing.T) {
	// LCP at 2.5s, FID at 100ms, and CLS 0.05 halfway to the 0.1 threshold.
	p := &model.PerformanceSection{LCPMillis: 2500, FIDMillis: 100, CLS: 0.05}
	assert.InDelta(t, 0.4*100+0.3*100+0.3*50, performanceSubScore(p), 0.001)

	slow := &model.PerformanceSection{LCPMillis: 5000, FIDMillis: 150, CLS: 0.2}
	// LCP: 100-2500/25 = 0; FID: 100-50*2 = 0; CLS: 0.
	assert.InDelta(t, 0.0, performanceSubScore(slow), 0.001)
}

func TestUsabilitySubScore_IssuePenalty(t *testing.T) {
	passed := &model.MobileUsabilitySection{Passed: true, Issues: []string{"viewport", "tap-targets"}}
	assert.InDelta(t, 90.0, usabilitySubScore(passed), 0.001)

	many := &model.MobileUsabilitySection{Passed: true, Issues: make([]string, 10)}
	// Penalty caps at 30 points.
	assert.InDelta(t, 70.0, usabilitySubScore(many), 0.001)

	failed := &model.MobileUsabilitySection{Passed: false, Issues: []string{"viewport"}}
	assert.Equal(t, 0.0, usabilitySubScore(failed))
}

func TestSEOSubScore_MissingBothSections(t *testing.T) {
	assert.Equal(t, 0.0, seoSubScore(nil, nil))
	// One of the two present still contributes.
	assert.Greater(t, seoSubScore(&model.OverviewSection{DomainAuthority: 50}, nil), 0.0)
}

func TestHealthComponents(t *testing.T) {
	b := &model.MetricsBundle{MobileUsability: &model.MobileUsabilitySection{Passed: true}}
	c := HealthComponents(b)
	assert.Equal(t, 100.0, c["usability"])
	assert.Equal(t, 0.0, c["performance"])
	assert.Len(t, c, 4)
}
