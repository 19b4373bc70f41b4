package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/intel-cli/internal/model"
)

func TestBundleConfidence_Floor(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, cfg.ConfidenceFloor, BundleConfidence(cfg, nil))
	assert.Equal(t, cfg.ConfidenceFloor, BundleConfidence(cfg, &model.MetricsBundle{Domain: "x.com"}))

	// One full section out of six averages below the floor.
	partial := &model.MetricsBundle{
		Performance: &model.PerformanceSection{LCPMillis: 2000, FIDMillis: 80, CLS: 0.01},
	}
	assert.Equal(t, cfg.ConfidenceFloor, BundleConfidence(cfg, partial))
}

func TestBundleConfidence_Full(t *testing.T) {
	cfg := DefaultConfig()
	full := &model.MetricsBundle{
		Overview:        &model.OverviewSection{DomainAuthority: 50, GlobalRank: 1000, Industry: "saas"},
		Traffic:         &model.TrafficSection{OrganicVisits: 1, Sessions: 1, BounceRate: 40, AvgSessionDuration: 60},
		Backlinks:       &model.BacklinksSection{Total: 1, ReferringDomains: 1, DomainScore: 1},
		Keywords:        &model.KeywordsSection{OrganicKeywords: 1, AvgPosition: 1, Visibility: 0.1, TopKeywords: []string{"crm"}},
		Performance:     &model.PerformanceSection{LCPMillis: 2000, FIDMillis: 80, CLS: 0.01},
		MobileUsability: &model.MobileUsabilitySection{Passed: true},
	}
	assert.InDelta(t, 1.0, BundleConfidence(cfg, full), 0.001)
}

func TestBundleConfidence_PartialFields(t *testing.T) {
	cfg := DefaultConfig()

	// Four sections fully populated, two missing: avg 4/6.
	b := &model.MetricsBundle{
		Overview:        &model.OverviewSection{DomainAuthority: 50, GlobalRank: 1000, Industry: "saas"},
		Traffic:         &model.TrafficSection{OrganicVisits: 1, Sessions: 1, BounceRate: 40, AvgSessionDuration: 60},
		Performance:     &model.PerformanceSection{LCPMillis: 2000, FIDMillis: 80, CLS: 0.01},
		MobileUsability: &model.MobileUsabilitySection{Passed: true},
	}
	assert.InDelta(t, 4.0/6.0, BundleConfidence(cfg, b), 0.001)
}
