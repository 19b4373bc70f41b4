package score

import (
	"math"

	"github.com/sells-group/intel-cli/internal/model"
)

// HealthScore reduces a MetricsBundle to [0,100]. A missing section
// contributes 0 through its weight rather than being skipped, so a bundle
// with no data at all scores exactly 0.
func HealthScore(cfg HealthConfig, b *model.MetricsBundle) float64 {
	if b == nil {
		return 0
	}
	total := cfg.PerformanceWeight*performanceSubScore(b.Performance) +
		cfg.SEOWeight*seoSubScore(b.Overview, b.Backlinks) +
		cfg.UsabilityWeight*usabilitySubScore(b.MobileUsability) +
		cfg.TrafficWeight*trafficSubScore(b.Traffic)
	return clamp(total, 0, 100)
}

// HealthComponents returns the four sub-scores for reporting.
func HealthComponents(b *model.MetricsBundle) map[string]float64 {
	if b == nil {
		return map[string]float64{"performance": 0, "seo": 0, "usability": 0, "traffic": 0}
	}
	return map[string]float64{
		"performance": performanceSubScore(b.Performance),
		"seo":         seoSubScore(b.Overview, b.Backlinks),
		"usability":   usabilitySubScore(b.MobileUsability),
		"traffic":     trafficSubScore(b.Traffic),
	}
}

// performanceSubScore converts Core Web Vitals to 0-100. LCP under 2.5s,
// FID under 100ms, and CLS of 0 are each worth the full 100.
func performanceSubScore(p *model.PerformanceSection) float64 {
	if p == nil {
		return 0
	}
	lcp := math.Max(0, 100-math.Max(0, p.LCPMillis-2500)/25)
	fid := math.Max(0, 100-math.Max(0, p.FIDMillis-100)*2)
	cls := math.Max(0, 100-p.CLS*1000)
	return 0.4*lcp + 0.3*fid + 0.3*cls
}

func seoSubScore(o *model.OverviewSection, bl *model.BacklinksSection) float64 {
	if o == nil && bl == nil {
		return 0
	}
	var da, backlinks, referring float64
	if o != nil {
		da = o.DomainAuthority
	}
	if bl != nil {
		backlinks = bl.Total
		referring = bl.ReferringDomains
	}
	backlinkScore := math.Min(100, math.Log10(math.Max(1, backlinks))*15)
	referringScore := math.Min(100, math.Log10(math.Max(1, referring))*20)
	return 0.5*da + 0.3*backlinkScore + 0.2*referringScore
}

func usabilitySubScore(u *model.MobileUsabilitySection) float64 {
	if u == nil {
		return 0
	}
	score := 0.0
	if u.Passed {
		score = 100
	}
	score -= math.Min(30, float64(len(u.Issues))*5)
	return math.Max(0, score)
}

func trafficSubScore(t *model.TrafficSection) float64 {
	if t == nil {
		return 0
	}
	score := math.Min(100, math.Log10(math.Max(1, t.OrganicVisits+t.Sessions))*15)
	score -= math.Max(0, (t.BounceRate-70)*0.5)
	score += math.Min(20, t.AvgSessionDuration/3)
	return clamp(score, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
