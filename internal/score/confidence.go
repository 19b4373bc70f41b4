package score

import "github.com/sells-group/intel-cli/internal/model"

// BundleConfidence estimates how complete a MetricsBundle is, in [0,1]:
// per-section completeness (non-empty fields over expected fields, a missing
// section counting as 0) averaged across all sections, floored so a result
// with only optional sections empty never reads as near-zero confidence.
func BundleConfidence(cfg Config, b *model.MetricsBundle) float64 {
	if b == nil {
		return cfg.ConfidenceFloor
	}

	fractions := []float64{
		overviewCompleteness(b.Overview),
		trafficCompleteness(b.Traffic),
		backlinksCompleteness(b.Backlinks),
		keywordsCompleteness(b.Keywords),
		performanceCompleteness(b.Performance),
		usabilityCompleteness(b.MobileUsability),
	}

	var sum float64
	for _, f := range fractions {
		sum += f
	}
	avg := sum / float64(len(fractions))

	return clamp(avg, cfg.ConfidenceFloor, 1)
}

func overviewCompleteness(o *model.OverviewSection) float64 {
	if o == nil {
		return 0
	}
	return fraction(o.DomainAuthority > 0, o.GlobalRank > 0, o.Industry != "")
}

func trafficCompleteness(t *model.TrafficSection) float64 {
	if t == nil {
		return 0
	}
	return fraction(t.OrganicVisits > 0, t.Sessions > 0, t.BounceRate > 0, t.AvgSessionDuration > 0)
}

func backlinksCompleteness(bl *model.BacklinksSection) float64 {
	if bl == nil {
		return 0
	}
	return fraction(bl.Total > 0, bl.ReferringDomains > 0, bl.DomainScore > 0)
}

func keywordsCompleteness(k *model.KeywordsSection) float64 {
	if k == nil {
		return 0
	}
	return fraction(k.OrganicKeywords > 0, k.AvgPosition > 0, k.Visibility > 0, len(k.TopKeywords) > 0)
}

func performanceCompleteness(p *model.PerformanceSection) float64 {
	if p == nil {
		return 0
	}
	return fraction(p.LCPMillis > 0, p.FIDMillis > 0, p.CLS >= 0)
}

func usabilityCompleteness(u *model.MobileUsabilitySection) float64 {
	if u == nil {
		return 0
	}
	// The verdict itself is the section's one expected field.
	return 1
}

func fraction(fields ...bool) float64 {
	n := 0
	for _, present := range fields {
		if present {
			n++
		}
	}
	return float64(n) / float64(len(fields))
}
