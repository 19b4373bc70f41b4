package score

import (
	"math"
	"strings"

	"golang.org/x/text/cases"

	"github.com/sells-group/intel-cli/internal/model"
)

// Profile is the subject-side view used for relevance comparison. Pointer
// fields are signals that may simply be unknown; an unknown signal is
// excluded and its weight redistributed rather than scored as zero.
type Profile struct {
	Industry        string
	DomainAuthority *float64
	MonthlyTraffic  *float64
}

var industryFolder = cases.Fold()

// CompetitorRelevance scores how relevant a merged competitor record is to
// the subject, in [0,1]. Up to four independent signals contribute; the
// weights are renormalized over the signals whose inputs exist so partial
// knowledge never drags the score toward zero.
func CompetitorRelevance(cfg RelevanceConfig, subject Profile, rec *model.CompetitorRecord) float64 {
	var weighted, weightSum float64

	// Industry match.
	if subject.Industry != "" && rec.Industry != "" {
		v := cfg.IndustryMismatchScore
		if industryFolder.String(strings.TrimSpace(subject.Industry)) ==
			industryFolder.String(strings.TrimSpace(rec.Industry)) {
			v = cfg.IndustryMatchScore
		}
		weighted += cfg.IndustryWeight * v
		weightSum += cfg.IndustryWeight
	}

	// Domain-authority similarity.
	if subject.DomainAuthority != nil {
		if da, ok := rec.Metrics[model.MetricDomainScore]; ok {
			v := math.Max(0, 1-math.Abs(*subject.DomainAuthority-da)/cfg.AuthoritySimilaritySpan)
			weighted += cfg.AuthorityWeight * v
			weightSum += cfg.AuthorityWeight
		}
	}

	// Keyword overlap.
	if ck, ok := rec.Metrics[model.MetricCommonKeywords]; ok {
		v := math.Min(1, ck/cfg.KeywordOverlapDivisor)
		weighted += cfg.KeywordWeight * v
		weightSum += cfg.KeywordWeight
	}

	// Traffic-ratio similarity.
	if subject.MonthlyTraffic != nil && *subject.MonthlyTraffic > 0 {
		if share, ok := rec.Metrics[model.MetricTrafficShare]; ok && share > 0 {
			competitorTraffic := share * *subject.MonthlyTraffic
			v := math.Min(competitorTraffic / *subject.MonthlyTraffic, *subject.MonthlyTraffic/competitorTraffic)
			weighted += cfg.TrafficRatioWeight * v
			weightSum += cfg.TrafficRatioWeight
		}
	}

	if weightSum == 0 {
		return 0
	}
	return clamp(weighted/weightSum, 0, 1)
}
