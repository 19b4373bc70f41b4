package aggregate

import (
	"sort"

	"github.com/sells-group/intel-cli/internal/model"
)

// Merge combines per-source competitor lists into one canonical record per
// domain. Identity is the canonical domain; numeric metrics take the maximum
// observed value (providers under-report, never over-report), source sets
// and keyword lists union. Records whose canonical domain is in exclude
// (the subject's own domains) are dropped.
//
// Output order is deterministic regardless of input order: traffic_share
// desc, then common_keywords desc, then canonical domain asc.
func Merge(lists []SourceRecords, exclude map[string]bool) []model.CompetitorRecord {
	byDomain := make(map[string]*model.CompetitorRecord)

	for _, list := range lists {
		for _, raw := range list.Records {
			key, err := model.CanonicalDomain(raw.Domain)
			if err != nil {
				continue // unidentifiable row
			}
			if exclude[key] {
				continue
			}

			rec, ok := byDomain[key]
			if !ok {
				rec = &model.CompetitorRecord{
					Domain:   key,
					Metrics:  make(map[string]float64),
					Industry: raw.Industry,
					SeenAt:   raw.SeenAt,
				}
				byDomain[key] = rec
			}

			addSource(rec, list.Source)
			for k, v := range raw.Metrics {
				if v < 0 {
					continue
				}
				if cur, exists := rec.Metrics[k]; !exists || v > cur {
					rec.Metrics[k] = v
				}
			}
			rec.Keywords = unionStrings(rec.Keywords, raw.Keywords)
			// Order-independent tie break: keep the smaller non-empty label.
			if rec.Industry == "" || (raw.Industry != "" && raw.Industry < rec.Industry) {
				rec.Industry = raw.Industry
			}
			if raw.SeenAt.After(rec.SeenAt) {
				rec.SeenAt = raw.SeenAt
			}
		}
	}

	out := make([]model.CompetitorRecord, 0, len(byDomain))
	for _, rec := range byDomain {
		rec.SortSources()
		sort.Strings(rec.Keywords)
		out = append(out, *rec)
	}

	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].Metric(model.MetricTrafficShare), out[j].Metric(model.MetricTrafficShare)
		if ti != tj {
			return ti > tj
		}
		ki, kj := out[i].Metric(model.MetricCommonKeywords), out[j].Metric(model.MetricCommonKeywords)
		if ki != kj {
			return ki > kj
		}
		return out[i].Domain < out[j].Domain
	})

	return out
}

// ExclusionSet canonicalizes the subject's own domains for merge exclusion.
func ExclusionSet(domains ...string) map[string]bool {
	set := make(map[string]bool, len(domains))
	for _, d := range domains {
		if key := model.MustCanonicalDomain(d); key != "" {
			set[key] = true
		}
	}
	return set
}

// MergeSections folds per-source sections into one bundle. Later sources in
// name order win a contested section slot, keeping the result independent of
// arrival order.
func MergeSections(domain string, lists []SourceSections) *model.MetricsBundle {
	sorted := make([]SourceSections, len(lists))
	copy(sorted, lists)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Source < sorted[j].Source })

	bundle := &model.MetricsBundle{Domain: domain}
	for _, list := range sorted {
		for i := range list.Sections {
			list.Sections[i].Apply(bundle)
		}
	}
	return bundle
}

func addSource(rec *model.CompetitorRecord, name string) {
	if !rec.HasSource(name) {
		rec.Sources = append(rec.Sources, name)
	}
}

func unionStrings(a, b []string) []string {
	if len(b) == 0 {
		return a
	}
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range append(a, b...) {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
