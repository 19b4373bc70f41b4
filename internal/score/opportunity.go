package score

import (
	"math"
	"sync"

	"github.com/sells-group/intel-cli/internal/model"
)

// OpportunityScorer computes the opportunity potential index, z-normalizing
// interest and competition against a rolling in-process history per subject.
// With no history yet, both z-scores are 0 and the index sits at the neutral
// midpoint.
type OpportunityScorer struct {
	cfg OpportunityConfig

	mu      sync.Mutex
	history map[string]*observationRing
}

// NewOpportunityScorer creates a scorer with an empty history.
func NewOpportunityScorer(cfg OpportunityConfig) *OpportunityScorer {
	if cfg.HistorySize < 2 {
		cfg.HistorySize = 50
	}
	return &OpportunityScorer{cfg: cfg, history: make(map[string]*observationRing)}
}

// Score computes the index for a subtopic under a subject, in [0,100].
// Interest I = ln(1+search_volume) + engagement; competition
// C = (competition_level + content_saturation)/2; both z-normalized against
// the subject's rolling history, then OPI = clamp(((Iz+1)/(Cz+2))*25+25, 0, 100).
func (s *OpportunityScorer) Score(subject string, st model.Subtopic) model.ScoreResult {
	interest := math.Log1p(math.Max(0, st.SearchVolume)) + math.Max(0, st.Engagement)
	competition := (math.Max(0, st.CompetitionLevel) + math.Max(0, st.ContentSaturation)) / 2

	s.mu.Lock()
	ring, ok := s.history[subject]
	if !ok {
		ring = newObservationRing(s.cfg.HistorySize)
		s.history[subject] = ring
	}
	ring.add(interest, competition)
	iMean, iStd := ring.interestStats()
	cMean, cStd := ring.competitionStats()
	s.mu.Unlock()

	iz := zScore(interest, iMean, iStd)
	cz := zScore(competition, cMean, cStd)
	value := opportunityValue(iz, cz)

	return model.ScoreResult{
		Name:  "opportunity_index",
		Value: value,
		Components: map[string]float64{
			"interest":      interest,
			"competition":   competition,
			"interest_z":    iz,
			"competition_z": cz,
		},
		Confidence: clamp(fraction(st.SearchVolume > 0, st.Engagement > 0,
			st.CompetitionLevel > 0, st.ContentSaturation > 0), 0.4, 1),
	}
}

// ResetHistory drops the rolling history for all subjects.
func (s *OpportunityScorer) ResetHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = make(map[string]*observationRing)
}

// opportunityValue maps the z-scores onto [0,100]. The 0/0 corner (iz
// exactly -1 with cz exactly -2) would otherwise produce NaN, which clamp
// passes through.
func opportunityValue(iz, cz float64) float64 {
	raw := (iz + 1) / (cz + 2)
	if math.IsNaN(raw) {
		raw = 0
	}
	return clamp(raw*25+25, 0, 100)
}

func zScore(x, mean, std float64) float64 {
	if std == 0 {
		return 0
	}
	return (x - mean) / std
}

// observationRing holds the last N (interest, competition) observations.
type observationRing struct {
	interest    []float64
	competition []float64
	next        int
	full        bool
}

func newObservationRing(size int) *observationRing {
	return &observationRing{
		interest:    make([]float64, size),
		competition: make([]float64, size),
	}
}

func (r *observationRing) add(i, c float64) {
	r.interest[r.next] = i
	r.competition[r.next] = c
	r.next++
	if r.next == len(r.interest) {
		r.next = 0
		r.full = true
	}
}

func (r *observationRing) size() int {
	if r.full {
		return len(r.interest)
	}
	return r.next
}

func (r *observationRing) interestStats() (mean, std float64) {
	return meanStd(r.interest[:r.size()])
}

func (r *observationRing) competitionStats() (mean, std float64) {
	return meanStd(r.competition[:r.size()])
}

func meanStd(xs []float64) (mean, std float64) {
	n := float64(len(xs))
	if n == 0 {
		return 0, 0
	}
	for _, x := range xs {
		mean += x
	}
	mean /= n

	if n < 2 {
		return mean, 0
	}
	var variance float64
	for _, x := range xs {
		variance += (x - mean) * (x - mean)
	}
	variance /= n
	return mean, math.Sqrt(variance)
}
