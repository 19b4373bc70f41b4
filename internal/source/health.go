package source

import (
	"sync"

	"go.uber.org/zap"
)

// HealthState is the availability state of one source.
type HealthState int

const (
	// Healthy sources are queried by the orchestrator.
	Healthy HealthState = iota
	// Degraded sources are skipped until re-probed or the tracker is reset.
	Degraded
)

func (s HealthState) String() string {
	if s == Degraded {
		return "degraded"
	}
	return "healthy"
}

// HealthTracker records per-source availability for the lifetime of the
// process. Any failure marks the source Degraded so later aggregate calls
// skip it instead of paying its timeout again. There is no half-open state
// here; adapter-level breakers handle recovery probing below this layer.
type HealthTracker struct {
	mu    sync.RWMutex
	state map[string]HealthState
}

// NewHealthTracker creates a tracker where every source starts Healthy.
func NewHealthTracker() *HealthTracker {
	return &HealthTracker{state: make(map[string]HealthState)}
}

// MarkFailure flags the source Degraded.
func (t *HealthTracker) MarkFailure(sourceID string) {
	t.mu.Lock()
	prev := t.state[sourceID]
	t.state[sourceID] = Degraded
	t.mu.Unlock()

	if prev != Degraded {
		zap.L().Warn("source degraded", zap.String("source", sourceID))
	}
}

// MarkSuccess flags the source Healthy again.
func (t *HealthTracker) MarkSuccess(sourceID string) {
	t.mu.Lock()
	prev := t.state[sourceID]
	t.state[sourceID] = Healthy
	t.mu.Unlock()

	if prev == Degraded {
		zap.L().Info("source recovered", zap.String("source", sourceID))
	}
}

// Healthy reports whether the source may be queried. Unknown sources are
// Healthy by definition.
func (t *HealthTracker) Healthy(sourceID string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state[sourceID] == Healthy
}

// Snapshot returns a copy of all known source states for observability.
func (t *HealthTracker) Snapshot() map[string]HealthState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]HealthState, len(t.state))
	for id, s := range t.state {
		out[id] = s
	}
	return out
}

// Reset clears all state, returning every source to Healthy. Used by
// embedding services that choose to re-probe degraded sources.
func (t *HealthTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = make(map[string]HealthState)
}
