package validate

import (
	"sync"

	"github.com/alineos/kitcell/internal/contract"
)

// StreamMonitor enforces the per-agent stream invariant: timestamps within
// one agent's observation (or belief) stream never decrease. Producers call
// it at publish time. It is the only stateful piece of the validation layer
// and is safe for concurrent use.
type StreamMonitor struct {
	mu   sync.Mutex
	last map[string]float64
}

// NewStreamMonitor returns an empty monitor.
func NewStreamMonitor() *StreamMonitor {
	return &StreamMonitor{last: make(map[string]float64)}
}

// Check records ts for agentID, failing if it moves backwards relative to
// the last recorded timestamp for that agent. Equal timestamps are allowed.
func (m *StreamMonitor) Check(agentID string, ts float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, seen := m.last[agentID]; seen && ts < prev {
		return contract.Violationf("Observation", "timestamp",
			"%v moves backwards for agent %q (last was %v)", ts, agentID, prev)
	}
	m.last[agentID] = ts
	return nil
}

// Observation is a convenience wrapper around Check.
func (m *StreamMonitor) Observation(o contract.Observation) error {
	return m.Check(o.AgentID, o.Timestamp)
}
