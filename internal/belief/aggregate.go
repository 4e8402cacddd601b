// Package belief turns raw recognizer output into valid BeliefStates. The
// recognizer's arithmetic may leave a distribution slightly off unit mass;
// this package decides whether the deviation is numerical noise (keep),
// drift worth renormalizing (fix), or large enough to indicate a
// computation bug (reject).
package belief

import (
	"math"

	"github.com/alineos/kitcell/internal/contract"
)

// Default thresholds on |sum - 1| of a raw distribution.
const (
	DefaultTolerance = 1e-6 // accepted as-is below this
	DefaultMaxDrift  = 1e-3 // renormalized up to this, rejected beyond
)

// Aggregator produces valid BeliefStates from raw distributions.
type Aggregator struct {
	Tolerance float64
	MaxDrift  float64
}

// NewAggregator returns an Aggregator with the default thresholds.
func NewAggregator() Aggregator {
	return Aggregator{Tolerance: DefaultTolerance, MaxDrift: DefaultMaxDrift}
}

// Aggregate builds a BeliefState from a raw (possibly unnormalized)
// distribution. The distribution is copied, renormalized if its mass drifts
// beyond the tolerance, and rejected outright if the drift exceeds MaxDrift
// or any single probability is outside [0, 1]. Confidence is the
// recognizer's meta-certainty and passes through unchanged; it is never
// derived from the distribution.
func (a Aggregator) Aggregate(
	ts float64,
	agentID string,
	raw map[string]float64,
	confidence float64,
	predicted map[string][]contract.ActionType,
) (contract.BeliefState, error) {
	if len(raw) == 0 {
		return contract.BeliefState{}, contract.Violationf("BeliefState", "distribution", "empty distribution")
	}
	if confidence < 0 || confidence > 1 || math.IsNaN(confidence) {
		return contract.BeliefState{}, contract.Violationf("BeliefState", "confidence",
			"%v outside [0, 1]", confidence)
	}

	sum := 0.0
	for id, p := range raw {
		if p < 0 || p > 1 || math.IsNaN(p) {
			return contract.BeliefState{}, contract.Violationf("BeliefState", "distribution",
				"probability %v for %q outside [0, 1]", p, id)
		}
		sum += p
	}

	drift := math.Abs(sum - 1)
	if drift > a.MaxDrift {
		return contract.BeliefState{}, contract.Violationf("BeliefState", "distribution",
			"mass %v drifts %v from 1.0, beyond the %v ceiling: recognizer computation error", sum, drift, a.MaxDrift)
	}

	dist := make(map[string]float64, len(raw))
	if drift > a.Tolerance {
		for id, p := range raw {
			dist[id] = p / sum
		}
	} else {
		for id, p := range raw {
			dist[id] = p
		}
	}

	return contract.BeliefState{
		Timestamp:            ts,
		AgentID:              agentID,
		Distribution:         dist,
		MostLikely:           contract.MostLikelyIntention(dist),
		Confidence:           confidence,
		PredictedNextActions: predicted,
	}, nil
}
