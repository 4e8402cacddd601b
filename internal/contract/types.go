// Package contract defines the canonical data types exchanged between the
// cognitive layer (intention recognition, adaptive planning) and embodiment
// layers (physics simulators, robot middleware). The types are the boundary
// contract: instances are immutable once validated, are passed by value or
// serialized, never shared as mutable objects, and every identifier they
// carry resolves against the domain environment catalog loaded for the run.
package contract

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Explicit schema defaults. They are applied at construction time and are
// never used to paper over an invalid input.
const (
	DefaultConfidence = 1.0
	DefaultProgress   = 0.0
)

// Position is a point in domain grid coordinates. On the wire it is a
// two-element [x, y] array.
type Position struct {
	X float64
	Y float64
}

func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

func (p *Position) UnmarshalJSON(data []byte) error {
	return decodePair(func(x, y float64) { p.X, p.Y = x, y }, func(dst *[]float64) error {
		return json.Unmarshal(data, dst)
	})
}

func (p Position) MarshalYAML() (any, error) {
	return flowPair(p.X, p.Y)
}

func (p *Position) UnmarshalYAML(node *yaml.Node) error {
	return decodePair(func(x, y float64) { p.X, p.Y = x, y }, func(dst *[]float64) error {
		return node.Decode(dst)
	})
}

// Size is a two-dimensional extent. Like Position it serializes as a
// two-element [width, height] array.
type Size struct {
	W float64
	H float64
}

func (s Size) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{s.W, s.H})
}

func (s *Size) UnmarshalJSON(data []byte) error {
	return decodePair(func(w, h float64) { s.W, s.H = w, h }, func(dst *[]float64) error {
		return json.Unmarshal(data, dst)
	})
}

func (s Size) MarshalYAML() (any, error) {
	return flowPair(s.W, s.H)
}

func (s *Size) UnmarshalYAML(node *yaml.Node) error {
	return decodePair(func(w, h float64) { s.W, s.H = w, h }, func(dst *[]float64) error {
		return node.Decode(dst)
	})
}

func decodePair(set func(a, b float64), decode func(*[]float64) error) error {
	var vals []float64
	if err := decode(&vals); err != nil {
		return err
	}
	if len(vals) != 2 {
		return fmt.Errorf("want a two-element pair, got %d elements", len(vals))
	}
	set(vals[0], vals[1])
	return nil
}

func flowPair(a, b float64) (*yaml.Node, error) {
	var node yaml.Node
	if err := node.Encode([]float64{a, b}); err != nil {
		return nil, err
	}
	node.Style = yaml.FlowStyle
	return &node, nil
}

// SpatialContext locates an observed action. Orientation is in radians,
// counter-clockwise from the positive x axis. Zone, when set, must name a
// zone from the domain environment.
type SpatialContext struct {
	Position    Position `json:"position"        yaml:"position"`
	Orientation float64  `json:"orientation"     yaml:"orientation"`
	Zone        string   `json:"zone,omitempty"  yaml:"zone,omitempty"`
}

// ActionContext carries what is known about the action beyond its location.
// Progress runs from 0.0 (just started) to 1.0 (complete).
type ActionContext struct {
	TargetObject string  `json:"target_object,omitempty" yaml:"target_object,omitempty"`
	Progress     float64 `json:"progress"                yaml:"progress"`
	Metadata     Meta    `json:"metadata,omitempty"      yaml:"metadata,omitempty"`
}

// Observation is a discrete report of detected human behavior, produced by
// an embodiment layer and consumed exactly once by the recognizer.
// Timestamps are float64 seconds (wall or simulation time, as the producer
// chooses; consumers rely only on per-agent monotonicity). Immutable once
// constructed.
type Observation struct {
	Timestamp           float64        `json:"timestamp"            yaml:"timestamp"`
	AgentID             string         `json:"agent_id"             yaml:"agent_id"`
	DetectedMicroaction string         `json:"detected_microaction" yaml:"detected_microaction"`
	SpatialContext      SpatialContext `json:"spatial_context"      yaml:"spatial_context"`
	ActionContext       ActionContext  `json:"action_context"       yaml:"action_context"`
	Confidence          float64        `json:"confidence"           yaml:"confidence"`
}

// NewObservation builds an Observation with the schema default confidence.
// Simulated embodiments report perfect detections; real perception stacks
// overwrite Confidence with their own estimate.
func NewObservation(ts float64, agentID, microaction string, spatial SpatialContext, action ActionContext) Observation {
	return Observation{
		Timestamp:           ts,
		AgentID:             agentID,
		DetectedMicroaction: microaction,
		SpatialContext:      spatial,
		ActionContext:       action,
		Confidence:          DefaultConfidence,
	}
}

// BeliefState is the recognizer's probability distribution over candidate
// intentions for one agent. A new BeliefState fully replaces the previous
// one for the same agent; there is no merge.
type BeliefState struct {
	Timestamp    float64            `json:"timestamp"    yaml:"timestamp"`
	AgentID      string             `json:"agent_id"     yaml:"agent_id"`
	Distribution map[string]float64 `json:"distribution" yaml:"distribution"`

	// MostLikely is the distribution key with maximum probability, ties
	// broken lexicographically (see MostLikelyIntention).
	MostLikely string `json:"most_likely" yaml:"most_likely"`

	// Confidence is the recognizer's meta-certainty in the distribution as
	// a whole. It is independent of the distribution's peak value.
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// PredictedNextActions maps intention ids (a subset of Distribution's
	// keys) to the action sequence expected if that intention holds.
	PredictedNextActions map[string][]ActionType `json:"predicted_next_actions,omitempty" yaml:"predicted_next_actions,omitempty"`
}

// MostLikelyIntention returns the distribution key with the highest
// probability. Equal probabilities break lexicographically on intention id
// so every producer selects the same winner.
func MostLikelyIntention(distribution map[string]float64) string {
	var best string
	var bestP float64
	first := true
	for id, p := range distribution {
		if first || p > bestP || (p == bestP && id < best) {
			best, bestP = id, p
			first = false
		}
	}
	return best
}

// AgentState is the symbolic state of a single agent inside a WorldState.
type AgentState struct {
	AgentID     string `json:"agent_id"               yaml:"agent_id"`
	CurrentZone string `json:"current_zone"           yaml:"current_zone"`
	Holding     string `json:"holding,omitempty"      yaml:"holding,omitempty"`
	CurrentTask string `json:"current_task,omitempty" yaml:"current_task,omitempty"`
	Metadata    Meta   `json:"metadata,omitempty"     yaml:"metadata,omitempty"`
}

// WorldState is the embodiment layer's symbolic snapshot of the
// environment. It has a single authoritative writer; each new snapshot
// supersedes the previous one for the run, and readers only ever see the
// latest fully published instance.
type WorldState struct {
	Timestamp       float64               `json:"timestamp"            yaml:"timestamp"`
	AgentStates     map[string]AgentState `json:"agent_states"         yaml:"agent_states"`
	ObjectLocations map[string]string     `json:"object_locations"     yaml:"object_locations"`
	Predicates      []string              `json:"predicates,omitempty" yaml:"predicates,omitempty"`
	Metadata        Meta                  `json:"metadata,omitempty"   yaml:"metadata,omitempty"`
}

// TaskSchema declares the structure of a task type: its parameter names in
// order and the action types that realize it. Foreseeable schemas describe
// expected human behaviors rather than robot-executable tasks.
type TaskSchema struct {
	TaskID        string       `json:"task_id"            yaml:"task_id"`
	Parameters    []string     `json:"parameters"         yaml:"parameters"`
	Decomposition []ActionType `json:"decomposition"      yaml:"decomposition"`
	IsForeseeable bool         `json:"is_foreseeable"     yaml:"is_foreseeable"`
	Metadata      Meta         `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// TaskInstance binds a TaskSchema to concrete parameter values. Its
// parameter keys must match the schema's declared names exactly.
type TaskInstance struct {
	SchemaID   string `json:"schema_id"          yaml:"schema_id"`
	InstanceID string `json:"instance_id"        yaml:"instance_id"`
	Parameters Meta   `json:"parameters"         yaml:"parameters"`
	Metadata   Meta   `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// NewTaskInstance instantiates a schema with a fresh run-unique instance id.
func NewTaskInstance(schemaID string, params Meta) TaskInstance {
	return TaskInstance{
		SchemaID:   schemaID,
		InstanceID: schemaID + "-" + uuid.NewString(),
		Parameters: params,
	}
}
