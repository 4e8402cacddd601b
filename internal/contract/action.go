package contract

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ActionType enumerates the high-level actions a robot can perform. The
// enumeration is closed: planners emit nothing else and embodiment layers
// reject anything else at decode time.
type ActionType string

const (
	ActionNavigate ActionType = "navigate"
	ActionPick     ActionType = "pick"
	ActionPlace    ActionType = "place"
	ActionWait     ActionType = "wait"
	ActionHandover ActionType = "handover"
)

// requiredParams is the per-type parameter table. Both the validator and
// embodiment layers destructure Parameters through it, so the two sides can
// never disagree about an action's shape.
var requiredParams = map[ActionType][]string{
	ActionNavigate: {"target"},
	ActionPick:     {"target", "item"},
	ActionPlace:    {"target", "item"},
	ActionWait:     {},
	ActionHandover: {"target", "item"},
}

// ActionTypes returns every member of the closed enumeration in a fixed
// order.
func ActionTypes() []ActionType {
	return []ActionType{ActionNavigate, ActionPick, ActionPlace, ActionWait, ActionHandover}
}

// ParseActionType converts a wire identifier into an ActionType.
func ParseActionType(s string) (ActionType, error) {
	t := ActionType(s)
	if _, ok := requiredParams[t]; !ok {
		return "", fmt.Errorf("unknown action type %q", s)
	}
	return t, nil
}

// Valid reports whether t is a member of the closed enumeration.
func (t ActionType) Valid() bool {
	_, ok := requiredParams[t]
	return ok
}

// RequiredParams returns the parameter keys an action of this type must
// carry. The returned slice is shared; callers must not mutate it.
func (t ActionType) RequiredParams() []string {
	return requiredParams[t]
}

func (t *ActionType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseActionType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t *ActionType) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseActionType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// AbstractAction is one step of an AbstractPlan: an action type plus the
// parameters its type requires. The estimated path, duration and
// constraint bags are execution hints; a simulated embodiment may consume
// them directly, a physical one is free to ignore them. Immutable once
// planned. EstimatedDuration is in seconds.
type AbstractAction struct {
	ActionType          ActionType        `json:"action_type"              yaml:"action_type"`
	Parameters          map[string]string `json:"parameters"               yaml:"parameters"`
	EstimatedPath       []Position        `json:"estimated_path,omitempty" yaml:"estimated_path,omitempty"`
	EstimatedDuration   float64           `json:"estimated_duration"       yaml:"estimated_duration"`
	SpatialConstraints  Meta              `json:"spatial_constraints,omitempty"  yaml:"spatial_constraints,omitempty"`
	TemporalConstraints Meta              `json:"temporal_constraints,omitempty" yaml:"temporal_constraints,omitempty"`
}

// The per-kind constructors below are the only way this repository builds
// actions: each one fixes the parameter shape at construction, so a missing
// required parameter cannot occur on instances built through them.

// NewNavigate builds a navigation action toward a zone, shelf or table.
func NewNavigate(target string) AbstractAction {
	return AbstractAction{
		ActionType: ActionNavigate,
		Parameters: map[string]string{"target": target},
	}
}

// NewPick builds a pick action: grasp item at target.
func NewPick(target, item string) AbstractAction {
	return AbstractAction{
		ActionType: ActionPick,
		Parameters: map[string]string{"target": target, "item": item},
	}
}

// NewPlace builds a place action: put item down at target.
func NewPlace(target, item string) AbstractAction {
	return AbstractAction{
		ActionType: ActionPlace,
		Parameters: map[string]string{"target": target, "item": item},
	}
}

// NewWait builds a wait action. It carries no parameters.
func NewWait() AbstractAction {
	return AbstractAction{
		ActionType: ActionWait,
		Parameters: map[string]string{},
	}
}

// NewHandover builds a handover action: pass item to the agent at target.
func NewHandover(target, item string) AbstractAction {
	return AbstractAction{
		ActionType: ActionHandover,
		Parameters: map[string]string{"target": target, "item": item},
	}
}

// AbstractPlan is the planner's output for one goal intention. Actions
// execute in list order unless an action's temporal constraints say
// otherwise. A plan is created once per goal-intention change and consumed
// incrementally as actions are issued. EstimatedTotalCost is in abstract
// cost units and must be non-negative.
type AbstractPlan struct {
	GoalIntention      string           `json:"goal_intention"          yaml:"goal_intention"`
	Actions            []AbstractAction `json:"actions"                 yaml:"actions"`
	EstimatedTotalCost float64          `json:"estimated_total_cost"    yaml:"estimated_total_cost"`
	Contingencies      Meta             `json:"contingencies,omitempty" yaml:"contingencies,omitempty"`
	Metadata           Meta             `json:"metadata,omitempty"      yaml:"metadata,omitempty"`
}
