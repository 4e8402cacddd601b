// Package validate gates contract instances at component boundaries. The
// validator takes the catalogs it resolves against (domain environment,
// task knowledge) as explicit inputs rather than ambient state, so every
// check is deterministic and testable in isolation. All checks are pure and
// run at construction time: a malformed instance never enters the pipeline.
package validate

import (
	"fmt"
	"math"

	"github.com/alineos/kitcell/internal/contract"
	"github.com/alineos/kitcell/internal/domain"
	"github.com/alineos/kitcell/internal/knowledge"
)

// DefaultSumTolerance bounds |sum(distribution) - 1| for a BeliefState that
// has already been through aggregation.
const DefaultSumTolerance = 1e-6

// Validator checks contract instances against the run's catalogs. Zero
// side effects; a Validator is safe for concurrent use.
type Validator struct {
	env       *domain.Environment
	tasks     *knowledge.Catalog
	Tolerance float64
}

// New builds a Validator over the given catalogs with the default
// probability-sum tolerance.
func New(env *domain.Environment, tasks *knowledge.Catalog) *Validator {
	return &Validator{env: env, tasks: tasks, Tolerance: DefaultSumTolerance}
}

// Observation checks confidence and progress bounds and, when the spatial
// context names a zone, that the zone exists. The embodiment layer must not
// publish an observation that fails here.
func (v *Validator) Observation(o contract.Observation) error {
	if o.AgentID == "" {
		return contract.Violationf("Observation", "agent_id", "empty")
	}
	if o.Confidence < 0 || o.Confidence > 1 || math.IsNaN(o.Confidence) {
		return contract.Violationf("Observation", "confidence", "%v outside [0, 1]", o.Confidence)
	}
	if p := o.ActionContext.Progress; p < 0 || p > 1 || math.IsNaN(p) {
		return contract.Violationf("Observation", "action_context.progress", "%v outside [0, 1]", p)
	}
	if z := o.SpatialContext.Zone; z != "" && !v.env.ZoneExists(z) {
		return contract.Violationf("Observation", "spatial_context.zone", "unknown zone %q", z)
	}
	return nil
}

// BeliefState checks probability bounds, unit mass within tolerance, the
// most_likely selection, and that every referenced intention and predicted
// action type is known. A failure here is a recognizer bug, not a
// recoverable runtime condition.
func (v *Validator) BeliefState(b contract.BeliefState) error {
	if len(b.Distribution) == 0 {
		return contract.Violationf("BeliefState", "distribution", "empty distribution")
	}
	if b.Confidence < 0 || b.Confidence > 1 || math.IsNaN(b.Confidence) {
		return contract.Violationf("BeliefState", "confidence", "%v outside [0, 1]", b.Confidence)
	}

	sum := 0.0
	for id, p := range b.Distribution {
		if p < 0 || p > 1 || math.IsNaN(p) {
			return contract.Violationf("BeliefState", "distribution",
				"probability %v for %q outside [0, 1]", p, id)
		}
		if !v.tasks.KnownIntention(id) {
			return contract.Violationf("BeliefState", "distribution", "unknown intention %q", id)
		}
		sum += p
	}
	if math.Abs(sum-1) > v.Tolerance {
		return contract.Violationf("BeliefState", "distribution",
			"mass %v not within %v of 1.0", sum, v.Tolerance)
	}

	if want := contract.MostLikelyIntention(b.Distribution); b.MostLikely != want {
		return contract.Violationf("BeliefState", "most_likely",
			"%q does not match argmax %q", b.MostLikely, want)
	}

	for id, seq := range b.PredictedNextActions {
		if _, ok := b.Distribution[id]; !ok {
			return contract.Violationf("BeliefState", "predicted_next_actions",
				"intention %q is not in the distribution", id)
		}
		for _, a := range seq {
			if !a.Valid() {
				return contract.Violationf("BeliefState", "predicted_next_actions",
					"intention %q predicts unknown action type %q", id, a)
			}
		}
	}
	return nil
}

// WorldState checks referential integrity of object locations and agent
// states against the domain environment, and that no item is held by two
// agents at once.
func (v *Validator) WorldState(w contract.WorldState) error {
	for objID, locID := range w.ObjectLocations {
		if _, ok := v.env.ResolveLocation(locID); !ok {
			return contract.Violationf("WorldState", "object_locations",
				"object %q is at %q, which is not a zone, shelf or table", objID, locID)
		}
	}

	heldBy := make(map[string]string) // item id -> agent id
	for key, as := range w.AgentStates {
		if key != as.AgentID {
			return contract.Violationf("WorldState", "agent_states",
				"key %q does not match embedded agent_id %q", key, as.AgentID)
		}
		if !v.env.ZoneExists(as.CurrentZone) {
			return contract.Violationf("WorldState", "agent_states",
				"agent %q is in unknown zone %q", as.AgentID, as.CurrentZone)
		}
		if as.Holding == "" {
			continue
		}
		if !v.env.ItemExists(as.Holding) {
			return contract.Violationf("WorldState", "agent_states",
				"agent %q holds unknown item %q", as.AgentID, as.Holding)
		}
		if other, taken := heldBy[as.Holding]; taken {
			return contract.Violationf("WorldState", "agent_states",
				"item %q held by both %q and %q", as.Holding, other, as.AgentID)
		}
		heldBy[as.Holding] = as.AgentID
	}
	return nil
}

// Plan checks every action's type and parameter shape against the closed
// enumeration and its required-parameter table, that durations and total
// cost are non-negative, and that a non-empty goal intention is part of the
// vocabulary.
func (v *Validator) Plan(p contract.AbstractPlan) error {
	if p.GoalIntention != "" && !v.tasks.KnownIntention(p.GoalIntention) {
		return contract.Violationf("AbstractPlan", "goal_intention", "unknown intention %q", p.GoalIntention)
	}
	if p.EstimatedTotalCost < 0 {
		return contract.Violationf("AbstractPlan", "estimated_total_cost", "%v is negative", p.EstimatedTotalCost)
	}
	for i, a := range p.Actions {
		if err := v.Action(a); err != nil {
			if sv, ok := err.(*contract.SchemaViolation); ok {
				return contract.Violationf("AbstractPlan", indexedField("actions", i, sv.Field), "%s", sv.Reason)
			}
			return err
		}
	}
	return nil
}

// Action checks one action in isolation: known type, required parameters
// present and non-empty, non-negative duration. Parameter keys beyond the
// required set are allowed.
func (v *Validator) Action(a contract.AbstractAction) error {
	if !a.ActionType.Valid() {
		return contract.Violationf("AbstractAction", "action_type", "unknown action type %q", a.ActionType)
	}
	for _, key := range a.ActionType.RequiredParams() {
		if a.Parameters[key] == "" {
			return contract.Violationf("AbstractAction", "parameters",
				"%s action is missing required parameter %q", a.ActionType, key)
		}
	}
	if a.EstimatedDuration < 0 {
		return contract.Violationf("AbstractAction", "estimated_duration", "%v is negative", a.EstimatedDuration)
	}
	return nil
}

// TaskInstance checks that the schema reference resolves and the parameter
// keys match the schema's declared names exactly: no missing, no extra.
func (v *Validator) TaskInstance(ti contract.TaskInstance) error {
	if ti.InstanceID == "" {
		return contract.Violationf("TaskInstance", "instance_id", "empty")
	}
	schema, ok := v.tasks.Schema(ti.SchemaID)
	if !ok {
		return contract.Violationf("TaskInstance", "schema_id", "unknown schema %q", ti.SchemaID)
	}
	for _, name := range schema.Parameters {
		if _, ok := ti.Parameters[name]; !ok {
			return contract.Violationf("TaskInstance", "parameters",
				"missing parameter %q declared by schema %q", name, schema.TaskID)
		}
	}
	if len(ti.Parameters) != len(schema.Parameters) {
		declared := make(map[string]struct{}, len(schema.Parameters))
		for _, name := range schema.Parameters {
			declared[name] = struct{}{}
		}
		for name := range ti.Parameters {
			if _, ok := declared[name]; !ok {
				return contract.Violationf("TaskInstance", "parameters",
					"parameter %q is not declared by schema %q", name, schema.TaskID)
			}
		}
	}
	return nil
}

func indexedField(collection string, i int, field string) string {
	return fmt.Sprintf("%s[%d].%s", collection, i, field)
}
