package validate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alineos/kitcell/internal/contract"
	"github.com/alineos/kitcell/internal/domain"
	"github.com/alineos/kitcell/internal/domaingen"
	"github.com/alineos/kitcell/internal/knowledge"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	env, err := domain.New(domaingen.TestCell())
	require.NoError(t, err)
	return New(env, knowledge.Default())
}

func requireViolation(t *testing.T, err error, fragment string) {
	t.Helper()
	require.Error(t, err)
	var sv *contract.SchemaViolation
	require.ErrorAs(t, err, &sv)
	assert.Contains(t, err.Error(), fragment)
}

func validObservation() contract.Observation {
	return contract.NewObservation(1.0, "human_1", "move_to_shelf_3",
		contract.SpatialContext{Position: contract.Position{X: 1350, Y: 120}, Orientation: 1.57, Zone: "zone_SE"},
		contract.ActionContext{TargetObject: "item_3", Progress: 0.5})
}

func TestObservation(t *testing.T) {
	t.Parallel()
	v := newValidator(t)

	require.NoError(t, v.Observation(validObservation()))

	o := validObservation()
	o.Confidence = 1.2
	requireViolation(t, v.Observation(o), "confidence")

	o = validObservation()
	o.ActionContext.Progress = -0.1
	requireViolation(t, v.Observation(o), "progress")

	o = validObservation()
	o.SpatialContext.Zone = "zone_XX"
	requireViolation(t, v.Observation(o), "unknown zone")

	o = validObservation()
	o.SpatialContext.Zone = "" // zone is optional
	require.NoError(t, v.Observation(o))

	o = validObservation()
	o.AgentID = ""
	requireViolation(t, v.Observation(o), "agent_id")

	o = validObservation()
	o.Confidence = math.NaN()
	requireViolation(t, v.Observation(o), "confidence")

	o = validObservation()
	o.ActionContext.Progress = math.NaN()
	requireViolation(t, v.Observation(o), "progress")
}

func validBelief() contract.BeliefState {
	return contract.BeliefState{
		Timestamp:    2.0,
		AgentID:      "human_1",
		Distribution: map[string]float64{"DELIVER_ITEM": 0.7, "COFFEE_BREAK": 0.3},
		MostLikely:   "DELIVER_ITEM",
		Confidence:   0.8,
		PredictedNextActions: map[string][]contract.ActionType{
			"DELIVER_ITEM": {contract.ActionNavigate, contract.ActionPick},
		},
	}
}

func TestBeliefState(t *testing.T) {
	t.Parallel()
	v := newValidator(t)

	require.NoError(t, v.BeliefState(validBelief()))

	b := validBelief()
	b.Distribution = map[string]float64{"DELIVER_ITEM": 0.7, "COFFEE_BREAK": 0.4}
	requireViolation(t, v.BeliefState(b), "mass")

	b = validBelief()
	b.Distribution["DELIVER_ITEM"] = 1.7
	requireViolation(t, v.BeliefState(b), "outside [0, 1]")

	b = validBelief()
	b.MostLikely = "COFFEE_BREAK"
	requireViolation(t, v.BeliefState(b), "argmax")

	b = validBelief()
	b.Distribution = map[string]float64{"SKYDIVING": 1.0}
	b.MostLikely = "SKYDIVING"
	b.PredictedNextActions = nil
	requireViolation(t, v.BeliefState(b), "unknown intention")

	b = validBelief()
	b.PredictedNextActions["FETCH_TOOL"] = []contract.ActionType{contract.ActionWait}
	requireViolation(t, v.BeliefState(b), "not in the distribution")

	b = validBelief()
	b.PredictedNextActions["DELIVER_ITEM"] = []contract.ActionType{"teleport"}
	requireViolation(t, v.BeliefState(b), "unknown action type")

	b = validBelief()
	b.Confidence = math.NaN()
	requireViolation(t, v.BeliefState(b), "confidence")
}

func validWorld() contract.WorldState {
	return contract.WorldState{
		Timestamp: 3.0,
		AgentStates: map[string]contract.AgentState{
			"human_1": {AgentID: "human_1", CurrentZone: "zone_SE", Holding: "item_3"},
			"robot_1": {AgentID: "robot_1", CurrentZone: "zone_NW"},
		},
		ObjectLocations: map[string]string{
			"item_1": "shelf_1",
			"item_2": "zone_SW",
		},
		Predicates: []string{"path_clear"},
	}
}

func TestWorldState(t *testing.T) {
	t.Parallel()
	v := newValidator(t)

	require.NoError(t, v.WorldState(validWorld()))

	w := validWorld()
	w.ObjectLocations["item_1"] = "warehouse_9"
	requireViolation(t, v.WorldState(w), "not a zone, shelf or table")

	w = validWorld()
	w.AgentStates["human_1"] = contract.AgentState{AgentID: "human_1", CurrentZone: "zone_XX"}
	requireViolation(t, v.WorldState(w), "unknown zone")

	w = validWorld()
	w.AgentStates["human_1"] = contract.AgentState{AgentID: "human_1", CurrentZone: "zone_SE", Holding: "item_99"}
	requireViolation(t, v.WorldState(w), "unknown item")

	w = validWorld()
	w.AgentStates["robot_1"] = contract.AgentState{AgentID: "robot_1", CurrentZone: "zone_NW", Holding: "item_3"}
	requireViolation(t, v.WorldState(w), "held by both")

	w = validWorld()
	w.AgentStates["ghost"] = contract.AgentState{AgentID: "human_2", CurrentZone: "zone_SE"}
	requireViolation(t, v.WorldState(w), "does not match")
}

func validPlan() contract.AbstractPlan {
	pick := contract.NewPick("shelf_3", "item_3")
	pick.EstimatedDuration = 2.0
	return contract.AbstractPlan{
		GoalIntention:      "DELIVER_ITEM",
		Actions:            []contract.AbstractAction{contract.NewNavigate("zone_SE"), pick, contract.NewPlace("kitting_table", "item_3")},
		EstimatedTotalCost: 10.0,
	}
}

func TestPlan(t *testing.T) {
	t.Parallel()
	v := newValidator(t)

	require.NoError(t, v.Plan(validPlan()))

	p := validPlan()
	p.GoalIntention = "WORLD_DOMINATION"
	requireViolation(t, v.Plan(p), "unknown intention")

	p = validPlan()
	p.GoalIntention = "" // optional
	require.NoError(t, v.Plan(p))

	p = validPlan()
	p.EstimatedTotalCost = -1
	requireViolation(t, v.Plan(p), "negative")

	p = validPlan()
	p.Actions[1].Parameters = map[string]string{"target": "shelf_3"} // item missing
	requireViolation(t, v.Plan(p), "missing required parameter")

	p = validPlan()
	p.Actions[0].ActionType = "teleport"
	requireViolation(t, v.Plan(p), "unknown action type")

	p = validPlan()
	p.Actions[2].EstimatedDuration = -0.5
	requireViolation(t, v.Plan(p), "negative")

	p = validPlan()
	p.Actions[0].Parameters["speed_hint"] = "slow" // extra keys allowed
	require.NoError(t, v.Plan(p))
}

func TestTaskInstance(t *testing.T) {
	t.Parallel()
	v := newValidator(t)

	ti := contract.NewTaskInstance("DELIVER_ITEM", contract.Meta{"item": contract.String("item_1")})
	require.NoError(t, v.TaskInstance(ti))

	bad := ti
	bad.SchemaID = "UNKNOWN_TASK"
	requireViolation(t, v.TaskInstance(bad), "unknown schema")

	bad = contract.NewTaskInstance("DELIVER_ITEM", contract.Meta{})
	requireViolation(t, v.TaskInstance(bad), "missing parameter")

	bad = contract.NewTaskInstance("DELIVER_ITEM", contract.Meta{
		"item":  contract.String("item_1"),
		"speed": contract.String("fast"),
	})
	requireViolation(t, v.TaskInstance(bad), "not declared")

	bad = ti
	bad.InstanceID = ""
	requireViolation(t, v.TaskInstance(bad), "instance_id")
}

func TestStreamMonitor(t *testing.T) {
	t.Parallel()

	m := NewStreamMonitor()

	require.NoError(t, m.Check("human_1", 1.0))
	require.NoError(t, m.Check("human_1", 1.0), "equal timestamps are allowed")
	require.NoError(t, m.Check("human_1", 2.5))
	require.NoError(t, m.Check("human_2", 0.5), "streams are independent per agent")

	err := m.Check("human_1", 2.0)
	requireViolation(t, err, "moves backwards")

	o := validObservation()
	o.Timestamp = 9.0
	require.NoError(t, m.Observation(o))
}
