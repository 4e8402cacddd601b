package contract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestActionType_RequiredParamsTable(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"target"}, ActionNavigate.RequiredParams())
	assert.Equal(t, []string{"target", "item"}, ActionPick.RequiredParams())
	assert.Equal(t, []string{"target", "item"}, ActionPlace.RequiredParams())
	assert.Empty(t, ActionWait.RequiredParams())
	assert.Equal(t, []string{"target", "item"}, ActionHandover.RequiredParams())
}

func TestConstructors_SatisfyTheirOwnTable(t *testing.T) {
	t.Parallel()

	actions := []AbstractAction{
		NewNavigate("zone_NE"),
		NewPick("shelf_3", "item_3"),
		NewPlace("kitting_table", "item_3"),
		NewWait(),
		NewHandover("human_1", "item_3"),
	}
	for _, a := range actions {
		for _, key := range a.ActionType.RequiredParams() {
			assert.NotEmpty(t, a.Parameters[key], "%s missing %q", a.ActionType, key)
		}
	}
}

func TestParseActionType(t *testing.T) {
	t.Parallel()

	got, err := ParseActionType("navigate")
	require.NoError(t, err)
	assert.Equal(t, ActionNavigate, got)

	_, err = ParseActionType("teleport")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown action type")
}

func TestActionType_DecodeRejectsUnknown(t *testing.T) {
	t.Parallel()

	var a ActionType
	require.Error(t, json.Unmarshal([]byte(`"teleport"`), &a))
	require.Error(t, yaml.Unmarshal([]byte(`fly`), &a))

	require.NoError(t, json.Unmarshal([]byte(`"handover"`), &a))
	assert.Equal(t, ActionHandover, a)
}

func TestAbstractPlan_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	pick := NewPick("shelf_1", "item_1")
	pick.EstimatedDuration = 2.5
	pick.EstimatedPath = []Position{{X: 100, Y: 400}, {X: 100, Y: 150}}

	in := AbstractPlan{
		GoalIntention:      "DELIVER_ITEM",
		Actions:            []AbstractAction{NewNavigate("zone_SW"), pick, NewPlace("kitting_table", "item_1")},
		EstimatedTotalCost: 14.5,
		Metadata:           Meta{"planner": String("astar")},
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out AbstractPlan
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestAbstractAction_ExtraParametersSurvive(t *testing.T) {
	t.Parallel()

	// Unknown extra keys are allowed on the wire; only required keys are
	// enforced by validation.
	raw := `{"action_type":"navigate","parameters":{"target":"zone_NE","speed_hint":"slow"},"estimated_duration":0}`
	var a AbstractAction
	require.NoError(t, json.Unmarshal([]byte(raw), &a))
	assert.Equal(t, "zone_NE", a.Parameters["target"])
	assert.Equal(t, "slow", a.Parameters["speed_hint"])
}
