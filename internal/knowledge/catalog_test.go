package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alineos/kitcell/internal/contract"
)

func TestDefault_CatalogIsWellFormed(t *testing.T) {
	t.Parallel()

	c := Default()
	assert.Equal(t, []string{"COFFEE_BREAK", "DELIVER_ITEM", "FETCH_TOOL"}, c.Intentions())

	deliver, ok := c.Schema("DELIVER_ITEM")
	require.True(t, ok)
	assert.Equal(t, []string{"item"}, deliver.Parameters)
	assert.False(t, deliver.IsForeseeable)

	foreseeable := c.Foreseeable()
	require.Len(t, foreseeable, 2)
	assert.Equal(t, "COFFEE_BREAK", foreseeable[0].TaskID)
	assert.Equal(t, "FETCH_TOOL", foreseeable[1].TaskID)
}

func TestNewCatalog_RejectsDuplicateTaskID(t *testing.T) {
	t.Parallel()

	_, err := NewCatalog([]contract.TaskSchema{
		{TaskID: "DELIVER_ITEM"},
		{TaskID: "DELIVER_ITEM"},
	})
	require.Error(t, err)
	var sv *contract.SchemaViolation
	require.ErrorAs(t, err, &sv)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestNewCatalog_RejectsUnknownActionType(t *testing.T) {
	t.Parallel()

	_, err := NewCatalog([]contract.TaskSchema{
		{TaskID: "LEVITATE_ITEM", Decomposition: []contract.ActionType{"levitate"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown action type")
}

func TestNewCatalog_RejectsDuplicateParameter(t *testing.T) {
	t.Parallel()

	_, err := NewCatalog([]contract.TaskSchema{
		{TaskID: "DOUBLE", Parameters: []string{"item", "item"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "twice")
}

func TestLoadCatalog(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tasks.yaml")
	data := `tasks:
  - task_id: DELIVER_ITEM
    parameters: [item]
    decomposition: [navigate, pick, navigate, place]
    is_foreseeable: false
  - task_id: COFFEE_BREAK
    parameters: []
    decomposition: [navigate, wait, navigate]
    is_foreseeable: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"COFFEE_BREAK", "DELIVER_ITEM"}, c.Intentions())
	assert.True(t, c.KnownIntention("COFFEE_BREAK"))
	assert.False(t, c.KnownIntention("FETCH_TOOL"))
}

func TestLoadCatalog_RejectsBadDecomposition(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tasks.yaml")
	data := `tasks:
  - task_id: BROKEN
    parameters: []
    decomposition: [teleport]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := LoadCatalog(path)
	require.Error(t, err)
}
