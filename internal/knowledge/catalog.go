// Package knowledge holds the declarative task structure shared by the
// recognizer and the planner: which task types exist, how they decompose
// into action types, and which of them describe foreseeable human behavior.
// The task ids double as the intention vocabulary that belief distributions
// are validated against.
package knowledge

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/alineos/kitcell/internal/contract"
)

// Catalog is an immutable set of task schemas indexed by task id.
type Catalog struct {
	schemas    map[string]contract.TaskSchema
	intentions []string // sorted task ids
}

// NewCatalog indexes the given schemas. Task ids must be unique, parameter
// names unique within a schema, and every decomposition entry a member of
// the closed action enumeration.
func NewCatalog(schemas []contract.TaskSchema) (*Catalog, error) {
	c := &Catalog{schemas: make(map[string]contract.TaskSchema, len(schemas))}
	for _, s := range schemas {
		if s.TaskID == "" {
			return nil, contract.Violationf("TaskSchema", "task_id", "empty id")
		}
		if _, dup := c.schemas[s.TaskID]; dup {
			return nil, contract.Violationf("TaskSchema", "task_id", "duplicate id %q", s.TaskID)
		}
		seen := make(map[string]struct{}, len(s.Parameters))
		for _, p := range s.Parameters {
			if _, dup := seen[p]; dup {
				return nil, contract.Violationf("TaskSchema", "parameters",
					"schema %q declares parameter %q twice", s.TaskID, p)
			}
			seen[p] = struct{}{}
		}
		for i, a := range s.Decomposition {
			if !a.Valid() {
				return nil, contract.Violationf("TaskSchema", fmt.Sprintf("decomposition[%d]", i),
					"schema %q uses unknown action type %q", s.TaskID, a)
			}
		}
		c.schemas[s.TaskID] = s
		c.intentions = append(c.intentions, s.TaskID)
	}
	sort.Strings(c.intentions)
	return c, nil
}

// Schema looks up a task schema by id.
func (c *Catalog) Schema(id string) (contract.TaskSchema, bool) {
	s, ok := c.schemas[id]
	return s, ok
}

// KnownIntention reports whether id is part of the intention vocabulary.
func (c *Catalog) KnownIntention(id string) bool {
	_, ok := c.schemas[id]
	return ok
}

// Intentions returns the vocabulary in sorted order. The returned slice is
// shared; callers must not mutate it.
func (c *Catalog) Intentions() []string {
	return c.intentions
}

// Foreseeable returns the schemas describing expected human behaviors, in
// intention order.
func (c *Catalog) Foreseeable() []contract.TaskSchema {
	var out []contract.TaskSchema
	for _, id := range c.intentions {
		if s := c.schemas[id]; s.IsForeseeable {
			out = append(out, s)
		}
	}
	return out
}

// Default returns the built-in catalog for the kitting cell.
func Default() *Catalog {
	c, err := NewCatalog([]contract.TaskSchema{
		{
			TaskID:        "COFFEE_BREAK",
			Parameters:    []string{},
			Decomposition: []contract.ActionType{contract.ActionNavigate, contract.ActionWait, contract.ActionNavigate},
			IsForeseeable: true,
		},
		{
			TaskID:        "DELIVER_ITEM",
			Parameters:    []string{"item"},
			Decomposition: []contract.ActionType{contract.ActionNavigate, contract.ActionPick, contract.ActionNavigate, contract.ActionPlace},
		},
		{
			TaskID:        "FETCH_TOOL",
			Parameters:    []string{"item"},
			Decomposition: []contract.ActionType{contract.ActionNavigate, contract.ActionPick, contract.ActionNavigate, contract.ActionHandover},
			IsForeseeable: true,
		},
	})
	if err != nil {
		panic(err) // built-in catalog is validated by tests
	}
	return c
}

// catalogFile is the on-disk shape of a task catalog.
type catalogFile struct {
	Tasks []contract.TaskSchema `yaml:"tasks"`
}

// LoadCatalog reads a task catalog from a YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read task catalog: %w", err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse task catalog: %w", err)
	}
	return NewCatalog(file.Tasks)
}
