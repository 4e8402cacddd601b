// Package domaingen emits domain environment files. Until a parser for
// external world descriptions (e.g. a simulator's world export) lands, the
// only supported source is the built-in test cell; asking for anything else
// fails loudly instead of silently emitting test data.
package domaingen

import (
	"fmt"

	"github.com/alineos/kitcell/internal/contract"
	"github.com/alineos/kitcell/internal/domain"
)

// UnsupportedInputError reports a request to parse an external world
// description that no parser exists for yet. Fatal for the invocation; no
// output file is written.
type UnsupportedInputError struct {
	Path string
}

func (e *UnsupportedInputError) Error() string {
	return fmt.Sprintf("no parser for external world description %q", e.Path)
}

// Generate builds the domain document for the given input path. An empty
// input selects the built-in test cell; anything else is not yet supported.
func Generate(inputPath string) (domain.Document, error) {
	if inputPath != "" {
		return domain.Document{}, &UnsupportedInputError{Path: inputPath}
	}
	return TestCell(), nil
}

// TestCell returns the fixed kitting-cell environment used when no external
// world description is supplied: a 1600x800 grid split into four quadrant
// zones, three shelves, one kitting table, two doors and three items.
func TestCell() domain.Document {
	return domain.Document{
		Metadata: domain.Metadata{
			Name:        "test_kitting_cell",
			Description: "Test environment for intention recognition",
			Version:     "1.0",
			Source:      "hardcoded_test_data",
		},
		Environment: domain.Grid{Width: 1600, Height: 800, Units: "pixels"},
		Zones: []domain.Zone{
			{ID: "zone_SE", Bounds: domain.Bounds{XMin: 800, XMax: 1600, YMin: 0, YMax: 400}, Label: "southeast_storage"},
			{ID: "zone_SW", Bounds: domain.Bounds{XMin: 0, XMax: 800, YMin: 0, YMax: 400}, Label: "southwest_storage"},
			{ID: "zone_NW", Bounds: domain.Bounds{XMin: 0, XMax: 800, YMin: 400, YMax: 800}, Label: "northwest_work"},
			{ID: "zone_NE", Bounds: domain.Bounds{XMin: 800, XMax: 1600, YMin: 400, YMax: 800}, Label: "northeast_work"},
		},
		Shelves: []domain.Shelf{
			{ID: "shelf_1", Position: contract.Position{X: 100, Y: 100}, Size: contract.Size{W: 100, H: 100}, Slots: 4, Zone: "zone_SW"},
			{ID: "shelf_2", Position: contract.Position{X: 300, Y: 100}, Size: contract.Size{W: 100, H: 100}, Slots: 4, Zone: "zone_SW"},
			{ID: "shelf_3", Position: contract.Position{X: 1400, Y: 100}, Size: contract.Size{W: 100, H: 100}, Slots: 4, Zone: "zone_SE"},
		},
		Tables: []domain.Table{
			{ID: "kitting_table", Position: contract.Position{X: 650, Y: 710}, Size: contract.Size{W: 300, H: 90}, Zone: "zone_NW"},
		},
		Doors: []domain.Door{
			{ID: "south_exit", Position: contract.Position{X: 725, Y: 0}, Size: contract.Size{W: 150, H: 30}, Function: domain.DoorExit},
			{ID: "north_entry_A", Position: contract.Position{X: 1450, Y: 770}, Size: contract.Size{W: 150, H: 30}, Function: domain.DoorEnter},
		},
		Items: []domain.Item{
			{ID: "item_1", Type: "part_A", InitialLocation: "shelf_1", Size: contract.Size{W: 25, H: 25}},
			{ID: "item_2", Type: "part_A", InitialLocation: "shelf_2", Size: contract.Size{W: 25, H: 25}},
			{ID: "item_3", Type: "part_B", InitialLocation: "shelf_3", Size: contract.Size{W: 25, H: 25}},
		},
	}
}

// Summary counts what a generated document contains.
type Summary struct {
	Zones   int
	Shelves int
	Tables  int
	Doors   int
	Items   int
	Width   float64
	Height  float64
}

// Summarize counts the collections of a document for reporting.
func Summarize(doc domain.Document) Summary {
	return Summary{
		Zones:   len(doc.Zones),
		Shelves: len(doc.Shelves),
		Tables:  len(doc.Tables),
		Doors:   len(doc.Doors),
		Items:   len(doc.Items),
		Width:   doc.Environment.Width,
		Height:  doc.Environment.Height,
	}
}
