// Package domain models the static physical workspace: zones, storage and
// work furniture, doors and items. Every other contract type references the
// workspace by identifier, so the environment doubles as the catalog that
// referential-integrity checks resolve against. A domain file is authored
// once (by the generation tool or a future parser of external world data),
// loaded at startup and read-only for the lifetime of the run.
package domain

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/alineos/kitcell/internal/contract"
)

// Metadata identifies a domain file and where it came from.
type Metadata struct {
	Name        string `json:"name"        yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Version     string `json:"version"     yaml:"version"`
	Source      string `json:"source"      yaml:"source"`
}

// Grid is the overall extent of the workspace floor.
type Grid struct {
	Width  float64 `json:"width"  yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
	Units  string  `json:"units"  yaml:"units"`
}

// Bounds is an axis-aligned rectangle. Containment is half-open:
// [XMin, XMax) x [YMin, YMax), so adjacent zones sharing an edge do not
// both claim it.
type Bounds struct {
	XMin float64 `json:"x_min" yaml:"x_min"`
	XMax float64 `json:"x_max" yaml:"x_max"`
	YMin float64 `json:"y_min" yaml:"y_min"`
	YMax float64 `json:"y_max" yaml:"y_max"`
}

// Contains reports whether p falls inside the rectangle.
func (b Bounds) Contains(p contract.Position) bool {
	return p.X >= b.XMin && p.X < b.XMax && p.Y >= b.YMin && p.Y < b.YMax
}

// Overlaps reports whether two rectangles share interior area.
func (b Bounds) Overlaps(o Bounds) bool {
	return b.XMin < o.XMax && o.XMin < b.XMax && b.YMin < o.YMax && o.YMin < b.YMax
}

// Zone is a named region of the floor.
type Zone struct {
	ID     string `json:"id"     yaml:"id"`
	Bounds Bounds `json:"bounds" yaml:"bounds"`
	Label  string `json:"label"  yaml:"label"`
}

// Shelf is storage furniture with a fixed number of item slots.
type Shelf struct {
	ID       string            `json:"id"       yaml:"id"`
	Position contract.Position `json:"position" yaml:"position"`
	Size     contract.Size     `json:"size"     yaml:"size"`
	Slots    int               `json:"slots"    yaml:"slots"`
	Zone     string            `json:"zone"     yaml:"zone"`
}

// Table is work furniture.
type Table struct {
	ID       string            `json:"id"       yaml:"id"`
	Position contract.Position `json:"position" yaml:"position"`
	Size     contract.Size     `json:"size"     yaml:"size"`
	Zone     string            `json:"zone"     yaml:"zone"`
}

// DoorFunction says which way traffic flows through a door.
type DoorFunction string

const (
	DoorEnter DoorFunction = "enter"
	DoorExit  DoorFunction = "exit"
)

// Door is a floor opening agents appear at or leave through.
type Door struct {
	ID       string            `json:"id"       yaml:"id"`
	Position contract.Position `json:"position" yaml:"position"`
	Size     contract.Size     `json:"size"     yaml:"size"`
	Function DoorFunction      `json:"function" yaml:"function"`
}

// Item is a movable object with a starting location on a shelf or table.
type Item struct {
	ID              string        `json:"id"               yaml:"id"`
	Type            string        `json:"type"             yaml:"type"`
	InitialLocation string        `json:"initial_location" yaml:"initial_location"`
	Size            contract.Size `json:"size"             yaml:"size"`
}

// Document is the on-disk shape of a domain file. Field order matches the
// wire format: metadata, environment, zones, shelves, tables, doors, items.
type Document struct {
	Metadata    Metadata `json:"metadata"    yaml:"metadata"`
	Environment Grid     `json:"environment" yaml:"environment"`
	Zones       []Zone   `json:"zones"       yaml:"zones"`
	Shelves     []Shelf  `json:"shelves"     yaml:"shelves"`
	Tables      []Table  `json:"tables"      yaml:"tables"`
	Doors       []Door   `json:"doors"       yaml:"doors"`
	Items       []Item   `json:"items"       yaml:"items"`
}

// Environment is an indexed, integrity-checked view of a Document. It is
// immutable after New: only read methods are exposed, so concurrent readers
// need no locking.
type Environment struct {
	doc     Document
	zones   map[string]Zone
	shelves map[string]Shelf
	tables  map[string]Table
	items   map[string]Item
}

// New indexes a Document and enforces its referential invariants: ids are
// unique across the location namespace (zones, shelves, tables) and among
// items, furniture zone references resolve, item initial locations resolve
// to a shelf or table, door functions are members of the closed set, and
// zone bounds are well-formed. Breaches surface as SchemaViolation.
func New(doc Document) (*Environment, error) {
	env := &Environment{
		doc:     doc,
		zones:   make(map[string]Zone, len(doc.Zones)),
		shelves: make(map[string]Shelf, len(doc.Shelves)),
		tables:  make(map[string]Table, len(doc.Tables)),
		items:   make(map[string]Item, len(doc.Items)),
	}

	locationIDs := make(map[string]string) // id -> collection name
	claim := func(id, collection, field string) error {
		if id == "" {
			return contract.Violationf("Domain", field, "empty id")
		}
		if prev, dup := locationIDs[id]; dup {
			return contract.Violationf("Domain", field, "id %q already used by %s", id, prev)
		}
		locationIDs[id] = collection
		return nil
	}

	for i, z := range doc.Zones {
		field := indexed("zones", i, "id")
		if err := claim(z.ID, "zones", field); err != nil {
			return nil, err
		}
		if z.Bounds.XMin >= z.Bounds.XMax || z.Bounds.YMin >= z.Bounds.YMax {
			return nil, contract.Violationf("Domain", indexed("zones", i, "bounds"),
				"zone %q has empty or inverted bounds", z.ID)
		}
		env.zones[z.ID] = z
	}
	for i, z := range doc.Zones {
		for _, other := range doc.Zones[i+1:] {
			if z.Bounds.Overlaps(other.Bounds) {
				// Overlap is tolerated with first-match-wins resolution, but
				// it usually means the file was authored wrong.
				log.Warn().Str("zone", z.ID).Str("overlaps", other.ID).
					Msg("zone bounds overlap; ZoneOf resolves to the first match")
			}
		}
	}

	for i, s := range doc.Shelves {
		if err := claim(s.ID, "shelves", indexed("shelves", i, "id")); err != nil {
			return nil, err
		}
		if _, ok := env.zones[s.Zone]; !ok {
			return nil, contract.Violationf("Domain", indexed("shelves", i, "zone"),
				"shelf %q references unknown zone %q", s.ID, s.Zone)
		}
		env.shelves[s.ID] = s
	}
	for i, t := range doc.Tables {
		if err := claim(t.ID, "tables", indexed("tables", i, "id")); err != nil {
			return nil, err
		}
		if _, ok := env.zones[t.Zone]; !ok {
			return nil, contract.Violationf("Domain", indexed("tables", i, "zone"),
				"table %q references unknown zone %q", t.ID, t.Zone)
		}
		env.tables[t.ID] = t
	}

	doorIDs := make(map[string]struct{}, len(doc.Doors))
	for i, d := range doc.Doors {
		if _, dup := doorIDs[d.ID]; dup || d.ID == "" {
			return nil, contract.Violationf("Domain", indexed("doors", i, "id"), "duplicate or empty id %q", d.ID)
		}
		doorIDs[d.ID] = struct{}{}
		if d.Function != DoorEnter && d.Function != DoorExit {
			return nil, contract.Violationf("Domain", indexed("doors", i, "function"),
				"door %q has function %q, want %q or %q", d.ID, d.Function, DoorEnter, DoorExit)
		}
	}

	for i, it := range doc.Items {
		if _, dup := env.items[it.ID]; dup || it.ID == "" {
			return nil, contract.Violationf("Domain", indexed("items", i, "id"), "duplicate or empty id %q", it.ID)
		}
		_, onShelf := env.shelves[it.InitialLocation]
		_, onTable := env.tables[it.InitialLocation]
		if !onShelf && !onTable {
			return nil, contract.Violationf("Domain", indexed("items", i, "initial_location"),
				"item %q starts at %q, which is not a shelf or table", it.ID, it.InitialLocation)
		}
		env.items[it.ID] = it
	}

	return env, nil
}

func indexed(collection string, i int, field string) string {
	return fmt.Sprintf("%s[%d].%s", collection, i, field)
}
