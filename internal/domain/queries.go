package domain

import "github.com/alineos/kitcell/internal/contract"

// LocationKind says which catalog a resolved location id belongs to.
type LocationKind string

const (
	LocationZone  LocationKind = "zone"
	LocationShelf LocationKind = "shelf"
	LocationTable LocationKind = "table"
)

// ZoneOf returns the id of the zone containing p. Zones are tested in file
// order and the first match wins; with well-authored (non-overlapping)
// bounds there is at most one. Points outside every zone report ok=false.
func (e *Environment) ZoneOf(p contract.Position) (string, bool) {
	for _, z := range e.doc.Zones {
		if z.Bounds.Contains(p) {
			return z.ID, true
		}
	}
	return "", false
}

// ResolveLocation resolves a location id against zones, shelves and tables.
func (e *Environment) ResolveLocation(id string) (LocationKind, bool) {
	if _, ok := e.zones[id]; ok {
		return LocationZone, true
	}
	if _, ok := e.shelves[id]; ok {
		return LocationShelf, true
	}
	if _, ok := e.tables[id]; ok {
		return LocationTable, true
	}
	return "", false
}

// ZoneExists reports whether id names a zone.
func (e *Environment) ZoneExists(id string) bool {
	_, ok := e.zones[id]
	return ok
}

// ItemExists reports whether id names an item in the catalog.
func (e *Environment) ItemExists(id string) bool {
	_, ok := e.items[id]
	return ok
}

// Zone looks up a zone by id.
func (e *Environment) Zone(id string) (Zone, bool) {
	z, ok := e.zones[id]
	return z, ok
}

// Item looks up an item by id.
func (e *Environment) Item(id string) (Item, bool) {
	it, ok := e.items[id]
	return it, ok
}

// Document returns a copy of the underlying document, e.g. for re-encoding.
func (e *Environment) Document() Document {
	return e.doc
}
