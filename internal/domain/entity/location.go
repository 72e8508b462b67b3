package entity

// Location represents a physical store, warehouse, or staging area in the
// inventory graph. Sources is the ordered list of replenishment origins for
// this location — either another Location.ID or an "external-*" id.
//
// Deleting an entry from Sources must cancel any open task pointing at it
// (see DeleteLocationSource in commands.go); the engine enforces that, not
// this struct.
type Location struct {
	ID              string
	Name            string
	Colour          string
	Polygon         []Point
	IsSalesLocation bool
	Sources         []string
}

// Point is a vertex of a Location's polygon on the 2-D floor plan.
type Point struct {
	X, Y float64
}

// Antenna is bound to exactly one Location. The first antenna registered
// for a location is its "primary" — the destination for synthesised EPCs
// and internal transfer re-bindings.
type Antenna struct {
	ID         string
	LocationID string
}
