package coords

import "math"

// BBox is a geographic bounding box in degrees. East < West means the box
// crosses the antimeridian (180 degrees), per the data model's explicit
// rule; this is not an error state.
type BBox struct {
	North, South, East, West float64
	Valid                    bool
}

// InvalidBBox returns an explicitly invalid bounding box (Valid false,
// every edge NaN).
func InvalidBBox() BBox {
	return BBox{North: math.NaN(), South: math.NaN(), East: math.NaN(), West: math.NaN()}
}

// CrossesAntimeridian reports whether the box wraps around +/-180 degrees.
func (b BBox) CrossesAntimeridian() bool {
	return b.East < b.West
}

// Contains reports whether p falls inside b, honoring the antimeridian
// rule.
func (b BBox) Contains(p LatLon) bool {
	if !b.Valid || !p.IsValid() {
		return false
	}
	if p.Lat > b.North || p.Lat < b.South {
		return false
	}
	if b.CrossesAntimeridian() {
		return p.Lon >= b.West || p.Lon <= b.East
	}
	return p.Lon >= b.West && p.Lon <= b.East
}

// Intersects reports whether two bounding boxes overlap, honoring the
// antimeridian rule on either side.
func Intersects(a, b BBox) bool {
	if !a.Valid || !b.Valid {
		return false
	}
	if a.North < b.South || b.North < a.South {
		return false
	}

	aWraps := a.CrossesAntimeridian()
	bWraps := b.CrossesAntimeridian()

	switch {
	case !aWraps && !bWraps:
		return a.West <= b.East && b.West <= a.East
	case aWraps && !bWraps:
		return b.East >= a.West || b.West <= a.East
	case !aWraps && bWraps:
		return a.East >= b.West || a.West <= b.East
	default:
		// Both wrap; they both include the antimeridian, so they overlap.
		return true
	}
}

// Validate normalizes a box whose min/max got swapped by accident, but
// leaves a legitimate antimeridian-crossing box (east < west) alone.
func Validate(b BBox) BBox {
	if b.North < b.South {
		b.North, b.South = b.South, b.North
	}
	b.Valid = !math.IsNaN(b.North) && !math.IsNaN(b.South) && !math.IsNaN(b.East) && !math.IsNaN(b.West)
	return b
}

// Union returns the smallest box containing both a and b. Antimeridian
// handling for unions of two wrapping boxes is approximated by widening to
// the full longitude range, which is the safe conservative behavior.
func Union(a, b BBox) BBox {
	if !a.Valid {
		return b
	}
	if !b.Valid {
		return a
	}
	out := BBox{
		North: math.Max(a.North, b.North),
		South: math.Min(a.South, b.South),
		Valid: true,
	}
	if a.CrossesAntimeridian() || b.CrossesAntimeridian() {
		out.East, out.West = 180, -180
		return out
	}
	out.East = math.Max(a.East, b.East)
	out.West = math.Min(a.West, b.West)
	return out
}

// FromPoints computes the exact bounding box over a set of points. Returns
// an invalid box for an empty set.
func FromPoints(points []LatLon) BBox {
	if len(points) == 0 {
		return InvalidBBox()
	}
	b := BBox{
		North: points[0].Lat,
		South: points[0].Lat,
		East:  points[0].Lon,
		West:  points[0].Lon,
		Valid: true,
	}
	for _, p := range points[1:] {
		if p.Lat > b.North {
			b.North = p.Lat
		}
		if p.Lat < b.South {
			b.South = p.Lat
		}
		if p.Lon > b.East {
			b.East = p.Lon
		}
		if p.Lon < b.West {
			b.West = p.Lon
		}
	}
	return b
}
