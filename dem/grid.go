// Package dem implements the two on-disk DEM formats (SRTM HGT and USGS
// 24K) behind one shared grid type and query interface, per the original
// dem.h/dem.cpp source. Column-major storage and the sentinel elevation
// value are shared by both parsers; only the file reader differs.
package dem

import (
	"math"

	"geoengine/coords"
)

// InvalidElevation is the sentinel meaning "no data", matching
// DEM::invalid_elevation in the source (INT16_MIN).
const InvalidElevation int16 = -32768

// HorizUnits is the coordinate system the grid's extent is expressed in.
type HorizUnits int

const (
	LatLonArcSeconds HorizUnits = iota
	UTMMeters
)

// Source identifies which of the two on-disk formats produced a Grid.
type Source int

const (
	SourceUnknown Source = iota
	SourceSRTM
	SourceUSGS24K
)

// Scale is the sample spacing in horizontal units (arcseconds or meters).
type Scale struct {
	X, Y float64
}

// Column holds the elevations for one easting (or longitude-arcsecond)
// column, ordered by increasing northing starting at South.
type Column struct {
	East   float64
	South  float64
	Points []int16
}

// Grid is the shared representation both parsers populate: a column-major
// raster plus its geographic extent and scale.
type Grid struct {
	Source     Source
	HorizUnits HorizUnits
	Scale      Scale

	MinEast, MaxEast   float64
	MinNorth, MaxNorth float64

	// UTMZone/UTMBand are meaningful only when HorizUnits == UTMMeters.
	UTMZone int
	UTMBand byte

	Columns []Column
}

// ElevAtColRow returns the raw sample at the given column/row, or the
// sentinel if out of range.
func (g *Grid) ElevAtColRow(col, row int) int16 {
	if col < 0 || col >= len(g.Columns) {
		return InvalidElevation
	}
	c := &g.Columns[col]
	if row < 0 || row >= len(c.Points) {
		return InvalidElevation
	}
	return c.Points[row]
}

// Contains reports whether (east, north), expressed in the grid's own
// horizontal units, falls within its extent.
func (g *Grid) Contains(east, north float64) bool {
	return east >= g.MinEast && east <= g.MaxEast && north >= g.MinNorth && north <= g.MaxNorth
}

// ColRowOf returns the column/row index that contains (east, north),
// without range-checking the result.
func (g *Grid) ColRowOf(east, north float64) (col, row int) {
	col = int(math.Floor((east - g.MinEast) / g.Scale.X))
	row = int(math.Floor((north - g.MinNorth) / g.Scale.Y))
	return col, row
}

// BoundsLatLon returns the grid's extent converted to a LatLon bounding
// box, for intersect-with-viewport queries (coords.Intersects).
func (g *Grid) BoundsLatLon() coords.BBox {
	switch g.HorizUnits {
	case LatLonArcSeconds:
		return coords.Validate(coords.BBox{
			North: g.MaxNorth / 3600.0,
			South: g.MinNorth / 3600.0,
			East:  g.MaxEast / 3600.0,
			West:  g.MinEast / 3600.0,
		})
	case UTMMeters:
		ne := coords.UTMToLatLon(coords.UTM{Easting: g.MaxEast, Northing: g.MaxNorth, Zone: g.UTMZone, Band: g.UTMBand})
		sw := coords.UTMToLatLon(coords.UTM{Easting: g.MinEast, Northing: g.MinNorth, Zone: g.UTMZone, Band: g.UTMBand})
		return coords.Validate(coords.BBox{North: ne.Lat, South: sw.Lat, East: ne.Lon, West: sw.Lon})
	default:
		return coords.InvalidBBox()
	}
}
