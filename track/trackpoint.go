// Package track implements the Track/Waypoint data model and its analytics:
// length, duration, speed, elevation and gradient chunk maps, DEM
// enrichment and smoothing, and the simplify/dedup/split/merge family of
// transforms, all grounded on the viktrack.cpp/vikwaypoint.cpp model this
// engine replaces.
package track

import (
	"math"
	"time"

	"geoengine/coords"

	"github.com/google/uuid"
)

// FixMode is a GPS fix quality, carried through from the original GPS
// protocol constants.
type FixMode int

const (
	FixNotSeen FixMode = iota
	FixNone
	Fix2D
	Fix3D
)

// Trackpoint is one recorded position along a Track.
type Trackpoint struct {
	ID    string
	Name  string
	Coord coords.Coord

	// NewSegment marks tp as the first point of a new segment; by
	// convention the very first trackpoint of a track always carries it.
	NewSegment bool

	HasTimestamp bool
	Timestamp    time.Time

	HasAltitude bool
	Altitude    float64

	Speed  float64 // NaN when unknown
	Course float64 // NaN when unknown

	NumSatellites int
	FixMode       FixMode
	HDOP, VDOP, PDOP float64
}

// NewTrackpoint returns a Trackpoint with the original constructor's
// defaults: no altitude/speed/course, HDOP/VDOP/PDOP unset.
func NewTrackpoint(c coords.Coord) *Trackpoint {
	return &Trackpoint{
		ID:      uuid.NewString(),
		Coord:   c,
		Speed:   math.NaN(),
		Course:  math.NaN(),
		FixMode: FixNotSeen,
	}
}

// Clone returns a deep copy of tp (new identity, same data) — the
// tagged-union Coord and value fields copy by assignment.
func (tp *Trackpoint) Clone() *Trackpoint {
	c := *tp
	c.ID = uuid.NewString()
	return &c
}
