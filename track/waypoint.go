package track

import (
	"time"

	"geoengine/coords"
	"geoengine/dem"

	"github.com/google/uuid"
)

// Waypoint is a single named point of interest, distinct from a Trackpoint
// in carrying richer metadata (comment, description, symbol, image) but
// no speed/course/fix fields.
type Waypoint struct {
	ID    string
	Coord coords.Coord

	Name        string
	Comment     string
	Description string
	Source      string
	Type        string
	URL         string
	Image       string
	Symbol      string

	Visible bool

	HasAltitude bool
	Altitude    float64

	HasTimestamp bool
	Timestamp    time.Time
}

func NewWaypoint(c coords.Coord) *Waypoint {
	return &Waypoint{ID: uuid.NewString(), Coord: c, Name: "Waypoint", Visible: true}
}

func (w *Waypoint) Clone() *Waypoint {
	c := *w
	c.ID = uuid.NewString()
	return &c
}

// ApplyDEMData sets the waypoint's altitude from the first grid in grids
// whose extent contains it, using best (Shepard) interpolation. With
// skipExisting true, a waypoint that already has an altitude is left
// alone. Returns whether it was updated.
func (w *Waypoint) ApplyDEMData(grids []*dem.Grid, skipExisting bool) bool {
	if skipExisting && w.HasAltitude {
		return false
	}
	for _, g := range grids {
		if e, ok := g.ElevAtCoord(w.Coord, dem.Best); ok {
			w.Altitude = float64(e)
			w.HasAltitude = true
			return true
		}
	}
	return false
}
