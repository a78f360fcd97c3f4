package track

import (
	"sort"

	"geoengine/coords"

	"github.com/google/uuid"
)

// TRW ("Track/Route/Waypoint") is the container an acquisition commits
// its results into: a named set of tracks and waypoints sharing one
// coordinate mode.
type TRW struct {
	ID   string
	Name string
	Mode coords.Mode

	Tracks    map[string]*Track
	Waypoints map[string]*Waypoint
}

func NewTRW(name string, mode coords.Mode) *TRW {
	return &TRW{
		ID:        uuid.NewString(),
		Name:      name,
		Mode:      mode,
		Tracks:    make(map[string]*Track),
		Waypoints: make(map[string]*Waypoint),
	}
}

func (r *TRW) AddTrack(t *Track) {
	r.Tracks[t.ID] = t
}

func (r *TRW) AddWaypoint(w *Waypoint) {
	r.Waypoints[w.ID] = w
}

// Bounds returns the union of every track's and waypoint's bounds.
func (r *TRW) Bounds() coords.BBox {
	bbox := coords.InvalidBBox()
	for _, t := range r.Tracks {
		bbox = coords.Union(bbox, t.Bounds())
	}
	for _, w := range r.Waypoints {
		p := w.Coord.ToLatLon()
		bbox = coords.Union(bbox, coords.BBox{North: p.Lat, South: p.Lat, East: p.Lon, West: p.Lon, Valid: true})
	}
	return bbox
}

// TracksByTimestamp returns the TRW's tracks ordered by first-trackpoint
// timestamp (tracks with no timestamp sort last).
func (r *TRW) TracksByTimestamp() []*Track {
	out := make([]*Track, 0, len(r.Tracks))
	for _, t := range r.Tracks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].First(), out[j].First()
		switch {
		case a == nil || !a.HasTimestamp:
			return false
		case b == nil || !b.HasTimestamp:
			return true
		default:
			return a.Timestamp.Before(b.Timestamp)
		}
	})
	return out
}

// StealAndAppendTrackpoints moves every trackpoint from src onto the end
// of dst, leaving src empty, and recalculates dst's bounds.
func StealAndAppendTrackpoints(dst, src *Track) {
	dst.Points = append(dst.Points, src.Points...)
	src.Points = nil
	dst.CalculateBounds()
}
