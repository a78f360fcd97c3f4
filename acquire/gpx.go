package acquire

import (
	gpx "github.com/tkrajina/gpxgo/gpx"

	"geoengine/coords"
	"geoengine/track"
)

// MergeGPX appends every track, route and waypoint in g into dst, in dst's
// coordinate mode. It is the single place that bridges the third-party GPX
// decoder's types onto the domain model, used by every acquire mode that
// ends in a GPX stream (direct file/URL read, or converter/babel output)
// and by sources (e.g. OSM-My-Traces) that parse GPX outside of Options.
func MergeGPX(g *gpx.GPX, dst *track.TRW) int {
	added := 0

	for _, gt := range g.Tracks {
		t := track.NewTrack()
		t.Name = gt.Name
		t.Comment = gt.Comment
		t.Description = gt.Description
		t.Source = gt.Source
		for _, seg := range gt.Segments {
			for ptIdx, p := range seg.Points {
				tp := track.NewTrackpoint(pointCoord(p, dst.Mode))
				tp.Name = p.Name
				if ptIdx == 0 {
					tp.NewSegment = true
				}
				fillTrackpoint(tp, p)
				t.AddTrackpoint(tp, false)
				added++
			}
		}
		t.CalculateBounds()
		dst.AddTrack(t)
	}

	for _, gr := range g.Routes {
		t := track.NewTrack()
		t.Name = gr.Name
		t.Comment = gr.Comment
		t.Description = gr.Description
		t.Source = gr.Source
		t.IsRoute = true
		for ptIdx, p := range gr.Points {
			tp := track.NewTrackpoint(pointCoord(p, dst.Mode))
			tp.Name = p.Name
			tp.NewSegment = ptIdx == 0
			fillTrackpoint(tp, p)
			t.AddTrackpoint(tp, false)
			added++
		}
		t.CalculateBounds()
		dst.AddTrack(t)
	}

	for _, p := range g.Waypoints {
		w := track.NewWaypoint(pointCoord(p, dst.Mode))
		w.Name = p.Name
		w.Comment = p.Comment
		w.Description = p.Description
		w.Symbol = p.Symbol
		w.Type = p.Type
		if p.Elevation.NotNull() {
			w.HasAltitude = true
			w.Altitude = p.Elevation.Value()
		}
		dst.AddWaypoint(w)
		added++
	}

	return added
}

func pointCoord(p gpx.GPXPoint, mode coords.Mode) coords.Coord {
	ll := coords.LatLon{Lat: p.Latitude, Lon: p.Longitude}
	if mode == coords.ModeUTM {
		return coords.FromUTM(coords.LatLonToUTM(ll))
	}
	return coords.FromLatLon(ll)
}

func fillTrackpoint(tp *track.Trackpoint, p gpx.GPXPoint) {
	if !p.Timestamp.IsZero() {
		tp.HasTimestamp = true
		tp.Timestamp = p.Timestamp
	}
	if p.Elevation.NotNull() {
		tp.HasAltitude = true
		tp.Altitude = p.Elevation.Value()
	}
	if p.HDOP.NotNull() {
		tp.HDOP = p.HDOP.Value()
	}
	if p.VDOP.NotNull() {
		tp.VDOP = p.VDOP.Value()
	}
	if p.PDOP.NotNull() {
		tp.PDOP = p.PDOP.Value()
	}
	if p.Satellites.NotNull() {
		tp.NumSatellites = p.Satellites.Value()
	}
}
