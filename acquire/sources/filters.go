package sources

import (
	"context"
	"fmt"

	"geoengine/acquire"
	"geoengine/coords"
	"geoengine/internal/status"
	"geoengine/progress"
	"geoengine/track"
)

// Simplify runs Douglas-Peucker simplification (track.Track.Simplify) over
// every track in the target layer, or a single track when FilterTrack is
// set, grounded on acquire.cpp's BFilterSimplify registration.
type Simplify struct {
	Epsilon float64
}

func (f *Simplify) ID() string                   { return "bfilter_simplify" }
func (f *Simplify) Title() string                { return "Simplify" }
func (f *Simplify) Autoview() bool                { return false }
func (f *Simplify) InputType() acquire.InputType { return acquire.InputTRWLayer }

func (f *Simplify) AcquireIntoLayer(ctx context.Context, acqCtx *acquire.Context, sink progress.Sink) *status.Status {
	if acqCtx.FilterTrack != nil {
		acqCtx.FilterTrack.Simplify(f.Epsilon)
		return status.Ok()
	}
	if acqCtx.TargetTRW == nil {
		return status.New(status.InternalError, "simplify filter requires a target TRW")
	}
	for _, t := range acqCtx.TargetTRW.Tracks {
		t.Simplify(f.Epsilon)
	}
	return status.Ok()
}

// Compress thins a track by discarding interior points closer together
// than MinDistance meters, a cheaper point-count reduction than Simplify,
// grounded on acquire.cpp's BFilterCompress registration.
type Compress struct {
	MinDistance float64
}

func (f *Compress) ID() string                   { return "bfilter_compress" }
func (f *Compress) Title() string                { return "Compress" }
func (f *Compress) Autoview() bool                { return false }
func (f *Compress) InputType() acquire.InputType { return acquire.InputTRWLayer }

func (f *Compress) AcquireIntoLayer(ctx context.Context, acqCtx *acquire.Context, sink progress.Sink) *status.Status {
	if acqCtx.FilterTrack != nil {
		compressTrack(acqCtx.FilterTrack, f.MinDistance)
		return status.Ok()
	}
	if acqCtx.TargetTRW == nil {
		return status.New(status.InternalError, "compress filter requires a target TRW")
	}
	for _, t := range acqCtx.TargetTRW.Tracks {
		compressTrack(t, f.MinDistance)
	}
	return status.Ok()
}

func compressTrack(t *track.Track, minDistance float64) {
	if len(t.Points) < 3 || minDistance <= 0 {
		return
	}
	out := t.Points[:1]
	last := t.Points[0]
	for i := 1; i < len(t.Points)-1; i++ {
		p := t.Points[i]
		if p.NewSegment || coords.Distance(last.Coord, p.Coord) >= minDistance {
			out = append(out, p)
			last = p
		}
	}
	out = append(out, t.Points[len(t.Points)-1])
	t.Points = out
	t.CalculateBounds()
}

// Duplicates removes adjacent points sharing the same coordinate
// (track.Track.RemoveDupPoints), grounded on acquire.cpp's
// BFilterDuplicates registration.
type Duplicates struct{}

func (f *Duplicates) ID() string                   { return "bfilter_duplicates" }
func (f *Duplicates) Title() string                { return "Remove Duplicate Points" }
func (f *Duplicates) Autoview() bool                { return false }
func (f *Duplicates) InputType() acquire.InputType { return acquire.InputTRWLayer }

func (f *Duplicates) AcquireIntoLayer(ctx context.Context, acqCtx *acquire.Context, sink progress.Sink) *status.Status {
	if acqCtx.FilterTrack != nil {
		acqCtx.FilterTrack.RemoveDupPoints()
		return status.Ok()
	}
	if acqCtx.TargetTRW == nil {
		return status.New(status.InternalError, "duplicates filter requires a target TRW")
	}
	for _, t := range acqCtx.TargetTRW.Tracks {
		t.RemoveDupPoints()
	}
	return status.Ok()
}

// Manual applies a caller-supplied transform to every track in the target
// layer (or FilterTrack alone), standing in for the source's manual
// filter dialog where the user hand-picks the operation, grounded on
// acquire.cpp's BFilterManual registration.
type Manual struct {
	Apply func(t *track.Track)
}

func (f *Manual) ID() string                   { return "bfilter_manual" }
func (f *Manual) Title() string                { return "Manual Filter" }
func (f *Manual) Autoview() bool                { return false }
func (f *Manual) InputType() acquire.InputType { return acquire.InputTRWLayerTrack }

func (f *Manual) AcquireIntoLayer(ctx context.Context, acqCtx *acquire.Context, sink progress.Sink) *status.Status {
	if f.Apply == nil {
		return status.New(status.InternalError, "manual filter has no Apply function configured")
	}
	if acqCtx.FilterTrack != nil {
		f.Apply(acqCtx.FilterTrack)
		return status.Ok()
	}
	if acqCtx.TargetTRW == nil {
		return status.New(status.InternalError, "manual filter requires a target TRW or filter track")
	}
	for _, t := range acqCtx.TargetTRW.Tracks {
		f.Apply(t)
	}
	return status.Ok()
}

// Polygon keeps only the trackpoints and waypoints falling inside Vertices
// (Exclude=false) or outside it (Exclude=true), grounded on acquire.cpp's
// BFilterPolygon / BFilterExcludePolygon registrations.
type Polygon struct {
	Vertices []coords.LatLon
	Exclude  bool
}

func (f *Polygon) ID() string {
	if f.Exclude {
		return "bfilter_exclude_polygon"
	}
	return "bfilter_polygon"
}

func (f *Polygon) Title() string {
	if f.Exclude {
		return "Exclude Points Inside a Polygon"
	}
	return "Keep Points Inside a Polygon"
}

func (f *Polygon) Autoview() bool                { return false }
func (f *Polygon) InputType() acquire.InputType { return acquire.InputTRWLayer }

func (f *Polygon) AcquireIntoLayer(ctx context.Context, acqCtx *acquire.Context, sink progress.Sink) *status.Status {
	if len(f.Vertices) < 3 {
		return status.New(status.InternalError, fmt.Sprintf("polygon filter needs at least 3 vertices, got %d", len(f.Vertices)))
	}
	if acqCtx.TargetTRW == nil {
		return status.New(status.InternalError, "polygon filter requires a target TRW")
	}

	keep := func(p coords.LatLon) bool {
		inside := pointInPolygon(p, f.Vertices)
		if f.Exclude {
			return !inside
		}
		return inside
	}

	for _, t := range acqCtx.TargetTRW.Tracks {
		out := t.Points[:0:0]
		for _, tp := range t.Points {
			if keep(tp.Coord.ToLatLon()) {
				out = append(out, tp)
			}
		}
		t.Points = out
		t.CalculateBounds()
	}
	for id, w := range acqCtx.TargetTRW.Waypoints {
		if !keep(w.Coord.ToLatLon()) {
			delete(acqCtx.TargetTRW.Waypoints, id)
		}
	}
	return status.Ok()
}

// pointInPolygon is the standard even-odd ray-casting test.
func pointInPolygon(p coords.LatLon, poly []coords.LatLon) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := poly[i], poly[j]
		if (vi.Lon > p.Lon) != (vj.Lon > p.Lon) {
			slope := (p.Lon - vi.Lon) / (vj.Lon - vi.Lon)
			xCross := vi.Lat + slope*(vj.Lat-vi.Lat)
			if p.Lat < xCross {
				inside = !inside
			}
		}
	}
	return inside
}
