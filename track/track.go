package track

import (
	"math"
	"sort"
	"time"

	"geoengine/coords"

	"github.com/google/uuid"
)

// Track is an ordered list of Trackpoints, optionally divided into segments
// (a segment boundary is marked by NewSegment on its first point).
type Track struct {
	ID          string
	Name        string
	Comment     string
	Description string
	Source      string
	Visible     bool
	IsRoute     bool

	Points []*Trackpoint

	bbox      coords.BBox
	bboxValid bool
}

func NewTrack() *Track {
	return &Track{ID: uuid.NewString(), Visible: true, bbox: coords.InvalidBBox()}
}

// AddTrackpoint appends tp to the end of the track. When recalculate is
// true the bounding box is updated incrementally (or fully, for the first
// point); callers adding many points in a batch should pass false and call
// CalculateBounds once at the end.
func (t *Track) AddTrackpoint(tp *Trackpoint, recalculate bool) {
	first := len(t.Points) == 0
	t.Points = append(t.Points, tp)
	if first {
		t.CalculateBounds()
	} else if recalculate {
		t.extendBoundsWith(tp)
	}
}

func (t *Track) extendBoundsWith(tp *Trackpoint) {
	p := tp.Coord.ToLatLon()
	if !t.bboxValid {
		t.bbox = coords.BBox{North: p.Lat, South: p.Lat, East: p.Lon, West: p.Lon, Valid: true}
		t.bboxValid = true
		return
	}
	if p.Lat > t.bbox.North {
		t.bbox.North = p.Lat
	}
	if p.Lat < t.bbox.South {
		t.bbox.South = p.Lat
	}
	if p.Lon > t.bbox.East {
		t.bbox.East = p.Lon
	}
	if p.Lon < t.bbox.West {
		t.bbox.West = p.Lon
	}
}

// CalculateBounds recomputes the track's bounding box from scratch.
func (t *Track) CalculateBounds() {
	if len(t.Points) == 0 {
		t.bbox = coords.InvalidBBox()
		t.bboxValid = false
		return
	}
	t.bboxValid = false
	for _, tp := range t.Points {
		t.extendBoundsWith(tp)
	}
}

// Bounds returns the track's cached bounding box, computing it first if
// stale.
func (t *Track) Bounds() coords.BBox {
	if !t.bboxValid {
		t.CalculateBounds()
	}
	return t.bbox
}

func (t *Track) First() *Trackpoint {
	if len(t.Points) == 0 {
		return nil
	}
	return t.Points[0]
}

func (t *Track) Last() *Trackpoint {
	if len(t.Points) == 0 {
		return nil
	}
	return t.Points[len(t.Points)-1]
}

// SegmentCount returns the number of segments (0 for an empty track, 1 for
// a single-segment track, matching vik_track_get_segment_count).
func (t *Track) SegmentCount() int {
	if len(t.Points) == 0 {
		return 0
	}
	n := 1
	for _, tp := range t.Points[1:] {
		if tp.NewSegment {
			n++
		}
	}
	return n
}

// RemoveDupPoints deletes adjacent points with an identical coordinate,
// preserving segment boundaries (a removed point's NewSegment flag, if
// set, is carried to its successor). Returns the number removed.
func (t *Track) RemoveDupPoints() int {
	removed := 0
	out := t.Points[:0:0]
	for i := 0; i < len(t.Points); i++ {
		cur := t.Points[i]
		if len(out) > 0 && sameCoord(out[len(out)-1].Coord, cur.Coord) {
			removed++
			if cur.NewSegment && i+1 < len(t.Points) {
				t.Points[i+1].NewSegment = true
			}
			continue
		}
		out = append(out, cur)
	}
	t.Points = out
	t.CalculateBounds()
	return removed
}

func sameCoord(a, b coords.Coord) bool {
	pa, pb := a.ToLatLon(), b.ToLatLon()
	return pa.Lat == pb.Lat && pa.Lon == pb.Lon
}

// RemoveSameTimePoints deletes adjacent points sharing the same (1-second
// resolution) timestamp, preserving segment boundaries the same way
// RemoveDupPoints does. Returns the number removed.
func (t *Track) RemoveSameTimePoints() int {
	removed := 0
	out := t.Points[:0:0]
	for i := 0; i < len(t.Points); i++ {
		cur := t.Points[i]
		if len(out) > 0 {
			prev := out[len(out)-1]
			if prev.HasTimestamp && cur.HasTimestamp && prev.Timestamp.Unix() == cur.Timestamp.Unix() {
				removed++
				if cur.NewSegment && i+1 < len(t.Points) {
					t.Points[i+1].NewSegment = true
				}
				continue
			}
		}
		out = append(out, cur)
	}
	t.Points = out
	t.CalculateBounds()
	return removed
}

// ToRoutepoints strips all "extra" per-point data — timestamps, speed,
// course, fix info — turning the track into a bare sequence of positions.
func (t *Track) ToRoutepoints() {
	for _, tp := range t.Points {
		tp.HasTimestamp = false
		tp.Timestamp = time.Time{}
		tp.Speed = math.NaN()
		tp.Course = math.NaN()
		tp.HDOP, tp.VDOP, tp.PDOP = 0, 0, 0
		tp.NumSatellites = 0
		tp.FixMode = FixNotSeen
	}
}

// SplitIntoSegments returns one Track per segment, or nil if the track has
// fewer than two segments.
func (t *Track) SplitIntoSegments() []*Track {
	if t.SegmentCount() < 2 {
		return nil
	}
	var out []*Track
	cur := t.cloneEmpty()
	for i, tp := range t.Points {
		if i > 0 && tp.NewSegment {
			cur.CalculateBounds()
			out = append(out, cur)
			cur = t.cloneEmpty()
		}
		cur.Points = append(cur.Points, tp.Clone())
	}
	cur.CalculateBounds()
	out = append(out, cur)
	return out
}

func (t *Track) cloneEmpty() *Track {
	return &Track{
		ID: uuid.NewString(), Name: t.Name, Comment: t.Comment,
		Description: t.Description, Source: t.Source, Visible: t.Visible,
		bbox: coords.InvalidBBox(),
	}
}

// MergeSegments removes every segment boundary after the first, folding
// the whole track into one continuous segment. Returns the number of
// boundaries merged.
func (t *Track) MergeSegments() int {
	if len(t.Points) == 0 {
		return 0
	}
	merged := 0
	for _, tp := range t.Points[1:] {
		if tp.NewSegment {
			tp.NewSegment = false
			merged++
		}
	}
	return merged
}

// Reverse reverses trackpoint order in place and fixes up segment
// boundaries so each segment still starts where it should.
func (t *Track) Reverse() {
	if len(t.Points) == 0 {
		return
	}
	for i, j := 0, len(t.Points)-1; i < j; i, j = i+1, j-1 {
		t.Points[i], t.Points[j] = t.Points[j], t.Points[i]
	}

	n := len(t.Points)
	for i := n - 1; i >= 0; i-- {
		switch {
		case i == n-1:
			t.Points[i].NewSegment = false
		case i == 0:
			t.Points[i].NewSegment = true
		case t.Points[i].NewSegment:
			t.Points[i+1].NewSegment = true
			t.Points[i].NewSegment = false
		}
	}
}

// CutBackToDoublePoint truncates the track from the end back to the last
// duplicate ("double") point, returning the coordinate at the cut: the
// later point of the last adjacent duplicate pair and every point after it
// are removed, so one copy of the duplicate remains. If no
// duplicate exists, every point is removed and the first point's
// coordinate is returned.
func (t *Track) CutBackToDoublePoint() (coords.Coord, bool) {
	if len(t.Points) == 0 {
		return coords.Coord{}, false
	}
	for i := len(t.Points) - 1; i > 0; i-- {
		if sameCoord(t.Points[i].Coord, t.Points[i-1].Coord) {
			cut := t.Points[i].Coord
			t.Points = t.Points[:i]
			t.CalculateBounds()
			return cut, true
		}
	}
	first := t.Points[0].Coord
	t.Points = nil
	t.CalculateBounds()
	return first, true
}

// CompareTimestamp orders two trackpoints by timestamp, with an
// untimestamped point sorting before any timestamped one and ties broken
// by leaving the original relative order (sort.SliceStable relies on
// this). It exists so a splice or merge of two overlapping-time sources
// can re-sort the combined points into one properly ordered track.
func CompareTimestamp(a, b *Trackpoint) int {
	switch {
	case !a.HasTimestamp && !b.HasTimestamp:
		return 0
	case !a.HasTimestamp:
		return -1
	case !b.HasTimestamp:
		return 1
	case a.Timestamp.Before(b.Timestamp):
		return -1
	case a.Timestamp.After(b.Timestamp):
		return 1
	default:
		return 0
	}
}

// SortByTimestamp reorders the track's points by CompareTimestamp,
// preserving relative order among points that tie (same timestamp, or
// both untimestamped). Segment boundaries are dropped on resort: after
// interleaving two sources there is no single meaningful place to put
// them, so the result is one continuous segment, matching the effect of
// MergeSegments.
func (t *Track) SortByTimestamp() {
	sort.SliceStable(t.Points, func(i, j int) bool {
		return CompareTimestamp(t.Points[i], t.Points[j]) < 0
	})
	for i, tp := range t.Points {
		tp.NewSegment = i == 0
	}
	t.CalculateBounds()
}

// AnonymizeTimes shifts every timestamp by a fixed offset so the track
// appears to start near 1901-01-01, preserving the relative spacing
// between points (so speed/duration calculations are unaffected).
func (t *Track) AnonymizeTimes() {
	anon := time.Date(1901, time.January, 1, 0, 0, 0, 0, time.UTC)
	var offset time.Duration
	haveOffset := false
	for _, tp := range t.Points {
		if !tp.HasTimestamp {
			continue
		}
		if !haveOffset {
			offset = tp.Timestamp.Sub(anon)
			haveOffset = true
		}
		tp.Timestamp = tp.Timestamp.Add(-offset)
	}
}

// InterpolateTimes overwrites every trackpoint's timestamp (except the
// first and last) so the track is traversed at constant speed between the
// first and last recorded times, proportional to distance along the
// track. Points that collapse onto the same second afterwards are merged
// away, matching vik_track_interpolate_times.
func (t *Track) InterpolateTimes() {
	if len(t.Points) < 2 {
		return
	}
	first := t.Points[0]
	last := t.Points[len(t.Points)-1]
	if !first.HasTimestamp || !last.HasTimestamp {
		return
	}
	tsDiff := last.Timestamp.Sub(first.Timestamp)
	totalDist := t.LengthIncludingGaps()
	if totalDist <= 0 {
		return
	}

	curDist := 0.0
	for i := 1; i < len(t.Points)-1; i++ {
		curDist += coords.Distance(t.Points[i].Coord, t.Points[i-1].Coord)
		frac := curDist / totalDist
		t.Points[i].Timestamp = first.Timestamp.Add(time.Duration(frac * float64(tsDiff)))
		t.Points[i].HasTimestamp = true
	}
	t.RemoveSameTimePoints()
}
