package track

import (
	"testing"
	"time"

	"geoengine/coords"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ll(lat, lon float64) coords.Coord {
	return coords.FromLatLon(coords.LatLon{Lat: lat, Lon: lon})
}

func tpAt(lat, lon float64, t time.Time) *Trackpoint {
	tp := NewTrackpoint(ll(lat, lon))
	if !t.IsZero() {
		tp.HasTimestamp = true
		tp.Timestamp = t
	}
	return tp
}

func TestAddTrackpointInitializesBounds(t *testing.T) {
	trk := NewTrack()
	trk.AddTrackpoint(tpAt(10, 20, time.Time{}), true)
	b := trk.Bounds()
	assert.True(t, b.Valid)
	assert.Equal(t, 10.0, b.North)
	assert.Equal(t, 20.0, b.East)
}

func TestAddTrackpointExtendsBounds(t *testing.T) {
	trk := NewTrack()
	trk.AddTrackpoint(tpAt(10, 20, time.Time{}), true)
	trk.AddTrackpoint(tpAt(15, 5, time.Time{}), true)
	b := trk.Bounds()
	assert.Equal(t, 15.0, b.North)
	assert.Equal(t, 10.0, b.South)
	assert.Equal(t, 20.0, b.East)
	assert.Equal(t, 5.0, b.West)
}

func TestRemoveDupPoints(t *testing.T) {
	trk := NewTrack()
	trk.AddTrackpoint(tpAt(1, 1, time.Time{}), false)
	trk.AddTrackpoint(tpAt(1, 1, time.Time{}), false)
	trk.AddTrackpoint(tpAt(2, 2, time.Time{}), false)
	removed := trk.RemoveDupPoints()
	assert.Equal(t, 1, removed)
	assert.Len(t, trk.Points, 2)
}

func TestSegmentCountAndSplit(t *testing.T) {
	trk := NewTrack()
	p1 := tpAt(1, 1, time.Time{})
	p1.NewSegment = true
	p2 := tpAt(2, 2, time.Time{})
	p3 := tpAt(3, 3, time.Time{})
	p3.NewSegment = true
	p4 := tpAt(4, 4, time.Time{})
	trk.Points = []*Trackpoint{p1, p2, p3, p4}

	assert.Equal(t, 2, trk.SegmentCount())

	segs := trk.SplitIntoSegments()
	require.Len(t, segs, 2)
	assert.Len(t, segs[0].Points, 2)
	assert.Len(t, segs[1].Points, 2)
}

func TestMergeSegments(t *testing.T) {
	trk := NewTrack()
	p1 := tpAt(1, 1, time.Time{})
	p2 := tpAt(2, 2, time.Time{})
	p2.NewSegment = true
	trk.Points = []*Trackpoint{p1, p2}
	merged := trk.MergeSegments()
	assert.Equal(t, 1, merged)
	assert.False(t, trk.Points[1].NewSegment)
}

func TestReversePreservesSegmentConvention(t *testing.T) {
	trk := NewTrack()
	p1 := tpAt(1, 1, time.Time{})
	p1.NewSegment = true
	p2 := tpAt(2, 2, time.Time{})
	p3 := tpAt(3, 3, time.Time{})
	trk.Points = []*Trackpoint{p1, p2, p3}
	trk.Reverse()

	assert.True(t, trk.Points[0].NewSegment)
	assert.False(t, trk.Points[len(trk.Points)-1].NewSegment)
	assert.Equal(t, 3.0, trk.Points[0].Coord.ToLatLon().Lat)
}

func TestCutBackToDoublePoint(t *testing.T) {
	trk := NewTrack()
	trk.Points = []*Trackpoint{
		tpAt(1, 1, time.Time{}),
		tpAt(2, 2, time.Time{}),
		tpAt(2, 2, time.Time{}),
		tpAt(3, 3, time.Time{}),
	}
	cut, ok := trk.CutBackToDoublePoint()
	require.True(t, ok)
	assert.Equal(t, 2.0, cut.ToLatLon().Lat)
	assert.Len(t, trk.Points, 2)
}

func TestAnonymizeTimesPreservesRelativeSpacing(t *testing.T) {
	trk := NewTrack()
	base := time.Date(2020, 6, 1, 10, 0, 0, 0, time.UTC)
	trk.Points = []*Trackpoint{
		tpAt(1, 1, base),
		tpAt(2, 2, base.Add(30*time.Second)),
	}
	trk.AnonymizeTimes()
	diff := trk.Points[1].Timestamp.Sub(trk.Points[0].Timestamp)
	assert.Equal(t, 30*time.Second, diff)
	assert.True(t, trk.Points[0].Timestamp.Year() < 1905)
}

func TestToRoutepointsClearsExtras(t *testing.T) {
	trk := NewTrack()
	tp := tpAt(1, 1, time.Now())
	tp.Speed = 5
	trk.Points = []*Trackpoint{tp}
	trk.ToRoutepoints()
	assert.False(t, trk.Points[0].HasTimestamp)
	assert.True(t, trk_isNaN(trk.Points[0].Speed))
}

func trk_isNaN(f float64) bool { return f != f }

func TestCompareTimestampOrdersUntimestampedFirst(t *testing.T) {
	base := time.Date(2020, 6, 1, 10, 0, 0, 0, time.UTC)
	timed := tpAt(1, 1, base)
	untimed := tpAt(2, 2, time.Time{})
	assert.Equal(t, -1, CompareTimestamp(untimed, timed))
	assert.Equal(t, 1, CompareTimestamp(timed, untimed))
	assert.Equal(t, 0, CompareTimestamp(untimed, untimed))
}

func TestSortByTimestampInterleavesAndResetsSegments(t *testing.T) {
	base := time.Date(2020, 6, 1, 10, 0, 0, 0, time.UTC)
	trk := NewTrack()
	trk.Points = []*Trackpoint{
		tpAt(3, 3, base.Add(20*time.Second)),
		tpAt(1, 1, base),
		tpAt(2, 2, base.Add(10*time.Second)),
	}
	trk.Points[0].NewSegment = false
	trk.Points[1].NewSegment = true
	trk.SortByTimestamp()

	require.Len(t, trk.Points, 3)
	assert.Equal(t, base, trk.Points[0].Timestamp)
	assert.Equal(t, base.Add(10*time.Second), trk.Points[1].Timestamp)
	assert.Equal(t, base.Add(20*time.Second), trk.Points[2].Timestamp)
	assert.True(t, trk.Points[0].NewSegment)
	assert.False(t, trk.Points[1].NewSegment)
	assert.False(t, trk.Points[2].NewSegment)
}
