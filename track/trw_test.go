package track

import (
	"testing"
	"time"

	"geoengine/coords"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTRWBoundsUnionsTracksAndWaypoints(t *testing.T) {
	trw := NewTRW("trip", coords.ModeLatLon)

	trk := NewTrack()
	trk.AddTrackpoint(tpAt(10, 10, time.Time{}), true)
	trw.AddTrack(trk)

	wp := NewWaypoint(ll(-5, 20))
	trw.AddWaypoint(wp)

	b := trw.Bounds()
	assert.True(t, b.Valid)
	assert.Equal(t, 10.0, b.North)
	assert.Equal(t, -5.0, b.South)
	assert.Equal(t, 20.0, b.East)
}

func TestTracksByTimestampOrdersChronologically(t *testing.T) {
	trw := NewTRW("trip", coords.ModeLatLon)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	later := NewTrack()
	later.AddTrackpoint(tpAt(1, 1, base.Add(time.Hour)), true)
	trw.AddTrack(later)

	earlier := NewTrack()
	earlier.AddTrackpoint(tpAt(1, 1, base), true)
	trw.AddTrack(earlier)

	ordered := trw.TracksByTimestamp()
	require.Len(t, ordered, 2)
	assert.Equal(t, earlier.ID, ordered[0].ID)
	assert.Equal(t, later.ID, ordered[1].ID)
}

func TestStealAndAppendTrackpoints(t *testing.T) {
	dst := NewTrack()
	dst.AddTrackpoint(tpAt(1, 1, time.Time{}), true)
	src := NewTrack()
	src.AddTrackpoint(tpAt(2, 2, time.Time{}), true)

	StealAndAppendTrackpoints(dst, src)

	assert.Len(t, dst.Points, 2)
	assert.Empty(t, src.Points)
}
