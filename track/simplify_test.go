package track

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimplifyDropsCollinearPoints(t *testing.T) {
	trk := NewTrack()
	trk.Points = []*Trackpoint{
		tpAt(0, 0, time.Time{}),
		tpAt(0, 1, time.Time{}),
		tpAt(0, 2, time.Time{}),
		tpAt(0, 3, time.Time{}),
	}
	trk.Simplify(0.001)
	require.Len(t, trk.Points, 2)
	assert.Equal(t, 0.0, trk.Points[0].Coord.ToLatLon().Lon)
	assert.Equal(t, 3.0, trk.Points[1].Coord.ToLatLon().Lon)
}

func TestSimplifyKeepsSignificantDeviation(t *testing.T) {
	trk := NewTrack()
	trk.Points = []*Trackpoint{
		tpAt(0, 0, time.Time{}),
		tpAt(5, 1, time.Time{}), // well off the straight line
		tpAt(0, 2, time.Time{}),
	}
	trk.Simplify(0.01)
	assert.Len(t, trk.Points, 3)
}

func TestSimplifyShortTrackUnchanged(t *testing.T) {
	trk := NewTrack()
	trk.Points = []*Trackpoint{tpAt(0, 0, time.Time{}), tpAt(1, 1, time.Time{})}
	trk.Simplify(0.5)
	assert.Len(t, trk.Points, 2)
}
