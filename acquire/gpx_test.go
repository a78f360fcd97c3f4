package acquire

import (
	"testing"

	gpx "github.com/tkrajina/gpxgo/gpx"

	"geoengine/coords"
	"geoengine/track"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const multiSegmentGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk>
    <name>multi-segment</name>
    <trkseg>
      <trkpt lat="1" lon="1"></trkpt>
      <trkpt lat="2" lon="2"></trkpt>
    </trkseg>
    <trkseg>
      <trkpt lat="3" lon="3"></trkpt>
      <trkpt lat="4" lon="4"></trkpt>
    </trkseg>
  </trk>
</gpx>`

const waypointGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <wpt lat="47.0" lon="11.0"></wpt>
</gpx>`

const trackWithFieldsGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk>
    <trkseg>
      <trkpt lat="1" lon="1">
        <ele>100</ele>
        <time>2024-05-01T12:00:00Z</time>
      </trkpt>
    </trkseg>
  </trk>
</gpx>`

const routeGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <rte>
    <name>R</name>
    <rtept lat="1" lon="1"></rtept>
  </rte>
</gpx>`

func mustParseGPX(t *testing.T, data string) *gpx.GPX {
	t.Helper()
	g, err := gpx.ParseBytes([]byte(data))
	require.NoError(t, err)
	return g
}

func TestMergeGPXMarksFirstPointOfEverySegment(t *testing.T) {
	g := mustParseGPX(t, multiSegmentGPX)
	dst := track.NewTRW("dst", coords.ModeLatLon)
	added := MergeGPX(g, dst)
	assert.Equal(t, 4, added)
	require.Len(t, dst.Tracks, 1)

	for _, trk := range dst.Tracks {
		require.Len(t, trk.Points, 4)
		assert.True(t, trk.Points[0].NewSegment)
		assert.False(t, trk.Points[1].NewSegment)
		assert.True(t, trk.Points[2].NewSegment)
		assert.False(t, trk.Points[3].NewSegment)
	}
}

func TestMergeGPXConvertsToUTMWhenTargetIsUTM(t *testing.T) {
	g := mustParseGPX(t, waypointGPX)
	dst := track.NewTRW("dst", coords.ModeUTM)
	MergeGPX(g, dst)

	require.Len(t, dst.Waypoints, 1)
	for _, w := range dst.Waypoints {
		assert.Equal(t, coords.ModeUTM, w.Coord.Mode)
	}
}

func TestMergeGPXFillsTrackpointFields(t *testing.T) {
	g := mustParseGPX(t, trackWithFieldsGPX)
	dst := track.NewTRW("dst", coords.ModeLatLon)
	MergeGPX(g, dst)

	require.Len(t, dst.Tracks, 1)
	for _, trk := range dst.Tracks {
		require.Len(t, trk.Points, 1)
		tp := trk.Points[0]
		assert.True(t, tp.HasTimestamp)
		assert.Equal(t, 2024, tp.Timestamp.Year())
		assert.True(t, tp.HasAltitude)
		assert.Equal(t, 100.0, tp.Altitude)
	}
}

func TestMergeGPXRoutesMarkedIsRoute(t *testing.T) {
	g := mustParseGPX(t, routeGPX)
	dst := track.NewTRW("dst", coords.ModeLatLon)
	MergeGPX(g, dst)

	require.Len(t, dst.Tracks, 1)
	for _, trk := range dst.Tracks {
		assert.True(t, trk.IsRoute)
		assert.Equal(t, "R", trk.Name)
	}
}
