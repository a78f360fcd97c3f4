package sources

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"geoengine/coords"
	"geoengine/internal/status"
	"geoengine/track"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTrackGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk><name>T</name><trkseg><trkpt lat="1" lon="2"></trkpt></trkseg></trk>
</gpx>`

func TestLocalFileTitleIsBaseName(t *testing.T) {
	s := &LocalFile{Path: "/home/user/tracks/ride.gpx"}
	assert.Equal(t, "ride.gpx", s.Title())
	assert.Equal(t, "local_file:/home/user/tracks/ride.gpx", s.ID())
}

func TestLocalFileAcquireIntoLayer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ride.gpx")
	require.NoError(t, os.WriteFile(path, []byte(sampleTrackGPX), 0o644))

	s := &LocalFile{Path: path}
	acqCtx := newTestContext()
	acqCtx.TargetTRW = track.NewTRW("dst", coords.ModeLatLon)

	st := s.AcquireIntoLayer(context.Background(), acqCtx, nil)
	require.True(t, status.IsOK(st))
	assert.Len(t, acqCtx.TargetTRW.Tracks, 1)
}
