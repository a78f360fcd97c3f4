package dem

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSRTMFile(t *testing.T, dir, name string, numRows int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	buf := make([]byte, numRows*numRows*2)
	for r := 0; r < numRows; r++ {
		for c := 0; c < numRows; c++ {
			off := (r*numRows + c) * 2
			binary.BigEndian.PutUint16(buf[off:off+2], uint16(int16(r*numRows+c)))
		}
	}
	require.NoError(t, os.WriteFile(path, buf, 0o644))
	return path
}

func TestRecognizeSourceSRTM(t *testing.T) {
	assert.Equal(t, SourceSRTM, RecognizeSource("N41E056.hgt"))
	assert.Equal(t, SourceSRTM, RecognizeSource("S01W006.hgt.zip"))
	assert.Equal(t, SourceUnknown, RecognizeSource("w123n04.dem"))
}

func TestParseSRTMDimensionsAndCorner(t *testing.T) {
	dir := t.TempDir()
	path := writeSRTMFile(t, dir, "N41E056.hgt", 1201)

	g, err := ParseSRTM(path)
	require.NoError(t, err)
	assert.Equal(t, SourceSRTM, g.Source)
	assert.Len(t, g.Columns, 1201)
	assert.Len(t, g.Columns[0].Points, 1201)
	assert.Equal(t, 3.0, g.Scale.X)
	assert.Equal(t, float64(41*3600), g.MinNorth)
	assert.Equal(t, float64(56*3600), g.MinEast)
}

func TestParseSRTMRowMajorToColumnMajorTranspose(t *testing.T) {
	dir := t.TempDir()
	path := writeSRTMFile(t, dir, "N41E056.hgt", 1201)

	g, err := ParseSRTM(path)
	require.NoError(t, err)

	// Row-major sample (0,0) (the file's northwest corner) is value 0 and
	// must land at column 0, the topmost (north) row index.
	assert.Equal(t, int16(0), g.Columns[0].Points[1200])
	// Row-major sample (1200,0) (southwest corner) must land at the
	// bottommost (south) row index of column 0.
	sw := 1200 * 1201
	assert.Equal(t, int16(sw), g.Columns[0].Points[0])
}

func TestParseSRTMWrongSizeRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "N41E056.hgt")
	require.NoError(t, os.WriteFile(path, make([]byte, 100), 0o644))

	_, err := ParseSRTM(path)
	assert.Error(t, err)
}

func TestParseSRTMBadFilenameRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not-an-srtm-name.hgt")
	require.NoError(t, os.WriteFile(path, make([]byte, 1201*1201*2), 0o644))

	_, err := ParseSRTM(path)
	assert.Error(t, err)
}
