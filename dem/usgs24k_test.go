package dem

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildUSGS24KFile assembles a minimal but byte-faithful USGS-24K file: a
// fixed-offset header record followed by one combined column-header +
// continuation record, one UTM column of 3 decimeter samples.
func buildUSGS24KFile(t *testing.T) string {
	t.Helper()

	header := make([]byte, usgsBlockSize)
	for i := range header {
		header[i] = ' '
	}
	headerFields := strings.Join([]string{
		"1", "1", "1", // dem level code, pattern code, palaimetric reference system code
		"33",                                  // zone
		"0", "0", "0", "0", "0", "0", "0", "0", // 15 skipped numbers
		"0", "0", "0", "0", "0", "0", "0",
		"2",                 // horizontal unit code: UTM meters
		"1",                 // orig vert units (overridden for UTM)
		"0",                 // skip 1
		"500000", "4500000", // first corner
		"500000", "4510000", // corner 2
		"510000", "4500000", // corner 3
		"510000", "4510000", // corner 4
	}, " ")
	copy(header[149:], headerFields)

	block := make([]byte, usgsBlockSize)
	for i := range block {
		block[i] = ' '
	}
	blockFields := strings.Join([]string{
		"1",                      // class-B "header 2" marker
		"0",                      // skip 2
		"3",                      // n_rows
		"1",                      // class-B "header 3" marker
		"500000", "4500000",      // east_west, south
		"0", "0", "0",            // skip x3
		"1000", "2000", "3000",   // decimeter samples -> 100, 200, 300
	}, " ")
	copy(block, blockFields)

	dir := t.TempDir()
	path := filepath.Join(dir, "sample.dem")
	var buf bytes.Buffer
	buf.Write(header)
	buf.Write(block)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestParseUSGS24K(t *testing.T) {
	path := buildUSGS24KFile(t)

	g, err := ParseUSGS24K(path)
	require.NoError(t, err)

	assert.Equal(t, SourceUSGS24K, g.Source)
	assert.Equal(t, UTMMeters, g.HorizUnits)
	assert.Equal(t, 33, g.UTMZone)
	require.Len(t, g.Columns, 1)
	assert.Equal(t, 500000.0, g.Columns[0].East)
	assert.Equal(t, []int16{100, 200, 300}, g.Columns[0].Points)

	// Legacy 10m-DEM correction applied post-parse.
	assert.Equal(t, 499900.0, g.MinEast)
	assert.Equal(t, 4500200.0, g.MinNorth)
}

func TestFixExponentiation(t *testing.T) {
	buf := []byte("1.5D+02 2.0D-01")
	fixExponentiation(buf)
	assert.Equal(t, "1.5E+02 2.0E-01", string(buf))
}
