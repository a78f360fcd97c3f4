package dem

import (
	"archive/zip"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
)

// srtmNamePattern matches "N41E056.hgt" or "S01E006.hgt.zip" and friends:
// two-digit latitude, three-digit longitude, hemisphere letters on each.
var srtmNamePattern = regexp.MustCompile(`^([NS])(\d{2})([EW])(\d{3})\.hgt(\.zip)?$`)

const secsPerDegree = 3600

// RecognizeSource reports which concrete DEM format a path's filename
// indicates. Detection is filename-only, per the source: a renamed file
// loses its type. Only SRTM has an auto-detectable naming scheme; USGS-24K
// has none and callers must be explicit.
func RecognizeSource(path string) Source {
	name := filepath.Base(path)
	if srtmNamePattern.MatchString(name) {
		return SourceSRTM
	}
	return SourceUnknown
}

// ParseSRTM reads a .hgt or .hgt.zip file into a Grid. The filename must
// match the SRTM naming convention (it supplies the SW corner); the
// decompressed payload must be exactly 1201x1201 or 3601x3601 big-endian
// int16 samples.
func ParseSRTM(path string) (*Grid, error) {
	name := filepath.Base(path)
	m := srtmNamePattern.FindStringSubmatch(name)
	if m == nil {
		return nil, fmt.Errorf("dem: %q does not match SRTM naming convention", name)
	}

	lat, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, fmt.Errorf("dem: invalid latitude in %q: %w", name, err)
	}
	lon, err := strconv.Atoi(m[4])
	if err != nil {
		return nil, fmt.Errorf("dem: invalid longitude in %q: %w", name, err)
	}

	minNorth := float64(lat * secsPerDegree)
	if m[1] == "S" {
		minNorth = -minNorth
	}
	minEast := float64(lon * secsPerDegree)
	if m[3] == "W" {
		minEast = -minEast
	}

	raw, err := readSRTMPayload(path, m[5] == ".zip")
	if err != nil {
		return nil, err
	}

	const rows3, rows1 = 1201, 3601
	var numRows int
	var arcsec float64
	switch len(raw) {
	case rows3 * rows3 * 2:
		numRows, arcsec = rows3, 3
	case rows1 * rows1 * 2:
		numRows, arcsec = rows1, 1
	default:
		return nil, fmt.Errorf("dem: %q has wrong size %d for an SRTM grid", name, len(raw))
	}
	numCols := numRows

	g := &Grid{
		Source:     SourceSRTM,
		HorizUnits: LatLonArcSeconds,
		Scale:      Scale{X: arcsec, Y: arcsec},
		MinEast:    minEast,
		MinNorth:   minNorth,
		MaxEast:    minEast + 3600,
		MaxNorth:   minNorth + 3600,
		Columns:    make([]Column, numCols),
	}
	for c := 0; c < numCols; c++ {
		g.Columns[c] = Column{
			East:   minEast + arcsec*float64(c),
			South:  minNorth,
			Points: make([]int16, numRows),
		}
	}

	// Samples are stored row-major, north row first; populate
	// column-major with row 0 at the southern edge (num_rows-1-r).
	for r := 0; r < numRows; r++ {
		for c := 0; c < numCols; c++ {
			off := (r*numCols + c) * 2
			v := int16(binary.BigEndian.Uint16(raw[off : off+2]))
			g.Columns[c].Points[numRows-1-r] = v
		}
	}

	return g, nil
}

func readSRTMPayload(path string, isZip bool) ([]byte, error) {
	if !isZip {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("dem: cannot read %q: %w", path, err)
		}
		return data, nil
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("dem: cannot open %q as zip: %w", path, err)
	}
	defer zr.Close()
	if len(zr.File) == 0 {
		return nil, fmt.Errorf("dem: %q is an empty zip", path)
	}
	rc, err := zr.File[0].Open()
	if err != nil {
		return nil, fmt.Errorf("dem: cannot open first entry of %q: %w", path, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("dem: cannot decompress %q: %w", path, err)
	}
	return data, nil
}
