package dem

import (
	"testing"

	"geoengine/coords"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatGrid is a 3x3 node grid, 10-unit spacing, constant elevation, so
// interpolated queries have an unambiguous expected answer.
func flatGrid(elev int16) *Grid {
	g := &Grid{
		HorizUnits: UTMMeters,
		Scale:      Scale{X: 10, Y: 10},
		MinEast:    0,
		MaxEast:    20,
		MinNorth:   0,
		MaxNorth:   20,
		UTMZone:    33,
		UTMBand:    'N',
		Columns:    make([]Column, 3),
	}
	for c := 0; c < 3; c++ {
		g.Columns[c] = Column{East: float64(c) * 10, South: 0, Points: []int16{elev, elev, elev}}
	}
	return g
}

func TestElevAtNoInterpolationExactNode(t *testing.T) {
	g := flatGrid(100)
	e, ok := g.ElevAt(0, 0, NoInterpolation)
	require.True(t, ok)
	assert.Equal(t, int16(100), e)
}

func TestElevAtSimpleOnFlatGridReturnsConstant(t *testing.T) {
	g := flatGrid(250)
	e, ok := g.ElevAt(5, 5, Simple)
	require.True(t, ok)
	assert.Equal(t, int16(250), e)
}

func TestElevAtBestOnFlatGridReturnsConstant(t *testing.T) {
	g := flatGrid(250)
	e, ok := g.ElevAt(5, 5, Best)
	require.True(t, ok)
	assert.Equal(t, int16(250), e)
}

func TestElevAtShortCircuitsWithinOneMeterOfNode(t *testing.T) {
	g := flatGrid(0)
	g.Columns[0].Points[0] = 42
	e, ok := g.ElevAt(0.5, 0.5, Simple)
	require.True(t, ok)
	assert.Equal(t, int16(42), e)
}

func TestElevAtMissingNeighborFails(t *testing.T) {
	g := flatGrid(100)
	g.Columns[1].Points[1] = InvalidElevation
	_, ok := g.ElevAt(5, 5, Simple)
	assert.False(t, ok)
}

func TestElevAtOutOfBounds(t *testing.T) {
	g := flatGrid(100)
	_, ok := g.ElevAt(-1, -1, NoInterpolation)
	assert.False(t, ok)
}

func TestElevAtCoordCrossZoneIsNoData(t *testing.T) {
	g := flatGrid(100)
	c := coords.FromUTM(coords.UTM{Easting: 5, Northing: 5, Zone: 34, Band: 'N'})
	_, ok := g.ElevAtCoord(c, Simple)
	assert.False(t, ok)
}

func TestElevAtCoordSameZone(t *testing.T) {
	g := flatGrid(321)
	c := coords.FromUTM(coords.UTM{Easting: 5, Northing: 5, Zone: 33, Band: 'N'})
	e, ok := g.ElevAtCoord(c, Best)
	require.True(t, ok)
	assert.Equal(t, int16(321), e)
}
