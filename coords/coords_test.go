package coords

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineEquatorialDegree(t *testing.T) {
	d := HaversineLatLon(LatLon{Lat: 0, Lon: 0}, LatLon{Lat: 0, Lon: 1})
	assert.InDelta(t, 111319.5, d, 1.0)
}

func TestUTMRoundTrip(t *testing.T) {
	cases := []LatLon{
		{Lat: 51.5074, Lon: -0.1278}, // London
		{Lat: -33.8688, Lon: 151.2093}, // Sydney
		{Lat: 40.7128, Lon: -74.0060}, // New York
	}
	for _, p := range cases {
		u := LatLonToUTM(p)
		back := UTMToLatLon(u)
		require.InDelta(t, p.Lat, back.Lat, 0.00000001) // ~1mm of latitude
		require.InDelta(t, p.Lon, back.Lon, 0.00000001)
	}
}

func TestBBoxAntimeridianContains(t *testing.T) {
	b := Validate(BBox{North: 10, South: -10, East: -170, West: 170})
	assert.True(t, b.CrossesAntimeridian())
	assert.True(t, b.Contains(LatLon{Lat: 0, Lon: 179}))
	assert.True(t, b.Contains(LatLon{Lat: 0, Lon: -179}))
	assert.False(t, b.Contains(LatLon{Lat: 0, Lon: 0}))
}

func TestBBoxIntersectsPlain(t *testing.T) {
	a := Validate(BBox{North: 10, South: 0, East: 10, West: 0})
	b := Validate(BBox{North: 5, South: -5, East: 15, West: 5})
	assert.True(t, Intersects(a, b))

	c := Validate(BBox{North: 20, South: 15, East: 10, West: 0})
	assert.False(t, Intersects(a, c))
}

func TestDistanceSameZoneUTMIsEuclidean(t *testing.T) {
	a := FromUTM(UTM{Easting: 500000, Northing: 4000000, Zone: 30, Band: 'U'})
	b := FromUTM(UTM{Easting: 500300, Northing: 4000400, Zone: 30, Band: 'U'})
	assert.InDelta(t, 500.0, Distance(a, b), 1e-9)
}
