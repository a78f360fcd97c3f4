// Package coords implements the geodetic primitives shared by the DEM and
// track packages: latitude/longitude and UTM points, a tagged Coord union
// of the two, and bounding boxes with antimeridian handling.
package coords

import "math"

// WGS-84 ellipsoid constants used by the lat/lon <-> UTM conversions.
const (
	wgs84A  = 6378137.0
	wgs84F  = 1 / 298.257223563
	utmScale = 0.9996
	// UTMEastingOffset is the false easting applied to every UTM zone.
	UTMEastingOffset = 500000.0
)

// Mode selects which variant a Coord or a TRW container holds/imposes.
type Mode int

const (
	ModeLatLon Mode = iota
	ModeUTM
)

// LatLon is a geodetic point in degrees. The zero value is not a valid
// point; use IsValid to check.
type LatLon struct {
	Lat float64
	Lon float64
}

// NaNLatLon is the sentinel "unset" LatLon, mirroring the NAN-initialized
// default constructor in the original coords.h.
var NaNLatLon = LatLon{Lat: math.NaN(), Lon: math.NaN()}

func (p LatLon) IsValid() bool {
	return !math.IsNaN(p.Lat) && !math.IsNaN(p.Lon)
}

// UTM is a projected point: easting/northing in meters, plus the zone
// number (1-60) and the MGRS latitude band letter.
type UTM struct {
	Easting  float64
	Northing float64
	Zone     int
	Band     byte
}

func (u UTM) IsEqual(o UTM) bool {
	return u.Zone == o.Zone && u.Band == o.Band && u.Easting == o.Easting && u.Northing == o.Northing
}

// Coord is a tagged union of LatLon and UTM, matching the data model's
// {UTM, LatLon} variant. Exactly one of the two is meaningful, selected by
// Mode.
type Coord struct {
	Mode   Mode
	LatLon LatLon
	UTM    UTM
}

func FromLatLon(p LatLon) Coord { return Coord{Mode: ModeLatLon, LatLon: p} }
func FromUTM(u UTM) Coord       { return Coord{Mode: ModeUTM, UTM: u} }

// ToLatLon returns the LatLon representation of c, converting from UTM if
// necessary.
func (c Coord) ToLatLon() LatLon {
	if c.Mode == ModeLatLon {
		return c.LatLon
	}
	return UTMToLatLon(c.UTM)
}

// ToUTM returns the UTM representation of c, converting from LatLon if
// necessary.
func (c Coord) ToUTM() UTM {
	if c.Mode == ModeUTM {
		return c.UTM
	}
	return LatLonToUTM(c.LatLon)
}

// Distance returns the metric distance between two coordinates: Haversine
// when both are (or reduce to) LatLon, plane Euclidean distance when both
// are UTM in the same zone/band, and Haversine via LatLon conversion
// otherwise (cross-zone UTM).
func Distance(a, b Coord) float64 {
	if a.Mode == ModeUTM && b.Mode == ModeUTM && a.UTM.Zone == b.UTM.Zone && a.UTM.Band == b.UTM.Band {
		de := a.UTM.Easting - b.UTM.Easting
		dn := a.UTM.Northing - b.UTM.Northing
		return math.Sqrt(de*de + dn*dn)
	}
	return HaversineLatLon(a.ToLatLon(), b.ToLatLon())
}

// HaversineLatLon returns the great-circle distance between two LatLon
// points in meters, using the mean Earth radius.
func HaversineLatLon(a, b LatLon) float64 {
	const earthRadius = 6371000.0
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadius * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// LatLonToUTM converts a geodetic point to UTM using the WGS-84 ellipsoid
// and the standard Gauss-Kruger transverse Mercator series. The zone is
// derived from the longitude; latitude bands follow the MGRS convention.
func LatLonToUTM(p LatLon) UTM {
	zone := int((p.Lon+180)/6) + 1
	if zone > 60 {
		zone = 60
	}
	if zone < 1 {
		zone = 1
	}
	lonOrigin := float64(zone-1)*6 - 180 + 3

	latRad := p.Lat * math.Pi / 180
	lonRad := p.Lon * math.Pi / 180
	lonOriginRad := lonOrigin * math.Pi / 180

	e2 := wgs84F * (2 - wgs84F)
	ep2 := e2 / (1 - e2)

	n := wgs84A / math.Sqrt(1-e2*math.Sin(latRad)*math.Sin(latRad))
	t := math.Tan(latRad) * math.Tan(latRad)
	c := ep2 * math.Cos(latRad) * math.Cos(latRad)
	aa := math.Cos(latRad) * (lonRad - lonOriginRad)

	m := wgs84A * ((1-e2/4-3*e2*e2/64-5*e2*e2*e2/256)*latRad -
		(3*e2/8+3*e2*e2/32+45*e2*e2*e2/1024)*math.Sin(2*latRad) +
		(15*e2*e2/256+45*e2*e2*e2/1024)*math.Sin(4*latRad) -
		(35*e2*e2*e2/3072)*math.Sin(6*latRad))

	easting := utmScale*n*(aa+(1-t+c)*aa*aa*aa/6+
		(5-18*t+t*t+72*c-58*ep2)*aa*aa*aa*aa*aa/120) + UTMEastingOffset

	northing := utmScale * (m + n*math.Tan(latRad)*(aa*aa/2+
		(5-t+9*c+4*c*c)*aa*aa*aa*aa/24+
		(61-58*t+t*t+600*c-330*ep2)*aa*aa*aa*aa*aa*aa/720))

	if p.Lat < 0 {
		northing += 10000000.0
	}

	return UTM{Easting: easting, Northing: northing, Zone: zone, Band: latBand(p.Lat)}
}

// UTMToLatLon inverts LatLonToUTM.
func UTMToLatLon(u UTM) LatLon {
	e2 := wgs84F * (2 - wgs84F)
	ep2 := e2 / (1 - e2)
	e1 := (1 - math.Sqrt(1-e2)) / (1 + math.Sqrt(1-e2))

	x := u.Easting - UTMEastingOffset
	y := u.Northing
	if u.Band < 'N' {
		y -= 10000000.0
	}

	m := y / utmScale
	mu := m / (wgs84A * (1 - e2/4 - 3*e2*e2/64 - 5*e2*e2*e2/256))

	phi1 := mu + (3*e1/2-27*e1*e1*e1/32)*math.Sin(2*mu) +
		(21*e1*e1/16-55*e1*e1*e1*e1/32)*math.Sin(4*mu) +
		(151*e1*e1*e1/96)*math.Sin(6*mu)

	n1 := wgs84A / math.Sqrt(1-e2*math.Sin(phi1)*math.Sin(phi1))
	t1 := math.Tan(phi1) * math.Tan(phi1)
	c1 := ep2 * math.Cos(phi1) * math.Cos(phi1)
	r1 := wgs84A * (1 - e2) / math.Pow(1-e2*math.Sin(phi1)*math.Sin(phi1), 1.5)
	d := x / (n1 * utmScale)

	lat := phi1 - (n1*math.Tan(phi1)/r1)*(d*d/2-
		(5+3*t1+10*c1-4*c1*c1-9*ep2)*d*d*d*d/24+
		(61+90*t1+298*c1+45*t1*t1-252*ep2-3*c1*c1)*d*d*d*d*d*d/720)

	lon := (d - (1+2*t1+c1)*d*d*d/6 +
		(5-2*c1+28*t1-3*c1*c1+8*ep2+24*t1*t1)*d*d*d*d*d/120) / math.Cos(phi1)

	lonOrigin := float64(u.Zone-1)*6 - 180 + 3

	return LatLon{
		Lat: lat * 180 / math.Pi,
		Lon: lonOrigin + lon*180/math.Pi,
	}
}

func latBand(lat float64) byte {
	const bands = "CDEFGHJKLMNPQRSTUVWXX"
	if lat < -80 || lat > 84 {
		return 'Z'
	}
	idx := int((lat + 80) / 8)
	if idx < 0 {
		idx = 0
	}
	if idx >= len(bands) {
		idx = len(bands) - 1
	}
	return bands[idx]
}
