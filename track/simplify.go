package track

// Simplify reduces the track to a subset of its trackpoints using the
// Ramer-Douglas-Peucker algorithm: points within epsilon (in degrees,
// treating lat/lon as planar — adequate at track scale) of the line
// between their neighbors are dropped.
func (t *Track) Simplify(epsilon float64) {
	t.Points = ramerDouglasPeucker(t.Points, epsilon)
	t.CalculateBounds()
}

func ramerDouglasPeucker(points []*Trackpoint, epsilon float64) []*Trackpoint {
	if len(points) <= 2 {
		return points
	}

	start, end := points[0], points[len(points)-1]
	maxDist := 0.0
	maxIndex := 0
	for i := 1; i < len(points)-1; i++ {
		d := perpendicularDistance(points[i], start, end)
		if d > maxDist {
			maxDist = d
			maxIndex = i
		}
	}

	if maxDist > epsilon*epsilon {
		left := ramerDouglasPeucker(points[:maxIndex+1], epsilon)
		right := ramerDouglasPeucker(points[maxIndex:], epsilon)
		result := make([]*Trackpoint, 0, len(left)+len(right)-1)
		result = append(result, left...)
		result = append(result, right[1:]...)
		return result
	}

	return []*Trackpoint{start, end}
}

// perpendicularDistance returns the squared Cartesian distance (in
// lon/lat degree units) from point to the line segment lineStart-lineEnd.
func perpendicularDistance(point, lineStart, lineEnd *Trackpoint) float64 {
	p := point.Coord.ToLatLon()
	a := lineStart.Coord.ToLatLon()
	b := lineEnd.Coord.ToLatLon()

	px, py := p.Lon, p.Lat
	x1, y1 := a.Lon, a.Lat
	x2, y2 := b.Lon, b.Lat

	dx, dy := px-x1, py-y1
	cx, cy := x2-x1, y2-y1

	lenSq := cx*cx + cy*cy
	if lenSq == 0 {
		return dx*dx + dy*dy
	}

	param := (dx*cx + dy*cy) / lenSq
	var xx, yy float64
	switch {
	case param < 0:
		xx, yy = x1, y1
	case param > 1:
		xx, yy = x2, y2
	default:
		xx, yy = x1+param*cx, y1+param*cy
	}

	ddx, ddy := px-xx, py-yy
	return ddx*ddx + ddy*ddy
}
