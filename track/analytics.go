package track

import (
	"math"
	"time"

	"geoengine/coords"
	"geoengine/dem"
)

// Length returns the track's total length in meters, excluding the
// distance "jump" across segment boundaries.
func (t *Track) Length() float64 {
	var length float64
	for i := 1; i < len(t.Points); i++ {
		if t.Points[i].NewSegment {
			continue
		}
		length += coords.Distance(t.Points[i].Coord, t.Points[i-1].Coord)
	}
	return length
}

// LengthIncludingGaps returns the track's total length including the
// distance jump across segment boundaries.
func (t *Track) LengthIncludingGaps() float64 {
	var length float64
	for i := 1; i < len(t.Points); i++ {
		length += coords.Distance(t.Points[i].Coord, t.Points[i-1].Coord)
	}
	return length
}

// Duration returns the elapsed time between the first and last trackpoint.
// With segmentGaps false, time spent jumping between segments is excluded.
func (t *Track) Duration(segmentGaps bool) time.Duration {
	if len(t.Points) == 0 {
		return 0
	}
	first := t.First()
	if !first.HasTimestamp {
		return 0
	}
	if segmentGaps {
		last := t.Last()
		if !last.HasTimestamp {
			return 0
		}
		return last.Timestamp.Sub(first.Timestamp)
	}
	var total time.Duration
	for i := 1; i < len(t.Points); i++ {
		cur, prev := t.Points[i], t.Points[i-1]
		if cur.HasTimestamp && prev.HasTimestamp && !cur.NewSegment {
			d := cur.Timestamp.Sub(prev.Timestamp)
			if d < 0 {
				d = -d
			}
			total += d
		}
	}
	return total
}

// AverageSpeed returns the distance-weighted average speed in m/s over
// time-stamped, in-segment point pairs.
func (t *Track) AverageSpeed() float64 {
	var length float64
	var elapsed time.Duration
	for i := 1; i < len(t.Points); i++ {
		cur, prev := t.Points[i], t.Points[i-1]
		if cur.HasTimestamp && prev.HasTimestamp && !cur.NewSegment {
			length += coords.Distance(cur.Coord, prev.Coord)
			d := cur.Timestamp.Sub(prev.Timestamp)
			if d < 0 {
				d = -d
			}
			elapsed += d
		}
	}
	if elapsed == 0 {
		return 0
	}
	return math.Abs(length / elapsed.Seconds())
}

// AverageSpeedMoving is AverageSpeed but skips point pairs more than
// stopLength apart in time, so long stationary periods don't drag the
// average down — the way GPS/cycling computers report "moving average".
func (t *Track) AverageSpeedMoving(stopLength time.Duration) float64 {
	var length float64
	var elapsed time.Duration
	for i := 1; i < len(t.Points); i++ {
		cur, prev := t.Points[i], t.Points[i-1]
		if cur.HasTimestamp && prev.HasTimestamp && !cur.NewSegment {
			d := cur.Timestamp.Sub(prev.Timestamp)
			if d < 0 {
				d = -d
			}
			if d < stopLength {
				length += coords.Distance(cur.Coord, prev.Coord)
				elapsed += d
			}
		}
	}
	if elapsed == 0 {
		return 0
	}
	return math.Abs(length / elapsed.Seconds())
}

// MaxSpeed returns the highest instantaneous speed between any two
// consecutive, time-stamped, in-segment trackpoints.
func (t *Track) MaxSpeed() float64 {
	var maxSpeed float64
	for i := 1; i < len(t.Points); i++ {
		cur, prev := t.Points[i], t.Points[i-1]
		if cur.HasTimestamp && prev.HasTimestamp && !cur.NewSegment {
			d := cur.Timestamp.Sub(prev.Timestamp)
			if d < 0 {
				d = -d
			}
			if d == 0 {
				continue
			}
			speed := coords.Distance(cur.Coord, prev.Coord) / d.Seconds()
			if speed > maxSpeed {
				maxSpeed = speed
			}
		}
	}
	return maxSpeed
}

// TotalElevationGain returns the cumulative ascent and descent across the
// whole track. Both are zero (with ok=false) if the track is empty or its
// first point has no altitude; later points without one are skipped.
func (t *Track) TotalElevationGain() (up, down float64, ok bool) {
	if len(t.Points) == 0 || !t.Points[0].HasAltitude {
		return 0, 0, false
	}
	for i := 1; i < len(t.Points); i++ {
		if !t.Points[i].HasAltitude || !t.Points[i-1].HasAltitude {
			continue
		}
		diff := t.Points[i].Altitude - t.Points[i-1].Altitude
		if diff > 0 {
			up += diff
		} else {
			down -= diff
		}
	}
	return up, down, true
}

// ElevationMap buckets the track into numChunks equal-length segments and
// returns the altitude averaged (by area under the elevation-vs-distance
// curve) over each chunk. Returns nil if the track has no usable
// elevation data or total length.
func (t *Track) ElevationMap(numChunks int) []float64 {
	if len(t.Points) < 2 {
		return nil
	}
	hasAltitude := false
	for _, tp := range t.Points {
		if tp.HasAltitude && math.Abs(tp.Altitude) < 1e9 {
			hasAltitude = true
			break
		}
	}
	if !hasAltitude {
		return nil
	}

	totalLength := t.LengthIncludingGaps()
	chunkLength := totalLength / float64(numChunks)
	if chunkLength <= 0 {
		return nil
	}

	pts := make([]float64, numChunks)

	i := 0
	altitudeAt := func(idx int) float64 {
		if t.Points[idx].HasAltitude {
			return t.Points[idx].Altitude
		}
		return 0
	}

	curSegLen := coords.Distance(t.Points[i].Coord, t.Points[i+1].Coord)
	alt1, alt2 := altitudeAt(i), altitudeAt(i+1)
	distAlongSeg := 0.0
	ignoreIt := false

	curDist, curArea := 0.0, 0.0
	chunk := 0
	for chunk < numChunks {
		if curSegLen > 0 && curSegLen-distAlongSeg > chunkLength {
			distAlongSeg += chunkLength
			if ignoreIt {
				pts[chunk] = alt1
			} else {
				pts[chunk] = alt1 + (alt2-alt1)*((distAlongSeg-(chunkLength/2))/curSegLen)
			}
			chunk++
			continue
		}

		if curSegLen > 0 {
			altAtDist := alt1 + (alt2-alt1)/curSegLen*distAlongSeg
			curDist = curSegLen - distAlongSeg
			curArea = curDist * (altAtDist + alt2) * 0.5
		} else {
			curDist, curArea = 0, 0
		}

		i++
		for i < len(t.Points)-1 {
			curSegLen = coords.Distance(t.Points[i].Coord, t.Points[i+1].Coord)
			alt1, alt2 = altitudeAt(i), altitudeAt(i+1)
			ignoreIt = t.Points[i+1].NewSegment
			if chunkLength-curDist >= curSegLen {
				curDist += curSegLen
				curArea += curSegLen * (alt1 + alt2) * 0.5
				i++
			} else {
				break
			}
		}

		distAlongSeg = chunkLength - curDist
		atEnd := i >= len(t.Points)-1
		if ignoreIt || atEnd {
			if curDist != 0 {
				pts[chunk] = curArea / curDist
			} else {
				pts[chunk] = alt1
			}
			if atEnd {
				for j := chunk + 1; j < numChunks; j++ {
					pts[j] = pts[chunk]
				}
				break
			}
		} else {
			curArea += distAlongSeg * (alt1 + (alt2-alt1)*distAlongSeg/curSegLen)
			pts[chunk] = curArea / chunkLength
		}

		curDist = 0
		chunk++
	}

	return pts
}

// GradientMap returns the percentage grade between consecutive chunks of
// ElevationMap.
func (t *Track) GradientMap(numChunks int) []float64 {
	totalLength := t.LengthIncludingGaps()
	chunkLength := totalLength / float64(numChunks)
	if chunkLength <= 0 {
		return nil
	}
	altitudes := t.ElevationMap(numChunks)
	if altitudes == nil {
		return nil
	}
	pts := make([]float64, numChunks)
	for i := 0; i < numChunks-1; i++ {
		pts[i] = 100.0 * (altitudes[i+1] - altitudes[i]) / chunkLength
	}
	return pts
}

func (t *Track) cumulativeDistanceAndTime() (s, tt []float64, ok bool) {
	if len(t.Points) == 0 {
		return nil, nil, false
	}
	first, last := t.Points[0], t.Points[len(t.Points)-1]
	if !first.HasTimestamp || !last.HasTimestamp {
		return nil, nil, false
	}
	duration := last.Timestamp.Sub(first.Timestamp)
	if duration <= 0 {
		return nil, nil, false
	}

	s = make([]float64, len(t.Points))
	tt = make([]float64, len(t.Points))
	tt[0] = float64(first.Timestamp.Unix())
	for i := 1; i < len(t.Points); i++ {
		s[i] = s[i-1] + coords.Distance(t.Points[i].Coord, t.Points[i-1].Coord)
		tt[i] = float64(t.Points[i].Timestamp.Unix())
	}
	return s, tt, true
}

// SpeedMap buckets the track into numChunks equal-time intervals and
// returns the average speed (m/s) in each.
func (t *Track) SpeedMap(numChunks int) []float64 {
	s, tt, ok := t.cumulativeDistanceAndTime()
	if !ok {
		return nil
	}
	duration := tt[len(tt)-1] - tt[0]
	chunkDur := duration / float64(numChunks)

	v := make([]float64, numChunks)
	index := 0
	for i := 0; i < numChunks; i++ {
		target := tt[0] + float64(i)*chunkDur
		if target >= tt[index] {
			accT, accS := 0.0, 0.0
			for index < len(tt)-1 && target >= tt[index] {
				accS += s[index+1] - s[index]
				accT += tt[index+1] - tt[index]
				index++
			}
			if accT != 0 {
				v[i] = accS / accT
			}
		} else if i > 0 {
			v[i] = v[i-1]
		}
	}
	return v
}

// DistanceMap buckets the track into numChunks equal-time intervals and
// returns the cumulative distance (meters) reached by the end of each.
func (t *Track) DistanceMap(numChunks int) []float64 {
	s, tt, ok := t.cumulativeDistanceAndTime()
	if !ok {
		return nil
	}
	duration := tt[len(tt)-1] - tt[0]
	chunkDur := duration / float64(numChunks)

	v := make([]float64, numChunks)
	index := 0
	for i := 0; i < numChunks; i++ {
		target := tt[0] + float64(i)*chunkDur
		if target >= tt[index] {
			accS := 0.0
			for index < len(tt)-1 && target >= tt[index] {
				accS += s[index+1] - s[index]
				index++
			}
			if i > 0 {
				v[i] = v[i-1] + accS
			} else {
				v[i] = accS
			}
		} else if i > 0 {
			v[i] = v[i-1]
		}
	}
	return v
}

// ElevationTimeMap buckets the track into numChunks equal-time intervals
// and returns the altitude at the end of each, following the time index
// alone rather than ElevationMap's distance-weighted area-under-curve
// method (blockier for sparse tracks, but simpler and good enough for the
// time axis).
func (t *Track) ElevationTimeMap(numChunks int) []float64 {
	if len(t.Points) < 2 {
		return nil
	}
	hasAltitude := false
	for _, tp := range t.Points {
		if tp.HasAltitude {
			hasAltitude = true
			break
		}
	}
	if !hasAltitude {
		return nil
	}

	first, last := t.Points[0], t.Points[len(t.Points)-1]
	if !first.HasTimestamp || !last.HasTimestamp {
		return nil
	}
	duration := last.Timestamp.Sub(first.Timestamp).Seconds()
	if duration <= 0 {
		return nil
	}

	s := make([]float64, len(t.Points))
	tt := make([]float64, len(t.Points))
	for i, tp := range t.Points {
		s[i] = tp.Altitude
		tt[i] = float64(tp.Timestamp.Unix())
	}

	chunkDur := duration / float64(numChunks)
	pts := make([]float64, numChunks)
	index := 0
	for i := 0; i < numChunks; i++ {
		target := tt[0] + float64(i)*chunkDur
		if target >= tt[index] {
			accS := s[index]
			for index < len(tt)-1 && target >= tt[index] {
				accS += s[index+1] - s[index]
				index++
			}
			pts[i] = accS
		} else if i > 0 {
			pts[i] = pts[i-1]
		}
	}
	return pts
}

// TPByDist returns the trackpoint at or around metersFromStart: the next
// point reached once the cumulative distance passes that threshold, or
// (if getNextPoint is false) the point just before it.
func (t *Track) TPByDist(metersFromStart float64, getNextPoint bool) (*Trackpoint, float64, bool) {
	if len(t.Points) == 0 {
		return nil, 0, false
	}
	curDist, curInc := 0.0, 0.0
	idx := -1
	for i := 1; i < len(t.Points); i++ {
		curInc = coords.Distance(t.Points[i].Coord, t.Points[i-1].Coord)
		curDist += curInc
		if curDist >= metersFromStart {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, 0, false
	}
	if !getNextPoint && idx > 0 {
		return t.Points[idx-1], curDist - curInc, true
	}
	return t.Points[idx], curDist, true
}

// ClosestTPByPercentageDist returns the trackpoint closest to the given
// fraction of the track's total (gap-inclusive) length.
func (t *Track) ClosestTPByPercentageDist(reldist float64) (*Trackpoint, float64, bool) {
	target := t.LengthIncludingGaps() * reldist
	if len(t.Points) == 0 {
		return nil, 0, false
	}
	curDist, lastDist := 0.0, 0.0
	lastIdx := -1
	idx := -1
	for i := 1; i < len(t.Points); i++ {
		inc := coords.Distance(t.Points[i].Coord, t.Points[i-1].Coord)
		lastDist = curDist
		curDist += inc
		if curDist >= target {
			idx = i
			break
		}
		lastIdx = i
	}
	if idx == -1 {
		if lastIdx == -1 {
			return nil, 0, false
		}
		return t.Points[lastIdx], lastDist, true
	}
	inc := curDist - lastDist
	if idx > 0 && math.Abs(curDist-inc-target) < math.Abs(curDist-target) {
		return t.Points[idx-1], lastDist, true
	}
	return t.Points[idx], curDist, true
}

// ClosestTPByPercentageTime returns the trackpoint closest to the given
// fraction of the track's elapsed (first-to-last) time.
func (t *Track) ClosestTPByPercentageTime(reltime float64) (*Trackpoint, time.Duration, bool) {
	if len(t.Points) == 0 {
		return nil, 0, false
	}
	start := t.Points[0].Timestamp
	end := t.Points[len(t.Points)-1].Timestamp
	target := start.Add(time.Duration(float64(end.Sub(start)) * reltime))

	for i, tp := range t.Points {
		switch {
		case tp.Timestamp.Equal(target):
			return tp, tp.Timestamp.Sub(start), true
		case tp.Timestamp.After(target):
			if i == 0 {
				return tp, 0, true
			}
			prev := t.Points[i-1]
			before := target.Sub(prev.Timestamp)
			after := tp.Timestamp.Sub(target)
			if before <= after {
				return prev, prev.Timestamp.Sub(start), true
			}
			return tp, tp.Timestamp.Sub(start), true
		case i == len(t.Points)-1 && target.Before(tp.Timestamp.Add(3*time.Second)):
			return tp, tp.Timestamp.Sub(start), true
		}
	}
	return nil, 0, false
}

// ApplyDEMData sets each trackpoint's altitude from the first grid in
// grids whose extent contains it, using best (Shepard) interpolation. When
// skipExisting is true, points that already carry an altitude are left
// alone. Returns the number of points updated.
func (t *Track) ApplyDEMData(grids []*dem.Grid, skipExisting bool) int {
	updated := 0
	for _, tp := range t.Points {
		if skipExisting && tp.HasAltitude {
			continue
		}
		if applyDEMToPoint(tp, grids) {
			updated++
		}
	}
	return updated
}

// ApplyDEMDataLastTrackpoint applies ApplyDEMData's lookup to only the
// final trackpoint — used after appending one fresh point during a live
// acquisition, when re-scanning the whole track would be wasteful.
func (t *Track) ApplyDEMDataLastTrackpoint(grids []*dem.Grid) bool {
	if len(t.Points) == 0 {
		return false
	}
	return applyDEMToPoint(t.Points[len(t.Points)-1], grids)
}

func applyDEMToPoint(tp *Trackpoint, grids []*dem.Grid) bool {
	for _, g := range grids {
		if e, ok := g.ElevAtCoord(tp.Coord, dem.Best); ok {
			tp.Altitude = float64(e)
			tp.HasAltitude = true
			return true
		}
	}
	return false
}

// SmoothMissingElevationData fills points with no altitude. With flat
// true, a missing point copies the last known-good altitude; otherwise
// each run of missing points is linearly interpolated between the
// known-good altitudes bracketing it. Returns the number of points
// adjusted.
func (t *Track) SmoothMissingElevationData(flat bool) int {
	adjusted := 0
	haveElev := false
	var lastElev float64
	missingStart := -1

	applySmoothRun := func(endIdx int, endElev float64) {
		if missingStart < 0 {
			return
		}
		n := endIdx - missingStart
		change := (endElev - lastElev) / float64(n+1)
		for i, count := missingStart, 1; i < endIdx; i, count = i+1, count+1 {
			t.Points[i].Altitude = lastElev + change*float64(count)
			t.Points[i].HasAltitude = true
			adjusted++
		}
	}

	for i, tp := range t.Points {
		if !tp.HasAltitude {
			if flat {
				if haveElev {
					tp.Altitude = lastElev
					tp.HasAltitude = true
					adjusted++
				}
			} else if missingStart < 0 {
				missingStart = i
			}
			continue
		}

		if !flat && haveElev {
			applySmoothRun(i, tp.Altitude)
		}
		missingStart = -1
		haveElev = true
		lastElev = tp.Altitude
	}

	return adjusted
}
