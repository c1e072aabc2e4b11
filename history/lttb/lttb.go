// Package lttb implements the Largest-Triangle-Three-Buckets downsampling
// algorithm.
//
// LTTB reduces an ordered numeric series to a fixed number of points while
// preserving the visual shape of the trend line. Unlike naive decimation
// (every Nth point), it keeps local extrema such as a momentary voltage
// spike, which matters for safety-relevant instrument displays. The
// algorithm runs in O(n) over the input.
package lttb

import "math"

// Point is a single numeric measurement in a series.
type Point struct {
	// TsMs is the Unix timestamp in milliseconds.
	TsMs int64

	// Value is the measured value.
	Value float64
}

// Downsample reduces points to at most threshold points.
//
// The input must be ordered by ascending timestamp. The first and last input
// points are always retained. Ties in triangle area are broken by lowest
// index, so the output is deterministic.
//
// If len(points) <= threshold the input slice is returned unchanged. If
// threshold <= 2 only the first and last points are returned.
func Downsample(points []Point, threshold int) []Point {
	n := len(points)
	if n == 0 {
		return nil
	}
	if n <= threshold {
		return points
	}
	if threshold <= 2 {
		return []Point{points[0], points[n-1]}
	}

	sampled := make([]Point, 0, threshold)
	sampled = append(sampled, points[0])

	// The interior (everything but the endpoints) is split into
	// threshold-2 buckets of fractional size.
	bucketSize := float64(n-2) / float64(threshold-2)

	for i := 0; i < threshold-2; i++ {
		// Mean of the next bucket, used as the fixed look-ahead anchor C.
		nextStart := int(math.Floor(float64(i+1)*bucketSize)) + 1
		nextEnd := int(math.Floor(float64(i+2)*bucketSize)) + 1
		if nextEnd > n {
			nextEnd = n
		}

		var avgTs, avgVal float64
		count := nextEnd - nextStart
		if count > 0 {
			for j := nextStart; j < nextEnd; j++ {
				avgTs += float64(points[j].TsMs)
				avgVal += points[j].Value
			}
			avgTs /= float64(count)
			avgVal /= float64(count)
		} else {
			// Final bucket runs out of look-ahead; anchor on the last point.
			avgTs = float64(points[n-1].TsMs)
			avgVal = points[n-1].Value
		}

		// Within the current bucket, pick the point B maximizing the area
		// of triangle (A, B, C) where A is the previously selected point.
		start := int(math.Floor(float64(i)*bucketSize)) + 1
		end := int(math.Floor(float64(i+1)*bucketSize)) + 1
		if end > n-1 {
			end = n - 1
		}

		a := sampled[len(sampled)-1]
		aTs := float64(a.TsMs)

		maxArea := -1.0
		maxIdx := start
		for j := start; j < end; j++ {
			area := math.Abs((aTs-avgTs)*(points[j].Value-a.Value) -
				(aTs-float64(points[j].TsMs))*(avgVal-a.Value))
			if area > maxArea {
				maxArea = area
				maxIdx = j
			}
		}

		sampled = append(sampled, points[maxIdx])
	}

	sampled = append(sampled, points[n-1])
	return sampled
}
