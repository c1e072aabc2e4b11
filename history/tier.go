package history

// tier is an ordered sequence of points with front-of-queue eviction.
// Points are appended in ascending timestamp order by the caller.
type tier struct {
	points []Point
}

// push appends a point to the end of the tier.
func (t *tier) push(p Point) {
	t.points = append(t.points, p)
}

// evictOlderThan removes every point with a timestamp before cutoffMs and
// returns the removed points. The partition is stable: both the kept and the
// evicted points preserve their relative order.
func (t *tier) evictOlderThan(cutoffMs int64) []Point {
	var evicted []Point
	kept := t.points[:0]
	for _, p := range t.points {
		if p.TimestampMs < cutoffMs {
			evicted = append(evicted, p)
		} else {
			kept = append(kept, p)
		}
	}
	// Clear the tail so evicted strings are not pinned.
	for i := len(kept); i < len(t.points); i++ {
		t.points[i] = Point{}
	}
	t.points = kept
	return evicted
}

// truncateToCapacity drops the oldest points until len <= capacity.
func (t *tier) truncateToCapacity(capacity int) {
	if capacity < 0 {
		capacity = 0
	}
	if len(t.points) <= capacity {
		return
	}
	drop := len(t.points) - capacity
	copy(t.points, t.points[drop:])
	for i := capacity; i < len(t.points); i++ {
		t.points[i] = Point{}
	}
	t.points = t.points[:capacity]
}

// first returns the oldest point in the tier.
func (t *tier) first() (Point, bool) {
	if len(t.points) == 0 {
		return Point{}, false
	}
	return t.points[0], true
}

// last returns the newest point in the tier.
func (t *tier) last() (Point, bool) {
	if len(t.points) == 0 {
		return Point{}, false
	}
	return t.points[len(t.points)-1], true
}

// len returns the number of points in the tier.
func (t *tier) len() int {
	return len(t.points)
}

// clear removes all points.
func (t *tier) clear() {
	t.points = nil
}
