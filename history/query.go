package history

import (
	"sort"
	"time"
)

// All returns every retained point, downsampled and recent, ordered by
// ascending timestamp. The sort is defensive: the tiers are individually
// ordered and downsampled entries normally precede recent ones, but the
// merged view must stay ordered even if capacity truncation disturbs that
// layout.
func (b *Buffer) All() []Point {
	out := make([]Point, 0, b.downsampled.len()+b.recent.len())
	out = append(out, b.downsampled.points...)
	out = append(out, b.recent.points...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TimestampMs < out[j].TimestampMs
	})
	return out
}

// Recent returns the full-resolution points within the given window of
// wall-clock now.
//
// Only the recent tier is inspected: points that already transitioned to
// the downsampled tier are not returned, even when window exceeds the
// configured recent window. Callers that need the whole horizon should use
// All or Range.
func (b *Buffer) Recent(window time.Duration) []Point {
	cutoff := b.now().UnixMilli() - window.Milliseconds()

	var out []Point
	for _, p := range b.recent.points {
		if p.TimestampMs >= cutoff {
			out = append(out, p)
		}
	}
	return out
}

// Range returns all retained points with startMs <= timestamp <= endMs.
func (b *Buffer) Range(startMs, endMs int64) []Point {
	var out []Point
	for _, p := range b.All() {
		if p.TimestampMs >= startMs && p.TimestampMs <= endMs {
			out = append(out, p)
		}
	}
	return out
}

// Latest returns the most recent point, preferring the full-resolution tier.
// Returns false if the buffer is empty.
func (b *Buffer) Latest() (Point, bool) {
	if p, ok := b.recent.last(); ok {
		return p, true
	}
	return b.downsampled.last()
}

// TimeRange returns the oldest and newest retained timestamps.
// Returns (0, 0) if the buffer is empty.
func (b *Buffer) TimeRange() (oldestMs, newestMs int64) {
	if b.Len() == 0 {
		return 0, 0
	}

	first := false
	for _, t := range []*tier{&b.downsampled, &b.recent} {
		f, ok := t.first()
		if !ok {
			continue
		}
		l, _ := t.last()
		if !first {
			oldestMs, newestMs = f.TimestampMs, l.TimestampMs
			first = true
			continue
		}
		if f.TimestampMs < oldestMs {
			oldestMs = f.TimestampMs
		}
		if l.TimestampMs > newestMs {
			newestMs = l.TimestampMs
		}
	}
	return oldestMs, newestMs
}

// Stats holds basic aggregate statistics for a numeric series.
type Stats struct {
	Min float64
	Max float64
	Avg float64
}

// Stats computes min/max/avg over every retained point.
// Returns false for an empty buffer or a text series.
func (b *Buffer) Stats() (Stats, bool) {
	if b.kindSet && b.kind == KindText {
		return Stats{}, false
	}

	all := b.All()
	if len(all) == 0 {
		return Stats{}, false
	}

	s := Stats{Min: all[0].Value, Max: all[0].Value}
	var sum float64
	for _, p := range all {
		sum += p.Value
		if p.Value < s.Min {
			s.Min = p.Value
		}
		if p.Value > s.Max {
			s.Max = p.Value
		}
	}
	s.Avg = sum / float64(len(all))
	return s, true
}
