package history

import (
	"github.com/DataDog/sketches-go/ddsketch"
)

// percentileAccuracy is the DDSketch relative accuracy (1% error).
const percentileAccuracy = 0.01

// Summary is an extended aggregate over every retained point of a numeric
// series, used by widgets that render min/max/avg bands and percentile
// overlays.
type Summary struct {
	Count int64
	Sum   float64
	Min   float64
	Max   float64
	Avg   float64

	// Timestamps of the oldest and newest retained points.
	FirstTs int64
	LastTs  int64

	// Percentiles (nil if the sketch could not be built).
	P50 *float64
	P90 *float64
	P95 *float64
	P99 *float64
}

// HasPercentiles returns true if percentile data is available.
func (s *Summary) HasPercentiles() bool {
	return s.P50 != nil
}

// SetPercentiles sets all percentile values.
func (s *Summary) SetPercentiles(p50, p90, p95, p99 float64) {
	s.P50 = &p50
	s.P90 = &p90
	s.P95 = &p95
	s.P99 = &p99
}

// Summary computes the extended aggregate over every retained point.
// Returns false for an empty buffer or a text series.
func (b *Buffer) Summary() (Summary, bool) {
	if b.kindSet && b.kind == KindText {
		return Summary{}, false
	}

	all := b.All()
	if len(all) == 0 {
		return Summary{}, false
	}

	sketch, err := ddsketch.NewDefaultDDSketch(percentileAccuracy)
	if err != nil {
		sketch = nil
	}

	s := Summary{
		Min:     all[0].Value,
		Max:     all[0].Value,
		FirstTs: all[0].TimestampMs,
		LastTs:  all[len(all)-1].TimestampMs,
	}

	for _, p := range all {
		s.Count++
		s.Sum += p.Value
		if p.Value < s.Min {
			s.Min = p.Value
		}
		if p.Value > s.Max {
			s.Max = p.Value
		}
		if sketch != nil {
			sketch.Add(p.Value)
		}
	}
	s.Avg = s.Sum / float64(s.Count)

	if sketch != nil {
		p50, _ := sketch.GetValueAtQuantile(0.50)
		p90, _ := sketch.GetValueAtQuantile(0.90)
		p95, _ := sketch.GetValueAtQuantile(0.95)
		p99, _ := sketch.GetValueAtQuantile(0.99)
		s.SetPercentiles(p50, p90, p95, p99)
	}

	return s, true
}
