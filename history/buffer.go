package history

import (
	"log/slog"
	"math"
	"time"

	"github.com/xtxerr/pelorus/history/lttb"
	"github.com/xtxerr/pelorus/internal/logging"
)

const (
	// DefaultMaxPoints is the total point budget used when Options.MaxPoints
	// is not set.
	DefaultMaxPoints = 512

	// DefaultRecentWindow is how long points stay at full resolution when
	// Options.RecentWindow is not set.
	DefaultRecentWindow = 60 * time.Second

	// Share of the point budget given to each tier.
	recentShare      = 0.67
	downsampledShare = 0.33

	// downsampleBatchTarget caps the LTTB output per eviction batch, keeping
	// the per-insert footprint predictable no matter how large the batch is.
	downsampleBatchTarget = 10
)

// Options configures a Buffer.
type Options struct {
	// MaxPoints is the total point budget across both tiers.
	// Defaults to DefaultMaxPoints.
	MaxPoints int

	// RecentWindow is how long points are kept at full resolution, measured
	// against wall-clock time at insert. Defaults to DefaultRecentWindow.
	RecentWindow time.Duration
}

// Buffer is an adaptive multi-tier history buffer for one metric series.
//
// Recent points are stored at full resolution; points that age out of the
// recent window are reduced with LTTB (numeric series) or last-value-wins
// (text series) and moved to the bounded downsampled tier. Both tiers drop
// their oldest points once over capacity.
//
// A Buffer is owned by a single ingestion path and is not safe for
// concurrent use.
type Buffer struct {
	recentWindow   time.Duration
	recentCap      int
	downsampledCap int

	// Value kind, fixed by the first accepted insert.
	kind    ValueKind
	kindSet bool

	recent      tier
	downsampled tier

	now func() time.Time
	log *slog.Logger
}

// New creates a Buffer with the given options.
func New(opts Options) *Buffer {
	if opts.MaxPoints <= 0 {
		opts.MaxPoints = DefaultMaxPoints
	}
	if opts.RecentWindow <= 0 {
		opts.RecentWindow = DefaultRecentWindow
	}

	return &Buffer{
		recentWindow:   opts.RecentWindow,
		recentCap:      int(float64(opts.MaxPoints) * recentShare),
		downsampledCap: int(float64(opts.MaxPoints) * downsampledShare),
		now:            time.Now,
		log:            logging.Component("history"),
	}
}

// Add ingests a single reading.
//
// Invalid inserts are dropped without error: a non-positive timestamp, a
// non-finite numeric value, or a kind that does not match the series. The
// ingestion path must never be disturbed by a bad sample, so Add cannot
// fail or panic.
func (b *Buffer) Add(p Point) {
	if !b.accept(p) {
		return
	}
	if !b.kindSet {
		b.kind = p.Kind
		b.kindSet = true
	}

	b.recent.push(p)
	b.transition(b.now().UnixMilli())
}

// AddNumeric ingests a numeric reading.
func (b *Buffer) AddNumeric(value float64, timestampMs int64) {
	b.Add(Numeric(value, timestampMs))
}

// AddText ingests a text reading.
func (b *Buffer) AddText(value string, timestampMs int64) {
	b.Add(Text(value, timestampMs))
}

// accept reports whether a point passes facade validation.
func (b *Buffer) accept(p Point) bool {
	if p.TimestampMs <= 0 {
		b.log.Debug("dropped reading with invalid timestamp", "timestamp_ms", p.TimestampMs)
		return false
	}
	if p.Kind == KindNumeric && (math.IsNaN(p.Value) || math.IsInf(p.Value, 0)) {
		b.log.Debug("dropped reading with non-finite value", "timestamp_ms", p.TimestampMs)
		return false
	}
	if b.kindSet && p.Kind != b.kind {
		b.log.Debug("dropped reading with mismatched kind",
			"series_kind", b.kind.String(), "reading_kind", p.Kind.String())
		return false
	}
	return true
}

// transition moves points that have aged out of the recent window into the
// downsampled tier and enforces both tier capacities.
//
// The window is measured against wall-clock time, not the newest sample, so
// a gap in incoming data causes one bulk eviction on the next insert. That
// eviction is the only latency-variable path in Add: the LTTB input is the
// whole evicted batch, even though its output is capped.
func (b *Buffer) transition(nowMs int64) {
	cutoff := nowMs - b.recentWindow.Milliseconds()

	evicted := b.recent.evictOlderThan(cutoff)
	if len(evicted) > 0 {
		if b.kind == KindNumeric {
			threshold := len(evicted)
			if threshold > downsampleBatchTarget {
				threshold = downsampleBatchTarget
			}
			for _, q := range lttb.Downsample(toLTTB(evicted), threshold) {
				b.downsampled.push(Numeric(q.Value, q.TsMs))
			}
		} else {
			// LTTB has no meaning for text series: last value wins.
			b.downsampled.push(evicted[len(evicted)-1])
		}
	}

	b.recent.truncateToCapacity(b.recentCap)
	b.downsampled.truncateToCapacity(b.downsampledCap)
}

// toLTTB converts an evicted batch for the downsampler.
func toLTTB(points []Point) []lttb.Point {
	out := make([]lttb.Point, len(points))
	for i, p := range points {
		out[i] = lttb.Point{TsMs: p.TimestampMs, Value: p.Value}
	}
	return out
}

// Clear removes all points. The series kind is re-inferred from the next
// insert, as if the buffer were freshly constructed.
func (b *Buffer) Clear() {
	b.recent.clear()
	b.downsampled.clear()
	b.kindSet = false
}

// Len returns the total number of points across both tiers.
func (b *Buffer) Len() int {
	return b.recent.len() + b.downsampled.len()
}

// Kind returns the series kind and whether it has been fixed yet.
func (b *Buffer) Kind() (ValueKind, bool) {
	return b.kind, b.kindSet
}

// RecentCapacity returns the point capacity of the full-resolution tier.
func (b *Buffer) RecentCapacity() int {
	return b.recentCap
}

// DownsampledCapacity returns the point capacity of the downsampled tier.
func (b *Buffer) DownsampledCapacity() int {
	return b.downsampledCap
}
