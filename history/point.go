package history

import "time"

// ValueKind indicates the kind of value a series carries.
type ValueKind int

const (
	// KindNumeric is a scalar measurement (e.g., voltage, depth, speed).
	KindNumeric ValueKind = iota
	// KindText is a string reading (e.g., firmware version, GPS fix status).
	KindText
)

// String returns a human-readable representation of the ValueKind.
func (k ValueKind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Point represents a single timestamped sensor reading.
// A series is homogeneous: every point in one buffer carries the same kind.
type Point struct {
	// TimestampMs is the Unix timestamp in milliseconds.
	TimestampMs int64

	// Kind indicates which value field is populated.
	Kind ValueKind

	// Value holds the measurement for KindNumeric points.
	Value float64

	// TextValue holds the reading for KindText points.
	TextValue string
}

// Numeric creates a numeric point.
func Numeric(value float64, timestampMs int64) Point {
	return Point{TimestampMs: timestampMs, Kind: KindNumeric, Value: value}
}

// Text creates a text point.
func Text(value string, timestampMs int64) Point {
	return Point{TimestampMs: timestampMs, Kind: KindText, TextValue: value}
}

// Time returns the timestamp as a time.Time.
func (p Point) Time() time.Time {
	return time.UnixMilli(p.TimestampMs)
}
