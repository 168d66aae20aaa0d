package inter

import (
	"time"
)

// Timestamp is a unix timestamp in seconds, as observed by the execution
// environment when a call is processed. All interval arithmetic in the
// rental engine is carried out on this type.
type Timestamp uint64

// Duration is a span of rental time in seconds.
type Duration uint64

// FromTime converts a time.Time to a Timestamp, truncating sub-second
// precision. Times before the unix epoch map to 0.
func FromTime(t time.Time) Timestamp {
	u := t.Unix()
	if u < 0 {
		return 0
	}
	return Timestamp(u)
}

// Time converts the Timestamp back to a time.Time in UTC.
func (t Timestamp) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

// Add returns the timestamp shifted forward by d.
func (t Timestamp) Add(d Duration) Timestamp {
	return t + Timestamp(d)
}

// Sub returns the duration between t and earlier. The caller must ensure
// earlier <= t; the engine only subtracts interval begin dates from their
// own end dates, which satisfies this by construction.
func (t Timestamp) Sub(earlier Timestamp) Duration {
	return Duration(t - earlier)
}
