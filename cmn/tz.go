/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package cmn

import "time"

// TZ wraps an optional IANA timezone used to interpret naive (zoneless)
// local datetime strings and to render epoch nanoseconds back to local
// wall-clock time. A TZ with no configured location fails both
// directions -- grounded on the original's ChopperTz, which carries an
// Option<Tz> and errors rather than silently assuming UTC.
type TZ struct {
	loc *time.Location
}

// NewTZ wraps loc.
func NewTZ(loc *time.Location) TZ { return TZ{loc: loc} }

// NoTZ is a TZ that fails every conversion -- for runs that never declared
// -z/--timezone and never need one (epoch-only timestamp columns, or
// output already expressed as epoch nanos).
func NoTZ() TZ { return TZ{} }

// LocalToNanos interprets local as wall-clock time in the configured zone
// and returns its equivalent epoch nanoseconds.
func (tz TZ) LocalToNanos(local time.Time) (uint64, error) {
	if tz.loc == nil {
		return 0, NewError(ErrTimeZoneMissingForParsing, "no timezone configured to interpret %q as local time", local.Format(time.RFC3339))
	}
	zoned := time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), tz.loc)
	return uint64(zoned.UnixNano()), nil
}

// NanosToLocal renders epoch nanoseconds as a local wall-clock time.Time in
// the configured zone.
func (tz TZ) NanosToLocal(nanos uint64) (time.Time, error) {
	if tz.loc == nil {
		return time.Time{}, NewError(ErrTimeZoneMissingForOutput, "no timezone configured to render %d nanoseconds as local time", nanos)
	}
	return time.Unix(0, int64(nanos)).In(tz.loc), nil
}
