// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import "time"

// A Clock is the source of "now" readings. Functions that read the
// current date or time take a Clock explicitly so that callers can
// substitute a fixed one.
type Clock interface {
	// Now returns the current instant.
	Now() Instant
	// ZoneID returns the identifier of the clock's default zone,
	// such as "Europe/Paris".
	ZoneID() string
}

// A ZoneDB looks up the rules of a time zone by identifier.
// RulesFor fails with an *UnknownZoneError for an unknown id.
type ZoneDB interface {
	RulesFor(id string) (ZoneRules, error)
}

// ZoneRules report the UTC offset of a zone at any instant.
//
// Mapping a local date-time to an offset is not a property of the rules
// alone, since a local time may fall in a gap or an overlap; see
// NewZoned for the policy applied on top of OffsetAt.
type ZoneRules interface {
	ID() string
	OffsetAt(epochSecond int64) Offset
}

// An Offset is a fixed displacement from UTC, in seconds east.
type Offset int32

// MaxOffset bounds the magnitude of an Offset.
const MaxOffset Offset = 18 * 3600

// OffsetOf returns the offset of the given hours, minutes and seconds,
// which must all have the same sign.
func OffsetOf(hours, minutes, seconds int) (Offset, error) {
	if minutes < -59 || minutes > 59 || seconds < -59 || seconds > 59 ||
		(hours > 0 && (minutes < 0 || seconds < 0)) ||
		(hours < 0 && (minutes > 0 || seconds > 0)) ||
		(minutes > 0 && seconds < 0) || (minutes < 0 && seconds > 0) {
		return 0, &InvalidTimeError{"offset", hours*3600 + minutes*60 + seconds}
	}
	return OffsetOfSeconds(hours*3600 + minutes*60 + seconds)
}

// OffsetOfSeconds returns the offset of n seconds, within ±18h.
func OffsetOfSeconds(n int) (Offset, error) {
	if n < -int(MaxOffset) || n > int(MaxOffset) {
		return 0, &InvalidTimeError{"offset", n}
	}
	return Offset(n), nil
}

// ParseOffset parses "Z" or an offset of the form ±HH:MM[:SS].
func ParseOffset(text string) (Offset, error) {
	s := &scanner{text: text, layout: "+HH:MM[:SS]"}
	off, err := s.offset()
	if err != nil {
		return 0, err
	}
	if err := s.end(); err != nil {
		return 0, err
	}
	return off, nil
}

func (o Offset) Seconds() int { return int(o) }

func (o Offset) Duration() Duration { return Seconds(int64(o)) }

// String returns "Z" for UTC and ±HH:MM[:SS] otherwise.
func (o Offset) String() string { return string(appendOffset(nil, o)) }

// FixedZone returns rules whose offset never changes. The zone id is the
// offset text, such as "+02:00" or "Z".
func FixedZone(o Offset) ZoneRules { return fixedZone(o) }

type fixedZone Offset

func (z fixedZone) ID() string            { return Offset(z).String() }
func (z fixedZone) OffsetAt(int64) Offset { return Offset(z) }

// An Instant is a point on the UTC time line, in seconds and
// nanoseconds since 1970-01-01T00:00Z. Instants are comparable with ==.
type Instant struct {
	sec  int64
	nsec int32
}

// InstantOf returns the instant sec seconds plus nanoAdjust nanoseconds
// after the epoch.
func InstantOf(sec, nanoAdjust int64) Instant {
	d := DurationOf(sec, nanoAdjust)
	return Instant{d.sec, d.nsec}
}

// InstantOfStd converts a time.Time.
func InstantOfStd(t time.Time) Instant {
	return Instant{t.Unix(), int32(t.Nanosecond())}
}

func (i Instant) EpochSecond() int64 { return i.sec }
func (i Instant) Nano() int          { return int(i.nsec) }

// Std returns i as a time.Time in UTC.
func (i Instant) Std() time.Time { return time.Unix(i.sec, int64(i.nsec)).UTC() }

func (i Instant) Add(d Duration) Instant {
	return InstantOf(i.sec+d.sec, int64(i.nsec)+int64(d.nsec))
}

func (i Instant) Sub(d Duration) Instant { return i.Add(d.Neg()) }

// Until returns the duration from i to j.
func (i Instant) Until(j Instant) Duration {
	return DurationOf(j.sec-i.sec, int64(j.nsec)-int64(i.nsec))
}

func (i Instant) Compare(j Instant) int {
	return Duration{i.sec, i.nsec}.Compare(Duration{j.sec, j.nsec})
}

func (i Instant) Before(j Instant) bool { return i.Compare(j) < 0 }
func (i Instant) After(j Instant) bool  { return i.Compare(j) > 0 }
func (i Instant) Equal(j Instant) bool  { return i == j }

// String returns the ISO-8601 UTC form of i, always including seconds,
// such as "2022-01-01T00:00:00Z".
func (i Instant) String() string {
	dt := DateTimeOfEpochSecond(i.sec, int64(i.nsec), 0)
	b := appendDate(make([]byte, 0, 32), dt.date)
	b = append(b, 'T')
	b = appendTime(b, dt.time)
	if dt.time.second == 0 && dt.time.nano == 0 {
		b = append(b, ":00"...)
	}
	return string(append(b, 'Z'))
}

// localOffsets probes z for the offsets in effect a day before and a day
// after the local time, and reports which of them are valid for it.
func localOffsets(local DateTime, z ZoneRules) (before, after Offset, beforeOK, afterOK bool) {
	ls := local.localSecond()
	before = z.OffsetAt(ls - secondsPerDay)
	after = z.OffsetAt(ls + secondsPerDay)
	beforeOK = z.OffsetAt(ls-int64(before)) == before
	afterOK = z.OffsetAt(ls-int64(after)) == after
	return
}

// resolveLocal maps a local date-time to a valid local date-time and
// offset in z.
//
// In an overlap the preferred offset is used if it is one of the two
// candidates, otherwise the earlier (pre-transition) offset. In a gap the
// local time is interpreted with the pre-transition offset, which moves
// it forward by the length of the gap.
func resolveLocal(local DateTime, z ZoneRules, preferred Offset, hasPreferred bool) (DateTime, Offset) {
	before, after, beforeOK, afterOK := localOffsets(local, z)
	switch {
	case beforeOK && afterOK && before != after:
		if hasPreferred && preferred == after {
			return local, after
		}
		return local, before
	case beforeOK:
		return local, before
	case afterOK:
		return local, after
	}
	inst := local.EpochSecond(before)
	off := z.OffsetAt(inst)
	return DateTimeOfEpochSecond(inst, int64(local.time.nano), off), off
}
