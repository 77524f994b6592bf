// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import "time"

// A ZonedDateTime is a local date-time in a time zone together with the
// UTC offset resolved for it, such as
// 2015-05-03T11:15:30+02:00[Europe/Paris].
//
// ZonedDateTime holds ZoneRules, so use Equal rather than ==.
type ZonedDateTime struct {
	local  DateTime
	offset Offset
	zone   ZoneRules
}

// NewZoned attaches zone z to a local date-time and resolves its offset.
//
// Local times that do not occur, because they fall in a gap when clocks
// spring forward, are shifted forward by the length of the gap: 02:30 on
// a day when 02:00 becomes 03:00 resolves to 03:30 at the later offset.
// Local times that occur twice, in the overlap when clocks fall back,
// take the earlier of the two offsets (the one in effect before the
// transition). Use WithLaterOffsetAtOverlap to choose the other.
func NewZoned(local DateTime, z ZoneRules) ZonedDateTime {
	dt, off := resolveLocal(local, z, 0, false)
	return ZonedDateTime{dt, off, z}
}

// ZonedOf looks up zoneID in zones and resolves local in it.
func ZonedOf(local DateTime, zoneID string, zones ZoneDB) (ZonedDateTime, error) {
	z, err := zones.RulesFor(zoneID)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return NewZoned(local, z), nil
}

// ZonedOfInstant returns the date-time of an instant in zone z.
func ZonedOfInstant(i Instant, z ZoneRules) ZonedDateTime {
	off := z.OffsetAt(i.sec)
	return ZonedDateTime{DateTimeOfEpochSecond(i.sec, int64(i.nsec), off), off, z}
}

// ZonedNow reads the clock and returns the current date-time in the
// named zone, or in the clock's zone if zoneID is empty.
func ZonedNow(c Clock, zones ZoneDB, zoneID string) (ZonedDateTime, error) {
	if zoneID == "" {
		zoneID = c.ZoneID()
	}
	z, err := zones.RulesFor(zoneID)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return ZonedOfInstant(c.Now(), z), nil
}

// ParseZoned parses an ISO-8601 date-time with an offset and an optional
// bracketed zone id, such as "2015-05-03T10:15:30+01:00[Europe/Paris]".
//
// With a zone id, the text's date-time and offset determine an instant,
// which is then expressed in the zone: the offset of the result is the
// one the zone's rules give for that instant, not the offset in the
// text. Without a zone id the result has a fixed-offset zone. zones may
// be nil if the text has no zone id.
func ParseZoned(text string, zones ZoneDB) (ZonedDateTime, error) {
	s := &scanner{text: text, layout: "yyyy-MM-ddTHH:mm[:ss[.SSSSSSSSS]]+HH:MM[ZoneId]"}
	local, err := s.dateTime()
	if err != nil {
		return ZonedDateTime{}, err
	}
	off, err := s.offset()
	if err != nil {
		return ZonedDateTime{}, err
	}
	at := s.pos
	id, ok, err := s.bracketedZone()
	if err != nil {
		return ZonedDateTime{}, err
	}
	if err := s.end(); err != nil {
		return ZonedDateTime{}, err
	}
	if !ok {
		return local.AtOffset(off), nil
	}
	if zones == nil {
		return ZonedDateTime{}, s.wrap(at, &UnknownZoneError{ID: id})
	}
	z, err := zones.RulesFor(id)
	if err != nil {
		return ZonedDateTime{}, s.wrap(at, err)
	}
	return ZonedOfInstant(InstantOf(local.EpochSecond(off), int64(local.time.nano)), z), nil
}

func (z ZonedDateTime) Local() DateTime  { return z.local }
func (z ZonedDateTime) Date() Date       { return z.local.date }
func (z ZonedDateTime) Time() TimeOfDay  { return z.local.time }
func (z ZonedDateTime) Offset() Offset   { return z.offset }
func (z ZonedDateTime) Zone() ZoneRules  { return z.zone }
func (z ZonedDateTime) Weekday() Weekday { return z.local.Weekday() }

// ZoneID returns the identifier of z's zone.
func (z ZonedDateTime) ZoneID() string {
	if z.zone == nil {
		return ""
	}
	return z.zone.ID()
}

// Instant returns the point on the time line that z denotes.
func (z ZonedDateTime) Instant() Instant {
	return Instant{z.local.EpochSecond(z.offset), int32(z.local.time.nano)}
}

// EpochSecond returns the seconds since the epoch of z.
func (z ZonedDateTime) EpochSecond() int64 { return z.local.EpochSecond(z.offset) }

// Std returns z as a time.Time at z's offset, in a location named after
// z's zone.
func (z ZonedDateTime) Std() time.Time {
	return time.Unix(z.EpochSecond(), int64(z.local.time.nano)).In(time.FixedZone(z.ZoneID(), int(z.offset)))
}

// WithZoneSameInstant returns the same instant expressed in zone r.
func (z ZonedDateTime) WithZoneSameInstant(r ZoneRules) ZonedDateTime {
	return ZonedOfInstant(z.Instant(), r)
}

// WithZoneSameLocal resolves z's local date-time in zone r, keeping the
// current offset if it is valid there.
func (z ZonedDateTime) WithZoneSameLocal(r ZoneRules) ZonedDateTime {
	dt, off := resolveLocal(z.local, r, z.offset, true)
	return ZonedDateTime{dt, off, r}
}

// WithEarlierOffsetAtOverlap returns z with the earlier of the two
// offsets if z's local time is in an overlap, and z otherwise.
func (z ZonedDateTime) WithEarlierOffsetAtOverlap() ZonedDateTime {
	before, after, beforeOK, afterOK := localOffsets(z.local, z.zone)
	if beforeOK && afterOK && before != after {
		return ZonedDateTime{z.local, before, z.zone}
	}
	return z
}

// WithLaterOffsetAtOverlap returns z with the later of the two offsets
// if z's local time is in an overlap, and z otherwise.
func (z ZonedDateTime) WithLaterOffsetAtOverlap() ZonedDateTime {
	before, after, beforeOK, afterOK := localOffsets(z.local, z.zone)
	if beforeOK && afterOK && before != after {
		return ZonedDateTime{z.local, after, z.zone}
	}
	return z
}

// Check reports whether z's local date is within the supported year
// range.
func (z ZonedDateTime) Check() error { return z.local.Check() }

// Add returns the instant d after z, in z's zone. Across a transition
// the local time therefore changes by more or less than d.
func (z ZonedDateTime) Add(d Duration) ZonedDateTime {
	return ZonedOfInstant(z.Instant().Add(d), z.zone)
}

func (z ZonedDateTime) Sub(d Duration) ZonedDateTime { return z.Add(d.Neg()) }

// AddPeriod adjusts the local date by p and resolves the result in z's
// zone, keeping the current offset where it remains valid.
func (z ZonedDateTime) AddPeriod(p Period) ZonedDateTime {
	dt, off := resolveLocal(z.local.AddPeriod(p), z.zone, z.offset, true)
	return ZonedDateTime{dt, off, z.zone}
}

func (z ZonedDateTime) SubPeriod(p Period) ZonedDateTime { return z.AddPeriod(p.Negated()) }

// Compare orders by instant, then by local date-time, then by zone id.
func (z ZonedDateTime) Compare(u ZonedDateTime) int {
	if c := z.Instant().Compare(u.Instant()); c != 0 {
		return c
	}
	if c := z.local.Compare(u.local); c != 0 {
		return c
	}
	switch a, b := z.ZoneID(), u.ZoneID(); {
	case a < b:
		return -1
	case a > b:
		return +1
	}
	return 0
}

func (z ZonedDateTime) Before(u ZonedDateTime) bool { return z.Instant().Before(u.Instant()) }
func (z ZonedDateTime) After(u ZonedDateTime) bool  { return z.Instant().After(u.Instant()) }

// Equal reports whether z and u have the same local date-time, offset
// and zone id.
func (z ZonedDateTime) Equal(u ZonedDateTime) bool {
	return z.local == u.local && z.offset == u.offset && z.ZoneID() == u.ZoneID()
}

// IsSameInstant reports whether z and u denote the same instant,
// regardless of zone.
func (z ZonedDateTime) IsSameInstant(u ZonedDateTime) bool {
	return z.Instant() == u.Instant()
}

// String returns the ISO-8601 form with the zone id in brackets, such as
// "2015-05-03T11:15:30+02:00[Europe/Paris]". For a fixed-offset zone the
// bracket is omitted.
func (z ZonedDateTime) String() string {
	b := appendDate(make([]byte, 0, 48), z.local.date)
	b = append(b, 'T')
	b = appendTime(b, z.local.time)
	b = appendOffset(b, z.offset)
	if _, fixed := z.zone.(fixedZone); !fixed && z.zone != nil {
		b = append(b, '[')
		b = append(b, z.zone.ID()...)
		b = append(b, ']')
	}
	return string(b)
}
