// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import "time"

// A DateTime is a date with a time of day and no zone, such as
// 2022-02-02T06:30. DateTime values are comparable with ==.
type DateTime struct {
	date Date
	time TimeOfDay
}

// NewDateTime combines a date and a time of day.
func NewDateTime(d Date, t TimeOfDay) DateTime { return DateTime{d, t} }

// DateTimeOf returns the date-time for the given fields. It fails with
// an *InvalidDateError or *InvalidTimeError.
func DateTimeOf(year int, month Month, day, hour, minute, second, nanosecond int) (DateTime, error) {
	d, err := NewDate(year, month, day)
	if err != nil {
		return DateTime{}, err
	}
	t, err := NewTime(hour, minute, second, nanosecond)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{d, t}, nil
}

// MustDateTime is like DateTimeOf but panics on invalid fields.
func MustDateTime(year int, month Month, day, hour, minute, second, nanosecond int) DateTime {
	dt, err := DateTimeOf(year, month, day, hour, minute, second, nanosecond)
	if err != nil {
		panic(err)
	}
	return dt
}

// DateTimeNow reads the clock and returns the current date-time in the
// clock's zone.
func DateTimeNow(c Clock, zones ZoneDB) (DateTime, error) {
	rules, err := zones.RulesFor(c.ZoneID())
	if err != nil {
		return DateTime{}, err
	}
	return DateTimeOfInstant(c.Now(), rules), nil
}

// DateTimeOfEpochSecond returns the local date-time at sec seconds and
// nsec nanoseconds after the epoch, viewed at the given offset.
func DateTimeOfEpochSecond(sec, nsec int64, off Offset) DateTime {
	sec += floorDiv(nsec, nanosPerSecond) + int64(off)
	nsec = floorMod(nsec, nanosPerSecond)
	days := floorDiv(sec, secondsPerDay)
	sod := floorMod(sec, secondsPerDay)
	return DateTime{DateOfEpochDay(days), TimeOfNanoOfDay(sod*nanosPerSecond + nsec)}
}

// DateTimeOfInstant returns the local date-time of an instant in a zone.
func DateTimeOfInstant(i Instant, z ZoneRules) DateTime {
	return DateTimeOfEpochSecond(i.sec, int64(i.nsec), z.OffsetAt(i.sec))
}

// FromStd returns the wall-clock date and time of t in t's location.
func FromStd(t time.Time) DateTime {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	return DateTime{Date{y, Month(m), d}, TimeOfDay{hh, mm, ss, t.Nanosecond()}}
}

// ParseDateTime parses an ISO-8601 local date-time such as
// "2022-02-02T06:30:00".
func ParseDateTime(text string) (DateTime, error) {
	s := &scanner{text: text, layout: "yyyy-MM-ddTHH:mm[:ss[.SSSSSSSSS]]"}
	dt, err := s.dateTime()
	if err != nil {
		return DateTime{}, err
	}
	if err := s.end(); err != nil {
		return DateTime{}, err
	}
	return dt, nil
}

func (dt DateTime) Date() Date                    { return dt.date }
func (dt DateTime) Time() TimeOfDay               { return dt.time }
func (dt DateTime) Year() int                     { return dt.date.year }
func (dt DateTime) Month() Month                  { return dt.date.month }
func (dt DateTime) Day() int                      { return dt.date.day }
func (dt DateTime) Weekday() Weekday              { return dt.date.Weekday() }
func (dt DateTime) Hour() int                     { return dt.time.hour }
func (dt DateTime) Minute() int                   { return dt.time.minute }
func (dt DateTime) Second() int                   { return dt.time.second }
func (dt DateTime) Nanosecond() int               { return dt.time.nano }
func (dt DateTime) WithDate(d Date) DateTime      { return DateTime{d, dt.time} }
func (dt DateTime) WithTime(t TimeOfDay) DateTime { return DateTime{dt.date, t} }

// localSecond returns the seconds since 1970-01-01T00:00 on the local
// time line, ignoring any offset.
func (dt DateTime) localSecond() int64 {
	return dt.date.EpochDay()*secondsPerDay + int64(dt.time.SecondOfDay())
}

// EpochSecond returns the seconds since the epoch of dt viewed at off.
func (dt DateTime) EpochSecond(off Offset) int64 {
	return dt.localSecond() - int64(off)
}

// Check reports whether dt's date is within the supported year range.
func (dt DateTime) Check() error { return dt.date.Check() }

// Add returns dt+d, carrying into the date as needed.
func (dt DateTime) Add(d Duration) DateTime {
	if d.IsZero() {
		return dt
	}
	return DateTimeOfEpochSecond(dt.localSecond()+d.sec, int64(dt.time.nano)+int64(d.nsec), 0)
}

// Sub returns dt-d.
func (dt DateTime) Sub(d Duration) DateTime { return dt.Add(d.Neg()) }

// AddPeriod adjusts the date part by p; the time of day is unchanged.
func (dt DateTime) AddPeriod(p Period) DateTime {
	return DateTime{dt.date.AddPeriod(p), dt.time}
}

// SubPeriod adjusts the date part by the negation of p.
func (dt DateTime) SubPeriod(p Period) DateTime { return dt.AddPeriod(p.Negated()) }

func (dt DateTime) AddDays(n int64) DateTime   { return DateTime{dt.date.AddDays(n), dt.time} }
func (dt DateTime) AddWeeks(n int64) DateTime  { return DateTime{dt.date.AddWeeks(n), dt.time} }
func (dt DateTime) AddMonths(n int64) DateTime { return DateTime{dt.date.AddMonths(n), dt.time} }
func (dt DateTime) AddYears(n int64) DateTime  { return DateTime{dt.date.AddYears(n), dt.time} }
func (dt DateTime) AddHours(n int64) DateTime  { return dt.Add(Hours(n)) }

// AtStartOfDay returns dt with the time of day cleared to midnight.
func (dt DateTime) AtStartOfDay() DateTime { return DateTime{dt.date, Midnight} }

// AtOffset returns the zoned date-time of dt at a fixed offset. Its zone
// id is the offset text, such as "+02:00".
func (dt DateTime) AtOffset(off Offset) ZonedDateTime {
	return ZonedDateTime{local: dt, offset: off, zone: FixedZone(off)}
}

// AtZone resolves dt in z; see NewZoned.
func (dt DateTime) AtZone(z ZoneRules) ZonedDateTime { return NewZoned(dt, z) }

// Compare returns -1, 0 or +1 as dt is before, equal to or after u.
func (dt DateTime) Compare(u DateTime) int {
	if c := dt.date.Compare(u.date); c != 0 {
		return c
	}
	return dt.time.Compare(u.time)
}

func (dt DateTime) Before(u DateTime) bool { return dt.Compare(u) < 0 }
func (dt DateTime) After(u DateTime) bool  { return dt.Compare(u) > 0 }
func (dt DateTime) Equal(u DateTime) bool  { return dt == u }

// String returns the ISO-8601 form of dt, such as "2022-02-02T06:30".
func (dt DateTime) String() string {
	b := appendDate(make([]byte, 0, 32), dt.date)
	b = append(b, 'T')
	return string(appendTime(b, dt.time))
}
