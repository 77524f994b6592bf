// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

const (
	nanosPerSecond = 1000000000
	secondsPerDay  = 86400
	nanosPerDay    = secondsPerDay * nanosPerSecond
)

// A TimeOfDay is a wall-clock time with nanosecond precision and no date
// or zone. TimeOfDay values are comparable with ==.
type TimeOfDay struct {
	hour, minute, second int
	nano                 int
}

var (
	// MinTime is the earliest time of day, 00:00.
	MinTime = TimeOfDay{}
	// MaxTime is the latest time of day, 23:59:59.999999999.
	MaxTime = TimeOfDay{23, 59, 59, nanosPerSecond - 1}

	Midnight = TimeOfDay{}
	Noon     = TimeOfDay{hour: 12}
)

// NewTime returns the time of day for the given fields, or an
// *InvalidTimeError naming the first field out of range.
func NewTime(hour, minute, second, nanosecond int) (TimeOfDay, error) {
	switch {
	case hour < 0 || hour > 23:
		return TimeOfDay{}, &InvalidTimeError{"hour", hour}
	case minute < 0 || minute > 59:
		return TimeOfDay{}, &InvalidTimeError{"minute", minute}
	case second < 0 || second > 59:
		return TimeOfDay{}, &InvalidTimeError{"second", second}
	case nanosecond < 0 || nanosecond >= nanosPerSecond:
		return TimeOfDay{}, &InvalidTimeError{"nanosecond", nanosecond}
	}
	return TimeOfDay{hour, minute, second, nanosecond}, nil
}

// MustTime is like NewTime but panics if a field is out of range.
func MustTime(hour, minute, second, nanosecond int) TimeOfDay {
	t, err := NewTime(hour, minute, second, nanosecond)
	if err != nil {
		panic(err)
	}
	return t
}

// TimeNow returns the current wall-clock time in the clock's zone.
func TimeNow(c Clock, zones ZoneDB) (TimeOfDay, error) {
	dt, err := DateTimeNow(c, zones)
	if err != nil {
		return TimeOfDay{}, err
	}
	return dt.Time(), nil
}

// TimeOfNanoOfDay returns the time n nanoseconds after midnight.
// n is reduced modulo one day.
func TimeOfNanoOfDay(n int64) TimeOfDay {
	n = floorMod(n, nanosPerDay)
	secs := n / nanosPerSecond
	return TimeOfDay{
		hour:   int(secs / 3600),
		minute: int(secs / 60 % 60),
		second: int(secs % 60),
		nano:   int(n % nanosPerSecond),
	}
}

// ParseTime parses an ISO-8601 local time such as "06:30",
// "06:30:00" or "06:30:58.000012345".
func ParseTime(text string) (TimeOfDay, error) {
	s := &scanner{text: text, layout: "HH:mm[:ss[.SSSSSSSSS]]"}
	t, err := s.timeOfDay()
	if err != nil {
		return TimeOfDay{}, err
	}
	if err := s.end(); err != nil {
		return TimeOfDay{}, err
	}
	return t, nil
}

func (t TimeOfDay) Hour() int       { return t.hour }
func (t TimeOfDay) Minute() int     { return t.minute }
func (t TimeOfDay) Second() int     { return t.second }
func (t TimeOfDay) Nanosecond() int { return t.nano }

// SecondOfDay returns the number of whole seconds since midnight.
func (t TimeOfDay) SecondOfDay() int {
	return t.hour*3600 + t.minute*60 + t.second
}

// NanoOfDay returns the number of nanoseconds since midnight.
func (t TimeOfDay) NanoOfDay() int64 {
	return int64(t.SecondOfDay())*nanosPerSecond + int64(t.nano)
}

// Add returns t+d, wrapping around midnight in either direction.
func (t TimeOfDay) Add(d Duration) TimeOfDay {
	if d.IsZero() {
		return t
	}
	n := floorMod(d.sec, secondsPerDay)*nanosPerSecond + int64(d.nsec)
	return TimeOfNanoOfDay(t.NanoOfDay() + n)
}

// Sub returns t-d, wrapping around midnight.
func (t TimeOfDay) Sub(d Duration) TimeOfDay { return t.Add(d.Neg()) }

func (t TimeOfDay) AddHours(n int64) TimeOfDay   { return t.Add(Hours(n)) }
func (t TimeOfDay) AddMinutes(n int64) TimeOfDay { return t.Add(Minutes(n)) }
func (t TimeOfDay) AddSeconds(n int64) TimeOfDay { return t.Add(Seconds(n)) }

// Truncate returns t with every field smaller than u set to zero.
// u must be a time unit no larger than Days.
func (t TimeOfDay) Truncate(u Unit) (TimeOfDay, error) {
	d, ok := u.duration()
	if !ok || u > InDays {
		return TimeOfDay{}, ErrUnsupportedUnit
	}
	step := d.sec*nanosPerSecond + int64(d.nsec)
	n := t.NanoOfDay()
	return TimeOfNanoOfDay(n - n%step), nil
}

// Compare returns -1, 0 or +1 as t is before, equal to or after u.
func (t TimeOfDay) Compare(u TimeOfDay) int {
	x, y := t.NanoOfDay(), u.NanoOfDay()
	switch {
	case x < y:
		return -1
	case x > y:
		return +1
	}
	return 0
}

func (t TimeOfDay) Before(u TimeOfDay) bool { return t.Compare(u) < 0 }
func (t TimeOfDay) After(u TimeOfDay) bool  { return t.Compare(u) > 0 }
func (t TimeOfDay) Equal(u TimeOfDay) bool  { return t == u }

// String returns the ISO-8601 form of t. Seconds are omitted when zero,
// and the fraction is written with 3, 6 or 9 digits as needed.
func (t TimeOfDay) String() string {
	return string(appendTime(make([]byte, 0, 18), t))
}
