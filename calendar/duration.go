// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"math"
	"strings"
	"time"
)

// A Duration is an exact amount of elapsed time: whole seconds plus a
// nanosecond adjustment in [0, 1e9). Unlike time.Duration it is not
// limited to about 290 years. Durations are comparable with ==.
type Duration struct {
	sec  int64
	nsec int32
}

// DurationOf returns a duration of sec seconds plus nanoAdjust
// nanoseconds. nanoAdjust may be any value, including negative.
func DurationOf(sec, nanoAdjust int64) Duration {
	return Duration{
		sec:  sec + floorDiv(nanoAdjust, nanosPerSecond),
		nsec: int32(floorMod(nanoAdjust, nanosPerSecond)),
	}
}

func Nanoseconds(n int64) Duration  { return DurationOf(0, n) }
func Milliseconds(n int64) Duration { return DurationOf(floorDiv(n, 1000), floorMod(n, 1000)*1000000) }
func Seconds(n int64) Duration      { return Duration{sec: n} }
func Minutes(n int64) Duration      { return Duration{sec: n * 60} }
func Hours(n int64) Duration        { return Duration{sec: n * 3600} }

// Days returns a duration of n standard 24-hour days.
func Days(n int64) Duration { return Duration{sec: n * secondsPerDay} }

// FromStdDuration converts a time.Duration.
func FromStdDuration(d time.Duration) Duration { return Nanoseconds(int64(d)) }

// Seconds returns the whole seconds of d, rounded toward negative
// infinity. A duration of -0.5s has Seconds -1 and Nano 500000000.
func (d Duration) Seconds() int64 { return d.sec }

// Nano returns the nanosecond adjustment of d, in [0, 1e9).
func (d Duration) Nano() int { return int(d.nsec) }

func (d Duration) IsZero() bool     { return d.sec == 0 && d.nsec == 0 }
func (d Duration) IsNegative() bool { return d.sec < 0 }

// TotalNanoseconds returns d in nanoseconds, and false on overflow.
func (d Duration) TotalNanoseconds() (int64, bool) {
	if d.sec > math.MaxInt64/nanosPerSecond-1 || d.sec < math.MinInt64/nanosPerSecond+1 {
		return 0, false
	}
	return d.sec*nanosPerSecond + int64(d.nsec), true
}

// Std converts d to a time.Duration, reporting false if it does not fit.
func (d Duration) Std() (time.Duration, bool) {
	n, ok := d.TotalNanoseconds()
	return time.Duration(n), ok
}

// ToHours returns the number of whole hours in d, truncated toward zero.
func (d Duration) ToHours() int64   { return d.truncSeconds() / 3600 }
func (d Duration) ToMinutes() int64 { return d.truncSeconds() / 60 }

// ToDays returns the number of whole 24-hour days in d, truncated toward zero.
func (d Duration) ToDays() int64 { return d.truncSeconds() / secondsPerDay }

// truncSeconds returns the whole seconds of d rounded toward zero.
func (d Duration) truncSeconds() int64 {
	if d.sec < 0 && d.nsec > 0 {
		return d.sec + 1
	}
	return d.sec
}

func (d Duration) Add(e Duration) Duration {
	return DurationOf(d.sec+e.sec, int64(d.nsec)+int64(e.nsec))
}

func (d Duration) Sub(e Duration) Duration { return d.Add(e.Neg()) }

func (d Duration) Neg() Duration { return DurationOf(-d.sec, -int64(d.nsec)) }

func (d Duration) Abs() Duration {
	if d.IsNegative() {
		return d.Neg()
	}
	return d
}

// Mul returns d multiplied by n.
func (d Duration) Mul(n int64) Duration {
	nanos := int64(d.nsec) * n
	return DurationOf(d.sec*n, nanos)
}

// Compare returns -1, 0 or +1 as d is shorter than, equal to or longer
// than e.
func (d Duration) Compare(e Duration) int {
	switch {
	case d.sec < e.sec:
		return -1
	case d.sec > e.sec:
		return +1
	case d.nsec < e.nsec:
		return -1
	case d.nsec > e.nsec:
		return +1
	}
	return 0
}

// String returns the ISO-8601 form of d based on hours, minutes and
// seconds, such as "PT8H6M12.345S". The zero duration is "PT0S".
func (d Duration) String() string {
	if d.IsZero() {
		return "PT0S"
	}
	secs := d.truncSeconds()
	nanos := int64(d.nsec)
	if d.sec < 0 && nanos > 0 {
		nanos = nanosPerSecond - nanos
	}
	hours, minutes, seconds := secs/3600, secs/60%60, secs%60

	var b strings.Builder
	b.WriteString("PT")
	if hours != 0 {
		b.Write(appendSigned(nil, hours))
		b.WriteByte('H')
	}
	if minutes != 0 {
		b.Write(appendSigned(nil, minutes))
		b.WriteByte('M')
	}
	if seconds == 0 && nanos == 0 && b.Len() > 2 {
		return b.String()
	}
	if seconds == 0 && d.sec < 0 {
		b.WriteByte('-')
		b.WriteByte('0')
	} else {
		b.Write(appendSigned(nil, seconds))
	}
	if nanos > 0 {
		frac := appendInt(nil, int(nanos), 9)
		for frac[len(frac)-1] == '0' {
			frac = frac[:len(frac)-1]
		}
		b.WriteByte('.')
		b.Write(frac)
	}
	b.WriteByte('S')
	return b.String()
}

func appendSigned(b []byte, v int64) []byte {
	if v < 0 {
		b = append(b, '-')
		v = -v
	}
	return appendInt(b, int(v), 1)
}

// ParseDuration parses an ISO-8601 duration of the form PnDTnHnMn.nS,
// with optional signs on the whole value and on each part, such as
// "PT1H30M", "-PT5S" or "P2DT-3H". Go duration strings such as "1h30m"
// are also accepted.
func ParseDuration(text string) (Duration, error) {
	s := &scanner{text: text, layout: "PnDTnHnMn.nS"}
	neg := s.accept('-')
	if !neg {
		s.accept('+')
	}
	if !s.accept('P') && !s.accept('p') {
		if d, err := time.ParseDuration(text); err == nil {
			return FromStdDuration(d), nil
		}
		return Duration{}, s.expect('P')
	}
	var total Duration
	inTime, parts := false, false
	for s.pos < len(s.text) {
		if !inTime && (s.accept('T') || s.accept('t')) {
			inTime = true
			continue
		}
		partNeg := s.accept('-')
		if !partNeg {
			s.accept('+')
		}
		v, _, err := s.digits(1, 18)
		if err != nil {
			return Duration{}, err
		}
		var frac int
		hasFrac := false
		if s.accept('.') || s.accept(',') {
			if frac, err = s.fraction(); err != nil {
				return Duration{}, err
			}
			hasFrac = true
		}
		var part Duration
		switch unit := s.peek(); {
		case !inTime && (unit == 'D' || unit == 'd') && !hasFrac:
			part = Days(int64(v))
		case inTime && (unit == 'H' || unit == 'h') && !hasFrac:
			part = Hours(int64(v))
		case inTime && (unit == 'M' || unit == 'm') && !hasFrac:
			part = Minutes(int64(v))
		case inTime && (unit == 'S' || unit == 's'):
			part = DurationOf(int64(v), int64(frac))
		default:
			return Duration{}, s.errorf("unexpected duration unit")
		}
		s.pos++
		if partNeg {
			part = part.Neg()
		}
		total = total.Add(part)
		parts = true
	}
	if !parts {
		return Duration{}, s.errorf("duration has no parts")
	}
	if neg {
		total = total.Neg()
	}
	return total, nil
}
