// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"errors"
	"fmt"
)

// Temporal is implemented by Date, TimeOfDay, DateTime and
// ZonedDateTime.
type Temporal interface {
	fmt.Stringer
	temporal()
}

func (Date) temporal()          {}
func (TimeOfDay) temporal()     {}
func (DateTime) temporal()      {}
func (ZonedDateTime) temporal() {}

// A Unit is a unit of time used to count the whole amount between two
// values, as in InDays.Between(a, b).
type Unit int

const (
	InNanoseconds Unit = iota
	InMicroseconds
	InMilliseconds
	InSeconds
	InMinutes
	InHours
	InHalfDays
	InDays
	InWeeks
	InMonths
	InYears
	InDecades
	InCenturies
	InMillennia
)

var unitNames = [...]string{
	"Nanos", "Micros", "Millis", "Seconds", "Minutes", "Hours", "HalfDays",
	"Days", "Weeks", "Months", "Years", "Decades", "Centuries", "Millennia",
}

func (u Unit) String() string {
	if u >= 0 && int(u) < len(unitNames) {
		return unitNames[u]
	}
	return fmt.Sprintf("%%!Unit(%d)", int(u))
}

// ParseUnit returns the unit with the given name, as returned by String.
func ParseUnit(name string) (Unit, bool) {
	for i, n := range unitNames {
		if n == name {
			return Unit(i), true
		}
	}
	return 0, false
}

// Valid reports whether u is one of the declared units.
func (u Unit) Valid() bool { return u >= InNanoseconds && u <= InMillennia }

// IsDateBased reports whether u is Days or longer.
func (u Unit) IsDateBased() bool { return u.Valid() && u >= InDays }

// IsTimeBased reports whether u is shorter than a day.
func (u Unit) IsTimeBased() bool { return u.Valid() && u < InDays }

// duration returns the exact length of u, for units up to a week.
func (u Unit) duration() (Duration, bool) {
	switch u {
	case InNanoseconds:
		return Nanoseconds(1), true
	case InMicroseconds:
		return Nanoseconds(1000), true
	case InMilliseconds:
		return Milliseconds(1), true
	case InSeconds:
		return Seconds(1), true
	case InMinutes:
		return Minutes(1), true
	case InHours:
		return Hours(1), true
	case InHalfDays:
		return Hours(12), true
	case InDays:
		return Days(1), true
	case InWeeks:
		return Days(7), true
	}
	return Duration{}, false
}

// monthsPer returns the number of months in a date-based unit of a
// month or longer.
func (u Unit) monthsPer() int64 {
	switch u {
	case InMonths:
		return 1
	case InYears:
		return 12
	case InDecades:
		return 120
	case InCenturies:
		return 1200
	case InMillennia:
		return 12000
	}
	return 0
}

// Between returns the number of whole units from a to b, truncated
// toward zero. a and b must have the same type. Date-based units count
// whole days and whole months the way PeriodBetween does, so
// InMonths.Between(a, b) == PeriodBetween(a, b).TotalMonths() and
// InDays.Between agrees with a period that has only days.
//
// Dates accept only date-based units and times of day only time-based
// units; otherwise the error wraps ErrUnsupportedUnit.
func (u Unit) Between(a, b Temporal) (int64, error) {
	if !u.Valid() {
		return 0, fmt.Errorf("%s between: %w", u, ErrUnsupportedUnit)
	}
	switch x := a.(type) {
	case Date:
		y, ok := b.(Date)
		if !ok {
			return 0, mismatch(a, b)
		}
		if !u.IsDateBased() {
			return 0, fmt.Errorf("%s between dates: %w", u, ErrUnsupportedUnit)
		}
		return u.datesBetween(x, y), nil

	case TimeOfDay:
		y, ok := b.(TimeOfDay)
		if !ok {
			return 0, mismatch(a, b)
		}
		if !u.IsTimeBased() {
			return 0, fmt.Errorf("%s between times of day: %w", u, ErrUnsupportedUnit)
		}
		return u.divide(Nanoseconds(y.NanoOfDay() - x.NanoOfDay()))

	case DateTime:
		y, ok := b.(DateTime)
		if !ok {
			return 0, mismatch(a, b)
		}
		if u.IsDateBased() {
			return u.datesBetween(x.date, completeEnd(x, y)), nil
		}
		return u.divide(DurationOf(y.localSecond()-x.localSecond(), int64(y.time.nano)-int64(x.time.nano)))

	case ZonedDateTime:
		y, ok := b.(ZonedDateTime)
		if !ok {
			return 0, mismatch(a, b)
		}
		if u.IsDateBased() {
			y = y.WithZoneSameInstant(x.zone)
			return u.datesBetween(x.local.date, completeEnd(x.local, y.local)), nil
		}
		return u.divide(x.Instant().Until(y.Instant()))
	}
	return 0, mismatch(a, b)
}

func (u Unit) datesBetween(a, b Date) int64 {
	switch u {
	case InDays:
		return b.EpochDay() - a.EpochDay()
	case InWeeks:
		return (b.EpochDay() - a.EpochDay()) / 7
	}
	return PeriodBetween(a, b).TotalMonths() / u.monthsPer()
}

// divide returns the whole number of units in d, truncated toward zero.
func (u Unit) divide(d Duration) (int64, error) {
	unit, _ := u.duration()
	if unit.nsec == 0 {
		return d.truncSeconds() / unit.sec, nil
	}
	n, ok := d.TotalNanoseconds()
	if !ok {
		return 0, fmt.Errorf("%s between: %s overflows", u, d)
	}
	return n / int64(unit.nsec), nil
}

// DurationBetween returns the exact elapsed time from a to b, such that
// a.Add(DurationBetween(a, b)) equals b. a and b must both be times of
// day, date-times or zoned date-times; for zoned values the difference is
// between instants.
func DurationBetween(a, b Temporal) (Duration, error) {
	switch x := a.(type) {
	case TimeOfDay:
		if y, ok := b.(TimeOfDay); ok {
			return Nanoseconds(y.NanoOfDay() - x.NanoOfDay()), nil
		}
	case DateTime:
		if y, ok := b.(DateTime); ok {
			return DurationOf(y.localSecond()-x.localSecond(), int64(y.time.nano)-int64(x.time.nano)), nil
		}
	case ZonedDateTime:
		if y, ok := b.(ZonedDateTime); ok {
			return x.Instant().Until(y.Instant()), nil
		}
	case Date:
		if _, ok := b.(Date); ok {
			return Duration{}, fmt.Errorf("duration between dates: %w", ErrUnsupportedUnit)
		}
	}
	return Duration{}, mismatch(a, b)
}

var errMismatch = errors.New("values of different types")

func mismatch(a, b Temporal) error {
	return fmt.Errorf("between %T and %T: %w", a, b, errMismatch)
}
