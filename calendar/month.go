// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import "fmt"

// A Month specifies a month of the year (January = 1, ...).
type Month int

const (
	January Month = 1 + iota
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

var monthNames = [...]string{
	"JANUARY", "FEBRUARY", "MARCH", "APRIL", "MAY", "JUNE",
	"JULY", "AUGUST", "SEPTEMBER", "OCTOBER", "NOVEMBER", "DECEMBER",
}

// String returns the upper-case English name of the month ("FEBRUARY").
func (m Month) String() string {
	if m.Valid() {
		return monthNames[m-1]
	}
	return fmt.Sprintf("%%!Month(%d)", int(m))
}

// Valid reports whether m is one of January..December.
func (m Month) Valid() bool { return m >= January && m <= December }

// Plus returns the month n months after m, wrapping around the year.
func (m Month) Plus(n int) Month {
	return Month(floorMod(int64(m)-1+int64(n), 12) + 1)
}

// Length returns the number of days in the month.
func (m Month) Length(leap bool) int {
	switch m {
	case February:
		if leap {
			return 29
		}
		return 28
	case April, June, September, November:
		return 30
	}
	return 31
}

// A Weekday specifies a day of the week, following ISO-8601:
// Monday = 1 through Sunday = 7.
type Weekday int

const (
	Monday Weekday = 1 + iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{
	"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY",
}

// String returns the upper-case English name of the day ("MONDAY").
func (d Weekday) String() string {
	if d.Valid() {
		return weekdayNames[d-1]
	}
	return fmt.Sprintf("%%!Weekday(%d)", int(d))
}

// Valid reports whether d is one of Monday..Sunday.
func (d Weekday) Valid() bool { return d >= Monday && d <= Sunday }

// Plus returns the day n days after d.
func (d Weekday) Plus(n int) Weekday {
	return Weekday(floorMod(int64(d)-1+int64(n), 7) + 1)
}

// IsLeap reports whether year is a leap year in the proleptic Gregorian
// calendar.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysIn returns the number of days in the given month of year.
func DaysIn(year int, m Month) int { return m.Length(IsLeap(year)) }

func floorDiv(x, y int64) int64 {
	q := x / y
	if (x%y != 0) && ((x < 0) != (y < 0)) {
		q--
	}
	return q
}

func floorMod(x, y int64) int64 {
	return x - floorDiv(x, y)*y
}
