// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package calendar provides immutable date and time values on the
proleptic Gregorian calendar.

The value types are:

	Date           a calendar date, 2022-02-01
	TimeOfDay      a wall-clock time, 06:30:58.000012345
	DateTime       a date with a time of day, 2022-02-02T06:30
	ZonedDateTime  a date-time in a zone, 2015-05-03T11:15:30+02:00[Europe/Paris]
	Period         a date-based amount, P1Y2M3D
	Duration       an exact amount of elapsed time, PT8H6M12.345S
	Instant        a point on the UTC time line, 2022-01-01T00:00:00Z

Every operation returns a new value; none modifies its receiver, so
values may be shared freely between goroutines.

Reading the current date or time requires a Clock and a ZoneDB, passed
explicitly (see package clock and package tzdb). Tests substitute a
fixed clock.

Month and year arithmetic clamps the day of month to the last valid day:

	calendar.MustDate(2024, calendar.January, 31).AddMonths(1) // 2024-02-29

Zoned values resolve local times that fall in a daylight-saving gap or
overlap by a fixed policy, documented at NewZoned.

Constructors and parsers fail with *InvalidDateError, *InvalidTimeError,
*ParseError or *UnknownZoneError, and never return partial results.
*/
package calendar
