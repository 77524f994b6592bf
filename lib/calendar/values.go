// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"fmt"
	"sort"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"go.calclock.dev/calendar"
)

// Date is a Starlark representation of a calendar date.
type Date calendar.Date

var (
	_ starlark.HasAttrs   = Date{}
	_ starlark.HasBinary  = Date{}
	_ starlark.Comparable = Date{}
	_ starlark.Unpacker   = (*Date)(nil)
)

func (d Date) String() string        { return calendar.Date(d).String() }
func (d Date) Type() string          { return "calendar.date" }
func (d Date) Freeze()               {}
func (d Date) Truth() starlark.Bool  { return starlark.True }
func (d Date) Hash() (uint32, error) { return hash64(calendar.Date(d).EpochDay()), nil }

// Unpack accepts a date or its ISO-8601 text.
func (d *Date) Unpack(v starlark.Value) error {
	switch v := v.(type) {
	case Date:
		*d = v
		return nil
	case starlark.String:
		x, err := calendar.ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = Date(x)
		return nil
	}
	return fmt.Errorf("got %s, want calendar.date", v.Type())
}

func (d Date) Attr(name string) (starlark.Value, error) {
	x := calendar.Date(d)
	switch name {
	case "year":
		return starlark.MakeInt(x.Year()), nil
	case "month":
		return starlark.MakeInt(int(x.Month())), nil
	case "day":
		return starlark.MakeInt(x.Day()), nil
	case "weekday":
		return starlark.String(x.Weekday().String()), nil
	case "day_of_year":
		return starlark.MakeInt(x.DayOfYear()), nil
	case "is_leap_year":
		return starlark.Bool(x.IsLeapYear()), nil
	case "length_of_month":
		return starlark.MakeInt(x.LengthOfMonth()), nil
	case "length_of_year":
		return starlark.MakeInt(x.LengthOfYear()), nil
	case "epoch_day":
		return starlark.MakeInt64(x.EpochDay()), nil
	}
	return builtinAttr(d, name, dateMethods)
}

func (d Date) AttrNames() []string {
	return builtinAttrNames(dateMethods,
		"year", "month", "day", "weekday", "day_of_year",
		"is_leap_year", "length_of_month", "length_of_year", "epoch_day")
}

func (d Date) CompareSameType(op syntax.Token, yV starlark.Value, depth int) (bool, error) {
	return threeway(op, calendar.Date(d).Compare(calendar.Date(yV.(Date)))), nil
}

func (d Date) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	x := calendar.Date(d)
	switch y := y.(type) {
	case Period:
		switch {
		case op == syntax.PLUS:
			return checkedDate(x.AddPeriod(calendar.Period(y)))
		case op == syntax.MINUS && side == starlark.Left:
			return checkedDate(x.SubPeriod(calendar.Period(y)))
		}
	case Date:
		// d - y is the period from y to d.
		if op == syntax.MINUS && side == starlark.Left {
			return Period(calendar.PeriodBetween(calendar.Date(y), x)), nil
		}
	}
	return nil, nil
}

var dateMethods = map[string]builtinMethod{
	"add_days":           dateAdd(calendar.Date.AddDays),
	"add_weeks":          dateAdd(calendar.Date.AddWeeks),
	"add_months":         dateAdd(calendar.Date.AddMonths),
	"add_years":          dateAdd(calendar.Date.AddYears),
	"with_day":           dateWithDay,
	"with_month":         dateWithMonth,
	"with_year":          dateWithYear,
	"first_day_of_month": dateAdjust(calendar.Date.FirstDayOfMonth),
	"last_day_of_month":  dateAdjust(calendar.Date.LastDayOfMonth),
	"first_day_of_year":  dateAdjust(calendar.Date.FirstDayOfYear),
	"next":               dateNext,
	"at":                 dateAt,
	"at_start_of_day":    dateAtStartOfDay,
}

func dateAdd(f func(calendar.Date, int64) calendar.Date) builtinMethod {
	return func(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var n int
		if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &n); err != nil {
			return nil, err
		}
		return checkedDate(f(calendar.Date(recV.(Date)), int64(n)))
	}
}

func dateAdjust(f func(calendar.Date) calendar.Date) builtinMethod {
	return func(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
			return nil, err
		}
		return Date(f(calendar.Date(recV.(Date)))), nil
	}
}

func dateWith(fnname string, args starlark.Tuple, kwargs []starlark.Tuple, with func(int) (calendar.Date, error)) (starlark.Value, error) {
	var n int
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &n); err != nil {
		return nil, err
	}
	d, err := with(n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fnname, err)
	}
	return Date(d), nil
}

func dateWithDay(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return dateWith(fnname, args, kwargs, calendar.Date(recV.(Date)).WithDayOfMonth)
}

func dateWithMonth(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	d := calendar.Date(recV.(Date))
	return dateWith(fnname, args, kwargs, func(m int) (calendar.Date, error) { return d.WithMonth(calendar.Month(m)) })
}

func dateWithYear(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return dateWith(fnname, args, kwargs, calendar.Date(recV.(Date)).WithYear)
}

func dateNext(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &name); err != nil {
		return nil, err
	}
	for w := calendar.Monday; w <= calendar.Sunday; w++ {
		if strings.EqualFold(name, w.String()) {
			return checkedDate(calendar.Date(recV.(Date)).Next(w))
		}
	}
	return nil, fmt.Errorf("%s: unknown weekday %q", fnname, name)
}

func dateAt(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var t Time
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &t); err != nil {
		return nil, err
	}
	return DateTime(calendar.Date(recV.(Date)).At(calendar.TimeOfDay(t))), nil
}

func dateAtStartOfDay(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
		return nil, err
	}
	return DateTime(calendar.Date(recV.(Date)).AtStartOfDay()), nil
}

// Time is a Starlark representation of a time of day.
type Time calendar.TimeOfDay

var (
	_ starlark.HasAttrs   = Time{}
	_ starlark.HasBinary  = Time{}
	_ starlark.Comparable = Time{}
	_ starlark.Unpacker   = (*Time)(nil)
)

func (t Time) String() string        { return calendar.TimeOfDay(t).String() }
func (t Time) Type() string          { return "calendar.time" }
func (t Time) Freeze()               {}
func (t Time) Truth() starlark.Bool  { return starlark.True }
func (t Time) Hash() (uint32, error) { return hash64(calendar.TimeOfDay(t).NanoOfDay()), nil }

// Unpack accepts a time of day or its ISO-8601 text.
func (t *Time) Unpack(v starlark.Value) error {
	switch v := v.(type) {
	case Time:
		*t = v
		return nil
	case starlark.String:
		x, err := calendar.ParseTime(string(v))
		if err != nil {
			return err
		}
		*t = Time(x)
		return nil
	}
	return fmt.Errorf("got %s, want calendar.time", v.Type())
}

func (t Time) Attr(name string) (starlark.Value, error) {
	x := calendar.TimeOfDay(t)
	switch name {
	case "hour":
		return starlark.MakeInt(x.Hour()), nil
	case "minute":
		return starlark.MakeInt(x.Minute()), nil
	case "second":
		return starlark.MakeInt(x.Second()), nil
	case "nanosecond":
		return starlark.MakeInt(x.Nanosecond()), nil
	case "second_of_day":
		return starlark.MakeInt(x.SecondOfDay()), nil
	case "nano_of_day":
		return starlark.MakeInt64(x.NanoOfDay()), nil
	}
	return builtinAttr(t, name, timeMethods)
}

func (t Time) AttrNames() []string {
	return builtinAttrNames(timeMethods, "hour", "minute", "second", "nanosecond", "second_of_day", "nano_of_day")
}

func (t Time) CompareSameType(op syntax.Token, yV starlark.Value, depth int) (bool, error) {
	return threeway(op, calendar.TimeOfDay(t).Compare(calendar.TimeOfDay(yV.(Time)))), nil
}

func (t Time) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	x := calendar.TimeOfDay(t)
	switch y := y.(type) {
	case Duration:
		switch {
		case op == syntax.PLUS:
			return Time(x.Add(calendar.Duration(y))), nil
		case op == syntax.MINUS && side == starlark.Left:
			return Time(x.Sub(calendar.Duration(y))), nil
		}
	case Time:
		if op == syntax.MINUS && side == starlark.Left {
			d, _ := calendar.DurationBetween(calendar.TimeOfDay(y), x)
			return Duration(d), nil
		}
	}
	return nil, nil
}

var timeMethods = map[string]builtinMethod{
	"add_hours":   timeAdd(calendar.TimeOfDay.AddHours),
	"add_minutes": timeAdd(calendar.TimeOfDay.AddMinutes),
	"add_seconds": timeAdd(calendar.TimeOfDay.AddSeconds),
	"truncate":    timeTruncate,
	"on":          timeOn,
}

func timeAdd(f func(calendar.TimeOfDay, int64) calendar.TimeOfDay) builtinMethod {
	return func(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var n int
		if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &n); err != nil {
			return nil, err
		}
		return Time(f(calendar.TimeOfDay(recV.(Time)), int64(n))), nil
	}
}

func timeTruncate(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var unit string
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &unit); err != nil {
		return nil, err
	}
	u, ok := calendar.ParseUnit(unit)
	if !ok {
		return nil, fmt.Errorf("%s: unknown unit %q", fnname, unit)
	}
	x, err := calendar.TimeOfDay(recV.(Time)).Truncate(u)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fnname, err)
	}
	return Time(x), nil
}

func timeOn(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var d Date
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &d); err != nil {
		return nil, err
	}
	return DateTime(calendar.Date(d).At(calendar.TimeOfDay(recV.(Time)))), nil
}

// DateTime is a Starlark representation of a local date-time.
type DateTime calendar.DateTime

var (
	_ starlark.HasAttrs   = DateTime{}
	_ starlark.HasBinary  = DateTime{}
	_ starlark.Comparable = DateTime{}
	_ starlark.Unpacker   = (*DateTime)(nil)
)

func (dt DateTime) String() string       { return calendar.DateTime(dt).String() }
func (dt DateTime) Type() string         { return "calendar.datetime" }
func (dt DateTime) Freeze()              {}
func (dt DateTime) Truth() starlark.Bool { return starlark.True }

func (dt DateTime) Hash() (uint32, error) {
	x := calendar.DateTime(dt)
	return hash64(x.Date().EpochDay()) ^ hash64(x.Time().NanoOfDay()), nil
}

// Unpack accepts a date-time or its ISO-8601 text.
func (dt *DateTime) Unpack(v starlark.Value) error {
	switch v := v.(type) {
	case DateTime:
		*dt = v
		return nil
	case starlark.String:
		x, err := calendar.ParseDateTime(string(v))
		if err != nil {
			return err
		}
		*dt = DateTime(x)
		return nil
	}
	return fmt.Errorf("got %s, want calendar.datetime", v.Type())
}

func (dt DateTime) Attr(name string) (starlark.Value, error) {
	x := calendar.DateTime(dt)
	switch name {
	case "date":
		return Date(x.Date()), nil
	case "time":
		return Time(x.Time()), nil
	}
	if v, ok := localAttr(x, name); ok {
		return v, nil
	}
	return builtinAttr(dt, name, dateTimeMethods)
}

func (dt DateTime) AttrNames() []string {
	return builtinAttrNames(dateTimeMethods, append(localAttrNames[:len(localAttrNames):len(localAttrNames)], "date", "time")...)
}

// localAttr returns the date and time fields shared by datetime and
// zoned values.
func localAttr(x calendar.DateTime, name string) (starlark.Value, bool) {
	switch name {
	case "year":
		return starlark.MakeInt(x.Year()), true
	case "month":
		return starlark.MakeInt(int(x.Month())), true
	case "day":
		return starlark.MakeInt(x.Day()), true
	case "weekday":
		return starlark.String(x.Weekday().String()), true
	case "hour":
		return starlark.MakeInt(x.Hour()), true
	case "minute":
		return starlark.MakeInt(x.Minute()), true
	case "second":
		return starlark.MakeInt(x.Second()), true
	case "nanosecond":
		return starlark.MakeInt(x.Nanosecond()), true
	}
	return nil, false
}

var localAttrNames = []string{"year", "month", "day", "weekday", "hour", "minute", "second", "nanosecond"}

func (dt DateTime) CompareSameType(op syntax.Token, yV starlark.Value, depth int) (bool, error) {
	return threeway(op, calendar.DateTime(dt).Compare(calendar.DateTime(yV.(DateTime)))), nil
}

func (dt DateTime) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	x := calendar.DateTime(dt)
	switch y := y.(type) {
	case Duration:
		switch {
		case op == syntax.PLUS:
			return checkedDateTime(x.Add(calendar.Duration(y)))
		case op == syntax.MINUS && side == starlark.Left:
			return checkedDateTime(x.Sub(calendar.Duration(y)))
		}
	case Period:
		switch {
		case op == syntax.PLUS:
			return checkedDateTime(x.AddPeriod(calendar.Period(y)))
		case op == syntax.MINUS && side == starlark.Left:
			return checkedDateTime(x.SubPeriod(calendar.Period(y)))
		}
	case DateTime:
		if op == syntax.MINUS && side == starlark.Left {
			d, _ := calendar.DurationBetween(calendar.DateTime(y), x)
			return Duration(d), nil
		}
	}
	return nil, nil
}

var dateTimeMethods = map[string]builtinMethod{
	"add_days":        dateTimeAdd(calendar.DateTime.AddDays),
	"add_weeks":       dateTimeAdd(calendar.DateTime.AddWeeks),
	"add_months":      dateTimeAdd(calendar.DateTime.AddMonths),
	"add_years":       dateTimeAdd(calendar.DateTime.AddYears),
	"add_hours":       dateTimeAdd(calendar.DateTime.AddHours),
	"at_start_of_day": dateTimeAtStartOfDay,
	"at_zone":         dateTimeAtZone,
	"at_offset":       dateTimeAtOffset,
	"with_date":       dateTimeWithDate,
	"with_time":       dateTimeWithTime,
}

func dateTimeAdd(f func(calendar.DateTime, int64) calendar.DateTime) builtinMethod {
	return func(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var n int
		if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &n); err != nil {
			return nil, err
		}
		return checkedDateTime(f(calendar.DateTime(recV.(DateTime)), int64(n)))
	}
}

func dateTimeAtStartOfDay(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
		return nil, err
	}
	return DateTime(calendar.DateTime(recV.(DateTime)).AtStartOfDay()), nil
}

func dateTimeAtZone(thread *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var zone string
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &zone); err != nil {
		return nil, err
	}
	r, err := zoneArg(thread, zone)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fnname, err)
	}
	return Zoned(calendar.DateTime(recV.(DateTime)).AtZone(r)), nil
}

func dateTimeAtOffset(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var offset string
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &offset); err != nil {
		return nil, err
	}
	off, err := calendar.ParseOffset(offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fnname, err)
	}
	return Zoned(calendar.DateTime(recV.(DateTime)).AtOffset(off)), nil
}

func dateTimeWithDate(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var d Date
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &d); err != nil {
		return nil, err
	}
	return DateTime(calendar.DateTime(recV.(DateTime)).WithDate(calendar.Date(d))), nil
}

func dateTimeWithTime(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var t Time
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &t); err != nil {
		return nil, err
	}
	return DateTime(calendar.DateTime(recV.(DateTime)).WithTime(calendar.TimeOfDay(t))), nil
}

// Zoned is a Starlark representation of a date-time in a time zone.
type Zoned calendar.ZonedDateTime

var (
	_ starlark.HasAttrs   = Zoned{}
	_ starlark.HasBinary  = Zoned{}
	_ starlark.Comparable = Zoned{}
	_ starlark.Unpacker   = (*Zoned)(nil)
)

func (z Zoned) String() string       { return calendar.ZonedDateTime(z).String() }
func (z Zoned) Type() string         { return "calendar.zoned" }
func (z Zoned) Freeze()              {}
func (z Zoned) Truth() starlark.Bool { return starlark.True }

func (z Zoned) Hash() (uint32, error) {
	i := calendar.ZonedDateTime(z).Instant()
	return hash64(i.EpochSecond()) ^ uint32(i.Nano()), nil
}

// Unpack accepts a zoned date-time, or ISO-8601 text with an offset and
// no zone id.
func (z *Zoned) Unpack(v starlark.Value) error {
	switch v := v.(type) {
	case Zoned:
		*z = v
		return nil
	case starlark.String:
		x, err := calendar.ParseZoned(string(v), nil)
		if err != nil {
			return err
		}
		*z = Zoned(x)
		return nil
	}
	return fmt.Errorf("got %s, want calendar.zoned", v.Type())
}

func (z Zoned) Attr(name string) (starlark.Value, error) {
	x := calendar.ZonedDateTime(z)
	switch name {
	case "date":
		return Date(x.Date()), nil
	case "time":
		return Time(x.Time()), nil
	case "local":
		return DateTime(x.Local()), nil
	case "offset":
		return starlark.String(x.Offset().String()), nil
	case "offset_seconds":
		return starlark.MakeInt(x.Offset().Seconds()), nil
	case "zone":
		return starlark.String(x.ZoneID()), nil
	case "epoch_second":
		return starlark.MakeInt64(x.EpochSecond()), nil
	case "instant":
		return starlark.String(x.Instant().String()), nil
	}
	if v, ok := localAttr(x.Local(), name); ok {
		return v, nil
	}
	return builtinAttr(z, name, zonedMethods)
}

func (z Zoned) AttrNames() []string {
	return builtinAttrNames(zonedMethods, append(localAttrNames[:len(localAttrNames):len(localAttrNames)],
		"date", "time", "local", "offset", "offset_seconds", "zone", "epoch_second", "instant")...)
}

// CompareSameType orders zoned values by instant. Values at the same
// instant in different zones are ordered by local time, then zone id,
// so == holds only for identical values.
func (z Zoned) CompareSameType(op syntax.Token, yV starlark.Value, depth int) (bool, error) {
	return threeway(op, calendar.ZonedDateTime(z).Compare(calendar.ZonedDateTime(yV.(Zoned)))), nil
}

func (z Zoned) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	x := calendar.ZonedDateTime(z)
	switch y := y.(type) {
	case Duration:
		switch {
		case op == syntax.PLUS:
			return checkedZoned(x.Add(calendar.Duration(y)))
		case op == syntax.MINUS && side == starlark.Left:
			return checkedZoned(x.Sub(calendar.Duration(y)))
		}
	case Period:
		switch {
		case op == syntax.PLUS:
			return checkedZoned(x.AddPeriod(calendar.Period(y)))
		case op == syntax.MINUS && side == starlark.Left:
			return checkedZoned(x.SubPeriod(calendar.Period(y)))
		}
	case Zoned:
		if op == syntax.MINUS && side == starlark.Left {
			d, _ := calendar.DurationBetween(calendar.ZonedDateTime(y), x)
			return Duration(d), nil
		}
	}
	return nil, nil
}

var zonedMethods = map[string]builtinMethod{
	"in_zone":                        zonedInZone,
	"with_zone_same_local":           zonedWithZoneSameLocal,
	"with_earlier_offset_at_overlap": zonedOverlap(calendar.ZonedDateTime.WithEarlierOffsetAtOverlap),
	"with_later_offset_at_overlap":   zonedOverlap(calendar.ZonedDateTime.WithLaterOffsetAtOverlap),
	"is_same_instant":                zonedIsSameInstant,
}

func zonedInZone(thread *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var zone string
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &zone); err != nil {
		return nil, err
	}
	r, err := zoneArg(thread, zone)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fnname, err)
	}
	return Zoned(calendar.ZonedDateTime(recV.(Zoned)).WithZoneSameInstant(r)), nil
}

func zonedWithZoneSameLocal(thread *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var zone string
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &zone); err != nil {
		return nil, err
	}
	r, err := zoneArg(thread, zone)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fnname, err)
	}
	return Zoned(calendar.ZonedDateTime(recV.(Zoned)).WithZoneSameLocal(r)), nil
}

func zonedOverlap(f func(calendar.ZonedDateTime) calendar.ZonedDateTime) builtinMethod {
	return func(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
			return nil, err
		}
		return Zoned(f(calendar.ZonedDateTime(recV.(Zoned)))), nil
	}
}

func zonedIsSameInstant(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var other Zoned
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &other); err != nil {
		return nil, err
	}
	return starlark.Bool(calendar.ZonedDateTime(recV.(Zoned)).IsSameInstant(calendar.ZonedDateTime(other))), nil
}

type builtinMethod func(thread *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

func builtinAttr(recv starlark.Value, name string, methods map[string]builtinMethod) (starlark.Value, error) {
	method := methods[name]
	if method == nil {
		return nil, nil // no such method
	}

	// Allocate a closure over 'method'.
	impl := func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		return method(thread, b.Name(), b.Receiver(), args, kwargs)
	}
	return starlark.NewBuiltin(name, impl).BindReceiver(recv), nil
}

func builtinAttrNames(methods map[string]builtinMethod, fields ...string) []string {
	names := make([]string, 0, len(methods)+len(fields))
	names = append(names, fields...)
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// threeway interprets a three-way comparison value cmp (-1, 0, +1)
// as a boolean comparison (e.g. x < y).
func threeway(op syntax.Token, cmp int) bool {
	switch op {
	case syntax.EQL:
		return cmp == 0
	case syntax.NEQ:
		return cmp != 0
	case syntax.LE:
		return cmp <= 0
	case syntax.LT:
		return cmp < 0
	case syntax.GE:
		return cmp >= 0
	case syntax.GT:
		return cmp > 0
	}
	panic(op)
}

// Arithmetic results are checked against the supported year range
// before they reach a script.

func checkedDate(x calendar.Date) (starlark.Value, error) {
	if err := x.Check(); err != nil {
		return nil, err
	}
	return Date(x), nil
}

func checkedDateTime(x calendar.DateTime) (starlark.Value, error) {
	if err := x.Check(); err != nil {
		return nil, err
	}
	return DateTime(x), nil
}

func checkedZoned(x calendar.ZonedDateTime) (starlark.Value, error) {
	if err := x.Check(); err != nil {
		return nil, err
	}
	return Zoned(x), nil
}

func hash64(v int64) uint32 { return uint32(v) ^ uint32(v>>32) }
