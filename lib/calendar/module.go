// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"fmt"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"golang.org/x/text/language"

	"go.calclock.dev/calendar"
	"go.calclock.dev/clock"
	"go.calclock.dev/format"
	"go.calclock.dev/tzdb"
)

// ModuleName defines the expected name for this Module when used in the
// starlark runtime.
const ModuleName = "calendar"

// Module calendar is a Starlark module of calendar and clock functions.
var Module = &starlarkstruct.Module{
	Name: ModuleName,
	Members: starlark.StringDict{
		"date":            starlark.NewBuiltin("date", newDate),
		"time":            starlark.NewBuiltin("time", newTime),
		"datetime":        starlark.NewBuiltin("datetime", newDateTime),
		"zoned":           starlark.NewBuiltin("zoned", newZoned),
		"offset_datetime": starlark.NewBuiltin("offset_datetime", newOffsetDateTime),
		"period":          starlark.NewBuiltin("period", newPeriod),
		"duration":        starlark.NewBuiltin("duration", newDuration),
		"parse_date":      starlark.NewBuiltin("parse_date", parseDate),
		"parse_time":      starlark.NewBuiltin("parse_time", parseTime),
		"parse_datetime":  starlark.NewBuiltin("parse_datetime", parseDateTime),
		"parse_zoned":     starlark.NewBuiltin("parse_zoned", parseZoned),
		"today":           starlark.NewBuiltin("today", today),
		"now":             starlark.NewBuiltin("now", now),
		"zoned_now":       starlark.NewBuiltin("zoned_now", zonedNow),
		"between":         starlark.NewBuiltin("between", between),
		"period_between":  starlark.NewBuiltin("period_between", periodBetween),
		"units_between":   starlark.NewBuiltin("units_between", unitsBetween),
		"format":          starlark.NewBuiltin("format", formatValue),
		"parse":           starlark.NewBuiltin("parse", parse),
		"relative":        starlark.NewBuiltin("relative", relative),
		"zones":           starlark.NewBuiltin("zones", listZones),

		"MIN_TIME": Time(calendar.MinTime),
		"MAX_TIME": Time(calendar.MaxTime),
		"MIDNIGHT": Time(calendar.Midnight),
		"NOON":     Time(calendar.Noon),
	},
}

// LoadModule loads the calendar module.
// It is concurrency-safe and idempotent.
func LoadModule() (starlark.StringDict, error) {
	return starlark.StringDict{
		ModuleName: Module,
	}, nil
}

// Process-wide defaults, used by threads that have not been given their
// own with SetClock, SetZones or SetCatalog. Applications that need
// deterministic scripts replace them.
var (
	DefaultClock   calendar.Clock  = clock.System{}
	DefaultZones   calendar.ZoneDB = tzdb.New()
	DefaultCatalog                 = tzdb.SystemCatalog(tzdb.DefaultRoot)
	DefaultLocale                  = language.AmericanEnglish
)

const (
	clockKey   = "go.calclock.dev/lib/calendar.clock"
	zonesKey   = "go.calclock.dev/lib/calendar.zones"
	catalogKey = "go.calclock.dev/lib/calendar.catalog"
	localeKey  = "go.calclock.dev/lib/calendar.locale"
)

// SetClock sets the clock read by today, now and zoned_now in thread.
func SetClock(thread *starlark.Thread, c calendar.Clock) { thread.SetLocal(clockKey, c) }

// SetZones sets the zone database used in thread.
func SetZones(thread *starlark.Thread, zones calendar.ZoneDB) { thread.SetLocal(zonesKey, zones) }

// SetCatalog sets the catalog listed by zones() in thread.
func SetCatalog(thread *starlark.Thread, c *tzdb.Catalog) { thread.SetLocal(catalogKey, c) }

// SetLocale sets the default locale of format and parse in thread.
func SetLocale(thread *starlark.Thread, tag language.Tag) { thread.SetLocal(localeKey, tag) }

func clockOf(thread *starlark.Thread) calendar.Clock {
	if c, ok := thread.Local(clockKey).(calendar.Clock); ok {
		return c
	}
	return DefaultClock
}

func zonesOf(thread *starlark.Thread) calendar.ZoneDB {
	if z, ok := thread.Local(zonesKey).(calendar.ZoneDB); ok {
		return z
	}
	return DefaultZones
}

func catalogOf(thread *starlark.Thread) *tzdb.Catalog {
	if c, ok := thread.Local(catalogKey).(*tzdb.Catalog); ok {
		return c
	}
	return DefaultCatalog
}

func localeOf(thread *starlark.Thread, name string) (language.Tag, error) {
	if name != "" {
		return language.Parse(name)
	}
	if tag, ok := thread.Local(localeKey).(language.Tag); ok {
		return tag, nil
	}
	return DefaultLocale, nil
}

func newDate(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var year, month, day int
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "year", &year, "month", &month, "day", &day); err != nil {
		return nil, err
	}
	d, err := calendar.NewDate(year, calendar.Month(month), day)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return Date(d), nil
}

func newTime(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var hour, minute, second, nanosecond int
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "hour", &hour, "minute?", &minute, "second?", &second, "nanosecond?", &nanosecond); err != nil {
		return nil, err
	}
	t, err := calendar.NewTime(hour, minute, second, nanosecond)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return Time(t), nil
}

func newDateTime(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var year, month, day, hour, minute, second, nanosecond int
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"year", &year, "month", &month, "day", &day,
		"hour?", &hour, "minute?", &minute, "second?", &second, "nanosecond?", &nanosecond); err != nil {
		return nil, err
	}
	dt, err := calendar.DateTimeOf(year, calendar.Month(month), day, hour, minute, second, nanosecond)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return DateTime(dt), nil
}

func newZoned(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		local DateTime
		zone  string
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "datetime", &local, "zone", &zone); err != nil {
		return nil, err
	}
	z, err := calendar.ZonedOf(calendar.DateTime(local), zone, zonesOf(thread))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return Zoned(z), nil
}

func newOffsetDateTime(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		local  DateTime
		offset string
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "datetime", &local, "offset", &offset); err != nil {
		return nil, err
	}
	off, err := calendar.ParseOffset(offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return Zoned(calendar.DateTime(local).AtOffset(off)), nil
}

func newPeriod(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		text                       string
		years, months, weeks, days int
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "text?", &text, "years?", &years, "months?", &months, "weeks?", &weeks, "days?", &days); err != nil {
		return nil, err
	}
	p := calendar.PeriodOf(years, months, weeks*7+days)
	if text != "" {
		q, err := calendar.ParsePeriod(text)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), err)
		}
		p = p.Plus(q)
	}
	return Period(p), nil
}

func newDuration(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		d                                                        Duration
		days, hours, minutes, seconds, milliseconds, nanoseconds int
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"d?", &d, "days?", &days, "hours?", &hours, "minutes?", &minutes,
		"seconds?", &seconds, "milliseconds?", &milliseconds, "nanoseconds?", &nanoseconds); err != nil {
		return nil, err
	}
	sum := calendar.Duration(d).
		Add(calendar.Days(int64(days))).
		Add(calendar.Hours(int64(hours))).
		Add(calendar.Minutes(int64(minutes))).
		Add(calendar.Seconds(int64(seconds))).
		Add(calendar.Milliseconds(int64(milliseconds))).
		Add(calendar.Nanoseconds(int64(nanoseconds)))
	return Duration(sum), nil
}

// formatterArg returns the formatter named by pattern: an ISO formatter
// name such as "ISO_LOCAL_DATE", or pattern letters in the given locale.
func formatterArg(thread *starlark.Thread, pattern, locale string) (format.Formatter, error) {
	for _, f := range []format.Formatter{format.ISODate, format.ISOLocalTime, format.ISOLocalDateTime, format.ISOOffsetDateTime, format.ISOZonedDateTime} {
		if pattern == f.String() {
			return f, nil
		}
	}
	p, err := format.Compile(pattern)
	if err != nil {
		return nil, err
	}
	tag, err := localeOf(thread, locale)
	if err != nil {
		return nil, err
	}
	return p.WithLocale(tag), nil
}

// parseArgs unpacks (text, pattern?, locale?) and parses text, with the
// given ISO formatter if no pattern is supplied.
func parseArgs(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple, iso format.Formatter) (*format.Parsed, error) {
	var text, pattern, locale string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "text", &text, "pattern?", &pattern, "locale?", &locale); err != nil {
		return nil, err
	}
	f := iso
	if pattern != "" {
		var err error
		if f, err = formatterArg(thread, pattern, locale); err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), err)
		}
	}
	r, err := f.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return r, nil
}

func parseDate(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	r, err := parseArgs(thread, b, args, kwargs, format.ISODate)
	if err != nil {
		return nil, err
	}
	d, err := r.Date()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return Date(d), nil
}

func parseTime(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	r, err := parseArgs(thread, b, args, kwargs, format.ISOLocalTime)
	if err != nil {
		return nil, err
	}
	t, err := r.Time()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return Time(t), nil
}

func parseDateTime(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	r, err := parseArgs(thread, b, args, kwargs, format.ISOLocalDateTime)
	if err != nil {
		return nil, err
	}
	dt, err := r.DateTime()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return DateTime(dt), nil
}

func parseZoned(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	r, err := parseArgs(thread, b, args, kwargs, format.ISOZonedDateTime)
	if err != nil {
		return nil, err
	}
	z, err := r.Zoned(zonesOf(thread))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return Zoned(z), nil
}

func parse(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var text, pattern, locale string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "text", &text, "pattern", &pattern, "locale?", &locale); err != nil {
		return nil, err
	}
	f, err := formatterArg(thread, pattern, locale)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	r, err := f.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	v, err := r.Temporal(zonesOf(thread))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return toValue(v), nil
}

func formatValue(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		v                      starlark.Value
		pattern, style, locale string
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "value", &v, "pattern?", &pattern, "style?", &style, "locale?", &locale); err != nil {
		return nil, err
	}
	t, ok := toTemporal(v)
	if !ok {
		return nil, fmt.Errorf("%s: got %s, want date, time, datetime or zoned", b.Name(), v.Type())
	}
	var f format.Formatter
	switch {
	case pattern != "" && style != "":
		return nil, fmt.Errorf("%s: pattern and style are mutually exclusive", b.Name())
	case style != "":
		s, err := format.ParseStyle(style)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), err)
		}
		tag, err := localeOf(thread, locale)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), err)
		}
		switch t.(type) {
		case calendar.Date:
			f = format.DateStyle(s, tag)
		case calendar.TimeOfDay:
			f = format.TimeStyle(s, tag)
		default:
			f = format.DateTimeStyle(s, s, tag)
		}
	case pattern != "":
		var err error
		if f, err = formatterArg(thread, pattern, locale); err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), err)
		}
	default:
		return starlark.String(t.String()), nil
	}
	s, err := f.Format(t)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return starlark.String(s), nil
}

func today(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	d, err := calendar.Today(clockOf(thread), zonesOf(thread))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return Date(d), nil
}

func now(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	dt, err := calendar.DateTimeNow(clockOf(thread), zonesOf(thread))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return DateTime(dt), nil
}

func zonedNow(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var zone string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "zone?", &zone); err != nil {
		return nil, err
	}
	z, err := calendar.ZonedNow(clockOf(thread), zonesOf(thread), zone)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return Zoned(z), nil
}

func unpackPair(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (calendar.Temporal, calendar.Temporal, error) {
	var x, y starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "start", &x, "end", &y); err != nil {
		return nil, nil, err
	}
	a, ok1 := toTemporal(x)
	c, ok2 := toTemporal(y)
	if !ok1 || !ok2 || x.Type() != y.Type() {
		return nil, nil, fmt.Errorf("%s: got %s and %s, want two dates, times, datetimes or zoned values", b.Name(), x.Type(), y.Type())
	}
	return a, c, nil
}

func between(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	x, y, err := unpackPair(b, args, kwargs)
	if err != nil {
		return nil, err
	}
	d, err := calendar.DurationBetween(x, y)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return Duration(d), nil
}

func periodBetween(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	x, y, err := unpackPair(b, args, kwargs)
	if err != nil {
		return nil, err
	}
	switch x := x.(type) {
	case calendar.Date:
		return Period(calendar.PeriodBetween(x, y.(calendar.Date))), nil
	case calendar.DateTime:
		return Period(calendar.DateTimePeriodBetween(x, y.(calendar.DateTime))), nil
	case calendar.ZonedDateTime:
		other := y.(calendar.ZonedDateTime).WithZoneSameInstant(x.Zone())
		return Period(calendar.DateTimePeriodBetween(x.Local(), other.Local())), nil
	}
	return nil, fmt.Errorf("%s: times of day have no period between them", b.Name())
}

func unitsBetween(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		unit string
		x, y starlark.Value
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "unit", &unit, "start", &x, "end", &y); err != nil {
		return nil, err
	}
	u, ok := calendar.ParseUnit(unit)
	if !ok {
		return nil, fmt.Errorf("%s: unknown unit %q", b.Name(), unit)
	}
	a, ok1 := toTemporal(x)
	c, ok2 := toTemporal(y)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("%s: got %s and %s", b.Name(), x.Type(), y.Type())
	}
	n, err := u.Between(a, c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return starlark.MakeInt64(n), nil
}

func relative(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var then, ref Zoned
	var refV starlark.Value = starlark.None
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "then", &then, "now?", &refV); err != nil {
		return nil, err
	}
	if refV == starlark.None {
		z, err := calendar.ZonedNow(clockOf(thread), zonesOf(thread), "")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), err)
		}
		ref = Zoned(z)
	} else if err := ref.Unpack(refV); err != nil {
		return nil, fmt.Errorf("%s: for parameter now: %v", b.Name(), err)
	}
	return starlark.String(format.Relative(calendar.ZonedDateTime(then), calendar.ZonedDateTime(ref))), nil
}

func listZones(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	pattern := "**"
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "pattern?", &pattern); err != nil {
		return nil, err
	}
	ids, err := catalogOf(thread).Match(pattern)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	elems := make([]starlark.Value, len(ids))
	for i, id := range ids {
		elems[i] = starlark.String(id)
	}
	return starlark.NewList(elems), nil
}

// toTemporal returns the calendar value of a date, time, datetime or
// zoned Starlark value.
func toTemporal(v starlark.Value) (calendar.Temporal, bool) {
	switch v := v.(type) {
	case Date:
		return calendar.Date(v), true
	case Time:
		return calendar.TimeOfDay(v), true
	case DateTime:
		return calendar.DateTime(v), true
	case Zoned:
		return calendar.ZonedDateTime(v), true
	}
	return nil, false
}

func toValue(t calendar.Temporal) starlark.Value {
	switch t := t.(type) {
	case calendar.Date:
		return Date(t)
	case calendar.TimeOfDay:
		return Time(t)
	case calendar.DateTime:
		return DateTime(t)
	case calendar.ZonedDateTime:
		return Zoned(t)
	}
	panic(fmt.Sprintf("unexpected %T", t))
}

// zoneArg looks up a zone id in the thread's database.
func zoneArg(thread *starlark.Thread, id string) (calendar.ZoneRules, error) {
	return zonesOf(thread).RulesFor(strings.TrimSpace(id))
}
