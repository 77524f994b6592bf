// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package demo prints a walkthrough of the calendar API: construction,
// comparison, arithmetic, conversion and formatting of each value type.
package demo // import "go.calclock.dev/internal/demo"

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"

	"go.calclock.dev/calendar"
	"go.calclock.dev/calendarpb"
	"go.calclock.dev/format"
	"go.calclock.dev/tzdb"
)

// Env holds the collaborators of a walkthrough.
type Env struct {
	Clock       calendar.Clock
	Zones       calendar.ZoneDB
	Catalog     *tzdb.Catalog // zones listed in the ZonedDateTime section
	ZonePattern string        // glob selecting the listed zones; "" means all
	Locale      language.Tag  // locale of the styled formats
}

// Run writes the walkthrough to w. All "now" values derive from a single
// reading of env.Clock.
func Run(w io.Writer, env Env) error {
	now, err := calendar.ZonedNow(env.Clock, env.Zones, "")
	if err != nil {
		return err
	}
	r := &walk{w: w, env: env, now: now}
	for _, section := range []func() error{
		r.localDate,
		r.localTime,
		r.localDateTime,
		r.zonedDateTime,
		r.offsetDateTime,
		r.period,
		r.duration,
		r.conversions,
		r.formatting,
	} {
		if err := section(); err != nil {
			return err
		}
		if r.err != nil {
			return r.err
		}
	}
	return nil
}

type walk struct {
	w   io.Writer
	err error // first write error
	env Env
	now calendar.ZonedDateTime
}

func (r *walk) printf(format string, args ...interface{}) {
	if r.err == nil {
		_, r.err = fmt.Fprintf(r.w, format, args...)
	}
}

func (r *walk) localDate() error {
	today := r.now.Date()
	specific := calendar.MustDate(2022, calendar.February, 1)
	parsed, err := calendar.ParseDate("2022-02-01")
	if err != nil {
		return err
	}
	r.printf("LocalDate:\n\n> Instantiation:\n")
	r.printf("Now: %s\nNewDate: %s\nParseDate: %s\n", today, specific, parsed)

	yesterday := calendar.MustDate(2022, calendar.January, 1).AddDays(-1)
	tomorrow := today.AddDays(1)
	nextWeek := today.AddWeeks(1)
	r.printf("\n> Common operations\n")
	r.printf("Yesterday: %s\nTomorrow: %s\nNext week: %s\nThis day next month: %s\nThis day next year: %s\n",
		yesterday, tomorrow, nextWeek, today.AddMonths(1), today.AddYears(1))

	tomorrow = tomorrow.AddPeriod(calendar.PeriodOfDays(1))
	r.printf("\n> Other operations:\n")
	r.printf("LocalDate: %s\nDay of Week: %s\nDay of Month: %d\nMonth: %s\nIs Leap Year: %t\nisBefore tomorrow: %t\nisAfter tomorrow: %t\n",
		tomorrow, tomorrow.Weekday(), tomorrow.Day(), tomorrow.Month(), tomorrow.IsLeapYear(),
		nextWeek.Before(tomorrow), nextWeek.After(tomorrow))

	first, err := today.WithDayOfMonth(1)
	if err != nil {
		return err
	}
	r.printf("\n> Conversions:\n")
	r.printf("Beginning of Day: %s\n", today.AtStartOfDay())
	r.printf("First Day of this Month: %s\n", today.FirstDayOfMonth())
	r.printf("First Day of this Month: %s\n\n", first)
	return nil
}

func (r *walk) localTime() error {
	now := r.now.Time()
	of := calendar.MustTime(6, 30, 0, 0)
	parsed, err := calendar.ParseTime("06:30")
	if err != nil {
		return err
	}
	r.printf("LocalTime:\n\n> Instantiation:\n")
	r.printf("Now: %s\nOf: %s\nParse: %s\n", now, of, parsed)

	plus := now.Add(calendar.Hours(1))
	r.printf("\n> Common operations\n")
	r.printf("Add 1 hour to now: %s\n", plus)

	r.printf("\n> Other operations:\n")
	r.printf("Hour: %d\nMinute: %d\nSecond: %d\nNanosecond: %d\nSecond of Day: %d\nisBefore: %t\nisAfter: %t\nMax: %s\nMin: %s\n\n",
		plus.Hour(), plus.Minute(), plus.Second(), plus.Nanosecond(), plus.SecondOfDay(),
		parsed.Before(of), parsed.After(of), calendar.MaxTime, calendar.MinTime)
	return nil
}

func (r *walk) localDateTime() error {
	now := r.now.Local()
	parsed, err := calendar.ParseDateTime("2022-02-02T06:30:00")
	if err != nil {
		return err
	}
	r.printf("LocalDateTime:\n\n> Instantiation:\n")
	r.printf("Now: %s\nFrom date and time: %s\nDateTimeOf: %s\nWith nanoseconds: %s\nParse: %s\n",
		now,
		calendar.NewDateTime(now.Date(), now.Time()),
		calendar.MustDateTime(2022, 2, 2, 6, 30, 0, 0),
		calendar.MustDateTime(2022, calendar.February, 2, 6, 30, 58, 12345),
		parsed)

	r.printf("\n> Common operations\n")
	r.printf("Same time tomorrow: %s\nAn hour ago: %s\n\n",
		now.AddPeriod(calendar.PeriodOfDays(1)), now.Add(calendar.Hours(-1)))
	return nil
}

func (r *walk) zonedDateTime() error {
	r.printf("ZonedDateTime:\n\n")
	if r.env.Catalog != nil {
		pattern := r.env.ZonePattern
		if pattern == "" {
			pattern = "**"
		}
		ids, err := r.env.Catalog.Match(pattern)
		if err != nil {
			return err
		}
		r.printf("Available zones: [Size = %d], [%s]\n", len(ids), strings.Join(ids, ", "))
	}
	r.printf("Default/System zone: %s\n\n", r.env.Clock.ZoneID())

	local := r.now.Local()
	paris, err := calendar.ZonedOf(local, "Europe/Paris", r.env.Zones)
	if err != nil {
		return err
	}
	lagos, err := calendar.ZonedNow(r.env.Clock, r.env.Zones, "Africa/Lagos")
	if err != nil {
		return err
	}
	parsed, err := calendar.ParseZoned("2015-05-03T10:15:30+01:00[Europe/Paris]", r.env.Zones)
	if err != nil {
		return err
	}
	r.printf("Local Time: %s\nLocal Time in 'Paris' Time Zone: %s\nLagos Time Zone: %s\nParse: %s\n\n",
		local, paris, lagos, parsed)
	return nil
}

func (r *walk) offsetDateTime() error {
	local := calendar.MustDateTime(2015, calendar.February, 20, 6, 30, 0, 0)
	offset, err := calendar.ParseOffset("+02:00")
	if err != nil {
		return err
	}
	r.printf("OffsetDateTime:\n\n")
	r.printf("LocalDateTime: %s\nZone Offset: %s\nOffsetDateTime: %s\n\n", local, offset, local.AtOffset(offset))
	return nil
}

func (r *walk) period() error {
	initial := r.now.Date()
	final := initial.AddPeriod(calendar.PeriodOfDays(5))
	days, err := calendar.InDays.Between(initial, final)
	if err != nil {
		return err
	}
	r.printf("Period:\n")
	r.printf("Same? %t\n", calendar.PeriodBetween(initial, final).Days == 5)
	r.printf("Same? %t\n\n", days == 5)
	return nil
}

func (r *walk) duration() error {
	initial := r.now.Time()
	final := initial.Add(calendar.Seconds(5))
	diff, err := calendar.DurationBetween(initial, final)
	if err != nil {
		return err
	}
	secs, err := calendar.InSeconds.Between(initial, final)
	if err != nil {
		return err
	}
	r.printf("Duration:\n")
	r.printf("Same? %t\n", diff.Seconds() == 5)
	r.printf("Same? %t\n\n", secs == 5)
	return nil
}

func (r *walk) conversions() error {
	instant := r.now.Instant()
	zone := r.now.Zone()

	fromStd := calendar.DateTimeOfInstant(calendar.InstantOfStd(instant.Std()), zone)
	fromProto, err := calendarpb.FromTimestamp(calendarpb.ToTimestamp(instant))
	if err != nil {
		return err
	}
	r.printf("Conversions:\n")
	r.printf("From time.Time: %s\n", fromStd)
	r.printf("From protobuf Timestamp: %s\n", calendar.DateTimeOfInstant(fromProto, zone))
	r.printf("From Epoch: %s\n\n", calendar.DateTimeOfEpochSecond(instant.EpochSecond(), 0, 0))
	return nil
}

func (r *walk) formatting() error {
	ldt := r.now.Local()
	canada := language.MustParse("en-CA")
	r.printf("DateTime Formatting:\n")
	for _, f := range []format.Formatter{
		format.ISODate,
		format.ISOLocalDateTime,
		format.MustCompile("yyyy/MM/dd"),
		format.DateStyle(format.Short, r.env.Locale),
		format.TimeStyle(format.Medium, r.env.Locale),
		format.DateTimeStyle(format.Medium, format.Medium, canada),
	} {
		s, err := f.Format(ldt)
		if err != nil {
			return err
		}
		r.printf("%s\n", s)
	}
	return nil
}
