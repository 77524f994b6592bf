// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package format converts calendar values to and from text.
//
// A Formatter is either one of the predefined ISO-8601 formatters, a
// Pattern compiled from pattern letters such as "dd/MM/yyyy HH:mm", or a
// localized style such as DateStyle(Medium, language.French). For any
// formatter f and value v,
//
//	s, _ := f.Format(v)
//	p, _ := f.Parse(s)
//
// yields the fields of v that f writes, so formatting the parsed value
// with f gives s again.
package format // import "go.calclock.dev/format"

import (
	"time"

	"github.com/dustin/go-humanize"

	"go.calclock.dev/calendar"
)

// A Formatter formats calendar values as text and parses text into
// fields.
type Formatter interface {
	// Format formats v. It fails if v lacks a field the formatter
	// writes, such as the hour of a Date.
	Format(v calendar.Temporal) (string, error)
	// Parse parses text, failing with a *calendar.ParseError.
	Parse(text string) (*Parsed, error)
	String() string
}

// Parsed holds the fields read by a Formatter. Use its methods to
// obtain calendar values.
type Parsed struct {
	text, layout string

	date      calendar.Date
	time      calendar.TimeOfDay
	offset    calendar.Offset
	zone      string
	hasDate   bool
	hasTime   bool
	hasOffset bool
}

func (r *Parsed) HasDate() bool   { return r.hasDate }
func (r *Parsed) HasTime() bool   { return r.hasTime }
func (r *Parsed) HasOffset() bool { return r.hasOffset }

// ZoneID returns the parsed zone id, or "" if there was none.
func (r *Parsed) ZoneID() string { return r.zone }

func (r *Parsed) missing(what string) error {
	return &calendar.ParseError{Text: r.text, Layout: r.layout, Offset: len(r.text), Msg: "text has no " + what}
}

// Date returns the parsed date.
func (r *Parsed) Date() (calendar.Date, error) {
	if !r.hasDate {
		return calendar.Date{}, r.missing("date")
	}
	return r.date, nil
}

// Time returns the parsed time of day.
func (r *Parsed) Time() (calendar.TimeOfDay, error) {
	if !r.hasTime {
		return calendar.TimeOfDay{}, r.missing("time of day")
	}
	return r.time, nil
}

// DateTime returns the parsed date and time of day.
func (r *Parsed) DateTime() (calendar.DateTime, error) {
	d, err := r.Date()
	if err != nil {
		return calendar.DateTime{}, err
	}
	t, err := r.Time()
	if err != nil {
		return calendar.DateTime{}, err
	}
	return d.At(t), nil
}

// Zoned returns the parsed zoned date-time. With a zone id, the zone is
// looked up in zones; if an offset was parsed too, the instant it
// denotes is expressed in the zone, as in calendar.ParseZoned. Without a
// zone id the offset gives a fixed-offset zone.
func (r *Parsed) Zoned(zones calendar.ZoneDB) (calendar.ZonedDateTime, error) {
	local, err := r.DateTime()
	if err != nil {
		return calendar.ZonedDateTime{}, err
	}
	switch {
	case r.zone != "":
		if zones == nil {
			return calendar.ZonedDateTime{}, r.wrap(&calendar.UnknownZoneError{ID: r.zone})
		}
		z, err := zones.RulesFor(r.zone)
		if err != nil {
			return calendar.ZonedDateTime{}, r.wrap(err)
		}
		if !r.hasOffset {
			return local.AtZone(z), nil
		}
		i := calendar.InstantOf(local.EpochSecond(r.offset), int64(local.Nanosecond()))
		return calendar.ZonedOfInstant(i, z), nil
	case r.hasOffset:
		return local.AtOffset(r.offset), nil
	}
	return calendar.ZonedDateTime{}, r.missing("zone offset or id")
}

func (r *Parsed) wrap(err error) error {
	return &calendar.ParseError{Text: r.text, Layout: r.layout, Msg: err.Error(), Err: err}
}

// Temporal returns the most complete value the fields describe: a
// zoned date-time, a date-time, a date or a time of day.
func (r *Parsed) Temporal(zones calendar.ZoneDB) (calendar.Temporal, error) {
	switch {
	case r.hasDate && r.hasTime && (r.hasOffset || r.zone != ""):
		return r.Zoned(zones)
	case r.hasDate && r.hasTime:
		return r.DateTime()
	case r.hasDate:
		return r.date, nil
	case r.hasTime:
		return r.time, nil
	}
	return nil, r.missing("date or time")
}

// ParseDate parses text with f and returns its date.
func ParseDate(text string, f Formatter) (calendar.Date, error) {
	r, err := f.Parse(text)
	if err != nil {
		return calendar.Date{}, err
	}
	return r.Date()
}

// ParseTime parses text with f and returns its time of day.
func ParseTime(text string, f Formatter) (calendar.TimeOfDay, error) {
	r, err := f.Parse(text)
	if err != nil {
		return calendar.TimeOfDay{}, err
	}
	return r.Time()
}

// ParseDateTime parses text with f and returns its date-time.
func ParseDateTime(text string, f Formatter) (calendar.DateTime, error) {
	r, err := f.Parse(text)
	if err != nil {
		return calendar.DateTime{}, err
	}
	return r.DateTime()
}

// ParseZoned parses text with f and returns its zoned date-time.
func ParseZoned(text string, f Formatter, zones calendar.ZoneDB) (calendar.ZonedDateTime, error) {
	r, err := f.Parse(text)
	if err != nil {
		return calendar.ZonedDateTime{}, err
	}
	return r.Zoned(zones)
}

// Relative describes then relative to now in English, such as
// "5 seconds ago" or "3 days from now".
func Relative(then, now calendar.ZonedDateTime) string {
	return relative(then.Instant().Std(), now.Instant().Std())
}

func relative(then, now time.Time) string {
	return humanize.RelTime(then, now, "ago", "from now")
}
