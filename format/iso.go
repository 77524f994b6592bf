// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"fmt"
	"strings"

	"go.calclock.dev/calendar"
)

// The ISO-8601 formatters. They write the shortest form, omitting zero
// seconds, and parse any form the calendar package accepts.
var (
	// ISODate formats the date of a value: 2022-02-01.
	ISODate Formatter = isoFormatter{isoDate}
	// ISOLocalTime formats the time of day of a value: 06:30:58.
	ISOLocalTime Formatter = isoFormatter{isoTime}
	// ISOLocalDateTime formats a date and time: 2022-02-02T06:30.
	ISOLocalDateTime Formatter = isoFormatter{isoDateTime}
	// ISOOffsetDateTime formats a zoned value without its zone id:
	// 2015-05-03T11:15:30+02:00.
	ISOOffsetDateTime Formatter = isoFormatter{isoOffsetDateTime}
	// ISOZonedDateTime formats a zoned value with its zone id:
	// 2015-05-03T11:15:30+02:00[Europe/Paris]. The id is omitted for
	// fixed-offset zones and optional when parsing.
	ISOZonedDateTime Formatter = isoFormatter{isoZonedDateTime}
)

type isoKind int

const (
	isoDate isoKind = iota
	isoTime
	isoDateTime
	isoOffsetDateTime
	isoZonedDateTime
)

var isoNames = [...]string{
	"ISO_LOCAL_DATE",
	"ISO_LOCAL_TIME",
	"ISO_LOCAL_DATE_TIME",
	"ISO_OFFSET_DATE_TIME",
	"ISO_ZONED_DATE_TIME",
}

type isoFormatter struct{ kind isoKind }

func (f isoFormatter) String() string { return isoNames[f.kind] }

func (f isoFormatter) Format(v calendar.Temporal) (string, error) {
	fs := fieldsOf(v)
	var ok bool
	switch f.kind {
	case isoDate:
		ok = fs.hasDate
	case isoTime:
		ok = fs.hasTime
	case isoDateTime:
		ok = fs.hasDate && fs.hasTime
	case isoOffsetDateTime, isoZonedDateTime:
		ok = fs.hasOffset
	}
	if !ok {
		return "", fmt.Errorf("format %s as %s: %w", v, f, ErrMissingField)
	}
	switch f.kind {
	case isoDate:
		return fs.date.String(), nil
	case isoTime:
		return fs.time.String(), nil
	case isoDateTime:
		return fs.date.At(fs.time).String(), nil
	case isoOffsetDateTime:
		return fs.date.At(fs.time).AtOffset(fs.offset).String(), nil
	}
	return v.String(), nil
}

func (f isoFormatter) Parse(text string) (*Parsed, error) {
	r := &Parsed{text: text, layout: f.String()}
	switch f.kind {
	case isoDate:
		d, err := calendar.ParseDate(text)
		if err != nil {
			return nil, err
		}
		r.date, r.hasDate = d, true
	case isoTime:
		t, err := calendar.ParseTime(text)
		if err != nil {
			return nil, err
		}
		r.time, r.hasTime = t, true
	case isoDateTime:
		dt, err := calendar.ParseDateTime(text)
		if err != nil {
			return nil, err
		}
		r.date, r.time, r.hasDate, r.hasTime = dt.Date(), dt.Time(), true, true
	default:
		head := text
		if i := strings.IndexByte(text, '['); i >= 0 && f.kind == isoZonedDateTime {
			id := strings.TrimSuffix(text[i+1:], "]")
			if id == "" || len(id) == len(text[i+1:]) {
				return nil, &calendar.ParseError{Text: text, Layout: f.String(), Offset: i, Msg: "want [zone id]"}
			}
			head, r.zone = text[:i], id
		}
		z, err := calendar.ParseZoned(head, nil)
		if err != nil {
			return nil, err
		}
		r.date, r.time, r.offset = z.Date(), z.Time(), z.Offset()
		r.hasDate, r.hasTime, r.hasOffset = true, true, true
	}
	return r, nil
}
