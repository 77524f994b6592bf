// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"errors"
	"fmt"
	"strconv"
)

// An InvalidDateError reports a year, month, day combination that does
// not name a day of the proleptic Gregorian calendar.
type InvalidDateError struct {
	Year  int
	Month int
	Day   int
	Msg   string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %d-%02d-%02d: %s", e.Year, e.Month, e.Day, e.Msg)
}

// An InvalidTimeError reports a time-of-day field out of range.
type InvalidTimeError struct {
	Field string // "hour", "minute", "second" or "nanosecond"
	Value int
}

func (e *InvalidTimeError) Error() string {
	return fmt.Sprintf("invalid time: %s %d out of range", e.Field, e.Value)
}

// A ParseError describes a problem parsing text as a calendar value.
type ParseError struct {
	Text   string // the input text
	Layout string // what the text was expected to match
	Offset int    // byte offset of the problem within Text
	Msg    string
	Err    error // underlying validation error, if any
}

func (e *ParseError) Error() string {
	msg := e.Msg
	if e.Err != nil {
		msg = e.Err.Error()
	}
	return "parsing " + strconv.Quote(e.Text) + " as " + e.Layout +
		": at offset " + strconv.Itoa(e.Offset) + ": " + msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// An UnknownZoneError reports a zone identifier that the zone database
// does not contain.
type UnknownZoneError struct {
	ID  string
	Err error
}

func (e *UnknownZoneError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unknown time zone %q: %v", e.ID, e.Err)
	}
	return fmt.Sprintf("unknown time zone %q", e.ID)
}

func (e *UnknownZoneError) Unwrap() error { return e.Err }

// ErrUnsupportedUnit is returned when a Unit cannot measure the given
// kind of value, such as hours between two dates.
var ErrUnsupportedUnit = errors.New("unsupported unit")
