// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tzdb implements calendar.ZoneDB on top of the IANA time zone
// database used by package time.
//
// Besides region ids such as "Europe/Paris", it accepts the fixed-offset
// ids "Z", "+02:00" and "-05:30:15", and prefixed fixed offsets such as
// "UTC+02:00" or "GMT-03:00".
package tzdb // import "go.calclock.dev/tzdb"

import (
	"errors"
	"strings"
	"time"

	"go.calclock.dev/calendar"
)

// DB is a zone database backed by time.LoadLocation. Its zero value is
// ready to use.
type DB struct{}

// New returns the platform zone database.
func New() *DB { return new(DB) }

var _ calendar.ZoneDB = (*DB)(nil)

var errNotRegion = errors.New("not a region id")

// RulesFor returns the rules of the zone with the given id.
func (db *DB) RulesFor(id string) (calendar.ZoneRules, error) {
	if id == "" || id == "Local" {
		return nil, &calendar.UnknownZoneError{ID: id, Err: errNotRegion}
	}
	if id == "Z" || id[0] == '+' || id[0] == '-' {
		off, err := calendar.ParseOffset(id)
		if err != nil {
			return nil, &calendar.UnknownZoneError{ID: id, Err: err}
		}
		return calendar.FixedZone(off), nil
	}
	for _, prefix := range [...]string{"UTC", "GMT", "UT"} {
		if rest := strings.TrimPrefix(id, prefix); rest != id && rest != "" && (rest[0] == '+' || rest[0] == '-') {
			off, err := calendar.ParseOffset(rest)
			if err != nil {
				return nil, &calendar.UnknownZoneError{ID: id, Err: err}
			}
			return Rules{id, time.FixedZone(id, off.Seconds())}, nil
		}
	}
	loc, err := time.LoadLocation(id)
	if err != nil {
		return nil, &calendar.UnknownZoneError{ID: id, Err: err}
	}
	return Rules{id, loc}, nil
}

// Rules are the rules of one zone, backed by a *time.Location.
type Rules struct {
	id  string
	loc *time.Location
}

// FromLocation returns rules for an already loaded location.
func FromLocation(loc *time.Location) Rules { return Rules{loc.String(), loc} }

func (r Rules) ID() string               { return r.id }
func (r Rules) Location() *time.Location { return r.loc }

// OffsetAt returns the zone's offset at the given instant.
func (r Rules) OffsetAt(epochSecond int64) calendar.Offset {
	_, off := time.Unix(epochSecond, 0).In(r.loc).Zone()
	return calendar.Offset(off)
}

// Abbreviation returns the zone's abbreviation at the given instant,
// such as "CEST".
func (r Rules) Abbreviation(epochSecond int64) string {
	name, _ := time.Unix(epochSecond, 0).In(r.loc).Zone()
	return name
}

// NextTransition returns the first instant after epochSecond at which
// the zone's offset or abbreviation changes, and false if there is none.
func (r Rules) NextTransition(epochSecond int64) (int64, bool) {
	_, end := time.Unix(epochSecond, 0).In(r.loc).ZoneBounds()
	if end.IsZero() {
		return 0, false
	}
	return end.Unix(), true
}
