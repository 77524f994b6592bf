// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package clock provides implementations of calendar.Clock.
package clock // import "go.calclock.dev/clock"

import (
	"os"
	"strings"

	"go.calclock.dev/calendar"
)

// System reads the operating system's real-time clock and default zone.
type System struct{}

var _ calendar.Clock = System{}

// Now returns the current instant.
func (System) Now() calendar.Instant {
	sec, nsec := now()
	return calendar.InstantOf(sec, nsec)
}

// ZoneID returns the system's default zone: the TZ environment variable
// if set, otherwise the zone named by the /etc/localtime link, otherwise
// "UTC".
func (System) ZoneID() string { return systemZoneID() }

// Overridden by tests.
var (
	lookupEnv = os.LookupEnv
	readlink  = os.Readlink
)

const localtime = "/etc/localtime"

func systemZoneID() string {
	if tz, ok := lookupEnv("TZ"); ok {
		tz = strings.TrimPrefix(tz, ":")
		switch {
		case tz == "":
			return "UTC"
		case strings.HasPrefix(tz, "/"):
			if id, ok := zoneFromPath(tz); ok {
				return id
			}
		default:
			return tz
		}
	}
	if target, err := readlink(localtime); err == nil {
		if id, ok := zoneFromPath(target); ok {
			return id
		}
	}
	return "UTC"
}

// zoneFromPath extracts "Europe/Paris" from a path such as
// "/usr/share/zoneinfo/Europe/Paris".
func zoneFromPath(path string) (string, bool) {
	const dir = "zoneinfo/"
	i := strings.LastIndex(path, dir)
	if i < 0 || i+len(dir) == len(path) {
		return "", false
	}
	return path[i+len(dir):], true
}

// Fixed is a clock that always reports the same instant and zone.
type Fixed struct {
	Instant calendar.Instant
	Zone    string
}

var _ calendar.Clock = Fixed{}

func (f Fixed) Now() calendar.Instant { return f.Instant }
func (f Fixed) ZoneID() string        { return f.Zone }

// At returns a fixed clock reading the given local date-time in zone,
// resolved with zones.
func At(local calendar.DateTime, zone string, zones calendar.ZoneDB) (Fixed, error) {
	z, err := calendar.ZonedOf(local, zone, zones)
	if err != nil {
		return Fixed{}, err
	}
	return Fixed{Instant: z.Instant(), Zone: zone}, nil
}

// WithZone returns a clock reading c's instant in the zone id instead of
// c's own zone. An empty id returns c.
func WithZone(c calendar.Clock, id string) calendar.Clock {
	if id == "" {
		return c
	}
	return zoned{c, id}
}

type zoned struct {
	calendar.Clock
	id string
}

func (z zoned) ZoneID() string { return z.id }
