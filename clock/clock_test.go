// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clock

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"go.calclock.dev/calendar"
	"go.calclock.dev/tzdb"
)

func TestSystemZoneID(t *testing.T) {
	defer func(l func(string) (string, bool), r func(string) (string, error)) {
		lookupEnv, readlink = l, r
	}(lookupEnv, readlink)

	for _, test := range []struct {
		tz   string
		set  bool
		link string
		want string
	}{
		{tz: "Europe/Paris", set: true, want: "Europe/Paris"},
		{tz: ":America/New_York", set: true, want: "America/New_York"},
		{tz: "", set: true, link: "/usr/share/zoneinfo/Asia/Tokyo", want: "UTC"},
		{tz: "/usr/share/zoneinfo/Europe/Berlin", set: true, want: "Europe/Berlin"},
		{tz: "/etc/custom", set: true, link: "/usr/share/zoneinfo/Asia/Tokyo", want: "Asia/Tokyo"},
		{link: "/usr/share/zoneinfo/Asia/Tokyo", want: "Asia/Tokyo"},
		{link: "../usr/share/zoneinfo/Australia/Sydney", want: "Australia/Sydney"},
		{link: "/usr/share/zoneinfo/", want: "UTC"},
		{want: "UTC"},
	} {
		lookupEnv = func(string) (string, bool) { return test.tz, test.set }
		readlink = func(string) (string, error) {
			if test.link == "" {
				return "", os.ErrNotExist
			}
			return test.link, nil
		}
		if got := (System{}).ZoneID(); got != test.want {
			t.Errorf("TZ=%q (set=%t) link=%q: ZoneID() = %q, want %q", test.tz, test.set, test.link, got, test.want)
		}
	}
}

func TestSystemNow(t *testing.T) {
	before := time.Now()
	got := System{}.Now().Std()
	after := time.Now()
	// Allow for coarse clocks.
	if got.Before(before.Add(-time.Second)) || got.After(after.Add(time.Second)) {
		t.Errorf("System.Now() = %v, want between %v and %v", got, before, after)
	}
	if strings.Contains(got.String(), "m=") {
		t.Errorf("System.Now() = %v carries a monotonic reading", got)
	}
}

func TestAt(t *testing.T) {
	zones := tzdb.New()
	local := calendar.MustDateTime(2022, 2, 2, 6, 30, 0, 0)
	c, err := At(local, "Europe/Paris", zones)
	if err != nil {
		t.Fatal(err)
	}
	if c.ZoneID() != "Europe/Paris" {
		t.Errorf("ZoneID() = %q", c.ZoneID())
	}
	if got, want := c.Now().String(), "2022-02-02T05:30:00Z"; got != want {
		t.Errorf("Now() = %s, want %s", got, want)
	}
	_, err = At(local, "Atlantis/Capital", zones)
	var unknown *calendar.UnknownZoneError
	if !errors.As(err, &unknown) {
		t.Errorf("At in an unknown zone: %v", err)
	}
}

func TestWithZone(t *testing.T) {
	base := Fixed{Instant: calendar.InstantOf(1643700000, 0), Zone: "UTC"}
	if c := WithZone(base, ""); c != calendar.Clock(base) {
		t.Errorf("WithZone(c, \"\") = %v, want c", c)
	}
	c := WithZone(base, "Asia/Tokyo")
	if c.ZoneID() != "Asia/Tokyo" || c.Now() != base.Instant {
		t.Errorf("WithZone = (%v, %q)", c.Now(), c.ZoneID())
	}
}
