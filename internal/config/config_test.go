// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"

	"go.calclock.dev/calendar"
	"go.calclock.dev/tzdb"
)

var vars = []string{"CALCLOCK_ZONE", "CALCLOCK_LOCALE", "CALCLOCK_ZONEINFO", "CALCLOCK_ZONES", "CALCLOCK_NOW"}

// unsetEnv removes the variables for the duration of the test.
func unsetEnv(t *testing.T) {
	for _, v := range vars {
		t.Setenv(v, "") // restores the old value on cleanup
		os.Unsetenv(v)
	}
}

func TestDefaults(t *testing.T) {
	unsetEnv(t)
	got, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	want := Config{Locale: "en-US", ZoneInfo: "/usr/share/zoneinfo", Zones: "**"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if tag, err := got.LocaleTag(); err != nil || tag != language.AmericanEnglish {
		t.Errorf("LocaleTag() = %v, %v", tag, err)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("CALCLOCK_ZONE", "Europe/Paris")
	t.Setenv("CALCLOCK_LOCALE", "fr-CA")
	t.Setenv("CALCLOCK_ZONEINFO", "/opt/zoneinfo")
	t.Setenv("CALCLOCK_ZONES", "Europe/*")
	t.Setenv("CALCLOCK_NOW", "2022-02-01T10:15:30")
	got, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		Zone:     "Europe/Paris",
		Locale:   "fr-CA",
		ZoneInfo: "/opt/zoneinfo",
		Zones:    "Europe/*",
		Now:      "2022-02-01T10:15:30",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if tag, err := got.LocaleTag(); err != nil || tag != language.CanadianFrench {
		t.Errorf("LocaleTag() = %v, %v", tag, err)
	}
}

func TestLocaleTagError(t *testing.T) {
	if _, err := (Config{Locale: "not a tag!"}).LocaleTag(); err == nil || !strings.HasPrefix(err.Error(), "CALCLOCK_LOCALE") {
		t.Errorf("LocaleTag() error = %v", err)
	}
}

func TestClock(t *testing.T) {
	zones := tzdb.New()
	for _, test := range []struct {
		cfg     Config
		instant string
		zone    string
		wantErr string
	}{
		{Config{Now: "2022-02-01T10:15:30", Zone: "Europe/Paris"}, "2022-02-01T09:15:30Z", "Europe/Paris", ""},
		{Config{Now: "2022-02-01T10:15:30+05:30"}, "2022-02-01T04:45:30Z", "+05:30", ""},
		{Config{Now: "2015-05-03T10:15:30+01:00[Europe/Paris]"}, "2015-05-03T09:15:30Z", "Europe/Paris", ""},
		{Config{Now: "2015-05-03T10:15:30+01:00[Europe/Paris]", Zone: "Asia/Tokyo"}, "2015-05-03T09:15:30Z", "Asia/Tokyo", ""},
		{Config{Now: "yesterday"}, "", "", "CALCLOCK_NOW"},
		{Config{Now: "2015-05-03T10:15:30+01:00[Mars/Olympus_Mons]"}, "", "", "unknown time zone"},
		{Config{Now: "2015-05-03T10:15:30+19:00"}, "", "", "offset"},
		{Config{Now: "2022-02-01T10:15:30", Zone: "Nowhere/Special"}, "", "", "unknown time zone"},
	} {
		c, err := test.cfg.Clock(zones)
		if test.wantErr != "" {
			if err == nil || !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("%+v: Clock() error = %v, want %q", test.cfg, err, test.wantErr)
			} else if strings.Contains(err.Error(), "unparsed") {
				t.Errorf("%+v: Clock() error = %v, reports the local parse instead of the zoned one", test.cfg, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%+v: Clock() error = %v", test.cfg, err)
			continue
		}
		if got := c.Now().String(); got != test.instant {
			t.Errorf("%+v: Now() = %s, want %s", test.cfg, got, test.instant)
		}
		if got := c.ZoneID(); got != test.zone {
			t.Errorf("%+v: ZoneID() = %q, want %q", test.cfg, got, test.zone)
		}
	}
}

func TestSystemClockZone(t *testing.T) {
	c, err := Config{Zone: "Asia/Tokyo"}.Clock(tzdb.New())
	if err != nil {
		t.Fatal(err)
	}
	if c.ZoneID() != "Asia/Tokyo" {
		t.Errorf("ZoneID() = %q", c.ZoneID())
	}
	if _, err := calendar.ZonedNow(c, tzdb.New(), ""); err != nil {
		t.Error(err)
	}
}

func TestUsage(t *testing.T) {
	u := Usage()
	for _, v := range vars {
		if !strings.Contains(u, v) {
			t.Errorf("Usage() does not mention %s:\n%s", v, u)
		}
	}
}
