// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"go.starlark.net/starlark"
	"golang.org/x/text/language"

	"go.calclock.dev/calendar"
	"go.calclock.dev/clock"
	"go.calclock.dev/tzdb"
)

func fixedClock(t *testing.T, dt calendar.DateTime, zone string) clock.Fixed {
	t.Helper()
	c, err := clock.At(dt, zone, tzdb.New())
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestPerThreadClock(t *testing.T) {
	th := &starlark.Thread{}
	want := calendar.MustDateTime(1999, calendar.December, 31, 23, 59, 59, 0)
	SetClock(th, fixedClock(t, want, "Asia/Tokyo"))

	res, err := starlark.Call(th, Module.Members["now"], nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := calendar.DateTime(res.(DateTime)); got != want {
		t.Errorf("now() = %s, want %s", got, want)
	}

	res, err = starlark.Call(th, Module.Members["today"], nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := calendar.Date(res.(Date)); got != want.Date() {
		t.Errorf("today() = %s, want %s", got, want.Date())
	}
}

func TestDefaultClock(t *testing.T) {
	old := DefaultClock
	defer func() { DefaultClock = old }()

	want := calendar.MustDateTime(2020, calendar.February, 29, 12, 0, 0, 0)
	DefaultClock = fixedClock(t, want, "UTC")

	res, err := starlark.Call(&starlark.Thread{}, Module.Members["zoned_now"], nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	z := calendar.ZonedDateTime(res.(Zoned))
	if z.Local() != want || z.ZoneID() != "UTC" {
		t.Errorf("zoned_now() = %s, want %s[UTC]", z, want)
	}
}

type noZones struct{}

var errNoZones = errors.New("no zones here")

func (noZones) RulesFor(id string) (calendar.ZoneRules, error) { return nil, errNoZones }

func TestPerThreadZonesError(t *testing.T) {
	th := &starlark.Thread{}
	SetZones(th, noZones{})
	args := starlark.Tuple{DateTime(calendar.MustDateTime(2022, 1, 1, 0, 0, 0, 0)), starlark.String("Europe/Paris")}
	_, err := starlark.Call(th, Module.Members["zoned"], args, nil)
	if !errors.Is(err, errNoZones) {
		t.Errorf("zoned() error = %v, want %v", err, errNoZones)
	}
}

func TestPerThreadLocale(t *testing.T) {
	th := &starlark.Thread{}
	SetLocale(th, language.German)
	args := starlark.Tuple{Date(calendar.MustDate(2022, calendar.February, 1))}
	kwargs := []starlark.Tuple{{starlark.String("style"), starlark.String("MEDIUM")}}
	res, err := starlark.Call(th, Module.Members["format"], args, kwargs)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(res.(starlark.String)), "01.02.2022"; got != want {
		t.Errorf("format(style=MEDIUM) in German = %q, want %q", got, want)
	}
}

func TestZones(t *testing.T) {
	fsys := afero.NewMemMapFs()
	tzif := []byte("TZif2\x00\x00\x00")
	for _, name := range []string{"Europe/Paris", "Europe/Berlin", "America/New_York", "posix/Europe/Paris", "zone.tab"} {
		if err := afero.WriteFile(fsys, "/zi/"+name, tzif, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	th := &starlark.Thread{}
	SetCatalog(th, tzdb.NewCatalog(fsys, "/zi"))

	res, err := starlark.Call(th, Module.Members["zones"], starlark.Tuple{starlark.String("Europe/*")}, nil)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	iter := res.(starlark.Iterable).Iterate()
	defer iter.Done()
	var v starlark.Value
	for iter.Next(&v) {
		got = append(got, string(v.(starlark.String)))
	}
	if diff := cmp.Diff([]string{"Europe/Berlin", "Europe/Paris"}, got); diff != "" {
		t.Errorf("zones(Europe/*) mismatch (-want +got):\n%s", diff)
	}
}

func TestAttrNames(t *testing.T) {
	for _, v := range []starlark.HasAttrs{
		Date(calendar.MustDate(2022, 1, 1)),
		Time(calendar.Noon),
		DateTime(calendar.MustDateTime(2022, 1, 1, 0, 0, 0, 0)),
		Zoned(calendar.MustDateTime(2022, 1, 1, 0, 0, 0, 0).AtOffset(0)),
		Period(calendar.PeriodOfDays(1)),
		Duration(calendar.Hours(1)),
	} {
		for _, name := range v.AttrNames() {
			attr, err := v.Attr(name)
			if err != nil || attr == nil {
				t.Errorf("%s.%s = %v, %v", v.Type(), name, attr, err)
			}
		}
		if attr, err := v.Attr("no_such_attr"); attr != nil || err != nil {
			t.Errorf("%s.no_such_attr = %v, %v; want nil, nil", v.Type(), attr, err)
		}
	}
}

func TestHashConsistentWithEquality(t *testing.T) {
	pairs := [][2]starlark.Value{
		{Date(calendar.MustDate(2022, 1, 31)), Date(calendar.DateOfEpochDay(19023))},
		{Time(calendar.MustTime(6, 30, 0, 0)), Time(calendar.TimeOfNanoOfDay(23400 * 1e9))},
		{Duration(calendar.Minutes(90)), Duration(calendar.Seconds(5400))},
		{Period(calendar.PeriodOfWeeks(2)), Period(calendar.PeriodOfDays(14))},
	}
	for _, p := range pairs {
		if eq, err := starlark.Equal(p[0], p[1]); err != nil || !eq {
			t.Errorf("%s == %s: %t, %v", p[0], p[1], eq, err)
			continue
		}
		h0, _ := p[0].Hash()
		h1, _ := p[1].Hash()
		if h0 != h1 {
			t.Errorf("hash(%s) = %d, hash(%s) = %d", p[0], h0, p[1], h1)
		}
	}
}

func TestLoadModule(t *testing.T) {
	m, err := LoadModule()
	if err != nil {
		t.Fatal(err)
	}
	if m[ModuleName] != Module {
		t.Errorf("LoadModule()[%q] = %v", ModuleName, m[ModuleName])
	}
}
