// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar_test

import (
	"errors"
	"testing"

	"go.calclock.dev/calendar"
)

func TestUnitBetween(t *testing.T) {
	d1 := calendar.MustDate(2022, 1, 31)
	d2 := calendar.MustDate(2032, 3, 1)
	t1 := calendar.MustTime(6, 30, 0, 0)
	t2 := calendar.MustTime(8, 15, 30, 250000000)
	dt1 := d1.At(t1)
	dt2 := d2.At(calendar.MustTime(6, 0, 0, 0))
	for _, test := range []struct {
		u    calendar.Unit
		a, b calendar.Temporal
		want int64
	}{
		{calendar.InDays, d1, d2, 3682},
		{calendar.InWeeks, d1, d2, 526},
		{calendar.InMonths, d1, d2, 121},
		{calendar.InYears, d1, d2, 10},
		{calendar.InDecades, d1, d2, 1},
		{calendar.InCenturies, d1, d2, 0},
		{calendar.InMonths, d2, d1, -121},
		{calendar.InHours, t1, t2, 1},
		{calendar.InMinutes, t1, t2, 105},
		{calendar.InMilliseconds, t1, t2, 6330250},
		{calendar.InHours, t2, t1, -1},
		{calendar.InHalfDays, t1, t2, 0},
		{calendar.InDays, dt1, dt2, 3681},
		{calendar.InMonths, dt1, dt2, 121},
		{calendar.InHours, dt1, dt2, 3681*24 + 23},
		{calendar.InNanoseconds, dt1, dt1.Add(calendar.Seconds(2)), 2000000000},
	} {
		got, err := test.u.Between(test.a, test.b)
		if err != nil || got != test.want {
			t.Errorf("%s.Between(%s, %s) = %d, %v; want %d", test.u, test.a, test.b, got, err, test.want)
		}
	}
}

func TestUnitBetweenErrors(t *testing.T) {
	d := calendar.MustDate(2022, 1, 1)
	tm := calendar.MustTime(6, 30, 0, 0)
	if _, err := calendar.InHours.Between(d, d); !errors.Is(err, calendar.ErrUnsupportedUnit) {
		t.Errorf("hours between dates: %v", err)
	}
	if _, err := calendar.InDays.Between(tm, tm); !errors.Is(err, calendar.ErrUnsupportedUnit) {
		t.Errorf("days between times: %v", err)
	}
	if _, err := calendar.InDays.Between(d, d.AtStartOfDay()); err == nil {
		t.Error("days between a date and a date-time succeeded")
	}
	if _, err := calendar.DurationBetween(d, d); !errors.Is(err, calendar.ErrUnsupportedUnit) {
		t.Errorf("duration between dates: %v", err)
	}
	if _, err := calendar.DurationBetween(tm, d); err == nil {
		t.Error("duration between a time and a date succeeded")
	}
	for _, u := range []calendar.Unit{-1, calendar.InMillennia + 1, 99} {
		if _, err := u.Between(d, d.AddDays(40)); !errors.Is(err, calendar.ErrUnsupportedUnit) {
			t.Errorf("%s between dates: %v", u, err)
		}
		if _, err := u.Between(tm, tm.AddHours(1)); !errors.Is(err, calendar.ErrUnsupportedUnit) {
			t.Errorf("%s between times: %v", u, err)
		}
	}
	big := calendar.MustDateTime(calendar.MinYear, 1, 1, 0, 0, 0, 0)
	if _, err := calendar.InNanoseconds.Between(big, d.AtStartOfDay()); err == nil {
		t.Error("nanoseconds across a billion years did not overflow")
	}
}

func TestUnitNames(t *testing.T) {
	for u := calendar.InNanoseconds; u <= calendar.InMillennia; u++ {
		back, ok := calendar.ParseUnit(u.String())
		if !ok || back != u {
			t.Errorf("ParseUnit(%q) = %v, %t", u, back, ok)
		}
		if u.IsDateBased() == u.IsTimeBased() {
			t.Errorf("%s is both or neither date and time based", u)
		}
	}
	if _, ok := calendar.ParseUnit("Fortnights"); ok {
		t.Error("ParseUnit accepted Fortnights")
	}
	if got := calendar.InDays.String(); got != "Days" {
		t.Errorf("InDays = %q", got)
	}
}
