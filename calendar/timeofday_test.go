// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar_test

import (
	"errors"
	"testing"

	"go.calclock.dev/calendar"
)

func TestNewTime(t *testing.T) {
	for _, test := range []struct {
		h, m, s, n int
		field      string
	}{
		{0, 0, 0, 0, ""},
		{23, 59, 59, 999999999, ""},
		{24, 0, 0, 0, "hour"},
		{-1, 0, 0, 0, "hour"},
		{6, 60, 0, 0, "minute"},
		{6, 30, 60, 0, "second"},
		{6, 30, 0, 1000000000, "nanosecond"},
	} {
		_, err := calendar.NewTime(test.h, test.m, test.s, test.n)
		if test.field == "" {
			if err != nil {
				t.Errorf("NewTime(%d, %d, %d, %d): %v", test.h, test.m, test.s, test.n, err)
			}
			continue
		}
		var invalid *calendar.InvalidTimeError
		if !errors.As(err, &invalid) || invalid.Field != test.field {
			t.Errorf("NewTime(%d, %d, %d, %d) error = %v, want invalid %s", test.h, test.m, test.s, test.n, err, test.field)
		}
	}
}

func TestTimeString(t *testing.T) {
	for _, test := range []struct {
		t    calendar.TimeOfDay
		want string
	}{
		{calendar.MustTime(6, 30, 0, 0), "06:30"},
		{calendar.MustTime(6, 30, 58, 0), "06:30:58"},
		{calendar.MustTime(6, 30, 0, 500000000), "06:30:00.500"},
		{calendar.MustTime(6, 30, 58, 12000), "06:30:58.000012"},
		{calendar.MustTime(6, 30, 58, 12345), "06:30:58.000012345"},
		{calendar.MaxTime, "23:59:59.999999999"},
		{calendar.Noon, "12:00"},
	} {
		if got := test.t.String(); got != test.want {
			t.Errorf("String() = %q, want %q", got, test.want)
		}
		back, err := calendar.ParseTime(test.want)
		if err != nil || back != test.t {
			t.Errorf("ParseTime(%q) = %s, %v", test.want, back, err)
		}
	}
	if got, err := calendar.ParseTime("06:30:58,5"); err != nil || got != calendar.MustTime(6, 30, 58, 500000000) {
		t.Errorf("ParseTime with comma fraction = %s, %v", got, err)
	}
	for _, text := range []string{"6:30", "06:30:", "24:00", "06:30:58.", "06:30Z"} {
		if _, err := calendar.ParseTime(text); err == nil {
			t.Errorf("ParseTime(%q) succeeded", text)
		}
	}
}

func TestTimeArithmetic(t *testing.T) {
	start := calendar.MustTime(6, 30, 0, 0)
	later := start.Add(calendar.Seconds(5))
	n, err := calendar.InSeconds.Between(start, later)
	if err != nil || n != 5 {
		t.Errorf("seconds between %s and %s = %d, %v; want 5", start, later, n, err)
	}
	d, err := calendar.DurationBetween(start, later)
	if err != nil || d.Seconds() != 5 {
		t.Errorf("DurationBetween = %s, %v", d, err)
	}

	for _, test := range []struct {
		t    calendar.TimeOfDay
		d    calendar.Duration
		want calendar.TimeOfDay
	}{
		{calendar.MustTime(23, 0, 0, 0), calendar.Hours(2), calendar.MustTime(1, 0, 0, 0)},
		{calendar.MustTime(1, 0, 0, 0), calendar.Hours(-2), calendar.MustTime(23, 0, 0, 0)},
		{calendar.MustTime(6, 30, 0, 0), calendar.Days(3), calendar.MustTime(6, 30, 0, 0)},
		{calendar.Midnight, calendar.Nanoseconds(-1), calendar.MaxTime},
	} {
		if got := test.t.Add(test.d); got != test.want {
			t.Errorf("%s.Add(%s) = %s, want %s", test.t, test.d, got, test.want)
		}
	}
	if got, want := start.AddMinutes(45).AddHours(1).AddSeconds(-1), calendar.MustTime(8, 14, 59, 0); got != want {
		t.Errorf("chained adds = %s, want %s", got, want)
	}
	if !start.Before(later) || !later.After(start) || start.Compare(start) != 0 {
		t.Error("time ordering is wrong")
	}
	if got := calendar.MustTime(1, 2, 3, 4).SecondOfDay(); got != 3723 {
		t.Errorf("SecondOfDay() = %d", got)
	}
}

func TestTimeTruncate(t *testing.T) {
	tm := calendar.MustTime(6, 30, 58, 123456789)
	for _, test := range []struct {
		u    calendar.Unit
		want calendar.TimeOfDay
	}{
		{calendar.InNanoseconds, tm},
		{calendar.InMilliseconds, calendar.MustTime(6, 30, 58, 123000000)},
		{calendar.InSeconds, calendar.MustTime(6, 30, 58, 0)},
		{calendar.InMinutes, calendar.MustTime(6, 30, 0, 0)},
		{calendar.InHours, calendar.MustTime(6, 0, 0, 0)},
		{calendar.InHalfDays, calendar.Midnight},
		{calendar.InDays, calendar.Midnight},
	} {
		got, err := tm.Truncate(test.u)
		if err != nil || got != test.want {
			t.Errorf("Truncate(%s) = %s, %v; want %s", test.u, got, err, test.want)
		}
	}
	if _, err := tm.Truncate(calendar.InMonths); !errors.Is(err, calendar.ErrUnsupportedUnit) {
		t.Errorf("Truncate(Months) error = %v", err)
	}
}
