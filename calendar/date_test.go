// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar_test

import (
	"errors"
	"testing"

	"go.calclock.dev/calendar"
)

func TestNewDate(t *testing.T) {
	for _, test := range []struct {
		y, m, d int
		ok      bool
	}{
		{2022, 2, 28, true},
		{2022, 2, 29, false},
		{2024, 2, 29, true},
		{1900, 2, 29, false},
		{2000, 2, 29, true},
		{2022, 4, 31, false},
		{2022, 13, 1, false},
		{2022, 0, 1, false},
		{2022, 1, 0, false},
		{-44, 3, 15, true},
		{calendar.MaxYear, 12, 31, true},
		{calendar.MaxYear + 1, 1, 1, false},
	} {
		_, err := calendar.NewDate(test.y, calendar.Month(test.m), test.d)
		if ok := err == nil; ok != test.ok {
			t.Errorf("NewDate(%d, %d, %d) error = %v, want ok=%t", test.y, test.m, test.d, err, test.ok)
		}
		var invalid *calendar.InvalidDateError
		if err != nil && !errors.As(err, &invalid) {
			t.Errorf("NewDate(%d, %d, %d) error %T is not an InvalidDateError", test.y, test.m, test.d, err)
		}
	}
}

func TestEpochDay(t *testing.T) {
	for _, test := range []struct {
		date string
		day  int64
		wd   calendar.Weekday
	}{
		{"1970-01-01", 0, calendar.Thursday},
		{"1969-12-31", -1, calendar.Wednesday},
		{"2000-03-01", 11017, calendar.Wednesday},
		{"2022-01-01", 18993, calendar.Saturday},
		{"2024-02-29", 19782, calendar.Thursday},
		{"0000-01-01", -719528, calendar.Saturday},
	} {
		d, err := calendar.ParseDate(test.date)
		if err != nil {
			t.Fatal(err)
		}
		if got := d.EpochDay(); got != test.day {
			t.Errorf("%s.EpochDay() = %d, want %d", d, got, test.day)
		}
		if got := calendar.DateOfEpochDay(test.day); got != d {
			t.Errorf("DateOfEpochDay(%d) = %s, want %s", test.day, got, d)
		}
		if got := d.Weekday(); got != test.wd {
			t.Errorf("%s.Weekday() = %s, want %s", d, got, test.wd)
		}
	}
}

// Formatting a date and parsing the text back yields the same date.
func TestDateTextRoundTrip(t *testing.T) {
	for _, d := range []calendar.Date{
		calendar.MustDate(2022, 2, 1),
		calendar.MustDate(1, 1, 1),
		calendar.MustDate(0, 12, 31),
		calendar.MustDate(-1, 6, 15),
		calendar.MustDate(9999, 12, 31),
		calendar.MustDate(10000, 1, 1),
		calendar.MustDate(calendar.MinYear, 1, 1),
		calendar.MustDate(calendar.MaxYear, 12, 31),
	} {
		got, err := calendar.ParseDate(d.String())
		if err != nil {
			t.Errorf("ParseDate(%q): %v", d, err)
			continue
		}
		if got != d {
			t.Errorf("ParseDate(%q) = %s", d, got)
		}
	}
	for n := int64(-800000); n < 800000; n += 997 {
		d := calendar.DateOfEpochDay(n)
		if got, err := calendar.ParseDate(d.String()); err != nil || got != d {
			t.Errorf("ParseDate(%q) = %s, %v", d, got, err)
		}
	}
}

func TestDateString(t *testing.T) {
	for _, test := range []struct {
		d    calendar.Date
		want string
	}{
		{calendar.MustDate(2022, 2, 1), "2022-02-01"},
		{calendar.MustDate(5, 7, 9), "0005-07-09"},
		{calendar.MustDate(-5, 7, 9), "-0005-07-09"},
		{calendar.MustDate(12345, 1, 1), "+12345-01-01"},
	} {
		if got := test.d.String(); got != test.want {
			t.Errorf("String() = %q, want %q", got, test.want)
		}
	}
}

func TestParseDateErrors(t *testing.T) {
	for _, text := range []string{
		"",
		"2022",
		"2022-2-01",
		"2022-02-30",
		"2022-02-01T",
		"20220201",
		"12345-01-01",
		"+2022-01-01x",
	} {
		_, err := calendar.ParseDate(text)
		var perr *calendar.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("ParseDate(%q) error = %v, want ParseError", text, err)
			continue
		}
		if perr.Text != text {
			t.Errorf("ParseDate(%q) error has text %q", text, perr.Text)
		}
	}
}

func TestAddDaysInverse(t *testing.T) {
	base := []calendar.Date{
		calendar.MustDate(2022, 1, 31),
		calendar.MustDate(2024, 2, 29),
		calendar.MustDate(1600, 3, 1),
		calendar.MustDate(-400, 12, 31),
	}
	for _, d := range base {
		for _, n := range []int64{0, 1, -1, 28, 365, 366, -146097, 1000000} {
			if got := d.AddDays(n).AddDays(-n); got != d {
				t.Errorf("%s.AddDays(%d).AddDays(%d) = %s", d, n, -n, got)
			}
		}
	}
}

func TestDateRangeCheck(t *testing.T) {
	max := calendar.MustDate(calendar.MaxYear, 12, 31)
	min := calendar.MustDate(calendar.MinYear, 1, 1)
	for _, test := range []struct {
		name string
		date calendar.Date
		ok   bool
	}{
		{"max", max, true},
		{"max+1d", max.AddDays(1), false},
		{"max+1m", max.AddMonths(1), false},
		{"max-1y", max.AddYears(-1), true},
		{"min", min, true},
		{"min-1d", min.AddDays(-1), false},
		{"min+P1D", min.AddPeriod(calendar.PeriodOfDays(1)), true},
		{"2022+2e9y", calendar.MustDate(2022, 1, 1).AddYears(2000000000), false},
	} {
		err := test.date.Check()
		if ok := err == nil; ok != test.ok {
			t.Errorf("%s: Check() = %v, want ok=%t", test.name, err, test.ok)
			continue
		}
		if err != nil {
			var invalid *calendar.InvalidDateError
			if !errors.As(err, &invalid) {
				t.Errorf("%s: Check() error %T is not an InvalidDateError", test.name, err)
			}
			continue
		}
		// In-range results always survive the ISO round trip.
		back, err := calendar.ParseDate(test.date.String())
		if err != nil {
			t.Errorf("%s: ParseDate(%s): %v", test.name, test.date, err)
		} else if back != test.date {
			t.Errorf("%s: ParseDate(%s) = %s", test.name, test.date, back)
		}
	}
}

func TestAddMonthsClamps(t *testing.T) {
	for _, test := range []struct {
		from calendar.Date
		n    int64
		want calendar.Date
	}{
		{calendar.MustDate(2022, 1, 31), 1, calendar.MustDate(2022, 2, 28)},
		{calendar.MustDate(2024, 1, 31), 1, calendar.MustDate(2024, 2, 29)},
		{calendar.MustDate(2022, 3, 31), -1, calendar.MustDate(2022, 2, 28)},
		{calendar.MustDate(2022, 1, 31), 3, calendar.MustDate(2022, 4, 30)},
		{calendar.MustDate(2022, 11, 15), 2, calendar.MustDate(2023, 1, 15)},
		{calendar.MustDate(2022, 1, 15), -13, calendar.MustDate(2020, 12, 15)},
		{calendar.MustDate(2022, 5, 10), 0, calendar.MustDate(2022, 5, 10)},
	} {
		if got := test.from.AddMonths(test.n); got != test.want {
			t.Errorf("%s.AddMonths(%d) = %s, want %s", test.from, test.n, got, test.want)
		}
	}
	if got, want := calendar.MustDate(2024, 2, 29).AddYears(1), calendar.MustDate(2025, 2, 28); got != want {
		t.Errorf("AddYears across February 29 = %s, want %s", got, want)
	}
}

// The first day of a month is the same however it is reached.
func TestFirstDayOfMonth(t *testing.T) {
	for _, month := range []calendar.Date{
		calendar.MustDate(2022, 2, 1), // 28 days
		calendar.MustDate(2024, 2, 1), // 29 days
		calendar.MustDate(2022, 4, 1), // 30 days
		calendar.MustDate(2022, 1, 1), // 31 days
	} {
		for d := month; d.Month() == month.Month(); d = d.AddDays(1) {
			viaWith, err := d.WithDayOfMonth(1)
			if err != nil {
				t.Fatal(err)
			}
			if got := d.FirstDayOfMonth(); got != viaWith {
				t.Errorf("%s: FirstDayOfMonth() = %s, WithDayOfMonth(1) = %s", d, got, viaWith)
			}
		}
	}
}

func TestAdjusters(t *testing.T) {
	d := calendar.MustDate(2022, 2, 1) // a Tuesday
	if got, want := d.LastDayOfMonth(), calendar.MustDate(2022, 2, 28); got != want {
		t.Errorf("LastDayOfMonth() = %s, want %s", got, want)
	}
	if got, want := d.FirstDayOfYear(), calendar.MustDate(2022, 1, 1); got != want {
		t.Errorf("FirstDayOfYear() = %s, want %s", got, want)
	}
	if got, want := d.Next(calendar.Friday), calendar.MustDate(2022, 2, 4); got != want {
		t.Errorf("Next(Friday) = %s, want %s", got, want)
	}
	if got, want := d.Next(calendar.Tuesday), calendar.MustDate(2022, 2, 8); got != want {
		t.Errorf("Next(Tuesday) = %s, want %s", got, want)
	}
	if _, err := d.WithDayOfMonth(29); err == nil {
		t.Error("WithDayOfMonth(29) in February 2022 succeeded")
	}
	if got, err := calendar.MustDate(2022, 1, 31).WithMonth(calendar.April); err != nil || got != calendar.MustDate(2022, 4, 30) {
		t.Errorf("WithMonth(April) = %s, %v", got, err)
	}
	if got, err := calendar.MustDate(2024, 2, 29).WithYear(2023); err != nil || got != calendar.MustDate(2023, 2, 28) {
		t.Errorf("WithYear(2023) = %s, %v", got, err)
	}
	if got := d.DayOfYear(); got != 32 {
		t.Errorf("DayOfYear() = %d, want 32", got)
	}
	if d.IsLeapYear() || d.LengthOfYear() != 365 || d.LengthOfMonth() != 28 {
		t.Errorf("2022 lengths wrong: leap=%t year=%d month=%d", d.IsLeapYear(), d.LengthOfYear(), d.LengthOfMonth())
	}
}

func TestDateCompare(t *testing.T) {
	a := calendar.MustDate(2022, 1, 31)
	b := calendar.MustDate(2022, 2, 1)
	if !a.Before(b) || b.Before(a) || !b.After(a) || a.Compare(a) != 0 || !a.Equal(a) {
		t.Errorf("ordering of %s and %s is wrong", a, b)
	}
	if (calendar.Date{}).IsValid() || !a.IsValid() {
		t.Error("IsValid disagrees with construction")
	}
}

func TestMonthAndWeekdayNames(t *testing.T) {
	if got := calendar.February.String(); got != "FEBRUARY" {
		t.Errorf("February = %q", got)
	}
	if got := calendar.Sunday.Plus(1); got != calendar.Monday {
		t.Errorf("Sunday+1 = %s", got)
	}
	if got := calendar.January.Plus(-1); got != calendar.December {
		t.Errorf("January-1 = %s", got)
	}
}
