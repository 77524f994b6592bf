// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar_test

import (
	"testing"

	"go.calclock.dev/calendar"
)

func TestPeriodBetween(t *testing.T) {
	for _, test := range []struct {
		a, b string
		want calendar.Period
	}{
		{"2022-01-01", "2022-01-06", calendar.PeriodOf(0, 0, 5)},
		{"2022-01-31", "2022-02-28", calendar.PeriodOf(0, 1, 0)},
		{"2022-01-31", "2022-03-01", calendar.PeriodOf(0, 1, 1)},
		{"2020-02-29", "2024-02-29", calendar.PeriodOf(4, 0, 0)},
		{"2020-02-29", "2021-02-28", calendar.PeriodOf(1, 0, 0)},
		{"2022-03-31", "2022-02-28", calendar.PeriodOf(0, -1, 0)},
		{"2022-03-15", "2022-02-20", calendar.PeriodOf(0, 0, -23)},
		{"2022-06-10", "2021-03-05", calendar.PeriodOf(-1, -3, -5)},
		{"2022-01-01", "2022-01-01", calendar.Period{}},
	} {
		a, b := mustParseDate(t, test.a), mustParseDate(t, test.b)
		got := calendar.PeriodBetween(a, b)
		if got != test.want {
			t.Errorf("PeriodBetween(%s, %s) = %s, want %s", a, b, got, test.want)
		}
		if end := a.AddPeriod(got); end != b {
			t.Errorf("%s.AddPeriod(%s) = %s, want %s", a, got, end, b)
		}
	}
}

// Adding the period between two dates to the first always yields the
// second, whatever the month lengths involved.
func TestPeriodBetweenRoundTrip(t *testing.T) {
	start := calendar.MustDate(2019, 12, 25)
	for i := int64(0); i < 400; i += 3 {
		a := start.AddDays(i)
		for j := int64(-400); j < 400; j += 7 {
			b := start.AddDays(j)
			p := calendar.PeriodBetween(a, b)
			if got := a.AddPeriod(p); got != b {
				t.Fatalf("%s.AddPeriod(PeriodBetween(%s, %s) = %s) = %s", a, a, b, p, got)
			}
			if (p.TotalMonths() < 0 && p.Days > 0) || (p.TotalMonths() > 0 && p.Days < 0) {
				t.Fatalf("PeriodBetween(%s, %s) = %s has mixed signs", a, b, p)
			}
		}
	}
}

func TestDateTimePeriodBetween(t *testing.T) {
	a := calendar.MustDateTime(2022, 1, 1, 0, 0, 0, 0)
	b := calendar.MustDateTime(2022, 1, 6, 0, 0, 0, 0)
	p := calendar.DateTimePeriodBetween(a, b)
	if p.Days != 5 {
		t.Errorf("DateTimePeriodBetween(%s, %s).Days = %d, want 5", a, b, p.Days)
	}
	n, err := calendar.InDays.Between(a, b)
	if err != nil || n != 5 {
		t.Errorf("InDays.Between(%s, %s) = %d, %v; want 5", a, b, n, err)
	}

	// An incomplete final day is not counted.
	c := calendar.MustDateTime(2022, 1, 1, 10, 0, 0, 0)
	d := calendar.MustDateTime(2022, 1, 6, 9, 0, 0, 0)
	if got := calendar.DateTimePeriodBetween(c, d); got != calendar.PeriodOfDays(4) {
		t.Errorf("DateTimePeriodBetween(%s, %s) = %s, want P4D", c, d, got)
	}
	if got := calendar.DateTimePeriodBetween(d, c); got != calendar.PeriodOfDays(-4) {
		t.Errorf("DateTimePeriodBetween(%s, %s) = %s, want P-4D", d, c, got)
	}
}

func TestPeriodText(t *testing.T) {
	for _, test := range []struct {
		p    calendar.Period
		want string
	}{
		{calendar.Period{}, "P0D"},
		{calendar.PeriodOf(1, 2, 3), "P1Y2M3D"},
		{calendar.PeriodOfDays(5), "P5D"},
		{calendar.PeriodOfMonths(-1), "P-1M"},
		{calendar.PeriodOf(-1, -3, -5), "P-1Y-3M-5D"},
	} {
		if got := test.p.String(); got != test.want {
			t.Errorf("String() = %q, want %q", got, test.want)
		}
		back, err := calendar.ParsePeriod(test.want)
		if err != nil || back != test.p {
			t.Errorf("ParsePeriod(%q) = %s, %v", test.want, back, err)
		}
	}
	for _, test := range []struct {
		text string
		want calendar.Period
	}{
		{"P2W", calendar.PeriodOfWeeks(2)},
		{"P1W3D", calendar.PeriodOfDays(10)},
		{"-P1M-5D", calendar.PeriodOf(0, -1, 5)},
		{"p1y", calendar.PeriodOfYears(1)},
	} {
		got, err := calendar.ParsePeriod(test.text)
		if err != nil || got != test.want {
			t.Errorf("ParsePeriod(%q) = %s, %v; want %s", test.text, got, err, test.want)
		}
	}
	for _, text := range []string{"", "P", "1Y", "P1D1M", "P1Y1Y", "P1H", "P1.5D"} {
		if _, err := calendar.ParsePeriod(text); err == nil {
			t.Errorf("ParsePeriod(%q) succeeded", text)
		}
	}
}

func TestPeriodArithmetic(t *testing.T) {
	p := calendar.PeriodOf(1, 14, 3)
	if got, want := p.Normalized(), calendar.PeriodOf(2, 2, 3); got != want {
		t.Errorf("Normalized() = %s, want %s", got, want)
	}
	if got, want := calendar.PeriodOf(1, -2, 0).Normalized(), calendar.PeriodOf(0, 10, 0); got != want {
		t.Errorf("Normalized() = %s, want %s", got, want)
	}
	if got := p.Minus(p); !got.IsZero() {
		t.Errorf("p - p = %s", got)
	}
	if got, want := calendar.PeriodOfDays(2).MultipliedBy(-3), calendar.PeriodOfDays(-6); got != want || !got.IsNegative() {
		t.Errorf("MultipliedBy(-3) = %s", got)
	}
	if got := p.TotalMonths(); got != 26 {
		t.Errorf("TotalMonths() = %d", got)
	}
	d := calendar.MustDate(2022, 1, 31)
	if got := d.AddPeriod(p).SubPeriod(p); got != calendar.MustDate(2022, 1, 31) {
		t.Errorf("AddPeriod then SubPeriod = %s", got)
	}
}

func mustParseDate(t *testing.T, text string) calendar.Date {
	t.Helper()
	d, err := calendar.ParseDate(text)
	if err != nil {
		t.Fatal(err)
	}
	return d
}
