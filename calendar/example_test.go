// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar_test

import (
	"fmt"
	"log"

	"go.calclock.dev/calendar"
)

func ExampleDate_AddMonths() {
	d := calendar.MustDate(2022, calendar.January, 31)
	fmt.Println(d.AddMonths(1))
	fmt.Println(calendar.MustDate(2024, calendar.January, 31).AddMonths(1))

	// Output:
	// 2022-02-28
	// 2024-02-29
}

func ExamplePeriodBetween() {
	a := calendar.MustDate(2022, calendar.January, 1)
	b := calendar.MustDate(2023, calendar.March, 15)
	p := calendar.PeriodBetween(a, b)
	fmt.Println(p, a.AddPeriod(p))

	// Output:
	// P1Y2M14D 2023-03-15
}

func ExampleUnit_Between() {
	start := calendar.MustDateTime(2022, 1, 1, 0, 0, 0, 0)
	end := calendar.MustDateTime(2022, 1, 6, 0, 0, 0, 0)
	days, err := calendar.InDays.Between(start, end)
	if err != nil {
		log.Fatal(err)
	}
	hours, err := calendar.InHours.Between(start, end)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(days, hours)

	// Output:
	// 5 120
}

func ExampleParseZoned() {
	z, err := calendar.ParseZoned("2022-02-02T06:30:58.5+05:30", nil)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(z)
	fmt.Println(z.Instant())

	// Output:
	// 2022-02-02T06:30:58.500+05:30
	// 2022-02-02T01:00:58.500Z
}

func ExampleDuration_String() {
	d := calendar.Hours(8).Add(calendar.Minutes(6)).Add(calendar.Milliseconds(12345))
	fmt.Println(d)
	fmt.Println(d.Neg())

	// Output:
	// PT8H6M12.345S
	// PT-8H-6M-12.345S
}
