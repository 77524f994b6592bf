// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

// Supported year range, matching ISO-8601 expanded representations.
const (
	MinYear = -999999999
	MaxYear = 999999999
)

// A Date is a day of the proleptic Gregorian calendar, with no time of
// day and no zone. The zero Date is not valid; use NewDate.
//
// Dates are comparable with ==.
type Date struct {
	year  int
	month Month
	day   int
}

// NewDate returns the date for the given year, month and day, or an
// *InvalidDateError if the combination does not exist (for example
// February 29 in a non-leap year).
func NewDate(year int, month Month, day int) (Date, error) {
	if year < MinYear || year > MaxYear {
		return Date{}, &InvalidDateError{year, int(month), day, "year out of range"}
	}
	if !month.Valid() {
		return Date{}, &InvalidDateError{year, int(month), day, "month out of range"}
	}
	if day < 1 || day > DaysIn(year, month) {
		return Date{}, &InvalidDateError{year, int(month), day, "day out of range for month"}
	}
	return Date{year, month, day}, nil
}

// MustDate is like NewDate but panics if the date is invalid.
// It simplifies initialization of variables holding date literals.
func MustDate(year int, month Month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// Today returns the current date in the clock's zone.
func Today(c Clock, zones ZoneDB) (Date, error) {
	dt, err := DateTimeNow(c, zones)
	if err != nil {
		return Date{}, err
	}
	return dt.Date(), nil
}

// DateOfEpochDay returns the date n days after 1970-01-01.
func DateOfEpochDay(n int64) Date {
	// Howard Hinnant's civil_from_days.
	z := n + 719468
	era := floorDiv(z, 146097)
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	m := mp + 3
	if mp >= 10 {
		m = mp - 9
	}
	if m <= 2 {
		y++
	}
	return Date{int(y), Month(m), int(d)}
}

// EpochDay returns the number of days since 1970-01-01.
func (d Date) EpochDay() int64 {
	y, m := int64(d.year), int64(d.month)
	if m <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	mp := m - 3
	if m <= 2 {
		mp = m + 9
	}
	doy := (153*mp+2)/5 + int64(d.day) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

func (d Date) Year() int    { return d.year }
func (d Date) Month() Month { return d.month }
func (d Date) Day() int     { return d.day }

// Weekday returns the day of the week.
func (d Date) Weekday() Weekday {
	// 1970-01-01 was a Thursday.
	return Weekday(floorMod(d.EpochDay()+3, 7) + 1)
}

// DayOfYear returns the day of the year, in [1, 366].
func (d Date) DayOfYear() int {
	n := d.day
	for m := January; m < d.month; m++ {
		n += DaysIn(d.year, m)
	}
	return n
}

func (d Date) IsLeapYear() bool   { return IsLeap(d.year) }
func (d Date) LengthOfMonth() int { return DaysIn(d.year, d.month) }

func (d Date) LengthOfYear() int {
	if d.IsLeapYear() {
		return 366
	}
	return 365
}

// IsValid reports whether d was produced by a constructor rather than
// being the zero Date.
func (d Date) IsValid() bool { return d.month != 0 }

// Check returns an *InvalidDateError if d's year lies outside
// [MinYear, MaxYear]. The Add methods do not check their results, so
// callers with unbounded amounts should call Check before using one.
func (d Date) Check() error {
	if d.year < MinYear || d.year > MaxYear {
		return &InvalidDateError{d.year, int(d.month), d.day, "year out of range"}
	}
	return nil
}

// AddDays returns the date n days after d. n may be negative.
// The result may lie outside the supported year range; see Check.
func (d Date) AddDays(n int64) Date {
	if n == 0 {
		return d
	}
	return DateOfEpochDay(d.EpochDay() + n)
}

// AddWeeks returns the date n weeks after d.
func (d Date) AddWeeks(n int64) Date { return d.AddDays(n * 7) }

// AddMonths returns the date n months after d. If the day of month does
// not exist in the resulting month it is clamped to the month's last day,
// so January 31 plus one month is February 28 (or 29).
func (d Date) AddMonths(n int64) Date {
	if n == 0 {
		return d
	}
	total := int64(d.year)*12 + int64(d.month-1) + n
	return clampDate(int(floorDiv(total, 12)), Month(floorMod(total, 12)+1), d.day)
}

// AddYears returns the date n years after d, clamping February 29 to
// February 28 in non-leap years. Like AddDays it does not check the
// year range.
func (d Date) AddYears(n int64) Date {
	if n == 0 {
		return d
	}
	return clampDate(d.year+int(n), d.month, d.day)
}

// AddPeriod returns d adjusted by p. The years and months of p are
// applied together as a single month adjustment, then the days.
func (d Date) AddPeriod(p Period) Date {
	return d.AddMonths(p.TotalMonths()).AddDays(int64(p.Days))
}

// SubPeriod returns d adjusted by the negation of p.
func (d Date) SubPeriod(p Period) Date { return d.AddPeriod(p.Negated()) }

// WithDayOfMonth returns d with the day of month replaced.
func (d Date) WithDayOfMonth(day int) (Date, error) {
	return NewDate(d.year, d.month, day)
}

// WithMonth returns d with the month replaced, clamping the day.
func (d Date) WithMonth(m Month) (Date, error) {
	if !m.Valid() {
		return Date{}, &InvalidDateError{d.year, int(m), d.day, "month out of range"}
	}
	return clampDate(d.year, m, d.day), nil
}

// WithYear returns d with the year replaced, clamping February 29.
func (d Date) WithYear(year int) (Date, error) {
	if year < MinYear || year > MaxYear {
		return Date{}, &InvalidDateError{year, int(d.month), d.day, "year out of range"}
	}
	return clampDate(year, d.month, d.day), nil
}

// FirstDayOfMonth returns the first day of d's month.
// It is equivalent to d.WithDayOfMonth(1).
func (d Date) FirstDayOfMonth() Date { return Date{d.year, d.month, 1} }

// LastDayOfMonth returns the last day of d's month.
func (d Date) LastDayOfMonth() Date { return Date{d.year, d.month, d.LengthOfMonth()} }

// FirstDayOfYear returns January 1 of d's year.
func (d Date) FirstDayOfYear() Date { return Date{d.year, January, 1} }

// Next returns the first date after d that falls on the given weekday.
func (d Date) Next(w Weekday) Date {
	n := floorMod(int64(w-d.Weekday()), 7)
	if n == 0 {
		n = 7
	}
	return d.AddDays(n)
}

// AtStartOfDay returns midnight at the start of d.
func (d Date) AtStartOfDay() DateTime { return DateTime{d, Midnight} }

// At combines d with a time of day.
func (d Date) At(t TimeOfDay) DateTime { return DateTime{d, t} }

// Compare returns -1, 0 or +1 as d is before, equal to or after e.
func (d Date) Compare(e Date) int {
	switch {
	case d.year != e.year:
		return cmpInt(d.year, e.year)
	case d.month != e.month:
		return cmpInt(int(d.month), int(e.month))
	}
	return cmpInt(d.day, e.day)
}

func (d Date) Before(e Date) bool { return d.Compare(e) < 0 }
func (d Date) After(e Date) bool  { return d.Compare(e) > 0 }
func (d Date) Equal(e Date) bool  { return d == e }

// String returns the ISO-8601 form of d, such as "2022-02-01".
// Years outside 0000..9999 carry an explicit sign.
func (d Date) String() string {
	return string(appendDate(make([]byte, 0, 16), d))
}

// ParseDate parses an ISO-8601 calendar date such as "2022-02-01".
func ParseDate(text string) (Date, error) {
	s := &scanner{text: text, layout: "yyyy-MM-dd"}
	d, err := s.date()
	if err != nil {
		return Date{}, err
	}
	if err := s.end(); err != nil {
		return Date{}, err
	}
	return d, nil
}

func clampDate(year int, m Month, day int) Date {
	if n := DaysIn(year, m); day > n {
		day = n
	}
	return Date{year, m, day}
}

func cmpInt(x, y int) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return +1
	}
	return 0
}
