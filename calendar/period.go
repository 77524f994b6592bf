// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import "strings"

// A Period is a date-based amount of time in years, months and days,
// such as "1 year, 2 months and 3 days". The fields are independent and
// may have any sign. Periods are comparable with ==; P1Y and P12M are
// different periods.
type Period struct {
	Years, Months, Days int
}

func PeriodOf(years, months, days int) Period { return Period{years, months, days} }

func PeriodOfDays(n int) Period   { return Period{Days: n} }
func PeriodOfWeeks(n int) Period  { return Period{Days: n * 7} }
func PeriodOfMonths(n int) Period { return Period{Months: n} }
func PeriodOfYears(n int) Period  { return Period{Years: n} }

// PeriodBetween returns the period from a to b in whole years, whole
// months and remaining days, such that a.AddPeriod(PeriodBetween(a, b))
// equals b. The months and days of the result never have opposite signs.
//
// The month count is the largest that does not pass b when added to a
// with end-of-month clamping, so from January 31 to February 28 of a
// non-leap year is exactly one month.
func PeriodBetween(a, b Date) Period {
	total := (int64(b.year)*12 + int64(b.month)) - (int64(a.year)*12 + int64(a.month))
	calc := a.AddMonths(total)
	switch {
	case total > 0 && calc.After(b):
		total--
		calc = a.AddMonths(total)
	case total < 0 && calc.Before(b):
		total++
		calc = a.AddMonths(total)
	}
	return Period{
		Years:  int(total / 12),
		Months: int(total % 12),
		Days:   int(b.EpochDay() - calc.EpochDay()),
	}
}

// DateTimePeriodBetween returns the period between the dates of a and b,
// counting a final day only if it is complete: from 2022-01-01T10:00 to
// 2022-01-06T09:00 is four days.
func DateTimePeriodBetween(a, b DateTime) Period {
	return PeriodBetween(a.date, completeEnd(a, b))
}

// completeEnd returns the date of b, moved one day towards a if the time
// of day of b has not yet reached that of a.
func completeEnd(a, b DateTime) Date {
	end := b.date
	switch {
	case end.After(a.date) && b.time.Before(a.time):
		end = end.AddDays(-1)
	case end.Before(a.date) && b.time.After(a.time):
		end = end.AddDays(1)
	}
	return end
}

// TotalMonths returns 12*Years + Months.
func (p Period) TotalMonths() int64 { return int64(p.Years)*12 + int64(p.Months) }

func (p Period) IsZero() bool { return p == Period{} }

// IsNegative reports whether any field of p is negative.
func (p Period) IsNegative() bool { return p.Years < 0 || p.Months < 0 || p.Days < 0 }

func (p Period) Plus(q Period) Period {
	return Period{p.Years + q.Years, p.Months + q.Months, p.Days + q.Days}
}

func (p Period) Minus(q Period) Period { return p.Plus(q.Negated()) }

func (p Period) Negated() Period { return Period{-p.Years, -p.Months, -p.Days} }

func (p Period) MultipliedBy(n int) Period {
	return Period{p.Years * n, p.Months * n, p.Days * n}
}

// Normalized returns p with months folded into years so that |Months| <
// 12 and Years and Months share a sign. Days are unchanged.
func (p Period) Normalized() Period {
	total := p.TotalMonths()
	return Period{int(total / 12), int(total % 12), p.Days}
}

// String returns the ISO-8601 form of p, such as "P1Y2M3D".
// The zero period is "P0D".
func (p Period) String() string {
	if p.IsZero() {
		return "P0D"
	}
	b := []byte{'P'}
	if p.Years != 0 {
		b = append(appendSigned(b, int64(p.Years)), 'Y')
	}
	if p.Months != 0 {
		b = append(appendSigned(b, int64(p.Months)), 'M')
	}
	if p.Days != 0 {
		b = append(appendSigned(b, int64(p.Days)), 'D')
	}
	return string(b)
}

// ParsePeriod parses an ISO-8601 period of the form PnYnMnWnD, such as
// "P1Y2M3D", "P2W" or "-P1M-5D". Weeks are converted to days.
func ParsePeriod(text string) (Period, error) {
	s := &scanner{text: text, layout: "PnYnMnWnD"}
	neg := s.accept('-')
	if !neg {
		s.accept('+')
	}
	if !s.accept('P') && !s.accept('p') {
		return Period{}, s.expect('P')
	}
	var p Period
	last := -1
	for s.pos < len(s.text) {
		partNeg := s.accept('-')
		if !partNeg {
			s.accept('+')
		}
		v, _, err := s.digits(1, 9)
		if err != nil {
			return Period{}, err
		}
		if partNeg {
			v = -v
		}
		order := strings.IndexByte("YMWD", upper(s.peek()))
		if order < 0 {
			return Period{}, s.errorf("want one of Y, M, W or D")
		}
		if order <= last {
			return Period{}, s.errorf("period units out of order")
		}
		last = order
		s.pos++
		switch order {
		case 0:
			p.Years = v
		case 1:
			p.Months = v
		case 2:
			p.Days += v * 7
		case 3:
			p.Days += v
		}
	}
	if last < 0 {
		return Period{}, s.errorf("period has no parts")
	}
	if neg {
		p = p.Negated()
	}
	return p, nil
}

func upper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
