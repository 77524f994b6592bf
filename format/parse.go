// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"fmt"
	"strings"

	"go.calclock.dev/calendar"
)

// Parse parses text laid out by the pattern. Text fields are matched
// without regard to case.
func (p *Pattern) Parse(text string) (*Parsed, error) {
	ps := &parser{text: text, p: p, vals: make(map[kind]int)}
	for i, t := range p.tokens {
		adjacent := i+1 < len(p.tokens) && p.tokens[i+1].numeric()
		if err := ps.token(t, adjacent); err != nil {
			return nil, err
		}
	}
	if ps.pos != len(text) {
		return nil, ps.errorf("unparsed text %q", text[ps.pos:])
	}
	return ps.resolve()
}

type parser struct {
	text string
	pos  int
	p    *Pattern

	vals      map[kind]int // keyed by tokYear, tokMonth, tokNano etc.
	offset    calendar.Offset
	hasOffset bool
	zone      string
}

func (ps *parser) errorf(format string, args ...interface{}) error {
	return &calendar.ParseError{Text: ps.text, Layout: ps.p.src, Offset: ps.pos, Msg: fmt.Sprintf(format, args...)}
}

func (ps *parser) wrap(err error) error {
	return &calendar.ParseError{Text: ps.text, Layout: ps.p.src, Offset: ps.pos, Msg: err.Error(), Err: err}
}

func (ps *parser) set(k kind, v int) error {
	if old, ok := ps.vals[k]; ok && old != v {
		return ps.errorf("conflicting values %d and %d for one field", old, v)
	}
	ps.vals[k] = v
	return nil
}

// digits reads between min and max decimal digits.
func (ps *parser) digits(min, max int) (int, error) {
	v, n := 0, 0
	for n < max && ps.pos < len(ps.text) {
		c := ps.text[ps.pos]
		if c < '0' || c > '9' {
			break
		}
		v = v*10 + int(c-'0')
		ps.pos++
		n++
	}
	if n < min {
		return 0, ps.errorf("want at least %d digits, got %d", min, n)
	}
	return v, nil
}

// number reads a field of the given pattern width: exactly width digits
// if width > 1, else one to max digits.
func (ps *parser) number(width, max int) (int, error) {
	if width > 1 {
		return ps.digits(width, width)
	}
	return ps.digits(1, max)
}

// name matches the longest of names at the current position and returns
// its index.
func (ps *parser) name(names []string, what string) (int, error) {
	best, bestLen := -1, 0
	rest := ps.text[ps.pos:]
	for i, n := range names {
		if len(n) > bestLen && len(n) <= len(rest) && strings.EqualFold(rest[:len(n)], n) {
			best, bestLen = i, len(n)
		}
	}
	if best < 0 {
		return 0, ps.errorf("want %s name", what)
	}
	ps.pos += bestLen
	return best, nil
}

func (ps *parser) token(t token, adjacent bool) error {
	switch t.kind {
	case tokLiteral:
		if !strings.HasPrefix(ps.text[ps.pos:], t.text) {
			return ps.errorf("want %q", t.text)
		}
		ps.pos += len(t.text)
		return nil

	case tokYear:
		sign := 1
		if ps.pos < len(ps.text) {
			switch ps.text[ps.pos] {
			case '-':
				sign = -1
				ps.pos++
			case '+':
				ps.pos++
			}
		}
		max := 9
		if adjacent && t.width > 1 {
			max = t.width
		}
		v, err := ps.digits(t.width, max)
		if err != nil {
			return err
		}
		return ps.set(tokYear, sign*v)

	case tokYear2:
		v, err := ps.digits(2, 2)
		if err != nil {
			return err
		}
		return ps.set(tokYear, 2000+v)

	case tokMonth, tokDay, tokHour, tokHour12, tokMinute, tokSecond:
		v, err := ps.number(t.width, 2)
		if err != nil {
			return err
		}
		return ps.set(t.kind, v)

	case tokDayOfYear:
		v, err := ps.digits(t.width, 3)
		if err != nil {
			return err
		}
		return ps.set(tokDayOfYear, v)

	case tokMonthText:
		names := ps.p.loc.MonthsShort
		if t.width == 4 {
			names = ps.p.loc.Months
		}
		i, err := ps.name(names, "month")
		if err != nil {
			return err
		}
		return ps.set(tokMonth, i+1)

	case tokWeekday:
		names := ps.p.loc.WeekdaysShort
		if t.width == 4 {
			names = ps.p.loc.Weekdays
		}
		i, err := ps.name(names, "weekday")
		if err != nil {
			return err
		}
		return ps.set(tokWeekday, i+1)

	case tokAmPm:
		i, err := ps.name(ps.p.loc.AmPm, "AM/PM")
		if err != nil {
			return err
		}
		return ps.set(tokAmPm, i)

	case tokFraction:
		v, err := ps.digits(t.width, t.width)
		if err != nil {
			return err
		}
		for i := t.width; i < 9; i++ {
			v *= 10
		}
		return ps.set(tokNano, v)

	case tokNano:
		v, err := ps.digits(1, 9)
		if err != nil {
			return err
		}
		return ps.set(tokNano, v)

	case tokOffsetZ, tokOffset:
		return ps.offsetField(t)

	case tokZoneID:
		start := ps.pos
		for ps.pos < len(ps.text) && isZoneIDByte(ps.text[ps.pos]) {
			ps.pos++
		}
		if ps.pos == start {
			return ps.errorf("want zone id")
		}
		ps.zone = ps.text[start:ps.pos]
		return nil
	}
	panic(fmt.Sprintf("unexpected token kind %d", t.kind))
}

func (ps *parser) offsetField(t token) error {
	if t.kind == tokOffsetZ && ps.pos < len(ps.text) && ps.text[ps.pos] == 'Z' {
		ps.pos++
		ps.offset, ps.hasOffset = 0, true
		return nil
	}
	start := ps.pos
	sign := 1
	switch {
	case strings.HasPrefix(ps.text[ps.pos:], "+"):
	case strings.HasPrefix(ps.text[ps.pos:], "-"):
		sign = -1
	default:
		return ps.errorf("want zone offset")
	}
	ps.pos++
	h, err := ps.digits(2, 2)
	if err != nil {
		return err
	}
	var m int
	switch t.width {
	case 1:
		if ps.pos < len(ps.text) && '0' <= ps.text[ps.pos] && ps.text[ps.pos] <= '9' {
			m, err = ps.digits(2, 2)
		}
	case 2:
		m, err = ps.digits(2, 2)
	case 3:
		if !strings.HasPrefix(ps.text[ps.pos:], ":") {
			return ps.errorf("want ':' in zone offset")
		}
		ps.pos++
		m, err = ps.digits(2, 2)
	}
	if err != nil {
		return err
	}
	off, err := calendar.OffsetOf(sign*h, sign*m, 0)
	if err != nil {
		ps.pos = start
		return ps.wrap(err)
	}
	if ps.hasOffset && ps.offset != off {
		return ps.errorf("conflicting zone offsets %s and %s", ps.offset, off)
	}
	ps.offset, ps.hasOffset = off, true
	return nil
}

func isZoneIDByte(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' ||
		c == '/' || c == '_' || c == '-' || c == '+' || c == ':'
}

// resolve combines the parsed fields into a date, a time, an offset and
// a zone id, checking that redundant fields agree.
func (ps *parser) resolve() (*Parsed, error) {
	r := &Parsed{
		text:      ps.text,
		layout:    ps.p.src,
		offset:    ps.offset,
		hasOffset: ps.hasOffset,
		zone:      ps.zone,
	}
	y, hasYear := ps.vals[tokYear]
	if m, ok := ps.vals[tokMonth]; ok && hasYear {
		if d, ok := ps.vals[tokDay]; ok {
			date, err := calendar.NewDate(y, calendar.Month(m), d)
			if err != nil {
				return nil, ps.wrap(err)
			}
			r.date, r.hasDate = date, true
		}
	}
	if n, ok := ps.vals[tokDayOfYear]; ok && hasYear {
		first, err := calendar.NewDate(y, calendar.January, 1)
		if err != nil {
			return nil, ps.wrap(err)
		}
		if n < 1 || n > first.LengthOfYear() {
			return nil, ps.errorf("day of year %d out of range", n)
		}
		date := first.AddDays(int64(n - 1))
		if r.hasDate && date != r.date {
			return nil, ps.errorf("day of year %d does not match %s", n, r.date)
		}
		r.date, r.hasDate = date, true
	}
	if wd, ok := ps.vals[tokWeekday]; ok && r.hasDate && r.date.Weekday() != calendar.Weekday(wd) {
		return nil, ps.errorf("%s is a %s, not a %s", r.date, r.date.Weekday(), calendar.Weekday(wd))
	}

	h, hasHour := ps.vals[tokHour]
	if h12, ok := ps.vals[tokHour12]; ok {
		pm, ok := ps.vals[tokAmPm]
		if !ok {
			return nil, ps.errorf("clock hour without AM/PM marker")
		}
		if h12 < 1 || h12 > 12 {
			return nil, ps.errorf("clock hour %d out of range", h12)
		}
		v := h12%12 + 12*pm
		if hasHour && h != v {
			return nil, ps.errorf("hour %d does not match clock hour %d", h, h12)
		}
		h, hasHour = v, true
	}
	if hasHour {
		t, err := calendar.NewTime(h, ps.vals[tokMinute], ps.vals[tokSecond], ps.vals[tokNano])
		if err != nil {
			return nil, ps.wrap(err)
		}
		r.time, r.hasTime = t, true
	}
	return r, nil
}
