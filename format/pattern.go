// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"go.calclock.dev/calendar"
)

// ErrMissingField is wrapped by Format errors when a pattern needs a
// field the value does not have, such as an hour for a Date.
var ErrMissingField = errors.New("value has no such field")

type kind uint8

const (
	tokLiteral   kind = iota
	tokYear           // y, u
	tokYear2          // yy, uu
	tokMonth          // M, MM
	tokMonthText      // MMM, MMMM
	tokDay            // d, dd
	tokDayOfYear      // D, DD, DDD
	tokWeekday        // E..EEEE
	tokHour           // H, HH
	tokHour12         // h, hh
	tokAmPm           // a
	tokMinute         // m, mm
	tokSecond         // s, ss
	tokFraction       // S..SSSSSSSSS
	tokNano           // n
	tokOffsetZ        // X, XX, XXX
	tokOffset         // x, xx, xxx
	tokZoneID         // VV
)

type token struct {
	kind  kind
	width int
	text  string // literal text
}

func (t token) numeric() bool {
	switch t.kind {
	case tokLiteral, tokMonthText, tokWeekday, tokAmPm, tokOffsetZ, tokOffset, tokZoneID:
		return false
	}
	return true
}

func (t token) needs() string {
	switch t.kind {
	case tokYear, tokYear2, tokMonth, tokMonthText, tokDay, tokDayOfYear, tokWeekday:
		return "date"
	case tokHour, tokHour12, tokAmPm, tokMinute, tokSecond, tokFraction, tokNano:
		return "time"
	case tokOffsetZ, tokOffset:
		return "offset"
	case tokZoneID:
		return "zone"
	}
	return ""
}

// A Pattern is a compiled formatting pattern such as "yyyy-MM-dd HH:mm".
//
// Letters are pattern fields and the repeat count selects the form:
//
//	y, u      year; yy is the two-digit year 2000-2099
//	M         month: M 2, MM 02, MMM Feb, MMMM February
//	d         day of month: d 1, dd 01
//	D         day of year
//	E         weekday: E, EE, EEE Tue, EEEE Tuesday
//	H, h      hour 0-23, clock hour 1-12 (with a for AM/PM)
//	m, s      minute, second
//	S         fraction of second, one to nine digits
//	n         nanosecond of second
//	X, x      offset: X +01, XX +0100, XXX +01:00; X uses Z for zero
//	VV        zone id, Europe/Paris
//
// Text in single quotes is literal, and ” is a single quote. Other
// letters are reserved; other characters are copied.
//
// A Pattern is immutable and safe for concurrent use.
type Pattern struct {
	src    string
	tokens []token
	loc    *locale
}

var _ Formatter = (*Pattern)(nil)

// Compile compiles a pattern in the default locale.
func Compile(pattern string) (*Pattern, error) {
	return compile(pattern, locales[0])
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

func compile(src string, loc *locale) (*Pattern, error) {
	p := &Pattern{src: src, loc: loc}
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '\'':
			j := i + 1
			var lit strings.Builder
			for {
				if j >= len(src) {
					return nil, fmt.Errorf("pattern %q: unterminated quote at %d", src, i)
				}
				if src[j] == '\'' {
					if j+1 < len(src) && src[j+1] == '\'' {
						lit.WriteByte('\'')
						j += 2
						continue
					}
					break
				}
				lit.WriteByte(src[j])
				j++
			}
			if j == i+1 {
				lit.WriteByte('\'') // ''
			}
			p.literal(lit.String())
			i = j + 1
		case 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z':
			j := i
			for j < len(src) && src[j] == c {
				j++
			}
			t, err := letter(c, j-i)
			if err != nil {
				return nil, fmt.Errorf("pattern %q: %v", src, err)
			}
			p.tokens = append(p.tokens, t)
			i = j
		default:
			p.literal(string(c))
			i++
		}
	}
	return p, nil
}

func (p *Pattern) literal(s string) {
	if n := len(p.tokens); n > 0 && p.tokens[n-1].kind == tokLiteral {
		p.tokens[n-1].text += s
		return
	}
	p.tokens = append(p.tokens, token{kind: tokLiteral, text: s})
}

func letter(c byte, n int) (token, error) {
	maxN := 2
	var k kind
	switch c {
	case 'y', 'u':
		k, maxN = tokYear, 9
		if n == 2 {
			k = tokYear2
		}
	case 'M':
		k, maxN = tokMonth, 4
		if n >= 3 {
			k = tokMonthText
		}
	case 'd':
		k = tokDay
	case 'D':
		k, maxN = tokDayOfYear, 3
	case 'E':
		k, maxN = tokWeekday, 4
	case 'H':
		k = tokHour
	case 'h':
		k = tokHour12
	case 'a':
		k, maxN = tokAmPm, 1
	case 'm':
		k = tokMinute
	case 's':
		k = tokSecond
	case 'S':
		k, maxN = tokFraction, 9
	case 'n':
		k, maxN = tokNano, 1
	case 'X':
		k, maxN = tokOffsetZ, 3
	case 'x':
		k, maxN = tokOffset, 3
	case 'V':
		if n != 2 {
			return token{}, fmt.Errorf("zone id must be VV")
		}
		k = tokZoneID
	default:
		return token{}, fmt.Errorf("unknown pattern letter %q", c)
	}
	if n > maxN {
		return token{}, fmt.Errorf("too many pattern letters %q", strings.Repeat(string(c), n))
	}
	return token{kind: k, width: n}, nil
}

// String returns the source text of the pattern.
func (p *Pattern) String() string { return p.src }

// Locale returns the tag of the locale used for text fields.
func (p *Pattern) Locale() language.Tag { return p.loc.tag }

// WithLocale returns a copy of p that uses the supported locale closest
// to tag for month names, weekday names and AM/PM markers.
func (p *Pattern) WithLocale(tag language.Tag) *Pattern {
	q := *p
	q.loc = lookupLocale(tag)
	return &q
}

// fields are the parts of a value available to a pattern.
type fields struct {
	date      calendar.Date
	time      calendar.TimeOfDay
	offset    calendar.Offset
	zone      string
	hasDate   bool
	hasTime   bool
	hasOffset bool
}

func fieldsOf(v calendar.Temporal) fields {
	switch v := v.(type) {
	case calendar.Date:
		return fields{date: v, hasDate: true}
	case calendar.TimeOfDay:
		return fields{time: v, hasTime: true}
	case calendar.DateTime:
		return fields{date: v.Date(), time: v.Time(), hasDate: true, hasTime: true}
	case calendar.ZonedDateTime:
		return fields{
			date:      v.Date(),
			time:      v.Time(),
			offset:    v.Offset(),
			zone:      v.ZoneID(),
			hasDate:   true,
			hasTime:   true,
			hasOffset: true,
		}
	}
	return fields{}
}

func (f *fields) has(what string) bool {
	switch what {
	case "date":
		return f.hasDate
	case "time":
		return f.hasTime
	case "offset", "zone":
		return f.hasOffset
	}
	return true
}

// Format formats v, which must have every field the pattern uses.
func (p *Pattern) Format(v calendar.Temporal) (string, error) {
	f := fieldsOf(v)
	b := make([]byte, 0, len(p.src)+16)
	for _, t := range p.tokens {
		if what := t.needs(); !f.has(what) {
			return "", fmt.Errorf("format %s with %q: %T has no %s: %w", v, p.src, v, what, ErrMissingField)
		}
		b = p.appendToken(b, t, &f)
	}
	return string(b), nil
}

func (p *Pattern) appendToken(b []byte, t token, f *fields) []byte {
	switch t.kind {
	case tokLiteral:
		return append(b, t.text...)
	case tokYear:
		y := f.date.Year()
		switch {
		case y < 0:
			b = append(b, '-')
			y = -y
		case t.width >= 4 && y > 9999:
			b = append(b, '+')
		}
		return appendPadded(b, y, t.width)
	case tokYear2:
		return appendPadded(b, int(floorMod(int64(f.date.Year()), 100)), 2)
	case tokMonth:
		return appendPadded(b, int(f.date.Month()), t.width)
	case tokMonthText:
		names := p.loc.MonthsShort
		if t.width == 4 {
			names = p.loc.Months
		}
		return append(b, names[f.date.Month()-1]...)
	case tokDay:
		return appendPadded(b, f.date.Day(), t.width)
	case tokDayOfYear:
		return appendPadded(b, f.date.DayOfYear(), t.width)
	case tokWeekday:
		names := p.loc.WeekdaysShort
		if t.width == 4 {
			names = p.loc.Weekdays
		}
		return append(b, names[f.date.Weekday()-1]...)
	case tokHour:
		return appendPadded(b, f.time.Hour(), t.width)
	case tokHour12:
		h := f.time.Hour() % 12
		if h == 0 {
			h = 12
		}
		return appendPadded(b, h, t.width)
	case tokAmPm:
		return append(b, p.loc.AmPm[f.time.Hour()/12]...)
	case tokMinute:
		return appendPadded(b, f.time.Minute(), t.width)
	case tokSecond:
		return appendPadded(b, f.time.Second(), t.width)
	case tokFraction:
		digits := appendPadded(nil, f.time.Nanosecond(), 9)
		return append(b, digits[:t.width]...)
	case tokNano:
		return strconv.AppendInt(b, int64(f.time.Nanosecond()), 10)
	case tokOffsetZ, tokOffset:
		return appendOffset(b, f.offset, t.width, t.kind == tokOffsetZ)
	case tokZoneID:
		return append(b, f.zone...)
	}
	panic(fmt.Sprintf("unexpected token kind %d", t.kind))
}

func appendPadded(b []byte, v, width int) []byte {
	s := strconv.Itoa(v)
	for i := len(s); i < width; i++ {
		b = append(b, '0')
	}
	return append(b, s...)
}

// appendOffset writes off as +HH (width 1, with minutes if non-zero),
// +HHMM (width 2) or +HH:MM (width 3). With z, a zero offset is "Z".
func appendOffset(b []byte, off calendar.Offset, width int, z bool) []byte {
	secs := off.Seconds()
	if secs == 0 && z {
		return append(b, 'Z')
	}
	if secs < 0 {
		b = append(b, '-')
		secs = -secs
	} else {
		b = append(b, '+')
	}
	h, m := secs/3600, secs/60%60
	b = appendPadded(b, h, 2)
	switch {
	case width == 3:
		b = append(b, ':')
		b = appendPadded(b, m, 2)
	case width == 2 || m != 0:
		b = appendPadded(b, m, 2)
	}
	return b
}

func floorMod(x, y int64) int64 {
	m := x % y
	if m < 0 {
		m += y
	}
	return m
}
