// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

// This file defines the ISO-8601 text forms shared by String and the
// Parse functions of every value type.

import (
	"errors"
	"fmt"
)

// A scanner reads ISO-8601 fields from the front of text.
// Every failure is reported as a *ParseError carrying the layout.
type scanner struct {
	text   string
	pos    int
	layout string
}

func (s *scanner) errorf(format string, args ...interface{}) error {
	return &ParseError{Text: s.text, Layout: s.layout, Offset: s.pos, Msg: fmt.Sprintf(format, args...)}
}

func (s *scanner) wrap(at int, err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		return err
	}
	return &ParseError{Text: s.text, Layout: s.layout, Offset: at, Msg: err.Error(), Err: err}
}

func (s *scanner) peek() byte {
	if s.pos < len(s.text) {
		return s.text[s.pos]
	}
	return 0
}

func (s *scanner) accept(c byte) bool {
	if s.peek() == c && s.pos < len(s.text) {
		s.pos++
		return true
	}
	return false
}

func (s *scanner) expect(c byte) error {
	if !s.accept(c) {
		if s.pos >= len(s.text) {
			return s.errorf("unexpected end of text, want %q", c)
		}
		return s.errorf("unexpected %q, want %q", s.text[s.pos], c)
	}
	return nil
}

func (s *scanner) end() error {
	if s.pos != len(s.text) {
		return s.errorf("unparsed text %q", s.text[s.pos:])
	}
	return nil
}

// digits reads between min and max decimal digits and returns their value
// and count.
func (s *scanner) digits(min, max int) (int, int, error) {
	v, n := 0, 0
	for n < max && s.pos < len(s.text) {
		c := s.text[s.pos]
		if c < '0' || c > '9' {
			break
		}
		v = v*10 + int(c-'0')
		s.pos++
		n++
	}
	if n < min {
		return 0, n, s.errorf("want at least %d digits, got %d", min, n)
	}
	return v, n, nil
}

func (s *scanner) fixed(width int) (int, error) {
	v, _, err := s.digits(width, width)
	return v, err
}

// year reads a four-digit year, or a signed year of four to nine digits.
func (s *scanner) year() (int, error) {
	sign, signed := 1, false
	switch s.peek() {
	case '+':
		s.pos++
		signed = true
	case '-':
		s.pos++
		sign, signed = -1, true
	}
	start := s.pos
	v, n, err := s.digits(4, 9)
	if err != nil {
		return 0, err
	}
	if n > 4 && !signed {
		s.pos = start
		return 0, s.errorf("year of more than four digits must have a sign")
	}
	return sign * v, nil
}

func (s *scanner) date() (Date, error) {
	start := s.pos
	y, err := s.year()
	if err != nil {
		return Date{}, err
	}
	if err := s.expect('-'); err != nil {
		return Date{}, err
	}
	m, err := s.fixed(2)
	if err != nil {
		return Date{}, err
	}
	if err := s.expect('-'); err != nil {
		return Date{}, err
	}
	d, err := s.fixed(2)
	if err != nil {
		return Date{}, err
	}
	date, err := NewDate(y, Month(m), d)
	if err != nil {
		return Date{}, s.wrap(start, err)
	}
	return date, nil
}

func (s *scanner) timeOfDay() (TimeOfDay, error) {
	start := s.pos
	h, err := s.fixed(2)
	if err != nil {
		return TimeOfDay{}, err
	}
	if err := s.expect(':'); err != nil {
		return TimeOfDay{}, err
	}
	m, err := s.fixed(2)
	if err != nil {
		return TimeOfDay{}, err
	}
	var sec, nano int
	if s.accept(':') {
		if sec, err = s.fixed(2); err != nil {
			return TimeOfDay{}, err
		}
		if s.accept('.') || s.accept(',') {
			if nano, err = s.fraction(); err != nil {
				return TimeOfDay{}, err
			}
		}
	}
	t, err := NewTime(h, m, sec, nano)
	if err != nil {
		return TimeOfDay{}, s.wrap(start, err)
	}
	return t, nil
}

// fraction reads one to nine digits of a decimal fraction of a second
// and returns it in nanoseconds.
func (s *scanner) fraction() (int, error) {
	v, n, err := s.digits(1, 9)
	if err != nil {
		return 0, err
	}
	for ; n < 9; n++ {
		v *= 10
	}
	return v, nil
}

func (s *scanner) dateTime() (DateTime, error) {
	d, err := s.date()
	if err != nil {
		return DateTime{}, err
	}
	if !s.accept('T') && !s.accept('t') {
		return DateTime{}, s.expect('T')
	}
	t, err := s.timeOfDay()
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{d, t}, nil
}

// offset reads "Z" or ±HH:MM[:SS].
func (s *scanner) offset() (Offset, error) {
	start := s.pos
	if s.accept('Z') || s.accept('z') {
		return 0, nil
	}
	sign := 1
	switch {
	case s.accept('+'):
	case s.accept('-'):
		sign = -1
	default:
		return 0, s.errorf("want zone offset")
	}
	h, err := s.fixed(2)
	if err != nil {
		return 0, err
	}
	if err := s.expect(':'); err != nil {
		return 0, err
	}
	m, err := s.fixed(2)
	if err != nil {
		return 0, err
	}
	var sec int
	if s.accept(':') {
		if sec, err = s.fixed(2); err != nil {
			return 0, err
		}
	}
	off, err := OffsetOf(sign*h, sign*m, sign*sec)
	if err != nil {
		return 0, s.wrap(start, err)
	}
	return off, nil
}

// bracketedZone reads "[Zone/Id]" if present.
func (s *scanner) bracketedZone() (string, bool, error) {
	if !s.accept('[') {
		return "", false, nil
	}
	start := s.pos
	for s.pos < len(s.text) && s.text[s.pos] != ']' {
		s.pos++
	}
	id := s.text[start:s.pos]
	if err := s.expect(']'); err != nil {
		return "", false, err
	}
	if id == "" {
		s.pos = start
		return "", false, s.errorf("empty zone id")
	}
	return id, true, nil
}

func appendInt(b []byte, v, width int) []byte {
	var buf [20]byte
	i := len(buf)
	for v >= 10 || width > 1 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
		width--
	}
	i--
	buf[i] = byte('0' + v)
	return append(b, buf[i:]...)
}

func appendYear(b []byte, y int) []byte {
	switch {
	case y > 9999:
		b = append(b, '+')
	case y < 0:
		b = append(b, '-')
		y = -y
	}
	return appendInt(b, y, 4)
}

func appendDate(b []byte, d Date) []byte {
	b = appendYear(b, d.year)
	b = append(b, '-')
	b = appendInt(b, int(d.month), 2)
	b = append(b, '-')
	return appendInt(b, d.day, 2)
}

// appendTime writes HH:mm, then :ss if seconds or nanoseconds are
// non-zero, then the fraction in groups of three digits.
func appendTime(b []byte, t TimeOfDay) []byte {
	b = appendInt(b, t.hour, 2)
	b = append(b, ':')
	b = appendInt(b, t.minute, 2)
	if t.second == 0 && t.nano == 0 {
		return b
	}
	b = append(b, ':')
	b = appendInt(b, t.second, 2)
	switch n := t.nano; {
	case n == 0:
	case n%1000000 == 0:
		b = append(b, '.')
		b = appendInt(b, n/1000000, 3)
	case n%1000 == 0:
		b = append(b, '.')
		b = appendInt(b, n/1000, 6)
	default:
		b = append(b, '.')
		b = appendInt(b, n, 9)
	}
	return b
}

func appendOffset(b []byte, o Offset) []byte {
	if o == 0 {
		return append(b, 'Z')
	}
	secs := int(o)
	if secs < 0 {
		b = append(b, '-')
		secs = -secs
	} else {
		b = append(b, '+')
	}
	b = appendInt(b, secs/3600, 2)
	b = append(b, ':')
	b = appendInt(b, secs/60%60, 2)
	if s := secs % 60; s != 0 {
		b = append(b, ':')
		b = appendInt(b, s, 2)
	}
	return b
}
