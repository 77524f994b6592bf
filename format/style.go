// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// A Style selects one of a locale's predefined patterns.
type Style int

const (
	Short Style = iota
	Medium
	Long
	Full
)

var styles = [...]Style{Short, Medium, Long, Full}

var styleNames = [...]string{"SHORT", "MEDIUM", "LONG", "FULL"}

func (s Style) String() string {
	if s >= Short && s <= Full {
		return styleNames[s]
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

func (s Style) key() string { return strings.ToLower(s.String()) }

// ParseStyle returns the style with the given name, ignoring case.
func ParseStyle(name string) (Style, error) {
	for _, s := range styles {
		if strings.EqualFold(name, styleNames[s]) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown format style %q", name)
}

// DateStyle returns the locale's date pattern of the given style.
//
//	DateStyle(Medium, language.AmericanEnglish) // "MMM d, y": Feb 1, 2022
func DateStyle(s Style, tag language.Tag) *Pattern {
	loc := lookupLocale(tag)
	return mustCompileIn(loc.Date[s.key()], loc)
}

// TimeStyle returns the locale's time pattern of the given style.
// The Long and Full styles include the offset and so format only zoned
// values.
func TimeStyle(s Style, tag language.Tag) *Pattern {
	loc := lookupLocale(tag)
	return mustCompileIn(loc.Time[s.key()], loc)
}

// DateTimeStyle returns the locale's date and time patterns joined in
// the locale's order.
func DateTimeStyle(date, time Style, tag language.Tag) *Pattern {
	loc := lookupLocale(tag)
	pattern := strings.NewReplacer(
		"{1}", loc.Date[date.key()],
		"{0}", loc.Time[time.key()],
	).Replace(loc.DateTime)
	return mustCompileIn(pattern, loc)
}

func mustCompileIn(pattern string, loc *locale) *Pattern {
	p, err := compile(pattern, loc)
	if err != nil {
		panic(fmt.Sprintf("locale %s: %v", loc.Tag, err))
	}
	return p
}
