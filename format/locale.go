// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	_ "embed"
	"fmt"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

//go:embed locales.yaml
var localesYAML []byte

// A locale holds the names and style patterns of one language.
type locale struct {
	Tag           string            `yaml:"tag"`
	Months        []string          `yaml:"months"`
	MonthsShort   []string          `yaml:"months_short"`
	Weekdays      []string          `yaml:"weekdays"`
	WeekdaysShort []string          `yaml:"weekdays_short"`
	AmPm          []string          `yaml:"ampm"`
	Date          map[string]string `yaml:"date"`
	Time          map[string]string `yaml:"time"`
	DateTime      string            `yaml:"datetime"`

	tag language.Tag
}

var (
	locales = mustLoadLocales(localesYAML)
	matcher = newMatcher(locales)
)

func mustLoadLocales(data []byte) []*locale {
	locs, err := loadLocales(data)
	if err != nil {
		panic(err)
	}
	return locs
}

func loadLocales(data []byte) ([]*locale, error) {
	var locs []*locale
	if err := yaml.UnmarshalStrict(data, &locs); err != nil {
		return nil, fmt.Errorf("locale table: %v", err)
	}
	if len(locs) == 0 {
		return nil, fmt.Errorf("locale table is empty")
	}
	for _, loc := range locs {
		tag, err := language.Parse(loc.Tag)
		if err != nil {
			return nil, fmt.Errorf("locale %q: %v", loc.Tag, err)
		}
		loc.tag = tag
		switch {
		case len(loc.Months) != 12 || len(loc.MonthsShort) != 12:
			return nil, fmt.Errorf("locale %s: want 12 month names", loc.Tag)
		case len(loc.Weekdays) != 7 || len(loc.WeekdaysShort) != 7:
			return nil, fmt.Errorf("locale %s: want 7 weekday names", loc.Tag)
		case len(loc.AmPm) != 2:
			return nil, fmt.Errorf("locale %s: want 2 AM/PM markers", loc.Tag)
		}
		for _, s := range styles {
			if loc.Date[s.key()] == "" || loc.Time[s.key()] == "" {
				return nil, fmt.Errorf("locale %s: missing %s style", loc.Tag, s)
			}
		}
	}
	return locs, nil
}

func newMatcher(locs []*locale) language.Matcher {
	tags := make([]language.Tag, len(locs))
	for i, loc := range locs {
		tags[i] = loc.tag
	}
	return language.NewMatcher(tags)
}

// lookupLocale returns the supported locale closest to tag, falling
// back to the default locale.
func lookupLocale(tag language.Tag) *locale {
	_, i, conf := matcher.Match(tag)
	if conf == language.No {
		return locales[0]
	}
	return locales[i]
}

// Locales returns the tags of the supported locales. The first is the
// default.
func Locales() []language.Tag {
	tags := make([]language.Tag, len(locales))
	for i, loc := range locales {
		tags[i] = loc.tag
	}
	return tags
}

// MatchLocale returns the supported locale that best matches the
// preferences in s, an Accept-Language style list such as
// "fr-CH, fr;q=0.9, en;q=0.8".
func MatchLocale(s string) language.Tag {
	prefs, _, err := language.ParseAcceptLanguage(s)
	if err != nil || len(prefs) == 0 {
		return locales[0].tag
	}
	_, i, conf := matcher.Match(prefs...)
	if conf == language.No {
		return locales[0].tag
	}
	return locales[i].tag
}
