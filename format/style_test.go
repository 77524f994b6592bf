// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"

	"go.calclock.dev/format"
)

func TestDateStyles(t *testing.T) {
	tags := []string{"en-US", "en-CA", "en-GB", "fr", "de", "es"}
	want := map[format.Style][]string{
		format.Short:  {"2/1/22", "2022-02-01", "01/02/2022", "01/02/2022", "01.02.22", "1/2/22"},
		format.Medium: {"Feb 1, 2022", "Feb. 1, 2022", "1 Feb 2022", "1 févr. 2022", "01.02.2022", "1 feb 2022"},
		format.Long:   {"February 1, 2022", "February 1, 2022", "1 February 2022", "1 février 2022", "1. Februar 2022", "1 de febrero de 2022"},
		format.Full: {
			"Tuesday, February 1, 2022",
			"Tuesday, February 1, 2022",
			"Tuesday, 1 February 2022",
			"mardi 1 février 2022",
			"Dienstag, 1. Februar 2022",
			"martes, 1 de febrero de 2022",
		},
	}
	for style, texts := range want {
		var got []string
		for _, tag := range tags {
			s, err := format.DateStyle(style, language.MustParse(tag)).Format(date)
			if err != nil {
				t.Fatal(err)
			}
			got = append(got, s)
		}
		if diff := cmp.Diff(texts, got); diff != "" {
			t.Errorf("%s date style mismatch (-want +got):\n%s", style, diff)
		}
	}
}

func TestTimeStyles(t *testing.T) {
	z := paris(t)
	for _, test := range []struct {
		tag   string
		style format.Style
		want  string
	}{
		{"en-US", format.Short, "11:15 AM"},
		{"en-US", format.Medium, "11:15:30 AM"},
		{"en-US", format.Long, "11:15:30 AM +02:00"},
		{"en-US", format.Full, "11:15:30 AM +02:00 Europe/Paris"},
		{"en-CA", format.Short, "11:15 a.m."},
		{"en-GB", format.Medium, "11:15:30"},
		{"fr", format.Short, "11:15"},
		{"es", format.Long, "11:15:30 +02:00"},
	} {
		got, err := format.TimeStyle(test.style, language.MustParse(test.tag)).Format(z)
		if err != nil || got != test.want {
			t.Errorf("%s %s time = %q, %v; want %q", test.tag, test.style, got, err, test.want)
		}
	}
	if _, err := format.TimeStyle(format.Long, language.AmericanEnglish).Format(tod); err == nil {
		t.Error("long time style formatted a time without an offset")
	}
}

func TestDateTimeStyle(t *testing.T) {
	for _, test := range []struct {
		tag  language.Tag
		want string
	}{
		{language.AmericanEnglish, "Feb 1, 2022, 6:30 AM"},
		{language.French, "1 févr. 2022 06:30"},
		{language.German, "01.02.2022, 06:30"},
	} {
		got, err := format.DateTimeStyle(format.Medium, format.Short, test.tag).Format(local)
		if err != nil || got != test.want {
			t.Errorf("%s = %q, %v; want %q", test.tag, got, err, test.want)
		}
	}
}

func TestLocaleMatching(t *testing.T) {
	for _, test := range []struct {
		tag  string
		want string
	}{
		{"en", "en-US"},
		{"en-AU", "en-GB"},
		{"fr-CA", "fr"},
		{"de-AT", "de"},
		{"es-MX", "es"},
		{"ja", "en-US"},
	} {
		got := format.MustCompile("MMM").WithLocale(language.MustParse(test.tag)).Locale()
		if got.String() != test.want {
			t.Errorf("WithLocale(%s) chose %s, want %s", test.tag, got, test.want)
		}
	}
	if got := format.MatchLocale("fr-CH, fr;q=0.9, en;q=0.8"); got != language.French {
		t.Errorf("MatchLocale = %s, want fr", got)
	}
	if got := format.MatchLocale("not a language list;;"); got != language.AmericanEnglish {
		t.Errorf("MatchLocale of garbage = %s", got)
	}
	if got := len(format.Locales()); got != 6 {
		t.Errorf("%d locales, want 6", got)
	}
}

func TestParseStyle(t *testing.T) {
	for _, s := range []format.Style{format.Short, format.Medium, format.Long, format.Full} {
		got, err := format.ParseStyle(s.String())
		if err != nil || got != s {
			t.Errorf("ParseStyle(%q) = %v, %v", s, got, err)
		}
	}
	if got, err := format.ParseStyle("medium"); err != nil || got != format.Medium {
		t.Errorf("ParseStyle(medium) = %v, %v", got, err)
	}
	if _, err := format.ParseStyle("tiny"); err == nil {
		t.Error("ParseStyle(tiny) succeeded")
	}
}
