// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package casefile

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

type testReporter struct {
	reported []string
}

func (r *testReporter) Errorf(format string, args ...interface{}) {
	r.reported = append(r.reported, fmt.Sprintf(format, args...))
}

func (r *testReporter) assertNone(t *testing.T) {
	t.Helper()
	if len(r.reported) > 0 {
		t.Errorf("reporter expected no errors, got %q", r.reported)
	}
}

func (r *testReporter) assertOne(t *testing.T, want string) {
	t.Helper()
	if len(r.reported) != 1 {
		t.Fatalf("reporter expected 1 error, got %q", r.reported)
	}
	if r.reported[0] != want {
		t.Fatalf("reporter expected %q, got %q", want, r.reported[0])
	}
	r.reported = nil
}

const twoCases = `# bad day
d = date(2023, 2, 29) ### "out of range"
---
x = 1
print(x)
`

func TestRead(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "testdata/a.star", []byte(twoCases), 0o644); err != nil {
		t.Fatal(err)
	}
	reporter := &testReporter{}
	cases := Read(fsys, "testdata/a.star", reporter)
	reporter.assertNone(t)

	if len(cases) != 2 {
		t.Fatalf("got %d cases, want 2", len(cases))
	}
	if got, want := cases[0].Name, "bad day"; got != want {
		t.Errorf("cases[0].Name = %q, want %q", got, want)
	}
	if got, want := cases[1].Name, "testdata/a.star#2"; got != want {
		t.Errorf("cases[1].Name = %q, want %q", got, want)
	}
	if got, want := cases[1].Line, 4; got != want {
		t.Errorf("cases[1].Line = %d, want %d", got, want)
	}
	// The second case is padded so that "x = 1" is on line 4.
	if got, want := cases[1].Source, "\n\n\nx = 1\nprint(x)\n"; got != want {
		t.Errorf("cases[1].Source = %q, want %q", got, want)
	}
	if !cases[0].Expects() || cases[1].Expects() {
		t.Errorf("Expects = %t, %t; want true, false", cases[0].Expects(), cases[1].Expects())
	}

	// Expected error.
	c := cases[0]
	c.GotError(2, "date: day 29 out of range")
	c.Done()
	reporter.assertNone(t)
}

func TestReportedErrors(t *testing.T) {
	reporter := &testReporter{}
	cases := parse("f.star", twoCases, reporter)

	c := cases[0]
	c.GotError(2, "something else")
	reporter.assertOne(t, "\nf.star:2: error \"something else\" does not match pattern \"out of range\"")

	c = parse("f.star", twoCases, reporter)[0]
	c.Done()
	reporter.assertOne(t, "\nf.star:2: expected error matching \"out of range\"")

	c = cases[1]
	c.GotError(5, "boom")
	reporter.assertOne(t, "\nf.star:5: unexpected error: boom")
}

func TestMalformedExpectation(t *testing.T) {
	reporter := &testReporter{}
	parse("f.star", "x ### unquoted\n", reporter)
	reporter.assertOne(t, "\nf.star:1: not a quoted regexp: unquoted")

	parse("f.star", "x ### \"(\"\n", reporter)
	if len(reporter.reported) != 1 {
		t.Fatalf("got %q, want one regexp error", reporter.reported)
	}
}

func TestReadMissing(t *testing.T) {
	reporter := &testReporter{}
	if cases := Read(afero.NewMemMapFs(), "nope.star", reporter); cases != nil {
		t.Errorf("Read of missing file returned %d cases", len(cases))
	}
	if len(reporter.reported) != 1 {
		t.Errorf("got %q, want one error", reporter.reported)
	}
}

func TestGlob(t *testing.T) {
	fsys := afero.NewMemMapFs()
	for _, name := range []string{"testdata/b.star", "testdata/a.star", "testdata/sub/c.star", "testdata/notes.txt"} {
		if err := afero.WriteFile(fsys, name, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got, err := Glob(fsys, "testdata/**/*.star")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"testdata/a.star", "testdata/b.star", "testdata/sub/c.star"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Glob mismatch (-want +got):\n%s", diff)
	}
}
