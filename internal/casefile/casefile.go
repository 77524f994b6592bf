// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package casefile reads script test files made of several cases.
//
// Cases are separated by "---" lines. A case may start with a comment
// line "# name" that names it. A line containing "###" expects the case
// to fail on that line: the text after the marker is a Go string literal
// holding a regular expression that the error message must match.
//
//	# leap day
//	d = calendar.date(2024, 2, 29)
//	---
//	# no such day
//	calendar.date(2023, 2, 29) ### "day 29 out of range"
//
// A test runs each case, reports each error with GotError, then calls
// Done, which reports expected errors that did not occur.
package casefile // import "go.calclock.dev/internal/casefile"

import (
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// A Case is one script of a case file.
type Case struct {
	Name     string
	Source   string // padded with newlines so line numbers match the file
	Line     int    // first line of the case in the file
	filename string
	report   Reporter
	wantErrs map[int]*regexp.Regexp
}

// Reporter is implemented by *testing.T.
type Reporter interface {
	Errorf(format string, args ...interface{})
}

// Glob returns the sorted names of the files in fsys matching pattern,
// such as "testdata/*.star".
func Glob(fsys afero.Fs, pattern string) ([]string, error) {
	names, err := doublestar.Glob(afero.NewIOFS(fsys), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Read reads a case file from fsys and returns its cases, reporting
// malformed expectations with report.
func Read(fsys afero.Fs, filename string, report Reporter) []Case {
	data, err := afero.ReadFile(fsys, filename)
	if err != nil {
		report.Errorf("%s", err)
		return nil
	}
	return parse(filename, string(data), report)
}

// ReadFS is like Read for a standard file system, such as an embed.FS.
func ReadFS(fsys fs.FS, filename string, report Reporter) []Case {
	data, err := fs.ReadFile(fsys, filename)
	if err != nil {
		report.Errorf("%s", err)
		return nil
	}
	return parse(filename, string(data), report)
}

func parse(filename, data string, report Reporter) (cases []Case) {
	data = strings.ReplaceAll(data, "\r\n", "\n")
	linenum := 1
	for i, text := range strings.Split(data, "\n---\n") {
		c := Case{
			Name:     fmt.Sprintf("%s#%d", filename, i+1),
			Source:   strings.Repeat("\n", linenum-1) + text,
			Line:     linenum,
			filename: filename,
			report:   report,
			wantErrs: make(map[int]*regexp.Regexp),
		}
		for j, line := range strings.Split(text, "\n") {
			if j == 0 && strings.HasPrefix(line, "# ") {
				c.Name = strings.TrimSpace(line[2:])
			}
			if rx, ok := expectation(filename, linenum, line, report); ok {
				c.wantErrs[linenum] = rx
			}
			linenum++
		}
		linenum++ // the separator
		cases = append(cases, c)
	}
	return cases
}

func expectation(filename string, linenum int, line string, report Reporter) (*regexp.Regexp, bool) {
	hashes := strings.Index(line, "###")
	if hashes < 0 {
		return nil, false
	}
	rest := strings.TrimSpace(line[hashes+len("###"):])
	pattern, err := strconv.Unquote(rest)
	if err != nil {
		report.Errorf("\n%s:%d: not a quoted regexp: %s", filename, linenum, rest)
		return nil, false
	}
	rx, err := regexp.Compile(pattern)
	if err != nil {
		report.Errorf("\n%s:%d: %v", filename, linenum, err)
		return nil, false
	}
	return rx, true
}

// Expects reports whether the case expects an error on any line.
func (c *Case) Expects() bool { return len(c.wantErrs) > 0 }

// GotError reports an error at a particular line; errors nobody
// expected are reported to the case's reporter.
func (c *Case) GotError(linenum int, msg string) {
	rx, ok := c.wantErrs[linenum]
	if !ok {
		c.report.Errorf("\n%s:%d: unexpected error: %v", c.filename, linenum, msg)
		return
	}
	delete(c.wantErrs, linenum)
	if !rx.MatchString(msg) {
		c.report.Errorf("\n%s:%d: error %q does not match pattern %q", c.filename, linenum, msg, rx)
	}
}

// Done reports expected errors that did not occur.
func (c *Case) Done() {
	for linenum, rx := range c.wantErrs {
		c.report.Errorf("\n%s:%d: expected error matching %q", c.filename, linenum, rx)
	}
}
