// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux || darwin || freebsd

package clock

import (
	"time"

	"golang.org/x/sys/unix"
)

// now reads CLOCK_REALTIME directly, the wall clock the C library's
// time functions use. Instants carry no monotonic reading, so nothing
// is gained from time.Now here except as a fallback if the system call
// fails.
func now() (sec, nsec int64) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_REALTIME, &ts); err != nil {
		t := time.Now()
		return t.Unix(), int64(t.Nanosecond())
	}
	return ts.Unix()
}
