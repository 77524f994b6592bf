// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package calendarpb converts calendar values to and from the protocol
// buffer well-known types google.protobuf.Timestamp and
// google.protobuf.Duration.
package calendarpb // import "go.calclock.dev/calendarpb"

import (
	"fmt"

	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"go.calclock.dev/calendar"
)

// ToTimestamp returns the Timestamp of an instant. The result may be
// invalid (see Timestamp.CheckValid) for instants outside years
// 0001 to 9999.
func ToTimestamp(i calendar.Instant) *timestamppb.Timestamp {
	return &timestamppb.Timestamp{Seconds: i.EpochSecond(), Nanos: int32(i.Nano())}
}

// ZonedToTimestamp returns the Timestamp of the instant z denotes.
func ZonedToTimestamp(z calendar.ZonedDateTime) *timestamppb.Timestamp {
	return ToTimestamp(z.Instant())
}

// FromTimestamp returns the instant of a valid Timestamp.
func FromTimestamp(ts *timestamppb.Timestamp) (calendar.Instant, error) {
	if err := ts.CheckValid(); err != nil {
		return calendar.Instant{}, fmt.Errorf("calendarpb: %w", err)
	}
	return calendar.InstantOf(ts.GetSeconds(), int64(ts.GetNanos())), nil
}

// maxDurationSeconds is the range of google.protobuf.Duration, about
// 10,000 years.
const maxDurationSeconds = 315576000000

// ToDuration returns the Duration message for d, or an error if d is
// outside the message's range of about ±10,000 years.
func ToDuration(d calendar.Duration) (*durationpb.Duration, error) {
	sec, nsec := d.Seconds(), int32(d.Nano())
	// The message's nanos take the sign of its seconds.
	if sec < 0 && nsec > 0 {
		sec++
		nsec -= 1e9
	}
	if sec > maxDurationSeconds || sec < -maxDurationSeconds {
		return nil, fmt.Errorf("calendarpb: duration %s out of range", d)
	}
	return &durationpb.Duration{Seconds: sec, Nanos: nsec}, nil
}

// FromDuration returns the duration of a valid Duration message.
func FromDuration(m *durationpb.Duration) (calendar.Duration, error) {
	if err := m.CheckValid(); err != nil {
		return calendar.Duration{}, fmt.Errorf("calendarpb: %w", err)
	}
	return calendar.DurationOf(m.GetSeconds(), int64(m.GetNanos())), nil
}
