// Copyright 2017 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package timeutil

import (
	"time"
)

// TimeStamp defines a timestamp
type TimeStamp int64

var (
	// mock is NOT concurrency-safe!!
	mock time.Time

	// Used for IsZero, to check if timestamp is the zero time instant.
	timeZeroUnix = time.Time{}.Unix()
)

// Set sets the time to a mocked time.Time
func Set(now time.Time) {
	mock = now
}

// Unset will unset the mocked time.Time
func Unset() {
	mock = time.Time{}
}

// TimeStampNow returns now int64
func TimeStampNow() TimeStamp {
	if !mock.IsZero() {
		return TimeStamp(mock.Unix())
	}
	return TimeStamp(time.Now().Unix())
}

// AddDuration adds time.Duration and return sum
func (ts TimeStamp) AddDuration(interval time.Duration) TimeStamp {
	return ts + TimeStamp(interval/time.Second)
}

// AsTime convert timestamp as time.Time in UTC
func (ts TimeStamp) AsTime() time.Time {
	return time.Unix(int64(ts), 0).UTC()
}

// Format formats timestamp as given format
func (ts TimeStamp) Format(f string) string {
	return ts.AsTime().Format(f)
}

// FormatLong formats as RFC1123Z
func (ts TimeStamp) FormatLong() string {
	return ts.Format(time.RFC1123Z)
}

// FormatDate formats a date in YYYY-MM-DD
func (ts TimeStamp) FormatDate() string {
	return ts.Format(time.DateOnly)
}

// IsZero is zero time
func (ts TimeStamp) IsZero() bool {
	return int64(ts) == 0 || int64(ts) == timeZeroUnix
}
