// Copyright 2019 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package timeutil

import (
	"time"

	"github.com/dustin/go-humanize"
)

func now() time.Time {
	if !mock.IsZero() {
		return mock
	}
	return time.Now()
}

// TimeSince renders a relative time like "3 days ago"
func TimeSince(then time.Time) string {
	return humanize.RelTime(then, now(), "ago", "from now")
}

// TimeSinceUnix is TimeSince for a TimeStamp, a zero TimeStamp renders as "never"
func TimeSinceUnix(then TimeStamp) string {
	if then.IsZero() {
		return "never"
	}
	return TimeSince(then.AsTime())
}
