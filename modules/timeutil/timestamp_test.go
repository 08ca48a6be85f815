// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeStamp(t *testing.T) {
	fixed := time.Date(2024, 3, 9, 10, 11, 12, 0, time.UTC)
	Set(fixed)
	defer Unset()

	ts := TimeStampNow()
	assert.EqualValues(t, fixed.Unix(), ts)
	assert.Equal(t, "2024-03-09", ts.FormatDate())
	assert.Equal(t, "Sat, 09 Mar 2024 10:11:12 +0000", ts.FormatLong())
	assert.Equal(t, fixed, ts.AsTime())
	assert.EqualValues(t, fixed.Unix()+3600, ts.AddDuration(time.Hour))
	assert.False(t, ts.IsZero())
	assert.True(t, TimeStamp(0).IsZero())
}

func TestTimeSince(t *testing.T) {
	fixed := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	Set(fixed)
	defer Unset()

	assert.Equal(t, "3 days ago", TimeSince(fixed.Add(-72*time.Hour)))
	assert.Equal(t, "2 hours from now", TimeSince(fixed.Add(2*time.Hour)))
	assert.Equal(t, "never", TimeSinceUnix(0))
	assert.Equal(t, "1 minute ago", TimeSinceUnix(TimeStamp(fixed.Unix()-60)))
}
