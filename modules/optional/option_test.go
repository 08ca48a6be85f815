// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package optional_test

import (
	"testing"

	"code.kwd.dev/wordfilter/modules/optional"

	"github.com/stretchr/testify/assert"
)

func TestOption(t *testing.T) {
	var uninitialized optional.Option[string]
	assert.False(t, uninitialized.Has())
	assert.Equal(t, "", uninitialized.Value())
	assert.Equal(t, "****", uninitialized.ValueOrDefault("****"))

	none := optional.None[string]()
	assert.False(t, none.Has())

	empty := optional.Some("")
	assert.True(t, empty.Has())
	assert.Equal(t, "", empty.ValueOrDefault("****"))

	s := "bad"
	assert.Equal(t, "bad", optional.FromPtr(&s).Value())
	assert.False(t, optional.FromPtr[string](nil).Has())

	assert.False(t, optional.FromNonDefault("").Has())
	assert.True(t, optional.FromNonDefault("x").Has())
}
