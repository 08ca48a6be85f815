// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package context

import (
	"testing"

	"code.kwd.dev/wordfilter/modules/session"

	"github.com/stretchr/testify/assert"
)

func TestFlash(t *testing.T) {
	store := session.NewMemoryStore("sid")

	f := &Flash{store: store}
	f.Error("Invalid nonce.", true)
	assert.Equal(t, "Invalid nonce.", f.ErrorMsg)
	assert.Nil(t, store.Get(sessionKeyFlashError))

	f.Success("Settings saved.")
	assert.Empty(t, f.SuccessMsg)
	assert.Equal(t, "Settings saved.", store.Get(sessionKeyFlashSuccess))

	next := &Flash{store: store}
	next.load()
	assert.Equal(t, "Settings saved.", next.SuccessMsg)
	assert.Empty(t, next.ErrorMsg)
	assert.Nil(t, store.Get(sessionKeyFlashSuccess))

	again := &Flash{store: store}
	again.load()
	assert.Empty(t, again.SuccessMsg)
}
