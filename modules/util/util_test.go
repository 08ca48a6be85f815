// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIif(t *testing.T) {
	assert.Equal(t, 1, Iif(true, 1, 2))
	assert.Equal(t, "b", Iif(false, "a", "b"))
}

func TestIfZero(t *testing.T) {
	assert.Equal(t, "def", IfZero("", "def"))
	assert.Equal(t, "v", IfZero("v", "def"))
	assert.Equal(t, 3, IfZero(0, 3))
}

func TestOptionalArg(t *testing.T) {
	foo := func(other any, optArg ...int) int {
		return OptionalArg(optArg)
	}
	bar := func(other any, optArg ...int) int {
		return OptionalArg(optArg, 42)
	}
	assert.Equal(t, 0, foo(nil))
	assert.Equal(t, 100, foo(nil, 100))
	assert.Equal(t, 42, bar(nil))
	assert.Equal(t, 100, bar(nil, 100))
}

func TestCryptoRandomString(t *testing.T) {
	s1, err := CryptoRandomString(32)
	assert.NoError(t, err)
	assert.Len(t, s1, 32)
	s2, err := CryptoRandomString(32)
	assert.NoError(t, err)
	assert.NotEqual(t, s1, s2)
}

func TestSplitTrimSpace(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitTrimSpace(" a , b,,c ", ","))
	assert.Nil(t, SplitTrimSpace("  ", ","))
}

func TestSilentWrap(t *testing.T) {
	err := NewPermissionDeniedErrorf("user %s cannot do that", "alice")
	assert.Equal(t, "user alice cannot do that", err.Error())
	assert.True(t, errors.Is(err, ErrPermissionDenied))
	assert.False(t, errors.Is(err, ErrNotExist))
}

func TestEllipsisString(t *testing.T) {
	assert.Equal(t, "short", EllipsisString("short", 10))
	assert.Equal(t, "abcd...", EllipsisString("abcdefghij", 7))
	assert.Equal(t, "日本...", EllipsisString("日本語のテキスト", 5))
	assert.Equal(t, "abcdefghij", EllipsisString("abcdefghij", 3))
}
