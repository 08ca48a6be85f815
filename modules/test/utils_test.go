// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMockVariableValue(t *testing.T) {
	v := "bad"
	reset := MockVariableValue(&v, "good")
	assert.Equal(t, "good", v)
	reset()
	assert.Equal(t, "bad", v)

	reset = MockVariableValue(&v)
	v = "changed"
	reset()
	assert.Equal(t, "bad", v)
}

func TestRedirectURL(t *testing.T) {
	resp := httptest.NewRecorder()
	resp.Header().Set("Location", "/user/login")
	assert.Equal(t, "/user/login", RedirectURL(resp))
}
