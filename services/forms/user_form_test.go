// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package forms

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"code.kwd.dev/wordfilter/modules/web/middleware"

	"gitea.com/go-chi/binding"
	"github.com/stretchr/testify/assert"
)

func bindForm(t *testing.T, form any, values url.Values) (binding.Errors, middleware.ContextData) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = req.WithContext(middleware.WithContextData(t.Context()))
	errs := binding.Bind(req, form)
	return errs, middleware.GetContextData(req.Context())
}

func TestSignInForm(t *testing.T) {
	form := &SignInForm{}
	errs, data := bindForm(t, form, url.Values{"user_name": {"admin"}, "password": {"secret"}})
	assert.Zero(t, errs.Len())
	assert.Equal(t, "admin", form.UserName)
	assert.Equal(t, "secret", form.Password)
	assert.Nil(t, data["HasError"])

	form = &SignInForm{}
	errs, data = bindForm(t, form, url.Values{"user_name": {""}, "password": {"secret"}})
	assert.Positive(t, errs.Len())
	assert.Equal(t, true, data["HasError"])
	assert.Equal(t, true, data["Err_UserName"])
	assert.Equal(t, "User Name cannot be empty.", data["ErrorMsg"])
	assert.Equal(t, "secret", data["password"])
}

func TestWordFilterForm(t *testing.T) {
	form := &WordFilterForm{}
	errs, _ := bindForm(t, form, url.Values{
		"justsubmitted":          {"true"},
		"plugin_words_to_filter": {"foo, bar"},
		"ourNonce":               {"abc"},
	})
	assert.Zero(t, errs.Len())
	assert.True(t, form.IsSubmitted())
	assert.Equal(t, "foo, bar", form.Words)
	assert.Equal(t, "abc", form.Nonce)

	form = &WordFilterForm{}
	_, _ = bindForm(t, form, url.Values{"plugin_words_to_filter": {"foo"}})
	assert.False(t, form.IsSubmitted())
	assert.Empty(t, form.Nonce)
}
