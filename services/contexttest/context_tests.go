// Copyright 2017 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package contexttest provides utilities for testing Web/API contexts with models.
package contexttest

import (
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	user_model "code.kwd.dev/wordfilter/models/user"
	"code.kwd.dev/wordfilter/modules/session"
	"code.kwd.dev/wordfilter/services/context"

	"github.com/stretchr/testify/assert"
)

type MockRender struct {
	// Rendered is the name of the last template rendered
	Rendered string
}

func (tr *MockRender) TemplateLookup(tmpl string) (*template.Template, error) {
	return nil, fmt.Errorf("template %q is not available in tests", tmpl)
}

func (tr *MockRender) HTML(w io.Writer, status int, name string, _ any) error {
	tr.Rendered = name
	if resp, ok := w.(http.ResponseWriter); ok {
		resp.WriteHeader(status)
	}
	return nil
}

func mockRequest(t *testing.T, reqPath string) *http.Request {
	method, path, found := strings.Cut(reqPath, " ")
	if !found {
		method = "GET"
		path = reqPath
	}
	requestURL, err := url.Parse(path)
	assert.NoError(t, err)
	req := &http.Request{Method: method, Host: requestURL.Host, URL: requestURL, Form: url.Values{}, Header: http.Header{}}
	req = req.WithContext(t.Context())
	return req
}

// MockContext mock context for unit tests
// "/foo" => "GET /foo"
// "POST /foo" => "POST /foo"
func MockContext(t *testing.T, reqPath string) (*context.Context, *httptest.ResponseRecorder) {
	resp := httptest.NewRecorder()
	req := mockRequest(t, reqPath)
	base := context.NewBaseContext(resp, req)
	ctx := context.NewWebContext(base, &MockRender{}, session.NewMemoryStore("mock-session"))
	ctx.Csrf = context.NewCSRFProtector(context.CsrfOptions{Secret: "test-secret"})
	return ctx, resp
}

// LoadUser sets the doer of the context
func LoadUser(t *testing.T, ctx *context.Context, u *user_model.User) {
	assert.NotNil(t, u)
	ctx.Doer = u
	ctx.IsSigned = true
	ctx.Data["SignedUser"] = u
	_ = ctx.Session.Set(context.SessionKeyUID, u.ID)
}
