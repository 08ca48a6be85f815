// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package context

import (
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	user_model "code.kwd.dev/wordfilter/models/user"
	"code.kwd.dev/wordfilter/modules/session"
	"code.kwd.dev/wordfilter/modules/setting"
	"code.kwd.dev/wordfilter/modules/test"

	"github.com/stretchr/testify/assert"
)

type recordRender struct {
	name string
}

func (r *recordRender) TemplateLookup(tmpl string) (*template.Template, error) {
	return nil, fmt.Errorf("no template %q", tmpl)
}

func (r *recordRender) HTML(w io.Writer, status int, name string, _ any) error {
	r.name = name
	w.(http.ResponseWriter).WriteHeader(status)
	return nil
}

func newTestContext(t *testing.T, method, target string) (*Context, *httptest.ResponseRecorder, *recordRender) {
	resp := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil).WithContext(t.Context())
	rnd := &recordRender{}
	ctx := NewWebContext(NewBaseContext(resp, req), rnd, session.NewMemoryStore("sid-1"))
	ctx.Csrf = NewCSRFProtector(CsrfOptions{Secret: "secret"})
	return ctx, resp, rnd
}

func TestGetWebContext(t *testing.T) {
	ctx, _, _ := newTestContext(t, "GET", "/")
	assert.Same(t, ctx, GetWebContext(ctx.Req.Context()))
	assert.Nil(t, GetWebContext(t.Context()))
}

func TestNotFound(t *testing.T) {
	ctx, resp, rnd := newTestContext(t, "GET", "/missing")
	ctx.NotFound("GetPostBySlug", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Not found.\n", resp.Body.String())
	assert.Empty(t, rnd.name)

	ctx, resp, rnd = newTestContext(t, "GET", "/missing")
	ctx.Req.Header.Set("Accept", "text/html,application/xhtml+xml")
	ctx.NotFound("GetPostBySlug", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "status/404", rnd.name)
}

func TestServerError(t *testing.T) {
	defer test.MockVariableValue(&setting.IsProd, true)()

	ctx, resp, rnd := newTestContext(t, "GET", "/")
	ctx.ServerError("LoadPosts", fmt.Errorf("database is locked"))
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Equal(t, "status/500", rnd.name)
	assert.Nil(t, ctx.Data["ErrorMsg"])

	ctx, _, _ = newTestContext(t, "GET", "/")
	ctx.Doer = &user_model.User{ID: 1, Name: "admin", IsAdmin: true}
	ctx.ServerError("LoadPosts", fmt.Errorf("database is locked"))
	assert.Equal(t, "LoadPosts, database is locked", ctx.Data["ErrorMsg"])
}

func TestHasError(t *testing.T) {
	ctx, _, _ := newTestContext(t, "POST", "/user/login")
	assert.False(t, ctx.HasError())

	ctx.Data["HasError"] = true
	ctx.Data["ErrorMsg"] = "User Name cannot be empty."
	assert.True(t, ctx.HasError())
	assert.Equal(t, "User Name cannot be empty.", ctx.Flash.ErrorMsg)
}

func TestRedirectToCurrentSite(t *testing.T) {
	defer test.MockVariableValue(&setting.AppURL, "http://localhost:3000/")()
	defer test.MockVariableValue(&setting.AppSubURL, "")()

	cases := []struct {
		locations []string
		expected  string
	}{
		{[]string{"/-/admin/wordfilter"}, "/-/admin/wordfilter"},
		{[]string{"", "/posts/a"}, "/posts/a"},
		{[]string{"//evil.example/x", "/"}, "/"},
		{[]string{`/\evil.example`}, "/"},
		{[]string{"https://evil.example/"}, "/"},
		{[]string{"http://localhost:3000/posts/b"}, "http://localhost:3000/posts/b"},
	}
	for _, c := range cases {
		ctx, resp, _ := newTestContext(t, "GET", "/user/login")
		ctx.RedirectToCurrentSite(c.locations...)
		assert.Equal(t, http.StatusSeeOther, resp.Code)
		assert.Equal(t, c.expected, test.RedirectURL(resp), "locations: %v", c.locations)
	}
}

func TestReqGuards(t *testing.T) {
	ctx, resp, _ := newTestContext(t, "GET", "/-/admin/wordfilter")
	ReqSignIn(ctx)
	assert.Equal(t, http.StatusSeeOther, resp.Code)
	assert.Equal(t, "/user/login?redirect_to=%2F-%2Fadmin%2Fwordfilter", test.RedirectURL(resp))

	ctx, resp, _ = newTestContext(t, "GET", "/-/admin/wordfilter")
	ctx.Doer, ctx.IsSigned = &user_model.User{ID: 2, Name: "editor"}, true
	ReqSignIn(ctx)
	assert.False(t, ctx.Written())
	ReqCapability(user_model.CapManageOptions)(ctx)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	ctx, resp, _ = newTestContext(t, "GET", "/-/admin/wordfilter")
	ctx.Doer = &user_model.User{ID: 2, Name: "editor", Capabilities: "manage_options"}
	ReqCapability(user_model.CapManageOptions)(ctx)
	assert.False(t, ctx.Written())
	ReqAdmin(ctx)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}
