// Copyright 2021 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"code.kwd.dev/wordfilter/modules/util"
	"code.kwd.dev/wordfilter/modules/web/middleware"
	"code.kwd.dev/wordfilter/modules/web/types"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func chiURLParamsToMap(chiCtx *chi.Context) map[string]string {
	pathParams := chiCtx.URLParams
	m := make(map[string]string, len(pathParams.Keys))
	for i, key := range pathParams.Keys {
		if key == "*" && pathParams.Values[i] == "" {
			continue // chi router will add an empty "*" key if there is a "Mount"
		}
		m[key] = pathParams.Values[i]
	}
	return m
}

func TestRouter(t *testing.T) {
	type resultStruct struct {
		method      string
		pathParams  map[string]string
		handlerMark string
	}
	var res resultStruct

	h := func(optMark ...string) func(resp http.ResponseWriter, req *http.Request) {
		mark := util.OptionalArg(optMark, "")
		return func(resp http.ResponseWriter, req *http.Request) {
			res.method = req.Method
			res.pathParams = chiURLParamsToMap(chi.RouteContext(req.Context()))
			res.handlerMark = mark
		}
	}

	r := NewRouter()
	r.Get("/", h("home"))
	r.Get("/posts/{slug}", h("view-post"))
	r.Group("/-/admin", func() {
		r.Combo("/wordfilter").Get(h("words-page")).Post(h("words-save"))
		r.Group("", func() {
			r.Post("/wordfilter/reload", h("reload"))
		}, func(resp http.ResponseWriter, req *http.Request) {
			if stop := req.FormValue("stop"); stop != "" {
				h(stop)(resp, req)
				resp.WriteHeader(http.StatusForbidden)
			}
		})
	})

	testRoute := func(methodPath string, expected resultStruct) {
		t.Run(methodPath, func(t *testing.T) {
			res = resultStruct{}
			methodPathFields := strings.Fields(methodPath)
			req, err := http.NewRequest(methodPathFields[0], methodPathFields[1], nil)
			assert.NoError(t, err)
			r.ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, expected, res)
		})
	}

	testRoute("GET /", resultStruct{method: "GET", pathParams: map[string]string{}, handlerMark: "home"})
	testRoute("GET /posts/hello-world", resultStruct{
		method:      "GET",
		pathParams:  map[string]string{"slug": "hello-world"},
		handlerMark: "view-post",
	})
	testRoute("GET /other", resultStruct{})
	testRoute("GET /-/admin/wordfilter", resultStruct{method: "GET", pathParams: map[string]string{}, handlerMark: "words-page"})
	testRoute("POST /-/admin/wordfilter", resultStruct{method: "POST", pathParams: map[string]string{}, handlerMark: "words-save"})
	testRoute("POST /-/admin/wordfilter/reload", resultStruct{method: "POST", pathParams: map[string]string{}, handlerMark: "reload"})
	testRoute("POST /-/admin/wordfilter/reload?stop=hijack", resultStruct{method: "POST", pathParams: map[string]string{}, handlerMark: "hijack"})
}

type testContext struct {
	resp http.ResponseWriter
	req  *http.Request
}

func (c *testContext) WrittenStatus() int {
	return c.resp.(types.ResponseStatusProvider).WrittenStatus()
}

func TestContextHandler(t *testing.T) {
	RegisterResponseStatusProvider[*testContext](func(req *http.Request) types.ResponseStatusProvider {
		return &testContext{resp: middleware.GetContextData(req.Context())["resp"].(http.ResponseWriter), req: req}
	})

	var calls []string
	r := NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(resp http.ResponseWriter, req *http.Request) {
			rw := &responseWriter{respWriter: resp}
			req = req.WithContext(middleware.WithContextData(req.Context()))
			middleware.GetContextData(req.Context())["resp"] = rw
			next.ServeHTTP(rw, req)
		})
	})
	r.Get("/ctx", func(ctx *testContext) {
		calls = append(calls, "middle")
		if ctx.req.FormValue("deny") != "" {
			ctx.resp.WriteHeader(http.StatusForbidden)
		}
	}, func(ctx *testContext) {
		calls = append(calls, "handler")
		ctx.resp.WriteHeader(http.StatusAccepted)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ctx", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, []string{"middle", "handler"}, calls)

	calls = nil
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ctx?deny=1", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, []string{"middle"}, calls)

	assert.Panics(t, func() {
		r.Get("/bad", func(s string) {})
	})
}

type bindForm struct {
	UserName string `form:"user_name"`
	Words    string `form:"plugin_words_to_filter"`
}

func TestBind(t *testing.T) {
	var got *bindForm
	var data middleware.ContextData
	r := NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(resp http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(resp, req.WithContext(middleware.WithContextData(req.Context())))
		})
	})
	r.Post("/bind", Bind(bindForm{}), func(resp http.ResponseWriter, req *http.Request) {
		data = middleware.GetContextData(req.Context())
		got = GetForm(data).(*bindForm)
	})

	body := url.Values{"user_name": {"admin"}, "plugin_words_to_filter": {"bad, mean"}}.Encode()
	req := httptest.NewRequest(http.MethodPost, "/bind", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(httptest.NewRecorder(), req)

	if assert.NotNil(t, got) {
		assert.Equal(t, "admin", got.UserName)
		assert.Equal(t, "bad, mean", got.Words)
	}
	assert.Equal(t, "bad, mean", data["plugin_words_to_filter"])
}
