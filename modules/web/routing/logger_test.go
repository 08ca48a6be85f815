// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package routing

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"code.kwd.dev/wordfilter/modules/log"

	"github.com/stretchr/testify/assert"
)

type statusRecorder struct {
	*httptest.ResponseRecorder
}

func (r statusRecorder) WrittenStatus() int {
	return r.Code
}

func namedHandler(w http.ResponseWriter, req *http.Request) {
	UpdateFuncInfo(req.Context(), GetFuncInfo(namedHandler))
	w.WriteHeader(http.StatusCreated)
}

func TestLoggerHandler(t *testing.T) {
	buf := &strings.Builder{}
	log.SetLoggerOutput("router", buf, log.INFO)
	defer log.SetLoggerOutput("router", &strings.Builder{}, log.NONE)

	handler := NewLoggerHandler(t.Context(), time.Minute)

	req := httptest.NewRequest(http.MethodGet, "/posts/hello", nil)
	handler(http.HandlerFunc(namedHandler)).ServeHTTP(statusRecorder{httptest.NewRecorder()}, req)
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "[I] router: completed GET /posts/hello for 192.0.2.1:1234, 201 Created in "), out)
	assert.Contains(t, out, "routing.namedHandler")

	buf.Reset()
	handler(http.NotFoundHandler()).ServeHTTP(statusRecorder{httptest.NewRecorder()}, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Contains(t, buf.String(), "[E] router: completed GET /missing")
	assert.Contains(t, buf.String(), "@ unknown-handler")
}

func TestLoggerHandlerPanic(t *testing.T) {
	buf := &strings.Builder{}
	log.SetLoggerOutput("router", buf, log.INFO)
	defer log.SetLoggerOutput("router", &strings.Builder{}, log.NONE)

	handler := NewLoggerHandler(t.Context(), time.Minute)
	assert.Panics(t, func() {
		handler(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		})).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/x", nil))
	})
	assert.Contains(t, buf.String(), "[W] router: failed    POST /x")
	assert.Contains(t, buf.String(), "err=boom")
}

func TestTrimAnonymousFunctionSuffix(t *testing.T) {
	assert.Equal(t, "notAnonymous", trimAnonymousFunctionSuffix("notAnonymous"))
	assert.Equal(t, "web.Routes", trimAnonymousFunctionSuffix("web.Routes.func1"))
	assert.Equal(t, "web.Routes.func1abc", trimAnonymousFunctionSuffix("web.Routes.func1abc"))
}

func TestShortenFilename(t *testing.T) {
	assert.Equal(t, "common/logger.go", shortenFilename("code.kwd.dev/wordfilter/routers/common/logger.go", "fallback"))
	assert.Equal(t, "fallback", shortenFilename("", "fallback"))
	assert.Equal(t, "main.go", shortenFilename("main.go", "fallback"))
}
