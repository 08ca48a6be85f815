// Copyright 2021 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package httpcache

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"code.kwd.dev/wordfilter/modules/setting"
	"code.kwd.dev/wordfilter/modules/test"

	"github.com/stretchr/testify/assert"
)

func countFormalHeaders(h http.Header) (c int) {
	for k := range h {
		// ignore our headers for internal usage
		if strings.HasPrefix(k, "X-Wordfilter-") {
			continue
		}
		c++
	}
	return c
}

func TestGenerateETag(t *testing.T) {
	etag := GenerateETag([]byte("<rss></rss>"))
	assert.Len(t, etag, 26)
	assert.True(t, strings.HasPrefix(etag, `"`) && strings.HasSuffix(etag, `"`))
	assert.Equal(t, etag, GenerateETag([]byte("<rss></rss>")))
	assert.NotEqual(t, etag, GenerateETag([]byte("<rss> </rss>")))
}

func TestAddCacheControlToHeader(t *testing.T) {
	defer test.MockVariableValue(&setting.IsProd, true)()

	h := http.Header{}
	AddCacheControlToHeader(h, 10*time.Minute)
	assert.Equal(t, "public, max-age=600", h.Get("Cache-Control"))

	h = http.Header{}
	AddCacheControlToHeader(h, 0, "must-revalidate")
	assert.Equal(t, "no-store, must-revalidate", h.Get("Cache-Control"))

	setting.IsProd = false
	h = http.Header{}
	AddCacheControlToHeader(h, 10*time.Minute)
	assert.Equal(t, "no-store", h.Get("Cache-Control"))
	assert.Equal(t, 1, countFormalHeaders(h))
}

func TestHandleGenericETagCache(t *testing.T) {
	etag := `"foo"`

	t.Run("No_If-None-Match", func(t *testing.T) {
		req := &http.Request{Header: make(http.Header)}
		w := httptest.NewRecorder()

		handled := HandleGenericETagCache(req, w, etag, time.Minute)

		assert.False(t, handled)
		assert.Equal(t, 2, countFormalHeaders(w.Header()))
		assert.Contains(t, w.Header(), "Cache-Control")
		assert.Contains(t, w.Header(), "Etag")
		assert.Equal(t, etag, w.Header().Get("Etag"))
	})
	t.Run("Wrong_If-None-Match", func(t *testing.T) {
		req := &http.Request{Header: make(http.Header)}
		w := httptest.NewRecorder()

		req.Header.Set("If-None-Match", `"wrong etag"`)

		handled := HandleGenericETagCache(req, w, etag, time.Minute)

		assert.False(t, handled)
		assert.Equal(t, 2, countFormalHeaders(w.Header()))
		assert.Equal(t, etag, w.Header().Get("Etag"))
	})
	t.Run("Correct_If-None-Match", func(t *testing.T) {
		req := &http.Request{Header: make(http.Header)}
		w := httptest.NewRecorder()

		req.Header.Set("If-None-Match", etag)

		handled := HandleGenericETagCache(req, w, etag, time.Minute)

		assert.True(t, handled)
		assert.Equal(t, 1, countFormalHeaders(w.Header()))
		assert.Equal(t, http.StatusNotModified, w.Code)
		assert.Equal(t, etag, w.Header().Get("Etag"))
	})
	t.Run("Multiple_Wrong_If-None-Match", func(t *testing.T) {
		req := &http.Request{Header: make(http.Header)}
		w := httptest.NewRecorder()

		req.Header.Set("If-None-Match", `"wrong etag", "wrong etag "`)

		handled := HandleGenericETagCache(req, w, etag, time.Minute)

		assert.False(t, handled)
		assert.Equal(t, etag, w.Header().Get("Etag"))
	})
	t.Run("Multiple_Correct_If-None-Match", func(t *testing.T) {
		req := &http.Request{Header: make(http.Header)}
		w := httptest.NewRecorder()

		req.Header.Set("If-None-Match", `"wrong etag", `+etag)

		handled := HandleGenericETagCache(req, w, etag, time.Minute)

		assert.True(t, handled)
		assert.Equal(t, http.StatusNotModified, w.Code)
	})
}
