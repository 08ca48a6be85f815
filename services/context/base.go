// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package context

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"code.kwd.dev/wordfilter/modules/json"
	"code.kwd.dev/wordfilter/modules/log"
	"code.kwd.dev/wordfilter/modules/web/middleware"

	"github.com/go-chi/chi/v5"
)

// Base is the request scoped state shared by every kind of handler context
type Base struct {
	Resp ResponseWriter
	Req  *http.Request

	// Data is prepared by ContextDataStore middleware, this field only refers to the pre-created/prepared ContextData.
	// Although it's mainly used for MVC templates, sometimes it's also used to pass data between middlewares/handler
	Data middleware.ContextData
}

var _ context.Context = (*Base)(nil)

// Deadline is part of the interface for context.Context and we pass this to the request context
func (b *Base) Deadline() (deadline time.Time, ok bool) {
	return b.Req.Context().Deadline()
}

// Done is part of the interface for context.Context and we pass this to the request context
func (b *Base) Done() <-chan struct{} {
	return b.Req.Context().Done()
}

// Err is part of the interface for context.Context and we pass this to the request context
func (b *Base) Err() error {
	return b.Req.Context().Err()
}

// Value is part of the interface for context.Context and we pass this to the request context
func (b *Base) Value(key any) any {
	return b.Req.Context().Value(key)
}

// GetData returns the data
func (b *Base) GetData() middleware.ContextData {
	return b.Data
}

// AppendContextValue appends a value to the request context, later handlers can get it by Value
func (b *Base) AppendContextValue(k, v any) {
	b.Req = b.Req.WithContext(context.WithValue(b.Req.Context(), k, v))
}

// RemoteAddr returns the client machine ip address
func (b *Base) RemoteAddr() string {
	return b.Req.RemoteAddr
}

// PathParam returns the param in request path, eg: "/{var}" => "/a%2fb", then `var == "a/b"`
func (b *Base) PathParam(name string) string {
	s, err := url.PathUnescape(chi.URLParam(b.Req, strings.TrimPrefix(name, ":")))
	if err != nil {
		return ""
	}
	return s
}

// FormString returns the first value matching the provided key in the form as a string
func (b *Base) FormString(key string) string {
	return b.Req.FormValue(key)
}

// FormTrim returns the first value for the provided key in the form as a space trimmed string
func (b *Base) FormTrim(key string) string {
	return strings.TrimSpace(b.Req.FormValue(key))
}

// FormInt returns the first value for the provided key in the form as an int
func (b *Base) FormInt(key string) int {
	v, _ := strconv.Atoi(b.Req.FormValue(key))
	return v
}

// FormBool returns true if the value for the provided key in the form is "1", "true" or "on"
func (b *Base) FormBool(key string) bool {
	s := b.Req.FormValue(key)
	v, _ := strconv.ParseBool(s)
	v = v || strings.EqualFold(s, "on")
	return v
}

// Written returns true if there are something sent to web browser
func (b *Base) Written() bool {
	return b.Resp.WrittenStatus() != 0
}

// WrittenStatus returns the written status, 0 if nothing has been written
func (b *Base) WrittenStatus() int {
	return b.Resp.WrittenStatus()
}

// Status writes status code
func (b *Base) Status(status int) {
	b.Resp.WriteHeader(status)
}

// Error returned an error to web browser
func (b *Base) Error(status int, contents ...string) {
	v := http.StatusText(status)
	if len(contents) > 0 {
		v = contents[0]
	}
	http.Error(b.Resp, v, status)
}

// JSON render content as JSON
func (b *Base) JSON(status int, content any) {
	b.Resp.Header().Set("Content-Type", "application/json;charset=utf-8")
	b.Resp.WriteHeader(status)
	if err := json.NewEncoder(b.Resp).Encode(content); err != nil {
		log.Error("Render JSON failed: %v", err)
	}
}

// PlainTextBytes renders bytes as plain text
func (b *Base) PlainTextBytes(status int, bs []byte) {
	statusPrefix := status / 100
	if statusPrefix == 4 || statusPrefix == 5 {
		log.Log(2, log.TRACE, "plainTextInternal (status=%d): %s", status, string(bs))
	}
	b.Resp.Header().Set("Content-Type", "text/plain;charset=utf-8")
	b.Resp.Header().Set("X-Content-Type-Options", "nosniff")
	b.Resp.WriteHeader(status)
	if _, err := b.Resp.Write(bs); err != nil {
		log.Error("plainTextInternal (status=%d): write bytes failed: %v", status, err)
	}
}

// PlainText renders content as plain text
func (b *Base) PlainText(status int, text string) {
	b.PlainTextBytes(status, []byte(text))
}

// Redirect redirects the request
func (b *Base) Redirect(location string, status ...int) {
	code := http.StatusSeeOther
	if len(status) == 1 {
		code = status[0]
	}
	http.Redirect(b.Resp, b.Req, location, code)
}

// NewBaseContext creates the Base for a request, the request context gets a fresh ContextData
func NewBaseContext(resp http.ResponseWriter, req *http.Request) *Base {
	req = req.WithContext(middleware.WithContextData(req.Context()))
	return &Base{
		Resp: WrapResponseWriter(resp),
		Req:  req,
		Data: middleware.GetContextData(req.Context()),
	}
}
