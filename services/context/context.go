// Copyright 2014 The Gogs Authors. All rights reserved.
// Copyright 2020 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package context

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	user_model "code.kwd.dev/wordfilter/models/user"
	"code.kwd.dev/wordfilter/modules/log"
	"code.kwd.dev/wordfilter/modules/session"
	"code.kwd.dev/wordfilter/modules/setting"
	"code.kwd.dev/wordfilter/modules/templates"
	"code.kwd.dev/wordfilter/modules/web"
	"code.kwd.dev/wordfilter/modules/web/middleware"
	web_types "code.kwd.dev/wordfilter/modules/web/types"

	chi_session "gitea.com/go-chi/session"
)

// Render represents a template render
type Render interface {
	TemplateLookup(tmpl string) (*template.Template, error)
	HTML(w io.Writer, status int, name string, data any) error
}

// Context represents context of a web request.
// ATTENTION: This struct should never be manually constructed in routes/services,
// it has many internal details which should be carefully prepared by the framework.
type Context struct {
	*Base

	Render  Render
	Session session.Store
	Flash   *Flash
	Csrf    CSRFProtector

	Doer     *user_model.User // current signed-in user
	IsSigned bool
}

type webContextKeyType struct{}

var WebContextKey = webContextKeyType{}

func GetWebContext(ctx context.Context) *Context {
	webCtx, _ := ctx.Value(WebContextKey).(*Context)
	return webCtx
}

func init() {
	web.RegisterResponseStatusProvider[*Context](func(req *http.Request) web_types.ResponseStatusProvider {
		return req.Context().Value(WebContextKey).(*Context)
	})
}

// NewWebContext creates a Context for the request of base, it is also stored in the request context
func NewWebContext(base *Base, render Render, sess session.Store) *Context {
	ctx := &Context{
		Base:    base,
		Render:  render,
		Session: sess,
	}
	ctx.Flash = &Flash{store: sess}
	ctx.Data["Flash"] = ctx.Flash
	ctx.AppendContextValue(WebContextKey, ctx)
	return ctx
}

// CsrfOptionsFromSetting returns the CSRF options derived from the [security] and [session] settings
func CsrfOptionsFromSetting() CsrfOptions {
	// the CSRF secret is derived, the raw SECRET_KEY also signs nonces
	secret := sha256.Sum256([]byte("csrf:" + setting.SecretKey))
	return CsrfOptions{
		Secret:         hex.EncodeToString(secret[:]),
		Cookie:         setting.CSRFCookieName,
		CookieDomain:   setting.SessionConfig.Domain,
		CookiePath:     setting.SessionConfig.CookiePath,
		CookieHTTPOnly: setting.CSRFCookieHTTPOnly,
		SameSite:       setting.SessionConfig.SameSite,
		Secure:         setting.SessionConfig.Secure,
	}
}

// Contexter initializes a classic context for a request.
// It must be installed after the session middleware.
func Contexter() func(next http.Handler) http.Handler {
	rnd := templates.HTMLRenderer()
	csrfOpts := CsrfOptionsFromSetting()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(resp http.ResponseWriter, req *http.Request) {
			base := NewBaseContext(resp, req)
			var sess session.Store = session.NewMemoryStore("")
			if chiSess := chi_session.GetSession(req); chiSess != nil {
				sess = chiSess
			}
			ctx := NewWebContext(base, rnd, sess)
			ctx.Data.MergeFrom(middleware.CommonTemplateContextData())
			ctx.Data["Link"] = setting.AppSubURL + strings.TrimSuffix(ctx.Req.URL.EscapedPath(), "/")

			ctx.Flash.load()

			if err := ctx.loadSignedUser(); err != nil {
				ctx.ServerError("loadSignedUser", err)
				return
			}

			ctx.Csrf = NewCSRFProtector(csrfOpts)
			ctx.Csrf.PrepareForSessionUser(ctx)

			ctx.Resp.Header().Set(`X-Frame-Options`, "SAMEORIGIN")
			next.ServeHTTP(ctx.Resp, ctx.Req)
		})
	}
}

// HasError returns true if error occurs in form validation.
// Attention: this function changes ctx.Data and ctx.Flash
func (ctx *Context) HasError() bool {
	hasErr, _ := ctx.Data["HasError"].(bool)
	if !hasErr {
		return false
	}
	ctx.Flash.ErrorMsg, _ = ctx.Data["ErrorMsg"].(string)
	return true
}

// HTML calls Context.HTML and renders the template to HTTP response
func (ctx *Context) HTML(status int, name string) {
	log.Debug("Template: %s", name)
	if err := ctx.Render.HTML(ctx.Resp, status, name, ctx.Data); err != nil {
		if status == http.StatusInternalServerError && name == tplStatus500 {
			ctx.PlainText(http.StatusInternalServerError, "Unable to render the error page, the template system is not initialized.")
			return
		}
		ctx.ServerError("Render failed", err)
	}
}

// RenderWithErr used for page has form validation but need to prompt error to users.
func (ctx *Context) RenderWithErr(msg, tpl string, form any) {
	if form != nil {
		middleware.AssignForm(form, ctx.Data)
	}
	ctx.Flash.Error(msg, true)
	ctx.HTML(http.StatusOK, tpl)
}

const (
	tplStatus404 = "status/404"
	tplStatus500 = "status/500"
)

// NotFound displays a 404 (Not Found) page and prints the given error, if any.
func (ctx *Context) NotFound(logMsg string, logErr error) {
	if logErr != nil {
		log.Log(1, log.DEBUG, "%s: %v", logMsg, logErr)
		if !setting.IsProd {
			ctx.Data["ErrorMsg"] = logErr.Error()
		}
	}

	// response simple message if Accept isn't text/html
	showHTML := false
	for _, part := range ctx.Req.Header["Accept"] {
		if strings.Contains(part, "text/html") {
			showHTML = true
			break
		}
	}
	if !showHTML {
		ctx.PlainText(http.StatusNotFound, "Not found.\n")
		return
	}

	ctx.Data["Title"] = "Page Not Found"
	ctx.HTML(http.StatusNotFound, tplStatus404)
}

// ServerError displays a 500 (Internal Server Error) page and prints the given error, if any.
func (ctx *Context) ServerError(logMsg string, logErr error) {
	if logErr != nil {
		log.Log(1, log.ERROR, "%s: %v", logMsg, logErr)
		var opErr *net.OpError
		if errors.As(logErr, &opErr) {
			// This is an error within the underlying connection
			// and further rendering will not work so just return
			return
		}

		// it's safe to show internal error to admin users, and it helps
		if !setting.IsProd || (ctx.Doer != nil && ctx.Doer.IsAdmin) {
			ctx.Data["ErrorMsg"] = fmt.Sprintf("%s, %s", logMsg, logErr)
		}
	}

	ctx.Data["Title"] = "Internal Server Error"
	ctx.HTML(http.StatusInternalServerError, tplStatus500)
}

// NotFoundOrServerError use error check function to determine if the error
// is about not found. It responds with 404 status code for not found error,
// or error context description for logging purpose of 500 server error.
func (ctx *Context) NotFoundOrServerError(logMsg string, errCheck func(error) bool, logErr error) {
	if errCheck(logErr) {
		ctx.NotFound(logMsg, logErr)
		return
	}
	ctx.ServerError(logMsg, logErr)
}

// RedirectToCurrentSite redirects to first not empty URL which belongs to current site
func (ctx *Context) RedirectToCurrentSite(location ...string) {
	for _, loc := range location {
		if len(loc) == 0 {
			continue
		}

		// Unfortunately browsers consider a redirect Location with preceding "//" and "/\" as meaning redirect to "http(s)://REST_OF_PATH"
		// Therefore we should ignore these redirect locations to prevent open redirects
		if len(loc) > 1 && loc[0] == '/' && (loc[1] == '/' || loc[1] == '\\') {
			continue
		}

		u, err := url.Parse(loc)
		if err != nil || ((u.Scheme != "" || u.Host != "") && !strings.HasPrefix(strings.ToLower(loc), strings.ToLower(setting.AppURL))) {
			continue
		}

		ctx.Redirect(loc)
		return
	}

	ctx.Redirect(setting.AppSubURL + "/")
}
