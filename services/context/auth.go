// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package context

import (
	"fmt"
	"net/http"
	"net/url"

	user_model "code.kwd.dev/wordfilter/models/user"
	"code.kwd.dev/wordfilter/modules/log"
	"code.kwd.dev/wordfilter/modules/session"
	"code.kwd.dev/wordfilter/modules/setting"
	"code.kwd.dev/wordfilter/modules/web/middleware"
)

const (
	SessionKeyUID   = "uid"
	SessionKeyUname = "uname"
)

// loadSignedUser resolves the doer from the session, or from the reverse proxy header if enabled
func (ctx *Context) loadSignedUser() error {
	var u *user_model.User
	if uid, ok := ctx.Session.Get(SessionKeyUID).(int64); ok && uid > 0 {
		user, err := user_model.GetUserByID(ctx, uid)
		if err != nil && !user_model.IsErrUserNotExist(err) {
			return err
		} else if err != nil {
			log.Debug("session refers to a removed user %d", uid)
			_ = ctx.Session.Delete(SessionKeyUID)
			_ = ctx.Session.Delete(SessionKeyUname)
		}
		u = user
	}

	if u == nil && setting.EnableReverseProxyAuth {
		if name := ctx.Req.Header.Get(setting.ReverseProxyAuthUser); name != "" {
			user, err := user_model.GetUserByName(ctx, name)
			if err != nil && !user_model.IsErrUserNotExist(err) {
				return err
			}
			u = user
		}
	}

	ctx.Doer = u
	ctx.IsSigned = u != nil
	ctx.Data["IsSigned"] = ctx.IsSigned
	ctx.Data["CanManageOptions"] = u.Can(user_model.CapManageOptions)
	if u != nil {
		ctx.Data[middleware.ContextDataKeySignedUser] = u
		ctx.Data["SignedUserID"] = u.ID
		ctx.Data["IsAdmin"] = u.IsAdmin
	}
	return nil
}

// SignIn starts a fresh session for the user
func (ctx *Context) SignIn(u *user_model.User) error {
	sess, err := ctx.regenerateSession()
	if err != nil {
		return err
	}
	if err := sess.Set(SessionKeyUID, u.ID); err != nil {
		return err
	}
	if err := sess.Set(SessionKeyUname, u.Name); err != nil {
		return err
	}
	if err := sess.Release(); err != nil {
		return err
	}

	u.SetLastLogin()
	if err := user_model.UpdateUserCols(ctx, u, "last_login_unix"); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}

	// the csrf token is bound to the uid, the next page gets a new one
	ctx.Csrf.DeleteCookie(ctx)
	ctx.Doer = u
	ctx.IsSigned = true
	return nil
}

// regenerateSession issues a new session id, the old session data is not carried over
func (ctx *Context) regenerateSession() (session.Store, error) {
	if _, ok := ctx.Session.(*session.MemoryStore); ok {
		_ = ctx.Session.Flush()
		return ctx.Session, nil
	}
	sess, err := session.RegenerateSession(ctx.Resp, ctx.Req)
	if err != nil {
		return nil, fmt.Errorf("regenerate session: %w", err)
	}
	ctx.Session = sess
	ctx.Flash.store = sess
	return sess, nil
}

// SignOut drops the session data of the current user
func (ctx *Context) SignOut() {
	_ = ctx.Session.Flush()
	if _, err := ctx.regenerateSession(); err != nil {
		log.Error("SignOut: %v", err)
		removeSessionCookieHeader(ctx.Resp)
		ctx.DeleteSiteCookie(setting.SessionConfig.CookieName)
	}
	ctx.Csrf.DeleteCookie(ctx)
	middleware.DeleteRedirectToCookie(ctx.Resp)
	ctx.Doer = nil
	ctx.IsSigned = false
}

// ReqSignIn requires the user to be signed in, anonymous users are sent to the sign in page
func ReqSignIn(ctx *Context) {
	if ctx.IsSigned {
		return
	}
	if ctx.Req.Method == http.MethodGet {
		middleware.SetRedirectToCookie(ctx.Resp, setting.AppSubURL+ctx.Req.URL.RequestURI())
	}
	ctx.Redirect(setting.AppSubURL + "/user/login?redirect_to=" + url.QueryEscape(setting.AppSubURL+ctx.Req.URL.RequestURI()))
}

// ReqCapability requires the signed user to hold the capability
func ReqCapability(c user_model.Capability) func(ctx *Context) {
	return func(ctx *Context) {
		if !ctx.Doer.Can(c) {
			ctx.Error(http.StatusForbidden)
		}
	}
}

// ReqAdmin requires the signed user to be a site administrator
func ReqAdmin(ctx *Context) {
	if ctx.Doer == nil || !ctx.Doer.IsAdmin {
		ctx.Error(http.StatusForbidden)
	}
}
