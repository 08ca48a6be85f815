// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package context

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"time"

	user_model "code.kwd.dev/wordfilter/models/user"
	"code.kwd.dev/wordfilter/modules/setting"
)

// NonceLifetime is the time a nonce stays valid, a nonce is accepted during the tick it was created in and the next one
const NonceLifetime = 24 * time.Hour

func nonceTick(t time.Time) int64 {
	return t.Unix() / int64(NonceLifetime/2/time.Second)
}

func nonceFor(tick int64, action, uid, sessionID string) string {
	h := hmac.New(sha256.New, []byte(setting.SecretKey))
	h.Write([]byte(strconv.FormatInt(tick, 10) + "|" + action + "|" + uid + "|" + sessionID))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil)[:15])
}

func (ctx *Context) nonceSubject() (uid, sessionID string) {
	uid = "0"
	if ctx.Doer != nil {
		uid = strconv.FormatInt(ctx.Doer.ID, 10)
	}
	return uid, ctx.Session.ID()
}

// CreateNonce returns a token bound to the action, the signed user and the session
func (ctx *Context) CreateNonce(action string) string {
	uid, sid := ctx.nonceSubject()
	return nonceFor(nonceTick(time.Now()), action, uid, sid)
}

// VerifyNonce checks a token made by CreateNonce for the same action
func (ctx *Context) VerifyNonce(token, action string) bool {
	if token == "" {
		return false
	}
	uid, sid := ctx.nonceSubject()
	tick := nonceTick(time.Now())
	for _, t := range []int64{tick, tick - 1} {
		if hmac.Equal([]byte(token), []byte(nonceFor(t, action, uid, sid))) {
			return true
		}
	}
	return false
}

// NonceGuard authorizes a form submission of one action by its nonce and the capability of the doer
type NonceGuard struct {
	ctx    *Context
	action string
}

// NewNonceGuard returns a NonceGuard for the action of the request
func NewNonceGuard(ctx *Context, action string) *NonceGuard {
	return &NonceGuard{ctx: ctx, action: action}
}

// Verify reports whether the token is valid and the doer holds the capability
func (g *NonceGuard) Verify(token string, capability user_model.Capability) bool {
	return g.ctx.VerifyNonce(token, g.action) && g.ctx.Doer.Can(capability)
}
