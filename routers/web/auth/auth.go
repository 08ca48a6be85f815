// Copyright 2014 The Gogs Authors. All rights reserved.
// Copyright 2018 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package auth

import (
	"net/http"

	user_model "code.kwd.dev/wordfilter/models/user"
	"code.kwd.dev/wordfilter/modules/log"
	"code.kwd.dev/wordfilter/modules/setting"
	"code.kwd.dev/wordfilter/modules/web"
	"code.kwd.dev/wordfilter/services/context"
	"code.kwd.dev/wordfilter/services/forms"
)

const (
	// tplSignIn template for sign in page
	tplSignIn = "user/auth/signin"
)

// SignIn render sign in page
func SignIn(ctx *context.Context) {
	if ctx.IsSigned {
		ctx.RedirectToFirst(setting.AppSubURL + "/")
		return
	}
	ctx.Data["Title"] = "Sign In"
	ctx.Data["PageIsSignIn"] = true
	ctx.HTML(http.StatusOK, tplSignIn)
}

// SignInPost response for sign in request
func SignInPost(ctx *context.Context) {
	ctx.Data["Title"] = "Sign In"
	ctx.Data["PageIsSignIn"] = true

	if ctx.HasError() {
		ctx.HTML(http.StatusOK, tplSignIn)
		return
	}

	form := web.GetForm(ctx).(*forms.SignInForm)
	u, err := user_model.GetUserByName(ctx, form.UserName)
	if err != nil && !user_model.IsErrUserNotExist(err) {
		ctx.ServerError("GetUserByName", err)
		return
	}
	if u == nil || !u.ValidatePassword(form.Password) {
		log.Info("Failed authentication attempt for %s from %s", form.UserName, ctx.RemoteAddr())
		ctx.Data["Err_UserName"] = true
		ctx.Data["Err_Password"] = true
		ctx.RenderWithErr("Username or password is incorrect.", tplSignIn, form)
		return
	}

	if err = ctx.SignIn(u); err != nil {
		ctx.ServerError("SignIn", err)
		return
	}
	log.Trace("User %s signed in from %s", u.Name, ctx.RemoteAddr())
	ctx.RedirectToFirst(setting.AppSubURL + "/")
}

// SignOut sign out from login status
func SignOut(ctx *context.Context) {
	if ctx.Doer != nil {
		log.Trace("User %s signed out", ctx.Doer.Name)
	}
	ctx.SignOut()
	ctx.Redirect(setting.AppSubURL + "/")
}
