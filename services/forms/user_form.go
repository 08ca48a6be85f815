// Copyright 2014 The Gogs Authors. All rights reserved.
// Copyright 2018 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package forms

import (
	"net/http"

	"code.kwd.dev/wordfilter/modules/web/middleware"

	"gitea.com/go-chi/binding"
)

// SignInForm form for signing in with user/password
type SignInForm struct {
	UserName string `form:"user_name" binding:"Required;MaxSize(254)" locale:"User Name"`
	Password string `form:"password" binding:"Required;MaxSize(255)"`
}

// Validate validates the fields
func (f *SignInForm) Validate(req *http.Request, errs binding.Errors) binding.Errors {
	return middleware.Validate(errs, middleware.GetContextData(req.Context()), f)
}
