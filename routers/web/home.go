// Copyright 2014 The Gogs Authors. All rights reserved.
// Copyright 2019 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package web

import (
	"net/http"

	content_model "code.kwd.dev/wordfilter/models/content"
	"code.kwd.dev/wordfilter/services/context"
)

const (
	// tplHome home page template
	tplHome = "home"

	homePostsLimit = 20
)

// Home render home page
func Home(ctx *context.Context) {
	posts, err := content_model.ListPosts(ctx, homePostsLimit)
	if err != nil {
		ctx.ServerError("ListPosts", err)
		return
	}

	ctx.Data["PageIsHome"] = true
	ctx.Data["Posts"] = posts
	ctx.HTML(http.StatusOK, tplHome)
}

// NotFound render 404 page
func NotFound(w http.ResponseWriter, req *http.Request) {
	if ctx := context.GetWebContext(req.Context()); ctx != nil {
		ctx.NotFound("web.NotFound", nil)
		return
	}
	http.NotFound(w, req)
}
