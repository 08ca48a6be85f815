// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package post

import (
	"net/http"

	content_model "code.kwd.dev/wordfilter/models/content"
	"code.kwd.dev/wordfilter/modules/markup"
	"code.kwd.dev/wordfilter/services/context"
)

const tplPost = "post"

// View renders a post, its content passes through the render pipeline
func View(ctx *context.Context) {
	post, err := content_model.GetPostBySlug(ctx, ctx.PathParam("slug"))
	if err != nil {
		ctx.NotFoundOrServerError("GetPostBySlug", content_model.IsErrPostNotExist, err)
		return
	}

	content, err := markup.RenderContent(ctx, markup.DefaultPipeline, post.Content)
	if err != nil {
		ctx.ServerError("RenderContent", err)
		return
	}

	ctx.Data["Title"] = post.Title
	ctx.Data["Post"] = post
	ctx.Data["Content"] = content
	ctx.HTML(http.StatusOK, tplPost)
}
