// Copyright 2017 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package web

import (
	user_model "code.kwd.dev/wordfilter/models/user"
	"code.kwd.dev/wordfilter/modules/setting"
	"code.kwd.dev/wordfilter/modules/web"
	"code.kwd.dev/wordfilter/routers/common"
	"code.kwd.dev/wordfilter/routers/web/admin"
	"code.kwd.dev/wordfilter/routers/web/auth"
	"code.kwd.dev/wordfilter/routers/web/feed"
	"code.kwd.dev/wordfilter/routers/web/post"
	"code.kwd.dev/wordfilter/services/context"
	"code.kwd.dev/wordfilter/services/forms"

	"github.com/go-chi/cors"
)

// verifyCsrf rejects the request when the "_csrf" form field or the X-Csrf-Token header is not a valid token
func verifyCsrf(ctx *context.Context) {
	ctx.Csrf.Validate(ctx)
}

// feedCors lets feed readers running in a browser fetch the feeds from other origins
func feedCors() []any {
	if !setting.CORSConfig.Enabled {
		return nil
	}
	return []any{cors.Handler(cors.Options{
		AllowedOrigins:   setting.CORSConfig.AllowDomain,
		AllowedMethods:   setting.CORSConfig.Methods,
		AllowCredentials: setting.CORSConfig.AllowCredentials,
		MaxAge:           int(setting.CORSConfig.MaxAge.Seconds()),
	})}
}

// RegisterRoutes register routes
func RegisterRoutes(m *web.Router) {
	m.Use(common.Sessioner(), context.Contexter())

	if setting.Metrics.Enabled {
		m.Get("/metrics", Metrics)
	}

	m.Get("/", Home)
	m.Group("", func() {
		m.Get("/posts.rss", feed.PostsRSS)
		m.Get("/posts.atom", feed.PostsAtom)
	}, feedCors()...)
	m.Get("/posts/{slug}", post.View)

	m.Group("/user", func() {
		m.Combo("/login").
			Get(auth.SignIn).
			Post(verifyCsrf, web.Bind(forms.SignInForm{}), auth.SignInPost)
		m.Post("/logout", verifyCsrf, auth.SignOut)
	})

	// the words list form is protected by its own nonce and capability check, a failure is reported on the page
	m.Post("/-/admin/wordfilter", context.ReqSignIn, web.Bind(forms.WordFilterForm{}), admin.WordFilterPost)
	m.Group("/-/admin", func() {
		m.Group("/wordfilter", func() {
			m.Get("", admin.WordFilter)
			m.Get("/options", admin.WordFilterOptions)
			m.Post("/reload", context.ReqAdmin, verifyCsrf, admin.WordFilterReload)
		})
		m.Post("/options", verifyCsrf, admin.OptionsPost)
	}, context.ReqSignIn, context.ReqCapability(user_model.CapManageOptions))

	m.NotFound(NotFound)
}
