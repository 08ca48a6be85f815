// Copyright 2021 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package common

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"code.kwd.dev/wordfilter/modules/log"
	"code.kwd.dev/wordfilter/modules/setting"
	"code.kwd.dev/wordfilter/modules/web/middleware"
	"code.kwd.dev/wordfilter/modules/web/routing"
	app_context "code.kwd.dev/wordfilter/services/context"

	"gitea.com/go-chi/session"
	"github.com/chi-middleware/proxy"
	chi_middleware "github.com/go-chi/chi/v5/middleware"
)

// ProtocolMiddlewares returns HTTP protocol related middlewares, and it provides a global panic recovery
func ProtocolMiddlewares(ctx context.Context) (handlers []any) {
	handlers = append(handlers, func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(resp http.ResponseWriter, req *http.Request) {
			// First of all escape the URL RawPath to ensure that all routing is done using a correctly escaped URL
			req.URL.RawPath = req.URL.EscapedPath()
			req = req.WithContext(middleware.WithContextData(req.Context()))
			next.ServeHTTP(app_context.WrapResponseWriter(resp), req)
		})
	})

	if setting.ReverseProxyLimit > 0 && len(setting.ReverseProxyTrustedProxies) > 0 {
		handlers = append(handlers, ForwardedHeadersHandler(setting.ReverseProxyLimit, setting.ReverseProxyTrustedProxies))
	}

	if setting.Log.EnableRouterLog {
		handlers = append(handlers, routing.NewLoggerHandler(ctx, setting.Log.RouterSlowTime))
	}

	if setting.Log.EnableAccessLog {
		handlers = append(handlers, app_context.AccessLogger())
	}

	return append(handlers, chi_middleware.StripSlashes, RecoveryMiddleware)
}

// RecoveryMiddleware turns a panic into a plain 500 response, it never renders a template
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(resp http.ResponseWriter, req *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				routing.UpdatePanicError(req.Context(), err)
				combinedErr := fmt.Sprintf("PANIC: %v\n%s", err, debug.Stack())
				log.Error("%s", combinedErr)
				if setting.IsProd {
					http.Error(resp, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				} else {
					http.Error(resp, combinedErr, http.StatusInternalServerError)
				}
			}
		}()
		next.ServeHTTP(resp, req)
	})
}

// ForwardedHeadersHandler trusts the X-Forwarded-* headers sent by the listed proxies
func ForwardedHeadersHandler(limit int, trustedProxies []string) func(h http.Handler) http.Handler {
	opt := proxy.NewForwardedHeadersOptions().
		WithForwardLimit(limit).
		ClearTrustedProxies()
	for _, n := range trustedProxies {
		if !strings.Contains(n, "/") {
			opt.AddTrustedProxy(n)
		} else {
			opt.AddTrustedNetwork(n)
		}
	}
	return proxy.ForwardedHeaders(opt)
}

// Sessioner returns the session middleware configured by the [session] settings
func Sessioner() func(next http.Handler) http.Handler {
	return session.Sessioner(session.Options{
		Provider:       setting.SessionConfig.Provider,
		ProviderConfig: setting.SessionConfig.ProviderConfig,
		CookieName:     setting.SessionConfig.CookieName,
		CookiePath:     setting.SessionConfig.CookiePath,
		Gclifetime:     setting.SessionConfig.Gclifetime,
		Maxlifetime:    setting.SessionConfig.Maxlifetime,
		Secure:         setting.SessionConfig.Secure,
		SameSite:       setting.SessionConfig.SameSite,
		Domain:         setting.SessionConfig.Domain,
	})
}
