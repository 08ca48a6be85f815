// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"code.kwd.dev/wordfilter/modules/log"
	"code.kwd.dev/wordfilter/modules/util"

	ini "gopkg.in/ini.v1"
)

var (
	// SecretKey is used to sign CSRF tokens and action nonces
	SecretKey string
	// CSRFCookieName is the cookie holding the CSRF token
	CSRFCookieName = "_csrf"
	// CSRFCookieHTTPOnly disables javascript access to the CSRF cookie
	CSRFCookieHTTPOnly = true
	// ReverseProxyAuthUser is the header carrying the user name when reverse proxy authentication is enabled
	ReverseProxyAuthUser string
	// EnableReverseProxyAuth trusts ReverseProxyAuthUser for signing in
	EnableReverseProxyAuth bool
	// ReverseProxyLimit is the number of proxy hops whose forwarded headers are trusted, 0 disables them
	ReverseProxyLimit          int
	ReverseProxyTrustedProxies []string
)

func loadSecurityFrom(rootCfg *ini.File) error {
	sec := rootCfg.Section("security")
	SecretKey = sec.Key("SECRET_KEY").MustString("")
	if SecretKey == "" {
		// a random key still works, but tokens issued before a restart become invalid
		key, err := util.CryptoRandomString(64)
		if err != nil {
			return err
		}
		SecretKey = key
		log.Warn("SECRET_KEY is not set in [security], a random key is used for this process")
	}
	CSRFCookieName = sec.Key("CSRF_COOKIE_NAME").MustString("_csrf")
	CSRFCookieHTTPOnly = sec.Key("CSRF_COOKIE_HTTP_ONLY").MustBool(true)
	ReverseProxyAuthUser = sec.Key("REVERSE_PROXY_AUTHENTICATION_USER").MustString("X-WEBAUTH-USER")
	EnableReverseProxyAuth = sec.Key("ENABLE_REVERSE_PROXY_AUTHENTICATION").MustBool(false)
	ReverseProxyLimit = sec.Key("REVERSE_PROXY_LIMIT").MustInt(1)
	ReverseProxyTrustedProxies = sec.Key("REVERSE_PROXY_TRUSTED_PROXIES").Strings(",")
	if len(ReverseProxyTrustedProxies) == 0 {
		ReverseProxyTrustedProxies = []string{"127.0.0.0/8", "::1/128"}
	}
	return nil
}
