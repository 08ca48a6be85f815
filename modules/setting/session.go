// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"net/http"
	"strings"

	ini "gopkg.in/ini.v1"
)

// SessionConfig defines Session settings
var SessionConfig = struct {
	// Provider is the session provider, only "memory" and "file" are built in
	Provider string
	// ProviderConfig is the provider specific configuration, eg: the path for "file"
	ProviderConfig string
	// CookieName is the cookie name to save session ID
	CookieName string
	// CookiePath is the cookie path to save session ID
	CookiePath string
	// Gclifetime is the GC interval time in seconds
	Gclifetime int64
	// Maxlifetime is the max life time in seconds
	Maxlifetime int64
	// Secure sets the "Secure" flag on the cookie
	Secure bool
	// Domain is the cookie domain
	Domain string
	// SameSite declares if your cookie should be restricted to a first-party or same-site context
	SameSite http.SameSite
}{
	CookieName:  "i_like_wordfilter",
	Gclifetime:  86400,
	Maxlifetime: 86400,
	SameSite:    http.SameSiteLaxMode,
}

func loadSessionFrom(rootCfg *ini.File) {
	sec := rootCfg.Section("session")
	SessionConfig.Provider = sec.Key("PROVIDER").In("memory", []string{"memory", "file"})
	SessionConfig.ProviderConfig = strings.Trim(sec.Key("PROVIDER_CONFIG").MustString(AppDataPath+"/sessions"), "\" ")
	SessionConfig.CookieName = sec.Key("COOKIE_NAME").MustString("i_like_wordfilter")
	SessionConfig.CookiePath = AppSubURL
	if SessionConfig.CookiePath == "" {
		SessionConfig.CookiePath = "/"
	}
	SessionConfig.Secure = sec.Key("COOKIE_SECURE").MustBool(strings.HasPrefix(strings.ToLower(AppURL), "https://"))
	SessionConfig.Gclifetime = sec.Key("GC_INTERVAL_TIME").MustInt64(86400)
	SessionConfig.Maxlifetime = sec.Key("SESSION_LIFE_TIME").MustInt64(86400)
	SessionConfig.Domain = sec.Key("DOMAIN").String()
	switch strings.ToLower(sec.Key("SAME_SITE").In("lax", []string{"none", "lax", "strict"})) {
	case "none":
		SessionConfig.SameSite = http.SameSiteNoneMode
	case "strict":
		SessionConfig.SameSite = http.SameSiteStrictMode
	default:
		SessionConfig.SameSite = http.SameSiteLaxMode
	}
}
