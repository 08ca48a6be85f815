// Copyright 2022 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"fmt"
	"slices"
	"time"

	ini "gopkg.in/ini.v1"
)

// CORSConfig defines CORS settings, they only apply to the public feeds
var CORSConfig = struct {
	Enabled          bool
	AllowDomain      []string
	Methods          []string
	MaxAge           time.Duration
	AllowCredentials bool
}{
	AllowDomain: []string{"*"},
	Methods:     []string{"GET", "HEAD", "OPTIONS"},
	MaxAge:      10 * time.Minute,
}

func loadCorsFrom(rootCfg *ini.File) error {
	sec := rootCfg.Section("cors")
	CORSConfig.Enabled = sec.Key("ENABLED").MustBool(false)
	CORSConfig.AllowDomain = sec.Key("ALLOW_DOMAIN").Strings(",")
	if len(CORSConfig.AllowDomain) == 0 {
		CORSConfig.AllowDomain = []string{"*"}
	}
	CORSConfig.Methods = sec.Key("METHODS").Strings(",")
	if len(CORSConfig.Methods) == 0 {
		CORSConfig.Methods = []string{"GET", "HEAD", "OPTIONS"}
	}
	CORSConfig.MaxAge = sec.Key("MAX_AGE").MustDuration(10 * time.Minute)
	CORSConfig.AllowCredentials = sec.Key("ALLOW_CREDENTIALS").MustBool(false)
	if CORSConfig.Enabled && CORSConfig.AllowCredentials && slices.Contains(CORSConfig.AllowDomain, "*") {
		return fmt.Errorf("[cors] ALLOW_CREDENTIALS cannot be used with a wildcard ALLOW_DOMAIN")
	}
	return nil
}
