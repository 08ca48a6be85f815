// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"net/url"
	"strings"
	"time"

	"code.kwd.dev/wordfilter/modules/log"

	ini "gopkg.in/ini.v1"
)

var (
	// AppName is the Application name, used in the page title.
	// It maps to ini:"APP_NAME"
	AppName string
	// AppURL is the Application ROOT_URL. It always has a '/' suffix
	// It maps to ini:"ROOT_URL"
	AppURL string
	// AppSubURL represents the sub-url mounting point. It is either "" or starts with '/' and ends without '/', such as '/{subpath}'.
	AppSubURL string
	// AppDataPath is the default path for storing data.
	// It maps to ini:"APP_DATA_PATH" in [server] and defaults to AppWorkPath + "/data"
	AppDataPath string

	HTTPAddr           string
	HTTPPort           string
	GracefulHammerTime time.Duration
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration

	// FeedCacheTime is the max-age of the RSS and Atom feeds
	FeedCacheTime time.Duration
)

func loadServerFrom(rootCfg *ini.File) {
	AppName = rootCfg.Section("").Key("APP_NAME").MustString("Word Filter")

	sec := rootCfg.Section("server")
	HTTPAddr = sec.Key("HTTP_ADDR").MustString("0.0.0.0")
	HTTPPort = sec.Key("HTTP_PORT").MustString("3000")
	GracefulHammerTime = sec.Key("GRACEFUL_HAMMER_TIME").MustDuration(60 * time.Second)
	ReadTimeout = sec.Key("READ_TIMEOUT").MustDuration(30 * time.Second)
	WriteTimeout = sec.Key("WRITE_TIMEOUT").MustDuration(30 * time.Second)
	FeedCacheTime = sec.Key("FEED_CACHE_TIME").MustDuration(10 * time.Minute)
	AppDataPath = sec.Key("APP_DATA_PATH").MustString(AppWorkPath + "/data")

	defaultAppURL := "http://localhost:" + HTTPPort
	AppURL = sec.Key("ROOT_URL").MustString(defaultAppURL)
	// This should be TrimRight to ensure that there is only a single '/' at the end of AppURL.
	AppURL = strings.TrimRight(AppURL, "/") + "/"

	appURL, err := url.Parse(AppURL)
	if err != nil {
		log.Fatal("Invalid ROOT_URL %q: %s", AppURL, err)
		return
	}
	// Suburl should start with '/' and end without '/', such as '/{subpath}'.
	AppSubURL = strings.TrimSuffix(appURL.Path, "/")
}
