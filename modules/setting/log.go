// Copyright 2019 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"time"

	"code.kwd.dev/wordfilter/modules/log"

	ini "gopkg.in/ini.v1"
)

const defaultAccessLogTemplate = `{{.Ctx.RemoteHost}} - {{.Identity}} {{.Start.Format "[02/Jan/2006:15:04:05 -0700]" }} "{{.Ctx.Req.Method}} {{.Ctx.Req.URL.RequestURI}} {{.Ctx.Req.Proto}}" {{.ResponseWriter.Status}} {{.ResponseWriter.Size}} "{{.Ctx.Req.Referer}}" "{{.Ctx.Req.UserAgent}}"`

// Log holds the logger settings
var Log = struct {
	Level             log.Level
	EnableRouterLog   bool
	RouterSlowTime    time.Duration
	EnableAccessLog   bool
	AccessLogTemplate string
	RequestIDHeaders  []string
}{
	Level:             log.INFO,
	EnableRouterLog:   true,
	RouterSlowTime:    5 * time.Second,
	AccessLogTemplate: defaultAccessLogTemplate,
}

func loadLogFrom(rootCfg *ini.File) {
	sec := rootCfg.Section("log")
	Log.Level = log.LevelFromString(sec.Key("LEVEL").MustString("info"))
	Log.EnableRouterLog = sec.Key("ENABLE_ROUTER_LOG").MustBool(true)
	Log.RouterSlowTime = sec.Key("ROUTER_SLOW_TIME").MustDuration(5 * time.Second)
	Log.EnableAccessLog = sec.Key("ENABLE_ACCESS_LOG").MustBool(false)
	Log.AccessLogTemplate = sec.Key("ACCESS_LOG_TEMPLATE").MustString(defaultAccessLogTemplate)
	Log.RequestIDHeaders = sec.Key("REQUEST_ID_HEADERS").Strings(",")

	log.SetLevel(Log.Level)
}
