// Copyright 2016 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package routers

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"time"

	"code.kwd.dev/wordfilter/models/db"
	"code.kwd.dev/wordfilter/modules/cache"
	"code.kwd.dev/wordfilter/modules/log"
	"code.kwd.dev/wordfilter/modules/setting"
	"code.kwd.dev/wordfilter/modules/templates"
	"code.kwd.dev/wordfilter/modules/web"
	"code.kwd.dev/wordfilter/routers/common"
	web_routers "code.kwd.dev/wordfilter/routers/web"
	wordfilter_service "code.kwd.dev/wordfilter/services/wordfilter"
)

func reflectFuncName(fn any) string {
	return runtime.FuncForPC(reflect.ValueOf(fn).Pointer()).Name()
}

func mustInit(fn func() error) {
	err := fn()
	if err != nil {
		log.Fatal("%s failed: %v", reflectFuncName(fn), err)
	}
}

func mustInitCtx(ctx context.Context, fn func(ctx context.Context) error) {
	err := fn(ctx)
	if err != nil {
		log.Fatal("%s(ctx) failed: %v", reflectFuncName(fn), err)
	}
}

// InitDBEngine connects to the database, in case of problems it retries, eg: PGSQL in Docker Container on Synology
func InitDBEngine(ctx context.Context) (err error) {
	log.Info("Beginning ORM engine initialization.")
	for i := 0; i < setting.Database.DBConnectRetries; i++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("aborted due to shutdown: in retry ORM engine initialization")
		default:
		}
		log.Info("ORM engine initialization attempt #%d/%d...", i+1, setting.Database.DBConnectRetries)
		if err = db.InitEngine(ctx); err == nil {
			break
		} else if i == setting.Database.DBConnectRetries-1 {
			return err
		}
		log.Error("ORM engine initialization attempt #%d/%d failed. Error: %v", i+1, setting.Database.DBConnectRetries, err)
		log.Info("Backing off for %d seconds", int64(setting.Database.DBConnectBackoff/time.Second))
		time.Sleep(setting.Database.DBConnectBackoff)
	}
	return err
}

// InitWebInstalled is for the web process, it loads the settings and starts every service the routes depend on
func InitWebInstalled(ctx context.Context) {
	log.Info("AppPath: %s", setting.AppPath)
	log.Info("AppWorkPath: %s", setting.AppWorkPath)
	log.Info("Custom path: %s", setting.CustomPath)
	log.Info("Run Mode: %s", setting.RunMode)

	mustInit(cache.Init)
	mustInitCtx(ctx, InitDBEngine)
	log.Info("ORM engine initialization successful!")

	mustInitCtx(ctx, wordfilter_service.Init)
	templates.HTMLRenderer()
}

// NormalRoutes represents non install routes
func NormalRoutes(ctx context.Context) *web.Router {
	r := web.NewRouter()
	r.Use(common.ProtocolMiddlewares(ctx)...)
	web_routers.RegisterRoutes(r)
	return r
}
