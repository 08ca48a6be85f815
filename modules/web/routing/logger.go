// Copyright 2021 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package routing

import (
	"context"
	"net/http"
	"time"

	"code.kwd.dev/wordfilter/modules/log"
	"code.kwd.dev/wordfilter/modules/web/types"
)

// NewLoggerHandler is a handler that will log routing to the router log taking account of
// routing information. The slow request detector stops when ctx is done.
func NewLoggerHandler(ctx context.Context, slowThreshold time.Duration) func(next http.Handler) http.Handler {
	manager := requestRecordsManager{
		requestRecords: map[uint64]*requestRecord{},
	}
	manager.startSlowQueryDetector(ctx, slowThreshold)

	manager.print = logPrinter(log.GetLogger("router"))
	return manager.handler
}

func logPrinter(logger log.Logger) func(trigger Event, record *requestRecord) {
	return func(trigger Event, record *requestRecord) {
		req := record.request
		if trigger == StartEvent {
			if !logger.LevelEnabled(log.TRACE) {
				return
			}
			logger.Trace("router: started   %s %s for %s", req.Method, req.RequestURI, req.RemoteAddr)
			return
		}

		record.lock.RLock()
		handlerFuncInfo := record.funcInfo.String()
		isUnknownHandler := record.funcInfo == nil
		panicErr := record.panicError
		record.lock.RUnlock()

		if trigger == StillExecutingEvent {
			logger.Log(0, log.WARN, "router: slow      %s %s for %s, elapsed %v @ %s",
				req.Method, req.RequestURI, req.RemoteAddr,
				time.Since(record.startTime).Round(time.Millisecond),
				handlerFuncInfo,
			)
			return
		}

		if panicErr != nil {
			logger.Log(0, log.WARN, "router: failed    %s %s for %s, panic in %v @ %s, err=%v",
				req.Method, req.RequestURI, req.RemoteAddr,
				time.Since(record.startTime).Round(time.Millisecond),
				handlerFuncInfo,
				panicErr,
			)
			return
		}

		var status int
		if v, ok := record.responseWriter.(types.ResponseStatusProvider); ok {
			status = v.WrittenStatus()
		}
		level := log.INFO
		if isUnknownHandler {
			level = log.ERROR
		}

		logger.Log(0, level, "router: completed %s %s for %s, %d %s in %v @ %s",
			req.Method, req.RequestURI, req.RemoteAddr,
			status, http.StatusText(status), time.Since(record.startTime).Round(time.Millisecond),
			handlerFuncInfo,
		)
	}
}
