// Copyright 2022 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package feed

import (
	"bytes"

	"code.kwd.dev/wordfilter/modules/httpcache"
	"code.kwd.dev/wordfilter/modules/setting"
	"code.kwd.dev/wordfilter/services/context"

	"github.com/gorilla/feeds"
)

// writeFeed write a feeds.Feed as atom or rss to ctx.Resp, a client holding the same feed gets a 304
func writeFeed(ctx *context.Context, feed *feeds.Feed, formatType string) {
	var (
		buf         bytes.Buffer
		err         error
		contentType string
	)
	if formatType == "atom" {
		contentType = "application/atom+xml;charset=utf-8"
		err = feed.WriteAtom(&buf)
	} else {
		contentType = "application/rss+xml;charset=utf-8"
		err = feed.WriteRss(&buf)
	}
	if err != nil {
		ctx.ServerError("Render "+formatType+" feed failed", err)
		return
	}

	if httpcache.HandleGenericETagCache(ctx.Req, ctx.Resp, httpcache.GenerateETag(buf.Bytes()), setting.FeedCacheTime) {
		return
	}
	ctx.Resp.Header().Set("Content-Type", contentType)
	_, _ = ctx.Resp.Write(buf.Bytes())
}
