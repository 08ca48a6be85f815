// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package feed

import (
	"html"
	"time"

	content_model "code.kwd.dev/wordfilter/models/content"
	"code.kwd.dev/wordfilter/modules/markup"
	"code.kwd.dev/wordfilter/modules/setting"
	"code.kwd.dev/wordfilter/modules/util"
	"code.kwd.dev/wordfilter/services/context"

	"github.com/gorilla/feeds"
	"github.com/microcosm-cc/bluemonday"
)

const (
	feedPostsLimit       = 20
	feedDescriptionLimit = 200
)

var stripTagsPolicy = bluemonday.StrictPolicy()

// ShowPostsFeed shows the latest posts as RSS / Atom feed, the content is filtered like the post pages
func ShowPostsFeed(ctx *context.Context, formatType string) {
	posts, err := content_model.ListPosts(ctx, feedPostsLimit)
	if err != nil {
		ctx.ServerError("ListPosts", err)
		return
	}

	// the feed date follows the posts so that an unchanged feed keeps its ETag
	var updated time.Time
	for _, post := range posts {
		if t := post.UpdatedUnix.AsTime(); t.After(updated) {
			updated = t
		}
	}

	feed := &feeds.Feed{
		Title:       setting.AppName,
		Link:        &feeds.Link{Href: setting.AppURL},
		Description: "Latest posts of " + setting.AppName,
		Created:     updated,
	}
	for _, post := range posts {
		content, err := markup.RenderContent(ctx, markup.DefaultPipeline, post.Content)
		if err != nil {
			ctx.ServerError("RenderContent", err)
			return
		}
		link := setting.AppURL + "posts/" + post.Slug
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          link,
			Title:       post.Title,
			Link:        &feeds.Link{Href: link},
			Description: util.EllipsisString(html.UnescapeString(stripTagsPolicy.Sanitize(string(content))), feedDescriptionLimit),
			Content:     string(content),
			Created:     post.CreatedUnix.AsTime(),
			Updated:     post.UpdatedUnix.AsTime(),
		})
	}

	writeFeed(ctx, feed, formatType)
}

// PostsRSS renders the posts feed as RSS
func PostsRSS(ctx *context.Context) {
	ShowPostsFeed(ctx, "rss")
}

// PostsAtom renders the posts feed as Atom
func PostsAtom(ctx *context.Context) {
	ShowPostsFeed(ctx, "atom")
}
