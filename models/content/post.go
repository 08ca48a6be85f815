// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package content

import (
	"context"
	"fmt"
	"regexp"

	"code.kwd.dev/wordfilter/models/db"
	"code.kwd.dev/wordfilter/modules/timeutil"
	"code.kwd.dev/wordfilter/modules/util"
)

var validSlugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Post is a published piece of content, Content holds the markdown source
type Post struct {
	ID          int64              `xorm:"pk autoincr"`
	Slug        string             `xorm:"varchar(191) UNIQUE NOT NULL"`
	Title       string             `xorm:"NOT NULL"`
	Content     string             `xorm:"LONGTEXT"`
	CreatedUnix timeutil.TimeStamp `xorm:"INDEX created"`
	UpdatedUnix timeutil.TimeStamp `xorm:"INDEX updated"`
}

func init() {
	db.RegisterModel(new(Post))
}

// ErrPostNotExist represents a "post does not exist" error
type ErrPostNotExist struct {
	Slug string
}

// IsErrPostNotExist checks if an error is a ErrPostNotExist
func IsErrPostNotExist(err error) bool {
	_, ok := err.(ErrPostNotExist)
	return ok
}

func (err ErrPostNotExist) Error() string {
	return fmt.Sprintf("post does not exist [slug: %s]", err.Slug)
}

func (err ErrPostNotExist) Unwrap() error {
	return util.ErrNotExist
}

// ErrPostAlreadyExist represents a "post already exists" error
type ErrPostAlreadyExist struct {
	Slug string
}

// IsErrPostAlreadyExist checks if an error is a ErrPostAlreadyExist
func IsErrPostAlreadyExist(err error) bool {
	_, ok := err.(ErrPostAlreadyExist)
	return ok
}

func (err ErrPostAlreadyExist) Error() string {
	return fmt.Sprintf("post already exists [slug: %s]", err.Slug)
}

func (err ErrPostAlreadyExist) Unwrap() error {
	return util.ErrAlreadyExist
}

// IsValidSlug reports whether s can be used as a post slug
func IsValidSlug(s string) bool {
	return len(s) <= 191 && validSlugPattern.MatchString(s)
}

// CreatePost inserts a new post
func CreatePost(ctx context.Context, p *Post) error {
	if !IsValidSlug(p.Slug) {
		return util.NewInvalidArgumentErrorf("invalid slug %q", p.Slug)
	}
	if p.Title == "" {
		return util.NewInvalidArgumentErrorf("title must not be empty")
	}
	return db.WithTx(ctx, func(ctx context.Context) error {
		exist, err := db.GetEngine(ctx).Exist(&Post{Slug: p.Slug})
		if err != nil {
			return err
		} else if exist {
			return ErrPostAlreadyExist{p.Slug}
		}
		return db.Insert(ctx, p)
	})
}

// GetPostBySlug returns the post with the slug
func GetPostBySlug(ctx context.Context, slug string) (*Post, error) {
	p := &Post{}
	has, err := db.GetEngine(ctx).Where("slug = ?", slug).Get(p)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrPostNotExist{slug}
	}
	return p, nil
}

// ListPosts returns the newest posts first, limit <= 0 returns all posts
func ListPosts(ctx context.Context, limit int) ([]*Post, error) {
	sess := db.GetEngine(ctx).Desc("created_unix", "id")
	if limit > 0 {
		sess = sess.Limit(limit)
	}
	posts := make([]*Post, 0, max(limit, 10))
	return posts, sess.Find(&posts)
}

// UpdatePostContent replaces the markdown source of a post
func UpdatePostContent(ctx context.Context, slug, content string) error {
	n, err := db.GetEngine(ctx).Where("slug = ?", slug).Cols("content").Update(&Post{Content: content})
	if err != nil {
		return err
	} else if n == 0 {
		return ErrPostNotExist{slug}
	}
	return nil
}

// CountPosts returns the number of posts
func CountPosts(ctx context.Context) (int64, error) {
	return db.GetEngine(ctx).Count(new(Post))
}
