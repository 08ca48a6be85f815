// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package system

import (
	"context"
	"strings"

	"code.kwd.dev/wordfilter/modules/cache"
	"code.kwd.dev/wordfilter/modules/optional"
)

// cached values carry a marker so an unset option can be told apart from an empty one
const (
	cachedUnset = "\x00"
	cachedSet   = "\x01"
)

func genOptionCacheKey(name string) string {
	return "system.option." + name
}

// DBStore reads and writes options through the cache
type DBStore struct{}

// NewDBStore returns the database backed option store
func NewDBStore() *DBStore {
	return &DBStore{}
}

// Get returns the option value, None when it has never been set
func (s *DBStore) Get(ctx context.Context, name string) (optional.Option[string], error) {
	v, err := cache.GetString(genOptionCacheKey(name), func() (string, error) {
		o, err := GetOption(ctx, name)
		if err != nil {
			return "", err
		}
		if !o.Has() {
			return cachedUnset, nil
		}
		return cachedSet + o.Value(), nil
	})
	if err != nil {
		return optional.None[string](), err
	}
	if value, ok := strings.CutPrefix(v, cachedSet); ok {
		return optional.Some(value), nil
	}
	return optional.None[string](), nil
}

// Set saves the option and drops the cached value
func (s *DBStore) Set(ctx context.Context, name, value string) error {
	defer cache.Remove(genOptionCacheKey(name))
	return SetOption(ctx, name, value)
}

// Delete removes the option and drops the cached value
func (s *DBStore) Delete(ctx context.Context, name string) error {
	defer cache.Remove(genOptionCacheKey(name))
	return DeleteOption(ctx, name)
}
