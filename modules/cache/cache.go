// Copyright 2017 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cache

import (
	"fmt"

	"code.kwd.dev/wordfilter/modules/setting"

	mc "gitea.com/go-chi/cache"
)

var conn mc.Cache

func newCache(cacheConfig setting.Cache) (mc.Cache, error) {
	return mc.NewCacher(mc.Options{
		Adapter:       cacheConfig.Adapter,
		AdapterConfig: cacheConfig.Conn,
		Interval:      cacheConfig.Interval,
	})
}

// Init starts the cache service, it does nothing when the cache is disabled
func Init() error {
	if conn != nil || !setting.CacheService.Enabled() {
		return nil
	}
	c, err := newCache(setting.CacheService)
	if err != nil {
		return err
	}
	if err = c.Ping(); err != nil {
		return err
	}
	conn = c
	return nil
}

// GetCache returns the currently configured cache, nil when disabled
func GetCache() mc.Cache {
	return conn
}

// SetCache replaces the global cache, mostly used by tests
func SetCache(c mc.Cache) (restore func()) {
	old := conn
	conn = c
	return func() { conn = old }
}

// GetString returns the key value from cache with callback when no key exists in cache
func GetString(key string, getFunc func() (string, error)) (string, error) {
	if conn == nil || setting.CacheService.TTL == 0 {
		return getFunc()
	}

	cached := conn.Get(key)
	if cached == nil {
		value, err := getFunc()
		if err != nil {
			return value, err
		}
		return value, conn.Put(key, value, setting.CacheService.TTLSeconds())
	}

	if value, ok := cached.(string); ok {
		return value, nil
	}
	if stringer, ok := cached.(fmt.Stringer); ok {
		return stringer.String(), nil
	}
	return fmt.Sprintf("%s", cached), nil
}

// Put stores a string value, it is a no-op when the cache is disabled
func Put(key, value string) error {
	if conn == nil || setting.CacheService.TTL == 0 {
		return nil
	}
	return conn.Put(key, value, setting.CacheService.TTLSeconds())
}

// Remove key from cache
func Remove(key string) {
	if conn == nil {
		return
	}
	_ = conn.Delete(key)
}
