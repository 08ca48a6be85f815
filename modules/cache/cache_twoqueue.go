// Copyright 2021 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cache

import (
	"strconv"
	"sync"
	"time"

	"code.kwd.dev/wordfilter/modules/json"

	mc "gitea.com/go-chi/cache"
	lru "github.com/hashicorp/golang-lru/v2"
)

// TwoQueueCache represents a LRU 2Q cache adapter implementation
type TwoQueueCache struct {
	lock     sync.Mutex
	cache    *lru.TwoQueueCache[string, *memoryItem]
	interval int
}

// TwoQueueCacheConfig describes the configuration for TwoQueueCache
type TwoQueueCacheConfig struct {
	Size        int     `json:"size"`
	RecentRatio float64 `json:"recent_ratio"`
	GhostRatio  float64 `json:"ghost_ratio"`
}

type memoryItem struct {
	Val     any
	Created int64
	Timeout int64
}

func (item *memoryItem) hasExpired() bool {
	return item.Timeout > 0 &&
		(time.Now().Unix()-item.Created) >= item.Timeout
}

var _ mc.Cache = &TwoQueueCache{}

// Put puts value into cache with key and expire time.
func (c *TwoQueueCache) Put(key string, val any, timeout int64) error {
	item := &memoryItem{
		Val:     val,
		Created: time.Now().Unix(),
		Timeout: timeout,
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	c.cache.Add(key, item)
	return nil
}

// get returns the live item for key, expired items are evicted. The lock must be held.
func (c *TwoQueueCache) get(key string) *memoryItem {
	item, ok := c.cache.Get(key)
	if !ok {
		return nil
	}
	if item.hasExpired() {
		c.cache.Remove(key)
		return nil
	}
	return item
}

// Get gets cached value by given key.
func (c *TwoQueueCache) Get(key string) any {
	c.lock.Lock()
	defer c.lock.Unlock()
	if item := c.get(key); item != nil {
		return item.Val
	}
	return nil
}

// Delete deletes cached value by given key.
func (c *TwoQueueCache) Delete(key string) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.cache.Remove(key)
	return nil
}

// Incr increases cached int-type value by given key as a counter.
func (c *TwoQueueCache) Incr(key string) (err error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if item := c.get(key); item != nil {
		item.Val, err = mc.Incr(item.Val)
	}
	return err
}

// Decr decreases cached int-type value by given key as a counter.
func (c *TwoQueueCache) Decr(key string) (err error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if item := c.get(key); item != nil {
		item.Val, err = mc.Decr(item.Val)
	}
	return err
}

// IsExist returns true if cached value exists.
func (c *TwoQueueCache) IsExist(key string) bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	item, ok := c.cache.Peek(key)
	if !ok {
		return false
	}
	if item.hasExpired() {
		c.cache.Remove(key)
		return false
	}
	return true
}

// Flush deletes all cached data.
func (c *TwoQueueCache) Flush() error {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.cache.Purge()
	return nil
}

func (c *TwoQueueCache) checkAndInvalidate(key string) {
	c.lock.Lock()
	defer c.lock.Unlock()
	item, ok := c.cache.Peek(key)
	if ok && item.hasExpired() {
		c.cache.Remove(key)
	}
}

func (c *TwoQueueCache) startGC() {
	if c.interval < 0 {
		return
	}
	c.lock.Lock()
	keys := c.cache.Keys()
	c.lock.Unlock()
	for _, key := range keys {
		c.checkAndInvalidate(key)
	}
	time.AfterFunc(time.Duration(c.interval)*time.Second, c.startGC)
}

// StartAndGC starts GC routine based on config string settings.
// The adapter config is either a plain size or a TwoQueueCacheConfig in JSON.
func (c *TwoQueueCache) StartAndGC(opts mc.Options) error {
	var err error
	size := 50000
	if opts.AdapterConfig != "" {
		size, err = strconv.Atoi(opts.AdapterConfig)
	}
	if err != nil {
		if !json.Valid([]byte(opts.AdapterConfig)) {
			return err
		}

		cfg := &TwoQueueCacheConfig{
			Size:        50000,
			RecentRatio: lru.Default2QRecentRatio,
			GhostRatio:  lru.Default2QGhostEntries,
		}
		_ = json.Unmarshal([]byte(opts.AdapterConfig), cfg)
		c.cache, err = lru.New2QParams[string, *memoryItem](cfg.Size, cfg.RecentRatio, cfg.GhostRatio)
	} else {
		c.cache, err = lru.New2Q[string, *memoryItem](size)
	}
	c.interval = opts.Interval
	if err == nil && c.interval > 0 {
		go c.startGC()
	}
	return err
}

// Ping tests if the cache is alive.
func (c *TwoQueueCache) Ping() error {
	return mc.GenericPing(c)
}

func init() {
	mc.Register("twoqueue", &TwoQueueCache{})
}
