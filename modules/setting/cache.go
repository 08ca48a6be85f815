// Copyright 2019 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"strings"
	"time"

	"code.kwd.dev/wordfilter/modules/log"

	ini "gopkg.in/ini.v1"
)

// Cache represents cache settings
type Cache struct {
	Adapter  string
	Interval int
	Conn     string
	TTL      time.Duration
}

// CacheService the global cache
var CacheService = Cache{
	Adapter:  "memory",
	Interval: 60,
	TTL:      16 * time.Hour,
}

// TTLSeconds returns the TTLSeconds or unix timestamp for memcache
func (c Cache) TTLSeconds() int64 {
	return int64(c.TTL.Seconds())
}

// Enabled reports whether the cache should be used at all
func (c Cache) Enabled() bool {
	return c.Adapter != "" && c.TTL > 0
}

func loadCacheFrom(rootCfg *ini.File) {
	sec := rootCfg.Section("cache")
	CacheService.Interval = sec.Key("INTERVAL").MustInt(60)
	CacheService.TTL = sec.Key("ITEM_TTL").MustDuration(16 * time.Hour)

	CacheService.Adapter = sec.Key("ADAPTER").In("memory", []string{"memory", "twoqueue", "none"})
	switch CacheService.Adapter {
	case "memory":
	case "twoqueue":
		CacheService.Conn = strings.TrimSpace(sec.Key("HOST").String())
		if CacheService.Conn == "" {
			CacheService.Conn = `{"size":50000}`
		}
	case "none":
		CacheService.Adapter = ""
		CacheService.TTL = 0
	}

	if CacheService.Enabled() {
		log.Info("Cache Service Enabled (%s)", CacheService.Adapter)
	}
}
