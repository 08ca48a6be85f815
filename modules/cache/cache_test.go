// Copyright 2017 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cache

import (
	"errors"
	"testing"
	"time"

	"code.kwd.dev/wordfilter/modules/setting"
	"code.kwd.dev/wordfilter/modules/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCache(t *testing.T, adapter, conn string) {
	c, err := newCache(setting.Cache{
		Adapter:  adapter,
		Conn:     conn,
		Interval: 0,
		TTL:      time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(SetCache(c))
	t.Cleanup(test.MockVariableValue(&setting.CacheService, setting.Cache{Adapter: adapter, TTL: time.Minute}))
}

func TestInitDisabled(t *testing.T) {
	defer SetCache(nil)()
	defer test.MockVariableValue(&setting.CacheService, setting.Cache{})()

	assert.NoError(t, Init())
	assert.Nil(t, GetCache())
}

func TestGetString(t *testing.T) {
	for _, adapter := range []string{"memory", "twoqueue"} {
		t.Run(adapter, func(t *testing.T) {
			createTestCache(t, adapter, "")

			calls := 0
			load := func() (string, error) {
				calls++
				return "bad, mean", nil
			}
			v, err := GetString("words", load)
			assert.NoError(t, err)
			assert.Equal(t, "bad, mean", v)

			v, err = GetString("words", load)
			assert.NoError(t, err)
			assert.Equal(t, "bad, mean", v)
			assert.Equal(t, 1, calls)

			Remove("words")
			_, _ = GetString("words", load)
			assert.Equal(t, 2, calls)

			require.NoError(t, Put("words", "horrible"))
			v, err = GetString("words", load)
			assert.NoError(t, err)
			assert.Equal(t, "horrible", v)
			assert.Equal(t, 2, calls)

			_, err = GetString("missing", func() (string, error) { return "", errors.New("boom") })
			assert.Error(t, err)
			assert.False(t, GetCache().IsExist("missing"))
		})
	}
}

func TestGetStringWithoutCache(t *testing.T) {
	defer SetCache(nil)()

	calls := 0
	for i := 0; i < 3; i++ {
		_, _ = GetString("k", func() (string, error) {
			calls++
			return "v", nil
		})
	}
	assert.Equal(t, 3, calls)
	assert.NoError(t, Put("k", "v"))
	Remove("k")
}

func TestTwoQueueCache(t *testing.T) {
	c := &TwoQueueCache{}
	require.NoError(t, c.StartAndGC(mcOptions(`{"size":10}`)))
	assert.NoError(t, c.Ping())

	assert.NoError(t, c.Put("n", 1, 0))
	assert.NoError(t, c.Incr("n"))
	assert.NoError(t, c.Incr("n"))
	assert.NoError(t, c.Decr("n"))
	assert.EqualValues(t, 2, c.Get("n"))

	assert.NoError(t, c.Put("old", "x", 1))
	c.lock.Lock()
	item, _ := c.cache.Peek("old")
	item.Created -= 5
	c.lock.Unlock()
	assert.False(t, c.IsExist("old"))
	assert.Nil(t, c.Get("old"))

	assert.NoError(t, c.Flush())
	assert.False(t, c.IsExist("n"))

	bad := &TwoQueueCache{}
	assert.Error(t, bad.StartAndGC(mcOptions("not-a-size")))
}
