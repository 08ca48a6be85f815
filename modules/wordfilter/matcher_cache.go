// Copyright 2022 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package wordfilter

import (
	"code.kwd.dev/wordfilter/modules/log"

	lru "github.com/hashicorp/golang-lru/v2"
)

type matcherKey struct {
	policy   Policy
	wordList string
}

// parsed word lists keyed by policy and raw list
var matcherCache *lru.Cache[matcherKey, *matcher]

func init() {
	var err error
	matcherCache, err = lru.New[matcherKey, *matcher](64)
	if err != nil {
		log.Fatal("failed to new LRU cache, err: %v", err)
	}
}

func getMatcher(policy Policy, wordList string) *matcher {
	key := matcherKey{policy: policy, wordList: wordList}
	if m, ok := matcherCache.Get(key); ok {
		return m
	}
	m := newMatcher(policy, wordList)
	matcherCache.Add(key, m)
	return m
}
