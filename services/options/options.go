// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package options lets features register the settings an options form may change
package options

import (
	"context"
	"net/url"
	"slices"
	"sync"

	"code.kwd.dev/wordfilter/modules/log"
	"code.kwd.dev/wordfilter/modules/util"
)

// Store persists option values
type Store interface {
	Set(ctx context.Context, key, value string) error
}

type registeredSetting struct {
	key      string
	sanitize func(string) string
}

var (
	mu     sync.RWMutex
	groups = map[string][]registeredSetting{}
)

// RegisterSetting allows the key to be saved through the options form of the group.
// sanitize may be nil, registering a key twice replaces its sanitizer.
func RegisterSetting(group, key string, sanitize func(string) string) {
	mu.Lock()
	defer mu.Unlock()
	settings := slices.DeleteFunc(groups[group], func(s registeredSetting) bool { return s.key == key })
	groups[group] = append(settings, registeredSetting{key: key, sanitize: sanitize})
}

// Registered returns the keys of the group in registration order
func Registered(group string) []string {
	mu.RLock()
	defer mu.RUnlock()
	keys := make([]string, 0, len(groups[group]))
	for _, s := range groups[group] {
		keys = append(keys, s.key)
	}
	return keys
}

// Save writes the registered keys of the group which are present in the form, other form fields are ignored
func Save(ctx context.Context, store Store, group string, form url.Values) error {
	mu.RLock()
	settings := slices.Clone(groups[group])
	mu.RUnlock()
	if len(settings) == 0 {
		return util.NewInvalidArgumentErrorf("unknown option group %q", group)
	}

	for _, s := range settings {
		values, ok := form[s.key]
		if !ok {
			continue
		}
		value := ""
		if len(values) > 0 {
			value = values[0]
		}
		if s.sanitize != nil {
			value = s.sanitize(value)
		}
		if err := store.Set(ctx, s.key, value); err != nil {
			return err
		}
		log.Trace("option %q of group %q saved", s.key, group)
	}
	return nil
}
