// Copyright 2020 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package middleware

import (
	"context"
	"time"

	"code.kwd.dev/wordfilter/modules/setting"
)

// ContextDataStore represents a data store
type ContextDataStore interface {
	GetData() ContextData
}

type ContextData map[string]any

func (ds ContextData) GetData() ContextData {
	return ds
}

func (ds ContextData) MergeFrom(other ContextData) ContextData {
	for k, v := range other {
		ds[k] = v
	}
	return ds
}

const ContextDataKeySignedUser = "SignedUser"

type contextDataKeyType struct{}

var contextDataKey contextDataKeyType

// WithContextData returns a context which carries an empty ContextData, the same map is shared by later handlers
func WithContextData(c context.Context) context.Context {
	if c.Value(contextDataKey) != nil {
		return c
	}
	return context.WithValue(c, contextDataKey, make(ContextData, 10))
}

// GetContextData returns the ContextData of the request, it is nil if WithContextData has not been called
func GetContextData(c context.Context) ContextData {
	if ds, ok := c.Value(contextDataKey).(ContextData); ok {
		return ds
	}
	return nil
}

// CommonTemplateContextData returns the data every page template can rely on
func CommonTemplateContextData() ContextData {
	return ContextData{
		"AppName":   setting.AppName,
		"AppSubUrl": setting.AppSubURL,
		"AppUrl":    setting.AppURL,

		"PageStartTime": time.Now(),
	}
}
