// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package wordfilter

import (
	"context"

	"code.kwd.dev/wordfilter/models/system"
	"code.kwd.dev/wordfilter/modules/markup"
)

var defaultService *Service

// Init creates the service of the process on the database settings and the default render pipeline,
// then decides whether the filter takes part in rendering
func Init(ctx context.Context) error {
	defaultService = NewService(system.NewDBStore(), markup.DefaultPipeline)
	return defaultService.Init(ctx)
}

// Default returns the service created by Init
func Default() *Service {
	return defaultService
}
