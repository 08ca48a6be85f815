// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cache

import mc "gitea.com/go-chi/cache"

func mcOptions(conn string) mc.Options {
	return mc.Options{Adapter: "twoqueue", AdapterConfig: conn}
}
