// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"strings"

	ini "gopkg.in/ini.v1"
)

// WordFilter holds the [wordfilter] settings.
// DefaultReplacement is used when no replacement text has been saved yet,
// an explicitly saved empty replacement is kept as is.
var WordFilter = struct {
	DefaultReplacement string
	Policy             string
	FilterPriority     int
}{
	DefaultReplacement: "****",
	Policy:             "sequential",
	FilterPriority:     10,
}

func loadWordFilterFrom(rootCfg *ini.File) {
	sec := rootCfg.Section("wordfilter")
	WordFilter.DefaultReplacement = sec.Key("DEFAULT_REPLACEMENT").MustString("****")
	WordFilter.Policy = strings.ToLower(sec.Key("POLICY").In("sequential", []string{"sequential", "simultaneous"}))
	WordFilter.FilterPriority = sec.Key("FILTER_PRIORITY").MustInt(10)
}
