// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import ini "gopkg.in/ini.v1"

// Metrics settings
var Metrics = struct {
	Enabled bool
	Token   string
}{
	Enabled: false,
	Token:   "",
}

func loadMetricsFrom(rootCfg *ini.File) {
	sec := rootCfg.Section("metrics")
	Metrics.Enabled = sec.Key("ENABLED").MustBool(false)
	Metrics.Token = sec.Key("TOKEN").MustString("")
}
