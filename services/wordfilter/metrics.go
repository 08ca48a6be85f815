// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package wordfilter

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "wordfilter"

var (
	filteredRendersCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "filtered_renders_total",
		Help:      "Number of rendered contents in which at least one word was filtered",
	})
	savedSettingsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "saved_settings_total",
		Help:      "Number of saved word filter settings",
	}, []string{"key"})
	refusedSavesCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "refused_saves_total",
		Help:      "Number of word list submissions refused by the nonce or capability check",
	})
	hookRegisteredGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "hook_registered",
		Help:      "1 if the filter is registered on the render pipeline",
	})
)

func init() {
	prometheus.MustRegister(filteredRendersCounter, savedSettingsCounter, refusedSavesCounter, hookRegisteredGauge)
}
