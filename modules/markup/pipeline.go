// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package markup

import (
	"context"
	"slices"
	"sync"
)

// ContentFilter transforms rendered content before it is displayed
type ContentFilter func(ctx context.Context, content string) (string, error)

type filterEntry struct {
	name     string
	priority int
	filter   ContentFilter
}

// Pipeline is the "render content" extension point: an ordered list of named filters.
// Filters run in ascending priority, filters with the same priority run in registration order.
type Pipeline struct {
	mu      sync.RWMutex
	filters []*filterEntry
}

// DefaultPipeline is the pipeline used to render posts
var DefaultPipeline = NewPipeline()

// NewPipeline creates an empty pipeline
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// AddFilter registers a filter, a filter registered earlier with the same name is replaced
func (p *Pipeline) AddFilter(name string, priority int, filter ContentFilter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filters = slices.DeleteFunc(p.filters, func(e *filterEntry) bool { return e.name == name })
	p.filters = append(p.filters, &filterEntry{name: name, priority: priority, filter: filter})
	slices.SortStableFunc(p.filters, func(a, b *filterEntry) int { return a.priority - b.priority })
}

// RemoveFilter unregisters a filter, it reports whether the filter was registered
func (p *Pipeline) RemoveFilter(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.filters)
	p.filters = slices.DeleteFunc(p.filters, func(e *filterEntry) bool { return e.name == name })
	return len(p.filters) != n
}

// HasFilter reports whether a filter with the name is registered
func (p *Pipeline) HasFilter(name string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.ContainsFunc(p.filters, func(e *filterEntry) bool { return e.name == name })
}

// Filters returns the names of the registered filters in the order they run
func (p *Pipeline) Filters() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	names := make([]string, 0, len(p.filters))
	for _, e := range p.filters {
		names = append(names, e.name)
	}
	return names
}

// Apply runs content through all filters, it stops at the first error
func (p *Pipeline) Apply(ctx context.Context, content string) (string, error) {
	p.mu.RLock()
	filters := slices.Clone(p.filters)
	p.mu.RUnlock()

	var err error
	for _, e := range filters {
		if content, err = e.filter(ctx, content); err != nil {
			return "", err
		}
	}
	return content, nil
}
