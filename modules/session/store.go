// Copyright 2020 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package session

import (
	"net/http"

	"gitea.com/go-chi/session"
)

// Store represents a session store
type Store interface {
	Get(any) any
	Set(any, any) error
	Delete(any) error
	ID() string
	Release() error
	Flush() error
}

// RegenerateSession regenerates the underlying session and returns the new store
func RegenerateSession(resp http.ResponseWriter, req *http.Request) (Store, error) {
	s, err := session.RegenerateSession(resp, req)
	return s, err
}

// MemoryStore keeps session values in a map, it serves requests which have no session middleware
type MemoryStore struct {
	id   string
	data map[any]any
}

// NewMemoryStore returns an empty MemoryStore
func NewMemoryStore(id string) *MemoryStore {
	return &MemoryStore{id: id, data: map[any]any{}}
}

// Get implements Store
func (s *MemoryStore) Get(k any) any {
	return s.data[k]
}

// Set implements Store
func (s *MemoryStore) Set(k, v any) error {
	s.data[k] = v
	return nil
}

// Delete implements Store
func (s *MemoryStore) Delete(k any) error {
	delete(s.data, k)
	return nil
}

// ID implements Store
func (s *MemoryStore) ID() string {
	return s.id
}

// Release implements Store
func (s *MemoryStore) Release() error {
	return nil
}

// Flush implements Store
func (s *MemoryStore) Flush() error {
	clear(s.data)
	return nil
}
