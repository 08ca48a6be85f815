// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package user

import (
	"slices"
	"strings"
)

// Capability is a named permission a user may hold
type Capability string

// CapManageOptions allows changing the site options
const CapManageOptions Capability = "manage_options"

// Can reports whether the user holds the capability, admins hold every capability
func (u *User) Can(c Capability) bool {
	if u == nil {
		return false
	}
	if u.IsAdmin {
		return true
	}
	return slices.Contains(u.CapabilityList(), c)
}

// CapabilityList returns the capabilities granted to the user explicitly
func (u *User) CapabilityList() []Capability {
	var caps []Capability
	for _, s := range strings.Split(u.Capabilities, ",") {
		if s = strings.TrimSpace(s); s != "" {
			caps = append(caps, Capability(s))
		}
	}
	return caps
}

// Grant adds a capability to the user, it does not save the user
func (u *User) Grant(c Capability) {
	if slices.Contains(u.CapabilityList(), c) {
		return
	}
	if u.Capabilities != "" {
		u.Capabilities += ","
	}
	u.Capabilities += string(c)
}

// Revoke removes an explicitly granted capability, it does not save the user
func (u *User) Revoke(c Capability) {
	caps := slices.DeleteFunc(u.CapabilityList(), func(have Capability) bool {
		return have == c
	})
	names := make([]string, 0, len(caps))
	for _, have := range caps {
		names = append(names, string(have))
	}
	u.Capabilities = strings.Join(names, ",")
}
