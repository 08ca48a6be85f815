// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package admin

import (
	"code.kwd.dev/wordfilter/services/context"
)

// MenuItem is a link of an admin menu
type MenuItem struct {
	MenuTitle string
	Link      string
	Active    bool
}

// Menu is a titled group of admin pages
type Menu struct {
	MenuTitle string
	Items     []MenuItem
}

const (
	linkWordsList = "/-/admin/wordfilter"
	linkOptions   = "/-/admin/wordfilter/options"
)

// AdminMenu returns the admin menus, the item linking to "active" is marked
func AdminMenu(active string) []Menu {
	return []Menu{
		{
			MenuTitle: "Word Filter",
			Items: []MenuItem{
				{MenuTitle: "Words List", Link: linkWordsList, Active: active == linkWordsList},
				{MenuTitle: "Options", Link: linkOptions, Active: active == linkOptions},
			},
		},
	}
}

func prepareAdminPage(ctx *context.Context, title, active string) {
	ctx.Data["Title"] = title
	ctx.Data["PageIsAdmin"] = true
	ctx.Data["AdminMenu"] = AdminMenu(active)
}
