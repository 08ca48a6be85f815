// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package admin

import (
	"errors"
	"net/http"

	"code.kwd.dev/wordfilter/models/system"
	user_model "code.kwd.dev/wordfilter/models/user"
	"code.kwd.dev/wordfilter/modules/log"
	"code.kwd.dev/wordfilter/modules/setting"
	"code.kwd.dev/wordfilter/modules/util"
	"code.kwd.dev/wordfilter/modules/web"
	"code.kwd.dev/wordfilter/services/context"
	"code.kwd.dev/wordfilter/services/forms"
	"code.kwd.dev/wordfilter/services/options"
	wordfilter_service "code.kwd.dev/wordfilter/services/wordfilter"
)

const (
	tplWordFilter        = "admin/wordfilter"
	tplWordFilterOptions = "admin/wordfilter_options"
	tplStatus403         = "status/403"

	msgWordsSaved       = "Your filtered words were saved."
	msgPermissionDenied = "Sorry, you do not have permission to perform that action."
	msgSettingsSaved    = "Settings saved."
	msgFilterReloaded   = "The content filter was reloaded."
)

func renderWordFilter(ctx *context.Context) {
	svc := wordfilter_service.Default()
	prepareAdminPage(ctx, "Words To Filter", linkWordsList)

	wordList, err := svc.WordList(ctx)
	if err != nil {
		ctx.ServerError("WordList", err)
		return
	}
	status := svc.Status()
	ctx.Data["WordList"] = wordList
	ctx.Data["Nonce"] = ctx.CreateNonce(wordfilter_service.NonceAction)
	ctx.Data["FilterRegistered"] = status.Registered
	ctx.Data["FilterWordCount"] = status.WordCount
	ctx.Data["FilterDecidedUnix"] = status.DecidedUnix
	ctx.HTML(http.StatusOK, tplWordFilter)
}

// WordFilter shows the words list editor
func WordFilter(ctx *context.Context) {
	renderWordFilter(ctx)
}

// WordFilterPost saves the words list, the outcome is shown on the same page.
// A user without the capability only gets the notice, never the editor.
func WordFilterPost(ctx *context.Context) {
	form := web.GetForm(ctx).(*forms.WordFilterForm)
	canManage := ctx.Doer.Can(user_model.CapManageOptions)
	if ctx.HasError() || !form.IsSubmitted() {
		if !canManage {
			ctx.Error(http.StatusForbidden)
			return
		}
		renderWordFilter(ctx)
		return
	}

	guard := context.NewNonceGuard(ctx, wordfilter_service.NonceAction)
	err := wordfilter_service.Default().SaveWordList(ctx, guard, form.Nonce, form.Words)
	switch {
	case wordfilter_service.IsErrAuthorization(err):
		log.Warn("Refused word list submission of %s from %s", ctx.Doer.Name, ctx.RemoteAddr())
		ctx.Flash.Error(msgPermissionDenied, true)
		if !canManage {
			ctx.Data["Title"] = "Forbidden"
			ctx.HTML(http.StatusForbidden, tplStatus403)
			return
		}
	case err != nil:
		ctx.ServerError("SaveWordList", err)
		return
	default:
		ctx.Flash.Success(msgWordsSaved, true)
	}
	renderWordFilter(ctx)
}

// WordFilterReload re-evaluates whether the filter takes part in rendering
func WordFilterReload(ctx *context.Context) {
	if err := wordfilter_service.Default().Reload(ctx); err != nil {
		ctx.ServerError("Reload", err)
		return
	}
	ctx.Flash.Success(msgFilterReloaded)
	ctx.Redirect(setting.AppSubURL + linkWordsList)
}

// WordFilterOptions shows the replacement text editor
func WordFilterOptions(ctx *context.Context) {
	prepareAdminPage(ctx, "Word Filter Options", linkOptions)

	replacement, err := wordfilter_service.Default().Replacement(ctx)
	if err != nil {
		ctx.ServerError("Replacement", err)
		return
	}
	ctx.Data["ReplacementText"] = replacement
	ctx.HTML(http.StatusOK, tplWordFilterOptions)
}

// OptionsPost saves the registered settings of the submitted option group
func OptionsPost(ctx *context.Context) {
	if err := ctx.Req.ParseForm(); err != nil {
		ctx.Error(http.StatusBadRequest, err.Error())
		return
	}

	group := ctx.Req.PostForm.Get("option_page")
	if err := options.Save(ctx, system.NewDBStore(), group, ctx.Req.PostForm); err != nil {
		if errors.Is(err, util.ErrInvalidArgument) {
			ctx.Error(http.StatusBadRequest, "Unknown option page.")
			return
		}
		ctx.ServerError("options.Save", err)
		return
	}
	log.Trace("Option group %q saved by %s", group, ctx.Doer.Name)

	ctx.Flash.Success(msgSettingsSaved)
	ctx.RedirectToCurrentSite(ctx.Req.PostForm.Get("redirect_to"), setting.AppSubURL+linkOptions)
}
