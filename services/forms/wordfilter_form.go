// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package forms

import (
	"net/http"

	"code.kwd.dev/wordfilter/modules/web/middleware"

	"gitea.com/go-chi/binding"
)

// WordFilterForm is submitted by the words list page
type WordFilterForm struct {
	JustSubmitted string `form:"justsubmitted"`
	Words         string `form:"plugin_words_to_filter" binding:"MaxSize(65535)" locale:"Enter a comma-separated list of words to filter"`
	Nonce         string `form:"ourNonce"`
}

// Validate validates the fields
func (f *WordFilterForm) Validate(req *http.Request, errs binding.Errors) binding.Errors {
	return middleware.Validate(errs, middleware.GetContextData(req.Context()), f)
}

// IsSubmitted reports whether the form came from the words list page
func (f *WordFilterForm) IsSubmitted() bool {
	return f.JustSubmitted == "true"
}
