// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package context

import (
	"code.kwd.dev/wordfilter/modules/session"
)

const (
	sessionKeyFlashError   = "flash.error"
	sessionKeyFlashSuccess = "flash.success"
)

// Flash holds the one-shot notices shown at the top of a page.
// Messages set for the next request are kept in the session until they are rendered once.
type Flash struct {
	store session.Store

	ErrorMsg, SuccessMsg string
}

func (f *Flash) set(key string, field *string, msg string, current []bool) {
	isShow := len(current) > 0 && current[0]
	if isShow || f.store == nil {
		*field = msg
		return
	}
	_ = f.store.Set(key, msg)
}

// Error sets error message, if current is true the message is shown on the page being rendered
func (f *Flash) Error(msg string, current ...bool) {
	f.set(sessionKeyFlashError, &f.ErrorMsg, msg, current)
}

// Success sets success message
func (f *Flash) Success(msg string, current ...bool) {
	f.set(sessionKeyFlashSuccess, &f.SuccessMsg, msg, current)
}

// load moves the messages saved by the previous request into the current page
func (f *Flash) load() {
	if f.store == nil {
		return
	}
	for key, field := range map[string]*string{
		sessionKeyFlashError:   &f.ErrorMsg,
		sessionKeyFlashSuccess: &f.SuccessMsg,
	} {
		if msg, ok := f.store.Get(key).(string); ok {
			*field = msg
			_ = f.store.Delete(key)
		}
	}
}
