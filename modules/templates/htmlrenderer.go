// Copyright 2022 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package templates

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"path/filepath"
	"sync"
	"sync/atomic"

	"code.kwd.dev/wordfilter/modules/log"
	"code.kwd.dev/wordfilter/modules/setting"
	"code.kwd.dev/wordfilter/modules/util"
)

// ErrTemplateNotInitialized is returned when the templates have not been compiled
var ErrTemplateNotInitialized = errors.New("template system is not initialized, check your log for errors")

// HTMLRender renders the named page templates
type HTMLRender struct {
	templates atomic.Pointer[template.Template]
}

// HTML executes the template into w, the status is only written when w is an http.ResponseWriter
func (h *HTMLRender) HTML(w io.Writer, status int, name string, data any) error {
	t, err := h.TemplateLookup(name)
	if err != nil {
		return err
	}

	// render into a buffer first, a failed page must not be half written
	var buf bytes.Buffer
	if err = t.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render template %q: %w", name, err)
	}

	if respWriter, ok := w.(http.ResponseWriter); ok {
		if respWriter.Header().Get("Content-Type") == "" {
			respWriter.Header().Set("Content-Type", "text/html; charset=utf-8")
		}
		respWriter.WriteHeader(status)
	}
	_, err = buf.WriteTo(w)
	return err
}

// TemplateLookup returns the compiled template with the given name
func (h *HTMLRender) TemplateLookup(name string) (*template.Template, error) {
	tmpls := h.templates.Load()
	if tmpls == nil {
		return nil, ErrTemplateNotInitialized
	}
	tmpl := tmpls.Lookup(name)
	if tmpl == nil {
		return nil, util.NewNotExistErrorf("template %q does not exist", name)
	}
	return tmpl, nil
}

// CompileTemplates parses the builtin templates and the ones found in customDir ("" skips the custom ones)
func (h *HTMLRender) CompileTemplates(customDir string) error {
	assets, err := builtinAssets()
	if err != nil {
		return err
	}
	if customDir != "" {
		custom, err := customAssets(customDir)
		if err != nil {
			return err
		}
		assets = append(assets, custom...)
	}

	tmpls := template.New("").Funcs(NewFuncMap())
	for _, asset := range assets {
		if _, err = tmpls.New(asset.Name).Parse(string(asset.Content)); err != nil {
			return fmt.Errorf("failed to parse template %q: %w", asset.Name, err)
		}
	}
	h.templates.Store(tmpls)
	return nil
}

var htmlRenderer = sync.OnceValue(func() *HTMLRender {
	r := &HTMLRender{}
	if err := r.CompileTemplates(filepath.Join(setting.CustomPath, "templates")); err != nil {
		log.Fatal("Unable to compile templates: %v", err)
	}
	return r
})

// HTMLRenderer returns the process wide renderer, the templates are compiled on first use
func HTMLRenderer() *HTMLRender {
	return htmlRenderer()
}
