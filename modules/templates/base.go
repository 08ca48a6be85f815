// Copyright 2020 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"code.kwd.dev/wordfilter/modules/log"
)

//go:embed tmpl
var builtinTemplates embed.FS

// templateAsset is a template source, Name is the path relative to the templates root without ".tmpl"
type templateAsset struct {
	Name    string
	Content []byte
}

func builtinAssets() ([]templateAsset, error) {
	var assets []templateAsset
	err := fs.WalkDir(builtinTemplates, "tmpl", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".tmpl") {
			return nil
		}
		content, err := builtinTemplates.ReadFile(path)
		if err != nil {
			return err
		}
		assets = append(assets, templateAsset{
			Name:    strings.TrimSuffix(strings.TrimPrefix(path, "tmpl/"), ".tmpl"),
			Content: content,
		})
		return nil
	})
	return assets, err
}

// customAssets reads the templates from the custom directory, they override the builtin ones with the same name
func customAssets(root string) ([]templateAsset, error) {
	var assets []templateAsset
	if err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".tmpl") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		name, _ := filepath.Rel(root, path)
		assets = append(assets, templateAsset{
			Name:    strings.TrimSuffix(filepath.ToSlash(name), ".tmpl"),
			Content: content,
		})
		log.Trace("Custom template %q loaded from %s", name, path)
		return nil
	}); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("unable to get files for template assets in %s: %w", root, err)
	}
	return assets, nil
}
