// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package markup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmark_html "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
)

var (
	markdownOnce sync.Once
	markdown     goldmark.Markdown

	sanitizerOnce sync.Once
	sanitizer     *bluemonday.Policy
)

func getMarkdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdown = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			// raw html is allowed here, the output is always sanitized
			goldmark.WithRendererOptions(goldmark_html.WithUnsafe()),
		)
	})
	return markdown
}

func getSanitizer() *bluemonday.Policy {
	sanitizerOnce.Do(func() {
		sanitizer = bluemonday.UGCPolicy()
		sanitizer.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "div", "span")
		sanitizer.AllowAttrs("type").Matching(bluemonday.Paragraph).OnElements("input")
		sanitizer.AllowAttrs("checked", "disabled").OnElements("input")
	})
	return sanitizer
}

// RenderMarkdown renders GitHub flavored markdown into unsanitized HTML
func RenderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := getMarkdown().Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// Sanitize removes everything from the HTML that is not allowed in user content
func Sanitize(s string) string {
	return getSanitizer().Sanitize(s)
}

// textSeparator joins the text nodes handed to the filters, it never occurs in sanitized text
const textSeparator = "\x00"

type htmlSegment struct {
	raw    string
	isText bool
}

// applyToText runs the pipeline once over the text nodes of sanitized HTML.
// Tags and attributes are copied through untouched.
func applyToText(ctx context.Context, p *Pipeline, sanitized string) (string, error) {
	var (
		segments []htmlSegment
		texts    []string
	)
	z := html.NewTokenizer(strings.NewReader(sanitized))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return "", fmt.Errorf("tokenize html: %w", err)
			}
			break
		}
		seg := htmlSegment{raw: string(z.Raw()), isText: tt == html.TextToken}
		if seg.isText {
			seg.raw = strings.ReplaceAll(seg.raw, textSeparator, "\uFFFD")
			texts = append(texts, seg.raw)
		}
		segments = append(segments, seg)
	}
	if len(texts) == 0 {
		return sanitized, nil
	}

	out, err := p.Apply(ctx, strings.Join(texts, textSeparator))
	if err != nil {
		return "", err
	}
	filtered := strings.Split(out, textSeparator)
	if len(filtered) != len(texts) {
		return "", fmt.Errorf("content filters changed the number of text nodes from %d to %d", len(texts), len(filtered))
	}

	var sb strings.Builder
	sb.Grow(len(sanitized))
	i := 0
	for _, seg := range segments {
		if seg.isText {
			sb.WriteString(filtered[i])
			i++
			continue
		}
		sb.WriteString(seg.raw)
	}
	return sb.String(), nil
}

// RenderContent renders a post: markdown, sanitizer, then the filters of the pipeline.
// The filters see the escaped text of the sanitized HTML, never its tags, and
// whatever they return is sanitized again.
func RenderContent(ctx context.Context, p *Pipeline, src string) (template.HTML, error) {
	rendered, err := RenderMarkdown(src)
	if err != nil {
		return "", err
	}
	out, err := applyToText(ctx, p, Sanitize(rendered))
	if err != nil {
		return "", fmt.Errorf("apply content filters: %w", err)
	}
	return template.HTML(Sanitize(out)), nil
}
