// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package htmlutil

import (
	"html"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var (
	stripTagsOnce   sync.Once
	stripTagsPolicy *bluemonday.Policy

	percentOctetRe = regexp.MustCompile(`%[a-fA-F0-9]{2}`)
)

func stripTags(s string) string {
	stripTagsOnce.Do(func() {
		stripTagsPolicy = bluemonday.StrictPolicy()
	})
	// the strict policy escapes the remaining text, the caller stores plain text
	return html.UnescapeString(stripTagsPolicy.Sanitize(s))
}

// SanitizeTextField cleans a single line of user input before it is stored:
// invalid UTF-8 and control characters are dropped, tags and percent-encoded
// octets are removed, runs of whitespace collapse to a single space and the
// result is trimmed.
func SanitizeTextField(s string) string {
	s = strings.ToValidUTF8(s, "")
	if strings.ContainsRune(s, '<') {
		s = stripTags(s)
	}
	s = percentOctetRe.ReplaceAllString(s, "")

	var sb strings.Builder
	sb.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if unicode.IsControl(r) {
			continue
		}
		if space && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		space = false
		sb.WriteRune(r)
	}
	return sb.String()
}
