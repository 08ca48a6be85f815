// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package wordfilter

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// matcher holds the case-folded words of one word list
type matcher struct {
	policy Policy
	words  [][]rune
}

func newMatcher(policy Policy, wordList string) *matcher {
	m := &matcher{policy: policy}
	for _, w := range SplitWords(wordList) {
		// an invalid byte would decode to U+FFFD and match every invalid byte of the content
		if w = strings.ToValidUTF8(w, ""); w == "" {
			continue
		}
		m.words = append(m.words, []rune(w))
	}
	return m
}

func (m *matcher) empty() bool {
	return len(m.words) == 0
}

func (m *matcher) replace(content, replacement string) string {
	if m.policy == PolicySimultaneous {
		return replaceLongest(content, m.words, replacement)
	}
	for _, w := range m.words {
		content = replaceAll(content, w, replacement)
	}
	return content
}

// equalFold reports whether a and b are equal under simple Unicode case folding
func equalFold(a, b rune) bool {
	if a == b {
		return true
	}
	if a < utf8.RuneSelf && b < utf8.RuneSelf {
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		return a == b
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}

// matchAt returns the end offset of word when it matches content at offset i
func matchAt(content string, i int, word []rune) (int, bool) {
	for _, wr := range word {
		if i >= len(content) {
			return 0, false
		}
		r, size := utf8.DecodeRuneInString(content[i:])
		if (r == utf8.RuneError && size <= 1) || !equalFold(r, wr) {
			return 0, false
		}
		i += size
	}
	return i, true
}

// replaceAll replaces the non-overlapping matches of word from left to right
func replaceAll(content string, word []rune, replacement string) string {
	var sb strings.Builder
	matched := false
	last := 0
	for i := 0; i < len(content); {
		if end, ok := matchAt(content, i, word); ok {
			if !matched {
				sb.Grow(len(content))
				matched = true
			}
			sb.WriteString(content[last:i])
			sb.WriteString(replacement)
			i, last = end, end
			continue
		}
		_, size := utf8.DecodeRuneInString(content[i:])
		i += size
	}
	if !matched {
		return content
	}
	sb.WriteString(content[last:])
	return sb.String()
}

// replaceLongest replaces all words in a single pass, the longest match at a position wins
func replaceLongest(content string, words [][]rune, replacement string) string {
	var sb strings.Builder
	sb.Grow(len(content))
	last := 0
	for i := 0; i < len(content); {
		best := -1
		for _, w := range words {
			if end, ok := matchAt(content, i, w); ok && end > best {
				best = end
			}
		}
		if best > i {
			sb.WriteString(content[last:i])
			sb.WriteString(replacement)
			i, last = best, best
			continue
		}
		_, size := utf8.DecodeRuneInString(content[i:])
		i += size
	}
	sb.WriteString(content[last:])
	return sb.String()
}
