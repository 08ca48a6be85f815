// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package wordfilter replaces configured words in rendered content.
//
// A word list is a single comma separated string, every entry is trimmed and
// matched case-insensitively anywhere in the content, including inside larger
// words. The replacement text is HTML escaped before it is inserted, the
// content itself is left as is.
package wordfilter

import (
	"html/template"
	"strings"
)

// DefaultReplacement is used when no replacement text has been configured
const DefaultReplacement = "****"

// Separator separates the entries of a word list
const Separator = ","

// Policy decides how overlapping words are replaced
type Policy int

const (
	// PolicySequential replaces every word in list order, each pass working on the
	// output of the previous one. Text produced by an earlier replacement can be
	// matched again by a later word.
	PolicySequential Policy = iota
	// PolicySimultaneous scans the content once, at every position the longest
	// matching word wins (the first one in the list on a tie) and replaced text is
	// never scanned again.
	PolicySimultaneous
)

func (p Policy) String() string {
	switch p {
	case PolicySimultaneous:
		return "simultaneous"
	default:
		return "sequential"
	}
}

// ParsePolicy converts a config value into a Policy, unknown values are sequential
func ParsePolicy(s string) Policy {
	if strings.EqualFold(strings.TrimSpace(s), "simultaneous") {
		return PolicySimultaneous
	}
	return PolicySequential
}

// SplitWords splits a word list and trims every entry.
// Empty entries are kept, they never match anything.
func SplitWords(wordList string) []string {
	words := strings.Split(wordList, Separator)
	for i := range words {
		words[i] = strings.TrimSpace(words[i])
	}
	return words
}

// JoinWords joins the words back into a word list for display
func JoinWords(words []string) string {
	return strings.Join(words, Separator+" ")
}

// HasWords reports whether the word list contains at least one non-empty word
func HasWords(wordList string) bool {
	for _, w := range SplitWords(wordList) {
		if w != "" {
			return true
		}
	}
	return false
}

// Filter replaces every word of wordList in content with the escaped replacement,
// words are applied one after another in list order.
func Filter(content, wordList, replacement string) string {
	return FilterWithPolicy(PolicySequential, content, wordList, replacement)
}

// FilterWithPolicy is Filter with an explicit replacement policy
func FilterWithPolicy(policy Policy, content, wordList, replacement string) string {
	if content == "" || wordList == "" {
		return content
	}
	m := getMatcher(policy, wordList)
	if m.empty() {
		return content
	}
	return m.replace(content, template.HTMLEscapeString(replacement))
}
