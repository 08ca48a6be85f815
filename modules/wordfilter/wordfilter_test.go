// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package wordfilter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var bothPolicies = []Policy{PolicySequential, PolicySimultaneous}

func TestFilterEmptyWordList(t *testing.T) {
	for _, p := range bothPolicies {
		for _, content := range []string{"", "bad words", "<p>anything</p>"} {
			for _, r := range []string{"", "*", DefaultReplacement} {
				assert.Equal(t, content, FilterWithPolicy(p, content, "", r))
			}
		}
	}
}

func TestFilterNoOccurrence(t *testing.T) {
	for _, p := range bothPolicies {
		assert.Equal(t, "a perfectly fine sentence", FilterWithPolicy(p, "a perfectly fine sentence", "bad, mean, horrible", "***"))
	}
}

func TestFilterSingleWord(t *testing.T) {
	for _, p := range bothPolicies {
		for _, variant := range []string{"bad", "BAD", "Bad", "bAd"} {
			assert.Equal(t, "prefix *** suffix", FilterWithPolicy(p, "prefix "+variant+" suffix", "bad", "***"))
		}
	}
}

func TestFilter(t *testing.T) {
	cases := []struct {
		content, words, replacement, expected string
	}{
		{"BAD word", "bad", "***", "*** word"},
		{"this is bad", "bad", "", "this is "},
		{"this is bad ", "bad", "", "this is  "},
		{"catfish", " cat , fish ", "*", "**"},
		{"badminton is bad", "bad", "#", "#minton is #"},
		{"aaa", "aa", "x", "xa"},
		{"bad, mean and horrible", "bad,,mean,", "-", "-, - and horrible"},
		{"bad", "bad", "<b>*</b>", "&lt;b&gt;*&lt;/b&gt;"},
		{"bad", "bad", `"&'`, "&#34;&amp;&#39;"},
		{"<p>bad</p>", "bad", "*", "<p>*</p>"},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, Filter(c.content, c.words, c.replacement), "filter(%q, %q, %q)", c.content, c.words, c.replacement)
	}
}

func TestFilterPolicies(t *testing.T) {
	// a later word matching text exposed by an earlier replacement
	assert.Equal(t, "*", FilterWithPolicy(PolicySequential, "foox", "foo, *x", "*"))
	assert.Equal(t, "*x", FilterWithPolicy(PolicySimultaneous, "foox", "foo, *x", "*"))

	// a later word matching the replacement itself
	assert.Equal(t, "****", FilterWithPolicy(PolicySequential, "bad", "bad, *", "**"))
	assert.Equal(t, "**", FilterWithPolicy(PolicySimultaneous, "bad", "bad, *", "**"))

	// longest match wins regardless of list order
	assert.Equal(t, "#", FilterWithPolicy(PolicySimultaneous, "catfish", "cat, catfish", "#"))
	assert.Equal(t, "#fish", FilterWithPolicy(PolicySequential, "catfish", "cat, catfish", "#"))

	// disjoint words do not depend on the policy
	for _, p := range bothPolicies {
		assert.Equal(t, "- and -", FilterWithPolicy(p, "bad and mean", "mean, bad", "-"))
	}
}

func TestFilterUnicodeFolding(t *testing.T) {
	assert.Equal(t, "* und *", Filter("Ärger und ärger", "ärger", "*"))
	assert.Equal(t, "*", Filter("ΣΊΣΥΦΟΣ", "σίσυφοσ", "*"))
	assert.Equal(t, "*", Filter("Kelvin", "kelvin", "*"))
	assert.Equal(t, "日本*", Filter("日本語", "語", "*"))
	assert.Equal(t, "\xff*", Filter("\xffbad", "bad", "*"))
}

func TestFilterInvalidUTF8Words(t *testing.T) {
	assert.Equal(t, "\xfe ok \xff", Filter("\xfe ok \xff", "\xff", "*"))
	assert.Equal(t, "\xfe * \xff", Filter("\xfe bad \xff", "b\xffad", "*"))
	assert.Equal(t, "\xfe ok \xff", Filter("\xfe ok \xff", "\uFFFD", "*"))
	assert.Equal(t, "a * b", Filter("a \uFFFD b", "\uFFFD", "*"))
	assert.True(t, newMatcher(PolicySequential, "\xff, \xfe").empty())
}

func TestFilterIsPure(t *testing.T) {
	content := "Bad BAD bad"
	for i := 0; i < 3; i++ {
		assert.Equal(t, "x x x", Filter(content, "bad", "x"))
	}
	assert.Equal(t, "Bad BAD bad", content)
}

func TestSplitJoinWords(t *testing.T) {
	assert.Equal(t, []string{"cat", "fish"}, SplitWords(" cat , fish "))
	assert.Equal(t, []string{"bad", "", "mean", ""}, SplitWords("bad,,mean,"))
	assert.Equal(t, []string{""}, SplitWords(""))

	lists := [][]string{
		{"bad"},
		{"bad", "mean", "profane", "horrible"},
		{"two words", "ünïcode", "x"},
	}
	for _, words := range lists {
		assert.Equal(t, words, SplitWords(JoinWords(words)))
		assert.Equal(t, words, SplitWords(strings.Join(words, ",")))
	}
}

func TestHasWords(t *testing.T) {
	assert.False(t, HasWords(""))
	assert.False(t, HasWords(" , ,"))
	assert.True(t, HasWords(", bad"))
}

func TestParsePolicy(t *testing.T) {
	assert.Equal(t, PolicySequential, ParsePolicy("sequential"))
	assert.Equal(t, PolicySimultaneous, ParsePolicy("Simultaneous"))
	assert.Equal(t, PolicySequential, ParsePolicy("whatever"))
	assert.Equal(t, "simultaneous", PolicySimultaneous.String())
	assert.Equal(t, "sequential", PolicySequential.String())
}

func TestMatcherCache(t *testing.T) {
	m1 := getMatcher(PolicySequential, "cached, words")
	m2 := getMatcher(PolicySequential, "cached, words")
	m3 := getMatcher(PolicySimultaneous, "cached, words")
	assert.Same(t, m1, m2)
	assert.NotSame(t, m1, m3)
	assert.True(t, getMatcher(PolicySequential, " , ").empty())
}

func BenchmarkFilter(b *testing.B) {
	content := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 200)
	for i := 0; i < b.N; i++ {
		_ = Filter(content, "fox, dog, lazy, quick", "****")
	}
}
