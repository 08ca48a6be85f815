// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package htmlutil

import (
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testStringer struct{}

func (t testStringer) String() string {
	return "&StringMethod"
}

func TestHTMLFormat(t *testing.T) {
	assert.Equal(t, template.HTML("<a>&lt; < 1</a>"), HTMLFormat("<a>%s %s %d</a>", "<", template.HTML("<"), 1))
	assert.Equal(t, template.HTML("%!s(<nil>)"), HTMLFormat("%s", nil))
	assert.Equal(t, template.HTML("&lt;&gt;"), HTMLFormat("%s", template.URL("<>")))
	assert.Equal(t, template.HTML("&amp;StringMethod &amp;StringMethod"), HTMLFormat("%s %s", testStringer{}, &testStringer{}))
}

func TestSanitizeTextField(t *testing.T) {
	cases := []struct {
		in, expected string
	}{
		{"", ""},
		{"bad, mean, profane", "bad, mean, profane"},
		{"  bad,\tmean,\n\nhorrible  ", "bad, mean, horrible"},
		{"bad\x00, mean\x07", "bad, mean"},
		{"<script>alert(1)</script>bad, <b>mean</b>", "bad, mean"},
		{"rock & roll", "rock & roll"},
		{"caf\xc3\xa9, \xffbad", "café, bad"},
		{"bad%20word", "badword"},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, SanitizeTextField(c.in), "input: %q", c.in)
	}
}
