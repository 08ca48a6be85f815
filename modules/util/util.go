// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package util

import (
	"crypto/rand"
	"encoding/base64"
	"strings"
	"unicode/utf8"
)

// Iif is an "inline-if", it returns "trueVal" if "condition" is true, otherwise "falseVal"
func Iif[T any](condition bool, trueVal, falseVal T) T {
	if condition {
		return trueVal
	}
	return falseVal
}

// IfZero returns "def" if "v" is a zero value, otherwise "v"
func IfZero[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

// OptionalArg is used to get an optional parameter which is passed as variadic
func OptionalArg[T any](optArg []T, defaultValue ...T) (ret T) {
	if len(optArg) >= 1 {
		return optArg[0]
	}
	if len(defaultValue) >= 1 {
		return defaultValue[0]
	}
	return ret
}

// CryptoRandomString generates a crypto random alphanumerical string of roughly the given length
func CryptoRandomString(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(buf)
	return s[:length], nil
}

// SplitTrimSpace splits the string at given separator and trims leading and trailing space of every part.
// Empty parts are dropped.
func SplitTrimSpace(input, sep string) []string {
	input = strings.TrimSpace(input)
	var stringList []string
	for _, s := range strings.Split(input, sep) {
		if s = strings.TrimSpace(s); s != "" {
			stringList = append(stringList, s)
		}
	}
	return stringList
}

// EllipsisString returns a truncated short string,
// it appends '...' in the end of the length if the string is longer than the limit
func EllipsisString(str string, limit int) string {
	if limit <= 3 || utf8.RuneCountInString(str) <= limit {
		return str
	}
	return string([]rune(str)[:limit-3]) + "..."
}
