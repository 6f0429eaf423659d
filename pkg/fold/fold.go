// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package fold produces comparison keys for accent- and case-insensitive search.
//
// # Usage
//
// Titles and author names are folded once per comparison and matched with
// [strings.Contains]; "HÄRRY’s Tale" folds to "harry’s tale".
package fold

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// String folds s into its search key.
//
// # Transformation Pipeline
//
// 1. Lowercases with Italian casing rules.
// 2. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 3. Removes every combining mark.
func String(s string) string {
	if s == "" {
		return ""
	}

	// cases.Caser is stateful, so a fresh one is built per call
	t := transform.Chain(cases.Lower(language.Italian), norm.NFD, transform.RemoveFunc(isMark))
	result, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return result
}

// Contains reports whether needle occurs in haystack once both are folded.
// An empty needle never matches.
func Contains(haystack, needle string) bool {
	n := String(needle)
	if n == "" {
		return false
	}
	return strings.Contains(String(haystack), n)
}

// isMark reports whether r is a Unicode combining mark (e.g., accents).
func isMark(r rune) bool {
	return unicode.Is(unicode.M, r)
}
