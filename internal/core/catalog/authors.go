// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"regexp"
	"strings"
)

// authorSplit matches one author list separator and its surrounding whitespace.
var authorSplit = regexp.MustCompile(`\s*[;,|]\s*`)

// NormalizeAuthors turns a raw author string into a list of names.
//
// A leading "By " (any case) is removed, the rest is split on ',', ';' and '|',
// and empty names are dropped. The result is never nil.
func NormalizeAuthors(raw string) []string {
	s := strings.TrimSpace(raw)
	if len(s) >= 3 && strings.EqualFold(s[:3], "by ") {
		s = s[3:]
	}

	authors := []string{}
	for _, part := range authorSplit.Split(s, -1) {
		if name := strings.TrimSpace(part); name != "" {
			authors = append(authors, name)
		}
	}
	return authors
}
