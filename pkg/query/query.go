// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses the multi-value tokens found in record fields and user input.
package query

import (
	"strconv"
	"strings"
)

// IntSlice parses a slice of string values into a slice of integers.
// Invalid entries are ignored safely.
func IntSlice(vals []string) []int {
	var res []int
	for _, v := range vals {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			res = append(res, i)
		}
	}
	return res
}

// IDList splits val on both ',' and '|' and parses each token as an integer.
//
// Empty and non-numeric tokens are dropped; duplicates are removed keeping the
// first occurrence.
func IDList(val string) []int {
	tokens := strings.FieldsFunc(val, func(r rune) bool { return r == ',' || r == '|' })
	return Unique(IntSlice(tokens))
}

// Unique returns ids without duplicates, keeping first-seen order.
func Unique(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	res := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		res = append(res, id)
	}
	return res
}

// JoinInts formats ids joined by sep.
func JoinInts(ids []int, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, sep)
}
