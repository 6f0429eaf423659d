// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides quick type-conversion utilities.

It wraps standards like [strconv] to provide fault-tolerant conversions of
record fields and shell input, where surrounding whitespace is common and a
malformed value is dropped rather than reported.

Use [Int] when the caller must distinguish a malformed value from zero.
*/
package convert

import (
	"strconv"
	"strings"
)

// Int parses a trimmed decimal integer and reports whether it succeeded.
func Int(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return v, true
}

// IntPtr parses an optional integer field: nil when empty or malformed.
func IntPtr(s string) *int {
	v, ok := Int(s)
	if !ok {
		return nil
	}
	return &v
}
