// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package flatfile persists entities as semicolon-delimited text records, one
record per line after a header line.

Architecture:

  - Codec: Pure, stateless-per-line mapping between a record and an entity.
  - Store: Whole-file load, atomic rewrite and append for one file.

A file is the unit of consistency. Every mutation is either an append of one
line or a full rewrite through a temporary file renamed over the original, so
readers never observe a partially written file.

Malformed lines are not errors: they are dropped, counted and logged at debug
level. Only I/O failures reach the caller, as IO_ERROR [apperr.AppError] values.
*/
package flatfile

import (
	"strings"

	"github.com/taibuivan/bookrec/internal/platform/constants"
)

// Codec maps records of one entity type to and from field slices.
type Codec[T any] interface {
	// Entity is the label used in logs and metrics (e.g. "Book").
	Entity() string

	// Header returns the tokens written as the first line of a new file.
	Header() []string

	// MinFields is the shortest accepted record; shorter lines are discarded.
	MinFields() int

	// Decode builds an entity from a record. It returns false to discard the line.
	Decode(fields []string) (T, bool)

	// Encode flattens an entity into fields. Absent optional values are empty strings.
	Encode(item T) []string
}

// HeaderAliaser is implemented by codecs that accept more than one header.
type HeaderAliaser interface {
	HeaderAliases() [][]string
}

// Detector is implemented by codecs whose multi-value convention varies
// between files.
//
// The store calls Detect with the header found in the file (nil when absent)
// and every raw record, before decoding, so the codec writes back in the
// convention the file already uses.
type Detector interface {
	Detect(header []string, records [][]string)
}

// # Line Format

// SplitRecord splits a line into fields, keeping empty trailing fields.
func SplitRecord(line string) []string {
	return strings.Split(line, constants.FieldSeparator)
}

// JoinRecord joins fields into a line without a terminator.
func JoinRecord(fields []string) string {
	return strings.Join(fields, constants.FieldSeparator)
}

// Field returns the trimmed field at index i, or "" when the record is shorter.
func Field(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}

// sanitizer replaces the characters a single field cannot hold.
var sanitizer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", constants.FieldSeparator, ",")

// Sanitize makes a free-text value storable in a single field: line breaks
// become spaces and the field separator becomes a comma.
func Sanitize(value string) string {
	return sanitizer.Replace(value)
}

// # Header Detection

// isHeader reports whether fields match the codec header or one of its aliases.
func isHeader[T any](codec Codec[T], fields []string) bool {
	if matchTokens(codec.Header(), fields) {
		return true
	}
	if aliaser, ok := codec.(HeaderAliaser); ok {
		for _, alias := range aliaser.HeaderAliases() {
			if matchTokens(alias, fields) {
				return true
			}
		}
	}
	return false
}

// matchTokens compares trimmed tokens case-insensitively.
func matchTokens(expected, fields []string) bool {
	if len(expected) != len(fields) {
		return false
	}
	for i := range expected {
		if !strings.EqualFold(strings.TrimSpace(expected[i]), strings.TrimSpace(fields[i])) {
			return false
		}
	}
	return true
}
