// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package catalog holds the in-memory book catalog and its persistence.
//
// # Sources
//
// The catalog is read from the primary book file. On first run, when only the
// bootstrap CSV dataset exists, the catalog is built from it and written to the
// primary file for later runs.
package catalog

import (
	"slices"

	"github.com/taibuivan/bookrec/pkg/pointer"
)

// Book is one catalog entry. Books are immutable once loaded.
type Book struct {
	ID      int
	Title   string
	Authors []string

	// Year is nil when the publication year is unknown.
	Year *int

	// Publisher and Category are empty when unknown.
	Publisher string
	Category  string
}

// Clone returns a deep copy of b.
func (b Book) Clone() Book {
	b.Authors = slices.Clone(b.Authors)
	b.Year = pointer.Clone(b.Year)
	return b
}

// HasYear reports whether b was published in year.
func (b Book) HasYear(year int) bool {
	return b.Year != nil && *b.Year == year
}
