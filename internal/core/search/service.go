// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package search answers catalog queries by title, author and year.
//
// Matching is a substring test on folded text (see [fold.String]), so it ignores
// letter case and accents. Results keep catalog order.
package search

import (
	"github.com/taibuivan/bookrec/internal/core/catalog"
	"github.com/taibuivan/bookrec/pkg/fold"
	"github.com/taibuivan/bookrec/pkg/slice"
)

// Catalog is the read-only view of the book catalog the search runs over.
type Catalog interface {
	All() []catalog.Book
}

// Query combines optional filters. Empty strings and a nil Year are ignored;
// a Query with no filter matches nothing.
type Query struct {
	Title  string
	Author string
	Year   *int
}

// Service runs searches against a [Catalog].
type Service struct {
	catalog Catalog
}

// NewService constructs a new search service.
func NewService(c Catalog) *Service {
	return &Service{catalog: c}
}

// ByTitle returns the books whose title contains q. An empty q matches nothing.
func (service *Service) ByTitle(q string) []catalog.Book {
	needle := fold.String(q)
	if needle == "" {
		return []catalog.Book{}
	}
	return slice.Filter(service.catalog.All(), func(b catalog.Book) bool {
		return titleMatches(b, needle)
	})
}

// ByAuthor returns the books with at least one author containing q.
// An empty q matches nothing.
func (service *Service) ByAuthor(q string) []catalog.Book {
	needle := fold.String(q)
	if needle == "" {
		return []catalog.Book{}
	}
	return slice.Filter(service.catalog.All(), func(b catalog.Book) bool {
		return authorMatches(b, needle)
	})
}

// ByAuthorAndYear returns the books published in year with at least one author
// containing q. An empty q matches every book of that year that has an author.
func (service *Service) ByAuthorAndYear(q string, year int) []catalog.Book {
	needle := fold.String(q)
	return slice.Filter(service.catalog.All(), func(b catalog.Book) bool {
		return b.HasYear(year) && authorMatches(b, needle)
	})
}

// Find applies every filter set in query.
func (service *Service) Find(query Query) []catalog.Book {
	title := fold.String(query.Title)
	author := fold.String(query.Author)
	if title == "" && author == "" && query.Year == nil {
		return []catalog.Book{}
	}

	return slice.Filter(service.catalog.All(), func(b catalog.Book) bool {
		if title != "" && !titleMatches(b, title) {
			return false
		}
		if author != "" && !authorMatches(b, author) {
			return false
		}
		if query.Year != nil && !b.HasYear(*query.Year) {
			return false
		}
		return true
	})
}

// titleMatches expects an already folded needle.
func titleMatches(b catalog.Book, needle string) bool {
	return containsFolded(b.Title, needle)
}

// authorMatches expects an already folded needle.
func authorMatches(b catalog.Book, needle string) bool {
	return slice.Any(b.Authors, func(a string) bool {
		return containsFolded(a, needle)
	})
}

func containsFolded(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return fold.Contains(haystack, needle)
}
