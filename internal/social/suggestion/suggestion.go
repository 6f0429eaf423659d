// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package suggestion manages the related-book recommendations readers attach
to a book.

A suggestion set is keyed by (userid, bookId) and names one to three other
books. Every suggested book must be in one of the author's libraries when the
set is inserted, and a user suggests for a given book at most once.
*/
package suggestion

// Suggestion is the set of books one user recommends alongside one book.
type Suggestion struct {
	UserID string
	BookID int

	// Suggested holds distinct book IDs in the order given.
	Suggested []int
}

// Key identifies a suggestion set.
type Key struct {
	UserID string
	BookID int
}

// Key returns the identity of s.
func (s Suggestion) Key() Key { return Key{UserID: s.UserID, BookID: s.BookID} }

// filtered returns the suggested IDs without duplicates, non-positive IDs
// and the base book itself.
func (s Suggestion) filtered() []int {
	seen := make(map[int]struct{}, len(s.Suggested))
	out := make([]int, 0, len(s.Suggested))
	for _, id := range s.Suggested {
		if id <= 0 || id == s.BookID {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
