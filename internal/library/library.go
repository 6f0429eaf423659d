// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package library manages the named book collections of each reader.

A Library is identified by the pair (userid, name) and holds an ordered set of
book IDs. Every change is a read of the whole library, a change to its set and
an upsert of the whole library.
*/
package library

import (
	"slices"
	"strings"

	"github.com/taibuivan/bookrec/internal/platform/flatfile"
)

// Library is a named, ordered set of book IDs owned by one user.
type Library struct {
	UserID string
	Name   string

	ids []int
}

// New builds a library under [NewKey](userID, name). Duplicate and
// non-positive IDs are dropped, keeping first-seen order.
func New(userID, name string, bookIDs ...int) Library {
	key := NewKey(userID, name)
	lib := Library{UserID: key.UserID, Name: key.Name, ids: []int{}}
	for _, id := range bookIDs {
		lib.Add(id)
	}
	return lib
}

// Key identifies a library.
type Key struct {
	UserID string
	Name   string
}

// NewKey returns the key as it reads back from the file. Both parts are
// trimmed, and line breaks and ';' in the name are replaced the way the codec
// writes them.
func NewKey(userID, name string) Key {
	return Key{
		UserID: strings.TrimSpace(userID),
		Name:   strings.TrimSpace(flatfile.Sanitize(name)),
	}
}

// Key returns the identity of lib.
func (lib Library) Key() Key { return Key{UserID: lib.UserID, Name: lib.Name} }

// Add appends id unless it is already present or not positive.
func (lib *Library) Add(id int) bool {
	if id <= 0 || lib.Contains(id) {
		return false
	}
	lib.ids = append(lib.ids, id)
	return true
}

// Remove deletes id and reports whether it was present.
func (lib *Library) Remove(id int) bool {
	i := slices.Index(lib.ids, id)
	if i < 0 {
		return false
	}
	lib.ids = slices.Delete(slices.Clone(lib.ids), i, i+1)
	return true
}

// Contains reports whether id is in the library.
func (lib Library) Contains(id int) bool {
	return slices.Contains(lib.ids, id)
}

// BookIDs returns a copy of the IDs in insertion order.
func (lib Library) BookIDs() []int {
	if lib.ids == nil {
		return []int{}
	}
	return slices.Clone(lib.ids)
}

// Len returns the number of books.
func (lib Library) Len() int { return len(lib.ids) }

// clone detaches the ID slice so copies never share storage.
func (lib Library) clone() Library {
	lib.ids = lib.BookIDs()
	return lib
}
