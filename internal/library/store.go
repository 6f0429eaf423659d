// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"context"

	"github.com/taibuivan/bookrec/internal/platform/flatfile"
	"github.com/taibuivan/bookrec/internal/platform/metrics"
)

// # Library Data Access

// Repository defines the data access contract for libraries.
type Repository interface {

	/*
		ListByUser returns the libraries of a user in file order.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []Library: Possibly empty
		  - error: Storage retrieval failures
	*/
	ListByUser(context context.Context, userID string) ([]Library, error)

	/*
		Upsert replaces the library with the same key, or appends it.

		Parameters:
		  - context: context.Context
		  - lib: Library

		Returns:
		  - error: Persistence failures
	*/
	Upsert(context context.Context, lib Library) error

	/*
		Modify applies fn to the library with the given key inside one
		load-change-rewrite cycle.

		Parameters:
		  - context: context.Context
		  - key: Key
		  - createMissing: start from an empty library when none exists
		  - fn: returns true when it changed the library

		Returns:
		  - bool: false when the library is missing (and not created) or fn made no change
		  - error: Persistence failures
	*/
	Modify(context context.Context, key Key, createMissing bool, fn func(lib *Library) bool) (bool, error)

	/*
		Delete removes the library with the given key.

		Parameters:
		  - context: context.Context
		  - key: Key

		Returns:
		  - bool: false when no such library exists
		  - error: Persistence failures
	*/
	Delete(context context.Context, key Key) (bool, error)
}

// FileStore implements [Repository] over the flat library file.
type FileStore struct {
	file  *flatfile.Store[Library]
	codec *Codec
}

var _ Repository = (*FileStore)(nil)

// NewFileStore creates a library store for the file at path. sep is the ID
// separator used when the file does not exist yet.
func NewFileStore(path, sep string, m *metrics.Metrics) *FileStore {
	codec := NewCodec(sep)
	return &FileStore{file: flatfile.NewStore[Library](path, codec, m), codec: codec}
}

// ListByUser returns the user's libraries in file order.
func (store *FileStore) ListByUser(ctx context.Context, userID string) ([]Library, error) {
	all, err := store.file.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	out := []Library{}
	for _, lib := range all {
		if lib.UserID == userID {
			out = append(out, lib)
		}
	}
	return out, nil
}

// Upsert replaces the first library with the same key, or appends lib.
func (store *FileStore) Upsert(ctx context.Context, lib Library) error {
	lib = lib.clone()
	_, err := store.file.Mutate(ctx, func(all []Library) ([]Library, bool) {
		if i := indexOf(all, lib.Key()); i >= 0 {
			all[i] = lib
			return all, true
		}
		return append(all, lib), true
	})
	return err
}

// Modify changes one library atomically with respect to this process.
func (store *FileStore) Modify(ctx context.Context, key Key, createMissing bool, fn func(lib *Library) bool) (bool, error) {
	return store.file.Mutate(ctx, func(all []Library) ([]Library, bool) {
		i := indexOf(all, key)
		if i < 0 {
			if !createMissing {
				return all, false
			}
			lib := New(key.UserID, key.Name)
			if !fn(&lib) {
				return all, false
			}
			return append(all, lib), true
		}

		lib := all[i].clone()
		if !fn(&lib) {
			return all, false
		}
		all[i] = lib
		return all, true
	})
}

// Delete removes every library with the given key.
func (store *FileStore) Delete(ctx context.Context, key Key) (bool, error) {
	return store.file.Mutate(ctx, func(all []Library) ([]Library, bool) {
		kept := all[:0]
		for _, lib := range all {
			if lib.Key() != key {
				kept = append(kept, lib)
			}
		}
		return kept, len(kept) != len(all)
	})
}

// Separator returns the ID separator the store currently writes.
func (store *FileStore) Separator() string { return store.codec.Separator() }

// indexOf returns the position of the first library with key, or -1.
func indexOf(all []Library, key Key) int {
	for i, lib := range all {
		if lib.Key() == key {
			return i
		}
	}
	return -1
}
