// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"

	"github.com/taibuivan/bookrec/internal/platform/flatfile"
	"github.com/taibuivan/bookrec/internal/platform/metrics"
)

// # Review Data Access

// Repository defines the data access contract for reviews.
type Repository interface {

	/*
		List returns every review in file order.

		Parameters:
		  - context: context.Context

		Returns:
		  - []Review: Possibly empty
		  - error: Storage retrieval failures
	*/
	List(context context.Context) ([]Review, error)

	/*
		Append adds one review at the end of the storage.

		Parameters:
		  - context: context.Context
		  - review: Review

		Returns:
		  - error: Persistence failures
	*/
	Append(context context.Context, review Review) error

	/*
		Replace overwrites the review with the same key.

		Parameters:
		  - context: context.Context
		  - review: Review

		Returns:
		  - bool: false when no review has that key
		  - error: Persistence failures
	*/
	Replace(context context.Context, review Review) (bool, error)

	/*
		Delete removes the review with the given key.

		Parameters:
		  - context: context.Context
		  - key: Key

		Returns:
		  - bool: false when no review has that key
		  - error: Persistence failures
	*/
	Delete(context context.Context, key Key) (bool, error)
}

// FileStore implements [Repository] over the flat review file.
type FileStore struct {
	file *flatfile.Store[Review]
}

var _ Repository = (*FileStore)(nil)

// NewFileStore creates a review store for the file at path.
func NewFileStore(path string, m *metrics.Metrics) *FileStore {
	return &FileStore{file: flatfile.NewStore[Review](path, Codec{}, m)}
}

// List returns every review in file order.
func (store *FileStore) List(ctx context.Context) ([]Review, error) {
	return store.file.LoadAll(ctx)
}

// Append adds one review line.
func (store *FileStore) Append(ctx context.Context, review Review) error {
	return store.file.Append(ctx, review)
}

// Replace overwrites the first review with the same key.
func (store *FileStore) Replace(ctx context.Context, review Review) (bool, error) {
	return store.file.Mutate(ctx, func(all []Review) ([]Review, bool) {
		for i := range all {
			if all[i].Key() == review.Key() {
				all[i] = review
				return all, true
			}
		}
		return all, false
	})
}

// Delete removes every review with the given key.
func (store *FileStore) Delete(ctx context.Context, key Key) (bool, error) {
	return store.file.Mutate(ctx, func(all []Review) ([]Review, bool) {
		kept := all[:0]
		for _, r := range all {
			if r.Key() != key {
				kept = append(kept, r)
			}
		}
		return kept, len(kept) != len(all)
	})
}
