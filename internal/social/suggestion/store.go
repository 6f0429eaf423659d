// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package suggestion

import (
	"context"

	"github.com/taibuivan/bookrec/internal/platform/flatfile"
	"github.com/taibuivan/bookrec/internal/platform/metrics"
)

// Repository defines the data access contract for suggestion sets.
type Repository interface {

	/*
		List returns every suggestion set in file order.

		Parameters:
		  - context: context.Context

		Returns:
		  - []Suggestion: Possibly empty
		  - error: Storage retrieval failures
	*/
	List(context context.Context) ([]Suggestion, error)

	/*
		Append adds one suggestion set at the end of the storage.

		Parameters:
		  - context: context.Context
		  - s: Suggestion

		Returns:
		  - error: Persistence failures
	*/
	Append(context context.Context, s Suggestion) error

	/*
		Delete removes the suggestion set with the given key.

		Parameters:
		  - context: context.Context
		  - key: Key

		Returns:
		  - bool: false when no set has that key
		  - error: Persistence failures
	*/
	Delete(context context.Context, key Key) (bool, error)
}

// FileStore implements [Repository] over the flat suggestion file.
type FileStore struct {
	file  *flatfile.Store[Suggestion]
	codec *Codec
}

var _ Repository = (*FileStore)(nil)

// NewFileStore creates a suggestion store for the file at path. layout is
// used when the file does not exist yet.
func NewFileStore(path string, layout Layout, m *metrics.Metrics) *FileStore {
	codec := NewCodec(layout)
	return &FileStore{file: flatfile.NewStore[Suggestion](path, codec, m), codec: codec}
}

func (store *FileStore) List(ctx context.Context) ([]Suggestion, error) {
	return store.file.LoadAll(ctx)
}

func (store *FileStore) Append(ctx context.Context, s Suggestion) error {
	return store.file.Append(ctx, s)
}

func (store *FileStore) Delete(ctx context.Context, key Key) (bool, error) {
	return store.file.Mutate(ctx, func(all []Suggestion) ([]Suggestion, bool) {
		kept := all[:0]
		for _, s := range all {
			if s.Key() != key {
				kept = append(kept, s)
			}
		}
		return kept, len(kept) != len(all)
	})
}

// Layout returns the layout the store currently writes.
func (store *FileStore) Layout() Layout { return store.codec.Layout() }
