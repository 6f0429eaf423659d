// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"sync"

	"github.com/taibuivan/bookrec/internal/platform/flatfile"
	"github.com/taibuivan/bookrec/internal/platform/metrics"
)

// FileUserStore implements [UserRepository] over the flat user file.
//
// When a userid appears on more than one line, the last line wins and keeps
// the position of the first.
type FileUserStore struct {
	file *flatfile.Store[User]

	// create serialises the check-then-append of Create
	create sync.Mutex
}

var _ UserRepository = (*FileUserStore)(nil)

// NewFileUserStore creates a user store for the file at path.
func NewFileUserStore(path string, m *metrics.Metrics) *FileUserStore {
	return &FileUserStore{file: flatfile.NewStore[User](path, Codec{}, m)}
}

// List returns every account, collapsed by userid.
func (store *FileUserStore) List(ctx context.Context) ([]User, error) {
	users, err := store.file.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return dedupe(users), nil
}

// FindByID returns the account with the given userid, or nil.
func (store *FileUserStore) FindByID(ctx context.Context, userID string) (*User, error) {
	users, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].UserID == userID {
			user := users[i]
			return &user, nil
		}
	}
	return nil, nil
}

// Create appends user unless its userid is taken.
func (store *FileUserStore) Create(ctx context.Context, user *User) (bool, error) {
	store.create.Lock()
	defer store.create.Unlock()

	existing, err := store.FindByID(ctx, user.UserID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	if err := store.file.Append(ctx, *user); err != nil {
		return false, err
	}
	return true, nil
}

// Update rewrites the file with user replacing the account of the same userid.
func (store *FileUserStore) Update(ctx context.Context, user *User) (bool, error) {
	return store.file.Mutate(ctx, func(users []User) ([]User, bool) {
		users = dedupe(users)
		for i := range users {
			if users[i].UserID == user.UserID {
				users[i] = *user
				return users, true
			}
		}
		return users, false
	})
}

// Delete rewrites the file without the account of the given userid.
func (store *FileUserStore) Delete(ctx context.Context, userID string) (bool, error) {
	return store.file.Mutate(ctx, func(users []User) ([]User, bool) {
		users = dedupe(users)
		for i := range users {
			if users[i].UserID == userID {
				return append(users[:i], users[i+1:]...), true
			}
		}
		return users, false
	})
}

// dedupe collapses repeated userids: last value, first position.
func dedupe(users []User) []User {
	index := make(map[string]int, len(users))
	out := make([]User, 0, len(users))
	for _, u := range users {
		if i, ok := index[u.UserID]; ok {
			out[i] = u
			continue
		}
		index[u.UserID] = len(out)
		out = append(out, u)
	}
	return out
}
