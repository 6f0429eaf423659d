// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/bookrec/internal/platform/constants"
	"github.com/taibuivan/bookrec/internal/platform/validate"
)

// Service implements library use cases.
//
// It also answers the membership questions the review and suggestion rules
// depend on (see [Service.HasBook]).
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new library service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// # Queries

// ListUserLibraries returns the user's libraries in file order.
func (service *Service) ListUserLibraries(ctx context.Context, userID string) ([]Library, error) {
	libs, err := service.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("library_service_list_failed: %w", err)
	}
	return libs, nil
}

// GetLibrary returns the library with the given key.
func (service *Service) GetLibrary(ctx context.Context, userID, name string) (Library, bool, error) {
	key := NewKey(userID, name)
	libs, err := service.ListUserLibraries(ctx, key.UserID)
	if err != nil {
		return Library{}, false, err
	}
	for _, lib := range libs {
		if lib.Name == key.Name {
			return lib, true, nil
		}
	}
	return Library{}, false, nil
}

// HasBook reports whether bookID is in any of the user's libraries.
func (service *Service) HasBook(ctx context.Context, userID string, bookID int) (bool, error) {
	libs, err := service.ListUserLibraries(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, lib := range libs {
		if lib.Contains(bookID) {
			return true, nil
		}
	}
	return false, nil
}

// UserBookIDs returns the union of the user's library IDs in first-seen order.
func (service *Service) UserBookIDs(ctx context.Context, userID string) ([]int, error) {
	libs, err := service.ListUserLibraries(ctx, userID)
	if err != nil {
		return nil, err
	}

	union := New(userID, "")
	for _, lib := range libs {
		for _, id := range lib.ids {
			union.Add(id)
		}
	}
	return union.BookIDs(), nil
}

// # Mutations

// SaveLibrary replaces the library with the same (userid, name), or appends it.
// The key is normalised with [NewKey] first, so saving the same library twice
// leaves one record. It reports true unless the owner is invalid or storage fails.
func (service *Service) SaveLibrary(ctx context.Context, lib Library) (bool, error) {
	key := NewKey(lib.UserID, lib.Name)
	if err := validateOwner(&validate.Validator{}, key.UserID).Err(); err != nil {
		return false, err
	}
	lib = lib.clone()
	lib.UserID, lib.Name = key.UserID, key.Name

	if err := service.repo.Upsert(ctx, lib); err != nil {
		return false, fmt.Errorf("library_service_save_failed: %w", err)
	}

	service.logger.Info("library_saved",
		slog.String(constants.FieldUserID, lib.UserID),
		slog.String("library", lib.Name),
		slog.Int("books", lib.Len()),
	)
	return true, nil
}

// DeleteLibrary removes the library with the given key.
func (service *Service) DeleteLibrary(ctx context.Context, userID, name string) (bool, error) {
	key := NewKey(userID, name)
	removed, err := service.repo.Delete(ctx, key)
	if err != nil {
		return false, fmt.Errorf("library_service_delete_failed: %w", err)
	}
	if removed {
		service.logger.Info("library_deleted", slog.String(constants.FieldUserID, key.UserID), slog.String("library", key.Name))
	}
	return removed, nil
}

/*
AddBook adds a book to a library, creating the library when missing.

Parameters:
  - ctx: context.Context
  - userID, name: library key
  - bookID: positive book ID

Returns:
  - bool: false when the book is already in the library
  - err: Validation (owner or non-positive ID) or storage errors
*/
func (service *Service) AddBook(ctx context.Context, userID, name string, bookID int) (bool, error) {
	key := NewKey(userID, name)
	err := validateOwner(&validate.Validator{}, key.UserID).
		Custom(FieldBookIDs, bookID <= 0, "Must be a positive book ID").
		Err()
	if err != nil {
		return false, err
	}

	added, err := service.repo.Modify(ctx, key, true, func(lib *Library) bool {
		return lib.Add(bookID)
	})
	if err != nil {
		return false, fmt.Errorf("library_service_add_book_failed: %w", err)
	}
	if added {
		service.logger.Info("library_book_added",
			slog.String(constants.FieldUserID, key.UserID),
			slog.String("library", key.Name),
			slog.Int(constants.FieldBookID, bookID),
		)
	}
	return added, nil
}

/*
RemoveBook removes a book from an existing library.

Parameters:
  - ctx: context.Context
  - userID, name: library key
  - bookID: book ID

Returns:
  - bool: false when the library or the book is missing
  - err: Storage errors
*/
func (service *Service) RemoveBook(ctx context.Context, userID, name string, bookID int) (bool, error) {
	key := NewKey(userID, name)
	removed, err := service.repo.Modify(ctx, key, false, func(lib *Library) bool {
		return lib.Remove(bookID)
	})
	if err != nil {
		return false, fmt.Errorf("library_service_remove_book_failed: %w", err)
	}
	if removed {
		service.logger.Info("library_book_removed",
			slog.String(constants.FieldUserID, key.UserID),
			slog.String("library", key.Name),
			slog.Int(constants.FieldBookID, bookID),
		)
	}
	return removed, nil
}

// validateOwner adds the rules a library owner must satisfy to be stored in
// the first column.
func validateOwner(v *validate.Validator, userID string) *validate.Validator {
	return v.
		Required(FieldUserID, userID).
		NoSeparator(FieldUserID, userID, constants.FieldSeparator)
}
