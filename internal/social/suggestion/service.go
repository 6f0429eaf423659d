// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package suggestion

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/taibuivan/bookrec/internal/platform/constants"
	"github.com/taibuivan/bookrec/internal/platform/validate"
)

// LibraryMembership answers whether a book is in one of a user's libraries.
type LibraryMembership interface {
	HasBook(ctx context.Context, userID string, bookID int) (bool, error)
}

// Service implements suggestion use cases.
type Service struct {
	repo      Repository
	libraries LibraryMembership
	logger    *slog.Logger

	insert sync.Mutex
}

// NewService constructs a new suggestion service.
func NewService(repo Repository, libraries LibraryMembership, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, libraries: libraries, logger: logger}
}

/*
Insert stores a new suggestion set.

Description: Duplicates and the base book are removed from the suggested IDs
first. What remains must be one to three books, each in one of the author's
libraries, and the author must not have suggested for this book before.

Parameters:
  - ctx: context.Context
  - s: Suggestion

Returns:
  - bool: false when a suggestion rule refuses the insertion
  - err: Validation (missing userid, non-positive book ID) or storage errors
*/
func (service *Service) Insert(ctx context.Context, s Suggestion) (bool, error) {
	v := &validate.Validator{}
	err := v.
		Required(FieldUserID, s.UserID).
		NoSeparator(FieldUserID, s.UserID, constants.FieldSeparator).
		Custom(FieldBookID, s.BookID <= 0, "Must be a positive book ID").
		Err()
	if err != nil {
		return false, err
	}

	ids := s.filtered()
	log := service.logger.With(slog.String(constants.FieldUserID, s.UserID), slog.Int(constants.FieldBookID, s.BookID))

	if len(ids) == 0 || len(ids) > constants.MaxSuggestions {
		log.Warn("suggestion_rejected_count", slog.Int("count", len(ids)))
		return false, nil
	}

	service.insert.Lock()
	defer service.insert.Unlock()

	for _, id := range ids {
		owned, err := service.libraries.HasBook(ctx, s.UserID, id)
		if err != nil {
			return false, fmt.Errorf("suggestion_service_insert_failed: %w", err)
		}
		if !owned {
			log.Warn("suggestion_rejected_not_in_library", slog.Int("suggested", id))
			return false, nil
		}
	}

	all, err := service.repo.List(ctx)
	if err != nil {
		return false, fmt.Errorf("suggestion_service_insert_failed: %w", err)
	}
	for _, existing := range all {
		if existing.Key() == s.Key() {
			log.Warn("suggestion_rejected_duplicate")
			return false, nil
		}
	}

	s.Suggested = ids
	if err := service.repo.Append(ctx, s); err != nil {
		return false, fmt.Errorf("suggestion_service_insert_failed: %w", err)
	}

	log.Info("suggestion_inserted", slog.Any("suggested", ids))
	return true, nil
}

// Delete removes the suggestion set of userID for bookID.
func (service *Service) Delete(ctx context.Context, userID string, bookID int) (bool, error) {
	removed, err := service.repo.Delete(ctx, Key{UserID: userID, BookID: bookID})
	if err != nil {
		return false, fmt.Errorf("suggestion_service_delete_failed: %w", err)
	}
	if removed {
		service.logger.Info("suggestion_deleted",
			slog.String(constants.FieldUserID, userID),
			slog.Int(constants.FieldBookID, bookID),
		)
	}
	return removed, nil
}

// ListByUser returns the sets written by userID.
func (service *Service) ListByUser(ctx context.Context, userID string) ([]Suggestion, error) {
	return service.filter(ctx, func(s Suggestion) bool { return s.UserID == userID })
}

// ListByBook returns the sets attached to bookID.
func (service *Service) ListByBook(ctx context.Context, bookID int) ([]Suggestion, error) {
	return service.filter(ctx, func(s Suggestion) bool { return s.BookID == bookID })
}

func (service *Service) filter(ctx context.Context, keep func(Suggestion) bool) ([]Suggestion, error) {
	all, err := service.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggestion_service_list_failed: %w", err)
	}

	out := []Suggestion{}
	for _, s := range all {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out, nil
}
