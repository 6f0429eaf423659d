// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/taibuivan/bookrec/internal/platform/constants"
)

// LibraryMembership answers whether a book is in one of a user's libraries.
type LibraryMembership interface {
	HasBook(ctx context.Context, userID string, bookID int) (bool, error)
}

// Service implements review use cases.
type Service struct {
	repo      Repository
	libraries LibraryMembership
	logger    *slog.Logger

	// insert serialises the checks and the append of Insert
	insert sync.Mutex
}

// NewService constructs a new review service.
func NewService(repo Repository, libraries LibraryMembership, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, libraries: libraries, logger: logger}
}

/*
Insert stores a new review.

Description: The final score is recomputed and the comment normalized. The
book must be in one of the author's libraries and the author must not have
reviewed it already.

Parameters:
  - ctx: context.Context
  - r: Review

Returns:
  - bool: false when a review rule refuses the insertion
  - err: Validation or storage errors
*/
func (service *Service) Insert(ctx context.Context, r Review) (bool, error) {
	r, err := r.normalized()
	if err != nil {
		return false, err
	}

	service.insert.Lock()
	defer service.insert.Unlock()

	owned, err := service.libraries.HasBook(ctx, r.UserID, r.BookID)
	if err != nil {
		return false, fmt.Errorf("review_service_insert_failed: %w", err)
	}
	if !owned {
		service.logger.Warn("review_rejected_not_in_library", attrs(r.Key())...)
		return false, nil
	}

	existing, found, err := service.Get(ctx, r.UserID, r.BookID)
	if err != nil {
		return false, err
	}
	if found {
		service.logger.Warn("review_rejected_duplicate", attrs(existing.Key())...)
		return false, nil
	}

	if err := service.repo.Append(ctx, r); err != nil {
		return false, fmt.Errorf("review_service_insert_failed: %w", err)
	}

	service.logger.Info("review_inserted", append(attrs(r.Key()), slog.Int(FieldFinalScore, r.FinalScore))...)
	return true, nil
}

// Update replaces an existing review. The final score is recomputed.
func (service *Service) Update(ctx context.Context, r Review) (bool, error) {
	r, err := r.normalized()
	if err != nil {
		return false, err
	}

	replaced, err := service.repo.Replace(ctx, r)
	if err != nil {
		return false, fmt.Errorf("review_service_update_failed: %w", err)
	}
	if replaced {
		service.logger.Info("review_updated", attrs(r.Key())...)
	}
	return replaced, nil
}

// Delete removes the review of userID for bookID.
func (service *Service) Delete(ctx context.Context, userID string, bookID int) (bool, error) {
	key := Key{UserID: userID, BookID: bookID}

	removed, err := service.repo.Delete(ctx, key)
	if err != nil {
		return false, fmt.Errorf("review_service_delete_failed: %w", err)
	}
	if removed {
		service.logger.Info("review_deleted", attrs(key)...)
	}
	return removed, nil
}

// # Queries

// ListByUser returns the reviews written by userID.
func (service *Service) ListByUser(ctx context.Context, userID string) ([]Review, error) {
	return service.filter(ctx, func(r Review) bool { return r.UserID == userID })
}

// ListByBook returns the reviews of bookID.
func (service *Service) ListByBook(ctx context.Context, bookID int) ([]Review, error) {
	return service.filter(ctx, func(r Review) bool { return r.BookID == bookID })
}

// Get returns the review of userID for bookID.
func (service *Service) Get(ctx context.Context, userID string, bookID int) (Review, bool, error) {
	key := Key{UserID: userID, BookID: bookID}

	found, err := service.filter(ctx, func(r Review) bool { return r.Key() == key })
	if err != nil || len(found) == 0 {
		return Review{}, false, err
	}
	return found[0], true, nil
}

func (service *Service) filter(ctx context.Context, keep func(Review) bool) ([]Review, error) {
	all, err := service.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("review_service_list_failed: %w", err)
	}

	out := []Review{}
	for _, r := range all {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func attrs(key Key) []any {
	return []any{
		slog.String(constants.FieldUserID, key.UserID),
		slog.Int(constants.FieldBookID, key.BookID),
	}
}
