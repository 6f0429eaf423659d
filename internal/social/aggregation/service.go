// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package aggregation computes per-book statistics over reviews and
// suggestions. It reads the stores directly and never writes.
package aggregation

import (
	"context"
	"fmt"
	"slices"

	"github.com/taibuivan/bookrec/internal/social/review"
	"github.com/taibuivan/bookrec/internal/social/suggestion"
	"github.com/taibuivan/bookrec/pkg/slice"
)

// ReviewSource lists every stored review.
type ReviewSource interface {
	List(ctx context.Context) ([]review.Review, error)
}

// SuggestionSource lists every stored suggestion set.
type SuggestionSource interface {
	List(ctx context.Context) ([]suggestion.Suggestion, error)
}

// # Result Types

// ScoreCount is one bucket of the final score histogram.
type ScoreCount struct {
	Score int
	Count int
}

// ReviewStats summarises the reviews of one book. With Count == 0 every
// mean is 0 and Distribution is empty.
type ReviewStats struct {
	BookID int
	Count  int

	Style        float64
	Content      float64
	Pleasantness float64
	Originality  float64
	Edition      float64
	FinalScore   float64

	// Distribution counts reviews per final score, ascending by score.
	Distribution []ScoreCount
}

// SuggestedCount is how many suggestion sets name one book.
type SuggestedCount struct {
	BookID int
	Count  int
}

// Service computes aggregated views.
type Service struct {
	reviews     ReviewSource
	suggestions SuggestionSource
}

// NewService constructs a new aggregation service.
func NewService(reviews ReviewSource, suggestions SuggestionSource) *Service {
	return &Service{reviews: reviews, suggestions: suggestions}
}

/*
ReviewStats computes the sub-score means, the final score mean and the final
score histogram of a book.

Parameters:
  - ctx: context.Context
  - bookID: int

Returns:
  - ReviewStats: Zero state when the book has no reviews
  - err: Storage errors
*/
func (service *Service) ReviewStats(ctx context.Context, bookID int) (ReviewStats, error) {
	all, err := service.reviews.List(ctx)
	if err != nil {
		return ReviewStats{}, fmt.Errorf("aggregation_service_review_stats_failed: %w", err)
	}

	reviews := slice.Filter(all, func(r review.Review) bool { return r.BookID == bookID })
	stats := ReviewStats{BookID: bookID, Count: len(reviews), Distribution: []ScoreCount{}}
	if stats.Count == 0 {
		return stats, nil
	}

	n := float64(stats.Count)
	mean := func(score func(r review.Review) int) float64 {
		total := slice.Reduce(reviews, 0, func(acc int, r review.Review) int { return acc + score(r) })
		return float64(total) / n
	}

	stats.Style = mean(func(r review.Review) int { return r.Style })
	stats.Content = mean(func(r review.Review) int { return r.Content })
	stats.Pleasantness = mean(func(r review.Review) int { return r.Pleasantness })
	stats.Originality = mean(func(r review.Review) int { return r.Originality })
	stats.Edition = mean(func(r review.Review) int { return r.Edition })
	stats.FinalScore = mean(func(r review.Review) int { return r.FinalScore })

	histogram := slice.Reduce(reviews, map[int]int{}, func(acc map[int]int, r review.Review) map[int]int {
		acc[r.FinalScore]++
		return acc
	})
	for score, count := range histogram {
		stats.Distribution = append(stats.Distribution, ScoreCount{Score: score, Count: count})
	}
	slices.SortFunc(stats.Distribution, func(a, b ScoreCount) int { return a.Score - b.Score })

	return stats, nil
}

/*
SuggestionStats counts, for every book suggested alongside bookID, the
suggestion sets naming it.

Description: Results are sorted by count, descending. Books with the same
count keep the order in which they were first seen.

Parameters:
  - ctx: context.Context
  - bookID: int

Returns:
  - []SuggestedCount: Empty when nobody suggested for the book
  - err: Storage errors
*/
func (service *Service) SuggestionStats(ctx context.Context, bookID int) ([]SuggestedCount, error) {
	all, err := service.suggestions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregation_service_suggestion_stats_failed: %w", err)
	}

	counts := []SuggestedCount{}
	index := map[int]int{}
	for _, s := range all {
		if s.BookID != bookID {
			continue
		}

		// A set counts once per suggested book
		seen := map[int]bool{}
		for _, id := range s.Suggested {
			if seen[id] {
				continue
			}
			seen[id] = true

			if i, ok := index[id]; ok {
				counts[i].Count++
				continue
			}
			index[id] = len(counts)
			counts = append(counts, SuggestedCount{BookID: id, Count: 1})
		}
	}

	slices.SortStableFunc(counts, func(a, b SuggestedCount) int { return b.Count - a.Count })
	return counts, nil
}
