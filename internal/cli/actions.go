// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/taibuivan/bookrec/internal/core/catalog"
	"github.com/taibuivan/bookrec/internal/library"
	"github.com/taibuivan/bookrec/internal/platform/metrics"
	"github.com/taibuivan/bookrec/internal/social/aggregation"
	"github.com/taibuivan/bookrec/internal/social/review"
	"github.com/taibuivan/bookrec/internal/social/suggestion"
	"github.com/taibuivan/bookrec/internal/users/auth"
	"github.com/taibuivan/bookrec/pkg/pagination"
	"github.com/taibuivan/bookrec/pkg/pointer"
	"github.com/taibuivan/bookrec/pkg/slice"
)

// # Search

func (s *Shell) searchByTitle(_ context.Context) error {
	q, err := s.readLine("Title (substring): ")
	if err != nil {
		return err
	}
	return s.printBooks(s.svc.Search.ByTitle(q))
}

func (s *Shell) searchByAuthor(_ context.Context) error {
	q, err := s.readLine("Author (substring): ")
	if err != nil {
		return err
	}
	return s.printBooks(s.svc.Search.ByAuthor(q))
}

func (s *Shell) searchByAuthorAndYear(_ context.Context) error {
	q, err := s.readLine("Author: ")
	if err != nil {
		return err
	}
	year, err := s.promptInt("Year (e.g. 1999): ", "Invalid year.")
	if err != nil {
		return settle(err)
	}
	return s.printBooks(s.svc.Search.ByAuthorAndYear(q, year))
}

// printBooks shows results one page at a time. Entering "n" shows the next page.
func (s *Shell) printBooks(books []catalog.Book) error {
	if len(books) == 0 {
		s.printf("No results.\n")
		return nil
	}
	s.printf("Found %d results:\n", len(books))

	for page := 1; ; page++ {
		window, meta := pagination.Slice(books, pagination.New(page, s.pageSize))
		for _, b := range window {
			s.printf("- [%d] %s (%s) | Authors: %s\n", b.ID, b.Title, yearText(b), strings.Join(b.Authors, ", "))
		}
		if !meta.HasNext() {
			return nil
		}

		more, err := s.prompt(fmt.Sprintf("Page %d/%d. n) next page, Enter) stop: ", meta.Page, meta.TotalPages))
		if err != nil {
			return err
		}
		if !strings.EqualFold(more, "n") {
			return nil
		}
	}
}

func yearText(b catalog.Book) string {
	if b.Year == nil {
		return ""
	}
	return fmt.Sprint(pointer.Val(b.Year))
}

// # Account

func (s *Shell) register(ctx context.Context) error {
	s.printf("=== Registration ===\n")

	var input auth.RegisterInput
	fields := []struct {
		label string
		dst   *string
	}{
		{"Userid: ", &input.UserID},
		{"Password: ", &input.Password},
		{"First name: ", &input.FirstName},
		{"Last name: ", &input.LastName},
		{"Fiscal code: ", &input.FiscalCode},
		{"Email: ", &input.Email},
	}
	for _, f := range fields {
		v, err := s.readLine(f.label)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	ok, err := s.svc.Auth.Register(ctx, input)
	if err != nil {
		return s.outcome(err)
	}
	if ok {
		s.printf("Registration completed.\n")
	} else {
		s.printf("Registration failed (userid already taken?).\n")
	}
	return nil
}

func (s *Shell) login(ctx context.Context) error {
	s.printf("=== Login ===\n")

	userID, err := s.prompt("Userid: ")
	if err != nil {
		return err
	}
	password, err := s.readLine("Password: ")
	if err != nil {
		return err
	}

	ok, err := s.svc.Auth.Login(ctx, userID, password)
	if err != nil {
		return err
	}
	if ok {
		s.printf("Login OK.\n")
	} else {
		s.printf("Wrong credentials.\n")
	}
	return nil
}

func (s *Shell) logout(_ context.Context) error {
	s.svc.Auth.Logout()
	s.printf("Logged out.\n")
	return nil
}

// # Libraries

func (s *Shell) saveLibrary(ctx context.Context) error {
	me := s.requireLogin()
	if me == "" {
		return nil
	}

	libs, err := s.svc.Libraries.ListUserLibraries(ctx, me)
	if err != nil {
		return err
	}
	s.printf("=== Libraries of %s ===\n", me)
	if len(libs) == 0 {
		s.printf("(no libraries)\n")
	}
	for _, lib := range libs {
		s.printf("- %s -> %d books\n", lib.Name, lib.Len())
	}

	name, err := s.prompt("Library name to create/update: ")
	if err != nil {
		return err
	}
	if name == "" {
		s.printf("Library name is required.\n")
		return nil
	}
	ids, err := s.promptIDs("Book IDs separated by commas (e.g. 10,25,31): ")
	if err != nil {
		return err
	}

	ok, err := s.svc.Libraries.SaveLibrary(ctx, library.New(me, name, ids...))
	if err != nil {
		return s.outcome(err)
	}
	if ok {
		s.printf("Library saved.\n")
	}
	return nil
}

// # Reviews & Suggestions

func (s *Shell) insertReview(ctx context.Context) error {
	me := s.requireLogin()
	if me == "" {
		return nil
	}

	bookID, err := s.promptInt("Book ID to review: ", "Invalid book ID.")
	if err != nil {
		return settle(err)
	}

	labels := []string{"Style", "Content", "Pleasantness", "Originality", "Edition"}
	scores := make([]int, len(labels))
	for i, label := range labels {
		if scores[i], err = s.promptScore(fmt.Sprintf("%s (1..5): ", label)); err != nil {
			return settle(err)
		}
	}

	comment, err := s.readLine("Comment (max 256, optional): ")
	if err != nil {
		return err
	}

	r, err := review.New(me, bookID, scores[0], scores[1], scores[2], scores[3], scores[4], comment)
	if err != nil {
		return s.outcome(err)
	}

	ok, err := s.svc.Reviews.Insert(ctx, r)
	if err != nil {
		return s.outcome(err)
	}
	if ok {
		s.printf("Review saved (final score %d).\n", r.FinalScore)
	} else {
		s.printf("Cannot save the review (the book must be in one of your libraries, one review per book).\n")
	}
	return nil
}

func (s *Shell) insertSuggestion(ctx context.Context) error {
	me := s.requireLogin()
	if me == "" {
		return nil
	}

	bookID, err := s.promptInt("Reference book ID: ", "Invalid book ID.")
	if err != nil {
		return settle(err)
	}
	ids, err := s.promptIDs("Suggest up to 3 book IDs (e.g. 101,202,303): ")
	if err != nil {
		return err
	}

	ok, err := s.svc.Suggestions.Insert(ctx, suggestion.Suggestion{UserID: me, BookID: bookID, Suggested: ids})
	if err != nil {
		return s.outcome(err)
	}
	if ok {
		s.printf("Suggestions saved.\n")
	} else {
		s.printf("Cannot save (max 3, no duplicates or self, books must be in your libraries, once per book).\n")
	}
	return nil
}

// # Details

func (s *Shell) bookDetail(ctx context.Context) error {
	q, err := s.readLine("Search a title to pick the book: ")
	if err != nil {
		return err
	}
	results := s.svc.Search.ByTitle(q)
	if err := s.printBooks(results); err != nil || len(results) == 0 {
		return err
	}

	id, err := s.promptInt("Book ID to show: ", "Invalid book ID.")
	if err != nil {
		return settle(err)
	}
	b, ok := s.svc.Catalog.FindByID(id)
	if !ok {
		s.printf("Book ID not found.\n")
		return nil
	}

	s.printf("\n=== Book Details ===\n")
	s.printf("[%d] %s\n", b.ID, b.Title)
	s.printf("Authors: %s\n", strings.Join(b.Authors, ", "))
	s.printf("Year: %s\n", yearText(b))
	s.printf("Publisher: %s\n", b.Publisher)
	s.printf("Category: %s\n", b.Category)

	stats, err := s.svc.Aggregation.ReviewStats(ctx, b.ID)
	if err != nil {
		return err
	}
	s.printf("\n-- Reviews --\n")
	s.printf("Number of reviews: %d\n", stats.Count)
	if stats.Count > 0 {
		s.printf("Means -> Style: %.2f, Content: %.2f, Pleasantness: %.2f, Originality: %.2f, Edition: %.2f\n",
			stats.Style, stats.Content, stats.Pleasantness, stats.Originality, stats.Edition)
		s.printf("Final score mean: %.2f\n", stats.FinalScore)

		buckets := slice.Map(stats.Distribution, func(c aggregation.ScoreCount) string {
			return fmt.Sprintf("%d=%d", c.Score, c.Count)
		})
		s.printf("Final score distribution: {%s}\n", strings.Join(buckets, ", "))
	}

	counts, err := s.svc.Aggregation.SuggestionStats(ctx, b.ID)
	if err != nil {
		return err
	}
	s.printf("\n-- Suggestions (book ID -> users) --\n")
	if len(counts) == 0 {
		s.printf("(none)\n")
		return nil
	}
	pairs := slice.Map(counts, func(c aggregation.SuggestedCount) string {
		return fmt.Sprintf("%d->%d", c.BookID, c.Count)
	})
	s.printf("%s\n", strings.Join(pairs, ", "))
	return nil
}

// # Diagnostics

func (s *Shell) showMetrics(_ context.Context) error {
	snapshot, err := s.svc.Metrics.Snapshot()
	if err != nil {
		return err
	}
	if len(snapshot) == 0 {
		s.printf("(no metrics recorded)\n")
		return nil
	}
	for _, key := range metrics.SortedKeys(snapshot) {
		s.printf("%s %g\n", key, snapshot[key])
	}
	return nil
}
