// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cli is the line-oriented text menu of bookrec.

Every menu entry maps to one service call. Raw input is parsed before the
call: non-numeric IDs and scores outside 1..5 are refused at the prompt, and
the services see only well-typed values.

Actions run through a small decorator chain (trace, logging, recovery) so each
one carries its own action ID and logger in the context.
*/
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/taibuivan/bookrec/internal/core/catalog"
	"github.com/taibuivan/bookrec/internal/core/search"
	"github.com/taibuivan/bookrec/internal/library"
	"github.com/taibuivan/bookrec/internal/platform/apperr"
	"github.com/taibuivan/bookrec/internal/platform/metrics"
	"github.com/taibuivan/bookrec/internal/social/aggregation"
	"github.com/taibuivan/bookrec/internal/social/review"
	"github.com/taibuivan/bookrec/internal/social/suggestion"
	"github.com/taibuivan/bookrec/internal/users/auth"
)

// Services groups the collaborators the menu calls into.
type Services struct {
	Catalog     *catalog.Store
	Search      *search.Service
	Auth        *auth.Service
	Libraries   *library.Service
	Reviews     *review.Service
	Suggestions *suggestion.Service
	Aggregation *aggregation.Service
	Metrics     *metrics.Metrics
}

// Shell reads menu choices from an input stream and writes results to an output stream.
type Shell struct {
	in       *bufio.Scanner
	out      io.Writer
	svc      Services
	pageSize int
	logger   *slog.Logger

	actions map[string]Action
}

// entry is one line of the menu.
type entry struct {
	key   string
	name  string
	label string
	run   func(s *Shell, ctx context.Context) error
}

var menu = []entry{
	{"1", "search_title", "Search by title", (*Shell).searchByTitle},
	{"2", "search_author", "Search by author", (*Shell).searchByAuthor},
	{"3", "search_author_year", "Search by author and year", (*Shell).searchByAuthorAndYear},
	{"4", "register", "Register", (*Shell).register},
	{"5", "login", "Login", (*Shell).login},
	{"6", "save_library", "Create/update library (login required)", (*Shell).saveLibrary},
	{"7", "insert_review", "Insert review (login required)", (*Shell).insertReview},
	{"8", "insert_suggestion", "Insert suggestions (login required)", (*Shell).insertSuggestion},
	{"9", "book_detail", "View book details (aggregated)", (*Shell).bookDetail},
	{"L", "logout", "Logout", (*Shell).logout},
	{"M", "metrics", "Storage metrics", (*Shell).showMetrics},
}

// New builds a shell over in and out. pageSize bounds each page of search results.
func New(in io.Reader, out io.Writer, svc Services, pageSize int, logger *slog.Logger) *Shell {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Shell{
		in:       bufio.NewScanner(in),
		out:      out,
		svc:      svc,
		pageSize: pageSize,
		logger:   logger,
		actions:  make(map[string]Action, len(menu)),
	}

	for _, e := range menu {
		run := e.run
		s.actions[e.key] = chain(e.name, func(ctx context.Context) error { return run(s, ctx) },
			Trace(),
			StructuredLogger(logger),
			PanicRecovery(),
		)
	}
	return s
}

/*
Run shows the menu until the user exits or the input ends.

Parameters:
  - ctx: context.Context

Returns:
  - error: Only when ctx is cancelled; action failures are reported in the output
*/
func (s *Shell) Run(ctx context.Context) error {
	s.printf("=== Book Recommender ===\n")
	s.printf("Books loaded: %d\n", s.svc.Catalog.Size())

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.printMenu()
		choice, err := s.prompt("Choice: ")
		if err != nil {
			return nil
		}
		choice = strings.ToUpper(choice)

		if choice == "0" {
			s.printf("Goodbye.\n")
			return nil
		}

		action, ok := s.actions[choice]
		if !ok {
			s.printf("Invalid choice.\n")
			continue
		}

		err = action(ctx)
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			s.printf("Error: %v\n", err)
		}
	}
}

func (s *Shell) printMenu() {
	s.printf("\nMenu:\n")
	for _, e := range menu {
		s.printf("%s) %s\n", e.key, e.label)
	}
	s.printf("0) Exit\n")
}

// # Output Helpers

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// outcome prints validation failures and passes every other error through.
func (s *Shell) outcome(err error) error {
	ae := apperr.As(err)
	if ae == nil || ae.Code != apperr.CodeValidation {
		return err
	}

	s.printf("Invalid input:\n")
	for _, d := range ae.Details {
		s.printf("  - %s: %s\n", d.Field, d.Message)
	}
	return nil
}

// requireLogin returns the logged-in userid, or prints a notice and returns "".
func (s *Shell) requireLogin() string {
	me := s.svc.Auth.CurrentUserID()
	if me == "" {
		s.printf("You must log in first.\n")
	}
	return me
}
