// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command bookrec is the entry point for the book recommender text shell.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables and .env files.
//  3. Build the storage metrics registry.
//  4. Load the book catalog (primary file, else CSV bootstrap).
//  5. Wire stores and services.
//  6. Run the menu until exit, end of input or an OS signal.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/taibuivan/bookrec/internal/cli"
	"github.com/taibuivan/bookrec/internal/core/catalog"
	"github.com/taibuivan/bookrec/internal/core/search"
	"github.com/taibuivan/bookrec/internal/library"
	"github.com/taibuivan/bookrec/internal/platform/config"
	"github.com/taibuivan/bookrec/internal/platform/constants"
	"github.com/taibuivan/bookrec/internal/platform/ctxutil"
	"github.com/taibuivan/bookrec/internal/platform/metrics"
	"github.com/taibuivan/bookrec/internal/social/aggregation"
	"github.com/taibuivan/bookrec/internal/social/review"
	"github.com/taibuivan/bookrec/internal/social/suggestion"
	"github.com/taibuivan/bookrec/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Logs go to stderr so they never interleave with the menu on stdout.
	log := newLogger(config.LogFormatJSON, slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("bookrec_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	log = newLogger(cfg.LogFormat, level)
	slog.SetDefault(log)

	log.Info("configuration_loaded",
		slog.String("data_dir", cfg.DataDir),
		slog.String("library_id_separator", cfg.LibraryIDSeparator),
		slog.String("suggestion_layout", cfg.SuggestionLayout),
	)

	// Cancelled on SIGINT/SIGTERM; the shell checks it between actions.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = ctxutil.WithLogger(ctx, log)

	// ── 3. Metrics ────────────────────────────────────────────────────────
	m := metrics.New()

	// ── 4. Catalog ────────────────────────────────────────────────────────
	books := catalog.NewStore(cfg.BooksPath(), cfg.BooksCSVPath(), m)
	must(log, books.Load(ctx), "load catalog")

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewFileUserStore(cfg.UsersPath(), m)
	libraryRepository := library.NewFileStore(cfg.LibrariesPath(), cfg.LibraryIDSeparator, m)
	reviewRepository := review.NewFileStore(cfg.ReviewsPath(), m)
	suggestionRepository := suggestion.NewFileStore(cfg.SuggestionsPath(), suggestion.Layout(cfg.SuggestionLayout), m)

	libraryService := library.NewService(libraryRepository, log)

	services := cli.Services{
		Catalog:     books,
		Search:      search.NewService(books),
		Auth:        auth.NewService(userRepository, log),
		Libraries:   libraryService,
		Reviews:     review.NewService(reviewRepository, libraryService, log),
		Suggestions: suggestion.NewService(suggestionRepository, libraryService, log),
		Aggregation: aggregation.NewService(reviewRepository, suggestionRepository),
		Metrics:     m,
	}

	// ── 6. Shell ──────────────────────────────────────────────────────────
	shell := cli.New(os.Stdin, os.Stdout, services, cfg.SearchPageSize, log)
	if err := shell.Run(ctx); err != nil {
		log.Info("shutdown signal received", slog.Any(constants.FieldError, err))
	}

	log.Info("bookrec_stopped")
}

// newLogger builds the process logger for the given format and level.
func newLogger(format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewJSONHandler(os.Stderr, opts)
	if format == config.LogFormatText {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler).With(
		slog.String(constants.FieldApp, constants.AppName),
		slog.String(constants.FieldVersion, constants.AppVersion),
	)
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// reported by the shell.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any(constants.FieldError, err),
		)
		os.Exit(1)
	}
}
