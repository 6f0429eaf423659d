// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. Local overrides can be
kept in '.env' and '.env.local' files, loaded with 'joho/godotenv' without ever
overriding variables already set in the OS environment.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to stores and the shell via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/taibuivan/bookrec/internal/platform/constants"
)

// # Configuration Schema

// Suggestion file layouts.
const (
	LayoutColumns = "columns"
	LayoutList    = "list"
)

// Log handler formats.
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Config holds all runtime configuration for bookrec.
type Config struct {

	// Data directory and file names (relative names resolve against DataDir)
	DataDir         string `env:"DATA_DIR"         envDefault:"data"`
	BooksFile       string `env:"BOOKS_FILE"       envDefault:"Libri.dati"`
	BooksCSVFile    string `env:"BOOKS_CSV_FILE"   envDefault:"BooksDatasetClean.csv"`
	UsersFile       string `env:"USERS_FILE"       envDefault:"UtentiRegistrati.dati"`
	LibrariesFile   string `env:"LIBRARIES_FILE"   envDefault:"Librerie.dati"`
	ReviewsFile     string `env:"REVIEWS_FILE"     envDefault:"ValutazioniLibri.dati"`
	SuggestionsFile string `env:"SUGGESTIONS_FILE" envDefault:"ConsigliLibri.dati"`

	// Canonical conventions for files created by this process
	LibraryIDSeparator string `env:"LIBRARY_ID_SEPARATOR" envDefault:","`
	SuggestionLayout   string `env:"SUGGESTION_LAYOUT"    envDefault:"columns"`

	// Shell
	SearchPageSize int `env:"SEARCH_PAGE_SIZE" envDefault:"20"`

	// Logging
	Debug     bool   `env:"DEBUG"      envDefault:"false"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// # Configuration Loading

// dotEnvFiles are loaded in order; earlier files win over later ones and the
// OS environment wins over both.
var dotEnvFiles = []string{".env", ".env.local"}

// Load reads optional .env files, then parses environment variables into a [Config].
func Load() (*Config, error) {

	// Load .env files if they exist. godotenv.Load never overrides variables
	// that are already set.
	for _, name := range dotEnvFiles {
		if _, err := os.Stat(name); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("config: failed to stat %s: %w", name, err)
		}
		if err := godotenv.Load(name); err != nil {
			return nil, fmt.Errorf("config: failed to load %s: %w", name, err)
		}
	}

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate rejects enumerated values the stores cannot honour.
func (c *Config) validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("config: DATA_DIR must not be empty")
	}
	if c.LibraryIDSeparator != constants.IDListComma && c.LibraryIDSeparator != constants.IDListPipe {
		return fmt.Errorf("config: LIBRARY_ID_SEPARATOR must be %q or %q, got %q",
			constants.IDListComma, constants.IDListPipe, c.LibraryIDSeparator)
	}
	if c.SuggestionLayout != LayoutColumns && c.SuggestionLayout != LayoutList {
		return fmt.Errorf("config: SUGGESTION_LAYOUT must be %q or %q, got %q",
			LayoutColumns, LayoutList, c.SuggestionLayout)
	}
	if c.LogFormat != LogFormatJSON && c.LogFormat != LogFormatText {
		return fmt.Errorf("config: LOG_FORMAT must be \"json\" or \"text\", got %q", c.LogFormat)
	}
	if c.SearchPageSize < 1 {
		return fmt.Errorf("config: SEARCH_PAGE_SIZE must be positive, got %d", c.SearchPageSize)
	}
	return nil
}

// # Path Resolution

// Path resolves a data file name against DataDir. Absolute names are kept as-is.
func (c *Config) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// BooksPath returns the resolved catalog file path.
func (c *Config) BooksPath() string { return c.Path(c.BooksFile) }

// BooksCSVPath returns the resolved bootstrap dataset path.
func (c *Config) BooksCSVPath() string { return c.Path(c.BooksCSVFile) }

// UsersPath returns the resolved users file path.
func (c *Config) UsersPath() string { return c.Path(c.UsersFile) }

// LibrariesPath returns the resolved libraries file path.
func (c *Config) LibrariesPath() string { return c.Path(c.LibrariesFile) }

// ReviewsPath returns the resolved reviews file path.
func (c *Config) ReviewsPath() string { return c.Path(c.ReviewsFile) }

// SuggestionsPath returns the resolved suggestions file path.
func (c *Config) SuggestionsPath() string { return c.Path(c.SuggestionsFile) }
