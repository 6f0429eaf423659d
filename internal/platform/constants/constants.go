// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire application.

It defines the on-disk vocabulary (separators, default file names) and the
business limits shared between the shell and the service layer.

Categories:

  - Metadata: Application name and version.
  - File Format: Field and sub-field separators.
  - Data Files: Default file names under the data directory.
  - Business Limits: Score ranges, comment and suggestion caps.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

// # Metadata

const (
	AppName    = "bookrec"
	AppVersion = "0.1.0-dev"
)

// # File Format

const (
	// FieldSeparator separates the fields of every record line.
	FieldSeparator = ";"

	// AuthorSeparator joins the authors of a book in the catalog file.
	AuthorSeparator = "|"

	// IDListComma and IDListPipe are the two accepted separators of book ID lists.
	IDListComma = ","
	IDListPipe  = "|"
)

// # Data Files

const (
	DefaultDataDir         = "data"
	DefaultBooksFile       = "Libri.dati"
	DefaultBooksCSVFile    = "BooksDatasetClean.csv"
	DefaultUsersFile       = "UtentiRegistrati.dati"
	DefaultLibrariesFile   = "Librerie.dati"
	DefaultReviewsFile     = "ValutazioniLibri.dati"
	DefaultSuggestionsFile = "ConsigliLibri.dati"
)

// # Business Limits

const (
	// MinScore and MaxScore bound each of the five review sub-scores.
	MinScore = 1
	MaxScore = 5

	// MaxCommentLength is the longest review comment, in characters.
	MaxCommentLength = 256

	// MaxSuggestions is the largest number of books one suggestion set may name.
	MaxSuggestions = 3

	// FiscalCodeLength is the length of an Italian codice fiscale.
	FiscalCodeLength = 16

	// DefaultSearchPageSize is how many search results the shell shows at once.
	DefaultSearchPageSize = 20
)

// # Log Field Identifiers

const (
	FieldApp      = "app"
	FieldVersion  = "version"
	FieldAction   = "action"
	FieldActionID = "action_id"
	FieldUserID   = "user_id"
	FieldBookID   = "book_id"
	FieldEntity   = "entity"
	FieldPath     = "path"
	FieldError    = "error"
)
