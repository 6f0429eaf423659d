// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/taibuivan/bookrec/internal/platform/apperr"
	"github.com/taibuivan/bookrec/internal/platform/constants"
	"github.com/taibuivan/bookrec/internal/platform/ctxutil"
	"github.com/taibuivan/bookrec/internal/platform/flatfile"
	"github.com/taibuivan/bookrec/internal/platform/metrics"
)

// Store keeps the full catalog in memory, backed by the primary book file.
//
// # Concurrency
//
// Reads take a shared lock; Load and Reload replace the catalog under an
// exclusive lock. Returned books are copies.
type Store struct {
	file    *flatfile.Store[Book]
	csvPath string

	mu     sync.RWMutex
	books  []Book
	byID   map[int]int
	nextID int
}

// NewStore creates a catalog over the primary file at path and the bootstrap
// CSV at csvPath. An empty csvPath selects the default dataset name in the
// directory of the primary file.
func NewStore(path, csvPath string, m *metrics.Metrics) *Store {
	if csvPath == "" {
		csvPath = filepath.Join(filepath.Dir(path), constants.DefaultBooksCSVFile)
	}
	return &Store{
		file:    flatfile.NewStore[Book](path, Codec{}, m),
		csvPath: csvPath,
		byID:    map[int]int{},
		nextID:  1,
	}
}

// # Loading

// Load populates the catalog.
//
// The primary file wins when present. Otherwise the CSV dataset is imported
// and persisted to the primary file. With neither, Load fails with a
// NO_DATA_SOURCE error naming both absolute paths.
func (s *Store) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	books, fromCSV, err := s.read(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.replace(books)
	s.mu.Unlock()

	if fromCSV {
		if err := s.file.SaveAll(ctx, books); err != nil {
			return err
		}
	}

	ctxutil.GetLogger(ctx).Info("catalog_loaded",
		slog.String(constants.FieldPath, s.file.Path()),
		slog.Int("books", len(books)),
		slog.Bool("from_csv", fromCSV),
	)
	return nil
}

// Reload discards the in-memory catalog and loads it again.
func (s *Store) Reload(ctx context.Context) error {
	return s.Load(ctx)
}

// read picks the data source and decodes it.
func (s *Store) read(ctx context.Context) ([]Book, bool, error) {
	exists, err := s.file.Exists()
	if err != nil {
		return nil, false, err
	}
	if exists {
		books, err := s.file.LoadAll(ctx)
		return books, false, err
	}

	csvExists, err := flatfile.Exists(s.csvPath)
	if err != nil {
		return nil, false, err
	}
	if !csvExists {
		return nil, false, apperr.NoDataSource(absolute(s.file.Path()), absolute(s.csvPath))
	}

	books, err := readCSV(ctx, s.csvPath)
	return books, true, err
}

// replace installs books. Entries without an ID are numbered from one past the
// highest ID in the file, so they never collide with a later line.
// The caller holds s.mu.
func (s *Store) replace(books []Book) {
	s.books = make([]Book, 0, len(books))
	s.byID = make(map[int]int, len(books))
	s.nextID = 1

	for _, b := range books {
		s.nextID = max(s.nextID, b.ID+1)
	}

	for _, b := range books {
		if b.ID <= 0 {
			b.ID = s.nextID
			s.nextID++
		}

		// First occurrence wins for lookups; duplicates stay listed
		if _, ok := s.byID[b.ID]; !ok {
			s.byID[b.ID] = len(s.books)
		}
		s.books = append(s.books, b)
	}
}

// # Accessors

// FindByID returns the book with the given ID.
func (s *Store) FindByID(id int) (Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[id]
	if !ok {
		return Book{}, false
	}
	return s.books[idx].Clone(), true
}

// All returns a copy of the catalog in file order.
func (s *Store) All() []Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Book, len(s.books))
	for i, b := range s.books {
		out[i] = b.Clone()
	}
	return out
}

// Size returns the number of books.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.books)
}

// NextID returns the ID the next new book would receive.
func (s *Store) NextID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextID
}

// Save writes the in-memory catalog to the primary file.
func (s *Store) Save(ctx context.Context) error {
	return s.file.SaveAll(ctx, s.All())
}

// Path returns the primary file path.
func (s *Store) Path() string { return s.file.Path() }

// CSVPath returns the bootstrap dataset path.
func (s *Store) CSVPath() string { return s.csvPath }

// absolute resolves path for error messages, falling back to the input.
func absolute(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
