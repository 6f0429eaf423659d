// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/taibuivan/bookrec/internal/platform/apperr"
	"github.com/taibuivan/bookrec/internal/platform/constants"
	"github.com/taibuivan/bookrec/internal/platform/ctxutil"
	"github.com/taibuivan/bookrec/pkg/convert"
)

// Bootstrap dataset columns.
const (
	csvColTitle     = 0
	csvColAuthors   = 1
	csvColCategory  = 3
	csvColPublisher = 4
	csvColYear      = 7

	csvMinColumns = 8
)

// readCSV builds books from the bootstrap dataset, assigning IDs from 1.
//
// The first row is a header. Rows with fewer than eight columns, and rows the
// CSV reader cannot parse, are skipped.
func readCSV(ctx context.Context, path string) ([]Book, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperr.IO("open "+path, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	logger := ctxutil.GetLogger(ctx)
	books := []Book{}
	header := true
	skipped := 0

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skipped++
				continue
			}
			return nil, apperr.IO("read "+path, err)
		}

		if header {
			header = false
			continue
		}
		if len(row) < csvMinColumns {
			skipped++
			continue
		}

		books = append(books, Book{
			ID:        len(books) + 1,
			Title:     strings.TrimSpace(row[csvColTitle]),
			Authors:   NormalizeAuthors(row[csvColAuthors]),
			Year:      convert.IntPtr(row[csvColYear]),
			Publisher: strings.TrimSpace(row[csvColPublisher]),
			Category:  strings.TrimSpace(row[csvColCategory]),
		})
	}

	logger.Info("catalog_csv_imported",
		slog.String(constants.FieldPath, path),
		slog.Int("books", len(books)),
		slog.Int("skipped", skipped),
	)
	return books, nil
}
