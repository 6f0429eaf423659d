// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package flatfile

import (
	"bufio"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/bookrec/internal/platform/apperr"
	"github.com/taibuivan/bookrec/internal/platform/constants"
	"github.com/taibuivan/bookrec/internal/platform/ctxutil"
	"github.com/taibuivan/bookrec/internal/platform/metrics"
)

// Store operation labels.
const (
	OpLoad   = "load"
	OpSave   = "save"
	OpAppend = "append"
)

// utf8BOM is stripped from the first line of a file.
const utf8BOM = "\ufeff"

// Store reads and writes every record of one file.
//
// # Concurrency
//
// Each operation holds the store mutex for its whole duration, and [Store.Mutate]
// holds it across the load, change and rewrite. There is no cross-process locking.
type Store[T any] struct {
	path    string
	codec   Codec[T]
	metrics *metrics.Metrics

	mu       sync.Mutex
	detected bool
}

// NewStore creates a [Store] for the file at path. A nil metrics records nothing.
func NewStore[T any](path string, codec Codec[T], m *metrics.Metrics) *Store[T] {
	return &Store[T]{path: path, codec: codec, metrics: m}
}

// Path returns the file this store manages.
func (s *Store[T]) Path() string { return s.path }

// Exists reports whether the backing file is present.
func (s *Store[T]) Exists() (bool, error) {
	return Exists(s.path)
}

// Exists reports whether a file is present at path.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, apperr.IO("stat "+path, err)
}

// # Reading

// LoadAll decodes every valid record of the file in file order.
//
// A missing file yields an empty slice and no error.
func (s *Store[T]) LoadAll(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadLocked(ctx)
}

// loadLocked reads and decodes the file. The caller holds s.mu.
func (s *Store[T]) loadLocked(ctx context.Context) ([]T, error) {
	defer s.metrics.ObserveOperation(s.codec.Entity(), OpLoad, time.Now())

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil
		}
		return nil, apperr.IO("read "+s.path, err)
	}

	header, records := s.parse(string(data))
	if detector, ok := s.codec.(Detector); ok {
		detector.Detect(header, records)
	}
	s.detected = true

	logger := ctxutil.GetLogger(ctx)
	items := make([]T, 0, len(records))
	for _, fields := range records {
		if len(fields) < s.codec.MinFields() {
			s.skip(logger, metrics.ReasonTooFewFields, fields)
			continue
		}
		item, ok := s.codec.Decode(fields)
		if !ok {
			s.skip(logger, metrics.ReasonMalformed, fields)
			continue
		}
		items = append(items, item)
	}

	s.metrics.RecordsProcessed(s.codec.Entity(), OpLoad, len(items))
	return items, nil
}

// parse splits raw file content into the matched header (if any) and records.
func (s *Store[T]) parse(content string) ([]string, [][]string) {
	content = strings.TrimPrefix(content, utf8BOM)

	var header []string
	records := [][]string{}
	first := true

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := SplitRecord(line)
		if first {
			first = false
			if isHeader(s.codec, fields) {
				header = fields
				continue
			}
		}
		records = append(records, fields)
	}
	return header, records
}

// skip counts and logs one discarded line.
func (s *Store[T]) skip(logger *slog.Logger, reason string, fields []string) {
	s.metrics.LineSkipped(s.codec.Entity(), reason)
	logger.Debug("flatfile_line_skipped",
		slog.String(constants.FieldEntity, s.codec.Entity()),
		slog.String(constants.FieldPath, s.path),
		slog.String("reason", reason),
		slog.Int("fields", len(fields)),
	)
}

// # Writing

// SaveAll rewrites the whole file with a header followed by items.
//
// The content is written to a temporary file in the same directory, synced and
// renamed over the original.
func (s *Store[T]) SaveAll(ctx context.Context, items []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saveLocked(items)
}

// saveLocked performs the atomic rewrite. The caller holds s.mu.
func (s *Store[T]) saveLocked(items []T) error {
	defer s.metrics.ObserveOperation(s.codec.Entity(), OpSave, time.Now())

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperr.IO("create directory "+dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return apperr.IO("create temporary file in "+dir, err)
	}
	tmpName := tmp.Name()

	// Remove the temporary file on every failure path
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	w := bufio.NewWriter(tmp)
	if _, err := w.WriteString(JoinRecord(s.codec.Header()) + "\n"); err != nil {
		return apperr.IO("write "+tmpName, err)
	}
	for _, item := range items {
		if _, err := w.WriteString(JoinRecord(s.codec.Encode(item)) + "\n"); err != nil {
			return apperr.IO("write "+tmpName, err)
		}
	}
	if err := w.Flush(); err != nil {
		return apperr.IO("write "+tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		return apperr.IO("sync "+tmpName, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return apperr.IO("chmod "+tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return apperr.IO("close "+tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		committed = true
		return apperr.IO("rename "+tmpName+" to "+s.path, err)
	}
	committed = true
	s.detected = true

	s.metrics.RecordsProcessed(s.codec.Entity(), OpSave, len(items))
	return nil
}

// Append adds one record at the end of the file.
//
// A missing or empty file is created with the header first. A missing trailing
// newline on the existing content is repaired before the new line.
func (s *Store[T]) Append(ctx context.Context, item T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.Exists()
	if err != nil {
		return err
	}
	if !exists {
		return s.saveLocked([]T{item})
	}

	// The codec must know the file's convention before encoding
	if _, ok := s.codec.(Detector); ok && !s.detected {
		if _, err := s.loadLocked(ctx); err != nil {
			return err
		}
	}

	defer s.metrics.ObserveOperation(s.codec.Entity(), OpAppend, time.Now())

	file, err := os.OpenFile(s.path, os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return apperr.IO("open "+s.path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return apperr.IO("stat "+s.path, err)
	}

	var b strings.Builder
	switch {
	case info.Size() == 0:
		b.WriteString(JoinRecord(s.codec.Header()) + "\n")
	default:
		last := make([]byte, 1)
		if _, err := file.ReadAt(last, info.Size()-1); err != nil {
			return apperr.IO("read "+s.path, err)
		}
		if last[0] != '\n' {
			b.WriteString("\n")
		}
	}
	b.WriteString(JoinRecord(s.codec.Encode(item)) + "\n")

	if _, err := file.WriteString(b.String()); err != nil {
		return apperr.IO("append "+s.path, err)
	}
	if err := file.Sync(); err != nil {
		return apperr.IO("sync "+s.path, err)
	}

	s.metrics.RecordsProcessed(s.codec.Entity(), OpAppend, 1)
	return nil
}

// Mutate loads every record, applies fn and rewrites the file when fn reports
// a change. It returns fn's change flag.
//
// The store mutex is held for the whole cycle.
func (s *Store[T]) Mutate(ctx context.Context, fn func(items []T) ([]T, bool)) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadLocked(ctx)
	if err != nil {
		return false, err
	}

	updated, changed := fn(items)
	if !changed {
		return false, nil
	}

	if err := s.saveLocked(updated); err != nil {
		return false, err
	}
	return true, nil
}
