// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"strings"

	"github.com/taibuivan/bookrec/internal/platform/constants"
	"github.com/taibuivan/bookrec/internal/platform/flatfile"
	"github.com/taibuivan/bookrec/pkg/query"
)

// # File Layout

const (
	FieldUserID  = "userid"
	FieldName    = "nome"
	FieldBookIDs = "idLibri"
)

// Codec maps library records: userid;nome;id,id,id.
//
// IDs are read with either ',' or '|' as separator. They are written with the
// separator the loaded file already uses, or the canonical one for new files.
type Codec struct {
	sep string
}

var (
	_ flatfile.Codec[Library] = (*Codec)(nil)
	_ flatfile.Detector       = (*Codec)(nil)
)

// NewCodec creates a codec writing sep (',' or '|') on new files.
func NewCodec(sep string) *Codec {
	if sep != constants.IDListPipe {
		sep = constants.IDListComma
	}
	return &Codec{sep: sep}
}

// Separator returns the separator Encode currently writes.
func (c *Codec) Separator() string { return c.sep }

func (c *Codec) Entity() string { return "Library" }

func (c *Codec) Header() []string { return []string{FieldUserID, FieldName, FieldBookIDs} }

// MinFields requires the ID column, even when it is empty.
func (c *Codec) MinFields() int { return 3 }

func (c *Codec) Decode(fields []string) (Library, bool) {
	userID := flatfile.Field(fields, 0)
	if userID == "" || len(fields) < c.MinFields() {
		return Library{}, false
	}

	// A stray separator inside the ID column must not lose IDs
	raw := strings.Join(fields[2:], constants.IDListComma)
	return New(userID, flatfile.Field(fields, 1), query.IDList(raw)...), true
}

func (c *Codec) Encode(lib Library) []string {
	return []string{lib.UserID, flatfile.Sanitize(lib.Name), query.JoinInts(lib.ids, c.sep)}
}

// Detect adopts the separator of the first ID column that shows one.
func (c *Codec) Detect(_ []string, records [][]string) {
	for _, fields := range records {
		if len(fields) < 3 {
			continue
		}
		switch {
		case strings.Contains(fields[2], constants.IDListPipe):
			c.sep = constants.IDListPipe
			return
		case strings.Contains(fields[2], constants.IDListComma):
			c.sep = constants.IDListComma
			return
		}
	}
}
