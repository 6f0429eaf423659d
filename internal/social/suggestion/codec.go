// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package suggestion

import (
	"strconv"
	"strings"

	"github.com/taibuivan/bookrec/internal/platform/constants"
	"github.com/taibuivan/bookrec/internal/platform/flatfile"
	"github.com/taibuivan/bookrec/pkg/convert"
	"github.com/taibuivan/bookrec/pkg/query"
)

// # File Layout

// Layout is the way a file stores the suggested IDs.
type Layout string

const (
	// LayoutColumns keeps one ID per column: userid;idLibro;id1;id2;id3.
	LayoutColumns Layout = "columns"

	// LayoutList keeps all IDs in one column: userid;idLibro;id1,id2,id3.
	LayoutList Layout = "list"
)

const (
	FieldUserID    = "userid"
	FieldBookID    = "idLibro"
	FieldSuggested = "idSuggeriti"
)

var (
	columnsHeader = []string{FieldUserID, FieldBookID, "idSuggerito1", "idSuggerito2", "idSuggerito3"}
	listHeader    = []string{FieldUserID, FieldBookID, FieldSuggested}
)

// Codec maps suggestion records in either layout.
//
// Lines with more than three fields are read as columns 2..4; lines with
// exactly three fields have their last column split on ',' or '|'. Writes use
// the layout of the loaded file, or the canonical one for new files.
type Codec struct {
	layout  Layout
	listSep string
}

var (
	_ flatfile.Codec[Suggestion] = (*Codec)(nil)
	_ flatfile.HeaderAliaser     = (*Codec)(nil)
	_ flatfile.Detector          = (*Codec)(nil)
)

// NewCodec creates a codec writing layout on new files.
func NewCodec(layout Layout) *Codec {
	if layout != LayoutList {
		layout = LayoutColumns
	}
	return &Codec{layout: layout, listSep: constants.IDListComma}
}

// Layout returns the layout Encode currently writes.
func (c *Codec) Layout() Layout { return c.layout }

func (c *Codec) Entity() string { return "Suggestion" }

func (c *Codec) Header() []string {
	if c.layout == LayoutList {
		return listHeader
	}
	return columnsHeader
}

func (c *Codec) HeaderAliases() [][]string {
	return [][]string{columnsHeader, listHeader}
}

func (c *Codec) MinFields() int { return 3 }

func (c *Codec) Decode(fields []string) (Suggestion, bool) {
	userID := flatfile.Field(fields, 0)
	if userID == "" {
		return Suggestion{}, false
	}
	bookID, ok := convert.Int(fields[1])
	if !ok {
		return Suggestion{}, false
	}

	var ids []int
	if len(fields) > 3 {
		for i := 2; i < len(fields) && i <= 4; i++ {
			if id, ok := convert.Int(fields[i]); ok {
				ids = append(ids, id)
			}
		}
	} else {
		ids = query.IDList(fields[2])
	}

	s := Suggestion{UserID: userID, BookID: bookID, Suggested: ids}
	s.Suggested = s.filtered()
	return s, true
}

func (c *Codec) Encode(s Suggestion) []string {
	ids := s.Suggested
	if len(ids) > constants.MaxSuggestions {
		ids = ids[:constants.MaxSuggestions]
	}

	if c.layout == LayoutList {
		return []string{s.UserID, strconv.Itoa(s.BookID), query.JoinInts(ids, c.listSep)}
	}

	fields := []string{s.UserID, strconv.Itoa(s.BookID), "", "", ""}
	for i, id := range ids {
		fields[2+i] = strconv.Itoa(id)
	}
	return fields
}

// Detect adopts the layout named by the header, or else the one shown by the
// first record whose shape tells.
func (c *Codec) Detect(header []string, records [][]string) {
	switch len(header) {
	case len(listHeader):
		c.layout = LayoutList
	case len(columnsHeader):
		c.layout = LayoutColumns
	}

	for _, fields := range records {
		if header == nil && len(fields) > 3 {
			c.layout = LayoutColumns
			return
		}
		if len(fields) != 3 {
			continue
		}
		switch {
		case strings.Contains(fields[2], constants.IDListPipe):
			c.listSep = constants.IDListPipe
		case strings.Contains(fields[2], constants.IDListComma):
			c.listSep = constants.IDListComma
		default:
			continue
		}
		if header == nil {
			c.layout = LayoutList
		}
		return
	}
}
