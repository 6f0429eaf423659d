// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"strconv"
	"strings"

	"github.com/taibuivan/bookrec/internal/platform/constants"
	"github.com/taibuivan/bookrec/internal/platform/flatfile"
	"github.com/taibuivan/bookrec/pkg/convert"
)

// # File Layout

const (
	FieldID        = "idLibro"
	FieldTitle     = "Titolo"
	FieldAuthors   = "Autori"
	FieldYear      = "Anno"
	FieldPublisher = "Editore"
	FieldCategory  = "Categoria"
)

// Codec maps book records: id;title;authors;year;publisher;category.
//
// A record needs at least id, title and authors. An unparsable id decodes as 0
// so the store can assign the next free one.
type Codec struct{}

var _ flatfile.Codec[Book] = Codec{}

func (Codec) Entity() string { return "Book" }

func (Codec) Header() []string {
	return []string{FieldID, FieldTitle, FieldAuthors, FieldYear, FieldPublisher, FieldCategory}
}

func (Codec) MinFields() int { return 3 }

func (Codec) Decode(fields []string) (Book, bool) {
	id, _ := convert.Int(fields[0])

	return Book{
		ID:        id,
		Title:     flatfile.Field(fields, 1),
		Authors:   NormalizeAuthors(fields[2]),
		Year:      convert.IntPtr(flatfile.Field(fields, 3)),
		Publisher: flatfile.Field(fields, 4),
		Category:  flatfile.Field(fields, 5),
	}, true
}

func (Codec) Encode(b Book) []string {
	year := ""
	if b.Year != nil {
		year = strconv.Itoa(*b.Year)
	}

	return []string{
		strconv.Itoa(b.ID),
		flatfile.Sanitize(b.Title),
		flatfile.Sanitize(strings.Join(b.Authors, constants.AuthorSeparator)),
		year,
		flatfile.Sanitize(b.Publisher),
		flatfile.Sanitize(b.Category),
	}
}
