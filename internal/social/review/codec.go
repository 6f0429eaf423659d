// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"strconv"
	"strings"

	"github.com/taibuivan/bookrec/internal/platform/constants"
	"github.com/taibuivan/bookrec/internal/platform/flatfile"
	"github.com/taibuivan/bookrec/pkg/convert"
)

// Codec maps review records:
// userid;idLibro;stile;contenuto;gradevolezza;originalita;edizione;votoFinale;commento.
//
// A line whose book ID or scores are not integers is discarded.
type Codec struct{}

var _ flatfile.Codec[Review] = Codec{}

func (Codec) Entity() string { return "Review" }

func (Codec) Header() []string {
	return []string{
		FieldUserID, FieldBookID,
		FieldStyle, FieldContent, FieldPleasantness, FieldOriginality, FieldEdition,
		FieldFinalScore, FieldComment,
	}
}

func (Codec) MinFields() int { return 9 }

func (Codec) Decode(fields []string) (Review, bool) {
	userID := flatfile.Field(fields, 0)
	if userID == "" {
		return Review{}, false
	}

	// Integer columns 1..7
	var nums [7]int
	for i := range nums {
		v, ok := convert.Int(fields[i+1])
		if !ok {
			return Review{}, false
		}
		nums[i] = v
	}

	return Review{
		UserID:       userID,
		BookID:       nums[0],
		Style:        nums[1],
		Content:      nums[2],
		Pleasantness: nums[3],
		Originality:  nums[4],
		Edition:      nums[5],
		FinalScore:   nums[6],
		Comment:      strings.Join(fields[8:], constants.FieldSeparator),
	}, true
}

func (Codec) Encode(r Review) []string {
	return []string{
		r.UserID,
		strconv.Itoa(r.BookID),
		strconv.Itoa(r.Style),
		strconv.Itoa(r.Content),
		strconv.Itoa(r.Pleasantness),
		strconv.Itoa(r.Originality),
		strconv.Itoa(r.Edition),
		strconv.Itoa(r.FinalScore),
		flatfile.Sanitize(r.Comment),
	}
}
