// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package review manages the ratings readers give to books they own.

A review is keyed by (userid, bookId). It carries five sub-scores in [1, 5],
the derived final score and an optional short comment.

Review rules:
  - A user may review a book only while it is in one of their libraries.
  - A user reviews a given book at most once.
*/
package review

import (
	"math"
	"strings"

	"github.com/taibuivan/bookrec/internal/platform/constants"
	"github.com/taibuivan/bookrec/internal/platform/validate"
)

// # Field Identifiers

const (
	FieldUserID       = "userid"
	FieldBookID       = "idLibro"
	FieldStyle        = "stile"
	FieldContent      = "contenuto"
	FieldPleasantness = "gradevolezza"
	FieldOriginality  = "originalita"
	FieldEdition      = "edizione"
	FieldFinalScore   = "votoFinale"
	FieldComment      = "commento"
)

// Review is one user's rating of one book.
type Review struct {
	UserID string
	BookID int

	Style        int
	Content      int
	Pleasantness int
	Originality  int
	Edition      int

	// FinalScore is the rounded mean of the five sub-scores.
	FinalScore int

	Comment string
}

// Key identifies a review.
type Key struct {
	UserID string
	BookID int
}

// Key returns the identity of r.
func (r Review) Key() Key { return Key{UserID: r.UserID, BookID: r.BookID} }

// ComputeFinalScore returns the mean of the five sub-scores rounded half away
// from zero: 1,1,1,1,2 gives 1 and 4,4,5,5,4 gives 4.
func ComputeFinalScore(style, content, pleasantness, originality, edition int) int {
	sum := style + content + pleasantness + originality + edition
	return int(math.Round(float64(sum) / 5.0))
}

// NormalizeComment replaces line breaks with spaces and trims the result.
func NormalizeComment(comment string) string {
	comment = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(comment)
	return strings.TrimSpace(comment)
}

// New builds a validated review with its final score computed.
func New(userID string, bookID, style, content, pleasantness, originality, edition int, comment string) (Review, error) {
	r := Review{
		UserID:       strings.TrimSpace(userID),
		BookID:       bookID,
		Style:        style,
		Content:      content,
		Pleasantness: pleasantness,
		Originality:  originality,
		Edition:      edition,
		Comment:      comment,
	}
	return r.normalized()
}

// normalized validates r and returns it with a clean comment and a fresh final score.
func (r Review) normalized() (Review, error) {
	r.Comment = NormalizeComment(r.Comment)

	v := &validate.Validator{}
	err := v.
		Required(FieldUserID, r.UserID).
		NoSeparator(FieldUserID, r.UserID, constants.FieldSeparator).
		Custom(FieldBookID, r.BookID <= 0, "Must be a positive book ID").
		Range(FieldStyle, r.Style, constants.MinScore, constants.MaxScore).
		Range(FieldContent, r.Content, constants.MinScore, constants.MaxScore).
		Range(FieldPleasantness, r.Pleasantness, constants.MinScore, constants.MaxScore).
		Range(FieldOriginality, r.Originality, constants.MinScore, constants.MaxScore).
		Range(FieldEdition, r.Edition, constants.MinScore, constants.MaxScore).
		MaxLen(FieldComment, r.Comment, constants.MaxCommentLength).
		NoSeparator(FieldComment, r.Comment, constants.FieldSeparator).
		Err()
	if err != nil {
		return Review{}, err
	}

	r.FinalScore = ComputeFinalScore(r.Style, r.Content, r.Pleasantness, r.Originality, r.Edition)
	return r, nil
}
