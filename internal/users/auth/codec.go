// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"strings"

	"github.com/taibuivan/bookrec/internal/platform/flatfile"
)

// Codec maps user records: userid;passwordHash;nome;cognome;codiceFiscale;email.
type Codec struct{}

var _ flatfile.Codec[User] = Codec{}

func (Codec) Entity() string { return "User" }

func (Codec) Header() []string {
	return []string{FieldUserID, FieldPasswordHash, FieldFirstName, FieldLastName, FieldFiscalCode, FieldEmail}
}

func (Codec) MinFields() int { return 6 }

func (Codec) Decode(fields []string) (User, bool) {
	user := User{
		UserID:       strings.TrimSpace(fields[0]),
		PasswordHash: strings.TrimSpace(fields[1]),
		FirstName:    fields[2],
		LastName:     fields[3],
		FiscalCode:   fields[4],
		Email:        fields[5],
	}
	if user.UserID == "" {
		return User{}, false
	}
	return user, true
}

func (Codec) Encode(u User) []string {
	return []string{
		u.UserID,
		u.PasswordHash,
		flatfile.Sanitize(u.FirstName),
		flatfile.Sanitize(u.LastName),
		flatfile.Sanitize(u.FiscalCode),
		flatfile.Sanitize(u.Email),
	}
}
