// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "regexp"

// # Field Identifiers

// On-disk header tokens of the user file, also used as validation field names.
const (
	FieldUserID       = "userid"
	FieldPasswordHash = "passwordHash"
	FieldFirstName    = "nome"
	FieldLastName     = "cognome"
	FieldFiscalCode   = "codiceFiscale"
	FieldEmail        = "email"
	FieldPassword     = "password"
)

// # Registration Constraints

// fiscalCodeRegex accepts exactly 16 ASCII letters or digits.
var fiscalCodeRegex = regexp.MustCompile(`^[A-Za-z0-9]{16}$`)
