// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (User, Session) and the logic for
registration, login and account lifecycle.

# Architecture

The Service is the sole mutator of the user file. Deleting a user does not
touch libraries, reviews or suggestions that reference it.
*/
package auth

import "time"

// # Domain Entities

// User represents a registered reader.
type User struct {
	UserID       string `json:"userid"`
	PasswordHash string `json:"-"` // Hex SHA-256, never the plain text.
	FirstName    string `json:"nome"`
	LastName     string `json:"cognome"`
	FiscalCode   string `json:"codice_fiscale"`
	Email        string `json:"email"`
}

// Session represents the single in-process login.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	StartedAt time.Time `json:"started_at"`
}
