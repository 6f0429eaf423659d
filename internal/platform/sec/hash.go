// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides the password hashing primitives of the user store.
//
// # Format
//
// Stored hashes are the lowercase hex encoding of SHA-256 over the UTF-8
// password bytes (64 characters). Existing user files depend on this exact
// format, so it must not change.
package sec

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// HashPassword returns the hex-encoded SHA-256 digest of a plain-text password.
func HashPassword(plainTextPassword string) string {
	sum := sha256.Sum256([]byte(plainTextPassword))
	return hex.EncodeToString(sum[:])
}

// CheckPasswordHash compares a plain-text password with its stored hash.
//
// The comparison is constant-time and ignores hex letter case.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	computed := HashPassword(plainTextPassword)
	stored := strings.ToLower(strings.TrimSpace(existingHash))
	return subtle.ConstantTimeCompare([]byte(computed), []byte(stored)) == 1
}
