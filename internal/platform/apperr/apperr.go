// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for bookrec.

It provides a rich error type that separates the two failure classes of the
system: rejected input (validation) and hard failures (file I/O, missing data
sources).

Architecture:

  - AppError: A struct containing a machine-readable Code and a caller-friendly message.
  - Classification: Callers branch on [IsCode] rather than on message text.

Business-rule outcomes ("userid already taken", "book not in any library") are
NOT errors. Services report them as a false result; an AppError always means the
operation was rejected or crashed.
*/
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// # Error Codes

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeIO           = "IO_ERROR"
	CodeNoDataSource = "NO_DATA_SOURCE"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError is the canonical error type for bookrec.
//
// It carries a machine-readable code, a message safe to show in the shell,
// and an optional slice of field-level validation errors.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "IO_ERROR").
	Code string `json:"code"`
	// Message is a human-readable description.
	Message string `json:"error"`
	// Cause is the underlying error, kept for logging and [errors.Is].
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the input field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface.
//
// IO errors include their cause so the shell can show which file failed.
func (e *AppError) Error() string {
	if e.Code == CodeIO && e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Rejected Input

// ValidationError creates a VALIDATION_ERROR [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: msg,
		Details: details,
	}
}

// # Hard Failures

// IO creates an IO_ERROR [AppError] for a failed file operation.
//
// Example:
//
//	apperr.IO("read data/Libri.dati", err)
func IO(action string, cause error) *AppError {
	return &AppError{
		Code:    CodeIO,
		Message: action + " failed",
		Cause:   cause,
	}
}

// NoDataSource creates a NO_DATA_SOURCE [AppError] naming every path that was tried.
func NoDataSource(paths ...string) *AppError {
	return &AppError{
		Code:    CodeNoDataSource,
		Message: fmt.Sprintf("no data source found (tried %s)", strings.Join(paths, ", ")),
	}
}

// Internal creates an INTERNAL_ERROR [AppError] wrapping an unexpected error.
func Internal(cause error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "An unexpected error occurred",
		Cause:   cause,
	}
}

// # Helpers

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsCode reports whether err's chain holds an [*AppError] with the given code.
func IsCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
