// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/bookrec/internal/platform/constants"
	"github.com/taibuivan/bookrec/internal/platform/sec"
	"github.com/taibuivan/bookrec/internal/platform/validate"
	"github.com/taibuivan/bookrec/pkg/uuid"
)

// Service implements user registration, login and account lifecycle.
//
// # Session
//
// The service holds at most one active [Session], guarded by its own mutex.
// Results follow the (bool, error) convention: false with a nil error means
// the rule did not allow the change, a VALIDATION_ERROR means the input was
// rejected, and an IO_ERROR means storage failed.
type Service struct {
	userRepository UserRepository
	logger         *slog.Logger

	mu      sync.Mutex
	session *Session
	now     func() time.Time
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		userRepository: userRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new reader.
type RegisterInput struct {
	UserID     string
	Password   string
	FirstName  string
	LastName   string
	FiscalCode string
	Email      string
}

// normalize trims every field except the password.
func (input RegisterInput) normalize() RegisterInput {
	input.UserID = strings.TrimSpace(input.UserID)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.FiscalCode = strings.TrimSpace(input.FiscalCode)
	input.Email = strings.TrimSpace(input.Email)
	return input
}

// validate applies the registration rules.
func (input RegisterInput) validate() error {
	v := &validate.Validator{}
	v.Required(FieldUserID, input.UserID).
		Custom(FieldUserID, strings.ContainsAny(input.UserID, " \t"), "Must not contain spaces").
		Required(FieldFirstName, input.FirstName).
		Required(FieldLastName, input.LastName).
		Pattern(FieldFiscalCode, input.FiscalCode, fiscalCodeRegex, "Must be 16 letters or digits").
		Email(FieldEmail, input.Email).
		Password(FieldPassword, input.Password)

	return v.
		NoSeparator(FieldUserID, input.UserID, constants.FieldSeparator).
		NoSeparator(FieldPassword, input.Password, constants.FieldSeparator).
		NoSeparator(FieldFirstName, input.FirstName, constants.FieldSeparator).
		NoSeparator(FieldLastName, input.LastName, constants.FieldSeparator).
		NoSeparator(FieldEmail, input.Email, constants.FieldSeparator).
		Err()
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Checks every field, stores the SHA-256 hex of the password and
appends the account to the user file.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - bool: false when the userid is already taken
  - err: Validation (malformed input) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (bool, error) {
	input = input.normalize()

	// Reject malformed input before touching storage
	if err := input.validate(); err != nil {
		service.logger.Warn("user_registration_rejected", slog.String(constants.FieldUserID, input.UserID))
		return false, err
	}

	user := &User{
		UserID:       input.UserID,
		PasswordHash: sec.HashPassword(input.Password),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		FiscalCode:   input.FiscalCode,
		Email:        input.Email,
	}

	created, err := service.userRepository.Create(context, user)
	if err != nil {
		return false, fmt.Errorf("auth_service_register_failed: %w", err)
	}
	if !created {
		service.logger.Warn("user_registration_duplicate", slog.String(constants.FieldUserID, user.UserID))
		return false, nil
	}

	service.logger.Info("user_registered", slog.String(constants.FieldUserID, user.UserID))
	return true, nil
}

// # Authentication Flow

/*
Login verifies credentials and opens the session.

Parameters:
  - context: context.Context
  - userID: string
  - password: string (plain text)

Returns:
  - bool: false when the user is unknown or the password does not match
  - err: Storage errors
*/
func (service *Service) Login(context context.Context, userID, password string) (bool, error) {
	user, err := service.userRepository.FindByID(context, strings.TrimSpace(userID))
	if err != nil {
		return false, fmt.Errorf("auth_service_login_failed: %w", err)
	}

	// Same outcome for unknown user and wrong password
	if user == nil || !sec.CheckPasswordHash(password, user.PasswordHash) {
		service.logger.Warn("user_login_failed", slog.String(constants.FieldUserID, userID))
		return false, nil
	}

	session := &Session{
		ID:        uuid.New(),
		UserID:    user.UserID,
		StartedAt: service.now(),
	}

	service.mu.Lock()
	service.session = session
	service.mu.Unlock()

	service.logger.Info("user_logged_in",
		slog.String(constants.FieldUserID, user.UserID),
		slog.String("session_id", session.ID),
	)
	return true, nil
}

// Logout clears the active session, if any.
func (service *Service) Logout() {
	service.mu.Lock()
	defer service.mu.Unlock()

	if service.session != nil {
		service.logger.Info("user_logged_out", slog.String(constants.FieldUserID, service.session.UserID))
	}
	service.session = nil
}

// Current returns a copy of the active session.
func (service *Service) Current() (Session, bool) {
	service.mu.Lock()
	defer service.mu.Unlock()

	if service.session == nil {
		return Session{}, false
	}
	return *service.session, true
}

// CurrentUserID returns the logged-in userid, or "" when nobody is logged in.
func (service *Service) CurrentUserID() string {
	session, ok := service.Current()
	if !ok {
		return ""
	}
	return session.UserID
}

// # Account Management

// GetUser returns the account with the given userid.
func (service *Service) GetUser(context context.Context, userID string) (*User, bool, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, false, fmt.Errorf("auth_service_get_user_failed: %w", err)
	}
	return user, user != nil, nil
}

// ProfileInput holds the editable profile fields of an account.
type ProfileInput struct {
	UserID     string
	FirstName  string
	LastName   string
	FiscalCode string
	Email      string
}

/*
UpdateProfile replaces the profile fields of an existing account.

Description: The stored password hash is kept. The email and fiscal code are
checked with the registration rules.

Parameters:
  - context: context.Context
  - input: ProfileInput

Returns:
  - bool: false when the account does not exist
  - err: Validation or storage errors
*/
func (service *Service) UpdateProfile(context context.Context, input ProfileInput) (bool, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.FiscalCode = strings.TrimSpace(input.FiscalCode)
	input.Email = strings.TrimSpace(input.Email)

	v := &validate.Validator{}
	err := v.
		Email(FieldEmail, input.Email).
		Pattern(FieldFiscalCode, input.FiscalCode, fiscalCodeRegex, "Must be 16 letters or digits").
		NoSeparator(FieldFirstName, input.FirstName, constants.FieldSeparator).
		NoSeparator(FieldLastName, input.LastName, constants.FieldSeparator).
		NoSeparator(FieldEmail, input.Email, constants.FieldSeparator).
		Err()
	if err != nil {
		return false, err
	}

	existing, err := service.userRepository.FindByID(context, input.UserID)
	if err != nil {
		return false, fmt.Errorf("auth_service_update_profile_failed: %w", err)
	}
	if existing == nil {
		return false, nil
	}

	existing.FirstName = input.FirstName
	existing.LastName = input.LastName
	existing.FiscalCode = input.FiscalCode
	existing.Email = input.Email

	updated, err := service.userRepository.Update(context, existing)
	if err != nil {
		return false, fmt.Errorf("auth_service_update_profile_failed: %w", err)
	}
	if updated {
		service.logger.Info("user_profile_updated", slog.String(constants.FieldUserID, input.UserID))
	}
	return updated, nil
}

/*
UpdatePassword replaces the stored password hash in place.

Parameters:
  - context: context.Context
  - userID: string
  - password: string (new plain text)

Returns:
  - bool: false when the account does not exist
  - err: Validation (weak password) or storage errors
*/
func (service *Service) UpdatePassword(context context.Context, userID, password string) (bool, error) {
	v := &validate.Validator{}
	err := v.
		Password(FieldPassword, password).
		NoSeparator(FieldPassword, password, constants.FieldSeparator).
		Err()
	if err != nil {
		return false, err
	}

	existing, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return false, fmt.Errorf("auth_service_update_password_failed: %w", err)
	}
	if existing == nil {
		return false, nil
	}

	existing.PasswordHash = sec.HashPassword(password)
	updated, err := service.userRepository.Update(context, existing)
	if err != nil {
		return false, fmt.Errorf("auth_service_update_password_failed: %w", err)
	}
	if updated {
		service.logger.Info("user_password_updated", slog.String(constants.FieldUserID, userID))
	}
	return updated, nil
}

/*
DeleteUser removes an account and ends its session if it is the active one.

Description: Libraries, reviews and suggestions of the user are left in place.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - bool: false when the account does not exist
  - err: Storage errors
*/
func (service *Service) DeleteUser(context context.Context, userID string) (bool, error) {
	removed, err := service.userRepository.Delete(context, userID)
	if err != nil {
		return false, fmt.Errorf("auth_service_delete_user_failed: %w", err)
	}

	service.mu.Lock()
	if service.session != nil && service.session.UserID == userID {
		service.session = nil
	}
	service.mu.Unlock()

	if removed {
		service.logger.Warn("user_account_deleted", slog.String(constants.FieldUserID, userID))
	}
	return removed, nil
}
