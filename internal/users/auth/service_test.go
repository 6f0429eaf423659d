// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookrec/internal/platform/apperr"
	"github.com/taibuivan/bookrec/internal/platform/sec"
	"github.com/taibuivan/bookrec/internal/users/auth"
)

func newService(t *testing.T) (*auth.Service, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "UtentiRegistrati.dati")
	return auth.NewService(auth.NewFileUserStore(path, nil), nil), path
}

func aliceInput() auth.RegisterInput {
	return auth.RegisterInput{
		UserID:     "alice",
		Password:   "Passw0rd1",
		FirstName:  "Alice",
		LastName:   "Rossi",
		FiscalCode: "RSSLCA90A41H501X",
		Email:      "alice@example.com",
	}
}

/*
TestService_Register verifies a valid account is appended with a hashed password.
*/
func TestService_Register(t *testing.T) {
	svc, path := newService(t)
	ctx := context.Background()

	ok, err := svc.Register(ctx, aliceInput())
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"userid;passwordHash;nome;cognome;codiceFiscale;email\n"+
			"alice;"+sec.HashPassword("Passw0rd1")+";Alice;Rossi;RSSLCA90A41H501X;alice@example.com\n",
		string(data))

	// A second registration with the same userid is refused, not an error
	ok, err = svc.Register(ctx, aliceInput())
	require.NoError(t, err)
	assert.False(t, ok)
}

/*
TestService_Register_Validation verifies malformed input is rejected before storage.
*/
func TestService_Register_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*auth.RegisterInput)
		field  string
	}{
		{"empty_userid", func(in *auth.RegisterInput) { in.UserID = " " }, auth.FieldUserID},
		{"userid_with_space", func(in *auth.RegisterInput) { in.UserID = "al ice" }, auth.FieldUserID},
		{"short_fiscal_code", func(in *auth.RegisterInput) { in.FiscalCode = "RSSLCA90" }, auth.FieldFiscalCode},
		{"symbol_fiscal_code", func(in *auth.RegisterInput) { in.FiscalCode = "RSSLCA90A41H501-" }, auth.FieldFiscalCode},
		{"bad_email", func(in *auth.RegisterInput) { in.Email = "alice.example.com" }, auth.FieldEmail},
		{"weak_password", func(in *auth.RegisterInput) { in.Password = "password" }, auth.FieldPassword},
		{"separator_in_name", func(in *auth.RegisterInput) { in.FirstName = "Al;ice" }, auth.FieldFirstName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, path := newService(t)
			input := aliceInput()
			tt.mutate(&input)

			ok, err := svc.Register(context.Background(), input)
			assert.False(t, ok)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, apperr.CodeValidation, ae.Code)

			fields := make([]string, 0, len(ae.Details))
			for _, d := range ae.Details {
				fields = append(fields, d.Field)
			}
			assert.Contains(t, fields, tt.field)

			_, statErr := os.Stat(path)
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

/*
TestService_Login verifies credential checks and the session lifecycle.
*/
func TestService_Login(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, aliceInput())
	require.NoError(t, err)

	tests := []struct {
		name     string
		userID   string
		password string
		expected bool
	}{
		{"unknown_user", "bob", "Passw0rd1", false},
		{"wrong_password", "alice", "Passw0rd2", false},
		{"valid", "alice", "Passw0rd1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := svc.Login(ctx, tt.userID, tt.password)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
		})
	}

	session, ok := svc.Current()
	require.True(t, ok)
	assert.Equal(t, "alice", session.UserID)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "alice", svc.CurrentUserID())

	svc.Logout()
	assert.Equal(t, "", svc.CurrentUserID())
	_, ok = svc.Current()
	assert.False(t, ok)
}

/*
TestService_UpdateProfile verifies profile fields change while the hash is kept.
*/
func TestService_UpdateProfile(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, aliceInput())
	require.NoError(t, err)

	ok, err := svc.UpdateProfile(ctx, auth.ProfileInput{
		UserID:     "alice",
		FirstName:  "Alicia",
		LastName:   "Bianchi",
		FiscalCode: "BNCLCA90A41H501X",
		Email:      "alicia@example.org",
	})
	require.NoError(t, err)
	assert.True(t, ok)

	user, found, err := svc.GetUser(ctx, "alice")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Alicia", user.FirstName)
	assert.Equal(t, "alicia@example.org", user.Email)
	assert.Equal(t, sec.HashPassword("Passw0rd1"), user.PasswordHash)

	// Unknown account
	ok, err = svc.UpdateProfile(ctx, auth.ProfileInput{UserID: "bob", FiscalCode: "BNCLCA90A41H501X", Email: "bob@example.org"})
	require.NoError(t, err)
	assert.False(t, ok)

	// Malformed email
	ok, err = svc.UpdateProfile(ctx, auth.ProfileInput{UserID: "alice", FiscalCode: "BNCLCA90A41H501X", Email: "nope"})
	assert.False(t, ok)
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
}

/*
TestService_UpdatePassword verifies the hash is replaced and weak passwords rejected.
*/
func TestService_UpdatePassword(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, aliceInput())
	require.NoError(t, err)

	ok, err := svc.UpdatePassword(ctx, "alice", "short")
	assert.False(t, ok)
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))

	ok, err = svc.UpdatePassword(ctx, "alice", "N3wPassword")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Login(ctx, "alice", "Passw0rd1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Login(ctx, "alice", "N3wPassword")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.UpdatePassword(ctx, "ghost", "N3wPassword")
	require.NoError(t, err)
	assert.False(t, ok)
}

/*
TestService_DeleteUser verifies removal and the end of the active session.
*/
func TestService_DeleteUser(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, aliceInput())
	require.NoError(t, err)
	_, err = svc.Login(ctx, "alice", "Passw0rd1")
	require.NoError(t, err)

	ok, err := svc.DeleteUser(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "", svc.CurrentUserID())

	_, found, err := svc.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, found)

	ok, err = svc.DeleteUser(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, ok)
}

/*
TestFileUserStore_DuplicateLines verifies the last line of a repeated userid wins.
*/
func TestFileUserStore_DuplicateLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "UtentiRegistrati.dati")
	require.NoError(t, os.WriteFile(path, []byte(
		"userid;passwordHash;nome;cognome;codiceFiscale;email\n"+
			"alice;h1;A;R;RSSLCA90A41H501X;a@x.it\n"+
			"bob;h2;B;V;VRDBBO80A01H501Y;b@x.it\n"+
			"alice;h3;A2;R;RSSLCA90A41H501X;a2@x.it\n"+
			"broken;line\n"), 0o644))

	store := auth.NewFileUserStore(path, nil)
	users, err := store.List(context.Background())
	require.NoError(t, err)

	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].UserID)
	assert.Equal(t, "h3", users[0].PasswordHash)
	assert.Equal(t, "bob", users[1].UserID)
}
