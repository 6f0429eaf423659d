// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookrec/internal/library"
	"github.com/taibuivan/bookrec/internal/platform/apperr"
	"github.com/taibuivan/bookrec/internal/users/auth"
)

func newService(t *testing.T, content string) (*library.Service, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "Librerie.dati")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return library.NewService(library.NewFileStore(path, ",", nil), nil), path
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

/*
TestLibrary_Set verifies the ordered-set behaviour of a library.
*/
func TestLibrary_Set(t *testing.T) {
	lib := library.New("alice", "Favs", 3, 1, 3, 0, -2, 2)
	assert.Equal(t, []int{3, 1, 2}, lib.BookIDs())

	assert.False(t, lib.Add(1))
	assert.True(t, lib.Add(9))
	assert.True(t, lib.Remove(1))
	assert.False(t, lib.Remove(1))
	assert.Equal(t, []int{3, 2, 9}, lib.BookIDs())

	ids := lib.BookIDs()
	ids[0] = 100
	assert.True(t, lib.Contains(3))
}

/*
TestCodec_Decode covers both ID separators and tolerant parsing.
*/
func TestCodec_Decode(t *testing.T) {
	codec := library.NewCodec(",")

	tests := []struct {
		name     string
		fields   []string
		expected []int
		ok       bool
	}{
		{"comma", []string{"alice", "Favs", "1,2,3"}, []int{1, 2, 3}, true},
		{"pipe", []string{"alice", "Favs", "1|2|3"}, []int{1, 2, 3}, true},
		{"bad_tokens", []string{"alice", "Favs", "1,x,,3"}, []int{1, 3}, true},
		{"duplicates", []string{"alice", "Favs", "2,2,1"}, []int{2, 1}, true},
		{"no_ids_column", []string{"alice", "Favs"}, nil, false},
		{"empty_ids", []string{"alice", "Favs", ""}, []int{}, true},
		{"missing_userid", []string{" ", "Favs", "1"}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib, ok := codec.Decode(tt.fields)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.expected, lib.BookIDs())
			}
		})
	}
}

/*
TestService_SaveLibrary_Idempotent verifies an upsert of the same library
leaves the file unchanged.
*/
func TestService_SaveLibrary_Idempotent(t *testing.T) {
	svc, path := newService(t, "")
	ctx := context.Background()
	lib := library.New("alice", "Favs", 42, 7)

	ok, err := svc.SaveLibrary(ctx, lib)
	require.NoError(t, err)
	assert.True(t, ok)
	first := readFile(t, path)

	ok, err = svc.SaveLibrary(ctx, lib)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, first, readFile(t, path))
	assert.Equal(t, "userid;nome;idLibri\nalice;Favs;42,7\n", first)

	// Replacing keeps position
	_, err = svc.SaveLibrary(ctx, library.New("alice", "Later", 1))
	require.NoError(t, err)
	_, err = svc.SaveLibrary(ctx, library.New("alice", "Favs", 5))
	require.NoError(t, err)
	assert.Equal(t, "userid;nome;idLibri\nalice;Favs;5\nalice;Later;1\n", readFile(t, path))
}

/*
TestService_SaveLibrary_NormalisedName verifies names the file cannot hold
verbatim still map to a single record across saves and lookups.
*/
func TestService_SaveLibrary_NormalisedName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"trailing_space", "Favs ", "Favs"},
		{"separator", "A;B", "A,B"},
		{"line_break", "Line\nBreak", "Line Break"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, path := newService(t, "")
			ctx := context.Background()

			for i := 0; i < 2; i++ {
				ok, err := svc.SaveLibrary(ctx, library.New("alice", tt.input, 42))
				require.NoError(t, err)
				assert.True(t, ok)
			}
			assert.Equal(t, "userid;nome;idLibri\nalice;"+tt.expected+";42\n", readFile(t, path))

			ok, err := svc.AddBook(ctx, "alice", tt.input, 7)
			require.NoError(t, err)
			assert.True(t, ok)

			lib, found, err := svc.GetLibrary(ctx, "alice", tt.input)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, tt.expected, lib.Name)
			assert.Equal(t, []int{42, 7}, lib.BookIDs())

			libs, err := svc.ListUserLibraries(ctx, "alice")
			require.NoError(t, err)
			assert.Len(t, libs, 1)
		})
	}
}

/*
TestService_SaveLibrary_InvalidOwner verifies an owner that would change the
record layout is rejected and nothing is written.
*/
func TestService_SaveLibrary_InvalidOwner(t *testing.T) {
	tests := []struct {
		name   string
		userID string
	}{
		{"separator", "bob;evil"},
		{"line_break", "bob\nevil"},
		{"blank", "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, path := newService(t, "")
			ctx := context.Background()

			ok, err := svc.SaveLibrary(ctx, library.New(tt.userID, "Favs", 42))
			assert.False(t, ok)
			assert.True(t, apperr.IsCode(err, apperr.CodeValidation))

			ok, err = svc.AddBook(ctx, tt.userID, "Favs", 42)
			assert.False(t, ok)
			assert.True(t, apperr.IsCode(err, apperr.CodeValidation))

			_, statErr := os.Stat(path)
			assert.True(t, os.IsNotExist(statErr))

			libs, err := svc.ListUserLibraries(ctx, "bob")
			require.NoError(t, err)
			assert.Empty(t, libs)
		})
	}
}

/*
TestService_PipeDialect verifies writes keep the separator of an existing file.
*/
func TestService_PipeDialect(t *testing.T) {
	svc, path := newService(t, "alice;Favs;1|2\nbob;Read;3\n")
	ctx := context.Background()

	ok, err := svc.AddBook(ctx, "alice", "Favs", 4)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, "userid;nome;idLibri\nalice;Favs;1|2|4\nbob;Read;3\n", readFile(t, path))
}

/*
TestService_ShortLinesDiscarded verifies lines without the ID column are not
loaded as libraries.
*/
func TestService_ShortLinesDiscarded(t *testing.T) {
	svc, _ := newService(t, "alice;Favs\nalice;Empty;\nalice;Later;2\n")

	libs, err := svc.ListUserLibraries(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, libs, 2)
	assert.Equal(t, "Empty", libs[0].Name)
	assert.Empty(t, libs[0].BookIDs())
	assert.Equal(t, "Later", libs[1].Name)
}

/*
TestService_AddRemoveBook covers the read-modify-upsert mutations.
*/
func TestService_AddRemoveBook(t *testing.T) {
	svc, _ := newService(t, "")
	ctx := context.Background()

	// Adding to a missing library creates it
	ok, err := svc.AddBook(ctx, "alice", "Favs", 42)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.AddBook(ctx, "alice", "Favs", 42)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.AddBook(ctx, "alice", "Favs", 0)
	assert.False(t, ok)
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))

	ok, err = svc.RemoveBook(ctx, "alice", "Favs", 7)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.RemoveBook(ctx, "alice", "Missing", 42)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.RemoveBook(ctx, "alice", "Favs", 42)
	require.NoError(t, err)
	assert.True(t, ok)

	lib, found, err := svc.GetLibrary(ctx, "alice", "Favs")
	require.NoError(t, err)
	require.True(t, found)
	assert.Empty(t, lib.BookIDs())
}

/*
TestService_Membership verifies HasBook and UserBookIDs over several libraries.
*/
func TestService_Membership(t *testing.T) {
	svc, _ := newService(t, "alice;Favs;1,2\nbob;Mine;9\nalice;Later;2,3\n")
	ctx := context.Background()

	has, err := svc.HasBook(ctx, "alice", 3)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = svc.HasBook(ctx, "alice", 9)
	require.NoError(t, err)
	assert.False(t, has)

	ids, err := svc.UserBookIDs(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ids)

	libs, err := svc.ListUserLibraries(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, libs)
}

/*
TestService_DeleteLibrary verifies removal by key.
*/
func TestService_DeleteLibrary(t *testing.T) {
	svc, path := newService(t, "alice;Favs;1\nalice;Later;2\n")
	ctx := context.Background()

	ok, err := svc.DeleteLibrary(ctx, "alice", "Favs")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.DeleteLibrary(ctx, "alice", "Favs")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, "userid;nome;idLibri\nalice;Later;2\n", readFile(t, path))
}

/*
TestDeleteUser_NoCascade verifies that deleting a user leaves its libraries in place.
*/
func TestDeleteUser_NoCascade(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	users := auth.NewService(auth.NewFileUserStore(filepath.Join(dir, "UtentiRegistrati.dati"), nil), nil)
	libs := library.NewService(library.NewFileStore(filepath.Join(dir, "Librerie.dati"), ",", nil), nil)

	ok, err := users.Register(ctx, auth.RegisterInput{
		UserID: "alice", Password: "Passw0rd1", FirstName: "Alice", LastName: "Rossi",
		FiscalCode: "RSSLCA90A41H501X", Email: "alice@example.com",
	})
	require.NoError(t, err)
	require.True(t, ok)

	_, err = libs.SaveLibrary(ctx, library.New("alice", "Favs", 42))
	require.NoError(t, err)

	ok, err = users.DeleteUser(ctx, "alice")
	require.NoError(t, err)
	require.True(t, ok)

	orphans, err := libs.ListUserLibraries(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, orphans, 1)
	assert.Equal(t, []int{42}, orphans[0].BookIDs())
}
