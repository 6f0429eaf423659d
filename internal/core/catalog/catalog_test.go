// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookrec/internal/core/catalog"
	"github.com/taibuivan/bookrec/internal/platform/apperr"
	"github.com/taibuivan/bookrec/pkg/pointer"
)

/*
TestNormalizeAuthors covers prefix stripping and separator splitting.
*/
func TestNormalizeAuthors(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"By J. K. Rowling", []string{"J. K. Rowling"}},
		{"by Eco, Umberto", []string{"Eco", "Umberto"}},
		{"BY Neil Gaiman | Terry Pratchett", []string{"Neil Gaiman", "Terry Pratchett"}},
		{"Calvino ; Levi;;Pavese", []string{"Calvino", "Levi", "Pavese"}},
		{"  ", []string{}},
		{"Byron", []string{"Byron"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, catalog.NormalizeAuthors(tt.input))
		})
	}
}

/*
TestCodec_RoundTrip verifies encode then decode preserves a book.
*/
func TestCodec_RoundTrip(t *testing.T) {
	codec := catalog.Codec{}

	tests := []struct {
		name string
		book catalog.Book
	}{
		{"full", catalog.Book{ID: 7, Title: "Il barone rampante", Authors: []string{"Italo Calvino"}, Year: pointer.To(1957), Publisher: "Einaudi", Category: "Fiction"}},
		{"unknowns", catalog.Book{ID: 8, Title: "Anonimo", Authors: []string{"A", "B"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, ok := codec.Decode(codec.Encode(tt.book))
			require.True(t, ok)
			assert.Equal(t, tt.book, decoded)
		})
	}

	assert.Equal(t, []string{"8", "Anonimo", "A|B", "", "", ""}, codec.Encode(tests[1].book))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

/*
TestStore_Load_Primary verifies decoding and next-ID tracking from the primary file.
*/
func TestStore_Load_Primary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Libri.dati")
	writeFile(t, path, strings.Join([]string{
		"idLibro;Titolo;Autori;Anno;Editore;Categoria",
		"10;Dune;Frank Herbert;1965;Chilton;Sci-Fi",
		"x;Senza ID;By Anonimo",
		"3;Solo titolo",
		"4;Emma;Jane Austen;n/d;;",
		"",
	}, "\n"))

	store := catalog.NewStore(path, "", nil)
	require.NoError(t, store.Load(context.Background()))

	assert.Equal(t, 3, store.Size())
	assert.Equal(t, 12, store.NextID())

	dune, ok := store.FindByID(10)
	require.True(t, ok)
	assert.Equal(t, pointer.To(1965), dune.Year)

	// The unparsable ID is numbered after the highest ID in the file
	anon, ok := store.FindByID(11)
	require.True(t, ok)
	assert.Equal(t, []string{"Anonimo"}, anon.Authors)

	emma, ok := store.FindByID(4)
	require.True(t, ok)
	assert.Nil(t, emma.Year)
	assert.Empty(t, emma.Publisher)

	_, ok = store.FindByID(3)
	assert.False(t, ok)
}

/*
TestStore_Load_ProvisionalIDs verifies entries without an ID never take an ID
that appears later in the file.
*/
func TestStore_Load_ProvisionalIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Libri.dati")
	writeFile(t, path, "x;First;Anon\n1;Second;Anon\n;Third;Anon\n5;Fourth;Anon\n")

	store := catalog.NewStore(path, "", nil)
	require.NoError(t, store.Load(context.Background()))

	expected := map[int]string{1: "Second", 5: "Fourth", 6: "First", 7: "Third"}
	assert.Equal(t, 4, store.Size())
	assert.Equal(t, 8, store.NextID())

	for id, title := range expected {
		book, ok := store.FindByID(id)
		require.True(t, ok, "id %d", id)
		assert.Equal(t, title, book.Title)
	}
}

/*
TestStore_Load_CSVBootstrap verifies the import from the dataset and its persistence.
*/
func TestStore_Load_CSVBootstrap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Libri.dati")
	writeFile(t, filepath.Join(dir, "BooksDatasetClean.csv"), strings.Join([]string{
		"Title,Authors,Description,Category,Publisher,Price,Month,Year",
		`"Goat Brothers","By Colton, Larry","desc","History","Doubleday",8.79,January,1993`,
		`"The Missing Person",By Grumbach,"a, quoted, text",Fiction,"Norton",4.99,March,1981`,
		`short,row`,
		`"No Year","By Nobody","","","",0,,`,
		"",
	}, "\n"))

	store := catalog.NewStore(path, "", nil)
	require.NoError(t, store.Load(context.Background()))

	require.Equal(t, 3, store.Size())

	books := store.All()
	assert.Equal(t, 1, books[0].ID)
	assert.Equal(t, "Goat Brothers", books[0].Title)
	assert.Equal(t, []string{"Colton", "Larry"}, books[0].Authors)
	assert.Equal(t, "History", books[0].Category)
	assert.Equal(t, "Doubleday", books[0].Publisher)
	assert.Equal(t, pointer.To(1993), books[0].Year)

	assert.Equal(t, 2, books[1].ID)
	assert.Equal(t, "Fiction", books[1].Category)

	assert.Nil(t, books[2].Year)
	assert.Empty(t, books[2].Publisher)

	// The primary file now exists and reloads to the same catalog
	_, err := os.Stat(path)
	require.NoError(t, err)

	reloaded := catalog.NewStore(path, filepath.Join(dir, "missing.csv"), nil)
	require.NoError(t, reloaded.Load(context.Background()))
	assert.Equal(t, books, reloaded.All())
}

/*
TestStore_Load_NoDataSource verifies both paths are named when nothing exists.
*/
func TestStore_Load_NoDataSource(t *testing.T) {
	dir := t.TempDir()
	store := catalog.NewStore(filepath.Join(dir, "Libri.dati"), "", nil)

	err := store.Load(context.Background())
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNoDataSource))
	assert.Contains(t, err.Error(), filepath.Join(dir, "Libri.dati"))
	assert.Contains(t, err.Error(), filepath.Join(dir, "BooksDatasetClean.csv"))
}

/*
TestStore_All_IsCopy verifies callers cannot mutate the catalog.
*/
func TestStore_All_IsCopy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Libri.dati")
	writeFile(t, path, "1;Dune;Frank Herbert;1965;;\n")

	store := catalog.NewStore(path, "", nil)
	require.NoError(t, store.Load(context.Background()))

	books := store.All()
	books[0].Title = "changed"
	books[0].Authors[0] = "changed"
	*books[0].Year = 2000

	again, ok := store.FindByID(1)
	require.True(t, ok)
	assert.Equal(t, "Dune", again.Title)
	assert.Equal(t, "Frank Herbert", again.Authors[0])
	assert.Equal(t, 1965, *again.Year)
}

/*
TestStore_SaveReload verifies Save persists the current catalog.
*/
func TestStore_SaveReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Libri.dati")
	writeFile(t, path, "2;Emma;Jane Austen;1815;;Romance\n")

	ctx := context.Background()
	store := catalog.NewStore(path, "", nil)
	require.NoError(t, store.Load(ctx))
	require.NoError(t, store.Save(ctx))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "idLibro;Titolo;Autori;Anno;Editore;Categoria\n2;Emma;Jane Austen;1815;;Romance\n", string(data))

	require.NoError(t, store.Reload(ctx))
	assert.Equal(t, 1, store.Size())
}
