// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package aggregation_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookrec/internal/platform/apperr"
	"github.com/taibuivan/bookrec/internal/social/aggregation"
	"github.com/taibuivan/bookrec/internal/social/review"
	"github.com/taibuivan/bookrec/internal/social/suggestion"
)

func newService(t *testing.T, reviews, suggestions string) *aggregation.Service {
	t.Helper()

	dir := t.TempDir()
	reviewsPath := filepath.Join(dir, "ValutazioniLibri.dati")
	suggestionsPath := filepath.Join(dir, "ConsigliLibri.dati")
	if reviews != "" {
		require.NoError(t, os.WriteFile(reviewsPath, []byte(reviews), 0o644))
	}
	if suggestions != "" {
		require.NoError(t, os.WriteFile(suggestionsPath, []byte(suggestions), 0o644))
	}

	return aggregation.NewService(
		review.NewFileStore(reviewsPath, nil),
		suggestion.NewFileStore(suggestionsPath, suggestion.LayoutColumns, nil),
	)
}

/*
TestService_ReviewStats verifies means and the final score histogram.
*/
func TestService_ReviewStats(t *testing.T) {
	svc := newService(t,
		"alice;42;4;4;5;5;4;4;\n"+
			"bob;42;2;3;3;2;1;2;meh\n"+
			"carol;42;4;5;5;4;4;4;\n"+
			"dave;7;1;1;1;1;1;1;\n", "")

	stats, err := svc.ReviewStats(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Count)
	assert.InDelta(t, 10.0/3, stats.Style, 1e-9)
	assert.InDelta(t, 4.0, stats.Content, 1e-9)
	assert.InDelta(t, 13.0/3, stats.Pleasantness, 1e-9)
	assert.InDelta(t, 11.0/3, stats.Originality, 1e-9)
	assert.InDelta(t, 3.0, stats.Edition, 1e-9)
	assert.InDelta(t, 10.0/3, stats.FinalScore, 1e-9)
	assert.Equal(t, []aggregation.ScoreCount{{Score: 2, Count: 1}, {Score: 4, Count: 2}}, stats.Distribution)
}

/*
TestService_ReviewStats_Empty verifies the zero state of an unreviewed book.
*/
func TestService_ReviewStats_Empty(t *testing.T) {
	svc := newService(t, "", "")

	stats, err := svc.ReviewStats(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Count)
	assert.Zero(t, stats.FinalScore)
	assert.Zero(t, stats.Style)
	assert.Empty(t, stats.Distribution)
}

/*
TestService_SuggestionStats verifies counting and the stable descending order.
*/
func TestService_SuggestionStats(t *testing.T) {
	svc := newService(t, "",
		"userid;idLibro;idSuggerito1;idSuggerito2;idSuggerito3\n"+
			"alice;1;5;6;\n"+
			"bob;1;7;6;\n"+
			"carol;1;7;8;6\n"+
			"dave;2;6;;\n")

	counts, err := svc.SuggestionStats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []aggregation.SuggestedCount{
		{BookID: 6, Count: 3},
		{BookID: 7, Count: 2},
		{BookID: 5, Count: 1},
		{BookID: 8, Count: 1},
	}, counts)

	none, err := svc.SuggestionStats(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, none)
}

/*
TestService_StorageError verifies read failures surface as IO errors.
*/
func TestService_StorageError(t *testing.T) {
	dir := t.TempDir()
	svc := aggregation.NewService(
		review.NewFileStore(dir, nil),
		suggestion.NewFileStore(dir, suggestion.LayoutColumns, nil),
	)

	_, err := svc.ReviewStats(context.Background(), 1)
	assert.True(t, apperr.IsCode(err, apperr.CodeIO))

	_, err = svc.SuggestionStats(context.Background(), 1)
	assert.True(t, apperr.IsCode(err, apperr.CodeIO))
}
