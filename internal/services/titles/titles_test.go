package titles

import (
	"context"
	"testing"
	"time"
	"yamdb/proj/internal/domain/errs"
	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/lib/logger"
	"yamdb/proj/internal/storage/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var admin = &models.User{ID: 1, Username: "root", Role: models.RoleAdmin}

func ptr[T any](v T) *T {
	return &v
}

func setup(t *testing.T) (*TitleService, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	_, err := store.Category.Insert(ctx, "Movies", "movies")
	require.NoError(t, err)
	_, err = store.Category.Insert(ctx, "Books", "books")
	require.NoError(t, err)
	_, err = store.Genre.Insert(ctx, "Sci-Fi", "sci-fi")
	require.NoError(t, err)
	_, err = store.Genre.Insert(ctx, "Drama", "drama")
	require.NoError(t, err)
	return New(logger.Discard(), store.Title, store.Category, store.Genre), store
}

func TestCreateAndUpdateTitle(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	title, err := svc.Create(ctx, admin, Input{
		Name:     ptr("Inception"),
		Year:     ptr(int32(2010)),
		Category: ptr("movies"),
		Genres:   ptr([]string{"sci-fi", "sci-fi"}),
	})
	require.NoError(t, err)
	assert.Equal(t, "Inception", title.Name)
	assert.Equal(t, "movies", title.Category.Slug)
	require.Len(t, title.Genres, 1)
	assert.Equal(t, "sci-fi", title.Genres[0].Slug)
	assert.Nil(t, title.Rating)

	updated, err := svc.Update(ctx, admin, title.ID, Input{
		Description: ptr("Dreams"),
		Genres:      ptr([]string{"drama"}),
	})
	require.NoError(t, err)
	assert.Equal(t, "Inception", updated.Name)
	assert.Equal(t, "Dreams", updated.Description)
	assert.Equal(t, []models.Genre{{ID: updated.Genres[0].ID, Name: "Drama", Slug: "drama"}}, updated.Genres)

	require.NoError(t, svc.Delete(ctx, admin, title.ID))
	_, err = svc.Get(ctx, title.ID)
	assert.ErrorIs(t, err, ErrTitleNotFound)
}

func TestCreateTitleValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	testCases := []struct {
		name    string
		input   Input
		wantErr error
	}{
		{"unknown category", Input{Name: ptr("X"), Year: ptr(int32(2000)), Category: ptr("games")}, ErrUnknownCategory},
		{"unknown genre", Input{Name: ptr("X"), Year: ptr(int32(2000)), Category: ptr("movies"), Genres: ptr([]string{"drama", "horror"})}, ErrUnknownGenre},
		{"future year", Input{Name: ptr("X"), Year: ptr(int32(time.Now().Year() + 1)), Category: ptr("movies")}, ErrFutureYear},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, admin, tc.input)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.ErrorIs(t, err, errs.ErrValidation)
		})
	}
}

func TestTitleWritesRequireAdmin(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)
	moderator := &models.User{ID: 2, Role: models.RoleModerator}

	_, err := svc.Create(ctx, moderator, Input{Name: ptr("X"), Year: ptr(int32(2000)), Category: ptr("movies")})
	assert.ErrorIs(t, err, errs.ErrForbidden)
	_, err = svc.Update(ctx, models.AnonymousUser, 1, Input{})
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)
	assert.ErrorIs(t, svc.Delete(ctx, admin, 999), ErrTitleNotFound)
}

func TestListTitlesFilters(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)
	for _, in := range []Input{
		{Name: ptr("Inception"), Year: ptr(int32(2010)), Category: ptr("movies"), Genres: ptr([]string{"sci-fi"})},
		{Name: ptr("Dune"), Year: ptr(int32(1965)), Category: ptr("books"), Genres: ptr([]string{"sci-fi"})},
		{Name: ptr("Interstellar"), Year: ptr(int32(2014)), Category: ptr("movies"), Genres: ptr([]string{"drama"})},
	} {
		_, err := svc.Create(ctx, admin, in)
		require.NoError(t, err)
	}
	page := filters.Filters{Page: 1, PageSize: 10}

	testCases := []struct {
		name   string
		filter filters.TitleFilter
		want   []string
	}{
		{"no filter", filters.TitleFilter{}, []string{"Inception", "Dune", "Interstellar"}},
		{"category", filters.TitleFilter{Category: "movies"}, []string{"Inception", "Interstellar"}},
		{"genre", filters.TitleFilter{Genre: "sci-fi"}, []string{"Inception", "Dune"}},
		{"name", filters.TitleFilter{Name: "in"}, []string{"Inception", "Interstellar"}},
		{"year", filters.TitleFilter{Year: 1965}, []string{"Dune"}},
		{"combined", filters.TitleFilter{Category: "movies", Genre: "drama"}, []string{"Interstellar"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			titles, total, err := svc.List(ctx, tc.filter, page)
			require.NoError(t, err)
			assert.Equal(t, len(tc.want), total)
			names := make([]string, 0, len(titles))
			for _, title := range titles {
				names = append(names, title.Name)
			}
			assert.Equal(t, tc.want, names)
		})
	}
}
