package catalog

import (
	"context"
	"testing"
	"yamdb/proj/internal/domain/errs"
	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/lib/logger"
	"yamdb/proj/internal/storage/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var admin = &models.User{ID: 1, Username: "root", Role: models.RoleAdmin}

func TestCategories(t *testing.T) {
	ctx := context.Background()
	svc := NewCategories(logger.Discard(), memory.New().Category)

	created, err := svc.Create(ctx, admin, "Movies", "movies")
	require.NoError(t, err)
	assert.Equal(t, models.Category{ID: created.ID, Name: "Movies", Slug: "movies"}, *created)
	_, err = svc.Create(ctx, admin, "Books", "books")
	require.NoError(t, err)

	_, err = svc.Create(ctx, admin, "Films", "movies")
	assert.ErrorIs(t, err, ErrCategorySlugTaken)
	assert.ErrorIs(t, err, errs.ErrConflict)

	items, total, err := svc.List(ctx, "mov", filters.Filters{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "movies", items[0].Slug)

	require.NoError(t, svc.Delete(ctx, admin, "movies"))
	assert.ErrorIs(t, svc.Delete(ctx, admin, "movies"), ErrCategoryNotFound)
}

func TestGenresRequireAdmin(t *testing.T) {
	ctx := context.Background()
	svc := NewGenres(logger.Discard(), memory.New().Genre)

	testCases := []struct {
		name    string
		actor   *models.User
		wantErr error
	}{
		{"anonymous", models.AnonymousUser, errs.ErrUnauthenticated},
		{"user", &models.User{ID: 2, Role: models.RoleUser}, errs.ErrForbidden},
		{"moderator", &models.User{ID: 3, Role: models.RoleModerator}, errs.ErrForbidden},
		{"superuser", &models.User{ID: 4, Role: models.RoleUser, IsSuperuser: true}, nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.actor, "Drama", "drama-"+tc.name)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
	assert.ErrorIs(t, svc.Delete(ctx, admin, "missing"), ErrGenreNotFound)
}
