package main

import (
	"fmt"
	"net/http"
	"testing"
	"yamdb/proj/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthcheck(t *testing.T) {
	env := newTestEnv(nil, t)
	code, _ := env.do(t, http.MethodGet, "/api/v1/healthcheck", "", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestSignupAndTokenFlow(t *testing.T) {
	env := newTestEnv(nil, t)
	signup := map[string]string{"username": "alice", "email": "a@x.com"}

	code, resp := env.do(t, http.MethodPost, "/api/v1/auth/signup/", "", signup)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "alice", resp.Data["username"])
	assert.Equal(t, "a@x.com", resp.Data["email"])
	c1 := env.mailer.code("a@x.com")
	require.NotEmpty(t, c1)

	code, resp = env.do(t, http.MethodPost, "/api/v1/auth/token/", "", map[string]string{
		"username": "alice", "confirmation_code": c1,
	})
	require.Equal(t, http.StatusCreated, code)
	token, ok := resp.Data["token"].(string)
	require.True(t, ok)

	code, _ = env.do(t, http.MethodPost, "/api/v1/auth/token/", "", map[string]string{
		"username": "alice", "confirmation_code": "WRONG",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = env.do(t, http.MethodPost, "/api/v1/auth/signup/", "", signup)
	require.Equal(t, http.StatusOK, code)
	c2 := env.mailer.code("a@x.com")
	if c1 != c2 {
		code, _ = env.do(t, http.MethodPost, "/api/v1/auth/token/", "", map[string]string{
			"username": "alice", "confirmation_code": c1,
		})
		assert.Equal(t, http.StatusBadRequest, code)
	}
	code, _ = env.do(t, http.MethodPost, "/api/v1/auth/token/", "", map[string]string{
		"username": "alice", "confirmation_code": c2,
	})
	assert.Equal(t, http.StatusCreated, code)

	code, resp = env.do(t, http.MethodGet, "/api/v1/users/me/", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "alice", resp.object(t, "user")["username"])

	code, _ = env.do(t, http.MethodPost, "/api/v1/auth/token/", "", map[string]string{
		"username": "ghost", "confirmation_code": c2,
	})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestSignupValidation(t *testing.T) {
	env := newTestEnv(nil, t)
	code, _ := env.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{"username": "alice", "email": "a@x.com"})
	require.Equal(t, http.StatusOK, code)

	testCases := []struct {
		name      string
		body      map[string]string
		wantField string
	}{
		{"reserved me", map[string]string{"username": "me", "email": "me@x.com"}, "username"},
		{"bad pattern", map[string]string{"username": "al ice!", "email": "b@x.com"}, "username"},
		{"bad email", map[string]string{"username": "bob", "email": "not-an-email"}, "email"},
		{"missing email", map[string]string{"username": "bob"}, "email"},
		{"username taken", map[string]string{"username": "alice", "email": "other@x.com"}, "username"},
		{"email taken", map[string]string{"username": "bob", "email": "a@x.com"}, "email"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code, resp := env.do(t, http.MethodPost, "/api/v1/auth/signup", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.False(t, resp.Success)
			assert.Contains(t, resp.object(t, "errors"), tc.wantField)
		})
	}

	code, _ = env.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]any{"username": "bob", "email": "b@x.com", "extra": 1})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRatingScenario(t *testing.T) {
	env := newTestEnv(nil, t)
	admin := env.userToken(t, "root", models.RoleAdmin)
	bob := env.userToken(t, "bob", models.RoleUser)
	carol := env.userToken(t, "carol", models.RoleUser)

	code, _ := env.do(t, http.MethodPost, "/api/v1/categories/", admin, map[string]string{"name": "Movies", "slug": "movies"})
	require.Equal(t, http.StatusCreated, code)
	code, resp := env.do(t, http.MethodPost, "/api/v1/titles/", admin, map[string]any{
		"name": "Inception", "year": 2010, "category": "movies",
	})
	require.Equal(t, http.StatusCreated, code)
	title := resp.object(t, "title")
	assert.Nil(t, title["rating"])
	assert.Equal(t, "movies", title["category"].(map[string]any)["slug"])
	titlePath := fmt.Sprintf("/api/v1/titles/%v/", title["id"])

	rating := func() any {
		code, resp := env.do(t, http.MethodGet, titlePath, "", nil)
		require.Equal(t, http.StatusOK, code)
		return resp.object(t, "title")["rating"]
	}

	code, resp = env.do(t, http.MethodPost, titlePath+"reviews/", bob, map[string]any{"text": "Great", "score": 9})
	require.Equal(t, http.StatusCreated, code)
	review := resp.object(t, "review")
	assert.Equal(t, "bob", review["author"])
	assert.Equal(t, "Inception", review["title"])
	assert.Equal(t, 9.0, rating())

	code, _ = env.do(t, http.MethodPost, titlePath+"reviews/", carol, map[string]any{"text": "Good", "score": 7})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, 8.0, rating())

	code, _ = env.do(t, http.MethodPost, titlePath+"reviews/", bob, map[string]any{"text": "Again", "score": 5})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, 8.0, rating())

	code, resp = env.do(t, http.MethodPost, titlePath+"reviews/", carol, map[string]any{"text": "x", "score": 11})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Score must be between 1 and 10", resp.object(t, "errors")["score"])

	code, resp = env.do(t, http.MethodGet, "/api/v1/titles/?category=movies", "", nil)
	require.Equal(t, http.StatusOK, code)
	results := resp.results(t)
	require.Len(t, results, 1)
	assert.Equal(t, 8.0, results[0].(map[string]any)["rating"])
	assert.Equal(t, 1.0, resp.object(t, "metadata")["total_records"])

	reviewPath := fmt.Sprintf("%sreviews/%v/", titlePath, review["id"])
	code, _ = env.do(t, http.MethodPatch, reviewPath, bob, map[string]any{"score": 3})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 5.0, rating())

	code, _ = env.do(t, http.MethodDelete, titlePath, admin, nil)
	require.Equal(t, http.StatusNoContent, code)
	code, _ = env.do(t, http.MethodGet, reviewPath, "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestContentPermissions(t *testing.T) {
	env := newTestEnv(nil, t)
	admin := env.userToken(t, "root", models.RoleAdmin)
	moderator := env.userToken(t, "mod", models.RoleModerator)
	bob := env.userToken(t, "bob", models.RoleUser)
	carol := env.userToken(t, "carol", models.RoleUser)

	code, _ := env.do(t, http.MethodPost, "/api/v1/categories", admin, map[string]string{"name": "Books", "slug": "books"})
	require.Equal(t, http.StatusCreated, code)
	code, resp := env.do(t, http.MethodPost, "/api/v1/titles", admin, map[string]any{"name": "Dune", "year": 1965, "category": "books"})
	require.Equal(t, http.StatusCreated, code)
	titlePath := fmt.Sprintf("/api/v1/titles/%v", resp.object(t, "title")["id"])
	code, resp = env.do(t, http.MethodPost, titlePath+"/reviews", bob, map[string]any{"text": "Spice", "score": 10})
	require.Equal(t, http.StatusCreated, code)
	reviewPath := fmt.Sprintf("%s/reviews/%v", titlePath, resp.object(t, "review")["id"])
	code, resp = env.do(t, http.MethodPost, reviewPath+"/comments", bob, map[string]any{"text": "Walk without rhythm"})
	require.Equal(t, http.StatusCreated, code)
	comment := resp.object(t, "comment")
	assert.Equal(t, "bob", comment["author"])
	commentPath := fmt.Sprintf("%s/comments/%v", reviewPath, comment["id"])

	for _, path := range []string{reviewPath, commentPath} {
		code, _ = env.do(t, http.MethodPatch, path, carol, map[string]any{"text": "hijacked"})
		assert.Equal(t, http.StatusForbidden, code, path)
		code, _ = env.do(t, http.MethodDelete, path, carol, nil)
		assert.Equal(t, http.StatusForbidden, code, path)
		for _, token := range []string{bob, moderator, admin} {
			code, _ = env.do(t, http.MethodPatch, path, token, map[string]any{"text": "edited"})
			assert.Equal(t, http.StatusOK, code, path)
		}
	}

	code, _ = env.do(t, http.MethodDelete, commentPath, moderator, nil)
	assert.Equal(t, http.StatusNoContent, code)
	code, _ = env.do(t, http.MethodDelete, reviewPath, admin, nil)
	assert.Equal(t, http.StatusNoContent, code)
}

func TestAnonymousAccess(t *testing.T) {
	env := newTestEnv(nil, t)
	admin := env.userToken(t, "root", models.RoleAdmin)
	bob := env.userToken(t, "bob", models.RoleUser)

	code, _ := env.do(t, http.MethodPost, "/api/v1/categories", admin, map[string]string{"name": "Books", "slug": "books"})
	require.Equal(t, http.StatusCreated, code)
	code, _ = env.do(t, http.MethodPost, "/api/v1/genres", admin, map[string]string{"name": "Sci-Fi", "slug": "sci-fi"})
	require.Equal(t, http.StatusCreated, code)
	code, resp := env.do(t, http.MethodPost, "/api/v1/titles", admin, map[string]any{
		"name": "Dune", "year": 1965, "category": "books", "genre": []string{"sci-fi"},
	})
	require.Equal(t, http.StatusCreated, code)
	titlePath := fmt.Sprintf("/api/v1/titles/%v", resp.object(t, "title")["id"])
	code, resp = env.do(t, http.MethodPost, titlePath+"/reviews", bob, map[string]any{"text": "Spice", "score": 10})
	require.Equal(t, http.StatusCreated, code)
	reviewPath := fmt.Sprintf("%s/reviews/%v", titlePath, resp.object(t, "review")["id"])

	for _, path := range []string{
		"/api/v1/categories/",
		"/api/v1/genres/",
		"/api/v1/titles/",
		titlePath,
		titlePath + "/reviews/",
		reviewPath,
		reviewPath + "/comments/",
	} {
		code, _ := env.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, code, path)
	}

	writes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/categories/"},
		{http.MethodDelete, "/api/v1/categories/books/"},
		{http.MethodPost, "/api/v1/genres/"},
		{http.MethodDelete, "/api/v1/genres/sci-fi/"},
		{http.MethodPost, "/api/v1/titles/"},
		{http.MethodPatch, titlePath},
		{http.MethodDelete, titlePath},
		{http.MethodPost, titlePath + "/reviews/"},
		{http.MethodPatch, reviewPath},
		{http.MethodDelete, reviewPath},
		{http.MethodPost, reviewPath + "/comments/"},
		{http.MethodPatch, "/api/v1/titles/999/reviews/999/"},
		{http.MethodGet, "/api/v1/users/me/"},
	}
	for _, tc := range writes {
		code, _ := env.do(t, tc.method, tc.path, "", map[string]any{"text": "x"})
		assert.Equal(t, http.StatusUnauthorized, code, "%s %s", tc.method, tc.path)
	}

	code, _ = env.do(t, http.MethodPost, "/api/v1/categories/", bob, map[string]string{"name": "Games", "slug": "games"})
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = env.do(t, http.MethodDelete, titlePath, bob, nil)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestTitleValidation(t *testing.T) {
	env := newTestEnv(nil, t)
	admin := env.userToken(t, "root", models.RoleAdmin)
	code, _ := env.do(t, http.MethodPost, "/api/v1/categories", admin, map[string]string{"name": "Books", "slug": "books"})
	require.Equal(t, http.StatusCreated, code)

	testCases := []struct {
		name      string
		body      map[string]any
		wantField string
	}{
		{"missing name", map[string]any{"year": 2000, "category": "books"}, "name"},
		{"future year", map[string]any{"name": "X", "year": 3000, "category": "books"}, "year"},
		{"unknown category", map[string]any{"name": "X", "year": 2000, "category": "games"}, "category"},
		{"unknown genre", map[string]any{"name": "X", "year": 2000, "category": "books", "genre": []string{"nope"}}, "genre"},
		{"bad genre slug", map[string]any{"name": "X", "year": 2000, "category": "books", "genre": []string{"no pe"}}, "genre"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code, resp := env.do(t, http.MethodPost, "/api/v1/titles", admin, tc.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Contains(t, resp.object(t, "errors"), tc.wantField)
		})
	}

	code, _ = env.do(t, http.MethodPost, "/api/v1/categories", admin, map[string]string{"name": "Books again", "slug": "books"})
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = env.do(t, http.MethodGet, "/api/v1/titles/abc", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = env.do(t, http.MethodGet, "/api/v1/titles/?page=0", "", nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = env.do(t, http.MethodGet, "/api/v1/titles/?page=-1", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestUsersAPI(t *testing.T) {
	env := newTestEnv(nil, t)
	admin := env.userToken(t, "root", models.RoleAdmin)
	bob := env.userToken(t, "bob", models.RoleUser)

	code, _ := env.do(t, http.MethodGet, "/api/v1/users/", bob, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, resp := env.do(t, http.MethodPost, "/api/v1/users/", admin, map[string]string{
		"username": "carol", "email": "carol@x.com", "role": "moderator",
	})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "moderator", resp.object(t, "user")["role"])

	code, _ = env.do(t, http.MethodPost, "/api/v1/users/", admin, map[string]string{"username": "me", "email": "me@x.com"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, resp = env.do(t, http.MethodGet, "/api/v1/users/?search=car", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, resp.results(t), 1)

	code, resp = env.do(t, http.MethodPatch, "/api/v1/users/bob/", admin, map[string]string{"role": "moderator"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "moderator", resp.object(t, "user")["role"])

	code, resp = env.do(t, http.MethodPatch, "/api/v1/users/me/", bob, map[string]string{"role": "admin", "bio": "hello"})
	require.Equal(t, http.StatusOK, code)
	me := resp.object(t, "user")
	assert.Equal(t, "moderator", me["role"])
	assert.Equal(t, "hello", me["bio"])

	code, _ = env.do(t, http.MethodDelete, "/api/v1/users/carol/", admin, nil)
	assert.Equal(t, http.StatusNoContent, code)
	code, _ = env.do(t, http.MethodGet, "/api/v1/users/carol/", admin, nil)
	assert.Equal(t, http.StatusNotFound, code)
}
