package posts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/user/devconnect-go/auth"
)

// testRouter mounts the post routes without the JWT middleware so individual
// tests control whether a caller identity is present on the request context.
func testRouter() chi.Router {
	handlers := NewPostHandlers(NewPostService(nil))
	router := chi.NewRouter()
	handlers.RegisterRoutes(router)
	return router
}

func asUser(r *http.Request, userID int32) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), auth.UserIDKey, userID))
}

func TestPostRoutesRejectMissingCaller(t *testing.T) {
	router := testRouter()

	requests := []struct {
		method string
		target string
	}{
		{http.MethodPost, "/"},
		{http.MethodGet, "/"},
		{http.MethodGet, "/5f0c1d2e-0000-0000-0000-000000000000"},
		{http.MethodDelete, "/5f0c1d2e-0000-0000-0000-000000000000"},
		{http.MethodPut, "/like/5f0c1d2e-0000-0000-0000-000000000000"},
		{http.MethodPost, "/comment/5f0c1d2e-0000-0000-0000-000000000000"},
	}
	for _, tt := range requests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tt.method, tt.target)
		require.JSONEq(t, `{"msg":"No token, authorization denied"}`, rec.Body.String())
	}
}

func TestGetPostMalformedID(t *testing.T) {
	router := testRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, asUser(httptest.NewRequest(http.MethodGet, "/not-a-uuid", nil), 1))

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"msg":"Post not found"}`, rec.Body.String())
}

func TestLikeMalformedID(t *testing.T) {
	router := testRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, asUser(httptest.NewRequest(http.MethodPut, "/like/42", nil), 1))

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"msg":"Post not found"}`, rec.Body.String())
}

func TestCreatePostRejectsMissingText(t *testing.T) {
	router := testRouter()

	req := asUser(httptest.NewRequest(http.MethodPost, "/", nil), 1)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
