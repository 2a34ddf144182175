package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/user/devconnect-go/apperror"
)

func TestWriteErrorAppError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth", nil)

	WriteError(rec, req, apperror.NewBadRequestError("Invalid Credentials", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"msg":"Invalid Credentials"}`, rec.Body.String())
}

func TestWriteErrorValidationShape(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/users", nil)

	WriteError(rec, req, apperror.NewValidationError([]apperror.Violation{
		{Param: "email", Msg: "Please include a valid email"},
		{Param: "password", Msg: "Please enter a password with 6 or more characters"},
	}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"errors":[
		{"param":"email","msg":"Please include a valid email"},
		{"param":"password","msg":"Please enter a password with 6 or more characters"}
	]}`, rec.Body.String())
}

func TestWriteErrorUnknownErrorIsServerError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)

	WriteError(rec, req, errors.New("connection reset by peer"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "Server Error", rec.Body.String())
	require.NotContains(t, rec.Body.String(), "connection reset")
}

func TestWriteErrorDatabaseErrorHidesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)

	WriteError(rec, req, apperror.NewDatabaseError("failed to list profiles", errors.New("relation does not exist")))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "Server Error", rec.Body.String())
}

func TestWriteErrorStatusOverride(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/profile/me", nil)

	WriteError(rec, req, apperror.NewNotFoundError("There is no profile for this user", nil).
		WithStatus(http.StatusBadRequest))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"msg":"There is no profile for this user"}`, rec.Body.String())
}
