package auth

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/user/devconnect-go/apperror"
	"github.com/user/devconnect-go/testutils"
)

func TestRegisterDuplicateEmailCreatesNothing(t *testing.T) {
	pool := testutils.StartPostgres(t)
	svc := NewAuthService(pool, testAuthConfig())
	ctx := context.Background()

	req := RegisterRequest{Name: "John Doe", Email: "john@example.com", Password: "longenough"}

	resp, err := svc.Register(ctx, req)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	_, err = svc.Register(ctx, req)
	require.Error(t, err)
	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, appErr.StatusCode())
	require.Equal(t, "user already exists", appErr.Message)

	var count int
	err = pool.QueryRow(ctx, `SELECT count(*) FROM users WHERE email = $1`, "john@example.com").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestRegisterThenLogin(t *testing.T) {
	pool := testutils.StartPostgres(t)
	cfg := testAuthConfig()
	svc := NewAuthService(pool, cfg)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Name: "Jane Doe", Email: "jane@example.com", Password: "longenough",
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, LoginRequest{Email: "jane@example.com", Password: "longenough"})
	require.NoError(t, err)

	claims, err := ParseToken(resp.Token, cfg)
	require.NoError(t, err)

	user, err := svc.CurrentUser(ctx, claims.UserID)
	require.NoError(t, err)
	require.Equal(t, "Jane Doe", user.Name)
	require.Equal(t, GravatarURL("jane@example.com"), user.Avatar)

	_, err = svc.Login(ctx, LoginRequest{Email: "jane@example.com", Password: "wrongpassword"})
	require.Error(t, err)
	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	require.Equal(t, "Invalid Credentials", appErr.Message)
}
