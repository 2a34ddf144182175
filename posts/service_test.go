package posts

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/user/devconnect-go/apperror"
)

func TestParsePostIDValid(t *testing.T) {
	want := uuid.New()

	got, err := ParsePostID(want.String())
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestParsePostIDMalformedReportsMissingPost(t *testing.T) {
	for _, raw := range []string{"", "123", "not-a-uuid", "5f0c1d2e"} {
		_, err := ParsePostID(raw)
		require.Error(t, err)

		appErr, ok := apperror.FromError(err)
		require.True(t, ok)
		require.Equal(t, http.StatusNotFound, appErr.StatusCode())
		require.Equal(t, "Post not found", appErr.Message)
	}
}
