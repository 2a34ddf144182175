package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGravatarURL(t *testing.T) {
	want := "https://www.gravatar.com/avatar/d4c74594d841139328695756648b6bd6?s=200&r=pg&d=mm"
	require.Equal(t, want, GravatarURL("john@example.com"))
}

func TestGravatarURLIsDeterministicAcrossCaseAndWhitespace(t *testing.T) {
	base := GravatarURL("john@example.com")
	require.Equal(t, base, GravatarURL("John@Example.COM"))
	require.Equal(t, base, GravatarURL("  john@example.com  "))
	require.NotEqual(t, base, GravatarURL("jane@example.com"))
}
