package profile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitSkills(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"plain list", "HTML,CSS,Go", []string{"HTML", "CSS", "Go"}},
		{"trims whitespace", "HTML, CSS ,  Go", []string{"HTML", "CSS", "Go"}},
		{"single skill", "Go", []string{"Go"}},
		{"empty elements preserved", "Go,,SQL", []string{"Go", "", "SQL"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, SplitSkills(tt.input))
		})
	}
}
