package ai_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"alpine/translate/internal/service/ai"
)

func TestCleanOutput(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Hello", "Hello"},
		{"whitespace", "\n  Goodbye \n", "Goodbye"},
		{"fence", "```\nHello\n```", "Hello"},
		{"fence with info string", "```text\nHello\n```", "Hello"},
		{"markup", "<p>Hello <b>world</b></p>", "Hello world"},
		{"ampersand kept", "Tom & Jerry", "Tom & Jerry"},
		{"comparison kept", "a < b", "a < b"},
		{"empty", "   ", ""},
		{"only markup", "<br/>", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ai.CleanOutput(tc.in))
		})
	}
}
