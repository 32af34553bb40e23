package leetparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeUsername(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"jane_doe", "jane_doe"},
		{"  jane_doe  ", "jane_doe"},
		{"Jane-Doe42", "Jane-Doe42"},
		{"https://leetcode.com/u/jane_doe/", "jane_doe"},
		{"https://leetcode.com/jane_doe", "jane_doe"},
		{"leetcode.com/u/jane_doe", "jane_doe"},
		{"leetcode.com/jane_doe/", "jane_doe"},
		{"http://leetcode.com/u/jane_doe/submissions/", "jane_doe"},
	}

	for _, tc := range cases {
		got, err := NormalizeUsername(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestNormalizeUsernameInvalid(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"has spaces",
		"way@off",
		"https://leetcode.com/",
		"https://leetcode.com/u/",
		"this-username-is-far-far-far-too-long-to-be-accepted-by-leetcode",
	}

	for _, input := range cases {
		_, err := NormalizeUsername(input)
		assert.ErrorIs(t, err, ErrInvalidUsername, "input %q", input)
	}
}

func TestSlugToTitle(t *testing.T) {
	assert.Equal(t, "Two Sum", SlugToTitle("two-sum"))
	assert.Equal(t, "Longest Common Prefix", SlugToTitle("longest-common-prefix"))
	assert.Equal(t, "Lru Cache", SlugToTitle("lru-cache"))
	assert.Equal(t, "", SlugToTitle(""))
}
