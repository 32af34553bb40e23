package leetparse

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_-]{1,40}$`)

// ErrInvalidUsername is returned when no valid LeetCode username can be
// extracted from the input.
var ErrInvalidUsername = errors.New("invalid leetcode username")

// NormalizeUsername accepts a raw username or a leetcode.com profile URL
// ("https://leetcode.com/u/jane/", "leetcode.com/jane") and returns the bare
// username.
func NormalizeUsername(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrInvalidUsername
	}

	if strings.Contains(input, "leetcode.com") {
		name, ok := usernameFromURL(input)
		if !ok {
			return "", ErrInvalidUsername
		}
		input = name
	}

	if !usernameRe.MatchString(input) {
		return "", ErrInvalidUsername
	}
	return input, nil
}

func usernameFromURL(raw string) (string, bool) {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	parts := []string{}
	for _, p := range strings.Split(u.Path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "", false
	}

	// Profile URLs are either /<name>/ or /u/<name>/
	if parts[0] == "u" {
		if len(parts) < 2 {
			return "", false
		}
		return parts[1], true
	}
	return parts[0], true
}

// SlugToTitle converts a problem slug to a displayable title, used when the
// source feed carries a slug but an empty title ("two-sum" -> "Two Sum").
func SlugToTitle(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
