package utils

import (
	"regexp"
	"strings"
)

var (
	slugPattern    = regexp.MustCompile(`^[a-z0-9-]+$`)
	slugWhitespace = regexp.MustCompile(`\s+`)
	slugInvalid    = regexp.MustCompile(`[^a-z0-9-]`)
)

// IsValidSlug reports whether s is non-empty and only uses lowercase letters, digits and hyphens.
func IsValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// Slugify derives a slug from a display name: "Adventure Tours" -> "adventure-tours".
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugWhitespace.ReplaceAllString(s, "-")
	return slugInvalid.ReplaceAllString(s, "")
}
