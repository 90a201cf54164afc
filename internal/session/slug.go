package session

import (
	"regexp"
	"strings"
)

const maxSlugLen = 50

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9_]+`)
	multiScore   = regexp.MustCompile(`_+`)
)

// Slugify normalizes model output into a session name: lowercase, every run
// of characters outside [a-z0-9_] collapsed to a single underscore, no
// leading/trailing or doubled underscores, at most 50 characters.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonSlugChars.ReplaceAllString(s, "_")
	s = multiScore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > maxSlugLen {
		s = strings.TrimRight(s[:maxSlugLen], "_")
	}
	return s
}
