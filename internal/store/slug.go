package store

import (
	"regexp"
	"strings"
)

var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases title and collapses every run of non [a-z0-9]
// characters into a single dash.
func Slugify(title string) string {
	slug := slugSeparators.ReplaceAllString(strings.ToLower(title), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "post"
	}
	return slug
}
