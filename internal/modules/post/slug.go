package post

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonSlugRunes  = regexp.MustCompile(`[^a-z0-9_-]+`)
)

// Slugify derives the URL key from a title: lowercase, whitespace runs
// collapse to a single hyphen, everything that is not a word character or
// hyphen is stripped. "Hello, World!!" and "Hello World" both normalize to
// "hello-world".
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = whitespaceRun.ReplaceAllString(s, "-")
	return nonSlugRunes.ReplaceAllString(s, "")
}
