package catalog

import "strings"

// Slug derives the URL slug (link_rewrite) for a product name: lower-case,
// spaces and forward slashes become hyphens, then everything outside
// [a-z0-9-_] is stripped. Deterministic; an empty result is an accepted
// edge case for names that reduce to nothing, not an error.
func Slug(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}
